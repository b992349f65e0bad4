package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/awnhq/assetportal/internal/model"
	"github.com/awnhq/assetportal/internal/notify"
	"github.com/awnhq/assetportal/internal/store"
)

// ItemsHandler handles catalog and stock endpoints.
type ItemsHandler struct {
	DB     *sql.DB
	Notify *notify.Dispatcher
}

// Numeric fields arrive as free text from the catalog form; values that do
// not parse store as unset rather than failing the whole create.
type createItemRequest struct {
	Name              string `json:"name"`
	Category          string `json:"category"`
	Size              string `json:"size"`
	Supplier          string `json:"supplier"`
	UnitCost          string `json:"unit_cost"`
	LowStockThreshold string `json:"low_stock_threshold"`
}

type receiveStockRequest struct {
	Quantity     int    `json:"quantity"`
	ReceivedDate string `json:"received_date"`
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" && !model.ValidCategory(category) {
		jsonError(w, http.StatusBadRequest, "invalid category")
		return
	}

	items, err := store.ListItems(r.Context(), h.DB, category)
	if err != nil {
		storeError(w, err, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, req.Name, req.Category, req.Size, req.Supplier,
		parseFloatOrNil(req.UnitCost), parseIntOrNil(req.LowStockThreshold))
	if err != nil {
		storeError(w, err, "failed to create item")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("item created", "item", item.ID, "name", item.Name, "admin", claims.Email)
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{id}. The stock balance cannot be edited
// here; it only moves through stock receipts.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.UpdateItem(r.Context(), h.DB, id, req.Name, req.Category, req.Size, req.Supplier,
		parseFloatOrNil(req.UnitCost), parseIntOrNil(req.LowStockThreshold)); err != nil {
		storeError(w, err, "failed to update item")
		return
	}

	item, _ := store.GetItem(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, item)
}

// ReceiveStock handles POST /api/items/{id}/stock.
func (h *ItemsHandler) ReceiveStock(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req receiveStockRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	receipt, err := store.ReceiveStock(r.Context(), h.DB, id, req.Quantity, req.ReceivedDate)
	if err != nil {
		storeError(w, err, "failed to receive stock")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("stock received", "item", id, "quantity", req.Quantity, "admin", claims.Email)
	jsonResponse(w, http.StatusCreated, receipt)
}

// Receipts handles GET /api/items/{id}/receipts.
func (h *ItemsHandler) Receipts(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	receipts, err := store.ListStockReceipts(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to list stock receipts")
		return
	}
	if receipts == nil {
		receipts = []model.StockReceipt{}
	}
	jsonResponse(w, http.StatusOK, receipts)
}

// StockSummary handles GET /api/stock/summary.
func (h *ItemsHandler) StockSummary(w http.ResponseWriter, r *http.Request) {
	total, err := store.TotalStockValue(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to compute stock value")
		return
	}

	lowStock, err := store.ListLowStockItems(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to list low stock items")
		return
	}
	if lowStock == nil {
		lowStock = []model.Item{}
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"total_value":     total,
		"low_stock_items": lowStock,
	})
}

// LowStockAlert handles POST /api/stock/low-stock-alert: emails every admin
// a digest of items at or below their thresholds.
func (h *ItemsHandler) LowStockAlert(w http.ResponseWriter, r *http.Request) {
	lowStock, err := store.ListLowStockItems(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to list low stock items")
		return
	}
	if len(lowStock) == 0 {
		jsonResponse(w, http.StatusOK, map[string]any{"message": "no items below threshold", "items": 0})
		return
	}

	admins, err := store.ListProfiles(r.Context(), h.DB, model.RoleAdmin)
	if err != nil {
		storeError(w, err, "failed to list admins")
		return
	}

	lines := make([]notify.LowStockLine, 0, len(lowStock))
	for _, item := range lowStock {
		lines = append(lines, notify.LowStockLine{
			Name:              item.Name,
			StockBalance:      item.StockBalance,
			LowStockThreshold: item.LowStockThreshold,
		})
	}

	for _, admin := range admins {
		h.Notify.Go(&notify.Message{
			Kind:     notify.KindLowStock,
			To:       admin.Email,
			LowStock: lines,
		})
	}

	slog.Info("low stock alert queued", "items", len(lowStock), "recipients", len(admins))
	jsonResponse(w, http.StatusOK, map[string]any{"message": "low stock alert queued", "items": len(lowStock)})
}

// parseFloatOrNil parses a form-style decimal; blank or unparseable is nil.
func parseFloatOrNil(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseIntOrNil parses a form-style integer; blank or unparseable is nil.
func parseIntOrNil(s string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}
