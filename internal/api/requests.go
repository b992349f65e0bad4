package api

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/awnhq/assetportal/internal/model"
	"github.com/awnhq/assetportal/internal/notify"
	"github.com/awnhq/assetportal/internal/store"
)

// RequestsHandler handles asset request endpoints.
type RequestsHandler struct {
	DB     *sql.DB
	Notify *notify.Dispatcher
}

type submitRequest struct {
	Items []store.LineInput `json:"items"`
	Notes string            `json:"notes"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// Ancillary cost fields arrive as free text from the admin form; values
// that do not parse as decimals leave the stored cost unchanged.
type costsRequest struct {
	EmbroideryCost string `json:"embroidery_cost"`
	ShippingCost   string `json:"shipping_cost"`
}

// requestView is a request with its lines and presented total attached.
type requestView struct {
	model.Request
	Items        []model.RequestItem `json:"items"`
	DisplayTotal float64             `json:"display_total"`
}

// Submit handles POST /api/requests.
func (h *RequestsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	request, err := store.SubmitRequest(r.Context(), h.DB, claims.UserID, req.Items, req.Notes)
	if err != nil {
		storeError(w, err, "failed to submit request")
		return
	}

	view, err := h.expandRequest(r.Context(), *request)
	if err != nil {
		storeError(w, err, "failed to load request")
		return
	}

	slog.Info("request submitted", "request", request.ID, "employee", claims.Email, "total", request.TotalCost)
	h.notifyManager(r.Context(), claims.UserID, view.Items)
	jsonResponse(w, http.StatusCreated, view)
}

// ListMine handles GET /api/requests: the caller's own requests, newest first.
func (h *RequestsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	requests, err := store.ListEmployeeRequests(r.Context(), h.DB, claims.UserID)
	if err != nil {
		storeError(w, err, "failed to list requests")
		return
	}

	views, err := h.expandRequests(r.Context(), requests)
	if err != nil {
		storeError(w, err, "failed to load requests")
		return
	}
	jsonResponse(w, http.StatusOK, views)
}

// Approvals handles GET /api/approvals: pending requests from the manager's
// reports, oldest first.
func (h *RequestsHandler) Approvals(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	requests, err := store.ListManagerPending(r.Context(), h.DB, claims.UserID)
	if err != nil {
		storeError(w, err, "failed to list approvals")
		return
	}

	views, err := h.expandRequests(r.Context(), requests)
	if err != nil {
		storeError(w, err, "failed to load approvals")
		return
	}
	jsonResponse(w, http.StatusOK, views)
}

// Approve handles POST /api/requests/{id}/approve.
func (h *RequestsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	claims := GetClaims(r.Context())
	if err := store.ApproveRequest(r.Context(), h.DB, id, claims.UserID); err != nil {
		storeError(w, err, "failed to approve request")
		return
	}

	slog.Info("request approved", "request", id, "manager", claims.Email)
	request, _ := store.GetRequest(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, request)
}

// Reject handles POST /api/requests/{id}/reject. A reason is required but
// only logged; the stored request keeps no rejection note.
func (h *RequestsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var req rejectRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Reason == "" {
		jsonError(w, http.StatusBadRequest, "rejection reason required")
		return
	}

	claims := GetClaims(r.Context())
	if err := store.RejectRequest(r.Context(), h.DB, id, claims.UserID); err != nil {
		storeError(w, err, "failed to reject request")
		return
	}

	slog.Info("request rejected", "request", id, "manager", claims.Email, "reason", req.Reason)
	request, _ := store.GetRequest(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, request)
}

// DispatchQueue handles GET /api/dispatch: approved requests in FIFO order.
func (h *RequestsHandler) DispatchQueue(w http.ResponseWriter, r *http.Request) {
	requests, err := store.ListDispatchQueue(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to list dispatch queue")
		return
	}

	views, err := h.expandRequests(r.Context(), requests)
	if err != nil {
		storeError(w, err, "failed to load dispatch queue")
		return
	}
	jsonResponse(w, http.StatusOK, views)
}

// Dispatch handles POST /api/requests/{id}/dispatch.
func (h *RequestsHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	claims := GetClaims(r.Context())
	if err := store.DispatchRequest(r.Context(), h.DB, id, claims.UserID); err != nil {
		storeError(w, err, "failed to dispatch request")
		return
	}

	slog.Info("request dispatched", "request", id, "admin", claims.Email)
	request, _ := store.GetRequest(r.Context(), h.DB, id)
	if request != nil {
		h.notifyDispatched(r.Context(), request)
	}
	jsonResponse(w, http.StatusOK, request)
}

// SetCosts handles PUT /api/requests/{id}/costs.
func (h *RequestsHandler) SetCosts(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var req costsRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	embroidery := parseFloatOrNil(req.EmbroideryCost)
	shipping := parseFloatOrNil(req.ShippingCost)

	if err := store.UpsertRequestCosts(r.Context(), h.DB, id, embroidery, shipping); err != nil {
		storeError(w, err, "failed to update request costs")
		return
	}

	costs, err := store.GetRequestCosts(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to load request costs")
		return
	}
	jsonResponse(w, http.StatusOK, costs)
}

func (h *RequestsHandler) expandRequest(ctx context.Context, request model.Request) (*requestView, error) {
	items, err := store.ListRequestItems(ctx, h.DB, request.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.RequestItem{}
	}

	costs, err := store.GetRequestCosts(ctx, h.DB, request.ID)
	if err != nil {
		return nil, err
	}

	total := model.ItemsCost(items)
	if costs != nil {
		total += costs.EmbroideryCost + costs.ShippingCost
	}

	return &requestView{Request: request, Items: items, DisplayTotal: total}, nil
}

func (h *RequestsHandler) expandRequests(ctx context.Context, requests []model.Request) ([]requestView, error) {
	views := make([]requestView, 0, len(requests))
	for _, request := range requests {
		view, err := h.expandRequest(ctx, request)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// notifyManager alerts the submitting employee's manager, if they have one.
// Notification failures never surface to the employee.
func (h *RequestsHandler) notifyManager(ctx context.Context, employeeID int64, items []model.RequestItem) {
	employee, err := store.GetProfile(ctx, h.DB, employeeID)
	if err != nil || employee == nil {
		slog.Error("manager alert skipped: employee lookup failed", "employee", employeeID, "error", err)
		return
	}
	if employee.ManagerID == nil {
		slog.Info("manager alert skipped: employee has no manager", "employee", employeeID)
		return
	}

	manager, err := store.GetProfile(ctx, h.DB, *employee.ManagerID)
	if err != nil || manager == nil || manager.DeletedAt != nil {
		slog.Error("manager alert skipped: manager lookup failed", "manager", *employee.ManagerID, "error", err)
		return
	}

	h.Notify.Go(&notify.Message{
		Kind:         notify.KindManagerAlert,
		To:           manager.Email,
		EmployeeName: employee.FullName,
		Items:        notifyItems(items),
	})
}

// notifyDispatched tells the employee their order has shipped.
func (h *RequestsHandler) notifyDispatched(ctx context.Context, request *model.Request) {
	employee, err := store.GetProfile(ctx, h.DB, request.UserID)
	if err != nil || employee == nil {
		slog.Error("dispatch notification skipped: employee lookup failed", "employee", request.UserID, "error", err)
		return
	}

	items, err := store.ListRequestItems(ctx, h.DB, request.ID)
	if err != nil {
		slog.Error("dispatch notification skipped: line lookup failed", "request", request.ID, "error", err)
		return
	}

	h.Notify.Go(&notify.Message{
		Kind:         notify.KindDispatched,
		To:           employee.Email,
		EmployeeName: employee.FullName,
		Items:        notifyItems(items),
	})
}

func notifyItems(items []model.RequestItem) []notify.ItemLine {
	lines := make([]notify.ItemLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, notify.ItemLine{Name: item.ItemName, Quantity: item.Quantity, Size: item.Size})
	}
	return lines
}
