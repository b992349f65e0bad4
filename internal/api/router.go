package api

import (
	"database/sql"
	"net/http"

	"github.com/awnhq/assetportal/internal/model"
	"github.com/awnhq/assetportal/internal/notify"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, notifier *notify.Dispatcher) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	profilesHandler := &ProfilesHandler{DB: db}
	itemsHandler := &ItemsHandler{DB: db, Notify: notifier}
	requestsHandler := &RequestsHandler{DB: db, Notify: notifier}

	authMW := AuthMiddleware(jwtSecret, db)
	requireAdmin := RequireRole(model.RoleAdmin)
	requireManager := RequireRole(model.RoleManager)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Requests: submit and own history (all roles).
	mux.Handle("POST /api/requests", authMW(http.HandlerFunc(requestsHandler.Submit)))
	mux.Handle("GET /api/requests", authMW(http.HandlerFunc(requestsHandler.ListMine)))

	// Approvals (manager+).
	mux.Handle("GET /api/approvals", authMW(requireManager(http.HandlerFunc(requestsHandler.Approvals))))
	mux.Handle("POST /api/requests/{id}/approve", authMW(requireManager(http.HandlerFunc(requestsHandler.Approve))))
	mux.Handle("POST /api/requests/{id}/reject", authMW(requireManager(http.HandlerFunc(requestsHandler.Reject))))

	// Dispatch and costs (admin only).
	mux.Handle("GET /api/dispatch", authMW(requireAdmin(http.HandlerFunc(requestsHandler.DispatchQueue))))
	mux.Handle("POST /api/requests/{id}/dispatch", authMW(requireAdmin(http.HandlerFunc(requestsHandler.Dispatch))))
	mux.Handle("PUT /api/requests/{id}/costs", authMW(requireAdmin(http.HandlerFunc(requestsHandler.SetCosts))))

	// Catalog: read (all roles), write (admin only).
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/items", authMW(requireAdmin(http.HandlerFunc(itemsHandler.Create))))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PUT /api/items/{id}", authMW(requireAdmin(http.HandlerFunc(itemsHandler.Update))))

	// Stock (admin only).
	mux.Handle("POST /api/items/{id}/stock", authMW(requireAdmin(http.HandlerFunc(itemsHandler.ReceiveStock))))
	mux.Handle("GET /api/items/{id}/receipts", authMW(requireAdmin(http.HandlerFunc(itemsHandler.Receipts))))
	mux.Handle("GET /api/stock/summary", authMW(requireAdmin(http.HandlerFunc(itemsHandler.StockSummary))))
	mux.Handle("POST /api/stock/low-stock-alert", authMW(requireAdmin(http.HandlerFunc(itemsHandler.LowStockAlert))))

	// Profiles (admin only).
	mux.Handle("GET /api/profiles", authMW(requireAdmin(http.HandlerFunc(profilesHandler.List))))
	mux.Handle("POST /api/profiles", authMW(requireAdmin(http.HandlerFunc(profilesHandler.Create))))
	mux.Handle("GET /api/profiles/{id}", authMW(requireAdmin(http.HandlerFunc(profilesHandler.Get))))
	mux.Handle("PUT /api/profiles/{id}", authMW(requireAdmin(http.HandlerFunc(profilesHandler.Update))))
	mux.Handle("DELETE /api/profiles/{id}", authMW(requireAdmin(http.HandlerFunc(profilesHandler.Delete))))

	return mux
}
