package api

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/awnhq/assetportal/internal/model"
	"github.com/awnhq/assetportal/internal/store"
)

// ProfilesHandler handles staff management endpoints (admin only).
type ProfilesHandler struct {
	DB *sql.DB
}

type createProfileRequest struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Branch     string `json:"branch"`
	CostCentre string `json:"cost_centre"`
	ManagerID  *int64 `json:"manager_id"`
}

type updateProfileRequest struct {
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	Branch     string `json:"branch"`
	CostCentre string `json:"cost_centre"`
	ManagerID  *int64 `json:"manager_id"`
}

// List handles GET /api/profiles.
func (h *ProfilesHandler) List(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	if role != "" && !model.ValidRole(role) {
		jsonError(w, http.StatusBadRequest, "invalid role")
		return
	}

	profiles, err := store.ListProfiles(r.Context(), h.DB, role)
	if err != nil {
		storeError(w, err, "failed to list profiles")
		return
	}
	if profiles == nil {
		profiles = []model.Profile{}
	}
	jsonResponse(w, http.StatusOK, profiles)
}

// Create handles POST /api/profiles.
func (h *ProfilesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Password == "" {
		jsonError(w, http.StatusBadRequest, "password required")
		return
	}
	if err := model.ValidatePassword(req.Password); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	profile, err := store.CreateProfile(r.Context(), h.DB, req.FullName, req.Email, string(hash),
		req.Role, req.Branch, req.CostCentre, req.ManagerID)
	if err != nil {
		if store.IsValidation(err) {
			storeError(w, err, "failed to create profile")
			return
		}
		jsonError(w, http.StatusConflict, "email already exists")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("profile created", "admin", claims.Email, "new_profile", profile.Email, "role", profile.Role)
	jsonResponse(w, http.StatusCreated, profile)
}

// Get handles GET /api/profiles/{id}.
func (h *ProfilesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid profile id")
		return
	}

	profile, err := store.GetProfile(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get profile")
		return
	}
	if profile == nil {
		jsonError(w, http.StatusNotFound, "profile not found")
		return
	}
	jsonResponse(w, http.StatusOK, profile)
}

// Update handles PUT /api/profiles/{id}.
func (h *ProfilesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid profile id")
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.UpdateProfile(r.Context(), h.DB, id, req.FullName, req.Role,
		req.Branch, req.CostCentre, req.ManagerID); err != nil {
		storeError(w, err, "failed to update profile")
		return
	}

	profile, _ := store.GetProfile(r.Context(), h.DB, id)
	claims := GetClaims(r.Context())
	if profile != nil {
		slog.Info("profile updated", "admin", claims.Email, "profile", profile.Email, "role", profile.Role)
	}
	jsonResponse(w, http.StatusOK, profile)
}

// Delete handles DELETE /api/profiles/{id}: a soft delete that orphans any
// reports pointing at the deleted profile.
func (h *ProfilesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid profile id")
		return
	}

	// Prevent self-deletion.
	claims := GetClaims(r.Context())
	if claims != nil && claims.UserID == id {
		jsonError(w, http.StatusBadRequest, "cannot delete yourself")
		return
	}

	// Look up target name before deleting.
	target, _ := store.GetProfile(r.Context(), h.DB, id)
	targetName := fmt.Sprintf("id:%d", id)
	if target != nil {
		targetName = target.Email
	}

	if err := store.DeleteProfile(r.Context(), h.DB, id); err != nil {
		storeError(w, err, "failed to delete profile")
		return
	}

	slog.Info("profile deleted", "admin", claims.Email, "deleted_profile", targetName)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "profile deleted"})
}
