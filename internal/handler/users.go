package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/msomdec/tankermade/internal/domain"
	"github.com/msomdec/tankermade/internal/service"
)

// UserHandler serves profile reads and updates.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// HandleList lists users, filtered by ?q= when present. Admin only.
// GET /api/users
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, "list users", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"users": toUserDTOs(users),
	})
}

// HandleGet returns one user.
// GET /api/users/{id}
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.actorAndTarget(w, r)
	if !ok {
		return
	}

	user, err := h.users.Get(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, "get user", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(user),
	})
}

// HandleUpdate applies a partial profile update. Omitted fields are unchanged.
// PUT /api/users/{id}
// Request:  {"username":"...","email":"...","password":"...","role":"..."}
// Response: {"user": {...}}
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.actorAndTarget(w, r)
	if !ok {
		return
	}

	var req struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
		Role     *string `json:"role"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	update := service.ProfileUpdate{
		TargetID: id,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		update.Role = &role
	}

	user, err := h.users.Update(r.Context(), actor, update)
	if err != nil {
		writeServiceError(w, "update user", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(user),
	})
}

func (h *UserHandler) actorAndTarget(w http.ResponseWriter, r *http.Request) (service.Actor, uuid.UUID, bool) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return service.Actor{}, uuid.Nil, false
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID.")
		return service.Actor{}, uuid.Nil, false
	}
	return actor, id, true
}
