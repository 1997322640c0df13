package handler

import (
	"encoding/json"
	"net/http"

	"github.com/openpitch/matchbook/internal/core/domain"
	"github.com/openpitch/matchbook/internal/core/ports"
)

// UserHandler is a plain pass-through over the profile table. Profiles
// have no invariants of their own; identity itself lives with the
// authentication collaborator.
type UserHandler struct {
	users ports.UserRepository
}

func NewUserHandler(users ports.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

type userView struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date"`
	Gender    string `json:"gender"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

func (h *UserHandler) Handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPost:
		h.create(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *UserHandler) get(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("userId")
	if id == "" {
		writeError(w, domain.Errorf(domain.KindInvalidArgument, "userId is required"))
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userView{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		BirthDate: user.BirthDate,
		Gender:    user.Gender,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	})
}

func (h *UserHandler) create(w http.ResponseWriter, r *http.Request) {
	var view userView
	if err := json.NewDecoder(r.Body).Decode(&view); err != nil {
		writeError(w, domain.Errorf(domain.KindInvalidArgument, "invalid json body"))
		return
	}
	if view.UserID == "" {
		view.UserID = userID(r)
	}
	if view.UserID == "" {
		writeError(w, domain.Errorf(domain.KindInvalidArgument, "missing user id"))
		return
	}

	err := h.users.Create(r.Context(), &domain.User{
		ID:        view.UserID,
		Email:     view.Email,
		FirstName: view.FirstName,
		LastName:  view.LastName,
		BirthDate: view.BirthDate,
		Gender:    view.Gender,
		Role:      view.Role,
		CreatedAt: view.CreatedAt,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"user_id": view.UserID})
}

func (h *UserHandler) update(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("userId")
	if id == "" {
		id = userID(r)
	}
	if id == "" {
		writeError(w, domain.Errorf(domain.KindInvalidArgument, "userId is required"))
		return
	}

	existing, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	var view userView
	if err := json.NewDecoder(r.Body).Decode(&view); err != nil {
		writeError(w, domain.Errorf(domain.KindInvalidArgument, "invalid json body"))
		return
	}

	existing.FirstName = view.FirstName
	existing.LastName = view.LastName
	existing.BirthDate = view.BirthDate
	existing.Gender = view.Gender
	existing.Role = view.Role

	if err := h.users.Update(r.Context(), existing); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
