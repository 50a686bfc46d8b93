package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"aiahub/internal/bootstrap/logging"
	"aiahub/internal/domain/rbac"
	"aiahub/internal/errs"
	"aiahub/internal/ports"
	"aiahub/internal/usecase/users"
)

type addUserRequest struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Agency string `json:"agency"`
}

type updateUserRequest struct {
	Name   *string `json:"name"`
	Role   *string `json:"role"`
	Agency *string `json:"agency"`
}

type userResponse struct {
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	RoleName    string   `json:"role_name"`
	Agency      string   `json:"agency"`
	CreatedAt   string   `json:"created_at"`
	LastLogin   *string  `json:"last_login,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

type userListResponse struct {
	Users []userResponse `json:"users"`
}

func toUserResponse(user ports.User) userResponse {
	return userResponse{
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		RoleName:  rbac.DisplayName(user.Role),
		Agency:    user.Agency,
		CreatedAt: user.CreatedAt,
		LastLogin: user.LastLogin,
	}
}

// handleMe identifies the calling actor. Every role carries the dashboard
// permission, so any registered user can resolve themselves; unknown actors
// are denied like everywhere else.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	actor, err := s.authorize(r, rbac.PermViewDashboard)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.users.RecordLogin(r.Context(), actor.Email); err != nil {
		logging.Warn(r.Context(), "record login failed",
			slog.String("email", actor.Email),
			slog.Any("err", errs.Loggable(err)))
	}

	response := toUserResponse(actor)
	response.Permissions = rbac.Permissions(actor.Role)
	respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	if _, err := s.authorize(r, rbac.PermManageUsers); err != nil {
		respondError(w, r, err)
		return
	}

	list, err := s.users.ListUsers(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	entries := make([]userResponse, 0, len(list))
	for _, user := range list {
		entries = append(entries, toUserResponse(user))
	}
	respondJSON(w, http.StatusOK, userListResponse{Users: entries})
}

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	if _, err := s.authorize(r, rbac.PermManageUsers); err != nil {
		respondError(w, r, err)
		return
	}

	var req addUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	if err := s.users.AddUser(r.Context(), users.AddUserInput{
		Email:  req.Email,
		Name:   req.Name,
		Role:   req.Role,
		Agency: req.Agency,
	}); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := s.users.GetUser(r.Context(), req.Email)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	if _, err := s.authorize(r, rbac.PermManageUsers); err != nil {
		respondError(w, r, err)
		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	email := chi.URLParam(r, "email")
	if err := s.users.UpdateUser(r.Context(), users.UpdateUserInput{
		Email:  email,
		Name:   req.Name,
		Role:   req.Role,
		Agency: req.Agency,
	}); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := s.users.GetUser(r.Context(), email)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if _, err := s.authorize(r, rbac.PermManageUsers); err != nil {
		respondError(w, r, err)
		return
	}

	email := chi.URLParam(r, "email")
	removed, err := s.users.DeleteUser(r.Context(), email)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !removed {
		respondError(w, r, fmt.Errorf("%w: %q", ports.ErrUserNotFound, email))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
