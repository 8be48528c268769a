package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/papper-tech/auth-service/internal/common"
	"github.com/papper-tech/auth-service/internal/server/models"
)

type userResponse struct {
	UserID     string    `json:"user_id"`
	Login      string    `json:"login"`
	Name       string    `json:"name"`
	Surname    string    `json:"surname"`
	HasFaceID  bool      `json:"has_face_id"`
	IsActive   bool      `json:"is_active"`
	UsedSecret string    `json:"used_secret,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type secretResponse struct {
	Secret    string    `json:"secret"`
	CreatedBy string    `json:"created_by"`
	UsedBy    string    `json:"used_by,omitempty"`
	IsUsed    bool      `json:"is_used"`
	CreatedAt time.Time `json:"created_at"`
}

type addSecretRequest struct {
	Secret    string `json:"secret"`
	CreatedBy string `json:"created_by"`
}

type userUpdateRequest struct {
	UserID    string `json:"user_id"`
	HasFaceID bool   `json:"has_face_id"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		UserID:     u.ID,
		Login:      u.Login,
		Name:       u.Name,
		Surname:    u.Surname,
		HasFaceID:  u.HasFaceID,
		IsActive:   u.IsActive,
		UsedSecret: u.UsedSecret.String,
		CreatedAt:  u.CreatedAt,
	}
}

func toSecretResponse(s *models.Secret) secretResponse {
	return secretResponse{
		Secret:    s.Secret,
		CreatedBy: s.CreatedBy,
		UsedBy:    s.UsedBy.String,
		IsUsed:    s.IsUsed,
		CreatedAt: s.CreatedAt,
	}
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET or POST only")
		return
	}

	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	user, err := s.users.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		s.logger.Error(r.Context(), "user lookup failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal", "failed to get user")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleSecrets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET or POST only")
		return
	}

	if _, ok := s.authenticate(w, r); !ok {
		return
	}

	list, err := s.secrets.List(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "secret listing failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal", "failed to list secrets")
		return
	}

	result := make([]secretResponse, 0, len(list))
	for _, secret := range list {
		result = append(result, toSecretResponse(secret))
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAddSecret(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}

	var req addSecretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON")
		return
	}

	req.CreatedBy = strings.TrimSpace(req.CreatedBy)
	if req.CreatedBy == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "created_by is required")
		return
	}

	secret, err := s.secrets.Add(r.Context(), strings.TrimSpace(req.Secret), req.CreatedBy)
	if err != nil {
		s.logger.Error(r.Context(), "secret creation failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal", "failed to add secret")
		return
	}

	writeJSON(w, http.StatusOK, toSecretResponse(secret))
}

func (s *Server) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}

	var req userUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON")
		return
	}

	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "user_id is required")
		return
	}

	if err := s.users.UpdateProfileFlag(r.Context(), req.UserID, req.HasFaceID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		s.logger.Error(r.Context(), "user update failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal", "failed to update user")
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}
