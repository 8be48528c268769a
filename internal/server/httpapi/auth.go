package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/papper-tech/auth-service/internal/common"
	"github.com/papper-tech/auth-service/internal/server/services"
)

type registrationRequest struct {
	Secret   string `json:"secret"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Login    string `json:"login"`
	Password string `json:"password"`
}

type emailRegistrationRequest struct {
	Email string `json:"email"`
}

type tokenRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) handleRegistration(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}

	var req registrationRequest
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "invalid form")
			return
		}
		req = registrationRequest{
			Secret:   r.PostForm.Get("secret"),
			Name:     r.PostForm.Get("name"),
			Surname:  r.PostForm.Get("surname"),
			Login:    r.PostForm.Get("login"),
			Password: r.PostForm.Get("password"),
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON")
		return
	}

	req.Login = strings.TrimSpace(req.Login)
	if req.Secret == "" || req.Login == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "secret, login and password are required")
		return
	}

	err := s.users.Register(r.Context(), req.Secret, req.Name, req.Surname, req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorConflict):
			writeError(w, http.StatusConflict, "conflict", "user already exists")
		case errors.Is(err, common.ErrInvalidSecret):
			writeError(w, http.StatusUnauthorized, "invalid_secret", "invalid secret")
		default:
			s.logger.Error(r.Context(), "registration failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "internal", "failed to register user")
		}
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleEmailRegistration(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}

	var req emailRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "bad_request", "valid email is required")
		return
	}

	if err := s.users.RegisterByEmail(r.Context(), req.Email); err != nil {
		if errors.Is(err, common.ErrorConflict) {
			writeError(w, http.StatusConflict, "conflict", "user already exists")
			return
		}
		s.logger.Error(r.Context(), "email registration failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal", "failed to register user")
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}

	var req tokenRequest
	if isFormRequest(r) {
		// OAuth2 password-grant style form fields.
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "invalid form")
			return
		}
		req.Login = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON")
		return
	}

	pair, err := s.users.Login(r.Context(), strings.TrimSpace(req.Login), req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "incorrect username or password")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal", "failed to log in")
		return
	}

	s.writeTokenPair(w, pair)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}

	var req refreshRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.RefreshToken == "" {
		if c, err := r.Cookie(common.RefreshTokenCookieName); err == nil {
			req.RefreshToken = c.Value
		}
	}
	if req.RefreshToken == "" {
		writeError(w, http.StatusUnauthorized, "invalid_token", "no refresh token provided")
		return
	}

	pair, err := s.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrTokenExpired):
			writeError(w, http.StatusUnauthorized, "token_expired", "token has expired")
		case errors.Is(err, common.ErrInvalidToken):
			writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		default:
			s.logger.Error(r.Context(), "refresh failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "internal", "failed to refresh tokens")
		}
		return
	}

	s.writeTokenPair(w, pair)
}

// writeTokenPair delivers a freshly minted pair both as httponly cookies and
// as a JSON body, plus the legacy Authorization response header.
func (s *Server) writeTokenPair(w http.ResponseWriter, pair *services.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.AccessTokenCookieName,
		Value:    pair.AccessToken,
		Domain:   s.cfg.CookieDomain,
		Path:     "/",
		MaxAge:   int(s.cfg.AccessTokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     common.RefreshTokenCookieName,
		Value:    pair.RefreshToken,
		Domain:   s.cfg.CookieDomain,
		Path:     "/",
		MaxAge:   int(s.cfg.RefreshTokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("Authorization", "bearer "+pair.AccessToken)

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// accessTokenFromRequest extracts the access token from the access-token
// cookie or, failing that, the Authorization bearer header.
func accessTokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(common.AccessTokenCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	const bearerPrefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(auth, bearerPrefix))
	}

	return ""
}

// authenticate is the guard for protected endpoints. On failure it writes
// the 401 response and returns an empty user ID.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (string, bool) {
	token := accessTokenFromRequest(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "no token provided")
		return "", false
	}

	userID, err := s.users.Authenticate(token)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			writeError(w, http.StatusUnauthorized, "token_expired", "token has expired")
		} else {
			writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		}
		return "", false
	}

	return userID, true
}

func isFormRequest(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(ct, "multipart/form-data")
}
