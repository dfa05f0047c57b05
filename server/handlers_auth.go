package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	apperrors "github.com/jrsteele09/go-inventory-server/internal/errors"
	"github.com/jrsteele09/go-inventory-server/users"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string         `json:"token"`
	Email string         `json:"email"`
	Role  users.RoleType `json:"role"`
}

// LoginHandler authenticates email/password credentials and issues a
// session token. Unknown users and wrong passwords are indistinguishable
// from the outside: both produce the same generic 401, and a missing user
// still pays for a hash comparison so the two cases take comparable time.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "Invalid JSON body")
			return
		}
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "bad_request", "email and password are required")
			return
		}

		user, err := s.userRepo.GetByEmail(r.Context(), users.NormalizeEmail(req.Email))
		if err != nil {
			if apperrors.Is(err, apperrors.ErrUserNotFound) {
				users.CompareDummyHash(req.Password)
				writeError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
				return
			}
			// Data-integrity faults and store failures are server errors;
			// details stay in the log, never in the response
			log.Error().
				Err(err).
				Str("request_id", RequestIDFromContext(r.Context())).
				Msg("user lookup failed")
			writeError(w, http.StatusInternalServerError, "server_error", "")
			return
		}

		ok, err := user.CheckPassword(req.Password)
		if err != nil {
			log.Error().
				Err(err).
				Str("request_id", RequestIDFromContext(r.Context())).
				Str("email", user.Email).
				Msg("stored password hash is invalid")
			writeError(w, http.StatusInternalServerError, "server_error", "")
			return
		}
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
			return
		}

		sessionToken, err := s.sessions.Issue(user)
		if err != nil {
			log.Error().
				Err(err).
				Str("request_id", RequestIDFromContext(r.Context())).
				Msg("failed to issue session token")
			writeError(w, http.StatusInternalServerError, "server_error", "")
			return
		}

		writeJSON(w, http.StatusOK, loginResponse{
			Token: sessionToken,
			Email: user.Email,
			Role:  user.Role,
		})
	}
}

// HealthzHandler reports liveness
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// PreflightHandler answers OPTIONS requests that carry no Origin header.
// Cross-origin preflights are answered by the CORS middleware before the
// request reaches this handler.
func (s *Server) PreflightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}
