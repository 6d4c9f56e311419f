package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=1024"`
	Role     string `json:"role" validate:"omitempty,max=64"`
}

type registerResponse struct {
	Message string            `json:"message"`
	User    models.PublicUser `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

// claimsView is the decoded token handed back by the protected routes.
type claimsView struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	Iat  int64  `json:"iat"`
	Exp  int64  `json:"exp"`
}

type protectedResponse struct {
	Message string     `json:"message"`
	User    claimsView `json:"user"`
}

func newClaimsView(c *auth.Claims) claimsView {
	v := claimsView{ID: c.UserID(), Role: c.Role}
	if c.IssuedAt != nil {
		v.Iat = c.IssuedAt.Unix()
	}
	if c.ExpiresAt != nil {
		v.Exp = c.ExpiresAt.Unix()
	}
	return v
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !s.bind(w, r, &req) {
		return
	}

	user, err := s.accounts.Register(r.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			s.logger.Info(r.Context(), "registration rejected", "reason", err.Error())
		}
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "user_id", user.ID, "role", user.Role)
	writeJSON(w, http.StatusOK, registerResponse{Message: "Registration successful", User: *user})
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.bind(w, r, &req) {
		return
	}

	res, err := s.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			// the client only sees the unified message
			s.logger.Info(r.Context(), "login rejected", "reason", err.Error())
		}
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Message: "Login success", Token: res.AccessToken, User: res.User})
}

func (s *HTTPServer) handleUser(w http.ResponseWriter, r *http.Request) {
	s.writeProtected(w, r, "User Route Accessed")
}

func (s *HTTPServer) handleAdmin(w http.ResponseWriter, r *http.Request) {
	s.writeProtected(w, r, "Admin Route Accessed")
}

func (s *HTTPServer) writeProtected(w http.ResponseWriter, r *http.Request, msg string) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		s.writeError(w, r, common.ErrUnauthenticated)
		return
	}
	writeJSON(w, http.StatusOK, protectedResponse{Message: msg, User: newClaimsView(claims)})
}

// bind decodes and validates the request body, writing a 400 on failure.
func (s *HTTPServer) bind(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeMessage(w, http.StatusBadRequest, "Invalid field: "+verrs[0].Field())
			return false
		}
		writeMessage(w, http.StatusBadRequest, "Invalid request")
		return false
	}
	return true
}
