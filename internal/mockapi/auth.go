package mockapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := decodeBody(r, &payload); err != nil {
		s.fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct := s.findByEmail(payload.Email)
	if acct == nil || acct.Password != payload.Password {
		s.fail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if payload.Role != "" && payload.Role != acct.Role {
		s.fail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if acct.Status == wireStatusBlocked {
		s.fail(w, http.StatusForbidden, "Account is blocked")
		return
	}

	token, err := s.mintToken(acct)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "Could not issue token")
		return
	}
	s.ok(w, "Login successful", map[string]any{
		"token": token,
		"user":  s.renderUser(acct),
	})
}

type registerPayload struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Password     string   `json:"password"`
	BusinessName string   `json:"businessName"`
	Address      string   `json:"address"`
	Categories   []string `json:"categories"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	s.register(w, r, wireRoleCustomer)
}

func (s *Server) handleVendorRegister(w http.ResponseWriter, r *http.Request) {
	s.register(w, r, wireRoleVendor)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request, role string) {
	var payload registerPayload
	if err := decodeBody(r, &payload); err != nil {
		s.fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Name == "" || payload.Email == "" || payload.Password == "" {
		s.fail(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}
	if role == wireRoleVendor && payload.BusinessName == "" {
		s.fail(w, http.StatusBadRequest, "Business name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findByEmail(payload.Email) != nil {
		s.fail(w, http.StatusBadRequest, "Email is already registered")
		return
	}

	acct := &account{
		ID:           uuid.NewString(),
		Name:         payload.Name,
		Email:        strings.ToLower(payload.Email),
		Phone:        payload.Phone,
		Password:     payload.Password,
		Role:         role,
		Status:       wireStatusActive,
		CreatedAt:    time.Now(),
		BusinessName: payload.BusinessName,
		Address:      payload.Address,
		Categories:   payload.Categories,
	}
	s.accounts[acct.ID] = acct

	token, err := s.mintToken(acct)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "Could not issue token")
		return
	}
	s.created(w, "Registration successful", map[string]any{
		"token": token,
		"user":  s.renderUser(acct),
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ok(w, "OK", map[string]any{"user": s.renderUser(acct)})
}

// findByEmail is case-insensitive. Callers hold the mutex.
func (s *Server) findByEmail(email string) *account {
	email = strings.ToLower(email)
	for _, acct := range s.accounts {
		if strings.ToLower(acct.Email) == email {
			return acct
		}
	}
	return nil
}
