// Package mockapi is an in-memory stand-in for the ServicePro backend. It
// speaks the backend's wire contract ({success, message, data} envelope, wire
// role/status vocabulary, HS256 bearer tokens) and backs the SDK's end-to-end
// tests and local development.
package mockapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/servicepro/servicepro-client/pkg/logger"
)

// Options configures the mock server.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	Logger    *logger.Logger
}

// Server holds every store behind one mutex; contention is irrelevant for a
// development fixture.
type Server struct {
	mu  sync.Mutex
	cfg Options
	log *logger.Logger

	accounts  map[string]*account
	offerings map[string]*offering
	bookings  map[string]*booking
	threads   map[string]*thread
	messages  map[string][]*message
	reviews   map[string]*review
	settings  map[string]map[string]any

	router chi.Router
}

func New(opts Options) *Server {
	if opts.JWTSecret == "" {
		opts.JWTSecret = "servicepro-dev-secret"
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}

	s := &Server{
		cfg:       opts,
		log:       opts.Logger,
		accounts:  map[string]*account{},
		offerings: map[string]*offering{},
		bookings:  map[string]*booking{},
		threads:   map[string]*thread{},
		messages:  map[string][]*message{},
		reviews:   map[string]*review{},
		settings:  map[string]map[string]any{},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/vendor/register", s.handleVendorRegister)
		r.Get("/services", s.handleListServices)
		r.Get("/services/{id}", s.handleGetService)
		r.Get("/meta/categories", s.handleCategories)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/auth/me", s.handleMe)

			r.Post("/bookings", s.handleCreateBooking)
			r.Get("/bookings/my", s.handleMyBookings)
			r.Get("/vendor/bookings", s.handleVendorBookings)
			r.Patch("/vendor/bookings/{id}/status", s.handleVendorBookingStatus)

			r.Get("/vendor/services", s.handleVendorServices)
			r.Post("/vendor/services", s.handleVendorCreateService)
			r.Put("/vendor/services/{id}", s.handleVendorUpdateService)
			r.Delete("/vendor/services/{id}", s.handleVendorDeleteService)

			r.Get("/admin/users", s.handleAdminUsers)
			r.Patch("/admin/users/{id}/block", s.handleAdminBlockUser)
			r.Patch("/admin/users/{id}/unblock", s.handleAdminUnblockUser)
			r.Get("/admin/vendors", s.handleAdminVendors)
			r.Patch("/admin/vendors/{id}/verify", s.handleAdminVerifyVendor)
			r.Patch("/admin/vendors/{id}/unverify", s.handleAdminUnverifyVendor)
			r.Get("/admin/services", s.handleAdminServices)
			r.Patch("/admin/services/{id}/toggle", s.handleAdminToggleService)
			r.Get("/admin/bookings", s.handleAdminBookings)
			r.Patch("/admin/bookings/{id}/status", s.handleAdminBookingStatus)

			r.Get("/chat/booking/{bookingID}/thread", s.handleThreadForBooking)
			r.Get("/chat/threads/{id}/messages", s.handleListMessages)
			r.Post("/chat/threads/{id}/messages", s.handleSendMessage)
			r.Post("/chat/threads/{id}/ai", s.handleAIReply)
			r.Get("/chat/vendor/threads", s.handleVendorThreads)

			r.Post("/reviews", s.handleCreateReview)
			r.Get("/reviews/vendor", s.handleVendorReviews)

			r.Get("/settings/{role}", s.handleGetSettings)
			r.Put("/settings/{role}", s.handlePutSettings)
		})
	})

	s.router = r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

type ctxKeyAccount struct{}

// authenticate resolves the bearer token to an account and stores it on the
// request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			s.fail(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			return []byte(s.cfg.JWTSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			s.fail(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		subject, _ := claims.GetSubject()
		s.mu.Lock()
		acct, ok := s.accounts[subject]
		s.mu.Unlock()
		if !ok {
			s.fail(w, http.StatusUnauthorized, "Unknown account")
			return
		}
		if acct.Status == wireStatusBlocked {
			s.fail(w, http.StatusForbidden, "Account is blocked")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyAccount{}, acct)))
	})
}

func accountFrom(r *http.Request) *account {
	acct, _ := r.Context().Value(ctxKeyAccount{}).(*account)
	return acct
}

// requireRole rejects callers whose wire role does not match.
func (s *Server) requireRole(r *http.Request, role string) *account {
	acct := accountFrom(r)
	if acct == nil || acct.Role != role {
		return nil
	}
	return acct
}

func (s *Server) mintToken(acct *account) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  acct.ID,
		"role": acct.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.TokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
	Meta    any    `json:"meta,omitempty"`
}

func (s *Server) ok(w http.ResponseWriter, message string, data any) {
	s.writeJSON(w, http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

func (s *Server) created(w http.ResponseWriter, message string, data any) {
	s.writeJSON(w, http.StatusCreated, envelope{Success: true, Message: message, Data: data})
}

func (s *Server) fail(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, envelope{Success: false, Message: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil && s.log != nil {
		s.log.Error(context.Background(), "encode response", err)
	}
}

func decodeBody(r *http.Request, out any) error {
	defer func() { _ = r.Body.Close() }()
	return json.NewDecoder(r.Body).Decode(out)
}
