package mockapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Settings documents are stored per role scope, admin and vendor only. GET on
// an empty scope returns an empty document; the client layers defaults.
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	scope := chi.URLParam(r, "role")
	if s.requireRole(r, scope) == nil || (scope != wireRoleAdmin && scope != wireRoleVendor) {
		s.fail(w, http.StatusForbidden, "Access denied")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.settings[s.settingsKeyLocked(r, scope)]
	if doc == nil {
		doc = map[string]any{}
	}
	s.ok(w, "OK", map[string]any{"settings": doc})
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	scope := chi.URLParam(r, "role")
	if s.requireRole(r, scope) == nil || (scope != wireRoleAdmin && scope != wireRoleVendor) {
		s.fail(w, http.StatusForbidden, "Access denied")
		return
	}

	var doc map[string]any
	if err := decodeBody(r, &doc); err != nil {
		s.fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings[s.settingsKeyLocked(r, scope)] = doc
	s.ok(w, "Settings saved", map[string]any{"settings": doc})
}

// settingsKeyLocked scopes admin settings globally and vendor settings per
// account.
func (s *Server) settingsKeyLocked(r *http.Request, scope string) string {
	if scope == wireRoleAdmin {
		return "admin"
	}
	return "vendor:" + accountFrom(r).ID
}
