package mockapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servicepro/servicepro-client/pkg/catalog"
	"github.com/servicepro/servicepro-client/pkg/pagination"
)

func (s *Server) handleListServices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := strings.ToLower(query.Get("q"))
	category := query.Get("category")
	subcategory := query.Get("subcategory")
	vendorID := query.Get("vendorId")
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*offering
	for _, svc := range s.offerings {
		if !svc.IsActive {
			continue
		}
		if category != "" && svc.Category != category {
			continue
		}
		if subcategory != "" && svc.Subcategory != subcategory {
			continue
		}
		if vendorID != "" && svc.VendorID != vendorID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(svc.Name), q) &&
			!strings.Contains(strings.ToLower(svc.Description), q) {
			continue
		}
		matched = append(matched, svc)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	params := pagination.Params{Page: page, Limit: limit}
	meta := pagination.MetaFor(len(matched), params)
	start := (meta.Page - 1) * meta.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + meta.Limit
	if end > len(matched) {
		end = len(matched)
	}

	items := make([]map[string]any, 0, end-start)
	for _, svc := range matched[start:end] {
		items = append(items, s.renderService(svc))
	}
	s.ok(w, "OK", map[string]any{
		"items":      items,
		"total":      meta.Total,
		"page":       meta.Page,
		"limit":      meta.Limit,
		"totalPages": meta.TotalPages,
	})
}

func (s *Server) handleGetService(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.offerings[chi.URLParam(r, "id")]
	if !ok {
		s.fail(w, http.StatusNotFound, "Service not found")
		return
	}
	s.ok(w, "OK", map[string]any{"service": s.renderService(svc)})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories := make([]map[string]any, 0, len(catalog.Categories()))
	for _, cat := range catalog.Categories() {
		subs := make([]map[string]any, 0, len(cat.Subcategories))
		for _, sub := range cat.Subcategories {
			subs = append(subs, map[string]any{
				"id":          sub.ID,
				"name":        sub.Name,
				"description": sub.Description,
				"basePrice":   sub.BasePrice,
			})
		}
		categories = append(categories, map[string]any{
			"id":            cat.ID,
			"name":          cat.Name,
			"description":   cat.Description,
			"subcategories": subs,
		})
	}
	s.ok(w, "OK", map[string]any{"categories": categories})
}

type servicePayload struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Subcategory     string          `json:"subcategory"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"durationMinutes"`
	IsActive        *bool           `json:"isActive"`
}

func (s *Server) handleVendorServices(w http.ResponseWriter, r *http.Request) {
	acct := s.requireRole(r, wireRoleVendor)
	if acct == nil {
		s.fail(w, http.StatusForbidden, "Vendor access required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var items []map[string]any
	for _, svc := range s.offerings {
		if svc.VendorID == acct.ID {
			items = append(items, s.renderService(svc))
		}
	}
	s.ok(w, "OK", map[string]any{"items": items})
}

func (s *Server) handleVendorCreateService(w http.ResponseWriter, r *http.Request) {
	acct := s.requireRole(r, wireRoleVendor)
	if acct == nil {
		s.fail(w, http.StatusForbidden, "Vendor access required")
		return
	}

	var payload servicePayload
	if err := decodeBody(r, &payload); err != nil {
		s.fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Name == "" || payload.Category == "" || payload.Subcategory == "" {
		s.fail(w, http.StatusBadRequest, "Name, category and subcategory are required")
		return
	}
	if _, ok := catalog.FindSubcategory(payload.Category, payload.Subcategory); !ok {
		s.fail(w, http.StatusBadRequest, "Unknown category or subcategory")
		return
	}

	active := true
	if payload.IsActive != nil {
		active = *payload.IsActive
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	svc := &offering{
		ID:              uuid.NewString(),
		VendorID:        acct.ID,
		Name:            payload.Name,
		Description:     payload.Description,
		Category:        payload.Category,
		Subcategory:     payload.Subcategory,
		Price:           payload.Price,
		DurationMinutes: payload.DurationMinutes,
		IsActive:        active,
		CreatedAt:       time.Now(),
	}
	s.offerings[svc.ID] = svc
	s.created(w, "Service created", map[string]any{"service": s.renderService(svc)})
}

func (s *Server) handleVendorUpdateService(w http.ResponseWriter, r *http.Request) {
	acct := s.requireRole(r, wireRoleVendor)
	if acct == nil {
		s.fail(w, http.StatusForbidden, "Vendor access required")
		return
	}

	var payload servicePayload
	if err := decodeBody(r, &payload); err != nil {
		s.fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.offerings[chi.URLParam(r, "id")]
	if !ok || svc.VendorID != acct.ID {
		s.fail(w, http.StatusNotFound, "Service not found")
		return
	}

	svc.Name = payload.Name
	svc.Description = payload.Description
	svc.Category = payload.Category
	svc.Subcategory = payload.Subcategory
	svc.Price = payload.Price
	svc.DurationMinutes = payload.DurationMinutes
	if payload.IsActive != nil {
		svc.IsActive = *payload.IsActive
	}
	s.ok(w, "Service updated", map[string]any{"service": s.renderService(svc)})
}

func (s *Server) handleVendorDeleteService(w http.ResponseWriter, r *http.Request) {
	acct := s.requireRole(r, wireRoleVendor)
	if acct == nil {
		s.fail(w, http.StatusForbidden, "Vendor access required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	svc, ok := s.offerings[id]
	if !ok || svc.VendorID != acct.ID {
		s.fail(w, http.StatusNotFound, "Service not found")
		return
	}
	delete(s.offerings, id)
	s.ok(w, "Service deleted", map[string]any{"serviceId": id})
}
