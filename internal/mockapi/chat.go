package mockapi

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleThreadForBooking(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r)
	bookingID := chi.URLParam(r, "bookingID")

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[bookingID]
	if !ok {
		s.fail(w, http.StatusNotFound, "Booking not found")
		return
	}
	if acct.ID != b.UserID && acct.ID != b.VendorID && acct.Role != wireRoleAdmin {
		s.fail(w, http.StatusForbidden, "Not a participant of this booking")
		return
	}

	t := s.threadForBookingLocked(bookingID)
	if t == nil {
		now := time.Now()
		t = &thread{
			ID:            uuid.NewString(),
			BookingID:     b.ID,
			UserID:        b.UserID,
			VendorID:      b.VendorID,
			LastMessageAt: now,
			CreatedAt:     now,
		}
		s.threads[t.ID] = t
	}
	s.ok(w, "OK", map[string]any{"thread": s.renderThread(t)})
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.participantThreadLocked(chi.URLParam(r, "id"), acct)
	if t == nil {
		s.fail(w, http.StatusNotFound, "Thread not found")
		return
	}

	msgs := s.messages[t.ID]
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].CreatedAt.Before(msgs[j].CreatedAt) })
	s.ok(w, "OK", map[string]any{"items": msgs})
}

type messagePayload struct {
	Text string `json:"text"`
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r)

	var payload messagePayload
	if err := decodeBody(r, &payload); err != nil || strings.TrimSpace(payload.Text) == "" {
		s.fail(w, http.StatusBadRequest, "Message text is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.participantThreadLocked(chi.URLParam(r, "id"), acct)
	if t == nil {
		s.fail(w, http.StatusNotFound, "Thread not found")
		return
	}

	msg := s.appendMessageLocked(t, acct.Role, payload.Text)
	s.created(w, "Message sent", map[string]any{"message": msg})
}

func (s *Server) handleAIReply(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r)

	var payload messagePayload
	if err := decodeBody(r, &payload); err != nil || strings.TrimSpace(payload.Text) == "" {
		s.fail(w, http.StatusBadRequest, "Message text is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.participantThreadLocked(chi.URLParam(r, "id"), acct)
	if t == nil {
		s.fail(w, http.StatusNotFound, "Thread not found")
		return
	}

	s.appendMessageLocked(t, acct.Role, payload.Text)
	reply := s.appendMessageLocked(t, "ai",
		"Thanks for your message. A team member will follow up on: "+strings.TrimSpace(payload.Text))
	s.created(w, "Reply generated", map[string]any{"message": reply})
}

func (s *Server) handleVendorThreads(w http.ResponseWriter, r *http.Request) {
	acct := s.requireRole(r, wireRoleVendor)
	if acct == nil {
		s.fail(w, http.StatusForbidden, "Vendor access required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var items []map[string]any
	for _, t := range s.threads {
		if t.VendorID == acct.ID {
			items = append(items, s.renderThread(t))
		}
	}
	s.ok(w, "OK", map[string]any{"items": items})
}

// Callers of the locked helpers hold the mutex.

func (s *Server) threadForBookingLocked(bookingID string) *thread {
	for _, t := range s.threads {
		if t.BookingID == bookingID {
			return t
		}
	}
	return nil
}

func (s *Server) participantThreadLocked(threadID string, acct *account) *thread {
	t, ok := s.threads[threadID]
	if !ok {
		return nil
	}
	if acct.ID != t.UserID && acct.ID != t.VendorID && acct.Role != wireRoleAdmin {
		return nil
	}
	return t
}

func (s *Server) appendMessageLocked(t *thread, senderRole, text string) *message {
	msg := &message{
		ID:         uuid.NewString(),
		ThreadID:   t.ID,
		SenderRole: senderRole,
		Text:       strings.TrimSpace(text),
		CreatedAt:  time.Now(),
	}
	s.messages[t.ID] = append(s.messages[t.ID], msg)
	t.LastMessageAt = msg.CreatedAt
	return msg
}
