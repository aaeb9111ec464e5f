package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	pkgerrors "github.com/servicepro/servicepro-client/pkg/errors"
)

// ThreadForBooking fetches the booking's chat thread, creating it on first
// access.
func (c *Client) ThreadForBooking(ctx context.Context, bookingID string) (*ChatThread, error) {
	if bookingID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking id is required")
	}
	var data struct {
		Thread ChatThread `json:"thread"`
	}
	path := "/chat/booking/" + url.PathEscape(bookingID) + "/thread"
	if err := c.do(ctx, "chat.thread", http.MethodGet, path, nil, nil, true, &data); err != nil {
		return nil, err
	}
	return &data.Thread, nil
}

// Messages lists a thread's messages in creation order.
func (c *Client) Messages(ctx context.Context, threadID string) ([]ChatMessage, error) {
	var data struct {
		Items []ChatMessage `json:"items"`
	}
	path := "/chat/threads/" + url.PathEscape(threadID) + "/messages"
	if err := c.do(ctx, "chat.messages", http.MethodGet, path, nil, nil, true, &data); err != nil {
		return nil, err
	}
	return data.Items, nil
}

// SendMessage appends a message to the thread as the authenticated user.
func (c *Client) SendMessage(ctx context.Context, threadID, text string) (*ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message text is required")
	}
	var data struct {
		Message ChatMessage `json:"message"`
	}
	path := "/chat/threads/" + url.PathEscape(threadID) + "/messages"
	if err := c.do(ctx, "chat.send", http.MethodPost, path, nil, map[string]any{"text": text}, true, &data); err != nil {
		return nil, err
	}
	return &data.Message, nil
}

// RequestAIReply asks the backend assistant to answer in the thread.
func (c *Client) RequestAIReply(ctx context.Context, threadID, text string) (*ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message text is required")
	}
	var data struct {
		Message ChatMessage `json:"message"`
	}
	path := "/chat/threads/" + url.PathEscape(threadID) + "/ai"
	if err := c.do(ctx, "chat.ai", http.MethodPost, path, nil, map[string]any{"text": text}, true, &data); err != nil {
		return nil, err
	}
	return &data.Message, nil
}

// VendorThreads lists the authenticated vendor's chat threads.
func (c *Client) VendorThreads(ctx context.Context) ([]ChatThread, error) {
	var data struct {
		Items []ChatThread `json:"items"`
	}
	if err := c.do(ctx, "chat.vendor_threads", http.MethodGet, "/chat/vendor/threads", nil, nil, true, &data); err != nil {
		return nil, err
	}
	return data.Items, nil
}
