package api

import (
	"context"
	"net/http"

	"github.com/servicepro/servicepro-client/pkg/enums"
	pkgerrors "github.com/servicepro/servicepro-client/pkg/errors"
)

// LoginRequest carries the credentials for Login. Role is optional; when set
// it is translated to wire vocabulary before serialization.
type LoginRequest struct {
	Email    string     `validate:"required,email"`
	Password string     `validate:"required"`
	Role     enums.Role `validate:"omitempty,oneof=admin vendor customer"`
}

// RegisterRequest carries a new account's details. Vendor registrations go to
// a dedicated backend route but share this shape.
type RegisterRequest struct {
	Name         string     `validate:"required"`
	Email        string     `validate:"required,email"`
	Phone        string     `validate:"required"`
	Password     string     `validate:"required,min=6"`
	Role         enums.Role `validate:"required,oneof=vendor customer"`
	BusinessName string
	Address      string
	Categories   []string
}

// LoginResult is the token/user pair returned by login and registration.
type LoginResult struct {
	Token string
	User  User
}

type authData struct {
	Token string   `json:"token"`
	User  wireUser `json:"user"`
}

func (d authData) toResult() (*LoginResult, error) {
	user, err := d.User.toDomain()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, fallbackMessage)
	}
	return &LoginResult{Token: d.Token, User: user}, nil
}

// Login authenticates against the backend. The call itself is
// unauthenticated; the returned token is not persisted here.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}

	body := map[string]any{
		"email":    req.Email,
		"password": req.Password,
	}
	if req.Role != "" {
		body["role"] = req.Role.Wire()
	}

	var data authData
	if err := c.do(ctx, "auth.login", http.MethodPost, "/auth/login", nil, body, false, &data); err != nil {
		return nil, err
	}
	return data.toResult()
}

// Register creates an account, routing vendors to the vendor registration
// endpoint.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*LoginResult, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}

	path := "/auth/register"
	body := map[string]any{
		"name":     req.Name,
		"email":    req.Email,
		"phone":    req.Phone,
		"password": req.Password,
	}
	if req.Role == enums.RoleVendor {
		path = "/auth/vendor/register"
		body["businessName"] = req.BusinessName
		body["address"] = req.Address
		categories := req.Categories
		if categories == nil {
			categories = []string{}
		}
		body["categories"] = categories
	}

	var data authData
	if err := c.do(ctx, "auth.register", http.MethodPost, path, nil, body, false, &data); err != nil {
		return nil, err
	}
	return data.toResult()
}

// Me fetches the identity behind the current token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var data struct {
		User wireUser `json:"user"`
	}
	if err := c.do(ctx, "auth.me", http.MethodGet, "/auth/me", nil, nil, true, &data); err != nil {
		return nil, err
	}
	user, err := data.User.toDomain()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, fallbackMessage)
	}
	return &user, nil
}
