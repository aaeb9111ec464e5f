package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/servicepro/servicepro-client/pkg/enums"
	pkgerrors "github.com/servicepro/servicepro-client/pkg/errors"
	"github.com/servicepro/servicepro-client/pkg/settings"
)

func settingsPath(scope enums.Role) (string, error) {
	if scope != enums.RoleAdmin && scope != enums.RoleVendor {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "settings scope must be admin or vendor")
	}
	return "/settings/" + url.PathEscape(scope.String()), nil
}

// GetSettings fetches the stored settings document for a scope, merged over
// the shipped defaults so partially-populated documents render completely.
func (c *Client) GetSettings(ctx context.Context, scope enums.Role) (settings.Document, error) {
	path, err := settingsPath(scope)
	if err != nil {
		return nil, err
	}

	var data struct {
		Settings settings.Document `json:"settings"`
	}
	if err := c.do(ctx, "settings.get", http.MethodGet, path, nil, nil, true, &data); err != nil {
		return nil, err
	}

	merged, err := settings.Merge(settings.Defaults(scope), data.Settings)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "merge settings")
	}
	return merged, nil
}

// UpdateSettings stores the document for a scope and returns the server's
// resulting document.
func (c *Client) UpdateSettings(ctx context.Context, scope enums.Role, doc settings.Document) (settings.Document, error) {
	path, err := settingsPath(scope)
	if err != nil {
		return nil, err
	}

	var data struct {
		Settings settings.Document `json:"settings"`
	}
	if err := c.do(ctx, "settings.update", http.MethodPut, path, nil, doc, true, &data); err != nil {
		return nil, err
	}
	return data.Settings, nil
}
