package api

import (
	"context"
	"net/http"
)

// Categories fetches the backend's category metadata. The client ships its
// own copy of the taxonomy for navigation; this endpoint exists so labels can
// be reconciled with the server without a release.
func (c *Client) Categories(ctx context.Context) ([]CategoryMeta, error) {
	var data struct {
		Categories []CategoryMeta `json:"categories"`
	}
	if err := c.do(ctx, "meta.categories", http.MethodGet, "/meta/categories", nil, nil, false, &data); err != nil {
		return nil, err
	}
	return data.Categories, nil
}
