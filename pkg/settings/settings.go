// Package settings handles the free-form settings documents the backend
// stores per role scope. Server documents may be partially populated and may
// contain keys this client version does not know about; both must survive a
// merge over the shipped defaults.
package settings

import (
	"dario.cat/mergo"

	"github.com/servicepro/servicepro-client/pkg/enums"
)

// Document is a nested settings document keyed by section.
type Document map[string]any

// Defaults returns the empty-but-shaped document for a settings scope.
// Only admin and vendor scopes exist.
func Defaults(role enums.Role) Document {
	switch role {
	case enums.RoleAdmin:
		return Document{
			"general": map[string]any{
				"siteName":    "ServicePro",
				"supportMail": "",
			},
			"notifications": map[string]any{
				"email": true,
				"sms":   false,
			},
			"commission": map[string]any{
				"percent": 10,
			},
			"security": map[string]any{
				"twoFactor": false,
			},
			"appearance": map[string]any{
				"theme": "light",
			},
		}
	case enums.RoleVendor:
		return Document{
			"profile": map[string]any{
				"phone": "",
			},
			"business": map[string]any{
				"businessName": "",
				"address":      "",
				"categories":   []any{},
			},
			"payment": map[string]any{
				"payoutMethod": "",
			},
		}
	default:
		return Document{}
	}
}

// Merge overlays the server document on top of base, field by field. Keys
// unknown to base are preserved; the operation is idempotent.
func Merge(base, server Document) (Document, error) {
	merged := clone(base)
	if err := mergo.Merge(&merged, server, mergo.WithOverride); err != nil {
		return nil, err
	}
	return merged, nil
}

func clone(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		if nested, ok := v.(map[string]any); ok {
			inner := make(map[string]any, len(nested))
			for nk, nv := range nested {
				inner[nk] = nv
			}
			out[k] = inner
			continue
		}
		out[k] = v
	}
	return out
}
