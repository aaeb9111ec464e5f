package settings

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/servicepro/servicepro-client/pkg/enums"
)

func TestMergeOverlaysServerValues(t *testing.T) {
	server := Document{
		"general": map[string]any{
			"siteName": "ServicePro Local",
		},
		"commission": map[string]any{
			"percent": 15,
		},
	}

	merged, err := Merge(Defaults(enums.RoleAdmin), server)
	require.NoError(t, err)

	general := merged["general"].(map[string]any)
	require.Equal(t, "ServicePro Local", general["siteName"], "server value should win")
	require.Contains(t, general, "supportMail", "default keys must survive a partial server document")
	require.Equal(t, 15, merged["commission"].(map[string]any)["percent"])
}

func TestMergePreservesUnknownKeys(t *testing.T) {
	server := Document{
		"experimental": map[string]any{
			"flag": true,
		},
	}

	merged, err := Merge(Defaults(enums.RoleVendor), server)
	require.NoError(t, err)
	require.Contains(t, merged, "experimental", "unknown sections must be preserved")
	require.Contains(t, merged, "business", "defaults must remain")
}

func TestMergeIdempotent(t *testing.T) {
	server := Document{
		"general": map[string]any{"siteName": "X"},
		"extra":   map[string]any{"k": "v"},
	}

	once, err := Merge(Defaults(enums.RoleAdmin), server)
	require.NoError(t, err)
	twice, err := Merge(once, once)
	require.NoError(t, err)
	require.Equal(t, once, twice, "merging a merged document must not change it")
}

func TestDefaultsAreIndependentCopies(t *testing.T) {
	first := Defaults(enums.RoleAdmin)
	first["general"].(map[string]any)["siteName"] = "mutated"

	second := Defaults(enums.RoleAdmin)
	require.NotEqual(t, "mutated", second["general"].(map[string]any)["siteName"],
		"callers must not be able to corrupt the shipped defaults")
}
