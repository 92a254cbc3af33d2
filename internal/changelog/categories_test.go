package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCategories(t *testing.T) {
	t.Parallel()

	cats := DefaultCategories()
	require.NoError(t, cats.Validate())
	assert.Equal(t, []string{"feature", "bugfix", "breaking", "docs", "chore"}, cats.Keys())

	cat, ok := cats.Lookup("breaking")
	require.True(t, ok)
	assert.Equal(t, "### Breaking Changes", cat.Header)

	assert.True(t, cats.Has("docs"))
	assert.False(t, cats.Has("unknown"))
}

func TestCategoriesValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cats    Categories
		wantErr string
	}{
		"valid": {
			cats: Categories{{Key: "added", Header: "### Added"}},
		},
		"empty table": {
			cats:    Categories{},
			wantErr: "empty",
		},
		"missing key": {
			cats:    Categories{{Header: "### Added"}},
			wantErr: "categories[0].key",
		},
		"missing header": {
			cats:    Categories{{Key: "added"}},
			wantErr: "categories[0].header",
		},
		"duplicate key": {
			cats:    Categories{{Key: "added", Header: "### Added"}, {Key: "added", Header: "### New"}},
			wantErr: "duplicate category",
		},
	}

	for name, tt := range tests {
		name, tt := name, tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := tt.cats.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
