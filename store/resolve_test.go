package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftdeck/craftdeck/internal/apperr"
)

func TestValidateID(t *testing.T) {
	t.Run("CanonicalUUIDPasses", func(t *testing.T) {
		assert.NoError(t, ValidateID("a2b8df8e-9f2c-4c3e-8d1a-0f6b5f6f7a8b"))
	})

	t.Run("Rejected", func(t *testing.T) {
		tests := []struct {
			name string
			id   string
		}{
			{"Empty", ""},
			{"PlainText", "not-a-uuid"},
			{"NoHyphens", "a2b8df8e9f2c4c3e8d1a0f6b5f6f7a8b"},
			{"Braced", "{a2b8df8e-9f2c-4c3e-8d1a-0f6b5f6f7a8b}"},
			{"URNForm", "urn:uuid:a2b8df8e-9f2c-4c3e-8d1a-0f6b5f6f7a8b"},
			{"NonHexChars", "zzzzzzzz-9f2c-4c3e-8d1a-0f6b5f6f7a8b"},
			{"TooShort", "a2b8df8e-9f2c-4c3e-8d1a"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := ValidateID(tt.id)
				require.Error(t, err)
				assert.True(t, apperr.IsKind(err, apperr.KindValidation))
			})
		}
	})
}

func TestDisambiguate(t *testing.T) {
	t.Run("EmptyList", func(t *testing.T) {
		pick, count := disambiguate[Project](nil)
		assert.Nil(t, pick)
		assert.Equal(t, 0, count)
	})

	t.Run("SingleRow", func(t *testing.T) {
		only := &Project{ID: "p1"}
		pick, count := disambiguate([]*Project{only})
		assert.Same(t, only, pick)
		assert.Equal(t, 1, count)
	})

	t.Run("DuplicatesPickFirstByStoreOrder", func(t *testing.T) {
		first := &Project{ID: "p1", Name: "first"}
		second := &Project{ID: "p1", Name: "second"}
		pick, count := disambiguate([]*Project{first, second})
		assert.Same(t, first, pick)
		assert.Equal(t, 2, count)
	})

	t.Run("TieBreakIsStableAcrossCalls", func(t *testing.T) {
		rows := []*Conversation{{ID: "c1", Title: "a"}, {ID: "c1", Title: "b"}, {ID: "c1", Title: "c"}}
		for i := 0; i < 10; i++ {
			pick, count := disambiguate(rows)
			assert.Same(t, rows[0], pick)
			assert.Equal(t, 3, count)
		}
	})
}
