package matchid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/loveletterbots/internal/randutil"
)

func TestEncodeBoundaries(t *testing.T) {
	var zero uuid.UUID
	assert.Equal(t, "00000000000000000000000000", Encode(zero))

	var ones uuid.UUID
	for i := range ones {
		ones[i] = 0xff
	}
	assert.Equal(t, "7zzzzzzzzzzzzzzzzzzzzzzzzz", Encode(ones))
}

func TestNewFromReaderIsValidAndUnique(t *testing.T) {
	seen := make(map[string]bool)
	for seed := range int64(100) {
		id, err := NewFromReader(randutil.NewReader(seed))
		require.NoError(t, err)
		require.NoError(t, Validate(id))
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestNewFromReader(t *testing.T) {
	id, err := NewFromReader(randutil.NewReader(1))
	require.NoError(t, err)
	assert.NoError(t, Validate(id))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		id   string
		ok   bool
	}{
		{"valid", "01h2xcejqtf2nbrexx3vqjhp41", true},
		{"too short", "01h2xce", false},
		{"first char too large", "81h2xcejqtf2nbrexx3vqjhp41", false},
		{"invalid character", "01h2xcejqtf2nbrexx3vqjhpu1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
