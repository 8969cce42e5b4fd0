package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestSightingID(t *testing.T) {
	tests := []struct {
		name     string
		hex      string
		expected int64
	}{
		{
			name:     "trailing hex parses base-16",
			hex:      "64b0c7e2f1a2b3c4d5e6f708",
			expected: 0xd5e6f708,
		},
		{
			name:     "leading characters are ignored",
			hex:      "ffffffffffffffffd5e6f708",
			expected: 0xd5e6f708,
		},
		{
			name:     "small trailing value",
			hex:      "64b0c7e2f1a2b3c400000001",
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := bson.ObjectIDFromHex(tt.hex)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, SightingID(id))
		})
	}
}

func TestSightingID_Deterministic(t *testing.T) {
	id := bson.NewObjectID()
	first := SightingID(id)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, SightingID(id))
	}
}

func TestSightingID_ZeroFallsBackToRandom(t *testing.T) {
	var zero bson.ObjectID
	for i := 0; i < 50; i++ {
		id := SightingID(zero)
		assert.GreaterOrEqual(t, id, int64(0))
		assert.Less(t, id, int64(1_000_000))
	}
}
