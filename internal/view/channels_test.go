package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases and replaces spaces",
			input:    "Alpha Calls",
			expected: "alpha_calls",
		},
		{
			name:     "collapses whitespace runs",
			input:    "Beta   Signals\tVIP",
			expected: "beta_signals_vip",
		},
		{
			name:     "single word unchanged besides case",
			input:    "GammaGems",
			expected: "gammagems",
		},
		{
			name:     "empty stays empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ChannelSlug(tt.input))
		})
	}
}

func TestDeriveChannels(t *testing.T) {
	t.Run("assigns positional ids and palette colors", func(t *testing.T) {
		channels := DeriveChannels([]string{"Alpha Calls", "Beta Signals", "Gamma Gems"})
		require.Len(t, channels, 3)

		assert.Equal(t, int64(1), channels[0].ID)
		assert.Equal(t, "Alpha Calls", channels[0].Name)
		assert.Equal(t, "alpha_calls", channels[0].TelegramID)
		assert.Equal(t, "#00C853", channels[0].Color)
		assert.True(t, channels[0].IsActive)

		assert.Equal(t, int64(2), channels[1].ID)
		assert.Equal(t, "#FF9800", channels[1].Color)

		assert.Equal(t, int64(3), channels[2].ID)
		assert.Equal(t, "#F44336", channels[2].Color)
	})

	t.Run("palette cycles past eight channels", func(t *testing.T) {
		names := []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8", "c9"}
		channels := DeriveChannels(names)
		require.Len(t, channels, 9)
		assert.Equal(t, channels[0].Color, channels[8].Color)
		assert.Equal(t, int64(9), channels[8].ID)
	})

	t.Run("deduplicates keeping first-seen order", func(t *testing.T) {
		channels := DeriveChannels([]string{"Beta Signals", "Alpha Calls", "Beta Signals"})
		require.Len(t, channels, 2)
		assert.Equal(t, "Beta Signals", channels[0].Name)
		assert.Equal(t, "Alpha Calls", channels[1].Name)
	})

	t.Run("skips empty names without consuming an ordinal", func(t *testing.T) {
		channels := DeriveChannels([]string{"", "Alpha Calls"})
		require.Len(t, channels, 1)
		assert.Equal(t, int64(1), channels[0].ID)
		assert.Equal(t, "#00C853", channels[0].Color)
	})

	t.Run("names are case-sensitive", func(t *testing.T) {
		channels := DeriveChannels([]string{"Alpha Calls", "alpha calls"})
		assert.Len(t, channels, 2)
	})

	t.Run("empty input yields empty slice", func(t *testing.T) {
		assert.Empty(t, DeriveChannels(nil))
	})
}
