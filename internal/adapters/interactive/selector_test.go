package interactive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trebuchet-org/cep78-cli/internal/domain/config"
)

func TestSelectorAdapter_Suggest(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{})
	candidates := []string{"ownership_mode", "nft_kind", "nft_metadata_kind", "burn_mode", "minting_mode"}

	tests := []struct {
		input string
		first string
	}{
		{"ownrship", "ownership_mode"},
		{"burn", "burn_mode"},
		{"nftkind", "nft_kind"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := s.Suggest(tt.input, candidates)
			if assert.NotEmpty(t, got) {
				assert.Equal(t, tt.first, got[0])
			}
			assert.LessOrEqual(t, len(got), maxSuggestions)
		})
	}

	assert.Empty(t, s.Suggest("", candidates))
	assert.Empty(t, s.Suggest("zzzz", candidates))
}

func TestSelectorAdapter_NonInteractive(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})

	ok, err := s.Confirm(context.Background(), "Send?")
	assert.Error(t, err)
	assert.False(t, ok)

	_, err = s.Select(context.Background(), "Pick", []string{"a", "b"})
	assert.Error(t, err)
}

func TestCreateFuzzySearchFunc(t *testing.T) {
	items := []string{"collection_name", "events_mode"}
	search := createFuzzySearchFunc(items)

	assert.True(t, search("", 0))
	assert.True(t, search("NAME", 0))
	assert.True(t, search("evmd", 1))
	assert.False(t, search("xyz", 1))
}
