package country

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	tests := []struct {
		name     string
		country  string
		wantCode string
		wantOK   bool
	}{
		{"exact match", "Portugal", "PT", true},
		{"exact match multi-word", "United States", "US", true},
		{"case sensitive miss", "portugal", "", false},
		{"alias is not a table key", "USA", "", false},
		{"unknown", "Atlantis", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := Code(tt.country)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"USA", "United States"},
		{"usa", "United States"},
		{"  usa  ", "United States"},
		{"UK", "United Kingdom"},
		{"Holland", "Netherlands"},
		{"Czech Republic", "Czechia"},
		{"Portugal", "Portugal"},
		{"  Portugal  ", "Portugal"},
		{"Atlantis", "Atlantis"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Canonical(tt.in), "Canonical(%q)", tt.in)
	}
}

func TestNormalizeDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"usa", "United States"},
		{"UNITED STATES", "United States"},
		{"spain", "Spain"},
		{"SPAIN", "Spain"},
		{"new zealand", "New Zealand"},
		{"  portugal ", "Portugal"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDisplayName(tt.in), "NormalizeDisplayName(%q)", tt.in)
	}
}

func TestEquivalent(t *testing.T) {
	assert.True(t, Equivalent("usa", "United States"))
	assert.True(t, Equivalent("USA", "usa"))
	assert.True(t, Equivalent("UK", "united kingdom"))
	assert.True(t, Equivalent("Spain", "spain"))
	assert.False(t, Equivalent("Spain", "Portugal"))
	assert.False(t, Equivalent("Atlantis", "United States"))
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("Japan"))
	assert.False(t, Supported("japan"), "Supported is exact match, aliases go through Canonical")
	assert.False(t, Supported("Narnia"))
}
