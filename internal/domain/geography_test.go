package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvedCitySameCity(t *testing.T) {
	nyc := ResolvedCity{Name: "NYC", CanonicalName: "New York", GeonameID: 5128581}
	newYork := ResolvedCity{Name: "new york", CanonicalName: "New York", GeonameID: 5128581}
	buffalo := ResolvedCity{Name: "Buffalo", CanonicalName: "Buffalo", GeonameID: 5110629}

	assert.True(t, nyc.SameCity(newYork), "same geoname id is the same place")
	assert.False(t, nyc.SameCity(buffalo))

	// Without ids the canonical name decides, case-insensitively.
	a := ResolvedCity{CanonicalName: "Lisbon"}
	b := ResolvedCity{CanonicalName: "lisbon"}
	assert.True(t, a.SameCity(b))

	// A known id on one side only falls back to the name comparison.
	c := ResolvedCity{CanonicalName: "New York", GeonameID: 5128581}
	d := ResolvedCity{CanonicalName: "New York"}
	assert.True(t, c.SameCity(d))

	assert.False(t, a.SameCity(ResolvedCity{CanonicalName: "Porto"}))
}
