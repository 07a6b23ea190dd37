package service

import (
	"sort"
	"sync"

	"github.com/directstay/directstay-server/internal/domain"
)

// CityCache holds the resolved cities discovered during a reconciliation
// session, keyed by canonical country display name. It is an explicitly
// owned, injectable object so tests can assert on its contents and
// multiple engines never share hidden state.
//
// The write path deduplicates by geoname id or case-insensitive canonical
// name. Aggregate queries deliberately do not read it back — they
// recompute from source (see ReconcileService) — so the cache is a lookup
// aid for future sessions, not a query result store.
type CityCache struct {
	mu      sync.RWMutex
	entries map[string][]domain.ResolvedCity
}

// NewCityCache creates an empty cache.
func NewCityCache() *CityCache {
	return &CityCache{entries: make(map[string][]domain.ResolvedCity)}
}

// Add records a resolved city under its country unless an equivalent
// entry already exists. Returns true when the city was inserted.
func (c *CityCache) Add(city domain.ResolvedCity) bool {
	if !city.Valid {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.entries[city.Country] {
		if existing.SameCity(city) {
			return false
		}
	}
	c.entries[city.Country] = append(c.entries[city.Country], city)
	return true
}

// CitiesForCountry returns the cached resolved cities for a country,
// sorted by canonical name.
func (c *CityCache) CitiesForCountry(countryName string) []domain.ResolvedCity {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cities := make([]domain.ResolvedCity, len(c.entries[countryName]))
	copy(cities, c.entries[countryName])
	sort.Slice(cities, func(i, j int) bool {
		return cities[i].CanonicalName < cities[j].CanonicalName
	})
	return cities
}

// Len returns the total number of cached cities across all countries.
func (c *CityCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, cities := range c.entries {
		n += len(cities)
	}
	return n
}

// Reset clears the cache.
func (c *CityCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]domain.ResolvedCity)
}
