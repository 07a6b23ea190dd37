package providers

import (
	"github.com/samber/do/v2"

	"github.com/directstay/directstay-server/internal/config"
	"github.com/directstay/directstay-server/internal/geocode/geonames"
	"github.com/directstay/directstay-server/internal/logger"
)

// GeonamesClientHandle wraps the GeoNames client with shutdown capability.
type GeonamesClientHandle struct {
	*geonames.Client
}

// Shutdown implements do.Shutdownable.
func (h *GeonamesClientHandle) Shutdown() error {
	return h.Close()
}

// ProvideGeonamesClient provides the GeoNames geocoding client.
func ProvideGeonamesClient(i do.Injector) (*GeonamesClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := geonames.New(geonames.Config{
		Username: cfg.GeoNames.Username,
		RPS:      cfg.GeoNames.RPS,
		Burst:    cfg.GeoNames.Burst,
	}, log.Logger)

	log.Info("GeoNames client initialized",
		"username", cfg.GeoNames.Username,
		"rps", cfg.GeoNames.RPS,
	)

	return &GeonamesClientHandle{Client: client}, nil
}
