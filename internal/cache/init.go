package cache

import (
	"github.com/jurisflow/jurisflow/internal/config"
)

// Initialize builds the process wide cache from configuration
func Initialize(cfg *config.Configuration) Cache {
	if cfg != nil && !cfg.Cache.Enabled {
		return NewDisabledCache()
	}
	return NewInMemoryCache()
}
