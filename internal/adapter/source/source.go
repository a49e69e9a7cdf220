package source

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/bruschetta/internal/adapter"
	"github.com/mmcdole/bruschetta/internal/adapter/source/catalog"
	"github.com/mmcdole/bruschetta/internal/domain"
)

// Catalog is the transport the search controller needs: primary search plus
// per-title reviews.
type Catalog interface {
	domain.SearchClient // Search(query) -> ordered titles
	domain.ReviewClient // Review(title) -> rating resource
}

// NewClient creates a catalog client for the configured deployment.
// The review addressing mode varies per deployment and is chosen here.
func NewClient(cfg *adapter.Config, logger *slog.Logger) (Catalog, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if cfg.Server.URL == "" {
		return nil, fmt.Errorf("server URL is required")
	}

	addressing, err := addressingFor(cfg.Server.ReviewAddressing)
	if err != nil {
		return nil, err
	}

	return catalog.NewClient(cfg.Server.URL, catalog.Options{
		SearchParam:   cfg.Server.SearchParam,
		Addressing:    addressing,
		Timeout:       cfg.Server.Timeout,
		MaxConcurrent: cfg.Fetch.MaxConcurrent,
	}, logger), nil
}

func addressingFor(mode adapter.AddressingMode) (catalog.Addressing, error) {
	switch mode {
	case adapter.AddressByID, "":
		return catalog.AddressByID, nil
	case adapter.AddressBySlug:
		return catalog.AddressBySlug, nil
	default:
		return 0, fmt.Errorf("%w: unknown review addressing: %s", domain.ErrInvalidConfig, mode)
	}
}
