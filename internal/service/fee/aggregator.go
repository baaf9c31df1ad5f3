package fee

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/pawcare-api/internal/model"
	"github.com/jwalitptl/pawcare-api/pkg/errors"
	"github.com/jwalitptl/pawcare-api/pkg/logger"
	"github.com/jwalitptl/pawcare-api/pkg/metrics"
)

// Aggregator computes the payable amount of a new booking.
type Aggregator struct {
	catalog *Catalog
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewAggregator(catalog *Catalog, logger *logger.Logger, metrics *metrics.Metrics) *Aggregator {
	return &Aggregator{
		catalog: catalog,
		logger:  logger,
		metrics: metrics,
	}
}

// BaseFee returns the catalog base fee for t, or 0 when the catalog has none.
func (a *Aggregator) BaseFee(ctx context.Context, t model.ApplicationType) (float64, error) {
	fee, err := a.catalog.FindFeeByType(ctx, t)
	if err != nil {
		if errors.IsNotFound(err) {
			a.metrics.FeeCatalogFallbacks.WithLabelValues(string(t)).Inc()
			a.logger.Warn("Base fee missing from catalog, charging zero", "application_type", string(t))
			return 0, nil
		}
		return 0, fmt.Errorf("failed to find base fee: %w", err)
	}
	return fee.Fee, nil
}

// Payable is the base fee of t plus the fee of each selected add-on.
// Unknown add-on ids contribute nothing.
func (a *Aggregator) Payable(ctx context.Context, t model.ApplicationType, selected []uuid.UUID) (float64, error) {
	base, err := a.BaseFee(ctx, t)
	if err != nil {
		return 0, err
	}
	if len(selected) == 0 {
		return base, nil
	}

	fees, err := a.catalog.GroomingFees(ctx, selected)
	if err != nil {
		return 0, err
	}
	return base + SumSelected(selected, fees), nil
}

// SumSelected adds the fee of every selected id found in fees; repeated ids
// are counted each time.
func SumSelected(selected []uuid.UUID, fees model.FeeMap) float64 {
	var total float64
	for _, id := range selected {
		total += fees[id]
	}
	return total
}
