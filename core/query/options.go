package query

import (
	"github.com/asaidimu/go-events"
	"go.uber.org/zap"
)

// Option configures a Dataset.
type Option func(*Dataset)

// WithLogger sets the logger used by the dataset and its query chains.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dataset) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithEventBus attaches an event bus; terminal operations then emit
// start/success/failed lifecycle events.
func WithEventBus(bus *events.TypedEventBus[QueryEvent]) Option {
	return func(d *Dataset) {
		d.bus = bus
	}
}

// IgnoreNonPopulatedFields disables populated-field validation for every
// chain built from the dataset. Individual filter chains can also toggle it.
func IgnoreNonPopulatedFields() Option {
	return func(d *Dataset) {
		d.ignoreUnpopulated = true
	}
}
