package store

import (
	"context"
)

// Driver is an interface for an interaction log sink.
// It contains all methods a log backend should implement.
type Driver interface {
	// Migrate prepares the sink: the csv driver ensures the log directory
	// exists, the SQL drivers create the interaction table. Idempotent.
	Migrate(ctx context.Context) error

	// CreateInteraction appends one row. The append is all-or-nothing: on
	// error no partial row is visible, and prior rows are never touched.
	CreateInteraction(ctx context.Context, create *Interaction) error

	// ListInteractions returns logged rows in append order.
	ListInteractions(ctx context.Context, find *FindInteraction) ([]*Interaction, error)

	Close() error
}
