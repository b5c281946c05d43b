package ports

import (
	"context"

	"github.com/aretw0/simchain/pkg/domain"
)

// MonitorStore persists arrival records produced by a scheduler.
type MonitorStore interface {
	// Record appends a record.
	Record(ctx context.Context, rec domain.ArrivalRecord) error

	// List returns all records in insertion order.
	List(ctx context.Context) ([]domain.ArrivalRecord, error)

	// Reset drops every record.
	Reset(ctx context.Context) error
}
