package storage

import (
	"context"
	"errors"

	"codescribe/internal/analyzer"
)

// ErrNoScans is returned when the database holds no completed scan yet.
var ErrNoScans = errors.New("storage: no scans recorded")

// Store persists scan snapshots so reports can be regenerated without
// rescanning the tree.
type Store interface {
	// SaveScan records a complete scan snapshot and returns its id.
	SaveScan(ctx context.Context, root string, sum analyzer.ModuleSummary) (int64, error)

	// LoadLatestScan restores the most recent snapshot.
	LoadLatestScan(ctx context.Context) (string, analyzer.ModuleSummary, error)

	Close() error
}
