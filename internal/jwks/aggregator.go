package jwks

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// KeyFetcher supplies the remote keys.
type KeyFetcher interface {
	Fetch(ctx context.Context) (Keyset, error)
}

// KeyLoader supplies the local keys.
type KeyLoader interface {
	Load() (Keyset, error)
}

// Aggregator merges the remote and local keysets.
type Aggregator struct {
	remote KeyFetcher
	local  KeyLoader
	logger *zap.Logger
}

// NewAggregator wires the two sources together.
func NewAggregator(remote KeyFetcher, local KeyLoader, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{remote: remote, local: local, logger: logger}
}

// Aggregate returns remote keys followed by local keys. A remote failure
// aborts the whole operation and the local file is not read.
func (a *Aggregator) Aggregate(ctx context.Context) (Envelope, error) {
	remote, err := a.remote.Fetch(ctx)
	if err != nil {
		return Envelope{}, fmt.Errorf("fetch remote keyset: %w", err)
	}

	local, err := a.local.Load()
	if err != nil {
		return Envelope{}, fmt.Errorf("load local keyset: %w", err)
	}

	keys := make(Keyset, 0, len(remote)+len(local))
	keys = append(keys, remote...)
	keys = append(keys, local...)

	a.logger.Debug("keyset aggregated",
		zap.Int("remote_keys", len(remote)),
		zap.Int("local_keys", len(local)),
	)

	return NewEnvelope(keys), nil
}
