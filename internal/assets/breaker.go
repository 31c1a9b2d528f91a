package assets

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/metrics"
	gobreaker "github.com/sony/gobreaker/v2"
)

// BreakerStore fails fast once the wrapped store keeps erroring, so a remote
// outage turns into quick 502s instead of piling up slow requests.
type BreakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker[*Asset]
}

func NewBreakerStore(next Store, name string) *BreakerStore {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[*Asset](gobreaker.Settings{
		Name:        name,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("asset store circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
		// A missing asset on delete is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrRemoteNotFound)
		},
	})

	return &BreakerStore{next: next, cb: cb}
}

func (b *BreakerStore) Put(ctx context.Context, localPath, folder string) (*Asset, error) {
	return b.cb.Execute(func() (*Asset, error) {
		return b.next.Put(ctx, localPath, folder)
	})
}

func (b *BreakerStore) Delete(ctx context.Context, remoteID string) error {
	_, err := b.cb.Execute(func() (*Asset, error) {
		return nil, b.next.Delete(ctx, remoteID)
	})
	return err
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
