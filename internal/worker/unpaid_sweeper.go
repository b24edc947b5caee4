package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bersihin/bersihin/internal/domain/model"
)

// SweeperFacade exposes the subset of application functionality required by the sweeper.
type SweeperFacade interface {
	StaleUnpaidOrders(ctx context.Context, limit int) ([]model.Order, error)
	CancelUnpaid(ctx context.Context, order model.Order) (bool, error)
}

// UnpaidSweeper periodically cancels stale unpaid non-cash orders.
// Each order is processed independently; one failure never aborts the
// batch, and overlapping runs are harmless because cancellation only
// acts on orders still in a cancellable status.
type UnpaidSweeper struct {
	facade    SweeperFacade
	interval  time.Duration
	batchSize int
	workers   int
	logger    *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewUnpaidSweeper constructs the sweeper worker pool.
func NewUnpaidSweeper(facade SweeperFacade, interval time.Duration, batchSize, workers int, logger *slog.Logger) *UnpaidSweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &UnpaidSweeper{
		facade:    facade,
		interval:  interval,
		batchSize: batchSize,
		workers:   workers,
		logger:    logger,
		jobs:      make(chan model.Order, batchSize*workers),
	}
}

// Start launches background sweeping.
func (s *UnpaidSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (s *UnpaidSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *UnpaidSweeper) dispatch(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.jobs)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fetchAndDispatch(ctx)
		}
	}
}

func (s *UnpaidSweeper) fetchAndDispatch(ctx context.Context) {
	orders, err := s.facade.StaleUnpaidOrders(ctx, s.batchSize)
	if err != nil {
		s.logger.Error("fetch stale unpaid orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case s.jobs <- order:
		}
	}
}

func (s *UnpaidSweeper) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-s.jobs:
			if !ok {
				return
			}
			s.handleOrder(ctx, order)
		}
	}
}

func (s *UnpaidSweeper) handleOrder(ctx context.Context, order model.Order) {
	cancelled, err := s.facade.CancelUnpaid(ctx, order)
	if err != nil {
		s.logger.Error("cancel unpaid order failed",
			slog.Int64("order_number", order.OrderNumber), slog.String("error", err.Error()))
		return
	}
	if cancelled {
		s.logger.Info("unpaid order cancelled", slog.Int64("order_number", order.OrderNumber))
	}
}
