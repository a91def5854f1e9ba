package postly

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fernandezvara/dbkit"
)

// Transaction executes a function within a database transaction with
// automatic commit/rollback. Moderation units of work that must not leave
// partial state (subforum creation with its first admin assignment, ban
// get-or-create) run through here.
//
// Example:
//
//	err := service.Transaction(ctx, func(ctx context.Context) error {
//	    if err := service.AssignModerator(ctx, subForumID, userID); err != nil {
//	        return err // rollback
//	    }
//	    return nil // commit
//	})
func (s *Service) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s = s.inTx(ctx)
	start := time.Now()
	var err error

	switch db := s.db.(type) {
	case *dbkit.Tx:
		// Already inside a transaction, nest via savepoint.
		err = db.Transaction(ctx, func(tx *dbkit.Tx) error {
			return s.withDB(tx).run(ctx, fn)
		})
	case *dbkit.DBKit:
		err = db.Transaction(ctx, func(tx *dbkit.Tx) error {
			return s.withDB(tx).run(ctx, fn)
		})
	default:
		err = fmt.Errorf("transaction support requires a dbkit.DBKit or dbkit.Tx instance")
	}

	s.txMonitor.record(time.Since(start), err == nil)
	return err
}

// withDB returns a shallow copy of the service bound to a different database
// handle, sharing the monitor and clock.
func (s *Service) withDB(db dbkit.IDB) *Service {
	cp := *s
	cp.db = db
	return &cp
}

func (s *Service) run(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(withTxService(ctx, s))
}

// The transactional service rides the context so nested operations issued by
// fn hit the same transaction.
type txServiceKey struct{}

func withTxService(ctx context.Context, s *Service) context.Context {
	return context.WithValue(ctx, txServiceKey{}, s)
}

// inTx resolves the service to use for the given context: the transactional
// one if a transaction is open, otherwise the receiver.
func (s *Service) inTx(ctx context.Context) *Service {
	if v := ctx.Value(txServiceKey{}); v != nil {
		if txs, ok := v.(*Service); ok {
			return txs
		}
	}
	return s
}

// TransactionMetrics provides transaction count and latency statistics.
type TransactionMetrics struct {
	Total           int64         `json:"total"`
	Succeeded       int64         `json:"succeeded"`
	Failed          int64         `json:"failed"`
	AverageDuration time.Duration `json:"average_duration"`
	MaxDuration     time.Duration `json:"max_duration"`
	LastReset       time.Time     `json:"last_reset"`
}

type transactionMonitor struct {
	mu            sync.Mutex
	total         int64
	succeeded     int64
	failed        int64
	totalDuration time.Duration
	maxDuration   time.Duration
	lastReset     time.Time
}

func newTransactionMonitor() *transactionMonitor {
	return &transactionMonitor{lastReset: time.Now()}
}

func (tm *transactionMonitor) record(d time.Duration, ok bool) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.total++
	tm.totalDuration += d
	if d > tm.maxDuration {
		tm.maxDuration = d
	}
	if ok {
		tm.succeeded++
	} else {
		tm.failed++
	}
}

func (tm *transactionMonitor) metrics() TransactionMetrics {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	m := TransactionMetrics{
		Total:       tm.total,
		Succeeded:   tm.succeeded,
		Failed:      tm.failed,
		MaxDuration: tm.maxDuration,
		LastReset:   tm.lastReset,
	}
	if tm.total > 0 {
		m.AverageDuration = tm.totalDuration / time.Duration(tm.total)
	}
	return m
}

// GetTransactionMetrics returns metrics for transactions run by this service.
func (s *Service) GetTransactionMetrics() TransactionMetrics {
	return s.txMonitor.metrics()
}
