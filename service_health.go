package postly

import (
	"context"

	"github.com/fernandezvara/dbkit"
)

// Health performs a health check of the database connection, returning
// detailed status when the underlying handle supports it.
func (s *Service) Health(ctx context.Context) dbkit.HealthStatus {
	if db, ok := s.db.(*dbkit.DBKit); ok {
		return db.Health(ctx)
	}

	// Inside a transaction or a test double, fall back to a basic probe.
	return dbkit.HealthStatus{
		Healthy: s.IsHealthy(ctx),
		Error:   "limited health check - not a DBKit instance",
	}
}

// IsHealthy reports whether the database is reachable.
func (s *Service) IsHealthy(ctx context.Context) bool {
	if db, ok := s.db.(*dbkit.DBKit); ok {
		return db.IsHealthy(ctx)
	}

	var one int
	err := s.db.NewSelect().ColumnExpr("1").Scan(ctx, &one)
	return err == nil
}
