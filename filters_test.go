package postly

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestNewAuditLogFilter tests default values
func TestNewAuditLogFilter(t *testing.T) {
	f := NewAuditLogFilter()
	assert.Equal(t, 100, f.Limit)
	assert.Equal(t, 0, f.Offset)
	assert.Empty(t, f.ActorID)
	assert.True(t, f.Since.IsZero())
}

// TestAuditLogFilter_Builders tests the fluent builders
func TestAuditLogFilter_Builders(t *testing.T) {
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	f := NewAuditLogFilter().
		WithActor("actor-1").
		WithTargetUser("target-1").
		WithSubForum("sf-1").
		WithAction(AuditSubForumBan).
		WithTimeRange(since, until).
		WithPagination(25, 50)

	assert.Equal(t, "actor-1", f.ActorID)
	assert.Equal(t, "target-1", f.TargetUserID)
	assert.Equal(t, "sf-1", f.SubForumID)
	assert.Equal(t, "subforum_ban", f.Action)
	assert.Equal(t, since, f.Since)
	assert.Equal(t, until, f.Until)
	assert.Equal(t, 25, f.Limit)
	assert.Equal(t, 50, f.Offset)
}

// TestAuditLogFilter_ValueSemantics tests that builders don't mutate the original
func TestAuditLogFilter_ValueSemantics(t *testing.T) {
	base := NewAuditLogFilter()
	_ = base.WithActor("actor-1")
	assert.Empty(t, base.ActorID)
}
