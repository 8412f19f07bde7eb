package storage_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lumenrig/projplan/internal/storage"
	"github.com/stretchr/testify/assert"
)

func TestSnapshotStamped(t *testing.T) {
	s := &storage.Snapshot{Collections: []string{"Wall"}}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	first := s.Stamped(now)
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.Equal(t, time.UTC, first.SavedAt.Location())
	assert.True(t, first.SavedAt.Equal(now))
	assert.Equal(t, []string{"Wall"}, first.Collections)

	assert.Equal(t, uuid.Nil, s.ID, "the receiver is not stamped")
	assert.True(t, s.SavedAt.IsZero())

	second := s.Stamped(now)
	assert.NotEqual(t, first.ID, second.ID, "each save gets its own id")

	s.Adopt(second)
	assert.Equal(t, second.ID, s.ID)
	assert.True(t, s.SavedAt.Equal(now))
}
