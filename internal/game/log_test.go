package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/user/xiuxian-engine/internal/types"
)

func TestEventLog(t *testing.T) {
	log := NewEventLog(3)

	// Test case 1: Entries get increasing sequence numbers
	first := log.Append(types.LogKindSystem, "开始", nil)
	second := log.Append(types.LogKindAction, "打坐", map[string]int{"mp": 13})
	assert.Equal(t, uint64(1), first.Sequence)
	assert.Equal(t, uint64(2), second.Sequence)
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	// Test case 2: Capacity trims the oldest entries but sequences keep growing
	log.Append(types.LogKindAction, "修炼", nil)
	fourth := log.Append(types.LogKindAction, "等待", nil)
	assert.Equal(t, 3, log.Len())
	assert.Equal(t, uint64(4), fourth.Sequence)

	recent := log.Recent(3)
	assert.Equal(t, uint64(2), recent[0].Sequence)
	assert.Equal(t, uint64(4), recent[2].Sequence)

	// Test case 3: Recent returns at most the requested count, oldest first
	recent = log.Recent(2)
	assert.Len(t, recent, 2)
	assert.Less(t, recent[0].Sequence, recent[1].Sequence)

	assert.Empty(t, log.Recent(0))

	// Test case 4: Returned entries are copies
	recent = log.Recent(3)
	recent[0].Payload["mp"] = -1
	again := log.Recent(3)
	assert.Equal(t, 13, again[0].Payload["mp"])
}
