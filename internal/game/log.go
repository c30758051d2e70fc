package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/user/xiuxian-engine/internal/types"
)

// EventLog is the append-only, session-scoped record of game events.
// Entries carry a monotonic sequence number so ordering survives even
// when old entries are trimmed to the capacity bound.
type EventLog struct {
	entries  []types.LogEntry
	capacity int
	nextSeq  uint64
}

// NewEventLog creates an empty log retaining at most capacity entries
func NewEventLog(capacity int) *EventLog {
	if capacity <= 0 {
		capacity = 100
	}
	return &EventLog{
		entries:  make([]types.LogEntry, 0, capacity),
		capacity: capacity,
		nextSeq:  1,
	}
}

// Append adds one entry and returns it
func (l *EventLog) Append(kind types.LogEntryKind, message string, payload map[string]int) types.LogEntry {
	entry := types.LogEntry{
		ID:        uuid.New().String(),
		Sequence:  l.nextSeq,
		Timestamp: time.Now(),
		Kind:      kind,
		Message:   message,
		Payload:   payload,
	}
	l.nextSeq++

	l.entries = append(l.entries, entry)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[1:]
	}

	return entry
}

// Len returns the number of retained entries
func (l *EventLog) Len() int {
	return len(l.entries)
}

// Recent returns copies of the most recent count entries, oldest first
func (l *EventLog) Recent(count int) []types.LogEntry {
	if count <= 0 || len(l.entries) == 0 {
		return []types.LogEntry{}
	}
	start := len(l.entries) - count
	if start < 0 {
		start = 0
	}

	recent := make([]types.LogEntry, len(l.entries)-start)
	copy(recent, l.entries[start:])

	// Copy payload maps so callers cannot reach back into the log
	for i := range recent {
		if recent[i].Payload == nil {
			continue
		}
		payload := make(map[string]int, len(recent[i].Payload))
		for k, v := range recent[i].Payload {
			payload[k] = v
		}
		recent[i].Payload = payload
	}

	return recent
}
