package interfaces

import "github.com/user/xiuxian-engine/internal/types"

// SessionManager defines the contract the rendering/input layer uses to
// drive game sessions. Callers only ever receive value snapshots.
type SessionManager interface {
	CreateSession(name string, d types.DifficultySettings) (*types.StatusView, error)
	CreateSessionWithTalent(name string, talent int, d types.DifficultySettings) (*types.StatusView, error)
	ApplyAction(sessionID string, kind types.ActionKind) (*types.ActionResult, error)
	Snapshot(sessionID string) (*types.StatusView, error)
	RestartSession(sessionID string, d types.DifficultySettings) (*types.StatusView, error)
	RemoveSession(sessionID string) error
	SessionCount() int
}
