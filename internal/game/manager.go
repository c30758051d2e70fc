package game

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/user/xiuxian-engine/config"
	"github.com/user/xiuxian-engine/internal/interfaces"
	"github.com/user/xiuxian-engine/internal/types"
	"go.uber.org/zap"
)

// Ensure Manager satisfies the interfaces.SessionManager interface
var _ interfaces.SessionManager = (*Manager)(nil)

// Session owns one character, its event log and its life-cycle phase.
// It is the sole owner of the state it holds; collaborators only ever
// see value snapshots.
type Session struct {
	ID         string
	phase      types.Phase
	character  *Character
	log        *EventLog
	difficulty types.DifficultySettings
	cfg        config.GameConfig
}

func newSession(id, name string, talent int, d types.DifficultySettings, cfg config.GameConfig) *Session {
	s := &Session{
		ID:         id,
		phase:      types.PhaseActive,
		character:  NewCharacter(name, talent, d, cfg),
		log:        NewEventLog(cfg.LogCapacity),
		difficulty: d,
		cfg:        cfg,
	}

	s.log.Append(types.LogKindSystem, fmt.Sprintf("欢迎来到修仙世界，%s！", name), nil)
	s.log.Append(types.LogKindSystem, fmt.Sprintf("你的资质为 %d，开始你的修仙之旅。", talent), nil)

	return s
}

// Phase returns the current life-cycle phase
func (s *Session) Phase() types.Phase {
	return s.phase
}

// Difficulty returns the settings the session was created from
func (s *Session) Difficulty() types.DifficultySettings {
	return s.difficulty
}

// ApplyAction runs one complete validate-apply-log-transition cycle.
// A rejected action leaves every component unchanged and appends exactly
// one explanatory log entry.
func (s *Session) ApplyAction(kind types.ActionKind) (*types.ActionResult, error) {
	if !kind.Valid() {
		err := fmt.Errorf("%w: unknown action %q", ErrInvalidArgument, kind)
		s.log.Append(types.LogKindRejection, "未知的动作，无法执行。", nil)
		return nil, err
	}

	if s.phase != types.PhaseActive {
		s.log.Append(types.LogKindRejection, "大势已定，无法继续行动。", nil)
		return nil, fmt.Errorf("%w: phase is %s", ErrInvalidPhase, s.phase)
	}

	if err := validateAction(kind, s.character); err != nil {
		s.log.Append(types.LogKindRejection, rejectionMessage(kind), nil)
		return nil, err
	}

	outcome := applyAction(kind, s.character, s.difficulty)

	payload := map[string]int{}
	for k, v := range outcome.effects {
		payload[k] = v
	}
	for k, v := range outcome.costs {
		payload[k+"_cost"] = v
	}
	s.log.Append(types.LogKindAction, outcome.message, payload)

	result := &types.ActionResult{
		Action:  kind,
		Message: outcome.message,
		Effects: outcome.effects,
		Costs:   outcome.costs,
	}

	// One breakthrough entry per tier crossed, in ascending order
	messages := []string{outcome.message}
	for _, stage := range outcome.crossed {
		msg := fmt.Sprintf("突破至 %s！", stage.DisplayName)
		s.log.Append(types.LogKindBreakthrough, msg, map[string]int{"stage": stage.Ordinal})
		result.Breakthroughs = append(result.Breakthroughs, stage.DisplayName)
		messages = append(messages, msg)
	}
	result.Message = strings.Join(messages, "")

	s.refreshPhase()
	result.Ascended = s.phase == types.PhaseAscended
	result.GameOver = s.phase == types.PhaseGameOver

	return result, nil
}

// refreshPhase re-derives the life-cycle phase from the character state.
// Death wins over ascension if both somehow hold.
func (s *Session) refreshPhase() {
	if s.phase != types.PhaseActive {
		return
	}

	if !s.character.Alive() {
		s.phase = types.PhaseGameOver
		s.log.Append(types.LogKindSystem, "修炼失败，游戏结束。", nil)
		return
	}

	if s.character.Experience.Stage.Terminal {
		s.phase = types.PhaseAscended
		s.log.Append(types.LogKindSystem, "恭喜！你已成功飞升，达成完美结局！", nil)
	}
}

// Snapshot builds the read-only status projection for renderers. It
// copies every field; no internal reference escapes.
func (s *Session) Snapshot() types.StatusView {
	c := s.character
	stage := c.Experience.Stage

	nextThreshold := 0
	if !stage.Terminal {
		if threshold, err := StageThreshold(stage.Ordinal + 1); err == nil {
			nextThreshold = threshold
		}
	}

	return types.StatusView{
		SessionID:        s.ID,
		Name:             c.Name,
		Phase:            s.phase,
		Difficulty:       s.difficulty.Name,
		HP:               c.Health.Current,
		MaxHP:            c.Health.Max,
		MP:               c.Mana.Current,
		MaxMP:            c.Mana.Max,
		Stage:            stage.DisplayName,
		StageOrdinal:     stage.Ordinal,
		TotalExperience:  c.Experience.Total,
		NextThreshold:    nextThreshold,
		Talent:           c.Talent.Value,
		Pills:            c.Inventory.Pills,
		MeditationStreak: c.MeditationStreak,
		TotalActions:     c.TotalActions,
		Alive:            c.Alive(),
		PowerLevel:       PowerLevel(c),
		Recommendation:   Recommend(c),
		RecentLog:        s.log.Recent(s.cfg.RecentLogCount),
	}
}

// rejectionMessage maps a failed precondition to the log narration
func rejectionMessage(kind types.ActionKind) string {
	switch kind {
	case types.ActionConsumePill:
		return "没有丹药可用。"
	case types.ActionCultivate:
		return "仙力不足，无法修炼。"
	default:
		return "无法执行该动作。"
	}
}

// Manager orchestrates game sessions. It is the only component external
// collaborators call into; each operation runs one complete cycle before
// returning.
type Manager struct {
	sessions  map[string]*Session
	stateLock sync.RWMutex
	cfg       config.Config
	Logger    *zap.Logger
	roller    *TalentRoller
}

// NewManager creates a new session manager
func NewManager(cfg config.Config) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		Logger:   zap.NewNop(), // Will be set by the server
		roller:   NewTalentRoller(),
	}
}

// SetLogger replaces the manager's logger
func (m *Manager) SetLogger(logger *zap.Logger) {
	m.Logger = logger
}

// CreateSession starts a new game session with a talent sampled from the
// difficulty's range and returns its initial status view
func (m *Manager) CreateSession(name string, d types.DifficultySettings) (*types.StatusView, error) {
	if err := ValidateDifficulty(d); err != nil {
		return nil, err
	}
	talent := m.roller.Roll(d.TalentMin, d.TalentMax)
	return m.addSession(name, talent, d)
}

// CreateSessionWithTalent starts a new game session with an explicit
// talent value, validated against the difficulty's range
func (m *Manager) CreateSessionWithTalent(name string, talent int, d types.DifficultySettings) (*types.StatusView, error) {
	if err := ValidateDifficulty(d); err != nil {
		return nil, err
	}
	if talent < d.TalentMin || talent > d.TalentMax {
		return nil, fmt.Errorf("%w: talent %d outside range [%d, %d]",
			ErrInvalidArgument, talent, d.TalentMin, d.TalentMax)
	}
	return m.addSession(name, talent, d)
}

func (m *Manager) addSession(name string, talent int, d types.DifficultySettings) (*types.StatusView, error) {
	m.stateLock.Lock()
	defer m.stateLock.Unlock()

	if name == "" {
		name = "无名修士"
	}

	session := newSession(uuid.New().String(), name, talent, d, m.cfg.Game)
	m.sessions[session.ID] = session

	m.Logger.Info("Session created",
		zap.String("session_id", session.ID),
		zap.String("name", name),
		zap.String("difficulty", d.Name),
		zap.Int("talent", talent),
		zap.Int("starting_pills", d.StartingPills))

	view := session.Snapshot()
	return &view, nil
}

// GetSession retrieves a session by ID
func (m *Manager) GetSession(sessionID string) (*Session, error) {
	m.stateLock.RLock()
	defer m.stateLock.RUnlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	return session, nil
}

// ApplyAction runs one action against a session and returns the outcome
func (m *Manager) ApplyAction(sessionID string, kind types.ActionKind) (*types.ActionResult, error) {
	m.stateLock.Lock()
	defer m.stateLock.Unlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	result, err := session.ApplyAction(kind)
	if err != nil {
		m.Logger.Info("Action rejected",
			zap.String("session_id", sessionID),
			zap.String("action", string(kind)),
			zap.Error(err))
		return nil, err
	}

	m.Logger.Info("Action applied",
		zap.String("session_id", sessionID),
		zap.String("action", string(kind)),
		zap.String("phase", string(session.Phase())),
		zap.Int("total_actions", session.character.TotalActions),
		zap.Strings("breakthroughs", result.Breakthroughs))

	return result, nil
}

// Snapshot returns the read-only status view of a session
func (m *Manager) Snapshot(sessionID string) (*types.StatusView, error) {
	m.stateLock.RLock()
	defer m.stateLock.RUnlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	view := session.Snapshot()
	return &view, nil
}

// RestartSession discards a session's state and recreates it from the
// given difficulty, keeping the session ID and character name
func (m *Manager) RestartSession(sessionID string, d types.DifficultySettings) (*types.StatusView, error) {
	if err := ValidateDifficulty(d); err != nil {
		return nil, err
	}

	m.stateLock.Lock()
	defer m.stateLock.Unlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	talent := m.roller.Roll(d.TalentMin, d.TalentMax)
	fresh := newSession(sessionID, session.character.Name, talent, d, m.cfg.Game)
	m.sessions[sessionID] = fresh

	m.Logger.Info("Session restarted",
		zap.String("session_id", sessionID),
		zap.String("difficulty", d.Name),
		zap.Int("talent", talent))

	view := fresh.Snapshot()
	return &view, nil
}

// RemoveSession discards a session entirely
func (m *Manager) RemoveSession(sessionID string) error {
	m.stateLock.Lock()
	defer m.stateLock.Unlock()

	if _, exists := m.sessions[sessionID]; !exists {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	delete(m.sessions, sessionID)
	m.Logger.Info("Session removed", zap.String("session_id", sessionID))

	return nil
}

// SessionCount returns the number of live sessions
func (m *Manager) SessionCount() int {
	m.stateLock.RLock()
	defer m.stateLock.RUnlock()

	return len(m.sessions)
}
