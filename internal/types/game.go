package types

import (
	"time"
)

// Phase represents the life-cycle state of a game session
type Phase string

const (
	PhaseActive   Phase = "active"
	PhaseGameOver Phase = "game_over"
	PhaseAscended Phase = "ascended"
)

// Terminal reports whether the phase accepts no further actions
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseAscended
}

// ActionKind identifies one of the player-initiated actions
type ActionKind string

const (
	ActionMeditate    ActionKind = "meditate"
	ActionConsumePill ActionKind = "consume_pill"
	ActionCultivate   ActionKind = "cultivate"
	ActionWait        ActionKind = "wait"
)

// AllActions lists every action kind in a stable order
func AllActions() []ActionKind {
	return []ActionKind{ActionMeditate, ActionConsumePill, ActionCultivate, ActionWait}
}

// Valid reports whether the kind is one of the known actions
func (k ActionKind) Valid() bool {
	switch k {
	case ActionMeditate, ActionConsumePill, ActionCultivate, ActionWait:
		return true
	}
	return false
}

// DifficultySettings is the immutable configuration a session is created from
type DifficultySettings struct {
	Name                 string  `json:"name"`
	DisplayName          string  `json:"display_name"`
	TalentMin            int     `json:"talent_min"`
	TalentMax            int     `json:"talent_max"`
	StartingPills        int     `json:"starting_pills"`
	ExperienceMultiplier float64 `json:"experience_multiplier"`
	RecoveryMultiplier   float64 `json:"recovery_multiplier"`
}

// PresetDifficulty returns a named difficulty preset
func PresetDifficulty(name string) (DifficultySettings, bool) {
	switch name {
	case "easy":
		return DifficultySettings{
			Name:                 "easy",
			DisplayName:          "简单",
			TalentMin:            5,
			TalentMax:            10,
			StartingPills:        3,
			ExperienceMultiplier: 1.2,
			RecoveryMultiplier:   1.3,
		}, true
	case "normal":
		return DifficultySettings{
			Name:                 "normal",
			DisplayName:          "普通",
			TalentMin:            1,
			TalentMax:            10,
			StartingPills:        1,
			ExperienceMultiplier: 1.0,
			RecoveryMultiplier:   1.0,
		}, true
	case "hard":
		return DifficultySettings{
			Name:                 "hard",
			DisplayName:          "困难",
			TalentMin:            1,
			TalentMax:            6,
			StartingPills:        0,
			ExperienceMultiplier: 0.8,
			RecoveryMultiplier:   0.7,
		}, true
	}
	return DifficultySettings{}, false
}

// LogEntryKind classifies event log entries
type LogEntryKind string

const (
	LogKindSystem       LogEntryKind = "system"
	LogKindAction       LogEntryKind = "action"
	LogKindBreakthrough LogEntryKind = "breakthrough"
	LogKindRejection    LogEntryKind = "rejection"
)

// LogEntry is one record in the session event log
type LogEntry struct {
	ID        string         `json:"id"`
	Sequence  uint64         `json:"sequence"`
	Timestamp time.Time      `json:"timestamp"`
	Kind      LogEntryKind   `json:"kind"`
	Message   string         `json:"message"`
	Payload   map[string]int `json:"payload,omitempty"`
}

// ActionResult describes the outcome of one applied action
type ActionResult struct {
	Action        ActionKind     `json:"action"`
	Message       string         `json:"message"`
	Effects       map[string]int `json:"effects"`
	Costs         map[string]int `json:"costs"`
	Breakthroughs []string       `json:"breakthroughs,omitempty"`
	Ascended      bool           `json:"ascended"`
	GameOver      bool           `json:"game_over"`
}

// StatusView is the read-only projection handed to renderers after each call
type StatusView struct {
	SessionID        string     `json:"session_id"`
	Name             string     `json:"name"`
	Phase            Phase      `json:"phase"`
	Difficulty       string     `json:"difficulty"`
	HP               int        `json:"hp"`
	MaxHP            int        `json:"max_hp"`
	MP               int        `json:"mp"`
	MaxMP            int        `json:"max_mp"`
	Stage            string     `json:"stage"`
	StageOrdinal     int        `json:"stage_ordinal"`
	TotalExperience  int        `json:"total_experience"`
	NextThreshold    int        `json:"next_threshold"`
	Talent           int        `json:"talent"`
	Pills            int        `json:"pills"`
	MeditationStreak int        `json:"meditation_streak"`
	TotalActions     int        `json:"total_actions"`
	Alive            bool       `json:"alive"`
	PowerLevel       int        `json:"power_level"`
	Recommendation   string     `json:"recommendation"`
	RecentLog        []LogEntry `json:"recent_log"`
}
