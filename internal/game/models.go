package game

import (
	"fmt"

	"github.com/user/xiuxian-engine/config"
	"github.com/user/xiuxian-engine/internal/types"
)

// HealthComponent tracks a character's vitality
type HealthComponent struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// ApplyDelta adjusts health by the given amount, clamping the result into
// [0, max]. It returns the amount actually applied, which may be smaller
// than requested when a bound is hit. Callers must log the returned value.
func (h *HealthComponent) ApplyDelta(amount int) int {
	old := h.Current
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
	if h.Current < 0 {
		h.Current = 0
	}
	return h.Current - old
}

// ManaComponent tracks a character's spendable energy
type ManaComponent struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// ApplyDelta adjusts mana by the given amount, clamping the result into
// [0, max]. It returns the amount actually applied.
func (m *ManaComponent) ApplyDelta(amount int) int {
	old := m.Current
	m.Current += amount
	if m.Current > m.Max {
		m.Current = m.Max
	}
	if m.Current < 0 {
		m.Current = 0
	}
	return m.Current - old
}

// ExperienceComponent tracks cumulative progression. Total experience
// never decreases within a session; the stage is always recomputed from
// it, never set independently.
type ExperienceComponent struct {
	Total int        `json:"total"`
	Stage StageLevel `json:"stage"`
}

// Add grants experience and recomputes the stage. It returns every stage
// boundary crossed by this grant, in ascending order, so a single large
// gain reports each breakthrough separately.
func (e *ExperienceComponent) Add(delta int) ([]StageLevel, error) {
	if delta < 0 {
		return nil, fmt.Errorf("%w: negative experience delta %d", ErrInvalidArgument, delta)
	}

	before := e.Stage.Ordinal
	e.Total += delta
	e.Stage = ResolveStage(e.Total)

	var crossed []StageLevel
	for ordinal := before + 1; ordinal <= e.Stage.Ordinal; ordinal++ {
		crossed = append(crossed, stageTable[ordinal])
	}
	return crossed, nil
}

// TalentComponent holds the fixed 1-10 aptitude assigned at creation
type TalentComponent struct {
	Value int `json:"value"`
}

// InventoryComponent tracks the consumable pill stock
type InventoryComponent struct {
	Pills int `json:"pills"`
}

// Consume removes n pills and returns the remaining count. It fails
// without mutating when the stock is insufficient.
func (i *InventoryComponent) Consume(n int) (int, error) {
	if n < 0 {
		return i.Pills, fmt.Errorf("%w: negative pill count %d", ErrInvalidArgument, n)
	}
	if n > i.Pills {
		return i.Pills, fmt.Errorf("%w: need %d pills, have %d", ErrInsufficientResource, n, i.Pills)
	}
	i.Pills -= n
	return i.Pills, nil
}

// Character composes all components into one playable entity
type Character struct {
	Name       string              `json:"name"`
	Health     HealthComponent     `json:"health"`
	Mana       ManaComponent       `json:"mana"`
	Experience ExperienceComponent `json:"experience"`
	Talent     TalentComponent     `json:"talent"`
	Inventory  InventoryComponent  `json:"inventory"`

	// Behavior counters
	MeditationStreak int `json:"meditation_streak"`
	TotalActions     int `json:"total_actions"`
}

// NewCharacter builds a fresh character for the given talent and
// difficulty. Mana starts at a configured fraction of its maximum;
// the pill stock is seeded from the difficulty settings.
func NewCharacter(name string, talent int, d types.DifficultySettings, cfg config.GameConfig) *Character {
	return &Character{
		Name: name,
		Health: HealthComponent{
			Current: cfg.MaxHP,
			Max:     cfg.MaxHP,
		},
		Mana: ManaComponent{
			Current: int(float64(cfg.MaxMP) * cfg.StartingManaRatio),
			Max:     cfg.MaxMP,
		},
		Experience: ExperienceComponent{
			Total: 0,
			Stage: ResolveStage(0),
		},
		Talent:    TalentComponent{Value: talent},
		Inventory: InventoryComponent{Pills: d.StartingPills},
	}
}

// Alive is derived from health rather than stored, so it can never
// drift out of sync with the underlying value
func (c *Character) Alive() bool {
	return c.Health.Current > 0
}
