package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/user/xiuxian-engine/config"
	"github.com/user/xiuxian-engine/internal/types"
)

func newTestCharacter(talent int, d types.DifficultySettings) *Character {
	return NewCharacter("测试修士", talent, d, config.DefaultConfig().Game)
}

func TestValidateAction(t *testing.T) {
	d := testDifficulty()
	character := newTestCharacter(5, d)

	// Test case 1: Meditate and Wait have no component preconditions
	assert.NoError(t, validateAction(types.ActionMeditate, character))
	assert.NoError(t, validateAction(types.ActionWait, character))

	// Test case 2: ConsumePill requires stock
	assert.NoError(t, validateAction(types.ActionConsumePill, character))
	character.Inventory.Pills = 0
	assert.ErrorIs(t, validateAction(types.ActionConsumePill, character), ErrInsufficientResource)

	// Test case 3: Cultivate requires mana
	assert.NoError(t, validateAction(types.ActionCultivate, character))
	character.Mana.Current = CultivationManaCost() - 1
	assert.ErrorIs(t, validateAction(types.ActionCultivate, character), ErrInsufficientResource)

	// Test case 4: Unknown kind rejected
	assert.ErrorIs(t, validateAction(types.ActionKind("fly"), character), ErrInvalidArgument)

	// Test case 5: Validation never mutates
	assert.Equal(t, 0, character.TotalActions)
	assert.Equal(t, 0, character.MeditationStreak)
}

func TestApplyMeditate(t *testing.T) {
	d := testDifficulty()
	character := newTestCharacter(5, d)
	character.Health.Current = 50

	// Test case 1: Meditation restores health and mana
	outcome := applyAction(types.ActionMeditate, character, d)
	assert.Equal(t, 7, outcome.effects["hp"])
	assert.Equal(t, 13, outcome.effects["mp"])
	assert.Equal(t, 57, character.Health.Current)
	assert.Equal(t, 63, character.Mana.Current)
	assert.Equal(t, 1, character.MeditationStreak)
	assert.Equal(t, 1, character.TotalActions)

	// Test case 2: Consecutive meditations build the streak
	applyAction(types.ActionMeditate, character, d)
	applyAction(types.ActionMeditate, character, d)
	assert.Equal(t, 3, character.MeditationStreak)

	// Test case 3: No-op at full resources still counts the action
	character.Health.Current = character.Health.Max
	character.Mana.Current = character.Mana.Max
	before := character.TotalActions
	outcome = applyAction(types.ActionMeditate, character, d)
	assert.Equal(t, 0, outcome.effects["hp"])
	assert.Equal(t, 0, outcome.effects["mp"])
	assert.Equal(t, before+1, character.TotalActions)
	assert.Equal(t, 4, character.MeditationStreak)
}

func TestApplyConsumePill(t *testing.T) {
	d := testDifficulty()
	character := newTestCharacter(5, d)
	character.Health.Current = 50
	character.MeditationStreak = 3

	// Test case 1: Pill restores resources and consumes stock
	outcome := applyAction(types.ActionConsumePill, character, d)
	assert.Equal(t, 15, outcome.effects["hp"])
	assert.Equal(t, 15, outcome.effects["mp"])
	assert.Equal(t, 1, outcome.costs["pills"])
	assert.Equal(t, 65, character.Health.Current)
	assert.Equal(t, 65, character.Mana.Current)
	assert.Equal(t, 0, character.Inventory.Pills)

	// Test case 2: Pill resets the meditation streak
	assert.Equal(t, 0, character.MeditationStreak)
	assert.Equal(t, 1, character.TotalActions)
}

func TestApplyCultivate(t *testing.T) {
	d := testDifficulty()
	character := newTestCharacter(5, d)

	// Test case 1: Cultivation spends mana and grants experience
	outcome := applyAction(types.ActionCultivate, character, d)
	assert.Equal(t, 22, outcome.effects["exp"])
	assert.Equal(t, CultivationManaCost(), outcome.costs["mp"])
	assert.Equal(t, 30, character.Mana.Current)
	assert.Equal(t, 22, character.Experience.Total)
	assert.Empty(t, outcome.crossed)

	// Test case 2: Meditation streak feeds the gain, then resets
	character.MeditationStreak = 3
	outcome = applyAction(types.ActionCultivate, character, d)
	assert.Equal(t, 25, outcome.effects["exp"])
	assert.Equal(t, 0, character.MeditationStreak)

	// Test case 3: Crossing a threshold is reported
	character.Mana.Current = character.Mana.Max
	character.Experience.Total = 95
	character.Experience.Stage = ResolveStage(95)
	outcome = applyAction(types.ActionCultivate, character, d)
	assert.Len(t, outcome.crossed, 1)
	assert.Equal(t, "foundation", outcome.crossed[0].Name)
	assert.Equal(t, 1, character.Experience.Stage.Ordinal)
}

func TestApplyWait(t *testing.T) {
	d := testDifficulty()
	character := newTestCharacter(5, d)
	character.Health.Current = 40
	character.Mana.Current = 30
	character.MeditationStreak = 2

	// Test case 1: Waiting changes no resources
	outcome := applyAction(types.ActionWait, character, d)
	assert.Empty(t, outcome.effects)
	assert.Empty(t, outcome.costs)
	assert.Equal(t, 40, character.Health.Current)
	assert.Equal(t, 30, character.Mana.Current)
	assert.Equal(t, 0, character.Experience.Total)

	// Test case 2: Waiting resets the streak and counts the action
	assert.Equal(t, 0, character.MeditationStreak)
	assert.Equal(t, 1, character.TotalActions)
}

func TestResourceBoundsUnderActionSequences(t *testing.T) {
	d, _ := types.PresetDifficulty("easy")
	character := newTestCharacter(10, d)

	sequence := []types.ActionKind{
		types.ActionMeditate, types.ActionCultivate, types.ActionWait,
		types.ActionConsumePill, types.ActionMeditate, types.ActionMeditate,
		types.ActionCultivate, types.ActionConsumePill, types.ActionWait,
		types.ActionCultivate, types.ActionConsumePill, types.ActionMeditate,
	}

	lastExp := 0
	for _, kind := range sequence {
		if validateAction(kind, character) != nil {
			continue
		}
		applyAction(kind, character, d)

		// Bounds hold at every observable point
		assert.GreaterOrEqual(t, character.Health.Current, 0)
		assert.LessOrEqual(t, character.Health.Current, character.Health.Max)
		assert.GreaterOrEqual(t, character.Mana.Current, 0)
		assert.LessOrEqual(t, character.Mana.Current, character.Mana.Max)
		assert.GreaterOrEqual(t, character.Inventory.Pills, 0)

		// Experience is monotonic non-decreasing
		assert.GreaterOrEqual(t, character.Experience.Total, lastExp)
		lastExp = character.Experience.Total

		// Stage is always the resolved stage
		assert.Equal(t, ResolveStage(character.Experience.Total).Ordinal,
			character.Experience.Stage.Ordinal)
	}
}
