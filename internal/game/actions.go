package game

import (
	"fmt"

	"github.com/user/xiuxian-engine/internal/types"
)

// actionOutcome carries the results of one applied action back to the
// session, which turns it into log entries and an ActionResult.
type actionOutcome struct {
	message string
	effects map[string]int
	costs   map[string]int
	crossed []StageLevel
}

// validateAction checks the component preconditions of an action against
// the current character state. The phase precondition is checked by the
// session before this is called. Validation never mutates anything.
func validateAction(kind types.ActionKind, c *Character) error {
	switch kind {
	case types.ActionMeditate, types.ActionWait:
		return nil
	case types.ActionConsumePill:
		if c.Inventory.Pills < 1 {
			return fmt.Errorf("%w: no pills left", ErrInsufficientResource)
		}
		return nil
	case types.ActionCultivate:
		if c.Mana.Current < CultivationManaCost() {
			return fmt.Errorf("%w: cultivating requires %d mana, have %d",
				ErrInsufficientResource, CultivationManaCost(), c.Mana.Current)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidArgument, kind)
	}
}

// applyAction mutates the character according to the action's rules and
// returns the outcome. It must only be called after validateAction
// succeeded; the clamped mutators still guarantee bounds regardless.
func applyAction(kind types.ActionKind, c *Character, d types.DifficultySettings) actionOutcome {
	var outcome actionOutcome

	switch kind {
	case types.ActionMeditate:
		hpDelta, mpDelta := MeditationEffect(d, c.Talent.Value)
		appliedHP := c.Health.ApplyDelta(hpDelta)
		appliedMP := c.Mana.ApplyDelta(mpDelta)

		// Consecutive meditations build the streak; every other action resets it
		c.MeditationStreak++

		outcome = actionOutcome{
			message: fmt.Sprintf("你进入打坐修炼状态，恢复%d点生命和%d点仙力。", appliedHP, appliedMP),
			effects: map[string]int{"hp": appliedHP, "mp": appliedMP},
			costs:   map[string]int{},
		}

	case types.ActionConsumePill:
		// Validated above; a failure here would indicate a bug, and the
		// clamped state is still consistent, so the error is ignored.
		c.Inventory.Consume(1)

		hpDelta, mpDelta := PillEffect(d)
		appliedHP := c.Health.ApplyDelta(hpDelta)
		appliedMP := c.Mana.ApplyDelta(mpDelta)

		c.MeditationStreak = 0

		outcome = actionOutcome{
			message: fmt.Sprintf("你服下一颗丹药，恢复%d点生命和%d点仙力。", appliedHP, appliedMP),
			effects: map[string]int{"hp": appliedHP, "mp": appliedMP},
			costs:   map[string]int{"pills": 1},
		}

	case types.ActionCultivate:
		// The streak bonus reads the meditation streak built up before
		// this cultivation, then the streak resets like any non-meditate action
		gain := CultivationGain(d, c.Talent.Value, c.MeditationStreak)
		c.Mana.ApplyDelta(-CultivationManaCost())
		crossed, _ := c.Experience.Add(gain)

		c.MeditationStreak = 0

		outcome = actionOutcome{
			message: fmt.Sprintf("你运转心法，修为精进，获得%d点经验。", gain),
			effects: map[string]int{"exp": gain},
			costs:   map[string]int{"mp": CultivationManaCost()},
			crossed: crossed,
		}

	case types.ActionWait:
		// Waiting has no resource effect; it exists to let the streak
		// reset and time pass
		c.MeditationStreak = 0

		outcome = actionOutcome{
			message: "你静心等待，任时光流逝。",
			effects: map[string]int{},
			costs:   map[string]int{},
		}
	}

	c.TotalActions++
	return outcome
}
