package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/user/xiuxian-engine/internal/types"
)

// TalentRoller samples starting talent values with a seeded random source
type TalentRoller struct {
	rng *rand.Rand
}

// NewTalentRoller creates a roller seeded from the current time
func NewTalentRoller() *TalentRoller {
	return &TalentRoller{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Roll returns a uniformly sampled talent in [min, max]
func (tr *TalentRoller) Roll(min, max int) int {
	if min >= max {
		return min
	}
	return tr.rng.Intn(max-min+1) + min
}

// ValidateDifficulty rejects malformed difficulty settings before they
// can reach gameplay
func ValidateDifficulty(d types.DifficultySettings) error {
	if d.Name == "" {
		return fmt.Errorf("%w: difficulty has no name", ErrInvalidArgument)
	}
	if d.TalentMin < 1 || d.TalentMax > 10 || d.TalentMin > d.TalentMax {
		return fmt.Errorf("%w: talent range [%d, %d] outside [1, 10]",
			ErrInvalidArgument, d.TalentMin, d.TalentMax)
	}
	if d.StartingPills < 0 {
		return fmt.Errorf("%w: negative starting pills %d", ErrInvalidArgument, d.StartingPills)
	}
	if d.ExperienceMultiplier <= 0 {
		return fmt.Errorf("%w: experience multiplier %f must be positive",
			ErrInvalidArgument, d.ExperienceMultiplier)
	}
	if d.RecoveryMultiplier <= 0 {
		return fmt.Errorf("%w: recovery multiplier %f must be positive",
			ErrInvalidArgument, d.RecoveryMultiplier)
	}
	return nil
}
