package game

import (
	"fmt"

	"github.com/user/xiuxian-engine/internal/types"
)

// StageLevel is one tier in the static progression table
type StageLevel struct {
	Ordinal     int    `json:"ordinal"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Threshold   int    `json:"threshold"`
	Terminal    bool   `json:"terminal"`
}

// stageTable holds the cumulative experience thresholds for every stage.
// Thresholds are strictly increasing; exactly one tier is terminal.
var stageTable = []StageLevel{
	{Ordinal: 0, Name: "qi_refining", DisplayName: "炼气期", Threshold: 0},
	{Ordinal: 1, Name: "foundation", DisplayName: "筑基期", Threshold: 100},
	{Ordinal: 2, Name: "core_formation", DisplayName: "结丹期", Threshold: 300},
	{Ordinal: 3, Name: "nascent_soul", DisplayName: "元婴期", Threshold: 700},
	{Ordinal: 4, Name: "spirit_transformation", DisplayName: "化神期", Threshold: 1500},
	{Ordinal: 5, Name: "ascension", DisplayName: "飞升", Threshold: 3100, Terminal: true},
}

// Fixed mana cost of the cultivate action
const cultivationManaCost = 20

// Base values for action effects before talent and difficulty scaling
const (
	meditationBaseHP     = 2
	meditationBaseMP     = 8
	cultivationBase      = 12
	cultivationStreakCap = 5
	pillBaseRecovery     = 15
)

// StageTable returns a copy of the progression table
func StageTable() []StageLevel {
	table := make([]StageLevel, len(stageTable))
	copy(table, stageTable)
	return table
}

// TerminalStage returns the final ascension tier
func TerminalStage() StageLevel {
	return stageTable[len(stageTable)-1]
}

// StageThreshold returns the cumulative experience required to enter a stage
func StageThreshold(ordinal int) (int, error) {
	if ordinal < 0 || ordinal >= len(stageTable) {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, ordinal)
	}
	return stageTable[ordinal].Threshold, nil
}

// ResolveStage returns the highest stage whose threshold is at or below
// the given total experience
func ResolveStage(totalExperience int) StageLevel {
	current := stageTable[0]
	for _, stage := range stageTable {
		if totalExperience >= stage.Threshold {
			current = stage
		}
	}
	return current
}

// scale applies a difficulty multiplier to a base value
func scale(base int, multiplier float64) int {
	return int(float64(base) * multiplier)
}

// MeditationEffect computes the health and mana restored by one meditation.
// Both deltas grow strictly with talent and are never negative.
func MeditationEffect(d types.DifficultySettings, talent int) (hpDelta, mpDelta int) {
	hpDelta = scale(meditationBaseHP, d.RecoveryMultiplier) + talent
	mpDelta = scale(meditationBaseMP, d.RecoveryMultiplier) + talent
	return hpDelta, mpDelta
}

// CultivationGain computes the experience granted by one cultivation.
// The meditation streak adds a small bonus, capped so long streaks
// cannot produce runaway growth.
func CultivationGain(d types.DifficultySettings, talent, streak int) int {
	bonus := streak
	if bonus > cultivationStreakCap {
		bonus = cultivationStreakCap
	}
	if bonus < 0 {
		bonus = 0
	}
	return scale(cultivationBase+2*talent, d.ExperienceMultiplier) + bonus
}

// CultivationManaCost returns the fixed mana cost of cultivating
func CultivationManaCost() int {
	return cultivationManaCost
}

// PillEffect computes the restoration from consuming one pill.
// Pills are refined goods: their potency does not depend on talent.
func PillEffect(d types.DifficultySettings) (hpDelta, mpDelta int) {
	hpDelta = scale(pillBaseRecovery, d.RecoveryMultiplier)
	mpDelta = scale(pillBaseRecovery, d.RecoveryMultiplier)
	return hpDelta, mpDelta
}

// stagePowerMultipliers weight the composite power score by stage
var stagePowerMultipliers = []float64{1.0, 1.5, 2.5, 4.0, 6.0, 10.0}

// PowerLevel computes a composite strength score for a character
func PowerLevel(c *Character) int {
	if !c.Alive() {
		return 0
	}

	baseScore := float64(c.Health.Current)*0.3 +
		float64(c.Mana.Current)*0.3 +
		float64(c.Experience.Total)*0.2 +
		float64(c.Talent.Value)*10 +
		float64(c.Inventory.Pills)*5

	multiplier := stagePowerMultipliers[c.Experience.Stage.Ordinal]
	return int(baseScore * multiplier)
}

// Recommend suggests a next action based on the character's condition
func Recommend(c *Character) string {
	if !c.Alive() {
		return "修炼失败，请重新开始"
	}

	hpRatio := float64(c.Health.Current) / float64(c.Health.Max)
	mpRatio := float64(c.Mana.Current) / float64(c.Mana.Max)

	if hpRatio < 0.3 {
		if c.Inventory.Pills > 0 {
			return "生命垂危，建议立即服用丹药"
		}
		return "生命垂危且无丹药，建议打坐恢复"
	}

	if mpRatio < 0.3 {
		if c.Inventory.Pills > 0 {
			return "仙力不足，建议服用丹药恢复"
		}
		return "仙力不足，建议打坐恢复"
	}

	if mpRatio > 0.8 && c.Inventory.Pills > 2 {
		return "状态良好，建议全力修炼"
	}
	if c.Inventory.Pills == 0 {
		return "缺少丹药，建议稳扎稳打，交替打坐与修炼"
	}
	return "状态适中，可以根据需要选择修炼或恢复"
}
