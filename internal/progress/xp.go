package progress

import (
	"fmt"

	"taskventure/internal/model"
)

// DefaultLevelThreshold is the XP required to advance one level.
const DefaultLevelThreshold = 100

// XPTable maps a quest's difficulty to its XP award. It is the sole source
// of truth for the XP economy and is injected through Options so tests can
// substitute alternate tables.
type XPTable map[model.Difficulty]int

// DefaultXPTable mirrors the in-app economy: Easy 10, Medium 20, Hard 30.
func DefaultXPTable() XPTable {
	return XPTable{
		model.DifficultyEasy:   10,
		model.DifficultyMedium: 20,
		model.DifficultyHard:   30,
	}
}

// Award returns the XP for the given difficulty.
func (t XPTable) Award(d model.Difficulty) (int, error) {
	xp, ok := t[d]
	if !ok {
		return 0, fmt.Errorf("no XP award for difficulty %q", d)
	}
	return xp, nil
}

func (t XPTable) validate() error {
	for _, d := range []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard} {
		xp, ok := t[d]
		if !ok {
			return fmt.Errorf("%w: xp table is missing difficulty %q", ErrInvalidCatalog, d)
		}
		if xp <= 0 {
			return fmt.Errorf("%w: xp award for %q must be positive, got %d", ErrInvalidCatalog, d, xp)
		}
	}
	return nil
}

// normalizeXP rolls experience over into levels until it is below the
// threshold again. It is a loop, not a single conditional: an award larger
// than one full threshold applies several level-ups in one call.
func normalizeXP(level, experience, threshold int) (newLevel, newExperience, levelsGained int) {
	for experience >= threshold {
		experience -= threshold
		level++
		levelsGained++
	}
	return level, experience, levelsGained
}
