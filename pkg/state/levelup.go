package state

import "fmt"

// Level-up growth constants. Exp carries its remainder forward rather than
// resetting, and the threshold grows by half each level.
const (
	levelUpMaxHPGain = 20
	levelUpMaxMPGain = 10
	levelUpAtkGain   = 3
	levelUpDefGain   = 2
)

// ApplyLevelUps levels the player while exp meets the threshold, mutating gs
// in place, and returns the number of levels gained. The loop makes large
// exp grants produce multi-level jumps in one evaluation: each step consumes
// exactly the pre-step threshold before the next check.
func ApplyLevelUps(gs *GameState) int {
	levels := 0
	p := &gs.Player

	for p.Exp >= p.MaxExp && p.MaxExp > 0 {
		p.Exp -= p.MaxExp
		p.MaxExp = p.MaxExp * 3 / 2
		p.Lvl++
		p.MaxHP += levelUpMaxHPGain
		p.MaxMP += levelUpMaxMPGain
		p.HP = p.MaxHP
		p.MP = p.MaxMP
		p.Atk += levelUpAtkGain
		p.Def += levelUpDefGain

		gs.Log = append(gs.Log,
			SystemEntry(fmt.Sprintf("DING! Anda telah mencapai Level %d!", p.Lvl)),
			SystemEntry("HP dan MP telah pulih sepenuhnya. Status meningkat!"),
		)
		levels++
	}
	return levels
}
