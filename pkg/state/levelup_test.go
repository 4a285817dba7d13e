package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyLevelUps_SingleLevel(t *testing.T) {
	gs := NewGameState("Orion")
	gs.Player.Exp = 120
	gs.Player.MaxExp = 100

	levels := ApplyLevelUps(gs)

	require.Equal(t, 1, levels)
	p := gs.Player
	assert.Equal(t, 2, p.Lvl)
	assert.Equal(t, 20, p.Exp, "remainder carries forward")
	assert.Equal(t, 150, p.MaxExp)
	assert.Equal(t, 120, p.MaxHP)
	assert.Equal(t, 40, p.MaxMP)
	assert.Equal(t, p.MaxHP, p.HP, "full restore")
	assert.Equal(t, p.MaxMP, p.MP)
	assert.Equal(t, startAtk+3, p.Atk)
	assert.Equal(t, startDef+2, p.Def)
	assert.Len(t, gs.Log, 2)
}

func TestApplyLevelUps_MultiLevelJump(t *testing.T) {
	gs := NewGameState("Orion")
	gs.Player.Exp = 250
	gs.Player.MaxExp = 100

	levels := ApplyLevelUps(gs)

	// 250 exp: level 2 consumes 100 (150 left, threshold 150), level 3
	// consumes 150 (0 left, threshold 225).
	require.Equal(t, 2, levels)
	p := gs.Player
	assert.Equal(t, 3, p.Lvl)
	assert.Equal(t, 0, p.Exp)
	assert.Equal(t, 225, p.MaxExp)
	assert.Len(t, gs.Log, 4, "two celebratory lines per level")
}

func TestApplyLevelUps_ThresholdFloored(t *testing.T) {
	gs := NewGameState("Orion")
	gs.Player.Exp = 125
	gs.Player.MaxExp = 125

	ApplyLevelUps(gs)
	// floor(125 * 1.5) = 187
	assert.Equal(t, 187, gs.Player.MaxExp)
}

func TestApplyLevelUps_NoOpBelowThreshold(t *testing.T) {
	gs := NewGameState("Orion")
	gs.Player.Exp = 99
	gs.Player.MaxExp = 100

	assert.Equal(t, 0, ApplyLevelUps(gs))
	assert.Equal(t, 1, gs.Player.Lvl)
	assert.Empty(t, gs.Log)
}
