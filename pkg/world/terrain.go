// Package world provides the procedural overworld map. Tiles are derived
// purely from their coordinates, so the map is infinite, stable across
// sessions, and requires no storage of visited tiles.
package world

// TileType identifies a terrain category on the overworld map.
type TileType string

const (
	TilePlains    TileType = "plains"
	TileForest    TileType = "forest"
	TileMountains TileType = "mountains"
	TileRiver     TileType = "river"
	TileBridge    TileType = "bridge"
	TileSwamp     TileType = "swamp"
	TileVillage   TileType = "village"
	TileRuins     TileType = "ruins"
	TileCave      TileType = "cave"
)

// Coordinate seed primes. Distinct large primes keep the seed well
// distributed along both axes.
const (
	seedPrimeX = 7345781
	seedPrimeY = 3251761
)

// mulberry32 returns a deterministic generator of floats in [0,1).
// All arithmetic is 32-bit so sequences are reproducible everywhere.
func mulberry32(seed uint32) func() float64 {
	a := seed
	return func() float64 {
		a += 0x6D2B79F5
		t := a
		t = (t ^ (t >> 15)) * (t | 1)
		t ^= t + (t^(t>>7))*(t|61)
		return float64(t^(t>>14)) / 4294967296.0
	}
}

// tileSeed folds integer coordinates into a 32-bit seed.
func tileSeed(x, y int) uint32 {
	return uint32(int64(x)*seedPrimeX + int64(y)*seedPrimeY)
}

// TileAt returns the terrain at the given coordinates. It is pure and total:
// the same coordinates always yield the same tile, for any integers.
func TileAt(x, y int) TileType {
	// The starting point is always a village, for narrative consistency.
	if x == 0 && y == 0 {
		return TileVillage
	}

	seed := tileSeed(x, y)
	random := mulberry32(seed)
	v := random()

	switch {
	case v < 0.35:
		return TilePlains
	case v < 0.70:
		return TileForest
	case v < 0.80:
		return TileMountains
	case v < 0.86:
		// River zone. A derived sub-generator decides whether this
		// particular river tile carries a bridge.
		sub := mulberry32(seed * 2)
		if sub() < 0.1 {
			return TileBridge
		}
		return TileRiver
	case v < 0.92:
		return TileSwamp
	case v < 0.94:
		return TileVillage
	case v < 0.96:
		return TileRuins
	case v < 0.98:
		return TileCave
	}
	return TilePlains
}
