package world

// TileInfo is display metadata for a terrain category.
type TileInfo struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Tiles maps every terrain category to its player-facing name and map glyph.
var Tiles = map[TileType]TileInfo{
	TileForest:    {Name: "Hutan", Icon: "🌲"},
	TileMountains: {Name: "Pegunungan", Icon: "⛰️"},
	TileCave:      {Name: "Gua", Icon: "🕸️"},
	TilePlains:    {Name: "Padang Rumput", Icon: "🌾"},
	TileVillage:   {Name: "Desa", Icon: "🏡"},
	TileBridge:    {Name: "Jembatan", Icon: "🌉"},
	TileRiver:     {Name: "Sungai", Icon: "💧"},
	TileSwamp:     {Name: "Rawa", Icon: "🐸"},
	TileRuins:     {Name: "Reruntuhan", Icon: "🏛️"},
}

// LocalMap is the 8-neighborhood around a tile, used both by the map view
// and as geographic ground truth in the narrator prompt.
type LocalMap struct {
	North     TileType `json:"north"`
	NorthEast TileType `json:"northEast"`
	East      TileType `json:"east"`
	SouthEast TileType `json:"southEast"`
	South     TileType `json:"south"`
	SouthWest TileType `json:"southWest"`
	West      TileType `json:"west"`
	NorthWest TileType `json:"northWest"`
}

// Neighborhood returns the tiles surrounding (x, y). North is y-1.
func Neighborhood(x, y int) LocalMap {
	return LocalMap{
		North:     TileAt(x, y-1),
		NorthEast: TileAt(x+1, y-1),
		East:      TileAt(x+1, y),
		SouthEast: TileAt(x+1, y+1),
		South:     TileAt(x, y+1),
		SouthWest: TileAt(x-1, y+1),
		West:      TileAt(x-1, y),
		NorthWest: TileAt(x-1, y-1),
	}
}
