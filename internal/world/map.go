package world

import (
	"fmt"
	"math"
)

// TileSize is the side of a tile in world units.
const TileSize = 16

// Land is a terrain class. Tile codes are Land*16 plus a border offset.
type Land uint8

const (
	LandGrass    Land = 0
	LandSand     Land = 1
	LandForest   Land = 2
	LandMountain Land = 3
	LandSnow     Land = 4
	LandWater    Land = 10
)

// NumLands is the number of land codes the generator may draw from.
const NumLands = 11

var landNames = map[Land]string{
	LandGrass:    "grass",
	LandSand:     "sand",
	LandForest:   "forest",
	LandMountain: "mountain",
	LandSnow:     "snow",
	LandWater:    "water",
}

func (l Land) String() string {
	if n, ok := landNames[l]; ok {
		return n
	}
	return fmt.Sprintf("land%d", uint8(l))
}

// Map is the terrain raster, row-major: Tiles[y*Width+x].
type Map struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Tiles  []uint16 `json:"tiles"`
}

// NewMap creates an all-grass map.
func NewMap(width, height int) *Map {
	return &Map{
		Width:  width,
		Height: height,
		Tiles:  make([]uint16, width*height),
	}
}

// InBounds returns true if the tile coordinate lies on the map.
func (m *Map) InBounds(tx, ty int) bool {
	return tx >= 0 && tx < m.Width && ty >= 0 && ty < m.Height
}

// Tile returns the tile code at a tile coordinate, or 0 outside the map.
func (m *Map) Tile(tx, ty int) uint16 {
	if !m.InBounds(tx, ty) {
		return 0
	}
	return m.Tiles[ty*m.Width+tx]
}

// LandAt returns the land class of the tile under the world position (x, y).
// Positions outside the map read as grass.
func (m *Map) LandAt(x, y float64) Land {
	tx := int(math.Floor(x / TileSize))
	ty := int(math.Floor(y / TileSize))
	return Land(m.Tile(tx, ty) / 16)
}

// PixelWidth returns the world width in world units.
func (m *Map) PixelWidth() float64 { return float64(m.Width * TileSize) }

// PixelHeight returns the world height in world units.
func (m *Map) PixelHeight() float64 { return float64(m.Height * TileSize) }

// Counts returns the number of tiles of each land class.
func (m *Map) Counts() map[Land]int {
	out := make(map[Land]int)
	for _, t := range m.Tiles {
		out[Land(t/16)]++
	}
	return out
}

func (m *Map) String() string {
	return fmt.Sprintf("Map(%dx%d)", m.Width, m.Height)
}
