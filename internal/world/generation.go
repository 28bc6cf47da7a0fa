// Terrain generation: Voronoi regions over the tile grid, relaxed with Lloyd's
// algorithm, assigned a land class each, rasterised and then given border tiles.
package world

import (
	"math"
	"math/rand"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// LandProbabilities is the distribution of land classes over regions,
// indexed by Land.
var LandProbabilities = [NumLands]float64{0.8, 0.05, 0.05, 0.04, 0.01, 0, 0, 0, 0, 0, 0.05}

// borderOffset maps a same-neighbour mask (top<<3|right<<2|bottom<<1|left)
// to the tile offset within a land class.
var borderOffset = [16]uint16{0, 5, 2, 13, 4, 7, 12, 8, 3, 15, 6, 11, 14, 9, 10, 1}

// GenConfig holds terrain generation parameters.
type GenConfig struct {
	Width       int   // Tiles
	Height      int   // Tiles
	Seeds       int   // Voronoi sites
	Relaxations int   // Lloyd passes
	Seed        int64 // Random seed (0 = random)
	Clustered   bool  // Assign land classes from a noise field instead of independent draws
}

// DefaultGenConfig returns the standard 100×100 world.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:       100,
		Height:      100,
		Seeds:       1000,
		Relaxations: 2,
	}
}

// SmallTestConfig returns a tiny world for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Width:       24,
		Height:      24,
		Seeds:       40,
		Relaxations: 2,
		Seed:        42,
	}
}

// Generate creates a terrain map. The same non-zero seed always yields the
// same map.
func Generate(cfg GenConfig) *Map {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))

	w, h := float64(cfg.Width), float64(cfg.Height)
	sites := make([]Point, cfg.Seeds)
	for i := range sites {
		sites[i] = Point{rng.Float64() * w, rng.Float64() * h}
	}
	for i := 0; i < cfg.Relaxations; i++ {
		sites = Relax(sites, w, h)
	}
	cells := Cells(sites, w, h)

	var lands []Land
	if cfg.Clustered {
		lands = clusteredLands(cells, seed)
	} else {
		lands = make([]Land, len(cells))
		for i := range lands {
			lands[i] = pickLand(rng.Float64())
		}
	}

	m := NewMap(cfg.Width, cfg.Height)
	for i, c := range cells {
		rasterise(m, c, uint16(lands[i])*16)
	}
	addBorders(m)
	return m
}

// pickLand maps a uniform draw in [0,1) onto LandProbabilities.
func pickLand(u float64) Land {
	acc := 0.0
	for l, p := range LandProbabilities {
		acc += p
		if u < acc {
			return Land(l)
		}
	}
	return LandWater
}

// clusteredLands ranks regions by a noise value sampled at their centroid and
// hands out land classes by quantile, so the overall distribution matches
// LandProbabilities while neighbouring regions tend to share a class.
func clusteredLands(cells []Polygon, seed int64) []Land {
	noise := opensimplex.NewNormalized(seed)
	value := make([]float64, len(cells))
	order := make([]int, len(cells))
	for i, c := range cells {
		p := c.Centroid()
		value[i] = octaveNoise(noise, p.X, p.Y, 3, 0.08, 0.5)
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return value[order[a]] < value[order[b]] })

	lands := make([]Land, len(cells))
	n := float64(len(cells))
	for rank, i := range order {
		lands[i] = pickLand((float64(rank) + 0.5) / n)
	}
	return lands
}

// rasterise fills every tile row crossed by the polygon between the leftmost
// and rightmost crossing of the row's centre line.
func rasterise(m *Map, p Polygon, code uint16) {
	if len(p) < 3 {
		return
	}
	_, minY, _, maxY := p.Bounds()
	y0 := int(math.Floor(minY))
	y1 := int(math.Floor(maxY))
	if y0 < 0 {
		y0 = 0
	}
	if y1 >= m.Height {
		y1 = m.Height - 1
	}

	for ty := y0; ty <= y1; ty++ {
		py := float64(ty) + 0.5
		lo, hi := math.Inf(1), math.Inf(-1)
		for i := range p {
			a, b := p[i], p[(i+1)%len(p)]
			if (a.Y > py) == (b.Y > py) {
				continue
			}
			x := a.X + (py-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			lo = math.Min(lo, x)
			hi = math.Max(hi, x)
		}
		if lo > hi {
			continue
		}
		x0 := int(math.Floor(lo))
		x1 := int(math.Floor(hi))
		if x0 < 0 {
			x0 = 0
		}
		if x1 >= m.Width {
			x1 = m.Width - 1
		}
		for tx := x0; tx <= x1; tx++ {
			m.Tiles[ty*m.Width+tx] = code
		}
	}
}

// addBorders offsets every non-grass tile by its neighbourhood mask. A bit is
// set when the neighbour has the same land class; off-map counts as same.
func addBorders(m *Map) {
	base := make([]uint16, len(m.Tiles))
	for i, t := range m.Tiles {
		base[i] = t / 16
	}
	same := func(tx, ty int, land uint16) uint16 {
		if !m.InBounds(tx, ty) || base[ty*m.Width+tx] == land {
			return 1
		}
		return 0
	}
	for ty := 0; ty < m.Height; ty++ {
		for tx := 0; tx < m.Width; tx++ {
			land := base[ty*m.Width+tx]
			if land == uint16(LandGrass) {
				continue
			}
			mask := same(tx, ty-1, land)<<3 |
				same(tx+1, ty, land)<<2 |
				same(tx, ty+1, land)<<1 |
				same(tx-1, ty, land)
			m.Tiles[ty*m.Width+tx] = land*16 + borderOffset[mask]
		}
	}
}

// octaveNoise sums several octaves of normalized noise into [0, 1].
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
