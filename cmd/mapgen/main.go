// Command mapgen generates a terrain map and prints it as ASCII along with
// the tile count of each land class.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/talgya/hearthold/internal/config"
	"github.com/talgya/hearthold/internal/world"
)

var glyphs = map[world.Land]byte{
	world.LandGrass:    '.',
	world.LandSand:     ':',
	world.LandForest:   'T',
	world.LandMountain: '^',
	world.LandSnow:     '*',
	world.LandWater:    '~',
}

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	seed := flag.Int64("seed", 0, "override world.seed")
	flag.Parse()

	log := zap.NewExample()
	defer log.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}
	gen := cfg.GenConfig()
	if *seed != 0 {
		gen.Seed = *seed
	}

	m := world.Generate(gen)
	fmt.Fprint(os.Stdout, render(m))
	fmt.Fprintln(os.Stdout)

	counts := m.Counts()
	lands := make([]world.Land, 0, len(counts))
	for l := range counts {
		lands = append(lands, l)
	}
	sort.Slice(lands, func(i, j int) bool { return lands[i] < lands[j] })
	for _, l := range lands {
		fmt.Fprintf(os.Stdout, "%-9s %c %6d\n", l, glyph(l), counts[l])
	}
}

func glyph(l world.Land) byte {
	if g, ok := glyphs[l]; ok {
		return g
	}
	return '?'
}

func render(m *world.Map) string {
	var sb strings.Builder
	sb.Grow((m.Width + 1) * m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			sb.WriteByte(glyph(world.Land(m.Tile(x, y) / 16)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
