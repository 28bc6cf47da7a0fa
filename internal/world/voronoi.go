// Voronoi cells by half-plane clipping, plus Lloyd relaxation.
package world

import (
	"math"
	"sort"
)

// Point is a position in tile units.
type Point struct {
	X, Y float64
}

// Polygon is a convex polygon given by its vertices in order.
type Polygon []Point

// Area returns the unsigned area (shoelace formula).
func (p Polygon) Area() float64 {
	return math.Abs(p.signedArea())
}

func (p Polygon) signedArea() float64 {
	var a float64
	for i := range p {
		j := (i + 1) % len(p)
		a += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return a / 2
}

// Centroid returns the area centroid. Degenerate polygons fall back to the
// vertex average.
func (p Polygon) Centroid() Point {
	a := p.signedArea()
	if math.Abs(a) < 1e-12 {
		var c Point
		for _, v := range p {
			c.X += v.X
			c.Y += v.Y
		}
		if n := float64(len(p)); n > 0 {
			c.X /= n
			c.Y /= n
		}
		return c
	}
	var cx, cy float64
	for i := range p {
		j := (i + 1) % len(p)
		cross := p[i].X*p[j].Y - p[j].X*p[i].Y
		cx += (p[i].X + p[j].X) * cross
		cy += (p[i].Y + p[j].Y) * cross
	}
	return Point{cx / (6 * a), cy / (6 * a)}
}

// Bounds returns the bounding box of the polygon.
func (p Polygon) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, v := range p {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	return
}

// clip keeps the part of p on the side of the line where
// (v-m)·n <= 0 (Sutherland–Hodgman against a single half-plane).
func (p Polygon) clip(m, n Point) Polygon {
	side := func(v Point) float64 {
		return (v.X-m.X)*n.X + (v.Y-m.Y)*n.Y
	}
	out := make(Polygon, 0, len(p)+1)
	for i := range p {
		a, b := p[i], p[(i+1)%len(p)]
		sa, sb := side(a), side(b)
		if sa <= 0 {
			out = append(out, a)
		}
		if (sa < 0 && sb > 0) || (sa > 0 && sb < 0) {
			t := sa / (sa - sb)
			out = append(out, Point{a.X + t*(b.X-a.X), a.Y + t*(b.Y-a.Y)})
		}
	}
	return out
}

// Cells computes the Voronoi cell of every site, clipped to [0,w]×[0,h].
// Cells[i] belongs to sites[i].
func Cells(sites []Point, w, h float64) []Polygon {
	box := Polygon{{0, 0}, {w, 0}, {w, h}, {0, h}}
	cells := make([]Polygon, len(sites))

	order := make([]int, 0, len(sites))
	dist := make([]float64, len(sites))
	for i, s := range sites {
		order = order[:0]
		for j, o := range sites {
			if j == i {
				continue
			}
			dist[j] = (o.X-s.X)*(o.X-s.X) + (o.Y-s.Y)*(o.Y-s.Y)
			order = append(order, j)
		}
		sort.Slice(order, func(a, b int) bool { return dist[order[a]] < dist[order[b]] })

		cell := box
		for _, j := range order {
			// A site further than twice the farthest vertex cannot cut the cell.
			if dist[j] > 4*maxVertexDist2(cell, s) {
				break
			}
			o := sites[j]
			if dist[j] == 0 {
				continue
			}
			mid := Point{(s.X + o.X) / 2, (s.Y + o.Y) / 2}
			cell = cell.clip(mid, Point{o.X - s.X, o.Y - s.Y})
			if len(cell) == 0 {
				break
			}
		}
		cells[i] = cell
	}
	return cells
}

func maxVertexDist2(p Polygon, s Point) float64 {
	var m float64
	for _, v := range p {
		if d := (v.X-s.X)*(v.X-s.X) + (v.Y-s.Y)*(v.Y-s.Y); d > m {
			m = d
		}
	}
	return m
}

// Relax performs one Lloyd relaxation: every site moves to the centroid of
// its cell. Sites with an empty cell stay where they are.
func Relax(sites []Point, w, h float64) []Point {
	cells := Cells(sites, w, h)
	out := make([]Point, len(sites))
	for i, c := range cells {
		if len(c) < 3 {
			out[i] = sites[i]
			continue
		}
		out[i] = c.Centroid()
	}
	return out
}
