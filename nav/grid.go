// Package nav is a reference navigator for guards: an occupancy grid over the
// ground plane, A* over it, and a follower that walks the resulting path.
package nav

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const defaultMaxNodes = 20000

// Grid marks which cells of a rectangle on the x/z plane are walkable.
type Grid struct {
	minX, minZ float64
	cellSize   float64
	width      int
	height     int
	blocked    []bool
	maxNodes   int
}

// NewGrid samples isBlocked at every cell centre of the rectangle
// [minX,maxX]x[minZ,maxZ].
func NewGrid(minX, minZ, maxX, maxZ, cellSize float64, isBlocked func(x, z float64) bool) *Grid {
	if cellSize <= 0 || maxX <= minX || maxZ <= minZ {
		return nil
	}
	g := &Grid{
		minX:     minX,
		minZ:     minZ,
		cellSize: cellSize,
		width:    int(math.Ceil((maxX - minX) / cellSize)),
		height:   int(math.Ceil((maxZ - minZ) / cellSize)),
		maxNodes: defaultMaxNodes,
	}
	g.blocked = make([]bool, g.width*g.height)
	if isBlocked != nil {
		for z := 0; z < g.height; z++ {
			for x := 0; x < g.width; x++ {
				cx, cz := g.Center(Cell{x, z})
				g.blocked[z*g.width+x] = isBlocked(cx, cz)
			}
		}
	}
	return g
}

func (g *Grid) Size() (int, int) { return g.width, g.height }

func (g *Grid) CellSize() float64 { return g.cellSize }

// CellAt returns the cell containing (x, z), clamped to the grid.
func (g *Grid) CellAt(x, z float64) Cell {
	cx := int(math.Floor((x - g.minX) / g.cellSize))
	cz := int(math.Floor((z - g.minZ) / g.cellSize))
	cx = max(0, min(cx, g.width-1))
	cz = max(0, min(cz, g.height-1))
	return Cell{cx, cz}
}

func (g *Grid) Center(c Cell) (float64, float64) {
	half := g.cellSize * 0.5
	return g.minX + float64(c.X)*g.cellSize + half, g.minZ + float64(c.Z)*g.cellSize + half
}

func (g *Grid) Blocked(c Cell) bool {
	if c.X < 0 || c.Z < 0 || c.X >= g.width || c.Z >= g.height {
		return true
	}
	return g.blocked[c.Z*g.width+c.X]
}

// nearestFree searches outward ring by ring for an open cell.
func (g *Grid) nearestFree(c Cell) (Cell, bool) {
	if !g.Blocked(c) {
		return c, true
	}
	limit := max(g.width, g.height)
	for r := 1; r < limit; r++ {
		for dz := -r; dz <= r; dz++ {
			for dx := -r; dx <= r; dx++ {
				if max(abs(dx), abs(dz)) != r {
					continue
				}
				n := Cell{c.X + dx, c.Z + dz}
				if !g.Blocked(n) {
					return n, true
				}
			}
		}
	}
	return Cell{}, false
}

// FindPath returns the corners to walk from one point to another, ending at
// to (or the nearest open cell when to is inside an obstacle). The starting
// point is not included. nil means no route.
func (g *Grid) FindPath(from, to mgl64.Vec3) []mgl64.Vec3 {
	start, ok := g.nearestFree(g.CellAt(from.X(), from.Z()))
	if !ok {
		return nil
	}
	goalCell := g.CellAt(to.X(), to.Z())
	goal, ok := g.nearestFree(goalCell)
	if !ok {
		return nil
	}
	cells := AStar(start, goal, g.width, g.height, g.Blocked, g.maxNodes)
	if cells == nil {
		return nil
	}
	cells = simplify(cells)

	y := to.Y()
	out := make([]mgl64.Vec3, 0, len(cells))
	for _, c := range cells[1:] {
		x, z := g.Center(c)
		out = append(out, mgl64.Vec3{x, y, z})
	}
	end := to
	if goal != goalCell {
		x, z := g.Center(goal)
		end = mgl64.Vec3{x, y, z}
	}
	if len(out) > 0 {
		out[len(out)-1] = end
	} else {
		out = append(out, end)
	}
	return out
}

// simplify drops cells that continue in the same direction as the previous
// step.
func simplify(cells []Cell) []Cell {
	if len(cells) < 3 {
		return cells
	}
	out := []Cell{cells[0]}
	for i := 1; i < len(cells)-1; i++ {
		a, b, c := cells[i-1], cells[i], cells[i+1]
		if b.X-a.X == c.X-b.X && b.Z-a.Z == c.Z-b.Z {
			continue
		}
		out = append(out, b)
	}
	return append(out, cells[len(cells)-1])
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
