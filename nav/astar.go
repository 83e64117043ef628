package nav

import (
	"container/heap"
	"math"
)

// Cell is a grid coordinate.
type Cell struct {
	X int
	Z int
}

// AStar finds a path from start to goal on an 8-way grid. Diagonal steps may
// not cut a blocked corner. isBlocked reports untraversable cells; maxNodes
// bounds the number of expanded cells. The returned path includes both ends,
// or is nil when the goal cannot be reached.
func AStar(start, goal Cell, width, height int, isBlocked func(Cell) bool, maxNodes int) []Cell {
	if width <= 0 || height <= 0 {
		return nil
	}
	inside := func(c Cell) bool { return c.X >= 0 && c.Z >= 0 && c.X < width && c.Z < height }
	if !inside(start) || !inside(goal) {
		return nil
	}
	blocked := func(c Cell) bool { return isBlocked != nil && isBlocked(c) }
	if blocked(goal) {
		return nil
	}
	if start == goal {
		return []Cell{start}
	}

	idx := func(c Cell) int { return c.Z*width + c.X }
	cameFrom := make([]int, width*height)
	gScore := make([]float64, width*height)
	closed := make([]bool, width*height)
	for i := range cameFrom {
		cameFrom[i] = -1
		gScore[i] = math.Inf(1)
	}

	open := &openSet{}
	heap.Init(open)
	gScore[idx(start)] = 0
	heap.Push(open, &openItem{cell: start, f: octile(start, goal)})

	expanded := 0
	for open.Len() > 0 && expanded < maxNodes {
		cur := heap.Pop(open).(*openItem).cell
		ci := idx(cur)
		if closed[ci] {
			continue
		}
		closed[ci] = true
		expanded++

		if cur == goal {
			return reconstruct(cameFrom, idx(start), ci, width)
		}

		for _, d := range directions {
			n := Cell{cur.X + d.X, cur.Z + d.Z}
			if !inside(n) || blocked(n) {
				continue
			}
			cost := 1.0
			if d.X != 0 && d.Z != 0 {
				if blocked(Cell{cur.X + d.X, cur.Z}) || blocked(Cell{cur.X, cur.Z + d.Z}) {
					continue
				}
				cost = math.Sqrt2
			}
			ni := idx(n)
			tentative := gScore[ci] + cost
			if tentative < gScore[ni] {
				cameFrom[ni] = ci
				gScore[ni] = tentative
				heap.Push(open, &openItem{cell: n, f: tentative + octile(n, goal)})
			}
		}
	}
	return nil
}

var directions = []Cell{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

func reconstruct(cameFrom []int, startIdx, goalIdx, width int) []Cell {
	path := make([]Cell, 0, 32)
	for cur := goalIdx; ; cur = cameFrom[cur] {
		if cur < 0 {
			return nil
		}
		path = append(path, Cell{cur % width, cur / width})
		if cur == startIdx {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func octile(a, b Cell) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dz := math.Abs(float64(a.Z - b.Z))
	return dx + dz + (math.Sqrt2-2)*math.Min(dx, dz)
}

type openItem struct {
	cell  Cell
	f     float64
	index int
}

type openSet []*openItem

func (o openSet) Len() int           { return len(o) }
func (o openSet) Less(i, j int) bool { return o[i].f < o[j].f }
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
