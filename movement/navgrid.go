package movement

import (
	"math"

	astar "github.com/beefsack/go-astar"
	"github.com/solarlune/resolv"
)

// NavGrid is the walkable-cell view of a space, used to plan waypoint lists
// for PathFollow around static geometry.
type NavGrid struct {
	Width, Height int
	CellSize      float64
	Nodes         [][]*NavNode
}

// NavNode is a single grid cell. Implements astar.Pather.
type NavNode struct {
	X, Y     int
	Walkable bool
	Grid     *NavGrid
}

// PathNeighbors returns adjacent walkable nodes (implements astar.Pather)
func (n *NavNode) PathNeighbors() []astar.Pather {
	var neighbors []astar.Pather

	// 8-directional movement (cardinal + diagonal)
	dirs := []struct{ dx, dy int }{
		{-1, 0}, {1, 0}, {0, -1}, {0, 1},
		{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
	}

	for _, d := range dirs {
		nx, ny := n.X+d.dx, n.Y+d.dy
		if nx < 0 || nx >= n.Grid.Width || ny < 0 || ny >= n.Grid.Height {
			continue
		}
		neighbor := n.Grid.Nodes[ny][nx]
		if neighbor.Walkable {
			neighbors = append(neighbors, neighbor)
		}
	}

	return neighbors
}

// PathNeighborCost returns the movement cost between adjacent nodes
// (implements astar.Pather)
func (n *NavNode) PathNeighborCost(to astar.Pather) float64 {
	toNode := to.(*NavNode)
	dx := float64(toNode.X - n.X)
	dy := float64(toNode.Y - n.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// PathEstimatedCost returns heuristic distance to target (implements
// astar.Pather)
func (n *NavNode) PathEstimatedCost(to astar.Pather) float64 {
	toNode := to.(*NavNode)
	dx := float64(toNode.X - n.X)
	dy := float64(toNode.Y - n.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// NewNavGrid builds a navigation grid from a resolv space by probing each
// cell against static geometry.
func NewNavGrid(space *resolv.Space, worldWidth, worldHeight int, cellSize float64, staticTag string) *NavGrid {
	gridW := int(float64(worldWidth) / cellSize)
	gridH := int(float64(worldHeight) / cellSize)

	grid := &NavGrid{
		Width:    gridW,
		Height:   gridH,
		CellSize: cellSize,
		Nodes:    make([][]*NavNode, gridH),
	}

	for y := 0; y < gridH; y++ {
		grid.Nodes[y] = make([]*NavNode, gridW)
		for x := 0; x < gridW; x++ {
			grid.Nodes[y][x] = &NavNode{X: x, Y: y, Walkable: true, Grid: grid}
		}
	}

	// Mark cells overlapping static geometry as non-walkable using a
	// slightly inset probe object.
	for y := 0; y < gridH; y++ {
		for x := 0; x < gridW; x++ {
			worldX := float64(x) * cellSize
			worldY := float64(y) * cellSize

			probe := resolv.NewObject(worldX+2, worldY+2, cellSize-4, cellSize-4)
			space.Add(probe)
			if probe.Check(0, 0, staticTag) != nil {
				grid.Nodes[y][x].Walkable = false
			}
			space.Remove(probe)
		}
	}

	return grid
}

// FindPath plans a route between world coordinates and returns it as
// waypoints at cell centers, start first.
func (g *NavGrid) FindPath(startX, startY, goalX, goalY float64) []Point {
	sx := clampInt(int(startX/g.CellSize), 0, g.Width-1)
	sy := clampInt(int(startY/g.CellSize), 0, g.Height-1)
	gx := clampInt(int(goalX/g.CellSize), 0, g.Width-1)
	gy := clampInt(int(goalY/g.CellSize), 0, g.Height-1)

	startNode := g.Nodes[sy][sx]
	goalNode := g.Nodes[gy][gx]

	if !startNode.Walkable {
		startNode = g.findNearestWalkable(sx, sy)
	}
	if !goalNode.Walkable {
		goalNode = g.findNearestWalkable(gx, gy)
	}
	if startNode == nil || goalNode == nil {
		return nil
	}

	path, _, found := astar.Path(startNode, goalNode)
	if !found {
		return nil
	}

	// go-astar unwinds the path goal-first; reverse into walking order.
	waypoints := make([]Point, len(path))
	for i, p := range path {
		node := p.(*NavNode)
		wx, wy := g.GridToWorld(node.X, node.Y)
		waypoints[len(path)-1-i] = Point{X: wx, Y: wy}
	}

	return waypoints
}

func (g *NavGrid) findNearestWalkable(x, y int) *NavNode {
	for radius := 1; radius < 10; radius++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				nx, ny := x+dx, y+dy
				if nx >= 0 && nx < g.Width && ny >= 0 && ny < g.Height {
					if g.Nodes[ny][nx].Walkable {
						return g.Nodes[ny][nx]
					}
				}
			}
		}
	}
	return nil
}

// GridToWorld converts grid coordinates to world coordinates (center of cell)
func (g *NavGrid) GridToWorld(gridX, gridY int) (float64, float64) {
	return float64(gridX)*g.CellSize + g.CellSize/2,
		float64(gridY)*g.CellSize + g.CellSize/2
}

func clampInt(v, minVal, maxVal int) int {
	return max(minVal, min(maxVal, v))
}
