package movement

import (
	"testing"

	"github.com/solarlune/resolv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wallTag = "static"

func buildSpaceWithWall(t *testing.T) *resolv.Space {
	t.Helper()
	space := resolv.NewSpace(160, 160, 16, 16)
	// Vertical wall splitting the room, with a gap at the bottom.
	wall := resolv.NewObject(72, 0, 16, 112, wallTag)
	space.Add(wall)
	return space
}

func TestNavGridMarksWallCellsUnwalkable(t *testing.T) {
	space := buildSpaceWithWall(t)
	grid := NewNavGrid(space, 160, 160, 16, wallTag)

	assert.False(t, grid.Nodes[0][4].Walkable)
	assert.True(t, grid.Nodes[0][0].Walkable)
	assert.True(t, grid.Nodes[9][4].Walkable, "gap below the wall stays walkable")
}

func TestNavGridPathRoutesThroughGap(t *testing.T) {
	space := buildSpaceWithWall(t)
	grid := NewNavGrid(space, 160, 160, 16, wallTag)

	path := grid.FindPath(24, 24, 136, 24)
	require.NotEmpty(t, path)

	// Start first, goal last.
	assert.InDelta(t, 24, path[0].X, 16)
	assert.InDelta(t, 136, path[len(path)-1].X, 16)

	// The route must dip below the wall to cross.
	maxY := 0.0
	for _, p := range path {
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	assert.Greater(t, maxY, 112.0)
}

func TestNavGridUnreachableReturnsNil(t *testing.T) {
	space := resolv.NewSpace(160, 160, 16, 16)
	// Full-height wall, no gap.
	space.Add(resolv.NewObject(72, 0, 16, 160, wallTag))
	grid := NewNavGrid(space, 160, 160, 16, wallTag)

	assert.Nil(t, grid.FindPath(24, 24, 136, 24))
}

func TestNavGridSnapsBlockedEndpoints(t *testing.T) {
	space := buildSpaceWithWall(t)
	grid := NewNavGrid(space, 160, 160, 16, wallTag)

	// Goal inside the wall snaps to the nearest walkable cell.
	path := grid.FindPath(24, 24, 80, 24)
	require.NotEmpty(t, path)
}
