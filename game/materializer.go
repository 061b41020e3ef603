package game

import (
	"fmt"

	"github.com/beka-birhanu/vinom-labyrinth/maze"
)

const (
	floorHeight   = 0
	playerHeight  = 1
	ceilingHeight = 4

	// Floor and ceiling tiles are skipped where both x and z are multiples
	// of this, leaving a regular pattern of holes.
	tileGap = 3
)

var (
	wallHeights = [...]float32{1, 2, 3}
	pickupScale = Vector3{X: 0.25, Y: 0.25, Z: 0.25}
)

// MaterializeOptions tunes how a grid turns into placements.
type MaterializeOptions struct {
	GenerateRoof bool
}

// Layout is every placement decided for one maze, in sweep order.
type Layout struct {
	Placements  []Placement // walls, floors and ceilings
	PlayerSpawn *Vector3    // nil when the maze has no open cell
	Pickup      Placement
}

// Materialize walks the grid row by row (z outer, x inner) and decides
// where walls, floors, ceilings, the player and the pickup go.
// The result depends only on the maze and opts.
func Materialize(m *maze.Maze, opts MaterializeOptions) Layout {
	var layout Layout
	size := m.Size()

	for z := 0; z < size; z++ {
		for x := 0; x < size; x++ {
			if m.IsWall(x, z) {
				for _, h := range wallHeights {
					layout.Placements = append(layout.Placements, place(KindWall, ParentWalls, x, h, z))
				}
			} else if layout.PlayerSpawn == nil {
				layout.PlayerSpawn = &Vector3{X: float32(x), Y: playerHeight, Z: float32(z)}
			}

			if x%tileGap != 0 || z%tileGap != 0 {
				layout.Placements = append(layout.Placements, place(KindFloor, ParentFloor, x, floorHeight, z))
				if opts.GenerateRoof {
					layout.Placements = append(layout.Placements, place(KindCeiling, ParentWalls, x, ceilingHeight, z))
				}
			}
		}
	}

	end := m.Cursor()
	layout.Pickup = Placement{
		Kind:     KindPickup,
		Position: Vector3{X: float32(end.X), Y: playerHeight, Z: float32(end.Y)},
		Rotation: Identity,
		Scale:    pickupScale,
	}
	return layout
}

func place(kind PlacementKind, parent Parent, x int, y float32, z int) Placement {
	return Placement{
		Kind:     kind,
		Position: Vector3{X: float32(x), Y: y, Z: float32(z)},
		Rotation: Identity,
		Scale:    unitScale,
		Parent:   parent,
	}
}

// Count returns how many placements of kind the layout holds, pickup included.
func (l Layout) Count(kind PlacementKind) int {
	n := 0
	for _, p := range l.Placements {
		if p.Kind == kind {
			n++
		}
	}
	if kind == KindPickup {
		n++
	}
	return n
}

// Apply hands the layout to the world: the player is moved to its spawn
// (if any), then every placement is spawned in sweep order and the pickup
// last. A maze without open cells leaves the player where it was.
func (l Layout) Apply(spawner Spawner, player Positioner) error {
	if l.PlayerSpawn != nil {
		player.SetPositionAndRotation(*l.PlayerSpawn, Identity)
	}

	for _, p := range l.Placements {
		if err := spawner.Spawn(p); err != nil {
			return fmt.Errorf("spawning %s at %v: %w", p.Kind, p.Position, err)
		}
	}

	if err := spawner.Spawn(l.Pickup); err != nil {
		return fmt.Errorf("spawning pickup: %w", err)
	}
	return nil
}
