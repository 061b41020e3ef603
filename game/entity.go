package game

// Vector3 is a world position or scale. Y is up.
type Vector3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Quaternion is a rotation. Everything this package places uses Identity.
type Quaternion struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
	W float32 `json:"w"`
}

// Identity is the no-rotation quaternion.
var Identity = Quaternion{W: 1}

// unitScale is the scale of every placement except the pickup.
var unitScale = Vector3{X: 1, Y: 1, Z: 1}

// PlacementKind names the prefab a placement instantiates.
type PlacementKind string

const (
	KindWall    PlacementKind = "wall"
	KindFloor   PlacementKind = "floor"
	KindCeiling PlacementKind = "ceiling"
	KindPickup  PlacementKind = "pickup"
)

// Parent names the container a placement is grouped under.
type Parent string

const (
	ParentNone  Parent = ""
	ParentWalls Parent = "walls"
	ParentFloor Parent = "floor"
)

// Placement is a decision to instantiate one entity.
type Placement struct {
	Kind     PlacementKind `json:"kind"`
	Position Vector3       `json:"position"`
	Rotation Quaternion    `json:"rotation"`
	Scale    Vector3       `json:"scale"`
	Parent   Parent        `json:"parent,omitempty"`
}

// Collider identifies the other party of a trigger or contact.
type Collider struct {
	ID  string `json:"id"`
	Tag string `json:"tag"`
}

// PlayerTag is the tag carried by the player's collider.
const PlayerTag = "Player"

// IsPlayer reports whether c is tagged as the player.
func IsPlayer(c Collider) bool {
	return c.Tag == PlayerTag
}

// PlatformMatcher returns a predicate matching the game-over platform's collider.
func PlatformMatcher(platformID string) func(Collider) bool {
	return func(c Collider) bool {
		return platformID != "" && c.ID == platformID
	}
}
