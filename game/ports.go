package game

// Spawner instantiates placements in the world.
type Spawner interface {
	Spawn(p Placement) error
}

// Positioner moves an existing entity.
type Positioner interface {
	SetPositionAndRotation(pos Vector3, rot Quaternion)
}

// SceneLoader switches to another scene by name.
type SceneLoader interface {
	LoadScene(name string) error
}

// TextDisplay shows a line of UI text.
type TextDisplay interface {
	SetText(text string)
}
