package game

// Recorder stands in for the engine when a level runs headless. It keeps
// every collaborator call so the caller can ship the result to a client.
type Recorder struct {
	Placements     []Placement
	PlayerPosition *Vector3
	PlayerRotation Quaternion
	Scenes         []string // scene transitions in request order
	Text           string
}

var (
	_ Spawner     = &Recorder{}
	_ Positioner  = &Recorder{}
	_ SceneLoader = &Recorder{}
	_ TextDisplay = &Recorder{}
)

// Spawn implements Spawner.
func (r *Recorder) Spawn(p Placement) error {
	r.Placements = append(r.Placements, p)
	return nil
}

// SetPositionAndRotation implements Positioner.
func (r *Recorder) SetPositionAndRotation(pos Vector3, rot Quaternion) {
	r.PlayerPosition = &pos
	r.PlayerRotation = rot
}

// LoadScene implements SceneLoader.
func (r *Recorder) LoadScene(name string) error {
	r.Scenes = append(r.Scenes, name)
	return nil
}

// SetText implements TextDisplay.
func (r *Recorder) SetText(text string) {
	r.Text = text
}
