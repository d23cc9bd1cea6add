package core

// SceneObject is anything the presentation layer can draw.
type SceneObject interface {
	Name() string
}

// Scene is the presentation collaborator objects attach to.
type Scene interface {
	Attach(obj SceneObject) error
	Detach(obj SceneObject)
}

// MemoryScene is a Scene that just tracks attached objects.
type MemoryScene struct {
	objects []SceneObject
}

// NewMemoryScene returns an empty scene.
func NewMemoryScene() *MemoryScene {
	return &MemoryScene{}
}

func (s *MemoryScene) Attach(obj SceneObject) error {
	s.objects = append(s.objects, obj)
	return nil
}

func (s *MemoryScene) Detach(obj SceneObject) {
	for i, o := range s.objects {
		if o == obj {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return
		}
	}
}

// Objects returns the attached objects in attach order.
func (s *MemoryScene) Objects() []SceneObject {
	return s.objects
}

// Cursor is the on-board selection affordance. Rows 0..height-1 address
// the table; row == height addresses the tray.
type Cursor struct {
	Row, Col int
}

func (c *Cursor) Name() string { return "cursor" }

// Move shifts the cursor, clamping to the table plus one tray row.
func (c *Cursor) Move(dr, dc, width, height, traySlots int) {
	rows := height
	if traySlots > 0 {
		rows++
	}
	c.Row = clamp(c.Row+dr, 0, max(rows-1, 0))
	cols := width
	if c.Row == height {
		cols = traySlots
	}
	c.Col = clamp(c.Col+dc, 0, max(cols-1, 0))
}

// OnTray reports whether the cursor is on the tray row of a board with
// the given height.
func (c *Cursor) OnTray(height int) bool {
	return c.Row >= height
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
