// Package tagcolor assigns stable display colors to tags for the lifetime of a process.
package tagcolor

import "sync"

// Color is a hex color string such as "#FF9999".
type Color string

// Fallback is handed out once every palette color has been assigned.
const Fallback Color = "#D3D3D3"

// Palette is the ordered pool of distinct tag colors.
var Palette = []Color{
	"#FF9999", "#99FF99", "#9999FF", "#FFCC99", "#CC99FF", "#99FFFF", "#FFFF99", "#FFB3E6",
	"#C2F0C2", "#B3D9FF", "#FF6666", "#66FF66", "#6666FF", "#FF9966", "#9966FF", "#66FFFF",
	"#FFFF66", "#FF80B3", "#A2F0A2", "#80B3FF",
}

// Assigner maps tags to colors on first sight, first-come-first-served.
// Assignments are never removed.
type Assigner struct {
	mu       sync.Mutex
	pool     []Color
	assigned map[string]Color
}

// New creates an Assigner with a fresh copy of the palette.
func New() *Assigner {
	pool := make([]Color, len(Palette))
	copy(pool, Palette)
	return &Assigner{
		pool:     pool,
		assigned: make(map[string]Color),
	}
}

// ColorFor returns the color for tag, assigning the next palette color
// (or Fallback once the palette is exhausted) the first time tag is seen.
func (a *Assigner) ColorFor(tag string) Color {
	a.mu.Lock()
	defer a.mu.Unlock()

	if c, ok := a.assigned[tag]; ok {
		return c
	}

	c := Fallback
	if len(a.pool) > 0 {
		c = a.pool[0]
		a.pool = a.pool[1:]
	}
	a.assigned[tag] = c
	return c
}

// Assigned returns how many distinct tags have been seen.
func (a *Assigner) Assigned() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.assigned)
}

// Remaining returns how many palette colors are still unassigned.
func (a *Assigner) Remaining() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pool)
}
