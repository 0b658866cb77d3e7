// Package placement turns raw pointer positions into grid-snapped room
// coordinates and classifies them against kind-dependent acceptance zones.
// Everything here is pure: the engine holds no state between calls, so it can
// run on every pointer-move event without accumulating error.
package placement

import "math"

// Kind tags an item with the zone test that applies to it. New furniture
// kinds only need a tag, not new geometry.
type Kind string

const (
	KindFloor Kind = "floor"
	KindWall  Kind = "wall"
)

// Zone is the verdict for a candidate drop position.
type Zone string

const (
	ZoneValid   Zone = "valid"
	ZoneRecycle Zone = "recycle"
	ZoneInvalid Zone = "invalid"
)

// Point is a position in the room's normalized 0-100 percentage plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is a screen-space rectangle in pixels.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom
}

// Size is an item's on-screen pixel footprint.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// WallZone accepts positions on the wall band under a V-shaped ceiling: the
// usable ceiling height drops by Slope for every unit of horizontal distance
// from CenterX.
type WallZone struct {
	MinX    float64
	MaxX    float64
	MaxY    float64
	CenterX float64
	Slope   float64
}

func (z WallZone) contains(p Point) bool {
	if p.X < z.MinX || p.X > z.MaxX {
		return false
	}
	if p.Y > z.MaxY {
		return false
	}
	ceilingY := math.Abs(p.X-z.CenterX) * z.Slope
	return p.Y >= ceilingY
}

// FloorZone accepts positions inside a Manhattan-distance ellipse:
// |x-cx|/rx + |y-cy|/ry <= threshold. The threshold is deliberately looser
// than a unit ellipse to keep the usable floor generous.
type FloorZone struct {
	CenterX   float64
	CenterY   float64
	RadiusX   float64
	RadiusY   float64
	Threshold float64
}

func (z FloorZone) contains(p Point) bool {
	dist := math.Abs(p.X-z.CenterX)/z.RadiusX + math.Abs(p.Y-z.CenterY)/z.RadiusY
	return dist <= z.Threshold
}

// Policy is the declarative placement rule set for a room.
type Policy struct {
	// GridSize is the snap quantum in room percent. 2.5 yields a 40x40 grid.
	GridSize float64
	Wall     WallZone
	Floor    FloorZone
}

// DefaultPolicy mirrors the shipped room tuning.
func DefaultPolicy() Policy {
	return Policy{
		GridSize: 2.5,
		Wall:     WallZone{MinX: 2, MaxX: 98, MaxY: 100, CenterX: 50, Slope: 0.45},
		Floor:    FloorZone{CenterX: 50, CenterY: 65, RadiusX: 45, RadiusY: 35, Threshold: 1.5},
	}
}

// SnapToGrid converts a pointer pixel position into the item's grid-snapped
// room coordinate. The item's anchor is its horizontal center and its bottom
// edge, so the pointer is corrected by half the width and the full height
// before converting to percent. Each call re-derives from the raw pointer;
// snapped results are never composed.
func (p Policy) SnapToGrid(pointerX, pointerY float64, room Rect, item Size) Point {
	rawX := (pointerX - room.Left - item.W/2) / room.Width() * 100
	rawY := (pointerY - room.Top - item.H) / room.Height() * 100
	return Point{
		X: math.Round(rawX/p.GridSize) * p.GridSize,
		Y: math.Round(rawY/p.GridSize) * p.GridSize,
	}
}

// ClassifyZone decides what dropping at snapped would mean. The recycle test
// uses the raw pointer position against the screen-space tray rectangle and
// wins over everything else; the zone tests use the snapped room coordinate
// and depend only on the item's kind.
func (p Policy) ClassifyZone(pointerX, pointerY float64, snapped Point, kind Kind, recycle Rect) Zone {
	if recycle.Contains(pointerX, pointerY) {
		return ZoneRecycle
	}
	switch kind {
	case KindWall:
		if p.Wall.contains(snapped) {
			return ZoneValid
		}
	default:
		if p.Floor.contains(snapped) {
			return ZoneValid
		}
	}
	return ZoneInvalid
}
