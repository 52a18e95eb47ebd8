package garden

import (
	"math"
	"time"
)

// InstanceStatus is the lifecycle stage of a planted instance.
type InstanceStatus string

const (
	StatusPending      InstanceStatus = "pending"
	StatusPlanted      InstanceStatus = "planted"
	StatusGrowing      InstanceStatus = "growing"
	StatusHarvestReady InstanceStatus = "harvest_ready"
	StatusHarvested    InstanceStatus = "harvested"
)

// Rotation is one of the four cardinal placement rotations, in degrees.
type Rotation int

const (
	Rotation0   Rotation = 0
	Rotation90  Rotation = 90
	Rotation180 Rotation = 180
	Rotation270 Rotation = 270
)

// PlantInstance is one individually placed plant within a layout. It
// references its catalogue Plant by value (plants are immutable and
// catalogue-owned, so a cheap copy here is equivalent to a reference
// and keeps Individual cheap to clone).
type PlantInstance struct {
	Plant     Plant
	X, Y      float64
	Width     float64
	Height    float64
	Rotation  Rotation
	PlantedAt *time.Time
	Status    InstanceStatus
}

// NewPlantInstance places a plant at (x, y) with default dimensions
// (both sides equal to sqrt(size)) and pending status.
func NewPlantInstance(p Plant, x, y float64) PlantInstance {
	side := math.Sqrt(p.Size)
	return PlantInstance{
		Plant:    p,
		X:        x,
		Y:        y,
		Width:    side,
		Height:   side,
		Rotation: Rotation0,
		Status:   StatusPending,
	}
}

// Clone returns an independent copy; PlantedAt is copied by value
// semantics of *time.Time would alias, so it is deep-copied here.
func (pi PlantInstance) Clone() PlantInstance {
	cp := pi
	if pi.PlantedAt != nil {
		t := *pi.PlantedAt
		cp.PlantedAt = &t
	}
	return cp
}

// CenterX and CenterY return the center point of the instance's
// bounding box, used by the Spacing Policy and Fitness Evaluator for
// distance calculations.
func (pi PlantInstance) CenterX() float64 { return pi.X + pi.Width/2 }
func (pi PlantInstance) CenterY() float64 { return pi.Y + pi.Height/2 }

// Distance returns the Euclidean center-to-center distance to another
// instance.
func (pi PlantInstance) Distance(other PlantInstance) float64 {
	dx := pi.CenterX() - other.CenterX()
	dy := pi.CenterY() - other.CenterY()
	return math.Sqrt(dx*dx + dy*dy)
}

// Overlaps reports whether the two instances' axis-aligned bounding
// boxes intersect.
func (pi PlantInstance) Overlaps(other PlantInstance) bool {
	return pi.X < other.X+other.Width &&
		pi.X+pi.Width > other.X &&
		pi.Y < other.Y+other.Height &&
		pi.Y+pi.Height > other.Y
}

// WithinBounds reports whether the instance's bounding box lies fully
// inside a [0, width] x [0, height] plot.
func (pi PlantInstance) WithinBounds(width, height float64) bool {
	return pi.X >= 0 && pi.Y >= 0 &&
		pi.X+pi.Width <= width &&
		pi.Y+pi.Height <= height
}
