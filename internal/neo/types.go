package neo

import (
	"fmt"
	"math"
	"time"

	"github.com/star/neotrack/internal/timeutil"
)

// NearEarthObject represents a single catalog entry from the NEO dataset.
type NearEarthObject struct {
	Designation string

	// Name is nil when the catalog has no name for this object.
	Name *string

	// Diameter is in kilometers; NaN when the catalog does not record it.
	Diameter float64

	Hazardous bool

	// Approaches is populated by NewDatabase.
	Approaches []*CloseApproach
}

// FullName returns "designation (name)", or just the designation for unnamed objects.
func (n *NearEarthObject) FullName() string {
	if n.Name == nil {
		return n.Designation
	}
	return fmt.Sprintf("%s (%s)", n.Designation, *n.Name)
}

// DiameterKnown reports whether the catalog recorded a diameter.
func (n *NearEarthObject) DiameterKnown() bool {
	return !math.IsNaN(n.Diameter)
}

func (n *NearEarthObject) String() string {
	hazard := "is not"
	if n.Hazardous {
		hazard = "is"
	}
	if !n.DiameterKnown() {
		return fmt.Sprintf("NEO %s has an unknown diameter and %s potentially hazardous.", n.FullName(), hazard)
	}
	return fmt.Sprintf("NEO %s has a diameter of %.3f km and %s potentially hazardous.", n.FullName(), n.Diameter, hazard)
}

// CloseApproach is one recorded pass of a NEO near Earth.
type CloseApproach struct {
	Designation string
	Time        time.Time
	Distance    float64 // au
	Velocity    float64 // km/s, relative to Earth

	// NEO is nil until the approach is linked by NewDatabase. It points into the
	// catalog and is never copied.
	NEO *NearEarthObject
}

// TimeStr returns the approach time in canonical form.
func (a *CloseApproach) TimeStr() string {
	return timeutil.FormatDatetime(a.Time)
}

func (a *CloseApproach) String() string {
	name := a.Designation
	if a.NEO != nil {
		name = a.NEO.FullName()
	}
	return fmt.Sprintf("On %s, '%s' approaches Earth at a distance of %.2f au and a velocity of %.2f km/s.",
		a.TimeStr(), name, a.Distance, a.Velocity)
}
