// Package filter selects close approaches by date, distance, velocity,
// diameter and hazard status.
package filter

import (
	"cmp"
	"fmt"
	"iter"
	"math"
	"time"

	"github.com/star/neotrack/internal/neo"
	"github.com/star/neotrack/internal/timeutil"
)

// Op compares an approach attribute against a reference value.
type Op int

const (
	OpEqual Op = iota
	OpAtLeast
	OpAtMost
)

func (o Op) String() string {
	switch o {
	case OpEqual:
		return "=="
	case OpAtLeast:
		return ">="
	case OpAtMost:
		return "<="
	default:
		return "?"
	}
}

func compare[T cmp.Ordered](op Op, got, ref T) bool {
	switch op {
	case OpEqual:
		return got == ref
	case OpAtLeast:
		return got >= ref
	case OpAtMost:
		return got <= ref
	default:
		return false
	}
}

// Filter reports whether a linked close approach should be kept.
type Filter interface {
	Match(a *neo.CloseApproach) bool
	fmt.Stringer
}

// DateFilter compares the calendar date of the approach, ignoring time of day.
type DateFilter struct {
	Op   Op
	Date time.Time
}

func (f DateFilter) Match(a *neo.CloseApproach) bool {
	got := timeutil.DateOnly(a.Time)
	ref := timeutil.DateOnly(f.Date)
	switch f.Op {
	case OpEqual:
		return timeutil.SameDate(a.Time, f.Date)
	case OpAtLeast:
		return !got.Before(ref)
	case OpAtMost:
		return !got.After(ref)
	default:
		return false
	}
}

func (f DateFilter) String() string {
	return fmt.Sprintf("date %s %s", f.Op, timeutil.FormatDate(f.Date))
}

// DistanceFilter compares the approach distance in au.
type DistanceFilter struct {
	Op    Op
	Value float64
}

func (f DistanceFilter) Match(a *neo.CloseApproach) bool {
	return compare(f.Op, a.Distance, f.Value)
}

func (f DistanceFilter) String() string {
	return fmt.Sprintf("distance %s %g", f.Op, f.Value)
}

// VelocityFilter compares the approach relative velocity in km/s.
type VelocityFilter struct {
	Op    Op
	Value float64
}

func (f VelocityFilter) Match(a *neo.CloseApproach) bool {
	return compare(f.Op, a.Velocity, f.Value)
}

func (f VelocityFilter) String() string {
	return fmt.Sprintf("velocity %s %g", f.Op, f.Value)
}

// DiameterFilter compares the diameter of the linked NEO in km. Objects with
// an unknown diameter never match.
type DiameterFilter struct {
	Op    Op
	Value float64
}

func (f DiameterFilter) Match(a *neo.CloseApproach) bool {
	if a.NEO == nil || math.IsNaN(a.NEO.Diameter) {
		return false
	}
	return compare(f.Op, a.NEO.Diameter, f.Value)
}

func (f DiameterFilter) String() string {
	return fmt.Sprintf("diameter %s %g", f.Op, f.Value)
}

// HazardousFilter matches on the hazard flag of the linked NEO.
type HazardousFilter struct {
	Hazardous bool
}

func (f HazardousFilter) Match(a *neo.CloseApproach) bool {
	return a.NEO != nil && a.NEO.Hazardous == f.Hazardous
}

func (f HazardousFilter) String() string {
	return fmt.Sprintf("hazardous == %t", f.Hazardous)
}

// Criteria collects optional query bounds. Nil fields are unconstrained.
type Criteria struct {
	Date        *time.Time
	StartDate   *time.Time
	EndDate     *time.Time
	DistanceMin *float64
	DistanceMax *float64
	VelocityMin *float64
	VelocityMax *float64
	DiameterMin *float64
	DiameterMax *float64
	Hazardous   *bool
}

// Create builds one filter per set criterion.
func Create(c Criteria) []Filter {
	var filters []Filter
	if c.Date != nil {
		filters = append(filters, DateFilter{Op: OpEqual, Date: *c.Date})
	}
	if c.StartDate != nil {
		filters = append(filters, DateFilter{Op: OpAtLeast, Date: *c.StartDate})
	}
	if c.EndDate != nil {
		filters = append(filters, DateFilter{Op: OpAtMost, Date: *c.EndDate})
	}
	if c.DistanceMin != nil {
		filters = append(filters, DistanceFilter{Op: OpAtLeast, Value: *c.DistanceMin})
	}
	if c.DistanceMax != nil {
		filters = append(filters, DistanceFilter{Op: OpAtMost, Value: *c.DistanceMax})
	}
	if c.VelocityMin != nil {
		filters = append(filters, VelocityFilter{Op: OpAtLeast, Value: *c.VelocityMin})
	}
	if c.VelocityMax != nil {
		filters = append(filters, VelocityFilter{Op: OpAtMost, Value: *c.VelocityMax})
	}
	if c.DiameterMin != nil {
		filters = append(filters, DiameterFilter{Op: OpAtLeast, Value: *c.DiameterMin})
	}
	if c.DiameterMax != nil {
		filters = append(filters, DiameterFilter{Op: OpAtMost, Value: *c.DiameterMax})
	}
	if c.Hazardous != nil {
		filters = append(filters, HazardousFilter{Hazardous: *c.Hazardous})
	}
	return filters
}

// Query lazily yields the database's approaches that match every filter, in load order.
func Query(db *neo.Database, filters []Filter) iter.Seq[*neo.CloseApproach] {
	return func(yield func(*neo.CloseApproach) bool) {
		for a := range db.Approaches() {
			if matchAll(a, filters) && !yield(a) {
				return
			}
		}
	}
}

func matchAll(a *neo.CloseApproach, filters []Filter) bool {
	for _, f := range filters {
		if !f.Match(a) {
			return false
		}
	}
	return true
}

// Limit yields at most n elements of seq. n <= 0 means no limit.
func Limit[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	if n <= 0 {
		return seq
	}
	return func(yield func(T) bool) {
		count := 0
		for v := range seq {
			if !yield(v) {
				return
			}
			count++
			if count >= n {
				return
			}
		}
	}
}
