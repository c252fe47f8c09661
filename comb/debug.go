package comb

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// Location is the source line that constructed a combinator.
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	if l.File == "" {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(l.File), l.Line)
}

func caller(skip int) Location {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{}
	}
	return Location{File: file, Line: line}
}

// Unknown marks a footprint bound that cannot be determined.
const Unknown = -1

// Footprint bounds the number of tokens a parser consumes when it succeeds.
type Footprint struct {
	Min int
	Max int
}

func (f Footprint) String() string {
	bound := func(n int) string {
		if n == Unknown {
			return "?"
		}
		return fmt.Sprint(n)
	}
	return bound(f.Min) + ".." + bound(f.Max)
}

// Info describes a combinator for diagnostics.
type Info struct {
	Name      string
	Location  Location
	Footprint Footprint
}

// Describer is implemented by combinators that can describe themselves.
type Describer interface {
	Describe() Info
}

// Describe returns p's Info, or a placeholder when p does not implement
// Describer.
func Describe(p any) Info {
	if d, ok := p.(Describer); ok {
		return d.Describe()
	}
	return Info{Name: fmt.Sprintf("%T", p), Footprint: Footprint{Min: Unknown, Max: Unknown}}
}

func footprintOf(p any) Footprint {
	return Describe(p).Footprint
}

func exactly(n int) Footprint {
	return Footprint{Min: n, Max: n}
}

func addBound(a, b int) int {
	if a == Unknown || b == Unknown {
		return Unknown
	}
	return a + b
}

func sumFootprints(fps ...Footprint) Footprint {
	total := exactly(0)
	for _, fp := range fps {
		total.Min = addBound(total.Min, fp.Min)
		total.Max = addBound(total.Max, fp.Max)
	}
	return total
}

// unionFootprints bounds a parser that runs exactly one of fps.
func unionFootprints(fps ...Footprint) Footprint {
	if len(fps) == 0 {
		return exactly(0)
	}
	out := fps[0]
	for _, fp := range fps[1:] {
		if out.Min != Unknown && (fp.Min == Unknown || fp.Min < out.Min) {
			out.Min = fp.Min
		}
		if out.Max != Unknown && (fp.Max == Unknown || fp.Max > out.Max) {
			out.Max = fp.Max
		}
	}
	return out
}
