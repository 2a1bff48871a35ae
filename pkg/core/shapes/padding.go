// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import "fmt"

// PaddingSize holds the number of padding elements on each side of the X (left/right) and Y (top/bottom) axes.
type PaddingSize struct {
	Top, Right, Bottom, Left int
}

// BorderSize is the same as PaddingSize, used when describing the border a kernel reads or writes
// around each element.
type BorderSize = PaddingSize

// UniformPadding returns a PaddingSize with the same value on all sides.
func UniformPadding(size int) PaddingSize {
	return PaddingSize{Top: size, Right: size, Bottom: size, Left: size}
}

// IsEmpty returns whether there is no padding on any side.
func (p PaddingSize) IsEmpty() bool {
	return p == PaddingSize{}
}

// IsUniform returns whether all sides have the same padding.
func (p PaddingSize) IsUniform() bool {
	return p.Top == p.Right && p.Top == p.Bottom && p.Top == p.Left
}

// Union returns the side-by-side maximum of the two paddings.
func (p PaddingSize) Union(other PaddingSize) PaddingSize {
	return PaddingSize{
		Top:    max(p.Top, other.Top),
		Right:  max(p.Right, other.Right),
		Bottom: max(p.Bottom, other.Bottom),
		Left:   max(p.Left, other.Left),
	}
}

// Add returns the side-by-side sum of the two paddings.
func (p PaddingSize) Add(other PaddingSize) PaddingSize {
	return PaddingSize{
		Top:    p.Top + other.Top,
		Right:  p.Right + other.Right,
		Bottom: p.Bottom + other.Bottom,
		Left:   p.Left + other.Left,
	}
}

// Limit returns the side-by-side minimum of the two paddings.
func (p PaddingSize) Limit(limit PaddingSize) PaddingSize {
	return PaddingSize{
		Top:    min(p.Top, limit.Top),
		Right:  min(p.Right, limit.Right),
		Bottom: min(p.Bottom, limit.Bottom),
		Left:   min(p.Left, limit.Left),
	}
}

// String implements fmt.Stringer, in the order top, right, bottom, left.
func (p PaddingSize) String() string {
	return fmt.Sprintf("{t=%d r=%d b=%d l=%d}", p.Top, p.Right, p.Bottom, p.Left)
}

// ValidRegion is the sub-rectangle of a tensor guaranteed to hold meaningful values:
// it starts at Anchor, and has the extents in Shape.
type ValidRegion struct {
	Anchor Coordinates
	Shape  Shape
}

// FullValidRegion returns the valid region covering the whole shape, anchored at the origin.
func FullValidRegion(shape Shape) ValidRegion {
	return ValidRegion{Anchor: Coordinates{}, Shape: shape}
}

// Start returns the first valid coordinate along axis.
func (r ValidRegion) Start(axis int) int {
	return r.Anchor.At(axis)
}

// End returns the end (exclusive) of the valid coordinates along axis.
func (r ValidRegion) End(axis int) int {
	return r.Start(axis) + r.Shape.Dim(axis)
}

// Set returns a copy of the region with axis set to start at `start`, with `size` elements.
func (r ValidRegion) Set(axis, start, size int) ValidRegion {
	out := ValidRegion{Anchor: r.Anchor.Clone().Set(axis, start), Shape: r.Shape.Set(axis, size, true)}
	return out
}

// Equal compares two valid regions.
func (r ValidRegion) Equal(other ValidRegion) bool {
	if !r.Shape.Equal(other.Shape) {
		return false
	}
	for axis := range MaxDimensions {
		if r.Anchor.At(axis) != other.Anchor.At(axis) {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer.
func (r ValidRegion) String() string {
	return fmt.Sprintf("{anchor=%s shape=%s}", r.Anchor, r.Shape)
}

// IntersectValidRegions returns the region valid in all the given ones: the maximum of the anchors and
// the minimum of the extents, per axis.
func IntersectValidRegions(regions ...ValidRegion) ValidRegion {
	if len(regions) == 0 {
		return ValidRegion{}
	}
	out := ValidRegion{Anchor: regions[0].Anchor.Clone(), Shape: regions[0].Shape}
	for _, r := range regions[1:] {
		rank := min(out.Shape.Rank(), r.Shape.Rank())
		var anchor Coordinates
		for axis := range max(len(out.Anchor), len(r.Anchor)) {
			anchor = anchor.Set(axis, max(out.Anchor.At(axis), r.Anchor.At(axis)))
		}
		shape := out.Shape
		for axis := range rank {
			shape = shape.Set(axis, min(out.Shape.Dim(axis), r.Shape.Dim(axis)), false)
		}
		out = ValidRegion{Anchor: anchor, Shape: shape}
	}
	return out
}
