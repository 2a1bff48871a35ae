// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShape(t *testing.T) {
	var empty Shape
	require.True(t, empty.IsEmpty())
	require.Equal(t, 0, empty.Rank())
	require.Equal(t, 0, empty.TotalSize())
	require.Equal(t, "[]", empty.String())
	require.True(t, Make().Equal(empty))

	scalar := Scalar()
	require.True(t, scalar.IsScalar())
	require.Equal(t, 0, scalar.Rank())
	require.Equal(t, 1, scalar.TotalSize())
	require.Equal(t, "()", scalar.String())

	shape := Make(4, 3, 2)
	require.Equal(t, 3, shape.Rank())
	require.Equal(t, 24, shape.TotalSize())
	require.Equal(t, []int{4, 3, 2}, shape.Dimensions())
	require.Equal(t, "[4 3 2]", shape.String())
	require.Equal(t, 6, shape.TotalSizeUpper(1))
	require.Equal(t, 12, shape.TotalSizeLower(2))
}

func TestDimensionCorrection(t *testing.T) {
	shape := Make(10, 1)
	require.Equal(t, 1, shape.Rank())
	require.Equal(t, 10, shape.Dim(0))
	require.Equal(t, 1, shape.Dim(1))
	require.Equal(t, 1, shape.Dim(MaxDimensions-1))

	// At least one dimension is kept.
	require.Equal(t, 1, Make(1, 1, 1).Rank())

	// Zero dimensions are not corrected, but make the shape empty.
	zero := Make(4, 0)
	require.Equal(t, 2, zero.Rank())
	require.True(t, zero.IsEmpty())
}

func TestDim(t *testing.T) {
	shape := Make(4, 3, 2)
	require.Equal(t, 4, shape.Dim(0))
	require.Equal(t, 2, shape.Dim(-1))
	require.Equal(t, 4, shape.Dim(-3))
	require.Panics(t, func() { _ = shape.Dim(MaxDimensions) })
	require.Panics(t, func() { _ = shape.Dim(-4) })
	require.Panics(t, func() { _ = Make(1, 2, 3, 4, 5, 6, 7) })
	require.Panics(t, func() { _ = Make(2, -1) })
}

func TestSet(t *testing.T) {
	shape := Make(4, 3)
	require.Equal(t, "[4 3 5]", shape.Set(2, 5, true).String())
	require.Equal(t, "[4 3]", shape.Set(2, 1, true).String())
	require.Equal(t, "[4 3 1]", shape.Set(2, 1, false).String())
	require.True(t, shape.Set(1, 0, true).IsEmpty())
	require.Equal(t, "[4 3]", shape.String(), "Set must not change the original shape")

	var empty Shape
	require.Equal(t, "[1 7]", empty.Set(1, 7, true).String())
}

func TestCollapse(t *testing.T) {
	shape := Make(2, 3, 4, 5)
	require.Equal(t, "[6 4 5]", shape.Collapse(2, 0).String())
	require.Equal(t, "[2 60]", shape.CollapsedFrom(1).String())
	require.Equal(t, "[2 12 5]", shape.Collapse(2, 1).String())
	require.Equal(t, shape, shape.Collapse(1, 2))
	require.Equal(t, shape.TotalSize(), shape.CollapsedFrom(0).TotalSize())

	require.Equal(t, "[2 4 5]", shape.RemoveDimension(1).String())
	require.Equal(t, "[2 3 4]", shape.RemoveDimension(3).String())
	require.True(t, Make(7).RemoveDimension(0).IsScalar())
}

func TestBroadcastShape(t *testing.T) {
	require.Equal(t, "[4 3 2]", BroadcastShape(Make(4, 1, 2), Make(1, 3)).String())
	require.Equal(t, "[4 3]", BroadcastShape(Make(4, 3), Make(4, 3)).String())
	require.True(t, BroadcastShape(Make(4, 3), Make(5, 3)).IsEmpty())
	require.True(t, BroadcastShape(Make(4, 3), Shape{}).IsEmpty())
}

func TestComputeLayout(t *testing.T) {
	// Shape [10] (10 elements in X), F32, padding left/right of 2.
	layout := ComputeLayout(Make(10, 1), 4, PaddingSize{Top: 0, Right: 2, Bottom: 0, Left: 2})
	require.Equal(t, Strides{4, 56}, layout.Strides)
	require.Equal(t, 8, layout.Offset)
	require.Equal(t, 56, layout.TotalSize)

	// Higher dimensions are packed.
	layout = ComputeLayout(Make(4, 3, 2, 5), 2, PaddingSize{Top: 1, Right: 1, Bottom: 1, Left: 1})
	require.Equal(t, Strides{2, 12, 60, 120}, layout.Strides)
	require.Equal(t, 2+12, layout.Offset)
	require.Equal(t, 600, layout.TotalSize)

	// Scalar.
	layout = ComputeLayout(Scalar(), 8, PaddingSize{})
	require.Equal(t, Strides{8}, layout.Strides)
	require.Equal(t, 8, layout.TotalSize)

	// Empty.
	layout = ComputeLayout(Shape{}, 4, UniformPadding(3))
	require.Empty(t, layout.Strides)
	require.Equal(t, 0, layout.TotalSize)
	require.Equal(t, 0, layout.Offset)
}

func TestLayoutRoundTrip(t *testing.T) {
	// With no padding, the last element ends exactly at the end of the buffer.
	for _, shape := range []Shape{Make(10), Make(10, 1), Make(4, 4), Make(2, 3, 4), Make(3, 1, 2, 5), Make(2, 2, 2, 2, 2, 3)} {
		for _, elementSize := range []int{1, 2, 4, 8} {
			layout := ComputeLayout(shape, elementSize, PaddingSize{})
			offset := layout.Offset
			for axis := range shape.Rank() {
				offset += (shape.Dim(axis) - 1) * layout.Strides[axis]
			}
			require.Equalf(t, layout.TotalSize-elementSize, offset, "shape=%s, elementSize=%d", shape, elementSize)
			require.Equal(t, DenseStrides(shape, elementSize)[:shape.Rank()], layout.Strides[:shape.Rank()])
		}
	}
}

func TestDenseStrides(t *testing.T) {
	require.Equal(t, Strides{4, 16, 48}, DenseStrides(Make(4, 3, 2), 4))
	require.Equal(t, Strides{4, 32, 96}, DenseStrides(Make(4, 3, 2), 4, 4, 32))
	require.Equal(t, Strides{4}, DenseStrides(Scalar(), 4))
}

func TestExtendPadding(t *testing.T) {
	p := PaddingSize{Top: 1, Right: 2, Bottom: 3, Left: 4}
	extended, changed := ExtendPadding(p, PaddingSize{Top: 1, Right: 1})
	require.False(t, changed)
	require.Equal(t, p, extended)

	extended, changed = ExtendPadding(p, PaddingSize{Right: 5})
	require.True(t, changed)
	require.Equal(t, PaddingSize{Top: 1, Right: 5, Bottom: 3, Left: 4}, extended)

	// Monotonic: extending twice is the same as extending once with the union.
	r1 := PaddingSize{Top: 7, Left: 1}
	r2 := PaddingSize{Top: 2, Bottom: 9, Left: 5}
	twice, _ := ExtendPadding(p, r1)
	twice, _ = ExtendPadding(twice, r2)
	once, _ := ExtendPadding(p, r1.Union(r2))
	require.Equal(t, once, twice)
}

func TestAutoPadding(t *testing.T) {
	require.Equal(t, PaddingSize{}, AutoPadding(Shape{}))
	require.Equal(t, PaddingSize{Right: 36, Left: 4}, AutoPadding(Make(8)))
	require.Equal(t, PaddingSize{Top: 4, Right: 36, Bottom: 4, Left: 4}, AutoPadding(Make(8, 8, 3)))
}

func TestPaddingSize(t *testing.T) {
	p := UniformPadding(2)
	require.True(t, p.IsUniform())
	require.False(t, p.IsEmpty())
	require.True(t, PaddingSize{}.IsEmpty())
	require.Equal(t, PaddingSize{Top: 3, Right: 2, Bottom: 2, Left: 2}, p.Add(PaddingSize{Top: 1}))
	require.Equal(t, PaddingSize{Top: 1, Right: 2, Bottom: 0, Left: 2}, p.Limit(PaddingSize{Top: 1, Right: 5, Left: 9}))
	require.Equal(t, "{t=2 r=2 b=2 l=2}", p.String())
}

func TestValidRegion(t *testing.T) {
	full := FullValidRegion(Make(10, 8))
	require.Equal(t, 0, full.Start(0))
	require.Equal(t, 10, full.End(0))
	require.Equal(t, 8, full.End(1))
	require.Equal(t, 1, full.End(2))

	inner := full.Set(0, 2, 6)
	require.Equal(t, 2, inner.Start(0))
	require.Equal(t, 8, inner.End(0))
	require.Equal(t, 10, full.End(0), "Set must not change the original region")

	other := ValidRegion{Anchor: Coordinates{0, 1}, Shape: Make(9, 5)}
	got := IntersectValidRegions(inner, other)
	require.Equal(t, 2, got.Start(0))
	require.Equal(t, 6, got.Shape.Dim(0))
	require.Equal(t, 1, got.Start(1))
	require.Equal(t, 5, got.Shape.Dim(1))
	require.True(t, got.Equal(ValidRegion{Anchor: Coordinates{2, 1, 0}, Shape: Make(6, 5)}))
}

func TestDimsState(t *testing.T) {
	var state DimsState
	require.False(t, state.IsDynamic())
	state = state.WithDynamic(2)
	require.True(t, state.IsDynamic())
	require.True(t, state.IsAxisDynamic(2))
	require.False(t, state.IsAxisDynamic(0))
	require.True(t, AllDynamic().IsAxisDynamic(MaxDimensions-1))

	pattern := Make(4, 3, 1)
	resolved, err := state.Resolve(pattern, map[int]int{2: 16})
	require.NoError(t, err)
	require.Equal(t, "[4 3 16]", resolved.String())
	require.NoError(t, state.Matches(pattern, resolved))
	require.Error(t, state.Matches(pattern, Make(4, 2, 16)))

	_, err = state.Resolve(pattern, map[int]int{0: 8})
	require.Error(t, err)
	_, err = state.Resolve(pattern, map[int]int{2: 0})
	require.Error(t, err)
}

func TestIndexCoords(t *testing.T) {
	shape := Make(4, 3, 2)
	coords, err := Index2Coords(shape, 23)
	require.NoError(t, err)
	require.Equal(t, Coordinates{3, 2, 1}, coords)

	coords, err = Index2Coords(shape, 5)
	require.NoError(t, err)
	require.Equal(t, Coordinates{1, 1, 0}, coords)

	idx, err := Coords2Index(shape, Coordinates{1, 1})
	require.NoError(t, err)
	require.Equal(t, 5, idx)

	_, err = Index2Coords(shape, 24)
	require.Error(t, err)
	_, err = Index2Coords(Shape{}, 0)
	require.Error(t, err)
	_, err = Coords2Index(shape, Coordinates{4})
	require.Error(t, err)
}
