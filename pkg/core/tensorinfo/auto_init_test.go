// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensorinfo

import (
	"testing"

	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/quantization"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/shapes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/status"
	"github.com/stretchr/testify/require"
)

// fakeInfo is a minimal Info with dense layout and no padding support, used to check that the helpers
// only depend on the interface.
type fakeInfo struct {
	shape      shapes.Shape
	dtype      dtypes.DType
	channels   int
	format     dtypes.Format
	quant      quantization.Info
	layout     DataLayout
	numSetters int
}

var _ Info = (*fakeInfo)(nil)

func (f *fakeInfo) Shape() shapes.Shape                 { return f.shape }
func (f *fakeInfo) DataType() dtypes.DType              { return f.dtype }
func (f *fakeInfo) NumChannels() int                    { return f.channels }
func (f *fakeInfo) Format() dtypes.Format               { return f.format }
func (f *fakeInfo) ElementSize() int                    { return f.dtype.Size() * f.channels }
func (f *fakeInfo) Strides() shapes.Strides             { return shapes.DenseStrides(f.shape, f.ElementSize()) }
func (f *fakeInfo) OffsetFirstElement() int             { return 0 }
func (f *fakeInfo) TotalSize() int                      { return f.shape.TotalSize() * f.ElementSize() }
func (f *fakeInfo) Padding() shapes.PaddingSize         { return shapes.PaddingSize{} }
func (f *fakeInfo) ValidRegion() shapes.ValidRegion     { return shapes.FullValidRegion(f.shape) }
func (f *fakeInfo) QuantizationInfo() quantization.Info { return f.quant }
func (f *fakeInfo) DataLayout() DataLayout              { return f.layout }
func (f *fakeInfo) IsResizable() bool                   { return true }
func (f *fakeInfo) IsDynamic() bool                     { return false }

func (f *fakeInfo) OffsetOf(coords shapes.Coordinates) (int, error) {
	index, err := shapes.Coords2Index(f.shape, coords)
	return index * f.ElementSize(), err
}

func (f *fakeInfo) SetShape(shape shapes.Shape)             { f.numSetters++; f.shape = shape }
func (f *fakeInfo) SetDataType(dtype dtypes.DType)          { f.numSetters++; f.dtype = dtype }
func (f *fakeInfo) SetNumChannels(numChannels int)          { f.numSetters++; f.channels = numChannels }
func (f *fakeInfo) SetQuantizationInfo(q quantization.Info) { f.numSetters++; f.quant = q }
func (f *fakeInfo) SetDataLayout(layout DataLayout)         { f.numSetters++; f.layout = layout }

func (f *fakeInfo) SetFormat(format dtypes.Format) error {
	f.numSetters++
	if f.dtype != dtypes.InvalidDType && f.dtype != format.DType() {
		return status.Errorf(status.Layout, "conflicting format")
	}
	f.format, f.dtype, f.channels = format, format.DType(), format.NumChannels()
	return nil
}

func (f *fakeInfo) ExtendPadding(shapes.PaddingSize) (bool, error) {
	return false, status.Errorf(status.Layout, "fakeInfo doesn't support padding")
}

func (f *fakeInfo) Clone() Info {
	clone := *f
	clone.quant = f.quant.Clone()
	return &clone
}

func TestAutoInitIfEmpty(t *testing.T) {
	input := NewQuantized(shapes.Make(2, 3, 4), 1, dtypes.F32, quantization.New(0.5, 0))
	output := NewEmpty()
	require.Equal(t, 0, output.TotalSize())

	require.True(t, AutoInitIfEmptyFrom(output, input))
	require.Equal(t, "[2 3 4]", output.Shape().String())
	require.Equal(t, dtypes.F32, output.DataType())
	require.Equal(t, float32(0.5), output.QuantizationInfo().Uniform().Scale)
	require.Greater(t, output.TotalSize(), 0)
	require.Equal(t, input.TotalSize(), output.TotalSize())

	// An initialized output is never changed.
	other := NewQuantized(shapes.Make(7, 7), 1, dtypes.S16, quantization.New(2, 1))
	other.SetDataLayout(NHWC)
	require.False(t, AutoInitIfEmptyFrom(output, other))
	require.Equal(t, "[2 3 4]", output.Shape().String())
	require.Equal(t, dtypes.F32, output.DataType())
	require.Equal(t, float32(0.5), output.QuantizationInfo().Uniform().Scale)
	require.Equal(t, UnknownDataLayout, output.DataLayout())
}

func TestAutoInitWithFake(t *testing.T) {
	fake := &fakeInfo{}
	require.True(t, AutoInitIfEmpty(fake, shapes.Make(5, 2), 1, dtypes.S32, quantization.Info{}))
	require.Equal(t, 40, fake.TotalSize())
	numSetters := fake.numSetters
	require.False(t, AutoInitIfEmpty(fake, shapes.Make(9), 1, dtypes.U8, quantization.Info{}))
	require.Equal(t, numSetters, fake.numSetters, "no setter should be called on an initialized descriptor")

	require.False(t, SetShapeIfEmpty(fake, shapes.Make(3)))
	require.False(t, SetDataTypeIfUnknown(fake, dtypes.F16))
	require.True(t, SetDataLayoutIfUnknown(fake, NCHW))
	require.False(t, SetDataLayoutIfUnknown(fake, NHWC))
	require.True(t, SetQuantizationInfoIfEmpty(fake, quantization.New(1, 0)))
	require.False(t, SetQuantizationInfoIfEmpty(fake, quantization.New(2, 0)))
	require.False(t, HasHolesAll(fake))

	set, err := SetFormatIfUnknown(fake, dtypes.FormatU8)
	require.NoError(t, err)
	require.False(t, set)

	empty := &fakeInfo{}
	set, err = SetFormatIfUnknown(empty, dtypes.FormatRGB888)
	require.NoError(t, err)
	require.True(t, set)
	require.Equal(t, 3, empty.NumChannels())
	require.True(t, SetShapeIfEmpty(empty, shapes.Make(3)))
	require.Equal(t, 9, empty.TotalSize())
}

func TestChecks(t *testing.T) {
	a := New(shapes.Make(4, 3), 1, dtypes.F32)
	b := New(shapes.Make(4, 3), 1, dtypes.F32)
	c := New(shapes.Make(3, 4), 1, dtypes.F16)

	require.NoError(t, CheckMismatchingShapes(a, b))
	require.True(t, status.Is(CheckMismatchingShapes(a, b, c), status.Shape))
	require.NoError(t, CheckMismatchingDataTypes(a, b))
	require.True(t, status.Is(CheckMismatchingDataTypes(a, c), status.Shape))
	require.NoError(t, CheckDataTypeIn(c, dtypes.F32, dtypes.F16))
	require.True(t, status.Is(CheckDataTypeIn(c, dtypes.F32), status.Shape))

	b.SetQuantizationInfo(quantization.New(1, 0))
	require.True(t, status.Is(CheckMismatchingQuantizationInfo(a, b), status.Shape))
	b.SetDataLayout(NHWC)
	require.True(t, status.Is(CheckMismatchingDataLayouts(a, b), status.Shape))

	require.NoError(t, CheckInitialized(a))
	require.True(t, status.Is(CheckInitialized(NewEmpty()), status.Shape))

	// Intersecting valid regions.
	b.SetValidRegion(shapes.ValidRegion{Anchor: shapes.Coordinates{1}, Shape: shapes.Make(2, 3)})
	region := IntersectValidRegions(a, b)
	require.Equal(t, 1, region.Start(0))
	require.Equal(t, 2, region.Shape.Dim(0))
}
