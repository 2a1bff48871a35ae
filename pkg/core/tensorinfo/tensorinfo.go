// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package tensorinfo defines the tensor descriptor: the single source of truth for how a buffer is
// laid out in memory (shape, data type, strides, padding, offset of the first element, total size),
// and which part of it holds meaningful values (the valid region).
//
// Operators depend on the narrow Info interface. TensorInfo is its production implementation: its
// strides, offset and total size are always derived from the shape, the element size and the padding
// (see shapes.ComputeLayout), except for descriptors imported with InitWithStrides.
//
// Descriptors are not safe for concurrent mutation: operators clone the descriptors they need to change
// during configuration, and only share them (read-only) once configured.
package tensorinfo

import (
	"fmt"
	"strings"

	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/quantization"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/shapes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/status"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// Info is the interface operators use to query and initialize tensor descriptors.
type Info interface {
	// Shape of the tensor. The empty shape (total size 0) marks a descriptor not initialized yet.
	Shape() shapes.Shape

	// DataType of each channel of an element.
	DataType() dtypes.DType

	// NumChannels per element.
	NumChannels() int

	// Format of an element, or dtypes.UnknownFormat if it was not set.
	Format() dtypes.Format

	// ElementSize in bytes: DataType().Size() * NumChannels().
	ElementSize() int

	// Strides in bytes, one per axis.
	Strides() shapes.Strides

	// OffsetFirstElement in bytes, from the start of the buffer.
	OffsetFirstElement() int

	// TotalSize of the buffer in bytes, including padding.
	TotalSize() int

	// Padding around the X and Y axes, in elements.
	Padding() shapes.PaddingSize

	// ValidRegion of the tensor.
	ValidRegion() shapes.ValidRegion

	// QuantizationInfo of the tensor. Empty for non-quantized tensors.
	QuantizationInfo() quantization.Info

	// DataLayout of the tensor.
	DataLayout() DataLayout

	// IsResizable returns whether the shape and padding can still be changed.
	IsResizable() bool

	// IsDynamic returns whether any of the dimensions is only known at run time.
	IsDynamic() bool

	// OffsetOf returns the byte offset of the element at the given coordinates.
	OffsetOf(coords shapes.Coordinates) (int, error)

	// SetShape sets the shape and recomputes the layout with the current padding.
	// The valid region becomes the whole tensor.
	SetShape(shape shapes.Shape)

	// SetDataType sets the data type, resets the format and recomputes the layout.
	SetDataType(dtype dtypes.DType)

	// SetNumChannels sets the number of channels, resets the format and recomputes the layout.
	SetNumChannels(numChannels int)

	// SetFormat sets the format. If the data type is unknown, the data type and number of channels are
	// derived from the format, otherwise they must be consistent with it.
	SetFormat(format dtypes.Format) error

	// SetQuantizationInfo sets the quantization parameters.
	SetQuantizationInfo(q quantization.Info)

	// SetDataLayout sets the data layout tag.
	SetDataLayout(layout DataLayout)

	// ExtendPadding grows the padding to at least the requested one, and reports whether it changed.
	ExtendPadding(padding shapes.PaddingSize) (bool, error)

	// Clone returns a deep copy of the descriptor.
	Clone() Info
}

// TensorInfo is the production implementation of Info.
//
// The zero value is an empty, resizable descriptor with no identity token: it can be passed as an output
// to operators to have it auto-initialized.
type TensorInfo struct {
	shape        shapes.Shape
	dtype        dtypes.DType
	numChannels  int
	format       dtypes.Format
	strides      shapes.Strides
	offset       int
	totalSize    int
	padding      shapes.PaddingSize
	validRegion  shapes.ValidRegion
	quantInfo    quantization.Info
	dataLayout   DataLayout
	dimsState    shapes.DimsState
	notResizable bool
	lockPaddings bool
	id           uuid.UUID
}

// Compile time check that TensorInfo implements Info.
var _ Info = (*TensorInfo)(nil)

// NewEmpty returns an empty descriptor: to be initialized later with SetShape, SetDataType, etc. or by
// AutoInitIfEmpty.
func NewEmpty() *TensorInfo {
	return &TensorInfo{id: uuid.New()}
}

// New returns a descriptor with the given shape, number of channels and data type, and no padding.
func New(shape shapes.Shape, numChannels int, dtype dtypes.DType) *TensorInfo {
	info := &TensorInfo{
		dtype:       dtype,
		numChannels: numChannels,
		id:          uuid.New(),
	}
	info.SetShape(shape)
	return info
}

// NewQuantized returns a descriptor with the given shape, number of channels, data type and quantization.
func NewQuantized(shape shapes.Shape, numChannels int, dtype dtypes.DType, q quantization.Info) *TensorInfo {
	info := New(shape, numChannels, dtype)
	info.quantInfo = q.Clone()
	return info
}

// NewWithFormat returns a descriptor with the given shape and format: the data type and number of
// channels are derived from the format.
func NewWithFormat(shape shapes.Shape, format dtypes.Format) *TensorInfo {
	info := New(shape, format.NumChannels(), format.DType())
	info.format = format
	return info
}

// InitWithStrides (re-)initializes the descriptor with an externally defined memory layout, for instance
// to describe memory imported from elsewhere. The strides, offset and total size are taken as given, and
// the padding is zeroed.
//
// It's the only way to create a descriptor whose strides are not derived from its padding.
func (info *TensorInfo) InitWithStrides(shape shapes.Shape, numChannels int, dtype dtypes.DType,
	strides shapes.Strides, offset, totalSize int) *TensorInfo {
	info.shape = shape
	info.dtype = dtype
	info.numChannels = numChannels
	info.format = dtypes.UnknownFormat
	info.strides = strides.Clone()
	info.offset = offset
	info.totalSize = totalSize
	info.padding = shapes.PaddingSize{}
	info.validRegion = shapes.FullValidRegion(shape)
	if info.id == uuid.Nil {
		info.id = uuid.New()
	}
	return info
}

// Shape implements Info.
func (info *TensorInfo) Shape() shapes.Shape { return info.shape }

// NumDimensions returns the rank of the shape.
func (info *TensorInfo) NumDimensions() int { return info.shape.Rank() }

// DataType implements Info.
func (info *TensorInfo) DataType() dtypes.DType { return info.dtype }

// NumChannels implements Info.
func (info *TensorInfo) NumChannels() int { return info.numChannels }

// Format implements Info.
func (info *TensorInfo) Format() dtypes.Format { return info.format }

// ElementSize implements Info.
func (info *TensorInfo) ElementSize() int { return info.dtype.Size() * info.numChannels }

// Strides implements Info. The returned value must not be changed.
func (info *TensorInfo) Strides() shapes.Strides { return info.strides }

// OffsetFirstElement implements Info.
func (info *TensorInfo) OffsetFirstElement() int { return info.offset }

// TotalSize implements Info.
func (info *TensorInfo) TotalSize() int { return info.totalSize }

// Padding implements Info.
func (info *TensorInfo) Padding() shapes.PaddingSize { return info.padding }

// HasPadding returns whether there is padding on any side.
func (info *TensorInfo) HasPadding() bool { return !info.padding.IsEmpty() }

// ValidRegion implements Info.
func (info *TensorInfo) ValidRegion() shapes.ValidRegion { return info.validRegion }

// QuantizationInfo implements Info.
func (info *TensorInfo) QuantizationInfo() quantization.Info { return info.quantInfo }

// DataLayout implements Info.
func (info *TensorInfo) DataLayout() DataLayout { return info.dataLayout }

// DimsState returns which dimensions are resolved only at run time.
func (info *TensorInfo) DimsState() shapes.DimsState { return info.dimsState }

// IsDynamic implements Info.
func (info *TensorInfo) IsDynamic() bool { return info.dimsState.IsDynamic() }

// IsResizable implements Info.
func (info *TensorInfo) IsResizable() bool { return !info.notResizable }

// IsPaddingLocked returns whether the padding can no longer be extended.
func (info *TensorInfo) IsPaddingLocked() bool { return info.lockPaddings }

// ID returns the identity token of the descriptor. It's uuid.Nil for the zero value.
func (info *TensorInfo) ID() uuid.UUID { return info.id }

// SetID re-stamps the identity token of the descriptor.
func (info *TensorInfo) SetID(id uuid.UUID) *TensorInfo {
	info.id = id
	return info
}

// updateLayout derives strides, offset and total size from the shape, element size and padding.
func (info *TensorInfo) updateLayout() {
	layout := shapes.ComputeLayout(info.shape, info.ElementSize(), info.padding)
	info.strides = layout.Strides
	info.offset = layout.Offset
	info.totalSize = layout.TotalSize
}

// SetShape implements Info.
func (info *TensorInfo) SetShape(shape shapes.Shape) {
	info.shape = shape
	info.updateLayout()
	info.validRegion = shapes.FullValidRegion(shape)
}

// SetDataType implements Info.
func (info *TensorInfo) SetDataType(dtype dtypes.DType) {
	info.dtype = dtype
	info.format = dtypes.UnknownFormat
	info.SetShape(info.shape)
}

// SetNumChannels implements Info.
func (info *TensorInfo) SetNumChannels(numChannels int) {
	info.numChannels = numChannels
	info.format = dtypes.UnknownFormat
	info.SetShape(info.shape)
}

// SetFormat implements Info.
//
// It returns a status.Layout error, and leaves the descriptor unchanged, if the format conflicts with an
// already set data type or number of channels.
func (info *TensorInfo) SetFormat(format dtypes.Format) error {
	if info.dtype == dtypes.InvalidDType {
		info.numChannels = format.NumChannels()
		info.dtype = format.DType()
		info.format = format
		info.SetShape(info.shape)
		return nil
	}
	if format.NumChannels() != info.numChannels || format.DType() != info.dtype {
		return status.Errorf(status.Layout, "format %s (%d channels of %s) conflicts with the descriptor's %d channels of %s",
			format, format.NumChannels(), format.DType(), info.numChannels, info.dtype)
	}
	info.format = format
	return nil
}

// SetQuantizationInfo implements Info.
func (info *TensorInfo) SetQuantizationInfo(q quantization.Info) {
	info.quantInfo = q.Clone()
}

// SetDataLayout implements Info.
func (info *TensorInfo) SetDataLayout(layout DataLayout) {
	info.dataLayout = layout
}

// SetDimsState sets which dimensions are only known at run time.
func (info *TensorInfo) SetDimsState(state shapes.DimsState) *TensorInfo {
	info.dimsState = state
	return info
}

// SetValidRegion sets the valid region of the tensor.
func (info *TensorInfo) SetValidRegion(region shapes.ValidRegion) *TensorInfo {
	info.validRegion = shapes.ValidRegion{Anchor: region.Anchor.Clone(), Shape: region.Shape}
	return info
}

// SetIsResizable sets whether the shape and padding can still be changed.
func (info *TensorInfo) SetIsResizable(resizable bool) *TensorInfo {
	info.notResizable = !resizable
	return info
}

// SetLockPaddings locks (or unlocks) the padding: once locked, ExtendPadding fails.
func (info *TensorInfo) SetLockPaddings(lock bool) *TensorInfo {
	info.lockPaddings = lock
	return info
}

// ExtendPadding implements Info.
//
// It returns a status.Layout error if the padding is locked or the descriptor is not resizable.
func (info *TensorInfo) ExtendPadding(padding shapes.PaddingSize) (bool, error) {
	if info.lockPaddings {
		return false, status.Errorf(status.Layout, "cannot extend padding of descriptor %s: paddings are locked", info.id)
	}
	if info.notResizable {
		return false, status.Errorf(status.Layout, "cannot extend padding of descriptor %s: not resizable", info.id)
	}
	extended, changed := shapes.ExtendPadding(info.padding, padding)
	if changed {
		info.padding = extended
		info.updateLayout()
	}
	return changed, nil
}

// AutoPadding extends the padding with the conservative default of shapes.AutoPadding.
func (info *TensorInfo) AutoPadding() (bool, error) {
	return info.ExtendPadding(shapes.AutoPadding(info.shape))
}

// ResetPadding removes all padding and recomputes the layout. It reports whether there was padding.
//
// It returns a status.Layout error if the descriptor is not resizable.
func (info *TensorInfo) ResetPadding() (bool, error) {
	if info.notResizable {
		return false, status.Errorf(status.Layout, "cannot reset padding of descriptor %s: not resizable", info.id)
	}
	hadPadding := !info.padding.IsEmpty()
	info.padding = shapes.PaddingSize{}
	info.updateLayout()
	return hadPadding, nil
}

// OffsetOf implements Info: OffsetFirstElement() + Σ coords[axis] * Strides()[axis].
//
// It returns a status.Layout error if there are more coordinates than strides.
func (info *TensorInfo) OffsetOf(coords shapes.Coordinates) (int, error) {
	if len(coords) > max(info.shape.Rank(), 1) || len(coords) > len(info.strides) {
		return 0, status.Errorf(status.Layout, "coordinates %s out of range for rank %d", coords, info.shape.Rank())
	}
	offset := info.offset
	for axis, c := range coords {
		offset += c * info.strides[axis]
	}
	return offset, nil
}

// Copy returns a deep copy of the descriptor, including its identity token.
func (info *TensorInfo) Copy() *TensorInfo {
	clone := *info
	clone.strides = info.strides.Clone()
	clone.quantInfo = info.quantInfo.Clone()
	clone.validRegion.Anchor = info.validRegion.Anchor.Clone()
	return &clone
}

// Clone implements Info.
func (info *TensorInfo) Clone() Info {
	return info.Copy()
}

// String implements fmt.Stringer.
func (info *TensorInfo) String() string {
	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, "TensorInfo{shape=%s, dtype=%s", info.shape, info.dtype)
	if info.numChannels != 1 {
		_, _ = fmt.Fprintf(&sb, ", channels=%d", info.numChannels)
	}
	if info.format != dtypes.UnknownFormat {
		_, _ = fmt.Fprintf(&sb, ", format=%s", info.format)
	}
	if info.dataLayout != UnknownDataLayout {
		_, _ = fmt.Fprintf(&sb, ", layout=%s", info.dataLayout)
	}
	_, _ = fmt.Fprintf(&sb, ", strides=%s, offset=%d, size=%s", info.strides, info.offset,
		humanize.IBytes(uint64(info.totalSize)))
	if !info.padding.IsEmpty() {
		_, _ = fmt.Fprintf(&sb, ", padding=%s", info.padding)
	}
	if !info.quantInfo.IsEmpty() {
		_, _ = fmt.Fprintf(&sb, ", quantization=%s", info.quantInfo)
	}
	if info.dimsState.IsDynamic() {
		sb.WriteString(", dynamic")
	}
	sb.WriteString("}")
	return sb.String()
}
