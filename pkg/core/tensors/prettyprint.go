// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes/bfloat16"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/shapes"
	"github.com/x448/float16"
)

// formatElement formats the element at the given byte offset.
func formatElement(t *Tensor, offset, precision int) string {
	switch t.info.DataType().StorageDType() {
	case dtypes.Uint8:
		return fmt.Sprintf("%d", *elementAt[uint8](t, offset))
	case dtypes.Int8:
		return fmt.Sprintf("%d", *elementAt[int8](t, offset))
	case dtypes.Uint16:
		return fmt.Sprintf("%d", *elementAt[uint16](t, offset))
	case dtypes.Int16:
		return fmt.Sprintf("%d", *elementAt[int16](t, offset))
	case dtypes.Uint32:
		return fmt.Sprintf("%d", *elementAt[uint32](t, offset))
	case dtypes.Int32:
		return fmt.Sprintf("%d", *elementAt[int32](t, offset))
	case dtypes.Uint64:
		return fmt.Sprintf("%d", *elementAt[uint64](t, offset))
	case dtypes.Int64:
		return fmt.Sprintf("%d", *elementAt[int64](t, offset))
	case dtypes.Float16:
		return fmt.Sprintf("%.*g", precision, elementAt[float16.Float16](t, offset).Float32())
	case dtypes.BFloat16:
		return fmt.Sprintf("%.*g", precision, elementAt[bfloat16.BFloat16](t, offset).Float32())
	case dtypes.Float32:
		return fmt.Sprintf("%.*g", precision, *elementAt[float32](t, offset))
	case dtypes.Float64:
		return fmt.Sprintf("%.*g", precision, *elementAt[float64](t, offset))
	}
	return "?"
}

// Summary returns a multi-line summary of the tensor's content: rows along axis 0, with the higher axes
// as nested brackets, outermost first. Only single channel tensors have their values printed.
func (t *Tensor) Summary(precision int) string {
	shape := t.info.Shape()
	if t.buffer == nil || shape.IsEmpty() || t.info.NumChannels() != 1 {
		return t.String()
	}

	var buf bytes.Buffer
	w := func(format string, args ...any) { _, _ = fmt.Fprintf(&buf, format, args...) }
	w("%s%s", t.info.DataType(), shape)
	if q := t.info.QuantizationInfo(); !q.IsEmpty() {
		w(" quantization=%s", q)
	}
	w(":\n")

	rank := max(shape.Rank(), 1)
	coords := make(shapes.Coordinates, rank)
	var printAxis func(axis, indent int)
	printAxis = func(axis, indent int) {
		w("%s[", strings.Repeat(" ", indent))
		for ii := range shape.Dim(axis) {
			coords[axis] = ii
			if axis == 0 {
				if ii > 0 {
					w(", ")
				}
				offset, _ := t.info.OffsetOf(coords)
				w("%s", formatElement(t, offset, precision))
				continue
			}
			w("\n")
			printAxis(axis-1, indent+1)
		}
		if axis > 0 {
			w("\n%s", strings.Repeat(" ", indent))
		}
		w("]")
	}
	printAxis(rank-1, 0)
	return buf.String()
}
