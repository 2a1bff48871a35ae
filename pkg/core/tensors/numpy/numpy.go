// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package numpy reads and writes tensors in NumPy's .npy and .npz file formats.
//
// NumPy lists dimensions outermost first, while tensor descriptors keep axis 0 innermost: a C-order
// array of NumPy shape (2, 3, 4) is a tensor of shape [4 3 2], with the same bytes. Fortran-order
// arrays map to a tensor with the dimensions in the listed order.
//
// Only the logical elements are written: padding is skipped. Tensors with more than one channel are
// written with an extra innermost NumPy dimension for the channels. Quantized tensors are written with
// their storage type, their quantization info is not saved.
package numpy

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/shapes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/status"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensorinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensors"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/window"
	"github.com/pkg/errors"
)

const magic = "\x93NUMPY"

// Header is the parsed header of a .npy array.
type Header struct {
	// Descr is the NumPy type description, e.g. "<f4".
	Descr string

	// FortranOrder is set if the first NumPy dimension changes fastest.
	FortranOrder bool

	// Dimensions, in the NumPy order.
	Dimensions []int
}

// DType returns the data type of the array.
func (h Header) DType() (dtypes.DType, error) {
	if strings.HasPrefix(h.Descr, ">") && !strings.HasSuffix(h.Descr, "1") {
		return dtypes.InvalidDType, errors.Errorf("big-endian .npy arrays (%q) are not supported", h.Descr)
	}
	descr := strings.TrimLeft(h.Descr, "<>=|")
	for dtype, npy := range npyDescr {
		if npy[1:] == descr {
			return dtype, nil
		}
	}
	return dtypes.InvalidDType, errors.Errorf("unsupported NumPy dtype %q", h.Descr)
}

// Shape returns the shape of the tensor holding the array: dimensions are reversed for C-order arrays.
func (h Header) Shape() (shapes.Shape, error) {
	if len(h.Dimensions) > shapes.MaxDimensions {
		return shapes.Shape{}, status.Errorf(status.Shape, "NumPy array with %d dimensions, at most %d are supported",
			len(h.Dimensions), shapes.MaxDimensions)
	}
	if len(h.Dimensions) == 0 {
		return shapes.Scalar(), nil
	}
	dims := slices.Clone(h.Dimensions)
	if !h.FortranOrder {
		slices.Reverse(dims)
	}
	for _, dim := range dims {
		if dim <= 0 {
			return shapes.Shape{}, status.Errorf(status.Shape, "empty NumPy array of dimensions %v", h.Dimensions)
		}
	}
	return shapes.Make(dims...), nil
}

// npyDescr maps the supported data types to their little-endian NumPy description.
var npyDescr = map[dtypes.DType]string{
	dtypes.Int8:    "|i1",
	dtypes.Uint8:   "|u1",
	dtypes.Int16:   "<i2",
	dtypes.Uint16:  "<u2",
	dtypes.Int32:   "<i4",
	dtypes.Uint32:  "<u4",
	dtypes.Int64:   "<i8",
	dtypes.Uint64:  "<u8",
	dtypes.Float16: "<f2",
	dtypes.Float32: "<f4",
	dtypes.Float64: "<f8",
}

// ReadHeader reads the magic string, version and header of a .npy array. The reader is left at the
// start of the data.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	preamble := make([]byte, len(magic)+2)
	if _, err := io.ReadFull(r, preamble); err != nil {
		return h, errors.Wrap(err, "failed to read .npy magic string")
	}
	if string(preamble[:len(magic)]) != magic {
		return h, errors.New("invalid .npy file: magic string mismatch")
	}
	var headerLen int
	switch major := preamble[len(magic)]; major {
	case 1:
		var lenBytes [2]byte
		if _, err := io.ReadFull(r, lenBytes[:]); err != nil {
			return h, errors.Wrap(err, "failed to read .npy header length")
		}
		headerLen = int(binary.LittleEndian.Uint16(lenBytes[:]))
	case 2, 3:
		var lenBytes [4]byte
		if _, err := io.ReadFull(r, lenBytes[:]); err != nil {
			return h, errors.Wrap(err, "failed to read .npy header length")
		}
		headerLen = int(binary.LittleEndian.Uint32(lenBytes[:]))
		if headerLen > 1<<20 {
			return h, errors.Errorf(".npy header length %d too large", headerLen)
		}
	default:
		return h, errors.Errorf("unsupported .npy version %d.%d", major, preamble[len(magic)+1])
	}
	headerBytes := make([]byte, headerLen)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return h, errors.Wrap(err, "failed to read .npy header")
	}
	return parseHeader(string(headerBytes))
}

var (
	reDescr   = regexp.MustCompile(`'descr'\s*:\s*'([^']*)'`)
	reFortran = regexp.MustCompile(`'fortran_order'\s*:\s*(True|False)`)
	reShape   = regexp.MustCompile(`'shape'\s*:\s*\(([^)]*)\)`)
)

// parseHeader parses the Python dictionary literal of a .npy header, e.g.
// "{'descr': '<f4', 'fortran_order': False, 'shape': (2, 3), }".
func parseHeader(header string) (h Header, err error) {
	m := reDescr.FindStringSubmatch(header)
	if m == nil {
		return h, errors.Errorf("'descr' missing in .npy header %q", header)
	}
	h.Descr = m[1]
	m = reFortran.FindStringSubmatch(header)
	if m == nil {
		return h, errors.Errorf("'fortran_order' missing in .npy header %q", header)
	}
	h.FortranOrder = m[1] == "True"
	m = reShape.FindStringSubmatch(header)
	if m == nil {
		return h, errors.Errorf("'shape' missing in .npy header %q", header)
	}
	h.Dimensions = []int{}
	for _, part := range strings.Split(m[1], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			// Trailing comma of 1D shapes, like "(10,)".
			continue
		}
		dim, err := strconv.Atoi(part)
		if err != nil {
			return h, errors.Wrapf(err, "invalid dimension %q in .npy header", part)
		}
		h.Dimensions = append(h.Dimensions, dim)
	}
	return h, nil
}

// Read reads a .npy array into a new dense tensor.
func Read(r io.Reader) (*tensors.Tensor, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	dtype, err := h.DType()
	if err != nil {
		return nil, err
	}
	shape, err := h.Shape()
	if err != nil {
		return nil, err
	}
	t := tensors.New(tensorinfo.New(shape, 1, dtype))
	if err := t.Allocate(); err != nil {
		return nil, err
	}
	if err := readData(r, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ReadInto reads a .npy array into the allocated tensor t, which may be padded. The array must have the
// shape and the (storage) data type of t, and only one channel.
func ReadInto(r io.Reader, t *tensors.Tensor) error {
	h, err := ReadHeader(r)
	if err != nil {
		return err
	}
	dtype, err := h.DType()
	if err != nil {
		return err
	}
	shape, err := h.Shape()
	if err != nil {
		return err
	}
	info := t.Info()
	if dtype != info.DataType().StorageDType() || info.NumChannels() != 1 || !shape.Equal(info.Shape()) {
		return status.Errorf(status.Shape, "cannot read NumPy array of %s and shape %s into %s", dtype, shape, info)
	}
	if !t.IsAllocated() {
		return errors.Errorf("tensor %s is not allocated", info)
	}
	return readData(r, t)
}

// forEachRow calls fn with the byte range of each row (the elements along axis 0) of t.
func forEachRow(t *tensors.Tensor, fn func(row []byte) error) error {
	info := t.Info()
	rowBytes := max(info.Shape().Dim(window.DimX), 1) * info.ElementSize()
	w := window.FromInfo(info, nil).Set(window.DimX, window.NewDimension(0, 1, 1))
	it := window.NewIterator(info, w)
	buf := t.Buffer()
	var err error
	window.Execute(w, func(shapes.Coordinates) {
		if err == nil {
			err = fn(buf[it.Offset() : it.Offset()+rowBytes])
		}
	}, it)
	return err
}

func readData(r io.Reader, t *tensors.Tensor) error {
	return forEachRow(t, func(row []byte) error {
		if _, err := io.ReadFull(r, row); err != nil {
			return errors.Wrapf(err, "failed to read .npy data for tensor %s", t.Info())
		}
		return nil
	})
}

// header returns the .npy header for t.
func header(t *tensors.Tensor) (Header, error) {
	info := t.Info()
	descr, found := npyDescr[info.DataType().StorageDType()]
	if !found {
		return Header{}, errors.Errorf("data type %s can't be saved as a NumPy array", info.DataType())
	}
	dims := slices.Clone(info.Shape().Dimensions())
	if info.NumChannels() > 1 {
		dims = slices.Insert(dims, 0, info.NumChannels())
	}
	slices.Reverse(dims)
	return Header{Descr: descr, Dimensions: dims}, nil
}

// String returns the Python dictionary literal of the header.
func (h Header) String() string {
	parts := make([]string, len(h.Dimensions))
	for ii, dim := range h.Dimensions {
		parts[ii] = strconv.Itoa(dim)
	}
	shapeTuple := "(" + strings.Join(parts, ", ") + ")"
	if len(parts) == 1 {
		shapeTuple = "(" + parts[0] + ",)"
	}
	fortran := "False"
	if h.FortranOrder {
		fortran = "True"
	}
	return fmt.Sprintf("{'descr': '%s', 'fortran_order': %s, 'shape': %s, }", h.Descr, fortran, shapeTuple)
}

// Write writes the logical elements of the allocated tensor t as a version 1.0 .npy array.
func Write(w io.Writer, t *tensors.Tensor) error {
	if !t.IsAllocated() {
		return errors.Errorf("tensor %s is not allocated", t.Info())
	}
	h, err := header(t)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	buf.WriteString(magic)
	buf.Write([]byte{1, 0})
	headerText := h.String()
	// Preamble plus header, terminated by a newline, aligned to 64 bytes.
	padding := (64 - (buf.Len()+2+len(headerText)+1)%64) % 64
	headerText += strings.Repeat(" ", padding) + "\n"
	buf.Write(binary.LittleEndian.AppendUint16(nil, uint16(len(headerText))))
	buf.WriteString(headerText)
	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "failed to write .npy header")
	}
	return forEachRow(t, func(row []byte) error {
		if _, err := w.Write(row); err != nil {
			return errors.Wrap(err, "failed to write .npy data")
		}
		return nil
	})
}

// ReadFile reads a .npy file into a new dense tensor.
func ReadFile(filePath string) (*tensors.Tensor, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open .npy file %q", filePath)
	}
	defer func() { _ = f.Close() }()
	t, err := Read(f)
	return t, errors.WithMessagef(err, "reading %q", filePath)
}

// WriteFile writes the tensor to a .npy file.
func WriteFile(filePath string, t *tensors.Tensor) error {
	f, err := os.Create(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to create .npy file %q", filePath)
	}
	if err := Write(f, t); err != nil {
		_ = f.Close()
		return errors.WithMessagef(err, "writing %q", filePath)
	}
	return errors.Wrapf(f.Close(), "failed to close %q", filePath)
}

// ReadNpz reads the arrays of a .npz archive, keyed by their name without the ".npy" suffix.
// Other files in the archive are ignored.
func ReadNpz(r io.ReaderAt, size int64) (map[string]*tensors.Tensor, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open .npz archive")
	}
	results := make(map[string]*tensors.Tensor)
	for _, f := range zr.File {
		name := path.Clean(f.Name)
		if path.IsAbs(name) || strings.HasPrefix(name, "..") {
			return nil, errors.Errorf("invalid path %q in .npz archive", f.Name)
		}
		if !strings.HasSuffix(name, ".npy") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open %q in .npz archive", f.Name)
		}
		t, err := Read(rc)
		_ = rc.Close()
		if err != nil {
			return nil, errors.WithMessagef(err, "array %q of .npz archive", f.Name)
		}
		results[strings.TrimSuffix(name, ".npy")] = t
	}
	return results, nil
}

// WriteNpz writes the tensors as an uncompressed .npz archive, in the order of the names.
func WriteNpz(w io.Writer, names []string, ts map[string]*tensors.Tensor) error {
	zw := zip.NewWriter(w)
	for _, name := range names {
		t, found := ts[name]
		if !found {
			return errors.Errorf("no tensor named %q to write to .npz archive", name)
		}
		fw, err := zw.Create(name + ".npy")
		if err != nil {
			return errors.Wrapf(err, "failed to create %q in .npz archive", name)
		}
		if err := Write(fw, t); err != nil {
			return errors.WithMessagef(err, "array %q of .npz archive", name)
		}
	}
	return errors.Wrap(zw.Close(), "failed to close .npz archive")
}
