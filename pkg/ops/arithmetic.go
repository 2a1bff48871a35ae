// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ops

import (
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/cpuinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes/bfloat16"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/kernels"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/quantization"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/shapes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/status"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensorinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensors"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/window"
	"github.com/x448/float16"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/floats"
)

// binaryArgs are the operands of a configured binary element-wise operation.
type binaryArgs struct {
	op           kernels.ElementwiseOp
	lhs, rhs     *tensors.Tensor
	out          *tensors.Tensor
	lhsBroadcast bool // lhs has one element along X, repeated over the row.
	rhsBroadcast bool // rhs has one element along X, repeated over the row.
	lhsQ, rhsQ   quantization.UniformInfo
	outQ         quantization.UniformInfo
}

// binaryFn computes one row of n elements, given the byte offsets of the row in each tensor.
type binaryFn func(args *binaryArgs, lhsOffset, rhsOffset, outOffset, n int)

// binaryRows returns the rows of the operands: broadcast operands have a single element.
func binaryRows[T dtypes.Supported](args *binaryArgs, lhsOffset, rhsOffset, outOffset, n int) (lhs, rhs, out []T) {
	lhsN, rhsN := n, n
	if args.lhsBroadcast {
		lhsN = min(n, 1)
	}
	if args.rhsBroadcast {
		rhsN = min(n, 1)
	}
	return rowOf[T](args.lhs, lhsOffset, lhsN), rowOf[T](args.rhs, rhsOffset, rhsN), rowOf[T](args.out, outOffset, n)
}

// elem returns row[i], or the only element of a broadcast row.
func elem[T any](row []T, i int) T {
	if len(row) == 1 {
		return row[0]
	}
	return row[i]
}

// scalarOp returns the function implementing op for T.
func scalarOp[T number](op kernels.ElementwiseOp) func(x, y T) T {
	switch op {
	case kernels.OpAdd:
		return func(x, y T) T { return x + y }
	case kernels.OpSub:
		return func(x, y T) T { return x - y }
	case kernels.OpMul:
		return func(x, y T) T { return x * y }
	case kernels.OpMin:
		return func(x, y T) T { return min(x, y) }
	default:
		return func(x, y T) T { return max(x, y) }
	}
}

func binaryGeneric[T number](args *binaryArgs, lhsOffset, rhsOffset, outOffset, n int) {
	lhs, rhs, out := binaryRows[T](args, lhsOffset, rhsOffset, outOffset, n)
	fn := scalarOp[T](args.op)
	for ii := range out {
		out[ii] = fn(elem(lhs, ii), elem(rhs, ii))
	}
}

// binaryFP32AddSub implements dst = lhs ± rhs with BLAS axpy. It requires rows without broadcast.
func binaryFP32AddSub(args *binaryArgs, lhsOffset, rhsOffset, outOffset, n int) {
	lhs, rhs, out := binaryRows[float32](args, lhsOffset, rhsOffset, outOffset, n)
	if n == 0 {
		return
	}
	if &out[0] == &rhs[0] && &out[0] != &lhs[0] {
		// In-place on rhs: copying lhs first would overwrite it.
		binaryGeneric[float32](args, lhsOffset, rhsOffset, outOffset, n)
		return
	}
	alpha := float32(1)
	if args.op == kernels.OpSub {
		alpha = -1
	}
	copy(out, lhs)
	blas32.Axpy(alpha, blas32.Vector{N: n, Inc: 1, Data: rhs}, blas32.Vector{N: n, Inc: 1, Data: out})
}

// binaryFP64AddSub implements dst = lhs ± rhs with gonum/floats. It requires rows without broadcast.
func binaryFP64AddSub(args *binaryArgs, lhsOffset, rhsOffset, outOffset, n int) {
	lhs, rhs, out := binaryRows[float64](args, lhsOffset, rhsOffset, outOffset, n)
	if args.op == kernels.OpSub {
		floats.SubTo(out, lhs, rhs)
		return
	}
	floats.AddTo(out, lhs, rhs)
}

func binaryFP16(args *binaryArgs, lhsOffset, rhsOffset, outOffset, n int) {
	lhs, rhs, out := binaryRows[float16.Float16](args, lhsOffset, rhsOffset, outOffset, n)
	fn := scalarOp[float32](args.op)
	for ii := range out {
		out[ii] = float16.Fromfloat32(fn(elem(lhs, ii).Float32(), elem(rhs, ii).Float32()))
	}
}

func binaryBF16(args *binaryArgs, lhsOffset, rhsOffset, outOffset, n int) {
	lhs, rhs, out := binaryRows[bfloat16.BFloat16](args, lhsOffset, rhsOffset, outOffset, n)
	fn := scalarOp[float32](args.op)
	for ii := range out {
		out[ii] = bfloat16.FromFloat32(fn(elem(lhs, ii).Float32(), elem(rhs, ii).Float32()))
	}
}

// binaryQAsymm8 dequantizes the operands, applies the operation in float32 and requantizes with the
// quantization of the output.
func binaryQAsymm8(args *binaryArgs, lhsOffset, rhsOffset, outOffset, n int) {
	lhs, rhs, out := binaryRows[uint8](args, lhsOffset, rhsOffset, outOffset, n)
	fn := scalarOp[float32](args.op)
	for ii := range out {
		x := quantization.DequantizeQAsymm8(elem(lhs, ii), args.lhsQ)
		y := quantization.DequantizeQAsymm8(elem(rhs, ii), args.rhsQ)
		out[ii] = quantization.QuantizeQAsymm8(fn(x, y), args.outQ)
	}
}

func binaryQAsymm8Signed(args *binaryArgs, lhsOffset, rhsOffset, outOffset, n int) {
	lhs, rhs, out := binaryRows[int8](args, lhsOffset, rhsOffset, outOffset, n)
	fn := scalarOp[float32](args.op)
	for ii := range out {
		x := quantization.DequantizeQAsymm8Signed(elem(lhs, ii), args.lhsQ)
		y := quantization.DequantizeQAsymm8Signed(elem(rhs, ii), args.rhsQ)
		out[ii] = quantization.QuantizeQAsymm8Signed(fn(x, y), args.outQ)
	}
}

type arithmeticKernel = kernels.Kernel[kernels.ElementwiseSelectorData, binaryFn]

func isAddSub(op kernels.ElementwiseOp) bool { return op == kernels.OpAdd || op == kernels.OpSub }

// genericArithmeticKernel is selected for the given dtype regardless of the processor.
func genericArithmeticKernel(name string, dtype dtypes.DType, fn binaryFn) arithmeticKernel {
	return arithmeticKernel{
		Name:       name,
		IsSelected: func(key kernels.ElementwiseSelectorData) bool { return key.DType == dtype },
		Fn:         fn,
	}
}

// ArithmeticKernels is the registry of element-wise arithmetic kernels, most specialized first.
var ArithmeticKernels = kernels.NewRegistry("Arithmetic",
	arithmeticKernel{
		Name: "fp32_blas_add_sub",
		IsSelected: func(key kernels.ElementwiseSelectorData) bool {
			return key.DType == dtypes.F32 && isAddSub(key.Op) && !key.Broadcast
		},
		Fn: binaryFP32AddSub,
	},
	arithmeticKernel{
		Name: "fp64_floats_add_sub",
		IsSelected: func(key kernels.ElementwiseSelectorData) bool {
			return key.DType == dtypes.F64 && isAddSub(key.Op) && !key.Broadcast
		},
		Fn: binaryFP64AddSub,
	},
	arithmeticKernel{
		Name: "neon_fp16",
		IsSelected: func(key kernels.ElementwiseSelectorData) bool {
			return key.DType == dtypes.F16 && key.ISA.Has(cpuinfo.FP16)
		},
		Fn: binaryFP16,
	},
	arithmeticKernel{
		Name: "bf16",
		IsSelected: func(key kernels.ElementwiseSelectorData) bool {
			return key.DType == dtypes.BF16 && key.ISA.HasAny(cpuinfo.BF16|cpuinfo.AVX512BF16)
		},
		Fn: binaryBF16,
	},
	genericArithmeticKernel("qasymm8", dtypes.QASYMM8, binaryQAsymm8),
	genericArithmeticKernel("qasymm8_signed", dtypes.QASYMM8_SIGNED, binaryQAsymm8Signed),
	genericArithmeticKernel("generic_fp32", dtypes.F32, binaryGeneric[float32]),
	genericArithmeticKernel("generic_fp64", dtypes.F64, binaryGeneric[float64]),
	genericArithmeticKernel("generic_s32", dtypes.S32, binaryGeneric[int32]),
	genericArithmeticKernel("generic_s16", dtypes.S16, binaryGeneric[int16]),
	genericArithmeticKernel("generic_s8", dtypes.S8, binaryGeneric[int8]),
	genericArithmeticKernel("generic_u8", dtypes.U8, binaryGeneric[uint8]),
)

// arithmeticDTypes are the data types accepted by Arithmetic (kernels may further require features).
var arithmeticDTypes = []dtypes.DType{
	dtypes.F32, dtypes.F64, dtypes.F16, dtypes.BF16, dtypes.S32, dtypes.S16, dtypes.S8, dtypes.U8,
	dtypes.QASYMM8, dtypes.QASYMM8_SIGNED,
}

// ValidateArithmetic checks whether Arithmetic(op) can be configured with the given descriptors.
// An empty dst is validated as if auto-initialized with the broadcast shape of the inputs.
func ValidateArithmetic(cpu *cpuinfo.CPUInfo, op kernels.ElementwiseOp, lhs, rhs, dst tensorinfo.Info) error {
	return tryValidate("Arithmetic", func() error {
		_, err := validateArithmetic(cpu, op, lhs, rhs, dst.Clone())
		return err
	})
}

// validateArithmetic auto-initializes dst and returns the selected kernel.
func validateArithmetic(cpu *cpuinfo.CPUInfo, op kernels.ElementwiseOp, lhs, rhs, dst tensorinfo.Info) (*arithmeticKernel, error) {
	if op < kernels.OpAdd || op > kernels.OpMax {
		return nil, status.Errorf(status.Shape, "invalid element-wise operation %d", op)
	}
	for _, info := range []tensorinfo.Info{lhs, rhs} {
		if err := tensorinfo.CheckInitialized(info); err != nil {
			return nil, err
		}
	}
	if err := tensorinfo.CheckMismatchingDataTypes(lhs, rhs); err != nil {
		return nil, err
	}
	if err := tensorinfo.CheckDataTypeIn(lhs, arithmeticDTypes...); err != nil {
		return nil, err
	}
	outShape := shapes.BroadcastShape(lhs.Shape(), rhs.Shape())
	if outShape.IsEmpty() {
		return nil, status.Errorf(status.Shape, "shapes %s and %s can't be broadcast together", lhs.Shape(), rhs.Shape())
	}
	tensorinfo.AutoInitIfEmpty(dst, outShape, 1, lhs.DataType(), lhs.QuantizationInfo())
	if !dst.Shape().Equal(outShape) {
		return nil, status.Errorf(status.Shape, "output shape %s doesn't match the broadcast shape %s", dst.Shape(), outShape)
	}
	if err := tensorinfo.CheckMismatchingDataTypes(lhs, dst); err != nil {
		return nil, err
	}
	for _, info := range []tensorinfo.Info{lhs, rhs, dst} {
		if info.NumChannels() != 1 {
			return nil, status.Errorf(status.Shape, "arithmetic requires single channel tensors, got %d channels", info.NumChannels())
		}
	}
	if err := checkQuantized(lhs, rhs, dst); err != nil {
		return nil, err
	}
	if err := checkDenseRows(lhs, rhs, dst); err != nil {
		return nil, err
	}
	return ArithmeticKernels.Select(kernels.ElementwiseSelectorData{
		DType:     lhs.DataType(),
		ISA:       cpu.Features(),
		Op:        op,
		Broadcast: !lhs.Shape().Equal(rhs.Shape()),
	})
}

// Arithmetic computes an element-wise binary operation (Add, Sub, Mul, Min or Max), broadcasting the
// inputs along the axes where they have dimension 1.
//
// Quantized inputs are dequantized with their own quantization, and the result is requantized with the
// one of the output.
type Arithmetic struct {
	operator
	op kernels.ElementwiseOp
}

// NewArithmetic creates an Arithmetic operator for op.
func NewArithmetic(cpu *cpuinfo.CPUInfo, op kernels.ElementwiseOp) *Arithmetic {
	return &Arithmetic{operator: newOperator("Arithmetic("+op.String()+")", cpu), op: op}
}

// Configure the operator. An empty dst is auto-initialized with the broadcast shape of the inputs and
// the data type and quantization of lhs.
//
// The valid region of dst is the intersection of the valid regions of the inputs, or the whole tensor
// when broadcasting.
func (op *Arithmetic) Configure(lhs, rhs, dst *tensors.Tensor) error {
	if err := ValidateArithmetic(op.cpu, op.op, lhs.Info(), rhs.Info(), dst.Info()); err != nil {
		return err
	}
	k, err := validateArithmetic(op.cpu, op.op, lhs.Info(), rhs.Info(), dst.Info())
	if err != nil {
		return err
	}
	outShape := dst.Shape()
	region := shapes.FullValidRegion(outShape)
	if lhs.Shape().Equal(rhs.Shape()) {
		region = tensorinfo.IntersectValidRegions(lhs.Info(), rhs.Info())
	}
	dst.Info().SetValidRegion(region)

	args := &binaryArgs{
		op:           op.op,
		lhs:          lhs,
		rhs:          rhs,
		out:          dst,
		lhsBroadcast: lhs.Shape().Dim(window.DimX) != outShape.Dim(window.DimX),
		rhsBroadcast: rhs.Shape().Dim(window.DimX) != outShape.Dim(window.DimX),
		lhsQ:         lhs.Info().QuantizationInfo().Uniform(),
		rhsQ:         rhs.Info().QuantizationInfo().Uniform(),
		outQ:         dst.Info().QuantizationInfo().Uniform(),
	}
	fn := k.Fn
	w := window.CalculateMaxWindow(region, nil, false, shapes.BorderSize{})
	if lhs.Shape().Equal(rhs.Shape()) {
		w = collapseOuterAxes(w, lhs.Info(), rhs.Info(), dst.Info())
	}
	op.configured(k.Name, w, func(part window.Window) error {
		loop, n := splitRows(part)
		lhsIt := window.NewIterator(lhs.Info(), operandWindow(loop, lhs.Shape(), outShape))
		rhsIt := window.NewIterator(rhs.Info(), operandWindow(loop, rhs.Shape(), outShape))
		outIt := window.NewIterator(dst.Info(), loop)
		window.Execute(loop, func(shapes.Coordinates) {
			fn(args, lhsIt.Offset(), rhsIt.Offset(), outIt.Offset(), n)
		}, lhsIt, rhsIt, outIt)
		return nil
	}, lhs, rhs, dst)
	return nil
}

// operandWindow returns the window for the iterator of an input: axes broadcast to the output shape
// don't move.
func operandWindow(loop window.Window, shape, outShape shapes.Shape) window.Window {
	if shape.Equal(outShape) {
		return loop
	}
	return loop.BroadcastIfDimensionLE1(shape)
}
