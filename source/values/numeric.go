package values

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/parlance-lang/parlance/source/token"

	"lukechampine.com/uint128"
)

// A signed 128-bit integer in two's complement. Addition, subtraction and multiplication
// are the same bit operations as for the unsigned type; only division, comparison and
// printing need to know about the sign.
type Int128 uint128.Uint128

var two128 = new(big.Int).Lsh(big.NewInt(1), 128)

func ParseInt128(s string) (Int128, bool) {
	n, ok := new(big.Int).SetString(trimPlus(s), 10)
	if !ok {
		return Int128{}, false
	}
	return Int128FromBig(n), true
}

// Wraps n into 128 bits.
func Int128FromBig(n *big.Int) Int128 {
	return Int128(uint128.FromBig(new(big.Int).Mod(n, two128)))
}

func (i Int128) IsNegative() bool {
	return i.Hi>>63 == 1
}

func (i Int128) Big() *big.Int {
	n := uint128.Uint128(i).Big()
	if i.IsNegative() {
		n.Sub(n, two128)
	}
	return n
}

func (i Int128) String() string {
	return i.Big().String()
}

func (i Int128) Cmp(j Int128) int {
	flip := uint128.New(0, 1<<63)
	return uint128.Uint128(i).Xor(flip).Cmp(uint128.Uint128(j).Xor(flip))
}

func trimPlus(s string) string {
	return strings.TrimPrefix(s, "+")
}

// Parses a numeric literal of the type given by a numeric token type.
func ParseNumber(lit string, ty token.TokenType) (Value, error) {
	switch ty {
	case token.I8:
		n, e := strconv.ParseInt(lit, 10, 8)
		return Value{I8, int8(n)}, e
	case token.I16:
		n, e := strconv.ParseInt(lit, 10, 16)
		return Value{I16, int16(n)}, e
	case token.I32:
		n, e := strconv.ParseInt(lit, 10, 32)
		return Value{I32, int32(n)}, e
	case token.I64:
		n, e := strconv.ParseInt(lit, 10, 64)
		return Value{I64, n}, e
	case token.U8:
		n, e := strconv.ParseUint(lit, 10, 8)
		return Value{U8, uint8(n)}, e
	case token.U16:
		n, e := strconv.ParseUint(lit, 10, 16)
		return Value{U16, uint16(n)}, e
	case token.U32:
		n, e := strconv.ParseUint(lit, 10, 32)
		return Value{U32, uint32(n)}, e
	case token.U64:
		n, e := strconv.ParseUint(lit, 10, 64)
		return Value{U64, n}, e
	case token.F32:
		f, e := strconv.ParseFloat(lit, 32)
		return Value{F32, float32(f)}, e
	case token.F64:
		f, e := strconv.ParseFloat(lit, 64)
		return Value{F64, f}, e
	case token.I128:
		n, ok := new(big.Int).SetString(trimPlus(lit), 10)
		if !ok {
			return Value{}, strconv.ErrSyntax
		}
		return Value{I128, Int128FromBig(n)}, nil
	case token.U128:
		n, ok := new(big.Int).SetString(trimPlus(lit), 10)
		if !ok || n.Sign() < 0 || n.BitLen() > 128 {
			return Value{}, strconv.ErrRange
		}
		return Value{U128, uint128.FromBig(n)}, nil
	}
	panic("tried to parse a number of type " + string(ty) + ".")
}

type integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type float interface {
	~float32 | ~float64
}

// Integer arithmetic wraps. The bool is false on division by zero.
func intArith[T integer](op string, x, y T) (T, bool) {
	switch op {
	case "+":
		return x + y, true
	case "-":
		return x - y, true
	case "*":
		return x * y, true
	case "/":
		if y == 0 {
			return 0, false
		}
		return x / y, true
	case "%":
		if y == 0 {
			return 0, false
		}
		return x % y, true
	}
	panic("unknown integer operation " + op + ".")
}

func floatArith[T float](op string, x, y T) T {
	switch op {
	case "+":
		return x + y
	case "-":
		return x - y
	case "*":
		return x * y
	case "/":
		return x / y
	}
	panic("unknown float operation " + op + ".")
}

func u128Arith(op string, x, y uint128.Uint128) (uint128.Uint128, bool) {
	switch op {
	case "+":
		return x.AddWrap(y), true
	case "-":
		return x.SubWrap(y), true
	case "*":
		return x.MulWrap(y), true
	case "/", "%":
		if y.IsZero() {
			return uint128.Zero, false
		}
		q, r := x.QuoRem(y)
		if op == "/" {
			return q, true
		}
		return r, true
	}
	panic("unknown integer operation " + op + ".")
}

func i128Arith(op string, x, y Int128) (Int128, bool) {
	switch op {
	case "+", "-", "*":
		result, _ := u128Arith(op, uint128.Uint128(x), uint128.Uint128(y))
		return Int128(result), true
	case "/", "%":
		if uint128.Uint128(y).IsZero() {
			return Int128{}, false
		}
		if op == "/" {
			return Int128FromBig(new(big.Int).Quo(x.Big(), y.Big())), true
		}
		return Int128FromBig(new(big.Int).Rem(x.Big(), y.Big())), true
	}
	panic("unknown integer operation " + op + ".")
}

// Applies one of + - * / % to two numbers of the same type, giving a number of that type.
// The bool is false on integer division by zero. The dispatcher guarantees the types
// match, so a mismatch is a bug.
func Arith(op string, a, b Value) (Value, bool) {
	if a.T != b.T {
		panic("arithmetic on mismatched types.")
	}
	var ok bool
	result := Value{T: a.T}
	switch a.T {
	case I8:
		result.V, ok = intArith(op, a.V.(int8), b.V.(int8))
	case U8:
		result.V, ok = intArith(op, a.V.(uint8), b.V.(uint8))
	case I16:
		result.V, ok = intArith(op, a.V.(int16), b.V.(int16))
	case U16:
		result.V, ok = intArith(op, a.V.(uint16), b.V.(uint16))
	case I32:
		result.V, ok = intArith(op, a.V.(int32), b.V.(int32))
	case U32:
		result.V, ok = intArith(op, a.V.(uint32), b.V.(uint32))
	case I64:
		result.V, ok = intArith(op, a.V.(int64), b.V.(int64))
	case U64:
		result.V, ok = intArith(op, a.V.(uint64), b.V.(uint64))
	case I128:
		result.V, ok = i128Arith(op, a.V.(Int128), b.V.(Int128))
	case U128:
		result.V, ok = u128Arith(op, a.V.(uint128.Uint128), b.V.(uint128.Uint128))
	case F32:
		result.V, ok = floatArith(op, a.V.(float32), b.V.(float32)), true
	case F64:
		result.V, ok = floatArith(op, a.V.(float64), b.V.(float64)), true
	default:
		panic("arithmetic on a non-number.")
	}
	return result, ok
}

var bitsOf = map[ValueType]uint{I8: 8, U8: 8, I16: 16, U16: 16, I32: 32, U32: 32, I64: 64, U64: 64,
	I128: 128, U128: 128}

var signed = map[ValueType]bool{I8: true, I16: true, I32: true, I64: true, I128: true}

var valueTypeOfKind = map[Kind]ValueType{I8_T: I8, U8_T: U8, I16_T: I16, U16_T: U16, I32_T: I32,
	U32_T: U32, I64_T: I64, U64_T: U64, I128_T: I128, U128_T: U128, F32_T: F32, F64_T: F64}

// Converts a number to another numeric type. Between integers the value wraps, as it
// would in two's complement; from a float to an integer it saturates, with NaN going to
// zero.
func Cast(v Value, target TypeId) Value {
	t, ok := valueTypeOfKind[target.Kind]
	if !ok {
		panic("tried to cast to non-numeric type " + target.String() + ".")
	}
	if v.T == F32 || v.T == F64 {
		f := asFloat(v)
		switch t {
		case F32:
			return Value{F32, float32(f)}
		case F64:
			return Value{F64, f}
		}
		return intValue(t, saturate(f, t))
	}
	n := asBig(v)
	switch t {
	case F32:
		f, _ := new(big.Float).SetInt(n).Float32()
		return Value{F32, f}
	case F64:
		f, _ := new(big.Float).SetInt(n).Float64()
		return Value{F64, f}
	}
	return intValue(t, wrap(n, t))
}

func asFloat(v Value) float64 {
	if v.T == F32 {
		return float64(v.V.(float32))
	}
	return v.V.(float64)
}

func asBig(v Value) *big.Int {
	switch x := v.V.(type) {
	case int8:
		return big.NewInt(int64(x))
	case int16:
		return big.NewInt(int64(x))
	case int32:
		return big.NewInt(int64(x))
	case int64:
		return big.NewInt(x)
	case uint8:
		return new(big.Int).SetUint64(uint64(x))
	case uint16:
		return new(big.Int).SetUint64(uint64(x))
	case uint32:
		return new(big.Int).SetUint64(uint64(x))
	case uint64:
		return new(big.Int).SetUint64(x)
	case Int128:
		return x.Big()
	case uint128.Uint128:
		return x.Big()
	}
	panic("tried to treat a non-integer as an integer.")
}

func limits(t ValueType) (*big.Int, *big.Int) {
	bits := bitsOf[t]
	if signed[t] {
		max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), bits-1), big.NewInt(1))
		return new(big.Int).Neg(new(big.Int).Add(max, big.NewInt(1))), max
	}
	return big.NewInt(0), new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), bits), big.NewInt(1))
}

func wrap(n *big.Int, t ValueType) *big.Int {
	bits := bitsOf[t]
	modulus := new(big.Int).Lsh(big.NewInt(1), bits)
	m := new(big.Int).Mod(n, modulus)
	if signed[t] && m.Bit(int(bits-1)) == 1 {
		m.Sub(m, modulus)
	}
	return m
}

func saturate(f float64, t ValueType) *big.Int {
	min, max := limits(t)
	switch {
	case math.IsNaN(f):
		return big.NewInt(0)
	case math.IsInf(f, 1):
		return max
	case math.IsInf(f, -1):
		return min
	}
	n, _ := big.NewFloat(math.Trunc(f)).Int(nil)
	if n.Cmp(min) < 0 {
		return min
	}
	if n.Cmp(max) > 0 {
		return max
	}
	return n
}

// Builds an integer value of type t from n, which must be in range.
func intValue(t ValueType, n *big.Int) Value {
	switch t {
	case I8:
		return Value{I8, int8(n.Int64())}
	case I16:
		return Value{I16, int16(n.Int64())}
	case I32:
		return Value{I32, int32(n.Int64())}
	case I64:
		return Value{I64, n.Int64()}
	case U8:
		return Value{U8, uint8(n.Uint64())}
	case U16:
		return Value{U16, uint16(n.Uint64())}
	case U32:
		return Value{U32, uint32(n.Uint64())}
	case U64:
		return Value{U64, n.Uint64()}
	case I128:
		return Value{I128, Int128FromBig(n)}
	case U128:
		return Value{U128, uint128.FromBig(n)}
	}
	panic("tried to make an integer of a non-integer type.")
}
