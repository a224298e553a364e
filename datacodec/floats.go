// Copyright 2020 DataStax
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package datacodec

import (
	"encoding/binary"
	"math"
	"math/big"

	"github.com/riverstonedb/cqlnative/datatype"
	"github.com/riverstonedb/cqlnative/primitive"
)

// Float and Double both wire IEEE 754 bits big-endian at a fixed width (4 and 8 bytes respectively); only the
// conversion matrix to/from Go numeric types differs, so the bit (de)serialization is factored once here.

// Float is a codec for the CQL float type. Its preferred Go type is float32, but it can encode from and decode
// to float64 as well.
var Float Codec = &floatCodec{}

// Double is a codec for the CQL double type. Its preferred Go type is float64, but it can encode from and
// decode to most floating-point types, including big.Float.
var Double Codec = &doubleCodec{}

func writeFloatBits(bits uint64, width int) []byte {
	dest := make([]byte, width)
	if width == primitive.LengthOfLong {
		binary.BigEndian.PutUint64(dest, bits)
	} else {
		binary.BigEndian.PutUint32(dest, uint32(bits))
	}
	return dest
}

func readFloatBits(source []byte, width int) (bits uint64, wasNull bool, err error) {
	length := len(source)
	if length == 0 {
		wasNull = true
	} else if length != width {
		err = errWrongFixedLength(width, length)
	} else if width == primitive.LengthOfLong {
		bits = binary.BigEndian.Uint64(source)
	} else {
		bits = uint64(binary.BigEndian.Uint32(source))
	}
	if err != nil {
		err = errCannotRead(bits, err)
	}
	return
}

// FLOAT

type floatCodec struct{}

func (c *floatCodec) DataType() datatype.DataType {
	return datatype.Float
}

func (c *floatCodec) Encode(source interface{}, version primitive.ProtocolVersion) (dest []byte, err error) {
	var val float32
	var wasNil bool
	if val, wasNil, err = convertToFloat32(source); err == nil && !wasNil {
		dest = writeFloat32(val)
	}
	if err != nil {
		err = errCannotEncode(source, c.DataType(), version, err)
	}
	return
}

func (c *floatCodec) Decode(source []byte, dest interface{}, version primitive.ProtocolVersion) (wasNull bool, err error) {
	var val float32
	if val, wasNull, err = readFloat32(source); err == nil {
		err = convertFromFloat32(val, wasNull, dest)
	}
	if err != nil {
		err = errCannotDecode(dest, c.DataType(), version, err)
	}
	return
}

func convertToFloat32(source interface{}) (val float32, wasNil bool, err error) {
	switch s := source.(type) {
	case float64:
		val, err = float64ToFloat32(s)
	case float32:
		val = s
	case *float64:
		if wasNil = s == nil; !wasNil {
			val, err = float64ToFloat32(*s)
		}
	case *float32:
		if wasNil = s == nil; !wasNil {
			val = *s
		}
	case nil:
		wasNil = true
	default:
		err = ErrConversionNotSupported
	}
	if err != nil {
		err = errSourceConversionFailed(source, val, err)
	}
	return
}

func convertFromFloat32(val float32, wasNull bool, dest interface{}) (err error) {
	switch d := dest.(type) {
	case *interface{}:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = nil
		} else {
			*d = val
		}
	case *float64:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d = float64(val)
		}
	case *float32:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d = val
		}
	default:
		err = errDestinationInvalid(dest)
	}
	if err != nil {
		err = errDestinationConversionFailed(val, dest, err)
	}
	return
}

func writeFloat32(val float32) []byte {
	return writeFloatBits(uint64(math.Float32bits(val)), primitive.LengthOfInt)
}

func readFloat32(source []byte) (val float32, wasNull bool, err error) {
	var bits uint64
	if bits, wasNull, err = readFloatBits(source, primitive.LengthOfInt); err == nil {
		val = math.Float32frombits(uint32(bits))
	}
	return
}

// DOUBLE

type doubleCodec struct{}

func (c *doubleCodec) DataType() datatype.DataType {
	return datatype.Double
}

func (c *doubleCodec) Encode(source interface{}, version primitive.ProtocolVersion) (dest []byte, err error) {
	var val float64
	var wasNil bool
	if val, wasNil, err = convertToFloat64(source); err == nil && !wasNil {
		dest = writeFloat64(val)
	}
	if err != nil {
		err = errCannotEncode(source, c.DataType(), version, err)
	}
	return
}

func (c *doubleCodec) Decode(source []byte, dest interface{}, version primitive.ProtocolVersion) (wasNull bool, err error) {
	var val float64
	if val, wasNull, err = readFloat64(source); err == nil {
		err = convertFromFloat64(val, wasNull, dest)
	}
	if err != nil {
		err = errCannotDecode(dest, c.DataType(), version, err)
	}
	return
}

func convertToFloat64(source interface{}) (val float64, wasNil bool, err error) {
	switch s := source.(type) {
	case float64:
		val = s
	case float32:
		val = float64(s)
	case *float64:
		if wasNil = s == nil; !wasNil {
			val = *s
		}
	case *float32:
		if wasNil = s == nil; !wasNil {
			val = float64(*s)
		}
	case *big.Float:
		// non-pointer big.Float is not supported, per its own docs it should always be used as a pointer.
		if wasNil = s == nil; !wasNil {
			val, err = bigFloatToFloat64(s)
		}
	case nil:
		wasNil = true
	default:
		err = ErrConversionNotSupported
	}
	if err != nil {
		err = errSourceConversionFailed(source, val, err)
	}
	return
}

func convertFromFloat64(val float64, wasNull bool, dest interface{}) (err error) {
	switch d := dest.(type) {
	case *interface{}:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = nil
		} else {
			*d = val
		}
	case *float64:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d = val
		}
	case *float32:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = float64ToFloat32(val)
		}
	case *big.Float:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = big.Float{}
		} else {
			err = float64ToBigFloat(val, d)
		}
	default:
		err = errDestinationInvalid(dest)
	}
	if err != nil {
		err = errDestinationConversionFailed(val, dest, err)
	}
	return
}

func writeFloat64(val float64) []byte {
	return writeFloatBits(math.Float64bits(val), primitive.LengthOfLong)
}

func readFloat64(source []byte) (val float64, wasNull bool, err error) {
	var bits uint64
	if bits, wasNull, err = readFloatBits(source, primitive.LengthOfLong); err == nil {
		val = math.Float64frombits(bits)
	}
	return
}
