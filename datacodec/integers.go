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
	"math/big"
	"strconv"

	"github.com/riverstonedb/cqlnative/datatype"
	"github.com/riverstonedb/cqlnative/primitive"
)

// The four CQL fixed-width signed integer types (tinyint, smallint, int, bigint/counter) share one wire shape:
// a big-endian two's complement integer of a fixed byte width, absent entirely (zero-length) when null. Rather
// than hand-rolling four near-identical codecs, each width is described once below and the shared machinery
// lives in writeFixedWidthInt/readFixedWidthInt; only the Go-value conversion matrix, which genuinely differs
// per width (range checks, destination types), stays type-specific.

// Tinyint is a codec for the CQL tinyint type. Its preferred Go type is int8, but it can encode from and decode
// to most numeric types.
var Tinyint Codec = &tinyintCodec{}

// Smallint is a codec for the CQL smallint type. Its preferred Go type is int16, but it can encode from and
// decode to most numeric types.
var Smallint Codec = &smallintCodec{}

// Int is a codec for the CQL int type. Its preferred Go type is int32, but it can encode from and decode to
// most numeric types.
var Int Codec = &intCodec{}

// Bigint is a codec for the CQL bigint type. Its preferred Go type is int64, but it can encode from and decode
// to most numeric types, including big.Int. Note: contrary to what the name similarity suggests, bigint codecs cannot
// handle all possible big.Int values; the best CQL type for handling big.Int is varint, not bigint.
var Bigint Codec = &bigintCodec{dataType: datatype.Bigint}

// Counter is a codec for the CQL counter type. Its preferred Go type is int64, but it can encode from and
// decode to most numeric types, including big.Int. Note: contrary to what the name similarity suggests, bigint codecs
// cannot handle all possible big.Int values; the best CQL type for handling big.Int is varint, not bigint.
var Counter Codec = &bigintCodec{dataType: datatype.Counter}

func writeFixedWidthInt(val int64, width int) []byte {
	dest := make([]byte, width)
	switch width {
	case primitive.LengthOfLong:
		binary.BigEndian.PutUint64(dest, uint64(val))
	case primitive.LengthOfInt:
		binary.BigEndian.PutUint32(dest, uint32(val))
	case primitive.LengthOfShort:
		binary.BigEndian.PutUint16(dest, uint16(val))
	case primitive.LengthOfByte:
		dest[0] = byte(val)
	}
	return dest
}

func readFixedWidthInt(source []byte, width int) (val int64, wasNull bool, err error) {
	length := len(source)
	if length == 0 {
		wasNull = true
	} else if length != width {
		err = errWrongFixedLength(width, length)
	} else {
		switch width {
		case primitive.LengthOfLong:
			val = int64(binary.BigEndian.Uint64(source))
		case primitive.LengthOfInt:
			val = int64(int32(binary.BigEndian.Uint32(source)))
		case primitive.LengthOfShort:
			val = int64(int16(binary.BigEndian.Uint16(source)))
		case primitive.LengthOfByte:
			val = int64(int8(source[0]))
		}
	}
	if err != nil {
		var typed interface{} = val
		switch width {
		case primitive.LengthOfInt:
			typed = int32(val)
		case primitive.LengthOfShort:
			typed = int16(val)
		case primitive.LengthOfByte:
			typed = int8(val)
		}
		err = errCannotRead(typed, err)
	}
	return
}

// TINYINT

type tinyintCodec struct{}

func (c *tinyintCodec) DataType() datatype.DataType {
	return datatype.Tinyint
}

func (c *tinyintCodec) Encode(source interface{}, version primitive.ProtocolVersion) (dest []byte, err error) {
	if !version.SupportsDataType(c.DataType().Code()) {
		err = errDataTypeNotSupported(c.DataType(), version)
	} else {
		var val int8
		var wasNil bool
		if val, wasNil, err = convertToInt8(source); err == nil && !wasNil {
			dest = writeInt8(val)
		}
	}
	if err != nil {
		err = errCannotEncode(source, c.DataType(), version, err)
	}
	return
}

func (c *tinyintCodec) Decode(source []byte, dest interface{}, version primitive.ProtocolVersion) (wasNull bool, err error) {
	if !version.SupportsDataType(c.DataType().Code()) {
		wasNull = len(source) == 0
		err = errDataTypeNotSupported(c.DataType(), version)
	} else {
		var val int8
		if val, wasNull, err = readInt8(source); err == nil {
			err = convertFromInt8(val, wasNull, dest)
		}
	}
	if err != nil {
		err = errCannotDecode(dest, c.DataType(), version, err)
	}
	return
}

func convertToInt8(source interface{}) (val int8, wasNil bool, err error) {
	switch s := source.(type) {
	case int64:
		val, err = int64ToInt8(s)
	case int:
		val, err = intToInt8(s)
	case int32:
		val, err = int32ToInt8(s)
	case int16:
		val, err = int16ToInt8(s)
	case int8:
		val = s
	case uint64:
		val, err = uint64ToInt8(s)
	case uint:
		val, err = uintToInt8(s)
	case uint32:
		val, err = uint32ToInt8(s)
	case uint16:
		val, err = uint16ToInt8(s)
	case uint8:
		val, err = uint8ToInt8(s)
	case string:
		val, err = stringToInt8(s)
	case *int64:
		if wasNil = s == nil; !wasNil {
			val, err = int64ToInt8(*s)
		}
	case *int:
		if wasNil = s == nil; !wasNil {
			val, err = intToInt8(*s)
		}
	case *int32:
		if wasNil = s == nil; !wasNil {
			val, err = int32ToInt8(*s)
		}
	case *int16:
		if wasNil = s == nil; !wasNil {
			val, err = int16ToInt8(*s)
		}
	case *int8:
		if wasNil = s == nil; !wasNil {
			val = *s
		}
	case *uint64:
		if wasNil = s == nil; !wasNil {
			val, err = uint64ToInt8(*s)
		}
	case *uint:
		if wasNil = s == nil; !wasNil {
			val, err = uintToInt8(*s)
		}
	case *uint32:
		if wasNil = s == nil; !wasNil {
			val, err = uint32ToInt8(*s)
		}
	case *uint16:
		if wasNil = s == nil; !wasNil {
			val, err = uint16ToInt8(*s)
		}
	case *uint8:
		if wasNil = s == nil; !wasNil {
			val, err = uint8ToInt8(*s)
		}
	case *string:
		if wasNil = s == nil; !wasNil {
			val, err = stringToInt8(*s)
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

func convertFromInt8(val int8, wasNull bool, dest interface{}) (err error) {
	switch d := dest.(type) {
	case *interface{}:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = nil
		} else {
			*d = val
		}
	case *int64:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d = int64(val)
		}
	case *int:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d = int(val)
		}
	case *int32:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d = int32(val)
		}
	case *int16:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d = int16(val)
		}
	case *int8:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d = val
		}
	case *uint64:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int8ToUint64(val)
		}
	case *uint:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int8ToUint(val)
		}
	case *uint32:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int8ToUint32(val)
		}
	case *uint16:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int8ToUint16(val)
		}
	case *uint8:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int8ToUint8(val)
		}
	case *string:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = ""
		} else {
			*d = strconv.FormatInt(int64(val), 10)
		}
	default:
		err = errDestinationInvalid(dest)
	}
	if err != nil {
		err = errDestinationConversionFailed(val, dest, err)
	}
	return
}

func writeInt8(val int8) []byte {
	return writeFixedWidthInt(int64(val), primitive.LengthOfByte)
}

func readInt8(source []byte) (val int8, wasNull bool, err error) {
	var wide int64
	if wide, wasNull, err = readFixedWidthInt(source, primitive.LengthOfByte); err == nil {
		val = int8(wide)
	}
	return
}

// SMALLINT

type smallintCodec struct{}

func (c *smallintCodec) DataType() datatype.DataType {
	return datatype.Smallint
}

func (c *smallintCodec) Encode(source interface{}, version primitive.ProtocolVersion) (dest []byte, err error) {
	if !version.SupportsDataType(c.DataType().Code()) {
		err = errDataTypeNotSupported(c.DataType(), version)
	} else {
		var val int16
		var wasNil bool
		if val, wasNil, err = convertToInt16(source); err == nil && !wasNil {
			dest = writeInt16(val)
		}
	}
	if err != nil {
		err = errCannotEncode(source, c.DataType(), version, err)
	}
	return
}

func (c *smallintCodec) Decode(source []byte, dest interface{}, version primitive.ProtocolVersion) (wasNull bool, err error) {
	if !version.SupportsDataType(c.DataType().Code()) {
		wasNull = len(source) == 0
		err = errDataTypeNotSupported(c.DataType(), version)
	} else {
		var val int16
		if val, wasNull, err = readInt16(source); err == nil {
			err = convertFromInt16(val, wasNull, dest)
		}
	}
	if err != nil {
		err = errCannotDecode(dest, c.DataType(), version, err)
	}
	return
}

func convertToInt16(source interface{}) (val int16, wasNil bool, err error) {
	switch s := source.(type) {
	case int64:
		val, err = int64ToInt16(s)
	case int:
		val, err = intToInt16(s)
	case int32:
		val, err = int32ToInt16(s)
	case int16:
		val = s
	case int8:
		val = int16(s)
	case uint64:
		val, err = uint64ToInt16(s)
	case uint:
		val, err = uintToInt16(s)
	case uint32:
		val, err = uint32ToInt16(s)
	case uint16:
		val, err = uint16ToInt16(s)
	case uint8:
		val = int16(s)
	case string:
		val, err = stringToInt16(s)
	case *int64:
		if wasNil = s == nil; !wasNil {
			val, err = int64ToInt16(*s)
		}
	case *int:
		if wasNil = s == nil; !wasNil {
			val, err = intToInt16(*s)
		}
	case *int32:
		if wasNil = s == nil; !wasNil {
			val, err = int32ToInt16(*s)
		}
	case *int16:
		if wasNil = s == nil; !wasNil {
			val = *s
		}
	case *int8:
		if wasNil = s == nil; !wasNil {
			val = int16(*s)
		}
	case *uint64:
		if wasNil = s == nil; !wasNil {
			val, err = uint64ToInt16(*s)
		}
	case *uint:
		if wasNil = s == nil; !wasNil {
			val, err = uintToInt16(*s)
		}
	case *uint32:
		if wasNil = s == nil; !wasNil {
			val, err = uint32ToInt16(*s)
		}
	case *uint16:
		if wasNil = s == nil; !wasNil {
			val, err = uint16ToInt16(*s)
		}
	case *uint8:
		if wasNil = s == nil; !wasNil {
			val = int16(*s)
		}
	case *string:
		if wasNil = s == nil; !wasNil {
			val, err = stringToInt16(*s)
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

func convertFromInt16(val int16, wasNull bool, dest interface{}) (err error) {
	switch d := dest.(type) {
	case *interface{}:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = nil
		} else {
			*d = val
		}
	case *int64:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d = int64(val)
		}
	case *int:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d = int(val)
		}
	case *int32:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d = int32(val)
		}
	case *int16:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d = val
		}
	case *int8:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int16ToInt8(val)
		}
	case *uint64:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int16ToUint64(val)
		}
	case *uint:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int16ToUint(val)
		}
	case *uint32:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int16ToUint32(val)
		}
	case *uint16:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int16ToUint16(val)
		}
	case *uint8:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int16ToUint8(val)
		}
	case *string:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = ""
		} else {
			*d = strconv.FormatInt(int64(val), 10)
		}
	default:
		err = errDestinationInvalid(dest)
	}
	if err != nil {
		err = errDestinationConversionFailed(val, dest, err)
	}
	return
}

func writeInt16(val int16) []byte {
	return writeFixedWidthInt(int64(val), primitive.LengthOfShort)
}

func readInt16(source []byte) (val int16, wasNull bool, err error) {
	var wide int64
	if wide, wasNull, err = readFixedWidthInt(source, primitive.LengthOfShort); err == nil {
		val = int16(wide)
	}
	return
}

// INT

type intCodec struct{}

func (c *intCodec) DataType() datatype.DataType {
	return datatype.Int
}

func (c *intCodec) Encode(source interface{}, version primitive.ProtocolVersion) (dest []byte, err error) {
	var val int32
	var wasNil bool
	if val, wasNil, err = convertToInt32(source); err == nil && !wasNil {
		dest = writeInt32(val)
	}
	if err != nil {
		err = errCannotEncode(source, c.DataType(), version, err)
	}
	return
}

func (c *intCodec) Decode(source []byte, dest interface{}, version primitive.ProtocolVersion) (wasNull bool, err error) {
	var val int32
	if val, wasNull, err = readInt32(source); err == nil {
		err = convertFromInt32(val, wasNull, dest)
	}
	if err != nil {
		err = errCannotDecode(dest, c.DataType(), version, err)
	}
	return
}

func convertToInt32(source interface{}) (val int32, wasNil bool, err error) {
	switch s := source.(type) {
	case int:
		val, err = intToInt32(s)
	case int64:
		val, err = int64ToInt32(s)
	case int32:
		val = s
	case int16:
		val = int32(s)
	case int8:
		val = int32(s)
	case uint:
		val, err = uintToInt32(s)
	case uint64:
		val, err = uint64ToInt32(s)
	case uint32:
		val, err = uint32ToInt32(s)
	case uint16:
		val = int32(s)
	case uint8:
		val = int32(s)
	case string:
		val, err = stringToInt32(s)
	case *int:
		if wasNil = s == nil; !wasNil {
			val, err = intToInt32(*s)
		}
	case *int64:
		if wasNil = s == nil; !wasNil {
			val, err = int64ToInt32(*s)
		}
	case *int32:
		if wasNil = s == nil; !wasNil {
			val = *s
		}
	case *int16:
		if wasNil = s == nil; !wasNil {
			val = int32(*s)
		}
	case *int8:
		if wasNil = s == nil; !wasNil {
			val = int32(*s)
		}
	case *uint:
		if wasNil = s == nil; !wasNil {
			val, err = uintToInt32(*s)
		}
	case *uint64:
		if wasNil = s == nil; !wasNil {
			val, err = uint64ToInt32(*s)
		}
	case *uint32:
		if wasNil = s == nil; !wasNil {
			val, err = uint32ToInt32(*s)
		}
	case *uint16:
		if wasNil = s == nil; !wasNil {
			val = int32(*s)
		}
	case *uint8:
		if wasNil = s == nil; !wasNil {
			val = int32(*s)
		}
	case *string:
		if wasNil = s == nil; !wasNil {
			val, err = stringToInt32(*s)
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

func convertFromInt32(val int32, wasNull bool, dest interface{}) (err error) {
	switch d := dest.(type) {
	case *interface{}:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = nil
		} else {
			*d = val
		}
	case *int:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d = int(val)
		}
	case *int64:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d = int64(val)
		}
	case *int32:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d = val
		}
	case *int16:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int32ToInt16(val)
		}
	case *int8:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int32ToInt8(val)
		}
	case *uint:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int32ToUint(val)
		}
	case *uint64:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int32ToUint64(val)
		}
	case *uint32:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int32ToUint32(val)
		}
	case *uint16:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int32ToUint16(val)
		}
	case *uint8:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int32ToUint8(val)
		}
	case *string:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = ""
		} else {
			*d = strconv.FormatInt(int64(val), 10)
		}
	default:
		err = errDestinationInvalid(dest)
	}
	if err != nil {
		err = errDestinationConversionFailed(val, dest, err)
	}
	return
}

func writeInt32(val int32) []byte {
	return writeFixedWidthInt(int64(val), primitive.LengthOfInt)
}

func readInt32(source []byte) (val int32, wasNull bool, err error) {
	var wide int64
	if wide, wasNull, err = readFixedWidthInt(source, primitive.LengthOfInt); err == nil {
		val = int32(wide)
	}
	return
}

// BIGINT / COUNTER

type bigintCodec struct {
	dataType datatype.PrimitiveType
}

func (c *bigintCodec) DataType() datatype.DataType {
	return c.dataType
}

func (c *bigintCodec) Encode(source interface{}, version primitive.ProtocolVersion) (dest []byte, err error) {
	var val int64
	var wasNil bool
	if val, wasNil, err = convertToInt64(source); err == nil && !wasNil {
		dest = writeInt64(val)
	}
	if err != nil {
		err = errCannotEncode(source, c.DataType(), version, err)
	}
	return
}

func (c *bigintCodec) Decode(source []byte, dest interface{}, version primitive.ProtocolVersion) (wasNull bool, err error) {
	var val int64
	if val, wasNull, err = readInt64(source); err == nil {
		err = convertFromInt64(val, wasNull, dest)
	}
	if err != nil {
		err = errCannotDecode(dest, c.DataType(), version, err)
	}
	return
}

func convertToInt64(source interface{}) (val int64, wasNil bool, err error) {
	switch s := source.(type) {
	case int:
		val = int64(s)
	case int64:
		val = s
	case int32:
		val = int64(s)
	case int16:
		val = int64(s)
	case int8:
		val = int64(s)
	case uint:
		val, err = uintToInt64(s)
	case uint64:
		val, err = uint64ToInt64(s)
	case uint32:
		val = int64(s)
	case uint16:
		val = int64(s)
	case uint8:
		val = int64(s)
	case string:
		val, err = stringToInt64(s)
	case *int:
		if wasNil = s == nil; !wasNil {
			val = int64(*s)
		}
	case *int64:
		if wasNil = s == nil; !wasNil {
			val = *s
		}
	case *int32:
		if wasNil = s == nil; !wasNil {
			val = int64(*s)
		}
	case *int16:
		if wasNil = s == nil; !wasNil {
			val = int64(*s)
		}
	case *int8:
		if wasNil = s == nil; !wasNil {
			val = int64(*s)
		}
	case *uint:
		if wasNil = s == nil; !wasNil {
			val, err = uintToInt64(*s)
		}
	case *uint64:
		if wasNil = s == nil; !wasNil {
			val, err = uint64ToInt64(*s)
		}
	case *uint32:
		if wasNil = s == nil; !wasNil {
			val = int64(*s)
		}
	case *uint16:
		if wasNil = s == nil; !wasNil {
			val = int64(*s)
		}
	case *uint8:
		if wasNil = s == nil; !wasNil {
			val = int64(*s)
		}
	case *big.Int:
		// non-pointer big.Int is not supported, per its own docs it should always be used as a pointer.
		if wasNil = s == nil; !wasNil {
			val, err = bigIntToInt64(s)
		}
	case *string:
		if wasNil = s == nil; !wasNil {
			val, err = stringToInt64(*s)
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

func convertFromInt64(val int64, wasNull bool, dest interface{}) (err error) {
	switch d := dest.(type) {
	case *interface{}:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = nil
		} else {
			*d = val
		}
	case *int64:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d = val
		}
	case *int:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int64ToInt(val, strconv.IntSize)
		}
	case *int32:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int64ToInt32(val)
		}
	case *int16:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int64ToInt16(val)
		}
	case *int8:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int64ToInt8(val)
		}
	case *uint64:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int64ToUint64(val)
		}
	case *uint:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int64ToUint(val, strconv.IntSize)
		}
	case *uint32:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int64ToUint32(val)
		}
	case *uint16:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int64ToUint16(val)
		}
	case *uint8:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = 0
		} else {
			*d, err = int64ToUint8(val)
		}
	case *big.Int:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = big.Int{}
		} else {
			d.SetInt64(val)
		}
	case *string:
		if d == nil {
			err = ErrNilDestination
		} else if wasNull {
			*d = ""
		} else {
			*d = strconv.FormatInt(val, 10)
		}
	default:
		err = errDestinationInvalid(dest)
	}
	if err != nil {
		err = errDestinationConversionFailed(val, dest, err)
	}
	return
}

func writeInt64(val int64) []byte {
	return writeFixedWidthInt(val, primitive.LengthOfLong)
}

func readInt64(source []byte) (val int64, wasNull bool, err error) {
	return readFixedWidthInt(source, primitive.LengthOfLong)
}
