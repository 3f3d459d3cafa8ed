// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package attr

import (
	"reflect"
	"unsafe"

	"github.com/gviegas/materialscene/diag"
	"github.com/gviegas/materialscene/linear"
)

const recordPrefix = "MaterialAttributeData"

// recordSize is the fixed, inline size of an AttributeRecord.
const recordSize = 64

// maxSpan is the largest span that name+NUL+value may occupy.
// recordSize minus the type tag byte and the name-length byte.
const maxSpan = recordSize - 2

// AttributeRecord is a fixed-width, 64-byte record carrying a
// null-terminated name, a type tag and an inline value.
//
//	byte 0      | type tag
//	byte 1      | name length (not counting NUL)
//	bytes 2:64  | name, NUL, then value (or, for String, NUL,
//	            | a length byte, the string bytes, and a final NUL)
type AttributeRecord struct {
	typ     AttributeType
	nameLen uint8
	buf     [maxSpan]byte
}

// Static assertion that AttributeRecord is exactly 64 bytes, per §9.
var (
	_ = [recordSize - unsafe.Sizeof(AttributeRecord{})]byte{}
	_ = [unsafe.Sizeof(AttributeRecord{}) - recordSize]byte{}
)

// IsEmpty reports whether r is a default-constructed (zero) record.
// Storing an empty record in a MaterialStore is a precondition error.
// The zero AttributeType tag is reserved and never produced by any of
// this package's constructors, even for a record with an empty
// user-supplied name, so this check never aliases a legitimately
// constructed record.
func (r *AttributeRecord) IsEmpty() bool { return r.typ == 0 }

// Type returns the record's type tag.
func (r *AttributeRecord) Type() AttributeType { return r.typ }

// Name returns the record's name.
func (r *AttributeRecord) Name() string { return string(r.buf[:r.nameLen]) }

// valueOffset is the offset of the value region within buf, i.e.
// just past the name and its NUL terminator.
func (r *AttributeRecord) valueOffset() int { return int(r.nameLen) + 1 }

// RawPtr returns a pointer to the record's value region.
// For String records it points at the length byte, not the string
// data itself; use StringValue to read a string.
func (r *AttributeRecord) RawPtr() unsafe.Pointer {
	off := r.valueOffset()
	return unsafe.Pointer(&r.buf[off])
}

// StringValue returns the record's value as a string, including any
// interior NUL bytes. It fails with diag.TypeMismatch if the record
// is not a String.
func (r *AttributeRecord) StringValue() (string, error) {
	if r.typ != String {
		return "", diag.Report(recordPrefix+"::value", diag.TypeMismatch, r.typ.String())
	}
	off := r.valueOffset()
	n := int(r.buf[off])
	return string(r.buf[off+1 : off+1+n]), nil
}

// typeOf reports the AttributeType that corresponds to Go type T, for
// every non-pointer type this package knows how to pack (string maps
// to String).
// It returns (invalidType, false) for pointer types and any type this
// package does not carry, leaving pointer handling to the caller.
func typeOf[T any]() (AttributeType, bool) {
	var zero T
	switch any(zero).(type) {
	case bool:
		return Bool, true
	case float32:
		return Float, true
	case Degrees:
		return Deg, true
	case Radians:
		return Rad, true
	case uint32:
		return UInt32, true
	case int32:
		return Int32, true
	case uint64:
		return UInt64, true
	case int64:
		return Int64, true
	case Vec2:
		return Vector2, true
	case Vec2ui:
		return Vector2ui, true
	case Vec2i:
		return Vector2i, true
	case linear.V3:
		return Vector3, true
	case Vec3ui:
		return Vector3ui, true
	case Vec3i:
		return Vector3i, true
	case linear.V4:
		return Vector4, true
	case Vec4ui:
		return Vector4ui, true
	case Vec4i:
		return Vector4i, true
	case Mat2x2:
		return Matrix2x2, true
	case Mat2x3:
		return Matrix2x3, true
	case Mat2x4:
		return Matrix2x4, true
	case Mat3x2:
		return Matrix3x2, true
	case linear.M3:
		return Matrix3x3, true
	case Mat3x4:
		return Matrix3x4, true
	case Mat4x2:
		return Matrix4x2, true
	case Mat4x3:
		return Matrix4x3, true
	case string:
		return String, true
	default:
		return invalidType, false
	}
}

// bytesOf returns the raw bytes backing v.
func bytesOf[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

// pack builds a record from a name (already validated), a type and
// the raw value bytes to store (nil/empty for String, which is
// packed separately via packString).
func pack(op string, name string, typ AttributeType, value []byte) (*AttributeRecord, error) {
	if len(name)+1+len(value) > maxSpan {
		return nil, diag.Report(op, diag.RecordTooLarge, name)
	}
	if len(name) > 255 {
		return nil, diag.Report(op, diag.RecordTooLarge, name)
	}
	r := &AttributeRecord{typ: typ, nameLen: uint8(len(name))}
	copy(r.buf[:], name)
	// buf[len(name)] is left zero, serving as the NUL terminator.
	copy(r.buf[len(name)+1:], value)
	return r, nil
}

// packString builds a String record. The value byte preceding the
// string data holds its length, and the region is terminated with a
// trailing NUL, per §3.
func packString(op string, name string, value string) (*AttributeRecord, error) {
	if len(value) > 255 {
		return nil, diag.Report(op, diag.RecordTooLarge, name)
	}
	if len(name)+1+1+len(value)+1 > maxSpan {
		return nil, diag.Report(op, diag.RecordTooLarge, name)
	}
	if len(name) > 255 {
		return nil, diag.Report(op, diag.RecordTooLarge, name)
	}
	r := &AttributeRecord{typ: String, nameLen: uint8(len(name))}
	copy(r.buf[:], name)
	off := len(name) + 1
	r.buf[off] = byte(len(value))
	copy(r.buf[off+1:], value)
	// The byte past the string data is left zero, the trailing NUL.
	return r, nil
}

// isUserAttributeName reports whether name is a valid user-supplied
// (non-canonical) attribute name. The '$' prefix namespace is
// reserved for canonical names such as LayerName's "$LayerName",
// so no user name may start with it.
func isUserAttributeName(name string) bool {
	return len(name) == 0 || name[0] != '$'
}

// NewRecord creates a record from a well-known AttributeName and a
// value of type T. It fails with diag.InvalidName for an unknown
// name, and diag.TypeMismatch if T does not match the name's
// required AttributeType.
func NewRecord[T any](name AttributeName, value T) (*AttributeRecord, error) {
	const op = recordPrefix + "::New"
	canon, want, err := Canonical(op, name)
	if err != nil {
		return nil, err
	}
	got, ok := typeOf[T]()
	if !ok || got != want {
		return nil, diag.Report(op, diag.TypeMismatch, want.String())
	}
	if want == String {
		s := any(value).(string)
		return packString(op, canon, s)
	}
	return pack(op, canon, want, bytesOf(&value))
}

// NewRecordNamed creates a record using name verbatim (not looked up
// in the AttributeName registry); type_of(T) becomes the record's
// type. It fails with diag.InvalidName if name is the reserved
// LayerName string used from user input.
func NewRecordNamed[T any](name string, value T) (*AttributeRecord, error) {
	const op = recordPrefix + "::New"
	if !isUserAttributeName(name) {
		return nil, diag.Report(op, diag.InvalidName, name)
	}
	typ, ok := typeOf[T]()
	if !ok {
		return nil, diag.Report(op, diag.InvalidType, "")
	}
	if typ == String {
		s := any(value).(string)
		return packString(op, name, s)
	}
	return pack(op, name, typ, bytesOf(&value))
}

// StringView mirrors a foreign (data, length) string view, used by
// NewRecordRaw/NewRecordRawNamed when typ is String.
type StringView struct {
	Data unsafe.Pointer
	Len  int
}

// NewRecordRaw creates a type-erased record from a well-known
// AttributeName, copying SizeOf(typ) bytes from src. If typ is
// String, src must point to a StringView.
func NewRecordRaw(name AttributeName, typ AttributeType, src unsafe.Pointer) (*AttributeRecord, error) {
	const op = recordPrefix + "::New"
	canon, want, err := Canonical(op, name)
	if err != nil {
		return nil, err
	}
	if typ != want {
		return nil, diag.Report(op, diag.TypeMismatch, want.String())
	}
	return packRaw(op, canon, typ, src)
}

// NewRecordRawNamed creates a type-erased record using name verbatim.
func NewRecordRawNamed(name string, typ AttributeType, src unsafe.Pointer) (*AttributeRecord, error) {
	const op = recordPrefix + "::New"
	if !isUserAttributeName(name) {
		return nil, diag.Report(op, diag.InvalidName, name)
	}
	return packRaw(op, name, typ, src)
}

func packRaw(op, name string, typ AttributeType, src unsafe.Pointer) (*AttributeRecord, error) {
	if typ == String {
		v := (*StringView)(src)
		s := unsafe.String((*byte)(v.Data), v.Len)
		return packString(op, name, s)
	}
	sz, err := SizeOf(typ)
	if err != nil {
		return nil, err
	}
	value := unsafe.Slice((*byte)(src), sz)
	return pack(op, name, typ, value)
}

// NewRecordPtr creates a Pointer-typed record from ptr.
func NewRecordPtr[T any](name AttributeName, ptr *T) (*AttributeRecord, error) {
	return newRecordPtr(name, unsafe.Pointer(ptr), Pointer)
}

// NewRecordMutPtr creates a MutablePointer-typed record from ptr.
func NewRecordMutPtr[T any](name AttributeName, ptr *T) (*AttributeRecord, error) {
	return newRecordPtr(name, unsafe.Pointer(ptr), MutablePointer)
}

func newRecordPtr(name AttributeName, ptr unsafe.Pointer, typ AttributeType) (*AttributeRecord, error) {
	const op = recordPrefix + "::New"
	canon, want, err := Canonical(op, name)
	if err != nil {
		return nil, err
	}
	if want != typ {
		return nil, diag.Report(op, diag.TypeMismatch, want.String())
	}
	return pack(op, canon, typ, bytesOf(&ptr))
}

// Value returns the record's value as type T. For non-pointer,
// non-string types, r's type tag must equal typeOf[T] exactly.
// It fails with diag.TypeMismatch otherwise.
func Value[T any](r *AttributeRecord) (T, error) {
	const op = recordPrefix + "::value"
	var zero T
	if want, ok := typeOf[T](); ok {
		if want == String {
			s, err := r.StringValue()
			if err != nil {
				return zero, err
			}
			return any(s).(T), nil
		}
		if r.typ != want {
			return zero, diag.Report(op, diag.TypeMismatch, r.typ.String())
		}
		sz, _ := SizeOf(want)
		copy(bytesOf(&zero), r.buf[r.valueOffset():r.valueOffset()+sz])
		return zero, nil
	}
	// Not a value type this package packs by shape: only pointer
	// types remain valid, per §4.3.
	typ := reflect.TypeOf(zero)
	if typ == nil {
		return zero, diag.Report(op, diag.TypeMismatch, r.typ.String())
	}
	kind := typ.Kind()
	if kind != reflect.Pointer && kind != reflect.UnsafePointer {
		return zero, diag.Report(op, diag.TypeMismatch, r.typ.String())
	}
	if r.typ != Pointer && r.typ != MutablePointer {
		return zero, diag.Report(op, diag.TypeMismatch, r.typ.String())
	}
	sz := int(pointerSize)
	var raw unsafe.Pointer
	copy(bytesOf(&raw), r.buf[r.valueOffset():r.valueOffset()+sz])
	if kind == reflect.UnsafePointer {
		return any(raw).(T), nil
	}
	pv := reflect.NewAt(typ.Elem(), raw)
	return pv.Interface().(T), nil
}
