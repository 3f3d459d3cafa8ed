// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package attr implements the compact, type-erased, sorted attribute
// store (MaterialStore) used to describe materials imported from
// assets, plus a stateless Phong accessor view over it.
package attr

import (
	"fmt"
	"unsafe"

	"github.com/gviegas/materialscene/diag"
)

const typePrefix = "materialAttributeTypeSize"

// AttributeType is a closed enumeration of value kinds that an
// AttributeRecord can carry.
type AttributeType uint8

// Attribute types.
const (
	// The zero value of AttributeType is reserved and never assigned
	// to a named tag, so a zero-valued (default-constructed)
	// AttributeRecord is unambiguously distinguishable from any
	// record actually built by this package, regardless of name.
	_ AttributeType = iota
	Bool
	Float
	Deg
	Rad
	UInt32
	Int32
	UInt64
	Int64
	Vector2
	Vector2ui
	Vector2i
	Vector3
	Vector3ui
	Vector3i
	Vector4
	Vector4ui
	Vector4i
	Matrix2x2
	Matrix2x3
	Matrix2x4
	Matrix3x2
	Matrix3x3
	Matrix3x4
	Matrix4x2
	Matrix4x3
	Pointer
	MutablePointer
	String

	invalidType AttributeType = 0xFF
)

// pointerSize is the in-record size of Pointer and MutablePointer.
const pointerSize = unsafe.Sizeof(uintptr(0))

// String implements fmt.Stringer, producing the "TypeTag::Member"
// debug form, or "AttributeType(0xNN)" for unrecognized values.
func (t AttributeType) String() string {
	if name, ok := t.memberName(); ok {
		return "AttributeType::" + name
	}
	return fmt.Sprintf("AttributeType(0x%02X)", uint8(t))
}

func (t AttributeType) memberName() (string, bool) {
	switch t {
	case Bool:
		return "Bool", true
	case Float:
		return "Float", true
	case Deg:
		return "Deg", true
	case Rad:
		return "Rad", true
	case UInt32:
		return "UInt32", true
	case Int32:
		return "Int32", true
	case UInt64:
		return "UInt64", true
	case Int64:
		return "Int64", true
	case Vector2:
		return "Vector2", true
	case Vector2ui:
		return "Vector2ui", true
	case Vector2i:
		return "Vector2i", true
	case Vector3:
		return "Vector3", true
	case Vector3ui:
		return "Vector3ui", true
	case Vector3i:
		return "Vector3i", true
	case Vector4:
		return "Vector4", true
	case Vector4ui:
		return "Vector4ui", true
	case Vector4i:
		return "Vector4i", true
	case Matrix2x2:
		return "Matrix2x2", true
	case Matrix2x3:
		return "Matrix2x3", true
	case Matrix2x4:
		return "Matrix2x4", true
	case Matrix3x2:
		return "Matrix3x2", true
	case Matrix3x3:
		return "Matrix3x3", true
	case Matrix3x4:
		return "Matrix3x4", true
	case Matrix4x2:
		return "Matrix4x2", true
	case Matrix4x3:
		return "Matrix4x3", true
	case Pointer:
		return "Pointer", true
	case MutablePointer:
		return "MutablePointer", true
	case String:
		return "String", true
	default:
		return "", false
	}
}

// SizeOf returns the in-record byte size of t.
// It fails with diag.InvalidType for unknown tags and with
// diag.UnknownStringSize for String, whose size is not known at
// the type level.
func SizeOf(t AttributeType) (int, error) {
	switch t {
	case Bool:
		return 1, nil
	case Float, Deg, Rad, UInt32, Int32:
		return 4, nil
	case UInt64, Int64, Vector2, Vector2ui, Vector2i:
		return 8, nil
	case Vector3, Vector3ui, Vector3i:
		return 12, nil
	case Vector4, Vector4ui, Vector4i, Matrix2x2:
		return 16, nil
	case Matrix2x3, Matrix3x2:
		return 24, nil
	case Matrix2x4, Matrix4x2:
		return 32, nil
	case Matrix3x3:
		return 36, nil
	case Matrix3x4, Matrix4x3:
		return 48, nil
	case Pointer, MutablePointer:
		return int(pointerSize), nil
	case String:
		return 0, diag.Report(typePrefix, diag.UnknownStringSize, t.String())
	default:
		return 0, diag.Report(typePrefix, diag.InvalidType, t.String())
	}
}
