// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package attr

import (
	"fmt"

	"github.com/gviegas/materialscene/diag"
)

// AttributeName is a closed enumeration of well-known attribute
// names. Each maps to a canonical ASCII string and a required
// AttributeType.
type AttributeName uint8

// Well-known attribute names.
const (
	LayerName AttributeName = iota
	AlphaBlend
	AlphaMask
	DoubleSided
	AmbientColor
	AmbientTexture
	AmbientTextureMatrix
	AmbientCoordinateSet
	DiffuseColor
	DiffuseTexture
	DiffuseTextureMatrix
	DiffuseCoordinateSet
	SpecularColor
	SpecularTexture
	SpecularTextureMatrix
	SpecularCoordinateSet
	NormalTexture
	NormalTextureMatrix
	NormalCoordinateSet
	TextureMatrix
	CoordinateSet
	Shininess

	invalidName AttributeName = 0xFF
)

// layerNameString is the canonical string of LayerName.
// It is the only canonical name that begins with '$'.
const layerNameString = "$LayerName"

// String implements fmt.Stringer, producing the "TypeTag::Member"
// debug form, or "AttributeName(0xNN)" for unrecognized values.
func (n AttributeName) String() string {
	if s, _, ok := n.entry(); ok {
		if n == LayerName {
			return "AttributeName::LayerName"
		}
		return "AttributeName::" + s
	}
	return fmt.Sprintf("AttributeName(0x%02X)", uint8(n))
}

// entry returns the canonical string and required AttributeType of n.
func (n AttributeName) entry() (string, AttributeType, bool) {
	switch n {
	case LayerName:
		return layerNameString, String, true
	case AlphaBlend:
		return "AlphaBlend", Bool, true
	case AlphaMask:
		return "AlphaMask", Float, true
	case DoubleSided:
		return "DoubleSided", Bool, true
	case AmbientColor:
		return "AmbientColor", Vector3, true
	case AmbientTexture:
		return "AmbientTexture", Pointer, true
	case AmbientTextureMatrix:
		return "AmbientTextureMatrix", Matrix3x3, true
	case AmbientCoordinateSet:
		return "AmbientCoordinateSet", UInt32, true
	case DiffuseColor:
		return "DiffuseColor", Vector3, true
	case DiffuseTexture:
		return "DiffuseTexture", Pointer, true
	case DiffuseTextureMatrix:
		return "DiffuseTextureMatrix", Matrix3x3, true
	case DiffuseCoordinateSet:
		return "DiffuseCoordinateSet", UInt32, true
	case SpecularColor:
		return "SpecularColor", Vector3, true
	case SpecularTexture:
		return "SpecularTexture", Pointer, true
	case SpecularTextureMatrix:
		return "SpecularTextureMatrix", Matrix3x3, true
	case SpecularCoordinateSet:
		return "SpecularCoordinateSet", UInt32, true
	case NormalTexture:
		return "NormalTexture", Pointer, true
	case NormalTextureMatrix:
		return "NormalTextureMatrix", Matrix3x3, true
	case NormalCoordinateSet:
		return "NormalCoordinateSet", UInt32, true
	case TextureMatrix:
		return "TextureMatrix", Matrix3x3, true
	case CoordinateSet:
		return "CoordinateSet", UInt32, true
	case Shininess:
		return "Shininess", Float, true
	default:
		return "", invalidType, false
	}
}

// Canonical returns the canonical string and required AttributeType
// of n. op names the calling operation for diagnostic purposes (per
// §7, InvalidName is reported labelled by the callsite).
func Canonical(op string, n AttributeName) (string, AttributeType, error) {
	if s, t, ok := n.entry(); ok {
		return s, t, nil
	}
	return "", invalidType, diag.Report(op, diag.InvalidName, n.String())
}
