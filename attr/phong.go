// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package attr

import (
	"fmt"

	"github.com/gviegas/materialscene/diag"
	"github.com/gviegas/materialscene/linear"
)

const phongPrefix = "PhongMaterialData"

// AlphaMode classifies how a Phong material's alpha channel is used.
type AlphaMode int

// Alpha modes.
const (
	Opaque AlphaMode = iota
	Blend
	Mask
)

func (m AlphaMode) String() string {
	switch m {
	case Opaque:
		return "AlphaMode::Opaque"
	case Blend:
		return "AlphaMode::Blend"
	case Mask:
		return "AlphaMode::Mask"
	default:
		return fmt.Sprintf("AlphaMode(%d)", int(m))
	}
}

// TextureKind selects one of the Phong material's four texture
// slots for the per-texture accessors below.
type TextureKind int

// Texture kinds.
const (
	AmbientTex TextureKind = iota
	DiffuseTex
	SpecularTex
	NormalTex
)

// names returns the texture/matrix/coordinate-set AttributeName
// triple for k.
func (k TextureKind) names(op string) (tex, mat, coord AttributeName, err error) {
	switch k {
	case AmbientTex:
		return AmbientTexture, AmbientTextureMatrix, AmbientCoordinateSet, nil
	case DiffuseTex:
		return DiffuseTexture, DiffuseTextureMatrix, DiffuseCoordinateSet, nil
	case SpecularTex:
		return SpecularTexture, SpecularTextureMatrix, SpecularCoordinateSet, nil
	case NormalTex:
		return NormalTexture, NormalTextureMatrix, NormalCoordinateSet, nil
	default:
		return 0, 0, 0, diag.Report(op, diag.InvalidType, fmt.Sprintf("TextureKind(%d)", int(k)))
	}
}

var (
	phongBlack = linear.V3{0, 0, 0}
	phongWhite = linear.V3{1, 1, 1}
)

// PhongAmbientColor returns the material's ambient color, or black
// if unset.
func PhongAmbientColor(m *MaterialStore, layer int) (linear.V3, error) {
	return AttributeOr[linear.V3](m, layer, AmbientColor, phongBlack)
}

// PhongDiffuseColor returns the material's diffuse color, or white
// if unset.
func PhongDiffuseColor(m *MaterialStore, layer int) (linear.V3, error) {
	return AttributeOr[linear.V3](m, layer, DiffuseColor, phongWhite)
}

// PhongSpecularColor returns the material's specular color, or white
// if unset.
func PhongSpecularColor(m *MaterialStore, layer int) (linear.V3, error) {
	return AttributeOr[linear.V3](m, layer, SpecularColor, phongWhite)
}

// PhongShininess returns the material's shininess exponent, or 80
// if unset.
func PhongShininess(m *MaterialStore, layer int) (float32, error) {
	return AttributeOr[float32](m, layer, Shininess, 80.0)
}

// PhongAlphaMask returns the material's alpha cutoff, or 0 if unset.
func PhongAlphaMask(m *MaterialStore, layer int) (float32, error) {
	return AttributeOr[float32](m, layer, AlphaMask, 0.0)
}

// PhongAlphaMode derives the material's alpha mode: Blend if
// AlphaBlend is true, else Mask if AlphaMask is present, else Opaque.
func PhongAlphaMode(m *MaterialStore, layer int) (AlphaMode, error) {
	blend, err := AttributeOr[bool](m, layer, AlphaBlend, false)
	if err != nil {
		return Opaque, err
	}
	if blend {
		return Blend, nil
	}
	has, err := m.HasAttribute(layer, AlphaMask)
	if err != nil {
		return Opaque, err
	}
	if has {
		return Mask, nil
	}
	return Opaque, nil
}

// PhongHasTexture reports whether the given texture slot is present.
func PhongHasTexture(m *MaterialStore, layer int, k TextureKind) (bool, error) {
	tex, _, _, err := k.names(phongPrefix + "::has_texture")
	if err != nil {
		return false, err
	}
	return m.HasAttribute(layer, tex)
}

// PhongHasTextureTransformation reports whether any texture-matrix
// attribute, per-texture or global, is present.
func PhongHasTextureTransformation(m *MaterialStore, layer int) (bool, error) {
	for _, k := range []TextureKind{AmbientTex, DiffuseTex, SpecularTex, NormalTex} {
		_, mat, _, err := k.names(phongPrefix + "::has_texture_transformation")
		if err != nil {
			return false, err
		}
		has, err := m.HasAttribute(layer, mat)
		if err != nil {
			return false, err
		}
		if has {
			return true, nil
		}
	}
	return m.HasAttribute(layer, TextureMatrix)
}

// PhongHasTextureCoordinateSets reports whether any per-texture
// coordinate set, or the global CoordinateSet with a non-zero value,
// is present.
func PhongHasTextureCoordinateSets(m *MaterialStore, layer int) (bool, error) {
	for _, k := range []TextureKind{AmbientTex, DiffuseTex, SpecularTex, NormalTex} {
		_, _, coord, err := k.names(phongPrefix + "::has_texture_coordinate_sets")
		if err != nil {
			return false, err
		}
		has, err := m.HasAttribute(layer, coord)
		if err != nil {
			return false, err
		}
		if has {
			return true, nil
		}
	}
	v, ok, err := TryAttribute[uint32](m, layer, CoordinateSet)
	if err != nil {
		return false, err
	}
	return ok && v != 0, nil
}

// PhongTextureMatrix returns the transformation matrix for the given
// texture slot: the per-texture matrix if present, else the global
// TextureMatrix if present, else identity. It fails with
// diag.MissingTexture if the underlying texture attribute is absent.
func PhongTextureMatrix(m *MaterialStore, layer int, k TextureKind) (linear.M3, error) {
	const op = phongPrefix + "::texture_matrix"
	var identity linear.M3
	identity.I()
	tex, mat, _, err := k.names(op)
	if err != nil {
		return identity, err
	}
	hasTex, err := m.HasAttribute(layer, tex)
	if err != nil {
		return identity, err
	}
	if !hasTex {
		return identity, diag.Report(op, diag.MissingTexture, tex.String())
	}
	if v, ok, err := TryAttribute[linear.M3](m, layer, mat); err != nil {
		return identity, err
	} else if ok {
		return v, nil
	}
	return AttributeOr[linear.M3](m, layer, TextureMatrix, identity)
}

// PhongCoordinateSet returns the UV coordinate set index for the
// given texture slot: the per-texture value if present, else the
// global CoordinateSet if present, else 0. It fails with
// diag.MissingTexture if the underlying texture attribute is absent.
func PhongCoordinateSet(m *MaterialStore, layer int, k TextureKind) (uint32, error) {
	const op = phongPrefix + "::coordinate_set"
	tex, _, coord, err := k.names(op)
	if err != nil {
		return 0, err
	}
	hasTex, err := m.HasAttribute(layer, tex)
	if err != nil {
		return 0, err
	}
	if !hasTex {
		return 0, diag.Report(op, diag.MissingTexture, tex.String())
	}
	if v, ok, err := TryAttribute[uint32](m, layer, coord); err != nil {
		return 0, err
	} else if ok {
		return v, nil
	}
	return AttributeOr[uint32](m, layer, CoordinateSet, 0)
}

// Phong is a stateless view over a single layer of a MaterialStore,
// exposing its Phong-shaded attributes as a value type instead of a
// (store, layer) pair threaded through every call. It wraps the store
// by pointer, so copying a Phong is cheap and never allocates.
type Phong struct {
	store *MaterialStore
	layer int
}

// NewPhong returns a Phong view over the given layer of store. It does
// not validate that layer exists; that check happens lazily, on first
// access, the same as every other by-index MaterialStore accessor.
// Whether store carries TypePhong is not checked, here or on access.
func NewPhong(store *MaterialStore, layer int) Phong {
	return Phong{store: store, layer: layer}
}

// Store returns the MaterialStore p views.
func (p Phong) Store() *MaterialStore { return p.store }

// Layer returns the layer index p views.
func (p Phong) Layer() int { return p.layer }

func (p Phong) AmbientColor() (linear.V3, error)  { return PhongAmbientColor(p.store, p.layer) }
func (p Phong) DiffuseColor() (linear.V3, error)  { return PhongDiffuseColor(p.store, p.layer) }
func (p Phong) SpecularColor() (linear.V3, error) { return PhongSpecularColor(p.store, p.layer) }
func (p Phong) Shininess() (float32, error)       { return PhongShininess(p.store, p.layer) }
func (p Phong) AlphaMask() (float32, error)       { return PhongAlphaMask(p.store, p.layer) }
func (p Phong) AlphaMode() (AlphaMode, error)     { return PhongAlphaMode(p.store, p.layer) }

func (p Phong) HasTexture(k TextureKind) (bool, error) {
	return PhongHasTexture(p.store, p.layer, k)
}

func (p Phong) HasTextureTransformation() (bool, error) {
	return PhongHasTextureTransformation(p.store, p.layer)
}

func (p Phong) HasTextureCoordinateSets() (bool, error) {
	return PhongHasTextureCoordinateSets(p.store, p.layer)
}

func (p Phong) TextureMatrix(k TextureKind) (linear.M3, error) {
	return PhongTextureMatrix(p.store, p.layer, k)
}

func (p Phong) CoordinateSet(k TextureKind) (uint32, error) {
	return PhongCoordinateSet(p.store, p.layer, k)
}
