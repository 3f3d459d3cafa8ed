// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package attr

import (
	"strings"
	"testing"
	"unsafe"

	"github.com/gviegas/materialscene/linear"
)

func TestRecordSizeIs64(t *testing.T) {
	if unsafe.Sizeof(AttributeRecord{}) != 64 {
		t.Fatalf("AttributeRecord size = %d, want 64", unsafe.Sizeof(AttributeRecord{}))
	}
}

func TestNewRecordRoundTrip(t *testing.T) {
	r, err := NewRecord(Shininess, float32(32))
	if err != nil {
		t.Fatal(err)
	}
	if r.IsEmpty() {
		t.Fatal("record must not be empty")
	}
	if r.Name() != "Shininess" {
		t.Fatalf("Name() = %q, want %q", r.Name(), "Shininess")
	}
	if r.Type() != Float {
		t.Fatalf("Type() = %s, want %s", r.Type(), Float)
	}
	v, err := Value[float32](r)
	if err != nil {
		t.Fatal(err)
	}
	if v != 32 {
		t.Fatalf("Value() = %v, want 32", v)
	}
}

func TestNewRecordTypeMismatch(t *testing.T) {
	if _, err := NewRecord(Shininess, true); err == nil {
		t.Fatal("want error for mismatched value type")
	}
}

func TestNewRecordNamedRejectsDollarPrefix(t *testing.T) {
	if _, err := NewRecordNamed("$Bogus", float32(1)); err == nil {
		t.Fatal("want error for name starting with '$'")
	}
}

func TestNewRecordNamedUserAttribute(t *testing.T) {
	r, err := NewRecordNamed("highlightColor", linear.V3{1, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	v, err := Value[linear.V3](r)
	if err != nil {
		t.Fatal(err)
	}
	if v != (linear.V3{1, 0, 0}) {
		t.Fatalf("Value() = %v, want {1 0 0}", v)
	}
}

func TestValueMismatchedType(t *testing.T) {
	r, err := NewRecord(AlphaBlend, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Value[float32](r); err == nil {
		t.Fatal("want error reading Bool record as float32")
	}
}

func TestStringValueRoundTrip(t *testing.T) {
	r, err := NewRecord(LayerName, "clearcoat")
	if err != nil {
		t.Fatal(err)
	}
	s, err := r.StringValue()
	if err != nil {
		t.Fatal(err)
	}
	if s != "clearcoat" {
		t.Fatalf("StringValue() = %q, want %q", s, "clearcoat")
	}
	v, err := Value[string](r)
	if err != nil {
		t.Fatal(err)
	}
	if v != "clearcoat" {
		t.Fatalf("Value() = %q, want %q", v, "clearcoat")
	}
}

func TestStringValueInteriorNUL(t *testing.T) {
	want := "clear\x00coat"
	r, err := NewRecordNamed("finish", want)
	if err != nil {
		t.Fatal(err)
	}
	s, err := r.StringValue()
	if err != nil {
		t.Fatal(err)
	}
	if s != want {
		t.Fatalf("StringValue() = %q, want %q", s, want)
	}
	v, err := Value[string](r)
	if err != nil {
		t.Fatal(err)
	}
	if v != want {
		t.Fatalf("Value() = %q, want %q", v, want)
	}
	// The byte immediately past the string data (the trailing NUL
	// packString leaves in place) must be zero, not part of the value.
	off := r.valueOffset() + 1 + len(want)
	if r.buf[off] != 0 {
		t.Fatalf("byte past string value = 0x%02X, want 0", r.buf[off])
	}
}

func TestNewRecordPtrRoundTrip(t *testing.T) {
	type texture struct{ id int }
	tex := &texture{id: 7}
	r, err := NewRecordPtr(DiffuseTexture, tex)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Value[*texture](r)
	if err != nil {
		t.Fatal(err)
	}
	if got != tex {
		t.Fatalf("Value() = %p, want %p", got, tex)
	}
}

func TestNewRecordMutPtrTypeMismatch(t *testing.T) {
	x := 1
	if _, err := NewRecordMutPtr(DiffuseTexture, &x); err == nil {
		t.Fatal("want error: DiffuseTexture requires Pointer, not MutablePointer")
	}
}

func TestRecordTooLarge(t *testing.T) {
	name := strings.Repeat("x", maxSpan)
	if _, err := NewRecordNamed(name, float32(1)); err == nil {
		t.Fatal("want RecordTooLarge for an oversized name")
	}
}
