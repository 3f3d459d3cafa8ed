// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package attr

import (
	"fmt"
	"sort"
	"unsafe"

	"github.com/google/uuid"

	"github.com/gviegas/materialscene/diag"
)

const storePrefix = "MaterialData"

// MaterialStore is a compact, sorted attribute store organized into
// named layers. See package doc and §4.4 of the design for the full
// contract; construction validates sort/uniqueness/monotonic-offset
// invariants so that every later lookup can assume them.
type MaterialStore struct {
	records []AttributeRecord
	// layers holds one-past-the-last index of every layer.
	// nil means a single implicit layer spanning all records.
	layers   []int
	types    MaterialTypes
	importer any
	debugID  string
}

// NewOwned builds a store taking ownership of records and layers.
// The input is sorted in place by name within each layer; duplicate
// names within a layer, an empty record, or an invalid layers table
// are precondition errors.
func NewOwned(records []AttributeRecord, layers []int, types MaterialTypes, importer any) (*MaterialStore, error) {
	const op = storePrefix + "::New"
	if err := checkNoEmpty(op, records); err != nil {
		return nil, err
	}
	if layers == nil {
		layers = []int{len(records)}
	}
	if err := validateLayerOffsets(op, layers, len(records)); err != nil {
		return nil, err
	}
	if err := sortAndDedupe(op, records, layers); err != nil {
		return nil, err
	}
	return &MaterialStore{records: records, layers: layers, types: types, importer: importer}, nil
}

// NewView builds a store over non-owned data: records and layers
// must already be sorted, unique per layer, and monotonic; the
// caller guarantees the backing arrays outlive the store. Violations
// are precondition errors and the input is never mutated.
func NewView(records []AttributeRecord, layers []int, types MaterialTypes, importer any) (*MaterialStore, error) {
	const op = storePrefix + "::New"
	if err := checkNoEmpty(op, records); err != nil {
		return nil, err
	}
	if layers == nil {
		layers = []int{len(records)}
	}
	if err := validateLayerOffsets(op, layers, len(records)); err != nil {
		return nil, err
	}
	if err := checkSortedUnique(op, records, layers); err != nil {
		return nil, err
	}
	return &MaterialStore{records: records, layers: layers, types: types, importer: importer}, nil
}

func checkNoEmpty(op string, records []AttributeRecord) error {
	for i := range records {
		if records[i].IsEmpty() {
			return diag.Report(op, diag.EmptyRecord, "")
		}
	}
	return nil
}

// validateLayerOffsets checks that layers is non-decreasing and that
// its last element equals total, per §4.4.
func validateLayerOffsets(op string, layers []int, total int) error {
	prev := 0
	for i, l := range layers {
		if l < prev {
			return diag.Report(op, diag.InvalidLayerRange, fmt.Sprintf(
				"invalid range (%d, %d) for layer %d with %d attributes in total", prev, l, i, total))
		}
		prev = l
	}
	if last := len(layers) - 1; last >= 0 && layers[last] != total {
		prev := 0
		if last > 0 {
			prev = layers[last-1]
		}
		return diag.Report(op, diag.InvalidLayerRange, fmt.Sprintf(
			"invalid range (%d, %d) for layer %d with %d attributes in total", prev, layers[last], last, total))
	}
	return nil
}

func sortAndDedupe(op string, records []AttributeRecord, layers []int) error {
	prevBound := 0
	for _, bound := range layers {
		seg := records[prevBound:bound]
		sort.Slice(seg, func(i, j int) bool { return seg[i].Name() < seg[j].Name() })
		for i := 1; i < len(seg); i++ {
			if seg[i].Name() == seg[i-1].Name() {
				return diag.Report(op, diag.DuplicateAttribute, seg[i].Name())
			}
		}
		prevBound = bound
	}
	return nil
}

func checkSortedUnique(op string, records []AttributeRecord, layers []int) error {
	prevBound := 0
	for _, bound := range layers {
		seg := records[prevBound:bound]
		for i := 1; i < len(seg); i++ {
			switch {
			case seg[i].Name() < seg[i-1].Name():
				return diag.Report(op, diag.NotSorted, seg[i].Name())
			case seg[i].Name() == seg[i-1].Name():
				return diag.Report(op, diag.DuplicateAttribute, seg[i].Name())
			}
		}
		prevBound = bound
	}
	return nil
}

// ReleaseAttributes returns ownership of the record buffer, leaving
// the layer table intact. After this call LayerCount is unaffected,
// every by-index attribute lookup fails with diag.IndexOutOfRange and
// every by-name lookup finds nothing.
func (m *MaterialStore) ReleaseAttributes() []AttributeRecord {
	r := m.records
	m.records = nil
	return r
}

// ReleaseLayers returns ownership of the layer offset table, leaving
// the record buffer intact. After this call LayerCount reverts to 1,
// as if no layer table had ever been given.
func (m *MaterialStore) ReleaseLayers() []int {
	l := m.layers
	m.layers = nil
	return l
}

// Types returns the bitset classifying this material.
func (m *MaterialStore) Types() MaterialTypes { return m.types }

// Importer returns the opaque importer state pointer. Ownership
// stays with the caller that supplied it at construction.
func (m *MaterialStore) Importer() any { return m.importer }

// DebugID lazily assigns and returns a correlation id for this store
// instance, for use by diagnostics when many stores import
// concurrently. It is not part of the store's identity or equality.
func (m *MaterialStore) DebugID() string {
	if m.debugID == "" {
		m.debugID = uuid.NewString()
	}
	return m.debugID
}

// LayerCount returns the number of layers; always >= 1.
func (m *MaterialStore) LayerCount() int {
	if m.layers == nil {
		return 1
	}
	return len(m.layers)
}

// layerBounds returns the [start, end) record range of layer i.
func (m *MaterialStore) layerBounds(op string, i int) (start, end int, err error) {
	n := m.LayerCount()
	if i < 0 || i >= n {
		return 0, 0, diag.Report(op, diag.IndexOutOfRange, fmt.Sprintf("layer %d of %d", i, n))
	}
	if m.layers == nil {
		return 0, len(m.records), nil
	}
	if i == 0 {
		return 0, m.layers[0], nil
	}
	return m.layers[i-1], m.layers[i], nil
}

// LayerNameAt returns the name of layer i. Layer 0 always has name
// "". For i >= 1, it is the string value of the layer's first
// record if that record is LayerName, else "".
func (m *MaterialStore) LayerNameAt(i int) (string, error) {
	const op = storePrefix + "::layer_name"
	start, end, err := m.layerBounds(op, i)
	if err != nil {
		return "", err
	}
	if i == 0 || start >= end {
		return "", nil
	}
	first := &m.records[start]
	if first.Name() != layerNameString {
		return "", nil
	}
	s, err := first.StringValue()
	if err != nil {
		return "", nil
	}
	return s, nil
}

// HasLayer reports whether any layer has the given name.
func (m *MaterialStore) HasLayer(name string) bool {
	n := m.LayerCount()
	for i := 0; i < n; i++ {
		if s, _ := m.LayerNameAt(i); s == name && name != "" {
			return true
		}
	}
	return false
}

// LayerID returns the index of the layer with the given name.
func (m *MaterialStore) LayerID(name string) (int, error) {
	const op = storePrefix + "::layer_id"
	n := m.LayerCount()
	for i := 0; i < n; i++ {
		if s, _ := m.LayerNameAt(i); s == name && name != "" {
			return i, nil
		}
	}
	return 0, diag.Report(op, diag.LayerNotFound, name)
}

// AttributeCount returns the number of attributes in layer i.
func (m *MaterialStore) AttributeCount(i int) (int, error) {
	const op = storePrefix + "::attribute_count"
	start, end, err := m.layerBounds(op, i)
	if err != nil {
		return 0, err
	}
	return end - start, nil
}

func (m *MaterialStore) indexAt(op string, layer, index int) (int, error) {
	start, end, err := m.layerBounds(op, layer)
	if err != nil {
		return 0, err
	}
	if end > len(m.records) {
		end = len(m.records)
	}
	if start > end || index < 0 || index >= end-start {
		return 0, diag.Report(op, diag.IndexOutOfRange, fmt.Sprintf("attribute %d of %d", index, end-start))
	}
	return start + index, nil
}

// AttributeNameAt returns the name of the attribute at (layer, index).
func (m *MaterialStore) AttributeNameAt(layer, index int) (string, error) {
	i, err := m.indexAt(storePrefix+"::attribute_name", layer, index)
	if err != nil {
		return "", err
	}
	return m.records[i].Name(), nil
}

// AttributeTypeAt returns the type of the attribute at (layer, index).
func (m *MaterialStore) AttributeTypeAt(layer, index int) (AttributeType, error) {
	i, err := m.indexAt(storePrefix+"::attribute_type", layer, index)
	if err != nil {
		return invalidType, err
	}
	return m.records[i].Type(), nil
}

// AttributeRawPtrAt returns a pointer to the value region of the
// attribute at (layer, index).
func (m *MaterialStore) AttributeRawPtrAt(layer, index int) (unsafe.Pointer, error) {
	i, err := m.indexAt(storePrefix+"::attribute_raw_ptr", layer, index)
	if err != nil {
		return nil, err
	}
	return m.records[i].RawPtr(), nil
}

// AttributeAt returns the typed value of the attribute at
// (layer, index).
func AttributeAt[T any](m *MaterialStore, layer, index int) (T, error) {
	var zero T
	i, err := m.indexAt(storePrefix+"::attribute", layer, index)
	if err != nil {
		return zero, err
	}
	return Value[T](&m.records[i])
}

// findByName performs a binary search for name within layer's range.
func (m *MaterialStore) findByName(op string, layer int, name string) (int, bool, error) {
	start, end, err := m.layerBounds(op, layer)
	if err != nil {
		return 0, false, err
	}
	if end > len(m.records) {
		end = len(m.records)
	}
	if start > end {
		start = end
	}
	seg := m.records[start:end]
	j := sort.Search(len(seg), func(i int) bool { return seg[i].Name() >= name })
	if j < len(seg) && seg[j].Name() == name {
		return start + j, true, nil
	}
	return 0, false, nil
}

// HasAttributeStr reports whether layer has an attribute named name.
func (m *MaterialStore) HasAttributeStr(layer int, name string) (bool, error) {
	_, ok, err := m.findByName(storePrefix+"::has_attribute", layer, name)
	return ok, err
}

// AttributeIDStr returns the (layer, index)-relative index of the
// attribute named name within layer.
func (m *MaterialStore) AttributeIDStr(layer int, name string) (int, error) {
	const op = storePrefix + "::attribute_id"
	start, _, err := m.layerBounds(op, layer)
	if err != nil {
		return 0, err
	}
	i, ok, err := m.findByName(op, layer, name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, diag.Report(op, diag.AttributeNotFound, name)
	}
	return i - start, nil
}

// AttributeTypeStr returns the type of the attribute named name
// within layer.
func (m *MaterialStore) AttributeTypeStr(layer int, name string) (AttributeType, error) {
	const op = storePrefix + "::attribute_type"
	i, ok, err := m.findByName(op, layer, name)
	if err != nil {
		return invalidType, err
	}
	if !ok {
		return invalidType, diag.Report(op, diag.AttributeNotFound, name)
	}
	return m.records[i].Type(), nil
}

// AttributeRawPtrStr returns a pointer to the value region of the
// attribute named name within layer.
func (m *MaterialStore) AttributeRawPtrStr(layer int, name string) (unsafe.Pointer, error) {
	const op = storePrefix + "::attribute_raw_ptr"
	i, ok, err := m.findByName(op, layer, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, diag.Report(op, diag.AttributeNotFound, name)
	}
	return m.records[i].RawPtr(), nil
}

// AttributeStr returns the typed value of the attribute named name
// within layer.
func AttributeStr[T any](m *MaterialStore, layer int, name string) (T, error) {
	var zero T
	const op = storePrefix + "::attribute"
	i, ok, err := m.findByName(op, layer, name)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, diag.Report(op, diag.AttributeNotFound, name)
	}
	return Value[T](&m.records[i])
}

// TryAttributeStr returns the typed value of the attribute named
// name within layer, if present. It never fails on a missing
// attribute (ok is false instead), but still fails on type mismatch.
func TryAttributeStr[T any](m *MaterialStore, layer int, name string) (value T, ok bool, err error) {
	const op = storePrefix + "::try_attribute"
	i, found, ferr := m.findByName(op, layer, name)
	if ferr != nil {
		return value, false, ferr
	}
	if !found {
		return value, false, nil
	}
	v, verr := Value[T](&m.records[i])
	if verr != nil {
		return value, false, verr
	}
	return v, true, nil
}

// AttributeOrStr returns the typed value of the attribute named name
// within layer, or def if it is absent. It still fails on type
// mismatch.
func AttributeOrStr[T any](m *MaterialStore, layer int, name string, def T) (T, error) {
	v, ok, err := TryAttributeStr[T](m, layer, name)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

// HasAttribute reports whether layer has the given well-known
// attribute.
func (m *MaterialStore) HasAttribute(layer int, name AttributeName) (bool, error) {
	const op = storePrefix + "::has_attribute"
	canon, _, err := Canonical(op, name)
	if err != nil {
		return false, err
	}
	return m.HasAttributeStr(layer, canon)
}

// AttributeID returns the index of the given well-known attribute
// within layer.
func (m *MaterialStore) AttributeID(layer int, name AttributeName) (int, error) {
	const op = storePrefix + "::attribute_id"
	canon, _, err := Canonical(op, name)
	if err != nil {
		return 0, err
	}
	return m.AttributeIDStr(layer, canon)
}

// AttributeType returns the type of the given well-known attribute
// within layer.
func (m *MaterialStore) AttributeType(layer int, name AttributeName) (AttributeType, error) {
	const op = storePrefix + "::attribute_type"
	canon, _, err := Canonical(op, name)
	if err != nil {
		return invalidType, err
	}
	return m.AttributeTypeStr(layer, canon)
}

// AttributeRawPtr returns a pointer to the value region of the given
// well-known attribute within layer.
func (m *MaterialStore) AttributeRawPtr(layer int, name AttributeName) (unsafe.Pointer, error) {
	const op = storePrefix + "::attribute_raw_ptr"
	canon, _, err := Canonical(op, name)
	if err != nil {
		return nil, err
	}
	return m.AttributeRawPtrStr(layer, canon)
}

// Attribute returns the typed value of the given well-known
// attribute within layer.
func Attribute[T any](m *MaterialStore, layer int, name AttributeName) (T, error) {
	var zero T
	const op = storePrefix + "::attribute"
	canon, _, err := Canonical(op, name)
	if err != nil {
		return zero, err
	}
	return AttributeStr[T](m, layer, canon)
}

// TryAttribute returns the typed value of the given well-known
// attribute within layer, if present.
func TryAttribute[T any](m *MaterialStore, layer int, name AttributeName) (value T, ok bool, err error) {
	const op = storePrefix + "::try_attribute"
	canon, _, cerr := Canonical(op, name)
	if cerr != nil {
		return value, false, cerr
	}
	return TryAttributeStr[T](m, layer, canon)
}

// AttributeOr returns the typed value of the given well-known
// attribute within layer, or def if it is absent.
func AttributeOr[T any](m *MaterialStore, layer int, name AttributeName, def T) (T, error) {
	const op = storePrefix + "::attribute_or"
	canon, _, err := Canonical(op, name)
	if err != nil {
		return def, err
	}
	return AttributeOrStr[T](m, layer, canon, def)
}

// DebugString renders the store's layers and attribute names, for
// use in tests and manual inspection.
func (m *MaterialStore) DebugString() string {
	s := fmt.Sprintf("MaterialData{types: %s, layers: %d}\n", m.types, m.LayerCount())
	n := m.LayerCount()
	for i := 0; i < n; i++ {
		name, _ := m.LayerNameAt(i)
		cnt, _ := m.AttributeCount(i)
		s += fmt.Sprintf("  layer %d %q (%d attributes):\n", i, name, cnt)
		for j := 0; j < cnt; j++ {
			an, _ := m.AttributeNameAt(i, j)
			at, _ := m.AttributeTypeAt(i, j)
			s += fmt.Sprintf("    %s: %s\n", an, at)
		}
	}
	return s
}
