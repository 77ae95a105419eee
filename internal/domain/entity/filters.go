package entity

import (
	"slices"
	"strings"
)

// Facet identifies one filterable carpet attribute.
type Facet string

const (
	FacetGeometry   Facet = "geometry"
	FacetSize       Facet = "size"
	FacetColor      Facet = "color"
	FacetStyle      Facet = "style"
	FacetCollection Facet = "collection"
)

// AllFacets lists the facets in search-menu order.
var AllFacets = []Facet{FacetGeometry, FacetSize, FacetColor, FacetStyle, FacetCollection}

// Valid reports whether f names a known facet.
func (f Facet) Valid() bool {
	_, ok := facetGetters[f]
	return ok
}

// Title returns the Russian menu caption of the facet.
func (f Facet) Title() string {
	switch f {
	case FacetGeometry:
		return "Геометрия"
	case FacetSize:
		return "Размер"
	case FacetColor:
		return "Цвет"
	case FacetStyle:
		return "Стиль"
	case FacetCollection:
		return "Коллекция"
	}
	return string(f)
}

// CarpetFilters holds the selected values per facet for one search session.
// A nil slice means the facet is unconstrained. The struct lives in
// conversation state only and is never persisted.
type CarpetFilters struct {
	Geometry   []string `json:"geometry,omitempty"`
	Size       []string `json:"size,omitempty"`
	Color      []string `json:"color,omitempty"`
	Style      []string `json:"style,omitempty"`
	Collection []string `json:"collection,omitempty"`
}

// Facet access goes through explicit dispatch tables rather than any kind
// of name-based field lookup, so an unknown facet is a checkable condition.
var facetGetters = map[Facet]func(*CarpetFilters) []string{
	FacetGeometry:   func(f *CarpetFilters) []string { return f.Geometry },
	FacetSize:       func(f *CarpetFilters) []string { return f.Size },
	FacetColor:      func(f *CarpetFilters) []string { return f.Color },
	FacetStyle:      func(f *CarpetFilters) []string { return f.Style },
	FacetCollection: func(f *CarpetFilters) []string { return f.Collection },
}

var facetSetters = map[Facet]func(*CarpetFilters, []string){
	FacetGeometry:   func(f *CarpetFilters, v []string) { f.Geometry = v },
	FacetSize:       func(f *CarpetFilters, v []string) { f.Size = v },
	FacetColor:      func(f *CarpetFilters, v []string) { f.Color = v },
	FacetStyle:      func(f *CarpetFilters, v []string) { f.Style = v },
	FacetCollection: func(f *CarpetFilters, v []string) { f.Collection = v },
}

// Values returns the selected values for the facet and whether the facet
// is known.
func (f *CarpetFilters) Values(facet Facet) ([]string, bool) {
	get, ok := facetGetters[facet]
	if !ok {
		return nil, false
	}
	return get(f), true
}

// SetValues replaces the facet's selection. Returns false for an unknown
// facet.
func (f *CarpetFilters) SetValues(facet Facet, values []string) bool {
	set, ok := facetSetters[facet]
	if !ok {
		return false
	}
	set(f, values)
	return true
}

// Toggle flips one value in or out of the facet's selection. Returns false
// for an unknown facet.
func (f *CarpetFilters) Toggle(facet Facet, value string) bool {
	current, ok := f.Values(facet)
	if !ok {
		return false
	}
	if i := slices.Index(current, value); i >= 0 {
		return f.SetValues(facet, slices.Delete(slices.Clone(current), i, i+1))
	}
	return f.SetValues(facet, append(slices.Clone(current), value))
}

// Selected reports whether the value is currently selected in the facet.
func (f *CarpetFilters) Selected(facet Facet, value string) bool {
	current, ok := f.Values(facet)
	return ok && slices.Contains(current, value)
}

// Clear drops every selection of one facet. Returns false for an unknown
// facet.
func (f *CarpetFilters) Clear(facet Facet) bool {
	return f.SetValues(facet, nil)
}

// ClearAll resets the whole filter state.
func (f *CarpetFilters) ClearAll() {
	*f = CarpetFilters{}
}

// IsEmpty reports whether no facet has a selection.
func (f *CarpetFilters) IsEmpty() bool {
	return f.ActiveFacets() == 0
}

// ActiveFacets counts facets with at least one selected value.
func (f *CarpetFilters) ActiveFacets() int {
	n := 0
	for _, facet := range AllFacets {
		if values, _ := f.Values(facet); len(values) > 0 {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the filter state.
func (f *CarpetFilters) Clone() *CarpetFilters {
	return &CarpetFilters{
		Geometry:   slices.Clone(f.Geometry),
		Size:       slices.Clone(f.Size),
		Color:      slices.Clone(f.Color),
		Style:      slices.Clone(f.Style),
		Collection: slices.Clone(f.Collection),
	}
}

// WithoutFacet returns a copy of the filter state with one facet
// unconstrained. The filter engine uses it to exclude the facet being
// viewed from its own candidate set.
func (f *CarpetFilters) WithoutFacet(facet Facet) *CarpetFilters {
	clone := f.Clone()
	clone.Clear(facet)
	return clone
}

// Summary renders the active selections as "Геометрия: Круг, Овал" lines
// for the search menu header. Empty when nothing is selected.
func (f *CarpetFilters) Summary() string {
	var lines []string
	for _, facet := range AllFacets {
		values, _ := f.Values(facet)
		if len(values) == 0 {
			continue
		}
		lines = append(lines, facet.Title()+": "+strings.Join(values, ", "))
	}
	return strings.Join(lines, "\n")
}

// FacetOption is one selectable value of a facet with its match count
// under the other active filters.
type FacetOption struct {
	Value    string `json:"value"`
	Count    int64  `json:"count"`
	Selected bool   `json:"selected"`
}

// FilterResults is the filter engine's answer for one facet view.
type FilterResults struct {
	Facet        Facet         `json:"facet"`
	Options      []FacetOption `json:"options"`
	TotalCarpets int64         `json:"total_carpets"`
}
