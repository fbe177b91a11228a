// Package diag collects the non-fatal diagnostics every pipeline
// stage can raise: StlMalformedLine, ZeroAreaFacet,
// NonManifold, IncompletePolygon, ConfigOutOfRange,
// UnknownConfigKey, WrongConfigType. None of these abort the
// pipeline; they accumulate so the CLI's --verbose flag can print
// them from one place, the way cmd/trophy/main.go's runInfo prints a
// single block of status lines rather than scattering fmt.Printf
// calls across loaders.
package diag

import "fmt"

// Kind enumerates the non-fatal diagnostic categories.
type Kind string

const (
	StlMalformedLine  Kind = "StlMalformedLine"
	ZeroAreaFacet     Kind = "ZeroAreaFacet"
	NonManifold       Kind = "NonManifold"
	DegenerateNormal  Kind = "DegenerateNormal"
	IncompletePolygon Kind = "IncompletePolygon"
	ConfigOutOfRange  Kind = "ConfigOutOfRange"
	UnknownConfigKey  Kind = "UnknownConfigKey"
	WrongConfigType   Kind = "WrongConfigType"
	EmptyGeometry     Kind = "EmptyGeometry"
)

// Diagnostic is one non-fatal issue raised during slicing.
type Diagnostic struct {
	Kind    Kind
	Layer   int // -1 if not layer-specific
	Message string
}

func (d Diagnostic) String() string {
	if d.Layer >= 0 {
		return fmt.Sprintf("[%s] layer %d: %s", d.Kind, d.Layer, d.Message)
	}
	return fmt.Sprintf("[%s] %s", d.Kind, d.Message)
}

// Collector accumulates diagnostics across pipeline stages.
type Collector struct {
	items []Diagnostic
}

// NewCollector creates an empty diagnostic collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records a diagnostic not tied to a specific layer.
func (c *Collector) Add(kind Kind, format string, args ...any) {
	c.items = append(c.items, Diagnostic{Kind: kind, Layer: -1, Message: fmt.Sprintf(format, args...)})
}

// AddLayer records a diagnostic tied to layer index l.
func (c *Collector) AddLayer(kind Kind, l int, format string, args ...any) {
	c.items = append(c.items, Diagnostic{Kind: kind, Layer: l, Message: fmt.Sprintf(format, args...)})
}

// Items returns every diagnostic recorded so far, in order.
func (c *Collector) Items() []Diagnostic {
	return c.items
}

// Len reports how many diagnostics have been recorded.
func (c *Collector) Len() int {
	return len(c.items)
}

// Extend appends every diagnostic in items to c, preserving order.
func (c *Collector) Extend(items []Diagnostic) {
	c.items = append(c.items, items...)
}
