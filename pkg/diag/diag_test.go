package diag

import "testing"

func TestAddRecordsNonLayerDiagnostic(t *testing.T) {
	c := NewCollector()
	c.Add(ZeroAreaFacet, "facet %d has zero area", 3)

	if c.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", c.Len())
	}
	got := c.Items()[0]
	if got.Kind != ZeroAreaFacet || got.Layer != -1 {
		t.Fatalf("got %+v, want Kind=ZeroAreaFacet Layer=-1", got)
	}
	if got.Message != "facet 3 has zero area" {
		t.Fatalf("Message = %q", got.Message)
	}
}

func TestAddLayerRecordsLayerIndex(t *testing.T) {
	c := NewCollector()
	c.AddLayer(IncompletePolygon, 5, "dangling path with %d points", 7)

	got := c.Items()[0]
	if got.Layer != 5 {
		t.Fatalf("Layer = %d, want 5", got.Layer)
	}
	want := "[IncompletePolygon] layer 5: dangling path with 7 points"
	if got.String() != want {
		t.Fatalf("String() = %q, want %q", got.String(), want)
	}
}

func TestDiagnosticStringWithoutLayer(t *testing.T) {
	d := Diagnostic{Kind: UnknownConfigKey, Layer: -1, Message: "foo is not a known option"}
	want := "[UnknownConfigKey] foo is not a known option"
	if got := d.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestExtendAppendsInOrder(t *testing.T) {
	a := NewCollector()
	a.Add(StlMalformedLine, "first")

	b := NewCollector()
	b.Add(StlMalformedLine, "second")
	b.AddLayer(NonManifold, 1, "third")

	a.Extend(b.Items())
	if a.Len() != 3 {
		t.Fatalf("expected 3 diagnostics after Extend, got %d", a.Len())
	}
	if a.Items()[1].Message != "second" || a.Items()[2].Message != "third" {
		t.Fatalf("Extend did not preserve order: %+v", a.Items())
	}
}

func TestNewCollectorStartsEmpty(t *testing.T) {
	c := NewCollector()
	if c.Len() != 0 || len(c.Items()) != 0 {
		t.Fatalf("a fresh collector should have no diagnostics")
	}
}
