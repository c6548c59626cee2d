package config

import (
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func testDocument(t *testing.T) map[string]any {
	t.Helper()

	raw := `
app:
  debug: true
  name: x
  workers: 4
  ratio: 0.5
  tags:
    - alpha
    - beta
database:
  host: localhost
  password: null
`
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("parse test document: %v", err)
	}
	return doc
}

func TestResolveReturnsStoredValues(t *testing.T) {
	t.Parallel()

	doc := testDocument(t)

	testCases := []struct {
		path string
		want any
	}{
		{"app.debug", true},
		{"app.name", "x"},
		{"app.workers", 4},
		{"app.ratio", 0.5},
		{"database.host", "localhost"},
	}

	for _, tc := range testCases {
		if got := Resolve(doc, tc.path, nil); got != tc.want {
			t.Fatalf("Resolve(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestResolveReturnsNestedStructures(t *testing.T) {
	t.Parallel()

	doc := testDocument(t)

	got := Resolve(doc, "app.tags", nil)
	if want := []any{"alpha", "beta"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected sequence %v, got %v", want, got)
	}

	sub, ok := Resolve(doc, "app", nil).(map[string]any)
	if !ok {
		t.Fatalf("expected nested mapping, got %T", Resolve(doc, "app", nil))
	}
	if sub["name"] != "x" {
		t.Fatalf("expected nested mapping to round-trip, got %v", sub)
	}
}

func TestResolveMissingKeyReturnsDefault(t *testing.T) {
	t.Parallel()

	doc := testDocument(t)

	if got := Resolve(doc, "app.missing", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %v", got)
	}
	if got := Resolve(doc, "missing.entirely", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %v", got)
	}
	if got := Resolve(doc, "app.missing", nil); got != nil {
		t.Fatalf("expected nil sentinel without a default, got %v", got)
	}
}

func TestResolveNonMappingMidPathIsAMiss(t *testing.T) {
	t.Parallel()

	doc := testDocument(t)

	// app.name is the string "x"; descending through it is a miss, not an error
	if got := Resolve(doc, "app.name.sub", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %v", got)
	}
	if got := Resolve(doc, "app.tags.0", "fallback"); got != "fallback" {
		t.Fatalf("expected sequences to be opaque, got %v", got)
	}
}

func TestResolveNullCollapsesToDefault(t *testing.T) {
	t.Parallel()

	doc := testDocument(t)

	// an explicit null in the document cannot be observed; only its default
	if got := Resolve(doc, "database.password", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for explicit null, got %v", got)
	}
	if got := Resolve(doc, "database.password", nil); got != nil {
		t.Fatalf("expected nil for explicit null, got %v", got)
	}
}

func TestResolveNilDocumentMisses(t *testing.T) {
	t.Parallel()

	if got := Resolve(nil, "a.b", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback on nil document, got %v", got)
	}
}

func TestResolveEndToEndScenario(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"app": map[string]any{
			"debug": true,
			"name":  "x",
		},
	}

	if got := Resolve(doc, "app.debug", nil); got != true {
		t.Fatalf("expected true, got %v", got)
	}
	if got := Resolve(doc, "app.missing", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %v", got)
	}
	if got := Resolve(doc, "app.name.sub", nil); got != nil {
		t.Fatalf("expected nil sentinel, got %v", got)
	}
}
