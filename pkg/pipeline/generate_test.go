package pipeline

import (
	"context"
	"slices"
	"testing"

	"github.com/matzehuels/hexwalk/pkg/plot"
	"github.com/matzehuels/hexwalk/pkg/walk"
)

func generate(t *testing.T, opts Options) Drawing {
	t.Helper()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	d, err := Generate(context.Background(), opts)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	return d
}

func TestGenerateDeterministic(t *testing.T) {
	a := generate(t, Options{Seed: 7})
	b := generate(t, Options{Seed: 7})
	if !slices.Equal(a.Document.Instructions, b.Document.Instructions) {
		t.Error("same seed should produce the same program")
	}
	if a.Document.ID == b.Document.ID {
		t.Error("every drawing should get its own ID")
	}

	c := generate(t, Options{Seed: 8})
	if slices.Equal(a.Document.Instructions, c.Document.Instructions) {
		t.Error("different seeds should produce different programs")
	}
}

func TestGenerateDocument(t *testing.T) {
	d := generate(t, Options{Seed: 3, Number: 12})
	doc := d.Document

	if doc.Seed != 3 || doc.Number != 12 || doc.Scale != DefaultScale {
		t.Errorf("doc seed/number/scale = %d/%d/%v", doc.Seed, doc.Number, doc.Scale)
	}
	if doc.Canvas.X != DefaultCanvasWidth || doc.Canvas.Y != DefaultCanvasHeight {
		t.Errorf("doc canvas = %v", doc.Canvas)
	}
	if doc.Parameters != DefaultParameters {
		t.Errorf("doc parameters = %+v", doc.Parameters)
	}
	if d.Grid.Len() != DefaultColumns*DefaultRows {
		t.Errorf("grid cells = %d", d.Grid.Len())
	}
	if len(doc.Instructions) == 0 || doc.Instructions[0].Op != plot.OpMoveTo {
		t.Error("program should start with a move")
	}

	// The centered grid stays inside the canvas.
	b := plot.Summarize(doc.Instructions).Bounds
	size := doc.Size()
	if b.Min.X < 0 || b.Min.Y < 0 || b.Max.X > size.X || b.Max.Y > size.Y {
		t.Errorf("bounds %v..%v outside canvas %v", b.Min, b.Max, size)
	}
}

func TestGenerateSignature(t *testing.T) {
	plain := generate(t, Options{Seed: 5})
	signed := generate(t, Options{Seed: 5, Signature: "HEXWALK 001"})

	n := len(plain.Document.Instructions)
	if len(signed.Document.Instructions) <= n {
		t.Fatalf("signature added no instructions")
	}
	if !slices.Equal(signed.Document.Instructions[:n], plain.Document.Instructions) {
		t.Error("signature should be appended after the walks")
	}

	// The signature sits in the bottom right corner.
	sig := plot.Summarize(signed.Document.Instructions[n:]).Bounds
	size := signed.Document.Size()
	if sig.Min.X < size.X/2 || sig.Max.Y > size.Y {
		t.Errorf("signature bounds %v..%v not bottom right of %v", sig.Min, sig.Max, size)
	}
}

func TestGenerateSingleCell(t *testing.T) {
	params := walk.Parameters{SmoothingPoints: 4, SmoothingSharpness: 0.9, KeepFraction: 1}

	bare := generate(t, Options{Columns: 1, Rows: 1, Parameters: params})
	if got := bare.Document.Instructions; len(got) != 1 || got[0].Op != plot.OpMoveTo {
		t.Errorf("single-cell walk = %v, want one move", got)
	}

	marked := generate(t, Options{Columns: 1, Rows: 1, Parameters: params, Markers: true})
	if s := plot.Summarize(marked.Document.Instructions); s.Lines != markerSegments {
		t.Errorf("marker lines = %d, want %d", s.Lines, markerSegments)
	}

	outlined := generate(t, Options{Columns: 1, Rows: 1, Parameters: params, Outline: true})
	if s := plot.Summarize(outlined.Document.Instructions); s.Lines != 6 {
		t.Errorf("outline lines = %d, want 6", s.Lines)
	}
}

func TestGenerateOutlineSharesEdges(t *testing.T) {
	// Keep no walks so only the outline is drawn.
	d := generate(t, Options{Columns: 3, Rows: 2, Outline: true, Parameters: walk.Parameters{SmoothingSharpness: 0.5}})
	all := 6 * d.Grid.Len()
	lines := plot.Summarize(d.Document.Instructions).Lines
	if lines > all || lines < all-d.Grid.EdgeCount() {
		t.Errorf("outline lines = %d, want between %d and %d", lines, all-d.Grid.EdgeCount(), all)
	}
}

func TestGenerateCancelled(t *testing.T) {
	opts := Options{}
	_ = opts.ValidateAndSetDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Generate(ctx, opts); err == nil {
		t.Error("Generate(cancelled) error = nil")
	}
}
