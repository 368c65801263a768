package cli

import (
	"context"
	"image"
	"io"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/hexwalk/pkg/archive"
	"github.com/matzehuels/hexwalk/pkg/config"
	"github.com/matzehuels/hexwalk/pkg/pipeline"
	"github.com/matzehuels/hexwalk/pkg/plot"
)

func newTestStudio(t *testing.T) StudioModel {
	t.Helper()
	cfg := config.Default()
	cfg.Grid.Columns, cfg.Grid.Rows = 3, 3
	cfg.Output.Dir = t.TempDir()
	cfg.Preview.Batch = 10

	c := New(io.Discard, LogInfo)
	opts, err := c.pipelineOptions(cfg, 0)
	if err != nil {
		t.Fatal(err)
	}
	runner := pipeline.NewRunner(nil, nil, log.New(io.Discard))
	exp := &exporter{cfg: cfg, runner: runner, store: archive.NewMemory()}
	m := newStudioModel(context.Background(), cfg, opts, exp)
	m.Seed = 7
	m.newSeed = func() uint64 { return 8 }
	return m
}

// signedInstructions generates the studio's current seed with signature sig.
func signedInstructions(t *testing.T, m StudioModel, sig string) []plot.Instruction {
	t.Helper()
	opts := m.opts
	opts.Seed = m.Seed
	opts.Signature = sig
	doc, err := m.runner.Generate(context.Background(), opts)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	return doc.Instructions
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m StudioModel, msg tea.Msg) (StudioModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(StudioModel), cmd
}

func TestStudioGenerate(t *testing.T) {
	m := newTestStudio(t)
	if m.pointsPerFrame != 10 || m.interval <= 0 {
		t.Fatalf("pointsPerFrame=%d interval=%v", m.pointsPerFrame, m.interval)
	}

	m, _ = update(t, m, m.generate(m.Seed)())
	if m.Err != nil {
		t.Fatalf("generate error: %v", m.Err)
	}
	if m.Busy || m.Doc.ID == "" || m.Doc.Seed != 7 || m.total == 0 {
		t.Fatalf("after generate: busy=%v id=%q seed=%d total=%d", m.Busy, m.Doc.ID, m.Doc.Seed, m.total)
	}
	if !slices.Equal(m.Doc.Instructions, signedInstructions(t, m, "HEXWALK 001")) {
		t.Error("drawing is not signed with the next export number")
	}
	if m.Frame != restartFrame {
		t.Errorf("Frame = %d, want %d", m.Frame, restartFrame)
	}
}

func TestStudioKeys(t *testing.T) {
	m := newTestStudio(t)
	m, _ = update(t, m, m.generate(m.Seed)())

	m.Frame = 5
	m, _ = update(t, m, key("s"))
	if m.Frame != restartFrame {
		t.Errorf("s: Frame = %d, want %d", m.Frame, restartFrame)
	}

	m, cmd := update(t, m, key("r"))
	if !m.Busy || m.Seed != 8 || cmd == nil {
		t.Fatalf("r: busy=%v seed=%d cmd=%v", m.Busy, m.Seed, cmd)
	}
	// A second press while busy is ignored.
	if _, cmd := update(t, m, key("r")); cmd != nil {
		t.Error("r while busy should be ignored")
	}
	m, _ = update(t, m, cmd())
	if m.Doc.Seed != 8 {
		t.Errorf("regenerated seed = %d, want 8", m.Doc.Seed)
	}

	_, cmd = update(t, m, key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestStudioTick(t *testing.T) {
	m := newTestStudio(t)
	m, _ = update(t, m, m.generate(m.Seed)())

	m, cmd := update(t, m, tickMsg{})
	if m.Frame != restartFrame+1 || cmd == nil {
		t.Errorf("tick: Frame = %d, cmd = %v", m.Frame, cmd)
	}

	// The counter stops once every point is visible.
	m.Frame = m.total/m.pointsPerFrame + 1
	frame := m.Frame
	m, _ = update(t, m, tickMsg{})
	if m.Frame != frame {
		t.Errorf("Frame advanced past the end: %d", m.Frame)
	}
	if !strings.Contains(m.progressLine(), "points") {
		t.Errorf("progress line = %q", m.progressLine())
	}
}

func TestStudioExport(t *testing.T) {
	m := newTestStudio(t)
	m, _ = update(t, m, m.generate(m.Seed)())

	m, cmd := update(t, m, key("p"))
	if !m.Busy || cmd == nil {
		t.Fatal("p should start an export")
	}
	m, cmd = update(t, m, cmd())
	if m.Err != nil {
		t.Fatalf("export error: %v", m.Err)
	}
	if !strings.Contains(m.Status, "HEXWALK 001") {
		t.Errorf("status = %q", m.Status)
	}

	// The studio regenerates so the next signature is shown.
	m, _ = update(t, m, cmd())
	if !slices.Equal(m.Doc.Instructions, signedInstructions(t, m, "HEXWALK 002")) {
		t.Error("drawing after export is not signed with the following number")
	}
}

func TestStudioView(t *testing.T) {
	m := newTestStudio(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 30})
	m, _ = update(t, m, m.generate(m.Seed)())
	m.Frame = m.total

	view := m.View()
	for _, want := range []string{"hexwalk studio", "seed 7", "regenerate"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestBraille(t *testing.T) {
	mask := image.NewAlpha(image.Rect(0, 0, 4, 8))
	mask.Pix[mask.PixOffset(0, 0)] = 0xff // top left dot of the first cell
	mask.Pix[mask.PixOffset(3, 3)] = 0xff // bottom right of the upper row's second cell
	mask.Pix[mask.PixOffset(1, 1)] = 0x20 // below the threshold

	got := braille(mask, 2, 2)
	if got != "⠁⢀" {
		t.Errorf("braille() = %q, want %q", got, "⠁⢀")
	}

	if got := braille(image.NewAlpha(image.Rect(0, 0, 4, 8)), 2, 2); got != "" {
		t.Errorf("blank mask = %q, want empty", got)
	}
}
