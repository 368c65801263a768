package cli

import (
	"context"
	"fmt"
	"image"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/hexwalk/internal/preview"
	"github.com/matzehuels/hexwalk/pkg/glyph"
	"github.com/matzehuels/hexwalk/pkg/pipeline"
	"github.com/matzehuels/hexwalk/pkg/plot"
	"github.com/matzehuels/hexwalk/pkg/sink"
)

// restartFrame is where the animation counter restarts; the negative part
// holds an empty canvas for a moment before drawing.
const restartFrame = -20

var (
	studioKeyStyle  = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	studioHelpStyle = lipgloss.NewStyle().Foreground(colorDim)
	studioInkStyle  = lipgloss.NewStyle().Foreground(colorWhite)
)

// =============================================================================
// StudioModel - interactive generate / preview / export loop
// =============================================================================

type (
	generatedMsg struct {
		doc sink.Document
		err error
	}
	exportedMsg struct {
		out *exportResult
		err error
	}
	tickMsg time.Time
)

// StudioModel is the bubbletea model of the studio: it shows the current
// drawing being plotted in the terminal and regenerates or exports it on
// key presses.
type StudioModel struct {
	ctx      context.Context
	opts     pipeline.Options // base options; seed and signature are set per drawing
	runner   *pipeline.Runner
	exporter *exporter
	server   *preview.Server // optional browser preview kept in sync
	newSeed  func() uint64

	// pointsPerFrame drawn points are revealed per tick.
	pointsPerFrame int
	interval       time.Duration

	Seed   uint64
	Doc    sink.Document
	Frame  int
	Busy   bool
	Status string
	Err    error

	total  int // drawn points of Doc
	width  int
	height int
}

// Init generates the first drawing and starts the animation clock.
func (m StudioModel) Init() tea.Cmd {
	return tea.Batch(m.generate(m.Seed), m.tick())
}

func (m StudioModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if m.Busy {
				return m, nil
			}
			m.Seed = m.newSeed()
			m.Busy = true
			m.Status = fmt.Sprintf("generating seed %d", m.Seed)
			return m, m.generate(m.Seed)
		case "p":
			if m.Busy || m.Doc.ID == "" {
				return m, nil
			}
			m.Busy = true
			m.Status = "exporting"
			return m, m.export(m.Seed)
		case "s":
			m.Frame = restartFrame
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tickMsg:
		if m.Frame*m.pointsPerFrame <= m.total {
			m.Frame++
		}
		return m, m.tick()
	case generatedMsg:
		m.Busy = false
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Err = nil
		m.Doc = msg.doc
		m.total = plot.Summarize(msg.doc.Instructions).Lines
		m.Frame = restartFrame
		m.Status = fmt.Sprintf("seed %d", m.Seed)
		if m.server != nil {
			m.server.SetDocument(msg.doc)
		}
	case exportedMsg:
		m.Busy = false
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Err = nil
		m.Status = fmt.Sprintf("exported %s → %s", msg.out.Record.Signature, strings.Join(msg.out.Record.Files, ", "))
		// The next export has a new number, so the signature changes.
		m.Busy = true
		return m, m.generate(m.Seed)
	}
	return m, nil
}

func (m StudioModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("hexwalk studio"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(m.progressLine()))
	b.WriteString("\n\n")

	if m.Doc.ID != "" {
		b.WriteString(studioInkStyle.Render(m.canvas()))
		b.WriteString("\n")
	}

	if m.Err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.Err.Error() + "\n")
	} else if m.Status != "" {
		b.WriteString(styleIconInfo.Render(iconInfo) + " " + m.Status + "\n")
	}

	help := []string{"r regenerate", "p export", "s restart", "q quit"}
	for i, h := range help {
		key, rest, _ := strings.Cut(h, " ")
		help[i] = studioKeyStyle.Render(key) + " " + studioHelpStyle.Render(rest)
	}
	b.WriteString(strings.Join(help, "  "))
	return b.String()
}

func (m StudioModel) progressLine() string {
	shown := min(max(m.Frame, 0)*m.pointsPerFrame, m.total)
	return fmt.Sprintf("%d / %d points · %d instructions", shown, m.total, len(m.Doc.Instructions))
}

// canvas draws the visible prefix of the drawing as braille characters.
func (m StudioModel) canvas() string {
	cols := max(m.width-2, 40)
	rows := max(m.height-8, 10)
	instrs := plot.PrefixPoints(m.Doc.Instructions, max(m.Frame, 0)*m.pointsPerFrame)
	mask := sink.Rasterize(m.Doc, cols*2, rows*4, 1, instrs)
	return braille(mask, cols, rows)
}

func (m StudioModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// generate builds the drawing for seed, signed with the number the next
// export will get so the export matches what is shown.
func (m StudioModel) generate(seed uint64) tea.Cmd {
	ctx, opts, runner, exp := m.ctx, m.opts, m.runner, m.exporter
	return func() tea.Msg {
		opts.Seed = seed
		if exp.cfg.Signature.Enabled {
			n, err := exp.store.Next(ctx)
			if err != nil {
				return generatedMsg{err: err}
			}
			opts.Signature = glyph.SignatureText(exp.cfg.Signature.Name, n)
		}
		doc, err := runner.Generate(ctx, opts)
		return generatedMsg{doc: doc, err: err}
	}
}

func (m StudioModel) export(seed uint64) tea.Cmd {
	ctx, opts, exp := m.ctx, m.opts, m.exporter
	return func() tea.Msg {
		opts.Seed = seed
		out, err := exp.export(ctx, opts)
		return exportedMsg{out: out, err: err}
	}
}

// brailleBits maps a dot at (x, y) within a 2×4 cell to its bit.
var brailleBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// braille converts a cols*2 × rows*4 mask to rows lines of braille.
// Trailing blank lines are trimmed.
func braille(mask *image.Alpha, cols, rows int) string {
	lines := make([]string, 0, rows)
	for r := range rows {
		var line strings.Builder
		for c := range cols {
			var bits rune
			for dy := range 4 {
				for dx := range 2 {
					if mask.AlphaAt(c*2+dx, r*4+dy).A >= 0x60 {
						bits |= brailleBits[dy][dx]
					}
				}
			}
			line.WriteRune(0x2800 + bits)
		}
		lines = append(lines, line.String())
	}
	for len(lines) > 0 && strings.Trim(lines[len(lines)-1], "⠀") == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
