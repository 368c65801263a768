package sink

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"seehuhn.de/go/geom/vec"

	"github.com/matzehuels/hexwalk/pkg/errors"
	"github.com/matzehuels/hexwalk/pkg/plot"
	"github.com/matzehuels/hexwalk/pkg/walk"
)

//go:embed drawing.schema.json
var drawingSchema string

// zstdMagic is the frame header of a zstd stream.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compress bool
	stats    bool
	indent   bool
}

// WithCompression zstd-compresses the output.
func WithCompression() JSONOption { return func(r *jsonRenderer) { r.compress = true } }

// WithStats includes a [plot.Stats] summary. It is informational and
// ignored on import.
func WithStats() JSONOption { return func(r *jsonRenderer) { r.stats = true } }

// WithIndent pretty-prints the output.
func WithIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonDocument struct {
	Version      int               `json:"version"`
	ID           string            `json:"id,omitempty"`
	Number       int               `json:"number,omitempty"`
	Seed         uint64            `json:"seed"`
	CreatedAt    string            `json:"created_at,omitempty"`
	Canvas       jsonCanvas        `json:"canvas"`
	Scale        float64           `json:"scale"`
	Parameters   walk.Parameters   `json:"parameters"`
	Stats        *plot.Stats       `json:"stats,omitempty"`
	Instructions []jsonInstruction `json:"instructions"`
}

type jsonCanvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonInstruction struct {
	Op string  `json:"op"` // "M" or "L"
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// RenderJSON exports the document as the hexwalk drawing interchange
// format. The output can be re-rendered with [ParseJSON] and any other sink.
func RenderJSON(d Document, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonDocument{
		Version:      DocumentVersion,
		ID:           d.ID,
		Number:       d.Number,
		Seed:         d.Seed,
		Canvas:       jsonCanvas{Width: d.Canvas.X, Height: d.Canvas.Y},
		Scale:        d.Scale,
		Parameters:   d.Parameters,
		Instructions: make([]jsonInstruction, len(d.Instructions)),
	}
	if !d.CreatedAt.IsZero() {
		out.CreatedAt = d.CreatedAt.UTC().Format(time.RFC3339)
	}
	if r.stats {
		s := plot.Summarize(d.Instructions)
		out.Stats = &s
	}
	for i, in := range d.Instructions {
		out.Instructions[i] = jsonInstruction{Op: in.Op.String(), X: in.Point.X, Y: in.Point.Y}
	}

	var (
		data []byte
		err  error
	)
	if r.indent {
		data, err = json.MarshalIndent(out, "", "  ")
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		return nil, fmt.Errorf("json: marshal: %w", err)
	}
	if !r.compress {
		return data, nil
	}
	return compress(data)
}

// ParseJSON decodes a drawing exported by [RenderJSON]. Compressed input is
// detected by its zstd frame header. The document is checked against the
// drawing schema before decoding; violations return an
// [errors.ErrCodeInvalidDrawing] error.
func ParseJSON(data []byte) (Document, error) {
	if IsCompressed(data) {
		var err error
		if data, err = decompress(data); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decompress drawing")
		}
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse drawing")
	}
	schema, err := compiledSchema()
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInternal, err, "compile drawing schema")
	}
	if err := schema.Validate(raw); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidDrawing, err, "drawing does not match schema")
	}

	var in jsonDocument
	if err := json.Unmarshal(data, &in); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode drawing")
	}

	d := Document{
		ID:           in.ID,
		Number:       in.Number,
		Seed:         in.Seed,
		Canvas:       vec.Vec2{X: in.Canvas.Width, Y: in.Canvas.Height},
		Scale:        in.Scale,
		Parameters:   in.Parameters,
		Instructions: make([]plot.Instruction, len(in.Instructions)),
	}
	if in.CreatedAt != "" {
		if d.CreatedAt, err = time.Parse(time.RFC3339, in.CreatedAt); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidDrawing, err, "created_at")
		}
	}
	for i, ji := range in.Instructions {
		p := vec.Vec2{X: ji.X, Y: ji.Y}
		if ji.Op == "L" {
			d.Instructions[i] = plot.LineTo(p)
		} else {
			d.Instructions[i] = plot.MoveTo(p)
		}
	}
	return d, nil
}

// IsCompressed reports whether data starts with a zstd frame header.
func IsCompressed(data []byte) bool { return bytes.HasPrefix(data, zstdMagic) }

var (
	schemaOnce     sync.Once
	schemaCompiled *jsonschema.Schema
	schemaErr      error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schemaCompiled, schemaErr = jsonschema.CompileString("drawing.schema.json", drawingSchema)
	})
	return schemaCompiled, schemaErr
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return nil, fmt.Errorf("zstd: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}
