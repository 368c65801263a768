package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/hexwalk/pkg/plot"
	"github.com/matzehuels/hexwalk/pkg/sink"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, doc sink.Document, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := RenderFormat(doc, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat renders a single format.
func RenderFormat(doc sink.Document, format string, opts Options) ([]byte, error) {
	limit := -1
	if opts.Limit > 0 {
		limit = opts.Limit
	}

	switch format {
	case FormatSVG:
		return sink.RenderSVG(doc, sink.WithStrokeWidth(opts.StrokeWidth), sink.WithLimit(limit)), nil
	case FormatPDF:
		return sink.RenderPDF(doc, sink.WithPDFStrokeWidth(opts.StrokeWidth), sink.WithPDFLimit(limit))
	case FormatPNG:
		return sink.RenderPNG(doc, sink.WithDPI(opts.DPI), sink.WithPNGStrokeWidth(opts.StrokeWidth), sink.WithPNGLimit(limit))
	case FormatJSON:
		var jsonOpts []sink.JSONOption
		if opts.Compress {
			jsonOpts = append(jsonOpts, sink.WithCompression())
		}
		doc.Instructions = plot.Prefix(doc.Instructions, limit)
		return sink.RenderJSON(doc, append(jsonOpts, sink.WithStats())...)
	default:
		return nil, ValidateFormat(format)
	}
}

// Extension returns the file extension for an artifact of format.
func Extension(format string, opts Options) string {
	if format == FormatJSON && opts.Compress {
		return "json.zst"
	}
	return format
}
