package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/hexwalk/pkg/archive"
	"github.com/matzehuels/hexwalk/pkg/config"
	"github.com/matzehuels/hexwalk/pkg/errors"
	"github.com/matzehuels/hexwalk/pkg/glyph"
	"github.com/matzehuels/hexwalk/pkg/pipeline"
	"github.com/matzehuels/hexwalk/pkg/plot"
)

// exporter numbers, signs, renders and records drawings.
type exporter struct {
	cfg    config.Config
	runner *pipeline.Runner
	store  archive.Store
	// stage, if set, is called as the export progresses.
	stage func(msg string)
}

// exportResult is one finished export.
type exportResult struct {
	Record archive.Record
	Result *pipeline.Result
}

// export reserves the next number, stamps it into the signature, writes
// one file per format and records the export.
func (e *exporter) export(ctx context.Context, opts pipeline.Options) (*exportResult, error) {
	number, err := e.store.Next(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "reserve export number")
	}
	e.report("Generating drawing %03d...", number)
	opts.Number = number
	opts.Signature = ""
	if e.cfg.Signature.Enabled {
		opts.Signature = glyph.SignatureText(e.cfg.Signature.Name, number)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	res, err := e.runner.Execute(ctx, opts)
	if err != nil {
		return nil, err
	}

	e.report("Writing %d file(s)...", len(res.Artifacts))
	files, err := writeArtifacts(e.cfg.Output.Dir, e.cfg.Output.Prefix, number, res.Artifacts, opts)
	if err != nil {
		return nil, err
	}

	settings, err := json.Marshal(opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode options")
	}
	stats := plot.Summarize(res.Document.Instructions)
	rec := archive.Record{
		Number:       number,
		ID:           res.Document.ID,
		Seed:         opts.Seed,
		Signature:    opts.Signature,
		Instructions: len(res.Document.Instructions),
		DrawLength:   stats.DrawLength,
		Files:        files,
		Config:       string(settings),
	}
	if err := e.store.Record(ctx, &rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "record export %03d", number)
	}
	return &exportResult{Record: rec, Result: res}, nil
}

func (e *exporter) report(format string, args ...any) {
	if e.stage != nil {
		e.stage(fmt.Sprintf(format, args...))
	}
}

// writeArtifacts writes <dir>/<prefix>_<NNN>.<ext> for every requested
// format, in request order, and returns the paths.
func writeArtifacts(dir, prefix string, number int, artifacts map[string][]byte, opts pipeline.Options) ([]string, error) {
	if err := errors.ValidateFilePrefix(prefix); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create output directory %s", dir)
	}

	files := make([]string, 0, len(opts.Formats))
	for _, format := range opts.Formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := filepath.Join(dir, exportName(prefix, number, pipeline.Extension(format, opts)))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return files, errors.Wrap(errors.ErrCodeStorage, err, "write %s", path)
		}
		files = append(files, path)
	}
	return files, nil
}

// exportName returns e.g. "hexwalk_007.svg".
func exportName(prefix string, number int, ext string) string {
	return fmt.Sprintf("%s_%03d.%s", prefix, number, ext)
}
