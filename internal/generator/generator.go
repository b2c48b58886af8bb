package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/seitarof/gen-vtkwrap/internal/model"
	"github.com/seitarof/gen-vtkwrap/internal/rules"
)

const (
	RegisterHeader = "registerfilters.h"
	RegisterSource = "registerfilters.cpp"
)

// Generator writes wrapper sources for parsed filters.
type Generator interface {
	Generate(ctx context.Context, filters []model.FilterData, opts Options) (Result, error)
}

// Options configures one generation run.
type Options struct {
	Destination    string
	URIPrefix      string
	CustomTraits   []CustomTrait
	Fixes          rules.Fixes
	RemoveOldFiles bool
}

// Result summarizes a generation run.
type Result struct {
	Filters    []string
	Duplicates []string
	Files      []string
}

// Formatter formats a generated file in place.
type Formatter interface {
	Format(ctx context.Context, path string) error
}

// FileWriter writes generated code to disk.
type FileWriter interface {
	Write(filename string, data []byte) error
}

type generatorImpl struct {
	formatter Formatter
	writer    FileWriter
	log       *zap.Logger
}

type clangFormatter struct {
	binary string
}

type nopFormatter struct{}

type fileWriter struct{}

type registration struct {
	Headers    []string
	ClassNames []string
}

// New creates a generator. A nil formatter skips formatting.
func New(f Formatter, w FileWriter, log *zap.Logger) Generator {
	if f == nil {
		f = NewNopFormatter()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &generatorImpl{formatter: f, writer: w, log: log}
}

// NewClangFormatter creates a formatter running "<binary> -i <file>".
func NewClangFormatter(binary string) Formatter {
	if binary == "" {
		binary = "clang-format"
	}
	return &clangFormatter{binary: binary}
}

// NewNopFormatter creates a formatter that leaves files untouched.
func NewNopFormatter() Formatter {
	return nopFormatter{}
}

// NewFileWriter creates a plain file writer.
func NewFileWriter() FileWriter {
	return &fileWriter{}
}

func (g *generatorImpl) Generate(ctx context.Context, filters []model.FilterData, opts Options) (Result, error) {
	if opts.Destination == "" {
		return Result{}, errors.New("no destination directory")
	}
	if err := os.MkdirAll(opts.Destination, 0o755); err != nil {
		return Result{}, fmt.Errorf("create destination: %w", err)
	}
	if opts.RemoveOldFiles {
		if err := removeGenerated(opts.Destination); err != nil {
			return Result{}, fmt.Errorf("remove old files: %w", err)
		}
	}

	sorted := slices.Clone(filters)
	slices.SortStableFunc(sorted, func(a, b model.FilterData) int {
		return strings.Compare(a.ClassName, b.ClassName)
	})

	emitter := NewEmitter(g.log, opts)
	var res Result
	var reg registration
	seen := make(map[string]bool, len(sorted))
	bases := make(map[string]string, len(sorted))
	for _, f := range sorted {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if seen[f.ClassName] {
			g.log.Warn("class name already used, skipping filter",
				zap.String("class", f.ClassName),
				zap.String("filter", f.Identifier),
			)
			res.Duplicates = append(res.Duplicates, f.ClassName)
			continue
		}
		seen[f.ClassName] = true

		files, err := emitter.Emit(f)
		if err != nil {
			return res, fmt.Errorf("emit %s: %w", f.ClassName, err)
		}
		base := FileBase(f.ClassName)
		if prev, ok := bases[base]; ok {
			g.log.Warn("file name already used, overwriting",
				zap.String("file", base),
				zap.String("class", f.ClassName),
				zap.String("previous", prev),
			)
		}
		bases[base] = f.ClassName
		if err := g.write(ctx, opts.Destination, base+".h", files.Header, &res); err != nil {
			return res, err
		}
		if err := g.write(ctx, opts.Destination, base+".cpp", files.Source, &res); err != nil {
			return res, err
		}

		reg.Headers = append(reg.Headers, base+".h")
		reg.ClassNames = append(reg.ClassNames, f.ClassName)
		res.Filters = append(res.Filters, f.ClassName)
	}

	header, err := execute("registerfilters.h.tmpl", reg)
	if err != nil {
		return res, err
	}
	source, err := execute("registerfilters.cpp.tmpl", reg)
	if err != nil {
		return res, err
	}
	if err := g.write(ctx, opts.Destination, RegisterHeader, header, &res); err != nil {
		return res, err
	}
	if err := g.write(ctx, opts.Destination, RegisterSource, source, &res); err != nil {
		return res, err
	}
	return res, nil
}

// write stores one file and formats it. Formatter failures are only logged.
func (g *generatorImpl) write(ctx context.Context, dir, name, content string, res *Result) error {
	path := filepath.Join(dir, name)
	if err := g.writer.Write(path, []byte(content)); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	res.Files = append(res.Files, name)

	if err := g.formatter.Format(ctx, path); err != nil {
		g.log.Warn("formatting failed", zap.String("file", path), zap.Error(err))
	}
	return nil
}

func removeGenerated(dir string) error {
	for _, pattern := range []string{"ivw_*.h", "ivw_*.cpp"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return err
		}
		for _, m := range matches {
			if err := os.Remove(m); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *clangFormatter) Format(ctx context.Context, path string) error {
	out, err := exec.CommandContext(ctx, f.binary, "-i", path).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return fmt.Errorf("%s: %w", f.binary, err)
		}
		return fmt.Errorf("%s: %w: %s", f.binary, err, msg)
	}
	return nil
}

func (nopFormatter) Format(context.Context, string) error { return nil }

func (w *fileWriter) Write(filename string, data []byte) error {
	return os.WriteFile(filename, data, 0o644)
}
