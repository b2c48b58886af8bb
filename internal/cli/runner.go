package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/seitarof/gen-vtkwrap/internal/generator"
	"github.com/seitarof/gen-vtkwrap/internal/model"
	"github.com/seitarof/gen-vtkwrap/internal/rules"
	"github.com/seitarof/gen-vtkwrap/internal/source"
)

const (
	// ParaViewReadersURL is the readers XML fetched in vtk mode.
	ParaViewReadersURL = "https://github.com/Kitware/ParaView/raw/master/Remoting/Application/Resources/readers_ioxml.xml"

	debugWidgetsToken = "${DEBUG_WIDGETS}"
	ttkDenylist       = "ttk"
)

var ttkTraits = []generator.CustomTrait{{
	Trait:   "ttk::OutportDataTypeFunc outportDataTypeFunc = ttk::getOutportDataType;",
	Include: "#include <inviwo/ttk/util/ttkprocessorutils.h>",
}}

// Collector loads and parses sources.
type Collector interface {
	Collect(ctx context.Context, sources []source.Source) []model.FilterData
}

// Runner orchestrates the source/parser/rules/generator layers.
type Runner interface {
	Run(ctx context.Context, cfg *Config) error
}

type runnerImpl struct {
	collector Collector
	generator generator.Generator
	table     rules.Table
	out       io.Writer
	log       *zap.Logger
}

type plan struct {
	sources   []source.Source
	uriPrefix string
	traits    []generator.CustomTrait
}

// NewRunner creates a default runner implementation. table is used unless
// the config names a rules file.
func NewRunner(c Collector, g generator.Generator, table rules.Table, out io.Writer, log *zap.Logger) Runner {
	if out == nil {
		out = io.Discard
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &runnerImpl{collector: c, generator: g, table: table, out: out, log: log}
}

// Run executes a single generation cycle.
func (r *runnerImpl) Run(ctx context.Context, cfg *Config) error {
	table := r.table
	if cfg.Rules != "" {
		t, err := rules.LoadFile(cfg.Rules)
		if err != nil {
			return fmt.Errorf("load rules: %w", err)
		}
		table = t
	}

	p, err := r.plan(cfg, table)
	if err != nil {
		return err
	}
	r.log.Info("collecting filters", zap.String("mode", string(cfg.Mode)), zap.Int("sources", len(p.sources)))

	parsed := r.collector.Collect(ctx, p.sources)
	filters, report := rules.Apply(parsed, table.Rules()...)
	for _, step := range report.Steps {
		if len(step.Removed) > 0 {
			r.log.Debug("excluded filters", zap.String("rule", step.Rule), zap.Strings("classes", step.Removed))
		}
	}

	if cfg.PrintTable {
		fmt.Fprintln(r.out, RenderTable(filters))
	}

	res, err := r.generator.Generate(ctx, filters, generator.Options{
		Destination:    cfg.Output,
		URIPrefix:      p.uriPrefix,
		CustomTraits:   p.traits,
		Fixes:          table.Fixes(),
		RemoveOldFiles: cfg.Clear,
	})
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	printSummary(r.out, len(parsed), report, res)
	return nil
}

func (r *runnerImpl) plan(cfg *Config, table rules.Table) (plan, error) {
	switch cfg.Mode {
	case ModeVTK:
		sources := []source.Source{source.URL(ParaViewReadersURL, "vtk", "VTK,readers")}
		files, err := source.Glob(cfg.VTKFilters, nil)
		if err != nil {
			r.log.Warn("no VTK filter folder", zap.String("source", cfg.VTKFilters), zap.Error(err))
		}
		for _, f := range files {
			sources = append(sources, source.File(f, "vtk", "VTK"))
		}
		return plan{sources: sources, uriPrefix: "vtk"}, nil

	case ModeTTK:
		deny, _ := table.Denylist(ttkDenylist)
		files, err := source.Glob(filepath.Join(cfg.TTKRepo, "paraview", "xmls"), deny.ContainsStem)
		if err != nil {
			return plan{}, fmt.Errorf("ttk xml files: %w", err)
		}
		widgets, err := os.ReadFile(filepath.Join(cfg.TTKRepo, "CMake", "debug_widgets.xml"))
		if err != nil {
			return plan{}, fmt.Errorf("ttk debug widgets: %w", err)
		}
		pre := source.ReplaceToken(debugWidgetsToken, string(widgets))
		sources := make([]source.Source, 0, len(files))
		for _, f := range files {
			sources = append(sources, source.File(f, "topology", "TTK").WithPreprocess(pre))
		}
		return plan{sources: sources, uriPrefix: "ttk", traits: ttkTraits}, nil

	case ModeCustom:
		files, err := source.Glob(cfg.Filters, nil)
		if err != nil {
			return plan{}, fmt.Errorf("custom filters: %w", err)
		}
		sources := make([]source.Source, 0, len(files))
		for _, f := range files {
			sources = append(sources, source.File(f, "vtk", "VTK,custom"))
		}
		return plan{sources: sources}, nil
	}
	return plan{}, fmt.Errorf("unknown mode %q", cfg.Mode)
}

func printSummary(w io.Writer, parsed int, report rules.Report, res generator.Result) {
	fmt.Fprintf(w, "%s %d filters\n", color.New(color.FgCyan).Sprint("parsed"), parsed)
	for _, step := range report.Steps {
		if len(step.Removed) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s %d by %s\n", color.New(color.FgYellow).Sprint("excluded"), len(step.Removed), step.Rule)
	}
	if len(res.Duplicates) > 0 {
		fmt.Fprintf(w, "%s %d duplicate class names\n", color.New(color.FgRed).Sprint("skipped"), len(res.Duplicates))
	}
	fmt.Fprintf(w, "%s %d filters in %d files\n", color.New(color.FgGreen).Sprint("generated"), len(res.Filters), len(res.Files))
}
