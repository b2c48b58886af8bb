package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

const name = "gen-vtkwrap"

func newFlagSet(cfg *Config) *pflag.FlagSet {
	cfg.Mode = ModeVTK

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVarP(&cfg.Output, "output", "o", "", "output directory for generated files")
	fs.Var((*modeValue)(&cfg.Mode), "mode", `filters to generate: "vtk", "ttk" or "custom"`)
	fs.StringVar(&cfg.TTKRepo, "ttkrepo", "", `path to the ttk sources, required for mode "ttk"`)
	fs.StringVar(&cfg.Filters, "filters", "", `path to custom XML filters, required for mode "custom"`)
	fs.StringVar(&cfg.VTKFilters, "vtk-filters", "filters", `folder with VTK XML filters for mode "vtk"`)
	fs.BoolVarP(&cfg.Clear, "clear", "c", false, "remove previously generated files from the output directory")
	fs.BoolVarP(&cfg.PrintTable, "printtable", "p", false, "print a table of all parsed filters and properties")
	fs.StringVar(&cfg.ClangFormat, "clangformat", "clang-format", "path to clang-format")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", false, "suppress detailed error logging")
	fs.StringVar(&cfg.Rules, "rules", "", "YAML file replacing the built-in exclusion and fix tables")
	fs.DurationVar(&cfg.Timeout, "timeout", 60*time.Second, "timeout for fetching remote XML")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "show version")
	return fs
}

// Usage returns the flag summary.
func Usage() string {
	fs := newFlagSet(&Config{})
	return fmt.Sprintf("Usage: %s -o DIR [--mode vtk|ttk|custom] [flags]\n\n%s", name, fs.FlagUsages())
}

// ParseArgs parses command line arguments into Config. Misconfiguration is
// reported as *UsageError; -h returns pflag.ErrHelp.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}
	fs := newFlagSet(cfg)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		return nil, &UsageError{Msg: err.Error()}
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	if strings.TrimSpace(cfg.Output) == "" {
		return nil, &UsageError{Msg: "--output is required"}
	}
	switch cfg.Mode {
	case ModeTTK:
		if strings.TrimSpace(cfg.TTKRepo) == "" {
			return nil, &UsageError{Msg: `mode set to "ttk" requires the following argument: --ttkrepo`}
		}
	case ModeCustom:
		if strings.TrimSpace(cfg.Filters) == "" {
			return nil, &UsageError{Msg: `mode set to "custom" requires the following argument: --filters`}
		}
	}
	if cfg.Timeout <= 0 {
		return nil, &UsageError{Msg: "--timeout must be positive"}
	}
	return cfg, nil
}

// modeValue restricts --mode to the known modes.
type modeValue Mode

func (m *modeValue) String() string { return string(*m) }

func (m *modeValue) Set(s string) error {
	for _, mode := range modes {
		if string(mode) == s {
			*m = modeValue(mode)
			return nil
		}
	}
	names := make([]string, len(modes))
	for i, mode := range modes {
		names[i] = string(mode)
	}
	return fmt.Errorf("must be one of %s", strings.Join(names, ", "))
}

func (m *modeValue) Type() string { return "mode" }
