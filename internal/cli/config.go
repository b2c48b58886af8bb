package cli

import "time"

// Mode selects which set of filters a run parses.
type Mode string

const (
	// ModeVTK reads the VTK/ParaView filter folder and the ParaView readers XML.
	ModeVTK Mode = "vtk"
	// ModeTTK reads the topology toolkit XML files from a source tree.
	ModeTTK Mode = "ttk"
	// ModeCustom reads an arbitrary folder of XML filters.
	ModeCustom Mode = "custom"
)

var modes = []Mode{ModeVTK, ModeTTK, ModeCustom}

// Config stores CLI options for a single generation run.
type Config struct {
	Output      string
	Mode        Mode
	TTKRepo     string
	Filters     string
	VTKFilters  string
	Clear       bool
	PrintTable  bool
	ClangFormat string
	Quiet       bool
	Rules       string
	Timeout     time.Duration
	ShowVersion bool
}

// UsageError reports a misconfigured command line.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }
