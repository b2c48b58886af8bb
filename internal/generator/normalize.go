package generator

import (
	"math"
	"strconv"
	"strings"

	"github.com/seitarof/gen-vtkwrap/internal/model"
)

const (
	defaultMin = 0
	defaultMax = 100
)

// numericValues are the rendered default/min/max of a numeric vector, each
// exactly arity long.
type numericValues struct {
	Default []string
	Min     []string
	Max     []string
}

// resize returns exactly n values, truncating or padding with pad.
func resize[T any](vals []T, n int, pad T) []T {
	out := make([]T, n)
	for i := range out {
		if i < len(vals) {
			out[i] = vals[i]
		} else {
			out[i] = pad
		}
	}
	return out
}

// bound resizes a min or max array; a single value is repeated n times.
func bound[T any](vals []T, n int, pad T) []T {
	if len(vals) == 1 {
		return resize([]T(nil), n, vals[0])
	}
	return resize(vals, n, pad)
}

func normalizeInts(k model.IntVec, n int) numericValues {
	return numericValues{
		Default: formatAll(resize(k.Default, n, 0), strconv.Itoa),
		Min:     formatAll(bound(k.Min, n, defaultMin), strconv.Itoa),
		Max:     formatAll(bound(k.Max, n, defaultMax), strconv.Itoa),
	}
}

func normalizeDoubles(k model.DoubleVec, n int) numericValues {
	return numericValues{
		Default: formatAll(resize(k.Default, n, 0), formatDouble),
		Min:     formatAll(bound(k.Min, n, float64(defaultMin)), formatDouble),
		Max:     formatAll(bound(k.Max, n, float64(defaultMax)), formatDouble),
	}
}

func formatAll[T any](vals []T, format func(T) string) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = format(v)
	}
	return out
}

// formatDouble renders v as a C++ double literal.
func formatDouble(v float64) string {
	switch {
	case math.IsNaN(v):
		return "std::numeric_limits<double>::quiet_NaN()"
	case math.IsInf(v, 1):
		return "std::numeric_limits<double>::infinity()"
	case math.IsInf(v, -1):
		return "-std::numeric_limits<double>::infinity()"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func boolLiteral(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// optionIndex falls back to the first option when the declared default
// matched none of them.
func optionIndex(k model.IntOption) int {
	if k.DefaultIndex < 0 || k.DefaultIndex >= len(k.Options) {
		return 0
	}
	return k.DefaultIndex
}

// getters lists n accessor calls on name, e.g. "property.get(0), property.get(1)".
func getters(name string, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = name + ".get(" + strconv.Itoa(i) + ")"
	}
	return strings.Join(parts, ", ")
}
