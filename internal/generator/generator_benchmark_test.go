package generator

import (
	"context"
	"fmt"
	"testing"

	"github.com/seitarof/gen-vtkwrap/internal/model"
)

type discardWriter struct{}

func (discardWriter) Write(_ string, _ []byte) error { return nil }

func BenchmarkEmitterEmit(b *testing.B) {
	e := NewEmitter(nil, Options{URIPrefix: "vtk"})
	f := benchmarkFilters(1, 32)[0]

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Emit(f); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGeneratorGenerate_TemplateOnly(b *testing.B) {
	g := New(NewNopFormatter(), discardWriter{}, nil)
	filters := benchmarkFilters(8, 32)
	opts := Options{Destination: b.TempDir(), URIPrefix: "vtk"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.Generate(context.Background(), filters, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkFilters(filterCount, propCount int) []model.FilterData {
	kinds := []func(int) (model.Kind, int){
		func(int) (model.Kind, int) { return model.Bool{Default: true}, 1 },
		func(j int) (model.Kind, int) { return model.IntVec{Default: []int{j}}, 1 },
		func(int) (model.Kind, int) { return model.DoubleVec{Min: []float64{-1}}, 3 },
		func(int) (model.Kind, int) { return model.String{Default: "value"}, 1 },
	}
	out := make([]model.FilterData, 0, filterCount)
	for i := 0; i < filterCount; i++ {
		props := make([]model.FilterPropertyData, 0, propCount)
		for j := 0; j < propCount; j++ {
			kind, n := kinds[j%len(kinds)](j)
			props = append(props, prop(fmt.Sprintf("Prop%d", j), n, kind))
		}
		out = append(out, testFilter(fmt.Sprintf("vtkBench%d", i), props...))
	}
	return out
}
