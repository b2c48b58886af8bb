package generator

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/seitarof/gen-vtkwrap/internal/model"
	"github.com/seitarof/gen-vtkwrap/internal/rules"
)

func prop(id string, n int, kind model.Kind) model.FilterPropertyData {
	return model.FilterPropertyData{
		Identifier:  id,
		DisplayName: id,
		Command:     "Set" + id,
		NumElem:     n,
		HasNumElem:  n > 0,
		Kind:        kind,
		Doc:         id + " doc",
	}
}

func testFilter(class string, props ...model.FilterPropertyData) model.FilterData {
	return model.FilterData{
		Identifier:  class,
		DisplayName: class,
		ClassName:   class,
		Category:    "vtk",
		Tags:        "VTK",
		Doc:         "Filter doc",
		Props:       props,
	}
}

func renderProp(t *testing.T, p model.FilterPropertyData) string {
	t.Helper()
	fn, ok := lookup(p.Kind.Tag(), p.Arity())
	if !ok {
		t.Fatalf("lookup(%s, %d) found no renderer", p.Kind.Tag(), p.Arity())
	}
	got, err := fn(input{Struct: "Wrapper0", Class: "vtkTest", Prop: p})
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	return got
}

func mustContain(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Fatalf("output does not contain %q:\n%s", want, got)
		}
	}
}

func TestRenderers(t *testing.T) {
	tests := []struct {
		name string
		prop model.FilterPropertyData
		want []string
	}{
		{
			name: "bool",
			prop: prop("AllScalars", 1, model.Bool{Default: true}),
			want: []string{
				"struct Wrapper0 {",
				"bool set(vtkTest& filter) {",
				"filter.SetAllScalars(property.get());",
				`BoolProperty property{"AllScalars", "AllScalars", R"(AllScalars doc)"_help, true};`,
			},
		},
		{
			name: "int scalar",
			prop: prop("Level", 1, model.IntVec{Default: []int{3}}),
			want: []string{
				`IntProperty property{"Level", "Level"`,
				"        3,\n",
				"std::pair{0, ConstraintBehavior::Ignore}",
				"std::pair{100, ConstraintBehavior::Ignore}",
			},
		},
		{
			name: "int vec3 padded",
			prop: prop("Dims", 3, model.IntVec{Default: []int{1, 2}, Min: []int{1}}),
			want: []string{
				"filter.SetDims(property.get(0), property.get(1), property.get(2));",
				`IntVec3Property property{"Dims"`,
				"ivec3{1, 2, 0}",
				"std::pair{ivec3{1, 1, 1}, ConstraintBehavior::Ignore}",
				"std::pair{ivec3{100, 100, 100}, ConstraintBehavior::Ignore}",
			},
		},
		{
			name: "double vec2",
			prop: prop("Range", 2, model.DoubleVec{Default: []float64{0.5, 1}}),
			want: []string{
				`DoubleVec2Property property{"Range"`,
				"dvec2{0.5, 1.0}",
				"std::pair{dvec2{100.0, 100.0}, ConstraintBehavior::Ignore}",
			},
		},
		{
			name: "double vec4",
			prop: prop("Color", 4, model.DoubleVec{}),
			want: []string{`DoubleVec4Property property{"Color"`, "dvec4{0.0, 0.0, 0.0, 0.0}"},
		},
		{
			name: "double vec6",
			prop: prop("Bounds", 6, model.DoubleVec{Default: []float64{0, 1, 2, 3, 4, 5}}),
			want: []string{
				"filter.SetBounds(x.get(0), x.get(1), y.get(0), y.get(1), z.get(0), z.get(1));",
				`DoubleVec2Property x{"x", "X",`,
				`DoubleVec2Property z{"z", "Z",`,
				"dvec2{2.0, 3.0}",
				`CompositeProperty tmp{"Bounds", "Bounds", R"(Bounds doc)"_help};`,
				"tmp.addProperties(x, y, z);",
			},
		},
		{
			name: "int vec6",
			prop: prop("Extent6", 6, model.IntVec{Max: []int{9}}),
			want: []string{`IntVec2Property y{"y", "Y",`, "std::pair{ivec2{9, 9}, ConstraintBehavior::Ignore}"},
		},
		{
			name: "option without selection",
			prop: prop("Method", 1, model.IntOption{
				Options:      []model.Option{{Label: "Below", Value: 0}, {Label: "Above", Value: 1}},
				DefaultIndex: model.NoSelection,
			}),
			want: []string{
				`OptionPropertyInt property{"Method", "Method", R"(Method doc)"_help,`,
				`{{"Below", "Below", 0}, {"Above", "Above", 1}},`,
				"        0};",
			},
		},
		{
			name: "string escaped",
			prop: prop("Label", 1, model.String{Default: `a "b"`}),
			want: []string{
				"filter.SetLabel(property.get().c_str());",
				`R"(Label doc)"_help, "a \"b\""};`,
			},
		},
		{
			name: "file without default",
			prop: prop("FileName", 1, model.File{}),
			want: []string{
				"if (property.get().empty()) return false;",
				"filter.SetFileName(property.get().string().c_str());",
				`std::filesystem::path{""}`,
			},
		},
		{
			name: "button",
			prop: prop("Reset", 0, model.Button{}),
			want: []string{"filter.SetReset();", `ButtonProperty property{"Reset", "Reset", R"(Reset doc)"_help};`},
		},
		{
			name: "extent",
			prop: prop("WholeExtent", 6, model.Extent{Default: []int{0, 1, 0, 1, 0, 1}}),
			want: []string{
				"filter.SetWholeExtent(x.getStart(), x.getEnd(), y.getStart(), y.getEnd(), z.getStart(), z.getEnd());",
				`IntSizeTMinMaxProperty x{"xExtent", "X Extent", 0, 100, 0, 1000};`,
				`IntSizeTMinMaxProperty z{"zExtent", "Z Extent", 0, 100, 0, 1000};`,
			},
		},
		{
			name: "field selection with name",
			prop: model.FilterPropertyData{
				Identifier:  "SelectInputScalars",
				DisplayName: "Scalars",
				Command:     setInputArray,
				Kind: model.FieldSelection{
					Default: model.FieldDefault{Component: 0, SubIndex: 0, Tertiary: 0, Association: 1, Name: "Scalars", HasName: true},
					Inport:  "Input",
				},
			},
			want: []string{
				"struct Wrapper0 : FieldSelection {",
				"filter.SetInputArrayToProcess(0, 0, 0, fieldAssociation.get(), name.get().c_str());",
				`OptionPropertyString name{"name", "Name", {{"Scalars", "Scalars", "Scalars"}}, 0};`,
				"vtkDataObject::FIELD_ASSOCIATION_POINTS_THEN_CELLS}},\n        1};",
				`static constexpr std::string_view inport = "Input";`,
			},
		},
		{
			name: "field selection without name",
			prop: model.FilterPropertyData{
				Identifier: "Array",
				Command:    setInputArray,
				Kind:       model.FieldSelection{Default: model.FieldDefault{Association: model.DefaultAssociation}},
			},
			want: []string{`OptionPropertyString name{"name", "Name", {}, 0};`, "        3};"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mustContain(t, renderProp(t, tt.prop), tt.want...)
		})
	}
}

const setInputArray = "SetInputArrayToProcess"

func TestLookup_Unsupported(t *testing.T) {
	for _, arity := range []int{0, 5, 7} {
		if _, ok := lookup(model.KindIntVec, arity); ok {
			t.Fatalf("lookup(IntVec, %d) should have no renderer", arity)
		}
		if _, ok := lookup(model.KindDoubleVec, arity); ok {
			t.Fatalf("lookup(DoubleVec, %d) should have no renderer", arity)
		}
	}
	for _, tag := range []model.KindTag{model.KindBool, model.KindString, model.KindExtent} {
		if _, ok := lookup(tag, 3); !ok {
			t.Fatalf("lookup(%s, 3) should use the wildcard renderer", tag)
		}
	}
}

func TestEmit_OneWrapperPerAcceptedProperty(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := NewEmitter(zap.New(core), Options{URIPrefix: "vtk"})

	f := testFilter("vtkThreshold",
		prop("AllScalars", 1, model.Bool{Default: true}),
		prop("Odd", 5, model.IntVec{}),
		prop("Lower", 1, model.DoubleVec{}),
		prop("Unresolved", 1, nil),
		prop("Label", 1, model.String{}),
	)
	files, err := e.Emit(f)
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	if n := strings.Count(files.Source, "struct Wrapper"); n != 3 {
		t.Fatalf("wrapper count = %d, want 3:\n%s", n, files.Source)
	}
	mustContain(t, files.Source,
		"std::tuple<Wrapper0, Wrapper1, Wrapper2> properties;",
		"filter.SetAllScalars(property.get());",
		"filter.SetLabel(property.get().c_str());",
	)
	if strings.Index(files.Source, "SetAllScalars") > strings.Index(files.Source, "SetLower") ||
		strings.Index(files.Source, "SetLower") > strings.Index(files.Source, "SetLabel") {
		t.Fatal("wrappers are not in encounter order")
	}
	if n := logs.FilterMessage("missing template for property").Len(); n != 2 {
		t.Fatalf("missing template diagnostics = %d, want 2", n)
	}
	entry := logs.FilterMessage("missing template for property").All()[0]
	if got := entry.ContextMap()["property"]; got != "Odd" {
		t.Fatalf("diagnostic property = %v, want Odd", got)
	}
}

func TestEmit_Traits(t *testing.T) {
	f := testFilter("ttkFoo", prop("Flag", 1, model.Bool{}))
	f.Identifier = "Foo"
	f.DisplayName = "TTK Foo"
	f.Category, f.Tags = "topology", "TTK"
	f.Inports = []model.InputData{
		{Identifier: "Input", DataType: "vtkDataSet", NumComp: []int{1, 3}, Doc: "input doc"},
		{Identifier: "Source"},
	}
	f.Outports = []model.OutputData{{Identifier: "outport0", DisplayName: "Output", Index: 0}}
	f.Groups.Add("Range", "A", "B")

	e := NewEmitter(nil, Options{
		URIPrefix: "ttk",
		CustomTraits: []CustomTrait{{
			Trait:   "ttk::OutportDataTypeFunc outportDataTypeFunc = ttk::getOutportDataType;",
			Include: "#include <inviwo/ttk/util/ttkprocessorutils.h>",
		}},
	})
	files, err := e.Emit(f)
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	mustContain(t, files.Header,
		"#pragma once",
		"void registerttkFoo(InviwoModule* module);",
	)
	mustContain(t, files.Source,
		`#include "ivw_ttkfoo.h"`,
		"#include <inviwo/ttk/util/ttkprocessorutils.h>",
		"#include <ttkFoo.h>",
		"struct VTKTraits<ttkFoo> {",
		`uri = "ttk.ttkFoo";`,
		`className = "ttkFoo";`,
		`identifier = "Foo";`,
		`displayName = "TTK Foo";`,
		`category = "topology";`,
		`tags = "TTK";`,
		"std::array<InputData, 2> inports = {",
		`InputData{"Input", "vtkDataSet", 1, R"(input doc)"},`,
		`InputData{"Source", "", -1, R"()"}};`,
		`std::array<OutputData, 1> outports = {`,
		`OutputData{"outport0", "Output", 0}};`,
		`std::array<Group, 1> groups = {`,
		`Group{"Range", {"A", "B"}}};`,
		"std::tuple<Wrapper0> properties;\n    ttk::OutportDataTypeFunc outportDataTypeFunc = ttk::getOutportDataType;",
		`static constexpr std::string_view doc = R"ivw(Filter doc)ivw";`,
		"module->registerProcessor<VTKGenericProcessor<ttkFoo>>();",
	)
}

func TestEmit_EmptyFilter(t *testing.T) {
	files, err := NewEmitter(nil, Options{}).Emit(testFilter("vtkEmpty"))
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	mustContain(t, files.Source,
		`uri = "vtkEmpty";`,
		"std::array<InputData, 0> inports = {};",
		"std::array<OutputData, 0> outports = {};",
		"std::array<Group, 0> groups = {};",
		"std::tuple<> properties;",
	)
}

func TestEmit_AppliesFixOnlyToMatchingProperty(t *testing.T) {
	fixes, err := rules.NewFixes(rules.Fix{
		Class:    "vtkA",
		Property: "B",
		Old:      "filter.SetB(property.get(0), property.get(1));",
		New:      "filter.SetBMin(property.get(0));\n        filter.SetBMax(property.get(1));\n        filter.Modified();",
	})
	if err != nil {
		t.Fatalf("NewFixes() error = %v", err)
	}

	f := testFilter("vtkA",
		prop("B", 2, model.IntVec{}),
		prop("C", 2, model.IntVec{}),
	)
	f.Props[1].Command = "SetB"

	files, err := NewEmitter(nil, Options{Fixes: fixes}).Emit(f)
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	mustContain(t, files.Source,
		"filter.SetBMin(property.get(0));\n        filter.SetBMax(property.get(1));\n        filter.Modified();",
	)
	if n := strings.Count(files.Source, "filter.SetB(property.get(0), property.get(1));"); n != 1 {
		t.Fatalf("unfixed call count = %d, want 1 (property C only)", n)
	}
}

func TestEmit_DocCannotCloseRawString(t *testing.T) {
	f := testFilter("vtkDoc", prop("P", 1, model.Bool{}))
	f.Doc = `ends early )ivw" here`
	f.Props[0].Doc = `tricky )" text`
	files, err := NewEmitter(nil, Options{}).Emit(f)
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if strings.Contains(files.Source, `tricky )" text`) || strings.Contains(files.Source, `early )ivw" here`) {
		t.Fatalf("raw string terminator leaked into output:\n%s", files.Source)
	}
}
