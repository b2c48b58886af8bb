package generator

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/seitarof/gen-vtkwrap/internal/model"
	"github.com/seitarof/gen-vtkwrap/internal/rules"
)

// CustomTrait is an extra declaration added verbatim to every traits block,
// together with the include it needs.
type CustomTrait struct {
	Trait   string
	Include string
}

// Files is the rendered header and source of one filter.
type Files struct {
	Header string
	Source string
}

// anyArity registers a renderer for every declared arity of a kind.
const anyArity = -1

type key struct {
	tag   model.KindTag
	arity int
}

// input is everything a renderer may read.
type input struct {
	Struct string
	Class  string
	Prop   model.FilterPropertyData
}

type renderFunc func(in input) (string, error)

var renderers = map[key]renderFunc{
	{model.KindIntVec, 1}: numeric("scalar.cpp.tmpl", "IntProperty", ""),
	{model.KindIntVec, 2}: numeric("vec.cpp.tmpl", "IntVec2Property", "ivec2"),
	{model.KindIntVec, 3}: numeric("vec.cpp.tmpl", "IntVec3Property", "ivec3"),
	{model.KindIntVec, 4}: numeric("vec.cpp.tmpl", "IntVec4Property", "ivec4"),
	{model.KindIntVec, 6}: numeric("vec6.cpp.tmpl", "IntVec2Property", "ivec2"),

	{model.KindDoubleVec, 1}: numeric("scalar.cpp.tmpl", "DoubleProperty", ""),
	{model.KindDoubleVec, 2}: numeric("vec.cpp.tmpl", "DoubleVec2Property", "dvec2"),
	{model.KindDoubleVec, 3}: numeric("vec.cpp.tmpl", "DoubleVec3Property", "dvec3"),
	{model.KindDoubleVec, 4}: numeric("vec.cpp.tmpl", "DoubleVec4Property", "dvec4"),
	{model.KindDoubleVec, 6}: numeric("vec6.cpp.tmpl", "DoubleVec2Property", "dvec2"),

	{model.KindBool, anyArity}:           renderBool,
	{model.KindIntOption, anyArity}:      renderOption,
	{model.KindString, anyArity}:         renderString,
	{model.KindFile, anyArity}:           renderFile,
	{model.KindButton, anyArity}:         plain("button.cpp.tmpl"),
	{model.KindExtent, anyArity}:         plain("extent.cpp.tmpl"),
	{model.KindFieldSelection, anyArity}: renderFieldSelection,
}

// lookup prefers an arity specific renderer over the wildcard one.
func lookup(tag model.KindTag, arity int) (renderFunc, bool) {
	if fn, ok := renderers[key{tag, arity}]; ok {
		return fn, true
	}
	fn, ok := renderers[key{tag, anyArity}]
	return fn, ok
}

type axisView struct {
	Name    string
	Label   string
	Default []string
	Min     []string
	Max     []string
}

type propertyView struct {
	Struct      string
	Class       string
	Identifier  string
	DisplayName string
	Command     string
	Doc         string

	Type    string
	Vec     string
	Getters string
	Default []string
	Min     []string
	Max     []string
	Axes    []axisView

	Value   string
	Options []model.Option
	Field   model.FieldDefault
	Inport  string
}

func newView(in input) propertyView {
	return propertyView{
		Struct:      in.Struct,
		Class:       in.Class,
		Identifier:  in.Prop.Identifier,
		DisplayName: in.Prop.DisplayName,
		Command:     in.Prop.Command,
		Doc:         in.Prop.Doc,
	}
}

func numeric(tmpl, propType, vec string) renderFunc {
	return func(in input) (string, error) {
		n := in.Prop.Arity()
		v := newView(in)
		v.Type, v.Vec = propType, vec
		v.Getters = getters("property", n)

		var vals numericValues
		switch k := in.Prop.Kind.(type) {
		case model.IntVec:
			vals = normalizeInts(k, n)
		case model.DoubleVec:
			vals = normalizeDoubles(k, n)
		default:
			return "", fmt.Errorf("numeric template for %s", in.Prop.Kind.Tag())
		}
		v.Default, v.Min, v.Max = vals.Default, vals.Min, vals.Max

		if n == 6 {
			for i, axis := range []string{"x", "y", "z"} {
				v.Axes = append(v.Axes, axisView{
					Name:    axis,
					Label:   strings.ToUpper(axis),
					Default: v.Default[2*i : 2*i+2],
					Min:     v.Min[2*i : 2*i+2],
					Max:     v.Max[2*i : 2*i+2],
				})
			}
		}
		return execute(tmpl, v)
	}
}

func plain(tmpl string) renderFunc {
	return func(in input) (string, error) {
		return execute(tmpl, newView(in))
	}
}

func renderBool(in input) (string, error) {
	k, ok := in.Prop.Kind.(model.Bool)
	if !ok {
		return "", fmt.Errorf("bool template for %s", in.Prop.Kind.Tag())
	}
	v := newView(in)
	v.Value = boolLiteral(k.Default)
	return execute("bool.cpp.tmpl", v)
}

func renderOption(in input) (string, error) {
	k, ok := in.Prop.Kind.(model.IntOption)
	if !ok {
		return "", fmt.Errorf("option template for %s", in.Prop.Kind.Tag())
	}
	v := newView(in)
	v.Options = k.Options
	v.Value = fmt.Sprint(optionIndex(k))
	return execute("option.cpp.tmpl", v)
}

func renderString(in input) (string, error) {
	k, ok := in.Prop.Kind.(model.String)
	if !ok {
		return "", fmt.Errorf("string template for %s", in.Prop.Kind.Tag())
	}
	v := newView(in)
	v.Value = k.Default
	return execute("string.cpp.tmpl", v)
}

func renderFile(in input) (string, error) {
	k, ok := in.Prop.Kind.(model.File)
	if !ok {
		return "", fmt.Errorf("file template for %s", in.Prop.Kind.Tag())
	}
	v := newView(in)
	v.Value = k.Default
	return execute("file.cpp.tmpl", v)
}

func renderFieldSelection(in input) (string, error) {
	k, ok := in.Prop.Kind.(model.FieldSelection)
	if !ok {
		return "", fmt.Errorf("field selection template for %s", in.Prop.Kind.Tag())
	}
	v := newView(in)
	v.Field = k.Default
	v.Inport = k.Inport
	return execute("fieldselection.cpp.tmpl", v)
}

// Emitter renders the header and source of single filters.
type Emitter struct {
	log       *zap.Logger
	uriPrefix string
	traits    []CustomTrait
	fixes     rules.Fixes
}

// NewEmitter creates an emitter for the uri prefix, custom traits and fixes in opts.
func NewEmitter(log *zap.Logger, opts Options) *Emitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Emitter{
		log:       log,
		uriPrefix: opts.URIPrefix,
		traits:    opts.CustomTraits,
		fixes:     opts.Fixes,
	}
}

type inportView struct {
	Identifier string
	DataType   string
	NumComp    int
	Doc        string
}

type sourceView struct {
	Header      string
	ClassName   string
	URI         string
	Identifier  string
	DisplayName string
	Category    string
	Tags        string
	Doc         string
	Includes    []string
	Traits      []string
	Units       []string
	Wrappers    []string
	Inports     []inportView
	Outports    []model.OutputData
	Groups      model.Groups
}

// Emit renders one filter. Properties without a template for their kind and
// arity are reported and left out.
func (e *Emitter) Emit(f model.FilterData) (Files, error) {
	view := sourceView{
		Header:      FileBase(f.ClassName) + ".h",
		ClassName:   f.ClassName,
		URI:         e.uri(f.ClassName),
		Identifier:  f.Identifier,
		DisplayName: f.DisplayName,
		Category:    f.Category,
		Tags:        f.Tags,
		Doc:         f.Doc,
		Outports:    f.Outports,
		Groups:      f.Groups,
	}
	for _, t := range e.traits {
		if t.Include != "" {
			view.Includes = append(view.Includes, t.Include)
		}
		if t.Trait != "" {
			view.Traits = append(view.Traits, t.Trait)
		}
	}
	for _, in := range f.Inports {
		numComp := -1
		if len(in.NumComp) > 0 {
			numComp = in.NumComp[0]
		}
		view.Inports = append(view.Inports, inportView{
			Identifier: in.Identifier,
			DataType:   in.DataType,
			NumComp:    numComp,
			Doc:        in.Doc,
		})
	}

	for _, p := range f.Props {
		if p.Kind == nil {
			e.missing(f, p, "none")
			continue
		}
		render, ok := lookup(p.Kind.Tag(), p.Arity())
		if !ok {
			e.missing(f, p, p.Kind.Tag().String())
			continue
		}

		name := fmt.Sprintf("Wrapper%d", len(view.Wrappers))
		unit, err := render(input{Struct: name, Class: f.ClassName, Prop: p})
		if err != nil {
			return Files{}, fmt.Errorf("%s.%s: %w", f.ClassName, p.Identifier, err)
		}
		unit = e.fixes.Apply(f.ClassName, p.Identifier, unit)

		view.Units = append(view.Units, unit)
		view.Wrappers = append(view.Wrappers, name)
	}

	header, err := execute("header.h.tmpl", view)
	if err != nil {
		return Files{}, err
	}
	source, err := execute("source.cpp.tmpl", view)
	if err != nil {
		return Files{}, err
	}
	return Files{Header: header, Source: source}, nil
}

func (e *Emitter) uri(className string) string {
	if e.uriPrefix == "" {
		return className
	}
	return e.uriPrefix + "." + className
}

func (e *Emitter) missing(f model.FilterData, p model.FilterPropertyData, kind string) {
	e.log.Warn("missing template for property",
		zap.String("filter", f.Identifier),
		zap.String("property", p.Identifier),
		zap.String("kind", kind),
		zap.Int("arity", p.Arity()),
	)
}

// FileBase returns the generated file name of a class without extension.
func FileBase(className string) string {
	return "ivw_" + strings.ToLower(className)
}
