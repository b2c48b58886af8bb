package model

// KindTag is the coarse-grained property kind.
type KindTag int

const (
	KindBool KindTag = iota
	KindIntVec
	KindDoubleVec
	KindIntOption
	KindString
	KindFile
	KindButton
	KindExtent
	KindFieldSelection
)

var kindNames = [...]string{
	KindBool:           "Bool",
	KindIntVec:         "IntVec",
	KindDoubleVec:      "DoubleVec",
	KindIntOption:      "IntOption",
	KindString:         "String",
	KindFile:           "File",
	KindButton:         "Button",
	KindExtent:         "Extent",
	KindFieldSelection: "FieldSelection",
}

func (k KindTag) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Kind is implemented by every property kind variant. The set is closed.
type Kind interface {
	Tag() KindTag
	isKind()
}

// Bool is an on/off property.
type Bool struct {
	Default bool
}

// IntVec is an integer vector; nil slices mean the XML did not declare them.
type IntVec struct {
	Default []int
	Min     []int
	Max     []int
}

// DoubleVec is a floating point vector; nil slices mean the XML did not declare them.
type DoubleVec struct {
	Default []float64
	Min     []float64
	Max     []float64
}

// Option is one label/value entry of an enumeration.
type Option struct {
	Label string
	Value int
}

// NoSelection marks an IntOption whose declared default matched no option.
const NoSelection = -1

// IntOption is an enumeration backed by integer values.
type IntOption struct {
	Options      []Option
	DefaultIndex int
}

// String is a free text property.
type String struct {
	Default string
}

// File is a file path property.
type File struct {
	Default string
}

// Button triggers a command without a value.
type Button struct{}

// RequiredProperty is a companion property an extent depends on.
type RequiredProperty struct {
	Function string
	Name     string
}

// Extent holds three axis ranges.
type Extent struct {
	Default  []int
	Required []RequiredProperty
}

// FieldDefault is the positional default of a field selection.
type FieldDefault struct {
	Component   int
	SubIndex    int
	Tertiary    int
	Association int
	Name        string
	HasName     bool
}

// DefaultAssociation is the association index used when none is declared.
const DefaultAssociation = 3

// FieldSelection picks an array of an input to process.
type FieldSelection struct {
	Default FieldDefault
	Inport  string
}

func (Bool) Tag() KindTag           { return KindBool }
func (IntVec) Tag() KindTag         { return KindIntVec }
func (DoubleVec) Tag() KindTag      { return KindDoubleVec }
func (IntOption) Tag() KindTag      { return KindIntOption }
func (String) Tag() KindTag         { return KindString }
func (File) Tag() KindTag           { return KindFile }
func (Button) Tag() KindTag         { return KindButton }
func (Extent) Tag() KindTag         { return KindExtent }
func (FieldSelection) Tag() KindTag { return KindFieldSelection }

func (Bool) isKind()           {}
func (IntVec) isKind()         {}
func (DoubleVec) isKind()      {}
func (IntOption) isKind()      {}
func (String) isKind()         {}
func (File) isKind()           {}
func (Button) isKind()         {}
func (Extent) isKind()         {}
func (FieldSelection) isKind() {}
