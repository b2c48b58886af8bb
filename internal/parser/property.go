package parser

import (
	"strconv"
	"strings"

	"github.com/seitarof/gen-vtkwrap/internal/model"
)

// Element tags the classifier understands.
const (
	TagIntVector    = "IntVectorProperty"
	TagDoubleVector = "DoubleVectorProperty"
	TagStringVector = "StringVectorProperty"
	TagProperty     = "Property"
)

// CommandSetInputArray is the native method that selects the array to process.
const CommandSetInputArray = "SetInputArrayToProcess"

type propertyParser func(n *node) (model.FilterPropertyData, error)

var propertyParsers = map[string]propertyParser{
	TagIntVector:    parseIntVector,
	TagDoubleVector: parseDoubleVector,
	TagStringVector: parseStringVector,
	TagProperty:     parseGeneric,
}

// parseCommon reads the attributes shared by every property element.
func parseCommon(n *node) (model.FilterPropertyData, error) {
	name, ok := n.textAttr("name")
	if !ok {
		return model.FilterPropertyData{}, propertyf("", "missing name attribute on %s", n.tag())
	}
	data := model.FilterPropertyData{
		Identifier:  model.CleanIdentifier(name, ""),
		DisplayName: n.textOr("label", name),
		Command:     n.textOr("command", ""),
	}
	if v, ok := n.attr("number_of_elements"); ok {
		num, err := strconv.Atoi(v)
		if err != nil {
			return data, &PropertyError{Property: data.Identifier, Msg: "invalid number_of_elements", Err: err}
		}
		data.NumElem = num
		data.HasNumElem = true
	}
	if v, ok := n.attr("information_only"); ok {
		flag, err := strconv.Atoi(v)
		if err != nil {
			return data, &PropertyError{Property: data.Identifier, Msg: "invalid information_only", Err: err}
		}
		data.InformationOnly = flag > 0
	}
	if doc := n.find("Documentation"); doc != nil {
		data.Doc = doc.text()
	}
	return data, nil
}

func parseIntVector(n *node) (model.FilterPropertyData, error) {
	data, err := parseCommon(n)
	if err != nil {
		return data, err
	}
	if data.InformationOnly {
		return data, propertyf(data.Identifier, "information_only IntVectorProperty is not supported")
	}

	switch {
	case n.has("BooleanDomain"):
		if data.HasNumElem && data.NumElem >= 2 {
			return data, propertyf(data.Identifier, "BooleanDomain with %d components is not supported", data.NumElem)
		}
		kind := model.Bool{}
		if v, ok := n.attr("default_values"); ok {
			i, err := strconv.Atoi(v)
			if err != nil {
				return data, &PropertyError{Property: data.Identifier, Msg: "invalid boolean default", Err: err}
			}
			kind.Default = i != 0
		}
		data.Kind = kind

	case n.has("EnumerationDomain"):
		kind := model.IntOption{DefaultIndex: model.NoSelection}
		for _, entry := range n.find("EnumerationDomain").Children {
			if entry.tag() != "Entry" {
				continue
			}
			value, err := strconv.Atoi(entry.attrOr("value", ""))
			if err != nil {
				return data, &PropertyError{Property: data.Identifier, Msg: "invalid enumeration value", Err: err}
			}
			kind.Options = append(kind.Options, model.Option{Label: entry.textOr("text", ""), Value: value})
		}
		if v, ok := n.attr("default_values"); ok {
			def, err := strconv.Atoi(v)
			if err != nil {
				return data, &PropertyError{Property: data.Identifier, Msg: "invalid enumeration default", Err: err}
			}
			for i, opt := range kind.Options {
				if opt.Value == def {
					kind.DefaultIndex = i
					break
				}
			}
		}
		data.Kind = kind

	case n.has("ExtentDomain"):
		kind := model.Extent{}
		if v, ok := n.attr("default_values"); ok {
			if kind.Default, err = parseInts(v); err != nil {
				return data, &PropertyError{Property: data.Identifier, Msg: "invalid extent default", Err: err}
			}
		}
		if rp := n.findPath("ExtentDomain/RequiredProperties"); rp != nil {
			for _, p := range rp.Children {
				if p.tag() != TagProperty {
					continue
				}
				kind.Required = append(kind.Required, model.RequiredProperty{
					Function: p.textOr("function", ""),
					Name:     p.textOr("name", ""),
				})
			}
		}
		data.Kind = kind

	case data.HasNumElem && data.NumElem >= 0 && data.NumElem <= 4:
		kind := model.IntVec{}
		if v, ok := n.attr("default_values"); ok {
			if kind.Default, err = parseInts(v); err != nil {
				return data, &PropertyError{Property: data.Identifier, Msg: "invalid default_values", Err: err}
			}
		}
		if domain := n.find("IntRangeDomain"); domain != nil {
			if v, ok := domain.attr("min"); ok {
				if kind.Min, err = parseInts(v); err != nil {
					return data, &PropertyError{Property: data.Identifier, Msg: "invalid min", Err: err}
				}
			}
			if v, ok := domain.attr("max"); ok {
				if kind.Max, err = parseInts(v); err != nil {
					return data, &PropertyError{Property: data.Identifier, Msg: "invalid max", Err: err}
				}
			}
		}
		data.Kind = kind

	default:
		return data, propertyf(data.Identifier, "unhandled IntVectorProperty with %d elements", data.NumElem)
	}
	return data, nil
}

func parseDoubleVector(n *node) (model.FilterPropertyData, error) {
	data, err := parseCommon(n)
	if err != nil {
		return data, err
	}
	if data.InformationOnly {
		return data, propertyf(data.Identifier, "information_only DoubleVectorProperty is not supported")
	}
	if !data.HasNumElem || data.NumElem < 0 || data.NumElem > 4 {
		return data, propertyf(data.Identifier, "unhandled DoubleVectorProperty with %d elements", data.NumElem)
	}

	kind := model.DoubleVec{}
	if v, ok := n.attr("default_values"); ok {
		if kind.Default, err = parseFloats(v); err != nil {
			return data, &PropertyError{Property: data.Identifier, Msg: "invalid default_values", Err: err}
		}
	}
	if domain := n.find("DoubleRangeDomain"); domain != nil {
		if v, ok := domain.attr("min"); ok {
			if kind.Min, err = parseFloats(v); err != nil {
				return data, &PropertyError{Property: data.Identifier, Msg: "invalid min", Err: err}
			}
		}
		if v, ok := domain.attr("max"); ok {
			if kind.Max, err = parseFloats(v); err != nil {
				return data, &PropertyError{Property: data.Identifier, Msg: "invalid max", Err: err}
			}
		}
	}
	data.Kind = kind
	return data, nil
}

func parseStringVector(n *node) (model.FilterPropertyData, error) {
	data, err := parseCommon(n)
	if err != nil {
		return data, err
	}
	if data.InformationOnly {
		return data, propertyf(data.Identifier, "information_only StringVectorProperty is not supported")
	}

	switch {
	case data.Command == CommandSetInputArray:
		kind, err := parseFieldSelection(n)
		if err != nil {
			return data, &PropertyError{Property: data.Identifier, Msg: "invalid field selection default", Err: err}
		}
		data.Kind = kind
	case n.has("FileListDomain"):
		def, _ := n.rawAttr("default_values")
		data.Kind = model.File{Default: def}
	default:
		def, _ := n.rawAttr("default_values")
		data.Kind = model.String{Default: def}
	}
	return data, nil
}

// parseFieldSelection reads up to five positional defaults:
// component, sub-index, tertiary index, association, fixed field name.
func parseFieldSelection(n *node) (model.FieldSelection, error) {
	kind := model.FieldSelection{
		Default: model.FieldDefault{Association: model.DefaultAssociation},
	}
	if p := n.findPath("ArrayListDomain/RequiredProperties/Property"); p != nil {
		kind.Inport = p.textOr("name", "")
	}

	// Field selections spell the unset default "None" as well.
	v, ok := n.attr("default_values")
	if !ok || v == "None" {
		return kind, nil
	}
	tokens := strings.Fields(v)
	if len(tokens) > 5 {
		tokens = tokens[:5]
	}
	var err error
	slots := []*int{&kind.Default.Component, &kind.Default.SubIndex, &kind.Default.Tertiary, &kind.Default.Association}
	for i, tok := range tokens {
		if i < len(slots) {
			if *slots[i], err = strconv.Atoi(tok); err != nil {
				return kind, err
			}
			continue
		}
		kind.Default.Name = tok
		kind.Default.HasName = true
	}
	return kind, nil
}

func parseGeneric(n *node) (model.FilterPropertyData, error) {
	data, err := parseCommon(n)
	if err != nil {
		return data, err
	}
	if data.InformationOnly {
		return data, propertyf(data.Identifier, "information_only Property is not supported")
	}
	if widget, _ := n.attr("panel_widget"); widget == "command_button" {
		data.Kind = model.Button{}
		return data, nil
	}
	return data, propertyf(data.Identifier, "unhandled Property")
}
