package parser

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/seitarof/gen-vtkwrap/internal/model"
)

// Document structure tags.
const (
	TagRoot          = "ServerManagerConfiguration"
	TagProxyGroup    = "ProxyGroup"
	TagSourceProxy   = "SourceProxy"
	TagWriterProxy   = "WriterProxy"
	TagProxy         = "Proxy"
	TagCompoundProxy = "CompoundSourceProxy"
)

// Meta describes where a document came from and how its filters are classified.
type Meta struct {
	Source   string
	Category string
	Tags     string
}

// Parser turns server manager XML into filter records.
type Parser interface {
	Parse(data []byte, meta Meta) ([]model.FilterData, error)
}

type parserImpl struct {
	log     *zap.Logger
	verbose bool
}

// New returns the default parser. verbose adds the offending XML to diagnostics.
func New(log *zap.Logger, verbose bool) Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &parserImpl{log: log, verbose: verbose}
}

// Parse returns one FilterData per proxy. A *StructureError is returned when
// the root or a proxy group has the wrong shape; malformed proxies and
// properties are logged and skipped.
func (p *parserImpl) Parse(data []byte, meta Meta) ([]model.FilterData, error) {
	root, err := decode(data)
	if err != nil {
		return nil, &StructureError{Source: meta.Source, Msg: "invalid xml", Err: err}
	}
	if root.tag() != TagRoot {
		return nil, &StructureError{
			Source: meta.Source,
			Msg:    fmt.Sprintf("unexpected element, expected %q found %q", TagRoot, root.tag()),
		}
	}

	filters := []model.FilterData{}
	for i := range root.Children {
		group := &root.Children[i]
		if group.tag() != TagProxyGroup {
			return nil, &StructureError{
				Source: meta.Source,
				Msg:    fmt.Sprintf("unexpected element, expected %q found %q", TagProxyGroup, group.tag()),
			}
		}
		filters = append(filters, p.parseProxyGroup(group, meta)...)
	}
	return filters, nil
}

func (p *parserImpl) parseProxyGroup(group *node, meta Meta) []model.FilterData {
	filters := []model.FilterData{}
	for i := range group.Children {
		proxy := &group.Children[i]
		switch proxy.tag() {
		case TagCompoundProxy:
			// Sub-proxies are not resolved.
			p.log.Debug("skipping compound proxy",
				zap.String("source", meta.Source),
				zap.String("filter", proxy.textOr("name", "")))
			continue
		case TagSourceProxy, TagWriterProxy, TagProxy:
		default:
			p.log.Error("unexpected element, expected a proxy",
				zap.String("source", meta.Source),
				zap.String("tag", proxy.tag()))
			continue
		}

		data, err := p.parseProxy(proxy, meta)
		if err != nil {
			p.log.Error("skipping proxy",
				zap.String("source", meta.Source),
				zap.String("tag", proxy.tag()),
				zap.Error(err))
			continue
		}
		filters = append(filters, data)
	}
	return filters
}

func (p *parserImpl) parseProxy(proxy *node, meta Meta) (model.FilterData, error) {
	name, ok := proxy.textAttr("name")
	if !ok {
		return model.FilterData{}, structuref("%s without name", proxy.tag())
	}
	className, ok := proxy.textAttr("class")
	if !ok {
		return model.FilterData{}, structuref("%s %q without class", proxy.tag(), name)
	}

	desc, doc := proxyDocs(proxy.find("Documentation"))
	data := model.FilterData{
		Identifier:  name,
		DisplayName: proxy.textOr("label", name),
		ClassName:   className,
		Category:    meta.Category,
		Tags:        meta.Tags,
		Desc:        desc,
		Doc:         doc,
	}

	for i := range proxy.Children {
		elem := &proxy.Children[i]
		if parse, ok := propertyParsers[elem.tag()]; ok {
			prop, err := parse(elem)
			if err != nil {
				p.propertyFailed(elem, data.Identifier, meta, err)
				continue
			}
			data.Props = append(data.Props, prop)
			continue
		}

		switch elem.tag() {
		case "InputProperty":
			in, err := parseInput(elem)
			if err != nil {
				return data, err
			}
			data.Inports = append(data.Inports, in)
		case "OutputPort":
			out, err := parseOutput(elem)
			if err != nil {
				return data, err
			}
			data.Outports = append(data.Outports, out)
		case "PropertyGroup":
			label, ok := elem.textAttr("label")
			if !ok {
				p.unhandled(elem, data.Identifier, meta)
				continue
			}
			members := []string{}
			for _, m := range elem.Children {
				if m.tag() == TagProperty {
					members = append(members, model.CleanIdentifier(m.textOr("name", ""), ""))
				}
			}
			data.Groups.Add(label, members...)
		case "Documentation", "Hints", "Deprecated":
		default:
			p.unhandled(elem, data.Identifier, meta)
		}
	}
	return data, nil
}

func (p *parserImpl) propertyFailed(elem *node, filter string, meta Meta, err error) {
	fields := []zap.Field{
		zap.String("source", meta.Source),
		zap.String("filter", filter),
		zap.String("property", elem.textOr("name", "")),
		zap.Error(err),
	}
	if p.verbose {
		fields = append(fields, zap.String("xml", elem.raw()))
	}
	p.log.Error("property not translated", fields...)
}

func (p *parserImpl) unhandled(elem *node, filter string, meta Meta) {
	fields := []zap.Field{
		zap.String("source", meta.Source),
		zap.String("filter", filter),
		zap.String("tag", elem.tag()),
	}
	if p.verbose {
		fields = append(fields, zap.String("xml", elem.raw()))
	}
	p.log.Warn("no parser for element", fields...)
}

// proxyDocs returns the short help and the long documentation. The long text
// prefers the element content, then long_help, then the short help.
func proxyDocs(doc *node) (string, string) {
	if doc == nil {
		return "", ""
	}
	short := collapseSpaces(doc.textOr("short_help", ""))
	if text := doc.text(); text != "" {
		return short, text
	}
	if long, ok := doc.textAttr("long_help"); ok {
		return short, long
	}
	return short, short
}

func parseInput(n *node) (model.InputData, error) {
	name, ok := n.textAttr("name")
	if !ok {
		return model.InputData{}, structuref("InputProperty without name")
	}
	data := model.InputData{Identifier: name}
	if dt := n.findPath("DataTypeDomain/DataType"); dt != nil {
		data.DataType = dt.textOr("value", "")
	}
	if domain := n.find("InputArrayDomain"); domain != nil {
		if v, ok := domain.attr("number_of_components"); ok {
			comps, err := parseCommaInts(v)
			if err != nil {
				return data, &StructureError{Msg: fmt.Sprintf("InputProperty %q: invalid number_of_components", name), Err: err}
			}
			data.NumComp = comps
		}
	}
	if doc := n.find("Documentation"); doc != nil {
		data.Doc = doc.text()
	}
	return data, nil
}

func parseOutput(n *node) (model.OutputData, error) {
	index, err := strconv.Atoi(n.attrOr("index", ""))
	if err != nil {
		return model.OutputData{}, &StructureError{Msg: "OutputPort with invalid index", Err: err}
	}
	return model.OutputData{
		Identifier:  n.textOr("id", fmt.Sprintf("outport%d", index)),
		DisplayName: n.textOr("name", ""),
		Index:       index,
	}, nil
}
