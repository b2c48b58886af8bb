package parser

import (
	"bytes"
	"encoding/xml"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html/charset"
)

// node is a schema-less XML element.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []node     `xml:",any"`
	Inner    string     `xml:",innerxml"`
}

var (
	docPolicy  = bluemonday.StrictPolicy()
	multiSpace = regexp.MustCompile(` +`)
	cdata      = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
)

func decode(data []byte) (*node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel
	var root node
	if err := dec.Decode(&root); err != nil {
		return nil, err
	}
	return &root, nil
}

func (n *node) tag() string { return n.XMLName.Local }

// rawAttr returns the attribute value as written.
func (n *node) rawAttr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// attr reads a value attribute. Empty values and the literal "none" mean
// the attribute was not set.
func (n *node) attr(name string) (string, bool) {
	v, ok := n.textAttr(name)
	if !ok || v == "none" {
		return "", false
	}
	return v, true
}

// textAttr reads a name, label or other free text attribute. Only an empty
// value counts as absent, so labels such as "None" survive.
func (n *node) textAttr(name string) (string, bool) {
	v, ok := n.rawAttr(name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	return v, true
}

func (n *node) textOr(name, def string) string {
	if v, ok := n.textAttr(name); ok {
		return v
	}
	return def
}

func (n *node) attrOr(name, def string) string {
	if v, ok := n.attr(name); ok {
		return v
	}
	return def
}

func (n *node) find(tag string) *node {
	if n == nil {
		return nil
	}
	for i := range n.Children {
		if n.Children[i].tag() == tag {
			return &n.Children[i]
		}
	}
	return nil
}

// findPath follows a slash separated list of child tags.
func (n *node) findPath(path string) *node {
	cur := n
	for _, tag := range strings.Split(path, "/") {
		cur = cur.find(tag)
		if cur == nil {
			return nil
		}
	}
	return cur
}

func (n *node) has(tag string) bool { return n.find(tag) != nil }

// text returns the element content with markup removed and each line trimmed.
func (n *node) text() string {
	if n == nil {
		return ""
	}
	inner := cdata.ReplaceAllStringFunc(n.Inner, func(m string) string {
		return html.EscapeString(cdata.FindStringSubmatch(m)[1])
	})
	return stripEachLine(html.UnescapeString(docPolicy.Sanitize(inner)))
}

// raw reconstructs the element for verbose diagnostics.
func (n *node) raw() string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(n.tag())
	for _, a := range n.Attrs {
		b.WriteString(" ")
		b.WriteString(a.Name.Local)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Value))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	b.WriteString(n.Inner)
	b.WriteString("</")
	b.WriteString(n.tag())
	b.WriteString(">")
	return b.String()
}

func stripEachLine(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func collapseSpaces(s string) string {
	return multiSpace.ReplaceAllString(s, " ")
}

func parseInts(s string) ([]int, error) {
	fields := strings.Fields(s)
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseFloats(s string) ([]float64, error) {
	fields := strings.Fields(s)
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseCommaInts(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
