package model

// FilterData holds everything parsed from one proxy element.
type FilterData struct {
	Identifier  string
	DisplayName string
	ClassName   string
	Category    string
	Tags        string
	Desc        string
	Doc         string
	Props       []FilterPropertyData
	Inports     []InputData
	Outports    []OutputData
	Groups      Groups
}

// FilterPropertyData is one UI-bindable property of a filter.
type FilterPropertyData struct {
	Identifier      string
	DisplayName     string
	Command         string
	NumElem         int
	HasNumElem      bool
	InformationOnly bool
	Kind            Kind
	Doc             string
}

// Arity returns the declared number of elements, or 0 when unset.
func (p FilterPropertyData) Arity() int {
	if !p.HasNumElem {
		return 0
	}
	return p.NumElem
}

// InputData describes one input port.
type InputData struct {
	Identifier string
	DataType   string
	NumComp    []int
	Doc        string
}

// OutputData describes one output port.
type OutputData struct {
	Identifier  string
	DisplayName string
	Index       int
}

// Group is a labelled set of property identifiers shown together in the UI.
type Group struct {
	Label   string
	Members []string
}

// Groups keeps property groups in first-seen label order.
type Groups []Group

// Add appends members to the group with the given label, creating it if needed.
func (g *Groups) Add(label string, members ...string) {
	for i := range *g {
		if (*g)[i].Label == label {
			(*g)[i].Members = append((*g)[i].Members, members...)
			return
		}
	}
	*g = append(*g, Group{Label: label, Members: append([]string(nil), members...)})
}
