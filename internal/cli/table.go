package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/seitarof/gen-vtkwrap/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// RenderTable lists the filters with their properties, ports and groups.
func RenderTable(filters []model.FilterData) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Display name", "Class", "Properties", "Ports", "Groups")

	for _, f := range filters {
		t.Row(f.DisplayName, f.ClassName, propertyCell(f.Props), portCell(f), groupCell(f.Groups))
	}
	return t.String()
}

func propertyCell(props []model.FilterPropertyData) string {
	lines := make([]string, 0, len(props))
	for _, p := range props {
		kind := "none"
		if p.Kind != nil {
			kind = p.Kind.Tag().String()
		}
		if p.HasNumElem {
			kind = fmt.Sprintf("%s[%d]", kind, p.NumElem)
		}
		lines = append(lines, p.Identifier+" "+kind)
	}
	return strings.Join(lines, "\n")
}

func portCell(f model.FilterData) string {
	lines := make([]string, 0, len(f.Inports)+len(f.Outports))
	for _, in := range f.Inports {
		line := "in  " + in.Identifier
		if in.DataType != "" {
			line += " (" + in.DataType + ")"
		}
		lines = append(lines, line)
	}
	for _, out := range f.Outports {
		lines = append(lines, fmt.Sprintf("out %s #%d", out.DisplayName, out.Index))
	}
	return strings.Join(lines, "\n")
}

func groupCell(groups model.Groups) string {
	lines := make([]string, 0, len(groups))
	for _, g := range groups {
		lines = append(lines, g.Label+": "+strings.Join(g.Members, ", "))
	}
	return strings.Join(lines, "\n")
}
