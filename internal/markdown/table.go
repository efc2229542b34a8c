package markdown

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rogersnm/roster/internal/model"
)

var (
	headerRowStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle      = lipgloss.NewStyle().Padding(0, 1)
	salaryStyle    = cellStyle.Align(lipgloss.Right)
)

const salaryCol = 3

func RenderEmployeeTable(employees []model.Employee) string {
	if len(employees) == 0 {
		return "No employees found."
	}
	rows := make([][]string, len(employees))
	for i, e := range employees {
		rows[i] = []string{strconv.Itoa(e.ID), e.Name, e.Role, model.FormatSalary(e.Salary)}
	}
	return renderTable([]string{"ID", "Name", "Role", "Salary"}, rows)
}

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerRowStyle
			case col == salaryCol:
				return salaryStyle
			default:
				return cellStyle
			}
		})
	return t.Render()
}
