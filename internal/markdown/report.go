package markdown

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rogersnm/roster/internal/model"
)

// Report builds a markdown summary of the roster: headcount, payroll and
// a per-role breakdown of active employees.
func Report(all []model.Employee, capacity int) string {
	var (
		active  int
		payroll float64
		byRole  = map[string]int{}
		pay     = map[string]float64{}
	)
	for _, e := range all {
		if !e.Active {
			continue
		}
		active++
		payroll += e.Salary
		byRole[e.Role]++
		pay[e.Role] += e.Salary
	}

	var sb strings.Builder
	sb.WriteString("# Roster report\n\n")
	fmt.Fprintf(&sb, "- Active employees: %d\n", active)
	fmt.Fprintf(&sb, "- Inactive employees: %d\n", len(all)-active)
	fmt.Fprintf(&sb, "- Slots used: %d / %d\n", len(all), capacity)
	fmt.Fprintf(&sb, "- Total payroll: %s\n", model.FormatSalary(payroll))
	if active > 0 {
		fmt.Fprintf(&sb, "- Average salary: %s\n", model.FormatSalary(payroll/float64(active)))
	}

	if len(byRole) == 0 {
		return sb.String()
	}

	roles := make([]string, 0, len(byRole))
	for r := range byRole {
		roles = append(roles, r)
	}
	sort.Strings(roles)

	sb.WriteString("\n## By role\n\n")
	sb.WriteString("| Role | Headcount | Payroll |\n")
	sb.WriteString("|------|----------:|--------:|\n")
	for _, r := range roles {
		fmt.Fprintf(&sb, "| %s | %d | %s |\n", escapeCell(r), byRole[r], model.FormatSalary(pay[r]))
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
