package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/rogersnm/roster/internal/markdown"
	"github.com/rogersnm/roster/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	actAdd    = "add"
	actList   = "list"
	actUpdate = "update"
	actDelete = "delete"
	actSearch = "search"
	actSave   = "save"
	actQuit   = "quit"
)

var menuActions = map[string]func(io.Writer) error{
	actAdd:    menuAdd,
	actList:   menuList,
	actUpdate: menuUpdate,
	actDelete: menuDelete,
	actSearch: menuSearch,
	actSave:   menuSave,
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Manage the roster from an interactive menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd.OutOrStdout())
	},
}

// runMenu loops until the user quits. Errors from a single action are
// printed and the loop carries on; quitting saves the roster.
func runMenu(w io.Writer) error {
	for {
		fmt.Fprintln(w, menuHeader())

		var choice string
		err := huh.NewSelect[string]().
			Title("What do you want to do?").
			Options(
				huh.NewOption("Add an employee", actAdd),
				huh.NewOption("List employees", actList),
				huh.NewOption("Update an employee", actUpdate),
				huh.NewOption("Delete an employee", actDelete),
				huh.NewOption("Search by name", actSearch),
				huh.NewOption("Save", actSave),
				huh.NewOption("Quit", actQuit),
			).
			Value(&choice).
			Run()
		if errors.Is(err, huh.ErrUserAborted) {
			choice = actQuit
		} else if err != nil {
			return err
		}

		if choice == actQuit {
			if err := st.Save(); err != nil {
				return err
			}
			fmt.Fprintln(w, "Roster saved. Goodbye!")
			return nil
		}

		if err := menuActions[choice](w); err != nil {
			fmt.Fprintln(w, menuError(err))
		}
	}
}

func menuHeader() string {
	return fmt.Sprintf("Employees: %d active, %d/%d slots used", st.ActiveLen(), st.Len(), st.Capacity())
}

// menuError formats an action error. A failed save is only a warning:
// the change is kept in memory and written by the next successful save.
func menuError(err error) string {
	switch {
	case errors.Is(err, huh.ErrUserAborted):
		return "Cancelled."
	case errors.Is(err, store.ErrIO):
		log.Warn("roster not saved", zap.Error(err))
		return "Warning: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}

func menuAdd(w io.Writer) error {
	var name, role, salaryStr string
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Name").Value(&name),
		huh.NewInput().Title("Role").Value(&role),
		huh.NewInput().Title("Salary").Value(&salaryStr).Validate(validSalary),
	)).Run()
	if err != nil {
		return err
	}
	salary, err := parseSalary(salaryStr)
	if err != nil {
		return err
	}
	e, err := st.Add(name, role, salary)
	if err != nil && !errors.Is(err, store.ErrIO) {
		return err
	}
	fmt.Fprintf(w, "Added employee %s (ID: %d)\n", e.Name, e.ID)
	return err
}

func menuList(w io.Writer) error {
	fmt.Fprintln(w, markdown.RenderEmployeeTable(st.List()))
	return nil
}

func menuUpdate(w io.Writer) error {
	id, err := askID()
	if err != nil {
		return err
	}
	e, err := activeEmployee(id)
	if err != nil {
		return err
	}

	name, role, salaryStr := e.Name, e.Role, fmt.Sprintf("%.2f", e.Salary)
	err = huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Name").Value(&name),
		huh.NewInput().Title("Role").Value(&role),
		huh.NewInput().Title("Salary").Value(&salaryStr).Validate(validSalary),
	)).Run()
	if err != nil {
		return err
	}
	salary, err := parseSalary(salaryStr)
	if err != nil {
		return err
	}
	_, err = st.Update(id, name, role, salary)
	if err != nil && !errors.Is(err, store.ErrIO) {
		return err
	}
	fmt.Fprintf(w, "Updated employee %d\n", id)
	return err
}

func menuDelete(w io.Writer) error {
	id, err := askID()
	if err != nil {
		return err
	}
	e, err := activeEmployee(id)
	if err != nil {
		return err
	}

	var ok bool
	err = huh.NewConfirm().
		Title(fmt.Sprintf("Delete %s?", e.Name)).
		Value(&ok).
		Run()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(w, "Deletion cancelled.")
		return nil
	}
	err = st.SoftDelete(id)
	if err != nil && !errors.Is(err, store.ErrIO) {
		return err
	}
	fmt.Fprintf(w, "Deleted employee %d\n", id)
	return err
}

func menuSearch(w io.Writer) error {
	var query string
	if err := huh.NewInput().Title("Name contains").Value(&query).Run(); err != nil {
		return err
	}
	fmt.Fprintln(w, markdown.RenderEmployeeTable(st.Search(query)))
	return nil
}

func menuSave(w io.Writer) error {
	if err := st.Save(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Saved %d record(s)\n", st.Len())
	return nil
}

func askID() (int, error) {
	var s string
	err := huh.NewInput().
		Title("Employee ID").
		Value(&s).
		Validate(func(v string) error {
			_, err := parseID(v)
			return err
		}).
		Run()
	if err != nil {
		return 0, err
	}
	return parseID(s)
}

func validSalary(s string) error {
	v, err := parseSalary(s)
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("salary cannot be negative")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
