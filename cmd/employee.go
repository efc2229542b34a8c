package cmd

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/rogersnm/roster/internal/editor"
	"github.com/rogersnm/roster/internal/markdown"
	"github.com/rogersnm/roster/internal/model"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <name> <role> <salary>",
	Short: "Add an employee",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		salary, err := parseSalary(args[2])
		if err != nil {
			return err
		}
		e, err := st.Add(args[0], args[1], salary)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added employee %s (ID: %d)\n", e.Name, e.ID)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List active employees",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderEmployeeTable(st.List()))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show employee details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		e, err := activeEmployee(id)
		if err != nil {
			return err
		}
		fields := []string{
			markdown.RenderField("ID", strconv.Itoa(e.ID)),
			markdown.RenderField("Role", e.Role),
			markdown.RenderField("Salary", model.FormatSalary(e.Salary)),
			markdown.RenderField("Status", markdown.RenderStatus(e.Active)),
		}
		fmt.Fprint(cmd.OutOrStdout(), markdown.RenderEntityHeader(e.Name, fields))
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an employee's name, role or salary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		e, err := activeEmployee(id)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if !flags.Changed("name") && !flags.Changed("role") && !flags.Changed("salary") {
			return fmt.Errorf("at least one update flag is required (--name, --role, --salary)")
		}
		name, role, salary := e.Name, e.Role, e.Salary
		if flags.Changed("name") {
			name, _ = flags.GetString("name")
		}
		if flags.Changed("role") {
			role, _ = flags.GetString("role")
		}
		if flags.Changed("salary") {
			s, _ := flags.GetString("salary")
			if salary, err = parseSalary(s); err != nil {
				return err
			}
		}

		if _, err := st.Update(id, name, role, salary); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated employee %d\n", id)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an employee in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		e, err := activeEmployee(id)
		if err != nil {
			return err
		}

		data, err := markdown.MarshalEmployee(e)
		if err != nil {
			return err
		}
		edited, err := editor.Edit(data, fmt.Sprintf("employee-%d-*.md", id))
		if err != nil {
			return err
		}
		if bytes.Equal(data, edited) {
			fmt.Fprintln(cmd.OutOrStdout(), "No changes.")
			return nil
		}
		ef, err := markdown.ParseEmployee(bytes.NewReader(edited))
		if err != nil {
			return err
		}

		if _, err := st.Update(id, ef.Name, ef.Role, ef.Salary); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated employee %d\n", id)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Deactivate an employee",
	Long:  "Deactivate an employee. The record stays in the roster file and keeps its slot.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		e, err := activeEmployee(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Employee: %s (%d)\n", e.Name, e.ID)
		if err := confirmDelete(cmd, e); err != nil {
			return err
		}
		if err := st.SoftDelete(e.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted employee %d\n", e.ID)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Find active employees whose name contains the query (case-sensitive)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderEmployeeTable(st.Search(args[0])))
		return nil
	},
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Rewrite the roster file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := st.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d record(s)\n", st.Len())
		return nil
	},
}

// confirmDelete asks before deactivating unless --force is set.
func confirmDelete(cmd *cobra.Command, e model.Employee) error {
	if force, _ := cmd.Flags().GetBool("force"); force {
		return nil
	}
	var ok bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Delete %s?", e.Name)).
		Value(&ok).
		Run()
	if err != nil || !ok {
		return fmt.Errorf("deletion cancelled")
	}
	return nil
}

func init() {
	updateCmd.Flags().StringP("name", "n", "", "new name")
	updateCmd.Flags().StringP("role", "r", "", "new role")
	updateCmd.Flags().StringP("salary", "s", "", "new salary")

	deleteCmd.Flags().BoolP("force", "f", false, "skip confirmation")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(saveCmd)
}
