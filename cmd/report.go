package cmd

import (
	"fmt"

	"github.com/rogersnm/roster/internal/export"
	"github.com/rogersnm/roster/internal/markdown"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarise headcount and payroll",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		md := markdown.Report(st.All(), st.Capacity())
		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		rendered, err := markdown.RenderMarkdown(md)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Export employees to an Excel workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		employees := st.List()
		if all, _ := cmd.Flags().GetBool("all"); all {
			employees = st.All()
		}
		if err := export.SaveXLSX(args[0], employees); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d employee(s) to %s\n", len(employees), args[0])
		return nil
	},
}

func init() {
	reportCmd.Flags().Bool("raw", false, "print markdown without terminal styling")
	exportCmd.Flags().BoolP("all", "a", false, "include inactive employees")
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
}
