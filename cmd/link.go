package cmd

import (
	"fmt"
	"os"

	"github.com/rogersnm/roster/internal/dirlink"
	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Manage the directory-local roster file",
	Long: `Link a directory to a roster file. Commands run inside the directory,
or any directory below it, use the linked file unless --file or
ROSTER_DATA_FILE says otherwise.`,
}

var linkSetCmd = &cobra.Command{
	Use:   "set <file>",
	Short: "Link the current directory to a roster file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		if err := dirlink.Write(cwd, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Linked %s to %s\n", dirlink.FileName, args[0])
		return nil
	},
}

var linkShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the roster file linked to this directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		link, ok, err := dirlink.Find(cwd)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "No roster file linked. Run: roster link set <file>")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (from %s)\n", link.Path(), link.Dir)
		return nil
	},
}

var linkRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the link in the current directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		removed, err := dirlink.Remove(cwd)
		if err != nil {
			return err
		}
		if !removed {
			fmt.Fprintln(cmd.OutOrStdout(), "No roster file linked.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Unlinked roster file.")
		return nil
	},
}

func init() {
	linkCmd.AddCommand(linkSetCmd)
	linkCmd.AddCommand(linkShowCmd)
	linkCmd.AddCommand(linkRemoveCmd)
	rootCmd.AddCommand(linkCmd)
}
