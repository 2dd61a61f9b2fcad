package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	ensureCmd := &cobra.Command{
		Use:   "ensure-folder",
		Short: "Create and share the remote folder of a course",
		Long: `Create the root folder and the course folder if missing, share the course folder
with the principal and print its remote id and view URL. Safe to run repeatedly.`,
		RunE: runEnsureFolder,
	}

	ensureCmd.Flags().Int64("course-id", 0, "course id")
	ensureCmd.Flags().String("short-name", "", "course short name")
	ensureCmd.Flags().String("principal", "", "account to share the folder with")
	_ = ensureCmd.MarkFlagRequired("short-name")
	_ = ensureCmd.MarkFlagRequired("principal")

	rootCmd.AddCommand(ensureCmd)
}

func runEnsureFolder(cmd *cobra.Command, _ []string) error {
	courseID, _ := cmd.Flags().GetInt64("course-id")
	shortName, _ := cmd.Flags().GetString("short-name")
	principal, _ := cmd.Flags().GetString("principal")

	e, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	out, err := e.orchestrator.EnsureCourseFolder(cmd.Context(), courseID, shortName, principal)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", out.Path, out.RemoteID, out.URL)
	return nil
}
