package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/coursecloud/service/internal/provision"
)

func init() {
	uploadCmd := &cobra.Command{
		Use:   "upload FILE...",
		Short: "Upload files into a course folder and share them",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runUpload,
	}

	uploadCmd.Flags().String("course-folder", "", "course folder name, as created by ensure-folder")
	uploadCmd.Flags().String("principal", "", "account to share the files with")
	uploadCmd.Flags().Int("parallel", 4, "number of files uploaded at once")
	_ = uploadCmd.MarkFlagRequired("course-folder")
	_ = uploadCmd.MarkFlagRequired("principal")

	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	folder, _ := cmd.Flags().GetString("course-folder")
	principal, _ := cmd.Flags().GetString("principal")
	parallel, _ := cmd.Flags().GetInt("parallel")
	if parallel < 1 {
		parallel = 1
	}

	e, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	results := make([]provision.Outcome, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(parallel)

	for i, file := range args {
		i, file := i, file
		g.Go(func() error {
			content, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}
			out, err := e.orchestrator.UploadAndShare(ctx, folder, filepath.Base(file), content, principal)
			if err != nil {
				e.logger.Error("upload failed", zap.String("file", file), zap.Error(err))
				return fmt.Errorf("%s: %w", file, err)
			}
			results[i] = out
			return nil
		})
	}

	err = g.Wait()
	for _, out := range results {
		if out.RemoteID > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", out.Path, out.RemoteID, out.URL)
		}
	}
	return err
}
