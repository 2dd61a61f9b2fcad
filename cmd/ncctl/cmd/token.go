package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coursecloud/service/internal/auth"
	"github.com/coursecloud/service/internal/config"
)

func init() {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for the API",
		RunE:  runToken,
	}

	tokenCmd.Flags().String("principal", "", "account the token speaks for")
	_ = tokenCmd.MarkFlagRequired("principal")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	principal, _ := cmd.Flags().GetString("principal")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	token, err := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL).IssueToken(principal)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
