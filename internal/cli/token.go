package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukydev/fleet-control/internal/auth"
	"github.com/ukydev/fleet-control/internal/config"
	"github.com/ukydev/fleet-control/internal/models"
)

func newTokenCmd() *cobra.Command {
	var subject, email, role string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token signed with the configured secret",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			svc, err := auth.NewService(cfg.JWT.Secret, cfg.JWT.Expiry)
			if err != nil {
				return err
			}
			token, err := svc.GenerateToken(subject, email, models.Role(role))
			if err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "Token subject (user ID)")
	cmd.Flags().StringVar(&email, "email", "", "Email claim")
	cmd.Flags().StringVar(&role, "role", string(models.RoleViewer), "One of admin, manager, operator, viewer")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
