package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/wilma-platform/wilma-backend-go/internal/config"
	"github.com/wilma-platform/wilma-backend-go/internal/pkg/jwt"
)

var (
	tokenUserID int64
	tokenEmail  string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for local development",
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenUserID <= 0 {
			return errors.New("--user-id must be positive")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
		token, expiresAt, err := jwtService.GenerateAccessToken(tokenUserID, tokenEmail)
		if err != nil {
			return fmt.Errorf("failed to generate token: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().Int64Var(&tokenUserID, "user-id", 0, "id of the user the token is issued for")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "email claim")
}
