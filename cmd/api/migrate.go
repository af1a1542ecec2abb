package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wilma-platform/wilma-backend-go/internal/migrations"
)

var printSchema bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if printSchema {
			fmt.Fprint(cmd.OutOrStdout(), migrations.Schema())
			return nil
		}

		a, err := loadApp()
		if err != nil {
			return err
		}

		db, err := a.connect(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := migrations.Migrate(cmd.Context(), db); err != nil {
			return err
		}

		a.logger.Info("schema migrated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().BoolVar(&printSchema, "print", false, "print the schema instead of applying it")
}
