package main

import (
	"github.com/spf13/cobra"
	"github.com/wilma-platform/wilma-backend-go/internal/fixtures"
	"github.com/wilma-platform/wilma-backend-go/internal/pkg/logger"
	"github.com/wilma-platform/wilma-backend-go/internal/repository/postgresql"
	documentService "github.com/wilma-platform/wilma-backend-go/internal/service/document"
	positionService "github.com/wilma-platform/wilma-backend-go/internal/service/position"
	userService "github.com/wilma-platform/wilma-backend-go/internal/service/user"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load users, documents and positions from a YAML seed file",
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, err := fixtures.Load(seedFile)
		if err != nil {
			return err
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

		appLogger := logger.NewAppLogger(a.logger)
		userRepo := postgresql.NewUserRepository(db)
		documentRepo := postgresql.NewDocumentRepository(db)
		userSvc := userService.NewUserService(userRepo)

		positionSvc := positionService.NewPositionService(
			postgresql.NewPositionRepository(db),
			postgresql.NewJobRepository(db),
			postgresql.NewPlacementRepository(db),
			postgresql.NewExpressionOfInterestRepository(db),
			postgresql.NewApplicationRepository(db),
			userSvc,
			documentService.NewDocumentService(documentRepo, userSvc),
			appLogger,
		)

		_, err = fixtures.NewSeeder(userRepo, documentRepo, positionSvc, appLogger).Apply(cmd.Context(), seed)
		return err
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seed.yaml", "path to the seed file")
}
