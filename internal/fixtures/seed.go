package fixtures

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/document"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/position"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/user"
	"github.com/wilma-platform/wilma-backend-go/internal/pkg/logger"
	"github.com/wilma-platform/wilma-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

// Seed is the content of a seed file.
type Seed struct {
	Users                 []SeedUser                 `yaml:"users" validate:"dive"`
	Jobs                  []SeedJob                  `yaml:"jobs" validate:"dive"`
	Placements            []SeedPlacement            `yaml:"placements" validate:"dive"`
	ExpressionsOfInterest []SeedExpressionOfInterest `yaml:"expressions_of_interest" validate:"dive"`
}

type SeedUser struct {
	Email     string         `yaml:"email" validate:"required,email"`
	FirstName string         `yaml:"first_name"`
	LastName  string         `yaml:"last_name"`
	Documents []SeedDocument `yaml:"documents" validate:"dive"`
}

type SeedDocument struct {
	Name        string `yaml:"name" validate:"required"`
	ContentType string `yaml:"content_type"`
	Path        string `yaml:"path"`
}

// SeedPosition holds the fields jobs and placements share. Dates use the
// YYYY-MM-DD layout.
type SeedPosition struct {
	Partner     string `yaml:"partner" validate:"required"`
	StartDate   string `yaml:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `yaml:"end_date" validate:"required,datetime=2006-01-02"`
	Period      string `yaml:"period"`
	Location    string `yaml:"location"`
	Description string `yaml:"description"`
	Filled      bool   `yaml:"filled"`
	Approved    bool   `yaml:"approved"`
}

type SeedJob struct {
	SeedPosition `yaml:",inline"`
	PayRate      float64 `yaml:"pay_rate" validate:"gte=0"`
	PayType      string  `yaml:"pay_type" validate:"omitempty,oneof=hourly salary stipend unpaid"`
	PayFrequency string  `yaml:"pay_frequency" validate:"omitempty,oneof=weekly fortnightly monthly once"`
}

type SeedPlacement struct {
	SeedPosition `yaml:",inline"`
	Completed    bool `yaml:"completed"`
}

type SeedExpressionOfInterest struct {
	Name    string `yaml:"name" validate:"required"`
	Email   string `yaml:"email" validate:"required,email"`
	Phone   string `yaml:"phone"`
	Message string `yaml:"message"`
}

// Result counts what Apply stored.
type Result struct {
	Users                 int
	Documents             int
	Jobs                  int
	Placements            int
	ExpressionsOfInterest int
	SkippedUsers          int
}

// Load reads and validates a seed file.
func Load(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, err
	}
	return Parse(data)
}

func Parse(data []byte) (Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("failed to parse seed: %w", err)
	}

	if err := validator.Struct(&seed); err != nil {
		return Seed{}, err
	}

	return seed, nil
}

type Seeder struct {
	userRepo        user.UserRepository
	documentRepo    document.DocumentRepository
	positionService position.PositionService
	logger          logger.AppLogger
}

func NewSeeder(
	userRepo user.UserRepository,
	documentRepo document.DocumentRepository,
	positionService position.PositionService,
	appLogger logger.AppLogger,
) *Seeder {
	if appLogger == nil {
		appLogger = logger.NewNopLogger()
	}

	return &Seeder{
		userRepo:        userRepo,
		documentRepo:    documentRepo,
		positionService: positionService,
		logger:          appLogger,
	}
}

// Apply stores seed through the repositories and the position service. Users
// whose email is already registered are skipped along with their documents.
// Status flags on jobs and placements are applied with a follow-up update,
// since creation always stores them unset.
func (s *Seeder) Apply(ctx context.Context, seed Seed) (Result, error) {
	var result Result

	for _, su := range seed.Users {
		u, err := s.userRepo.Create(ctx, user.User{
			Email:     su.Email,
			FirstName: su.FirstName,
			LastName:  su.LastName,
		})
		if errors.Is(err, user.ErrUserEmailExists) {
			s.logger.Warn("seed user already exists, skipping", "email", su.Email)
			result.SkippedUsers++
			continue
		}
		if err != nil {
			return result, fmt.Errorf("failed to seed user %s: %w", su.Email, err)
		}
		result.Users++

		for _, sd := range su.Documents {
			_, err := s.documentRepo.Create(ctx, document.Document{
				OwnerID:     u.ID,
				Name:        sd.Name,
				ContentType: sd.ContentType,
				Path:        sd.Path,
			})
			if err != nil {
				return result, fmt.Errorf("failed to seed document %s: %w", sd.Name, err)
			}
			result.Documents++
		}
	}

	for _, sj := range seed.Jobs {
		req, err := jobRequest(sj)
		if err != nil {
			return result, err
		}

		job, err := s.positionService.CreateJob(ctx, req)
		if err != nil {
			return result, fmt.Errorf("failed to seed job %s: %w", sj.Partner, err)
		}
		if sj.Filled || sj.Approved {
			req.ID = job.ID
			if _, err := s.positionService.UpdateJob(ctx, req); err != nil {
				return result, fmt.Errorf("failed to update seeded job %d: %w", job.ID, err)
			}
		}
		result.Jobs++
	}

	for _, sp := range seed.Placements {
		req, err := placementRequest(sp)
		if err != nil {
			return result, err
		}

		placement, err := s.positionService.CreatePlacement(ctx, req)
		if err != nil {
			return result, fmt.Errorf("failed to seed placement %s: %w", sp.Partner, err)
		}
		if sp.Filled || sp.Approved || sp.Completed {
			req.ID = placement.ID
			if _, err := s.positionService.UpdatePlacement(ctx, req); err != nil {
				return result, fmt.Errorf("failed to update seeded placement %d: %w", placement.ID, err)
			}
		}
		result.Placements++
	}

	for _, se := range seed.ExpressionsOfInterest {
		_, err := s.positionService.CreateExpressionOfInterest(ctx, position.ExpressionOfInterest{
			Name:    se.Name,
			Email:   se.Email,
			Phone:   se.Phone,
			Message: se.Message,
		})
		if err != nil {
			return result, fmt.Errorf("failed to seed expression of interest from %s: %w", se.Email, err)
		}
		result.ExpressionsOfInterest++
	}

	s.logger.Info("seed applied",
		"users", result.Users,
		"documents", result.Documents,
		"jobs", result.Jobs,
		"placements", result.Placements,
		"expressions_of_interest", result.ExpressionsOfInterest,
		"skipped_users", result.SkippedUsers,
	)

	return result, nil
}

// ==================== HELPER FUNCTIONS ====================

func parseDates(sp SeedPosition) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, sp.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date for %s: %w", sp.Partner, err)
	}
	end, err := time.Parse(dateLayout, sp.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date for %s: %w", sp.Partner, err)
	}
	return start, end, nil
}

func jobRequest(sj SeedJob) (position.JobRequest, error) {
	start, end, err := parseDates(sj.SeedPosition)
	if err != nil {
		return position.JobRequest{}, err
	}

	return position.JobRequest{
		Partner:      sj.Partner,
		StartDate:    start,
		EndDate:      end,
		Period:       sj.Period,
		Location:     sj.Location,
		Description:  sj.Description,
		Filled:       sj.Filled,
		Approved:     sj.Approved,
		PayRate:      sj.PayRate,
		PayType:      position.PayType(sj.PayType),
		PayFrequency: position.PayFrequency(sj.PayFrequency),
	}, nil
}

func placementRequest(sp SeedPlacement) (position.PlacementRequest, error) {
	start, end, err := parseDates(sp.SeedPosition)
	if err != nil {
		return position.PlacementRequest{}, err
	}

	return position.PlacementRequest{
		Partner:     sp.Partner,
		StartDate:   start,
		EndDate:     end,
		Period:      sp.Period,
		Location:    sp.Location,
		Description: sp.Description,
		Filled:      sp.Filled,
		Approved:    sp.Approved,
		Completed:   sp.Completed,
	}, nil
}
