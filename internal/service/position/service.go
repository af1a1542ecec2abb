package position

import (
	"context"

	"github.com/google/uuid"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/document"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/position"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/user"
	"github.com/wilma-platform/wilma-backend-go/internal/pkg/crud"
	"github.com/wilma-platform/wilma-backend-go/internal/pkg/logger"
)

type positionServiceImpl struct {
	positions       *crud.Ops[position.Position, int64]
	jobs            *crud.Ops[position.Job, int64]
	placements      *crud.Ops[position.Placement, int64]
	interests       *crud.Ops[position.ExpressionOfInterest, int64]
	applications    *crud.Ops[position.Application, int64]
	applicationRepo position.ApplicationRepository
	userService     user.UserService
	documentService document.DocumentService
	logger          logger.AppLogger
}

func NewPositionService(
	positionRepo position.PositionRepository,
	jobRepo position.JobRepository,
	placementRepo position.PlacementRepository,
	interestRepo position.ExpressionOfInterestRepository,
	applicationRepo position.ApplicationRepository,
	userService user.UserService,
	documentService document.DocumentService,
	appLogger logger.AppLogger,
) position.PositionService {
	if appLogger == nil {
		appLogger = logger.NewNopLogger()
	}

	return &positionServiceImpl{
		positions:       crud.NewOps[position.Position, int64](positionRepo, position.ErrPositionNotFound),
		jobs:            crud.NewOps[position.Job, int64](jobRepo, position.ErrJobNotFound),
		placements:      crud.NewOps[position.Placement, int64](placementRepo, position.ErrPlacementNotFound),
		interests:       crud.NewOps[position.ExpressionOfInterest, int64](interestRepo, position.ErrExpressionOfInterestNotFound),
		applications:    crud.NewOps[position.Application, int64](applicationRepo, position.ErrApplicationNotFound),
		applicationRepo: applicationRepo,
		userService:     userService,
		documentService: documentService,
		logger:          appLogger,
	}
}

// ==================== POSITION OPERATIONS ====================

func (s *positionServiceImpl) GetPosition(ctx context.Context, id int64) (position.Position, error) {
	return s.positions.FindByID(ctx, id)
}

// ==================== JOB OPERATIONS ====================

// CreateJob stores a new job. Any id or status flags on the request are ignored.
func (s *positionServiceImpl) CreateJob(ctx context.Context, req position.JobRequest) (position.Job, error) {
	job := jobFromRequest(req)
	job.ID = 0
	job.Filled = false
	job.Approved = false

	return s.jobs.Save(ctx, job)
}

// UpdateJob overwrites the job identified by req.ID with every field of req.
// No existence check is made, so an unknown id results in a new record.
func (s *positionServiceImpl) UpdateJob(ctx context.Context, req position.JobRequest) (position.Job, error) {
	return s.jobs.Save(ctx, jobFromRequest(req))
}

func (s *positionServiceImpl) ListJobs(ctx context.Context) ([]position.Job, error) {
	return s.jobs.FindAll(ctx)
}

// ==================== PLACEMENT OPERATIONS ====================

func (s *positionServiceImpl) CreatePlacement(ctx context.Context, req position.PlacementRequest) (position.Placement, error) {
	placement := placementFromRequest(req)
	placement.ID = 0
	placement.Filled = false
	placement.Approved = false
	placement.Completed = false

	return s.placements.Save(ctx, placement)
}

func (s *positionServiceImpl) UpdatePlacement(ctx context.Context, req position.PlacementRequest) (position.Placement, error) {
	return s.placements.Save(ctx, placementFromRequest(req))
}

func (s *positionServiceImpl) ListPlacements(ctx context.Context) ([]position.Placement, error) {
	return s.placements.FindAll(ctx)
}

// ==================== EXPRESSION OF INTEREST OPERATIONS ====================

func (s *positionServiceImpl) ListExpressionsOfInterest(ctx context.Context) ([]position.ExpressionOfInterest, error) {
	return s.interests.FindAll(ctx)
}

func (s *positionServiceImpl) CreateExpressionOfInterest(ctx context.Context, eoi position.ExpressionOfInterest) (position.ExpressionOfInterest, error) {
	return s.interests.Save(ctx, eoi)
}

func (s *positionServiceImpl) UpdateExpressionOfInterest(ctx context.Context, eoi position.ExpressionOfInterest) (position.ExpressionOfInterest, error) {
	return s.interests.Save(ctx, eoi)
}

func (s *positionServiceImpl) GetExpressionOfInterest(ctx context.Context, id int64) (position.ExpressionOfInterest, error) {
	return s.interests.FindByID(ctx, id)
}

// DeleteExpressionOfInterest reports StatusNotDeleted for an unknown id instead
// of an error. The error return is reserved for storage failures.
func (s *positionServiceImpl) DeleteExpressionOfInterest(ctx context.Context, id int64) (position.DeleteStatus, error) {
	deleted, err := s.interests.DeleteIfExists(ctx, id)
	if err != nil {
		return position.StatusNotDeleted, err
	}
	if !deleted {
		return position.StatusNotDeleted, nil
	}

	return position.StatusDeleted, nil
}

// ==================== APPLICATION OPERATIONS ====================

// SubmitApplication files an application from the current user for an
// existing position, attaching the requested documents the user owns.
func (s *positionServiceImpl) SubmitApplication(ctx context.Context, req position.ApplicationRequest) (position.Application, error) {
	pos, err := s.positions.FindByID(ctx, req.PositionID)
	if err != nil {
		return position.Application{}, err
	}

	applicant, err := s.userService.CurrentUser(ctx)
	if err != nil {
		return position.Application{}, err
	}

	docs, err := s.FilterUserDocuments(ctx, req)
	if err != nil {
		return position.Application{}, err
	}

	application, err := s.applications.Save(ctx, position.Application{
		Position:  pos,
		Applicant: applicant,
		Documents: docs,
		Message:   req.Message,
		Viewed:    false,
	})
	if err != nil {
		return position.Application{}, err
	}

	s.logger.Info("application submitted successfully",
		"application_id", application.ID,
		"applicant_id", application.Applicant.ID,
	)

	return application, nil
}

// FilterUserDocuments returns the current user's documents whose ids appear in
// req.FileIDs, each at most once, in the order the user's documents are listed.
// Ids the user does not own are ignored.
func (s *positionServiceImpl) FilterUserDocuments(ctx context.Context, req position.ApplicationRequest) ([]document.Document, error) {
	docs, err := s.documentService.FindAllForUser(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[uuid.UUID]struct{}, len(req.FileIDs))
	for _, id := range req.FileIDs {
		wanted[id] = struct{}{}
	}

	seen := make(map[uuid.UUID]struct{}, len(docs))
	result := make([]document.Document, 0, len(req.FileIDs))
	for _, doc := range docs {
		if _, dup := seen[doc.ID]; dup {
			continue
		}
		seen[doc.ID] = struct{}{}

		if _, ok := wanted[doc.ID]; ok {
			result = append(result, doc)
		}
	}

	return result, nil
}

func (s *positionServiceImpl) ListUnviewedApplications(ctx context.Context) ([]position.Application, error) {
	return s.applicationRepo.FindByViewed(ctx, false)
}

func (s *positionServiceImpl) UpdateApplications(ctx context.Context, applications []position.Application) ([]position.Application, error) {
	return s.applications.SaveAll(ctx, applications)
}

// ==================== HELPER FUNCTIONS ====================

func jobFromRequest(req position.JobRequest) position.Job {
	return position.Job{
		Position: position.Position{
			ID:          req.ID,
			Kind:        position.KindJob,
			Partner:     req.Partner,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Period:      req.Period,
			Location:    req.Location,
			Description: req.Description,
			Filled:      req.Filled,
			Approved:    req.Approved,
		},
		PayRate:      req.PayRate,
		PayType:      req.PayType,
		PayFrequency: req.PayFrequency,
	}
}

func placementFromRequest(req position.PlacementRequest) position.Placement {
	return position.Placement{
		Position: position.Position{
			ID:          req.ID,
			Kind:        position.KindPlacement,
			Partner:     req.Partner,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Period:      req.Period,
			Location:    req.Location,
			Description: req.Description,
			Filled:      req.Filled,
			Approved:    req.Approved,
		},
		Completed: req.Completed,
	}
}
