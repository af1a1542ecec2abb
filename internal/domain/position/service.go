package position

import (
	"context"

	"github.com/wilma-platform/wilma-backend-go/internal/domain/document"
)

type PositionService interface {
	// Position operations
	GetPosition(ctx context.Context, id int64) (Position, error)

	// Job operations
	CreateJob(ctx context.Context, req JobRequest) (Job, error)
	UpdateJob(ctx context.Context, req JobRequest) (Job, error)
	ListJobs(ctx context.Context) ([]Job, error)

	// Placement operations
	CreatePlacement(ctx context.Context, req PlacementRequest) (Placement, error)
	UpdatePlacement(ctx context.Context, req PlacementRequest) (Placement, error)
	ListPlacements(ctx context.Context) ([]Placement, error)

	// Expression of interest operations
	ListExpressionsOfInterest(ctx context.Context) ([]ExpressionOfInterest, error)
	CreateExpressionOfInterest(ctx context.Context, eoi ExpressionOfInterest) (ExpressionOfInterest, error)
	UpdateExpressionOfInterest(ctx context.Context, eoi ExpressionOfInterest) (ExpressionOfInterest, error)
	GetExpressionOfInterest(ctx context.Context, id int64) (ExpressionOfInterest, error)
	DeleteExpressionOfInterest(ctx context.Context, id int64) (DeleteStatus, error)

	// Application operations
	SubmitApplication(ctx context.Context, req ApplicationRequest) (Application, error)
	FilterUserDocuments(ctx context.Context, req ApplicationRequest) ([]document.Document, error)
	ListUnviewedApplications(ctx context.Context) ([]Application, error)
	UpdateApplications(ctx context.Context, applications []Application) ([]Application, error)
}
