package position

import (
	"context"

	"github.com/wilma-platform/wilma-backend-go/internal/pkg/crud"
)

type PositionRepository interface {
	crud.Repository[Position, int64]
}

type JobRepository interface {
	crud.Repository[Job, int64]
}

type PlacementRepository interface {
	crud.Repository[Placement, int64]
}

type ExpressionOfInterestRepository interface {
	crud.Repository[ExpressionOfInterest, int64]
}

type ApplicationRepository interface {
	crud.Repository[Application, int64]
	FindByViewed(ctx context.Context, viewed bool) ([]Application, error)
}
