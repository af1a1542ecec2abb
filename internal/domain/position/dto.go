package position

import (
	"time"

	"github.com/google/uuid"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/document"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/user"
	"github.com/wilma-platform/wilma-backend-go/internal/pkg/validator"
)

// JobRequest carries job fields for both creation and update. ID, Filled and
// Approved are only honoured on update.
type JobRequest struct {
	ID           int64        `json:"id"`
	Partner      string       `json:"partner" validate:"required,max=200"`
	StartDate    time.Time    `json:"start_date" validate:"required"`
	EndDate      time.Time    `json:"end_date" validate:"required,gtefield=StartDate"`
	Period       string       `json:"period" validate:"max=100"`
	Location     string       `json:"location" validate:"max=200"`
	Description  string       `json:"description" validate:"max=5000"`
	Filled       bool         `json:"filled"`
	Approved     bool         `json:"approved"`
	PayRate      float64      `json:"pay_rate" validate:"gte=0"`
	PayType      PayType      `json:"pay_type" validate:"omitempty,oneof=hourly salary stipend unpaid"`
	PayFrequency PayFrequency `json:"pay_frequency" validate:"omitempty,oneof=weekly fortnightly monthly once"`
}

func (r *JobRequest) Validate() error {
	return validator.Struct(r)
}

// PlacementRequest carries placement fields for both creation and update.
// ID and the status flags are only honoured on update.
type PlacementRequest struct {
	ID          int64     `json:"id"`
	Partner     string    `json:"partner" validate:"required,max=200"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
	Period      string    `json:"period" validate:"max=100"`
	Location    string    `json:"location" validate:"max=200"`
	Description string    `json:"description" validate:"max=5000"`
	Filled      bool      `json:"filled"`
	Approved    bool      `json:"approved"`
	Completed   bool      `json:"completed"`
}

func (r *PlacementRequest) Validate() error {
	return validator.Struct(r)
}

type ApplicationRequest struct {
	PositionID int64       `json:"position_id" validate:"gt=0"`
	Message    string      `json:"message" validate:"max=5000"`
	FileIDs    []uuid.UUID `json:"file_ids"`
}

func (r *ApplicationRequest) Validate() error {
	return validator.Struct(r)
}

// ApplicationUpdate is the wire shape for bulk application updates. Position,
// applicant and documents are referenced by id.
type ApplicationUpdate struct {
	ID          int64       `json:"id" validate:"gt=0"`
	PositionID  int64       `json:"position_id" validate:"gt=0"`
	ApplicantID int64       `json:"applicant_id" validate:"gt=0"`
	DocumentIDs []uuid.UUID `json:"document_ids"`
	Message     string      `json:"message" validate:"max=5000"`
	Viewed      bool        `json:"viewed"`
}

type UpdateApplicationsRequest struct {
	Applications []ApplicationUpdate `json:"applications" validate:"required,min=1,dive"`
}

func (r *UpdateApplicationsRequest) Validate() error {
	return validator.Struct(r)
}

// ToApplication builds an application whose references carry ids only; the
// repository resolves the rest when it reloads the saved row.
func (u ApplicationUpdate) ToApplication() Application {
	docs := make([]document.Document, 0, len(u.DocumentIDs))
	for _, id := range u.DocumentIDs {
		docs = append(docs, document.Document{ID: id})
	}

	return Application{
		ID:        u.ID,
		Position:  Position{ID: u.PositionID},
		Applicant: user.User{ID: u.ApplicantID},
		Documents: docs,
		Message:   u.Message,
		Viewed:    u.Viewed,
	}
}
