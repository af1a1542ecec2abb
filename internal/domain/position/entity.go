package position

import (
	"net/http"
	"time"

	"github.com/wilma-platform/wilma-backend-go/internal/domain/document"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/user"
)

type Kind string

const (
	KindJob       Kind = "job"
	KindPlacement Kind = "placement"
)

type PayType string

const (
	PayTypeHourly  PayType = "hourly"
	PayTypeSalary  PayType = "salary"
	PayTypeStipend PayType = "stipend"
	PayTypeUnpaid  PayType = "unpaid"
)

type PayFrequency string

const (
	PayFrequencyWeekly      PayFrequency = "weekly"
	PayFrequencyFortnightly PayFrequency = "fortnightly"
	PayFrequencyMonthly     PayFrequency = "monthly"
	PayFrequencyOnce        PayFrequency = "once"
)

// Position holds the fields shared by jobs and placements.
// An ID of zero means the position has not been stored yet.
type Position struct {
	ID          int64     `json:"id"`
	Kind        Kind      `json:"kind"`
	Partner     string    `json:"partner"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Period      string    `json:"period"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Filled      bool      `json:"filled"`
	Approved    bool      `json:"approved"`
}

type Job struct {
	Position
	PayRate      float64      `json:"pay_rate"`
	PayType      PayType      `json:"pay_type"`
	PayFrequency PayFrequency `json:"pay_frequency"`
}

type Placement struct {
	Position
	Completed bool `json:"completed"`
}

// ExpressionOfInterest records interest in working with the organisation,
// optionally in a particular position, without a formal application.
type ExpressionOfInterest struct {
	ID         int64     `json:"id"`
	PositionID *int64    `json:"position_id,omitempty"`
	Name       string    `json:"name" validate:"required,max=200"`
	Email      string    `json:"email" validate:"required,email,max=320"`
	Phone      string    `json:"phone,omitempty" validate:"max=32"`
	Message    string    `json:"message,omitempty" validate:"max=5000"`
	CreatedAt  time.Time `json:"created_at"`
}

type Application struct {
	ID        int64               `json:"id"`
	Position  Position            `json:"position"`
	Applicant user.User           `json:"applicant"`
	Documents []document.Document `json:"documents"`
	Message   string              `json:"message"`
	Viewed    bool                `json:"viewed"`
	CreatedAt time.Time           `json:"created_at"`
}

// DeleteStatus reports the outcome of a delete that never fails on a missing id.
type DeleteStatus int

const (
	StatusDeleted DeleteStatus = iota + 1
	StatusNotDeleted
)

// HTTPStatus maps the outcome to the status code returned to API clients.
func (s DeleteStatus) HTTPStatus() int {
	if s == StatusDeleted {
		return http.StatusNoContent
	}
	return http.StatusBadRequest
}

func (s DeleteStatus) String() string {
	switch s {
	case StatusDeleted:
		return "deleted"
	case StatusNotDeleted:
		return "not deleted"
	default:
		return "unknown"
	}
}
