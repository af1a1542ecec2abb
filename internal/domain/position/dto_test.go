package position

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wilma-platform/wilma-backend-go/internal/pkg/validator"
)

func validJobRequest() JobRequest {
	return JobRequest{
		Partner:   "Acme",
		StartDate: time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		PayType:   PayTypeSalary,
	}
}

func TestJobRequest_Validate(t *testing.T) {
	req := validJobRequest()
	assert.NoError(t, req.Validate())

	req.EndDate = req.StartDate.AddDate(0, 0, -1)
	req.PayType = "barter"
	req.PayRate = -1

	err := req.Validate()
	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)

	fields := validationErrs.ToMap()
	assert.Contains(t, fields, "end_date")
	assert.Contains(t, fields, "pay_type")
	assert.Contains(t, fields, "pay_rate")
}

func TestPlacementRequest_Validate_RequiresPartner(t *testing.T) {
	req := PlacementRequest{
		StartDate: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
	}

	err := req.Validate()
	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "partner")
}

func TestApplicationUpdate_ToApplication(t *testing.T) {
	docID := uuid.New()
	update := ApplicationUpdate{
		ID:          4,
		PositionID:  3,
		ApplicantID: 7,
		DocumentIDs: []uuid.UUID{docID},
		Message:     "hello",
		Viewed:      true,
	}

	app := update.ToApplication()

	assert.Equal(t, int64(4), app.ID)
	assert.Equal(t, int64(3), app.Position.ID)
	assert.Equal(t, int64(7), app.Applicant.ID)
	require.Len(t, app.Documents, 1)
	assert.Equal(t, docID, app.Documents[0].ID)
	assert.True(t, app.Viewed)
}

func TestDeleteStatus(t *testing.T) {
	assert.Equal(t, 204, StatusDeleted.HTTPStatus())
	assert.Equal(t, 400, StatusNotDeleted.HTTPStatus())
	assert.Equal(t, "deleted", StatusDeleted.String())
	assert.Equal(t, "not deleted", StatusNotDeleted.String())
}
