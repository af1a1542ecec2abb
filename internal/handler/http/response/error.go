package response

import (
	"errors"
	"net/http"

	"github.com/wilma-platform/wilma-backend-go/internal/domain/position"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/user"
	"github.com/wilma-platform/wilma-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// User domain errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing access token")
	case errors.Is(err, user.ErrUserClaimMissing), errors.Is(err, user.ErrUserClaimMalformed):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")

	// Position domain errors
	case errors.Is(err, position.ErrPositionNotFound):
		NotFound(w, "Position not found")
	case errors.Is(err, position.ErrJobNotFound):
		NotFound(w, "Job not found")
	case errors.Is(err, position.ErrPlacementNotFound):
		NotFound(w, "Placement not found")
	case errors.Is(err, position.ErrExpressionOfInterestNotFound):
		NotFound(w, "Expression of interest not found")
	case errors.Is(err, position.ErrApplicationNotFound):
		NotFound(w, "Application not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
