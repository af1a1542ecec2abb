package position

import "errors"

var (
	ErrPositionNotFound             = errors.New("position not found")
	ErrJobNotFound                  = errors.New("job not found")
	ErrPlacementNotFound            = errors.New("placement not found")
	ErrExpressionOfInterestNotFound = errors.New("expression of interest not found")
	ErrApplicationNotFound          = errors.New("application not found")
)
