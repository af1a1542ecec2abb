package document

import "context"

type DocumentService interface {
	// FindAllForUser returns every document owned by the user of the current request.
	FindAllForUser(ctx context.Context) ([]Document, error)
}
