package document

import "context"

type DocumentRepository interface {
	Create(ctx context.Context, doc Document) (Document, error)
	GetByOwnerID(ctx context.Context, ownerID int64) ([]Document, error)
}
