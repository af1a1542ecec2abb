package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/document"
	"github.com/wilma-platform/wilma-backend-go/internal/pkg/database"
)

type documentRepositoryImpl struct {
	db *database.DB
}

func NewDocumentRepository(db *database.DB) document.DocumentRepository {
	return &documentRepositoryImpl{db: db}
}

// Create implements document.DocumentRepository. A nil id gets a fresh UUID.
func (r *documentRepositoryImpl) Create(ctx context.Context, d document.Document) (document.Document, error) {
	q := GetQuerier(ctx, r.db)

	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.ContentType == "" {
		d.ContentType = "application/octet-stream"
	}

	query := `
		INSERT INTO user_documents (id, owner_id, name, content_type, path, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING uploaded_at
	`
	if err := q.QueryRow(ctx, query, d.ID, d.OwnerID, d.Name, d.ContentType, d.Path).Scan(&d.UploadedAt); err != nil {
		return document.Document{}, fmt.Errorf("failed to create document: %w", err)
	}

	return d, nil
}

// GetByOwnerID implements document.DocumentRepository.
func (r *documentRepositoryImpl) GetByOwnerID(ctx context.Context, ownerID int64) ([]document.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, owner_id, name, content_type, path, uploaded_at
		FROM user_documents
		WHERE owner_id = $1
		ORDER BY uploaded_at ASC, id ASC
	`

	rows, err := q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get documents: %w", err)
	}
	defer rows.Close()

	var docs []document.Document
	for rows.Next() {
		var d document.Document
		if err := rows.Scan(&d.ID, &d.OwnerID, &d.Name, &d.ContentType, &d.Path, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return docs, nil
}
