package document

import (
	"time"

	"github.com/google/uuid"
)

// Document is a file a user has uploaded and may attach to applications.
type Document struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Path        string    `json:"path"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
