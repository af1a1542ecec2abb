package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/document"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/position"
	"github.com/wilma-platform/wilma-backend-go/internal/pkg/database"
)

const selectApplications = `
	SELECT a.id, a.message, a.viewed, a.created_at,
		` + positionColumns + `,
		u.id, u.email, u.first_name, u.last_name, u.created_at
	FROM position_applications a
	JOIN positions p ON p.id = a.position_id
	JOIN users u ON u.id = a.applicant_id
`

type applicationRepositoryImpl struct {
	db *database.DB
}

func NewApplicationRepository(db *database.DB) position.ApplicationRepository {
	return &applicationRepositoryImpl{db: db}
}

func scanApplication(row pgx.Row) (position.Application, error) {
	var a position.Application
	targets := []any{&a.ID, &a.Message, &a.Viewed, &a.CreatedAt}
	targets = append(targets, positionScanTargets(&a.Position)...)
	targets = append(targets,
		&a.Applicant.ID,
		&a.Applicant.Email,
		&a.Applicant.FirstName,
		&a.Applicant.LastName,
		&a.Applicant.CreatedAt,
	)
	err := row.Scan(targets...)
	return a, err
}

func (r *applicationRepositoryImpl) query(ctx context.Context, where string, args ...any) ([]*position.Application, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, selectApplications+where+` ORDER BY a.id ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get applications: %w", err)
	}
	defer rows.Close()

	var applications []*position.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		applications = append(applications, &a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	// A transaction holds a single connection, which must be free for the next query.
	rows.Close()

	if err := r.attachDocuments(ctx, q, applications); err != nil {
		return nil, err
	}

	return applications, nil
}

// attachDocuments loads the linked documents of every application in one query.
func (r *applicationRepositoryImpl) attachDocuments(ctx context.Context, q database.Querier, applications []*position.Application) error {
	if len(applications) == 0 {
		return nil
	}

	byID := make(map[int64]*position.Application, len(applications))
	ids := make([]int64, 0, len(applications))
	for _, a := range applications {
		a.Documents = []document.Document{}
		byID[a.ID] = a
		ids = append(ids, a.ID)
	}

	query := `
		SELECT ad.application_id, d.id, d.owner_id, d.name, d.content_type, d.path, d.uploaded_at
		FROM position_application_documents ad
		JOIN user_documents d ON d.id = ad.document_id
		WHERE ad.application_id = ANY($1)
		ORDER BY ad.application_id, d.uploaded_at, d.id
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to get application documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var applicationID int64
		var d document.Document
		if err := rows.Scan(&applicationID, &d.ID, &d.OwnerID, &d.Name, &d.ContentType, &d.Path, &d.UploadedAt); err != nil {
			return fmt.Errorf("failed to scan application document: %w", err)
		}
		if a, ok := byID[applicationID]; ok {
			a.Documents = append(a.Documents, d)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}

	return nil
}

// FindAll implements position.ApplicationRepository.
func (r *applicationRepositoryImpl) FindAll(ctx context.Context) ([]*position.Application, error) {
	return r.query(ctx, "")
}

// FindByID implements position.ApplicationRepository.
func (r *applicationRepositoryImpl) FindByID(ctx context.Context, id int64) (*position.Application, error) {
	applications, err := r.query(ctx, ` WHERE a.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(applications) == 0 {
		return nil, nil
	}

	return applications[0], nil
}

// FindByViewed implements position.ApplicationRepository.
func (r *applicationRepositoryImpl) FindByViewed(ctx context.Context, viewed bool) ([]position.Application, error) {
	applications, err := r.query(ctx, ` WHERE a.viewed = $1`, viewed)
	if err != nil {
		return nil, err
	}

	result := make([]position.Application, 0, len(applications))
	for _, a := range applications {
		result = append(result, *a)
	}

	return result, nil
}

// ExistsByID implements position.ApplicationRepository.
func (r *applicationRepositoryImpl) ExistsByID(ctx context.Context, id int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM position_applications WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check application existence: %w", err)
	}

	return exists, nil
}

// Save implements position.ApplicationRepository. The application row and its
// document links are replaced in one transaction, and the stored application
// is read back so position and applicant come out fully populated.
func (r *applicationRepositoryImpl) Save(ctx context.Context, a position.Application) (position.Application, error) {
	var saved position.Application

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		id, err := r.upsertRow(ctx, q, a)
		if err != nil {
			return err
		}

		if _, err := q.Exec(ctx, `DELETE FROM position_application_documents WHERE application_id = $1`, id); err != nil {
			return fmt.Errorf("failed to clear application documents: %w", err)
		}

		for _, d := range a.Documents {
			_, err := q.Exec(ctx, `
				INSERT INTO position_application_documents (application_id, document_id)
				VALUES ($1, $2)
				ON CONFLICT DO NOTHING
			`, id, d.ID)
			if err != nil {
				return fmt.Errorf("failed to link document %s to application %d: %w", d.ID, id, err)
			}
		}

		stored, err := r.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if stored == nil {
			return fmt.Errorf("application %d missing after save", id)
		}
		saved = *stored

		return nil
	})
	if err != nil {
		return position.Application{}, err
	}

	return saved, nil
}

func (r *applicationRepositoryImpl) upsertRow(ctx context.Context, q database.Querier, a position.Application) (int64, error) {
	var id int64

	if a.ID == 0 {
		query := `
			INSERT INTO position_applications (position_id, applicant_id, message, viewed, created_at)
			VALUES ($1, $2, $3, $4, NOW())
			RETURNING id
		`
		if err := q.QueryRow(ctx, query, a.Position.ID, a.Applicant.ID, a.Message, a.Viewed).Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to create application: %w", err)
		}
		return id, nil
	}

	query := `
		INSERT INTO position_applications (id, position_id, applicant_id, message, viewed, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (id) DO UPDATE SET
			position_id = EXCLUDED.position_id,
			applicant_id = EXCLUDED.applicant_id,
			message = EXCLUDED.message,
			viewed = EXCLUDED.viewed
		RETURNING id, (xmax = 0) AS inserted
	`
	var inserted bool
	err := q.QueryRow(ctx, query, a.ID, a.Position.ID, a.Applicant.ID, a.Message, a.Viewed).Scan(&id, &inserted)
	if err != nil {
		return 0, fmt.Errorf("failed to save application %d: %w", a.ID, err)
	}

	if inserted {
		if err := syncSequence(ctx, q, "position_applications"); err != nil {
			return 0, err
		}
	}

	return id, nil
}

// SaveAll implements position.ApplicationRepository.
func (r *applicationRepositoryImpl) SaveAll(ctx context.Context, applications []position.Application) ([]position.Application, error) {
	saved := make([]position.Application, 0, len(applications))

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		for _, a := range applications {
			result, err := r.Save(ctx, a)
			if err != nil {
				return err
			}
			saved = append(saved, result)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// DeleteByID implements position.ApplicationRepository.
func (r *applicationRepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM position_applications WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}

	return nil
}
