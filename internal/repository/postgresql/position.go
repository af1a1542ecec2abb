package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/position"
	"github.com/wilma-platform/wilma-backend-go/internal/pkg/database"
)

const positionColumns = `p.id, p.kind, p.partner, p.start_date, p.end_date, p.period, p.location, p.description, p.filled, p.approved`

type positionRepositoryImpl struct {
	db *database.DB
}

func NewPositionRepository(db *database.DB) position.PositionRepository {
	return &positionRepositoryImpl{db: db}
}

// positionScanTargets returns scan destinations matching positionColumns.
func positionScanTargets(p *position.Position) []any {
	return []any{
		&p.ID,
		&p.Kind,
		&p.Partner,
		&p.StartDate,
		&p.EndDate,
		&p.Period,
		&p.Location,
		&p.Description,
		&p.Filled,
		&p.Approved,
	}
}

// upsertPosition writes the shared position row and returns its id. A zero
// id inserts a new row; any other id overwrites the row with that id, creating
// it when absent.
func upsertPosition(ctx context.Context, q database.Querier, p position.Position) (int64, error) {
	var id int64

	if p.ID == 0 {
		query := `
			INSERT INTO positions (kind, partner, start_date, end_date, period, location, description, filled, approved)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`
		err := q.QueryRow(ctx, query,
			p.Kind, p.Partner, p.StartDate, p.EndDate, p.Period, p.Location, p.Description, p.Filled, p.Approved,
		).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("failed to insert position: %w", err)
		}
		return id, nil
	}

	query := `
		INSERT INTO positions (id, kind, partner, start_date, end_date, period, location, description, filled, approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			kind = EXCLUDED.kind,
			partner = EXCLUDED.partner,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			period = EXCLUDED.period,
			location = EXCLUDED.location,
			description = EXCLUDED.description,
			filled = EXCLUDED.filled,
			approved = EXCLUDED.approved,
			updated_at = NOW()
		RETURNING id, (xmax = 0) AS inserted
	`
	var inserted bool
	err := q.QueryRow(ctx, query,
		p.ID, p.Kind, p.Partner, p.StartDate, p.EndDate, p.Period, p.Location, p.Description, p.Filled, p.Approved,
	).Scan(&id, &inserted)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert position %d: %w", p.ID, err)
	}

	if inserted {
		if err := syncSequence(ctx, q, "positions"); err != nil {
			return 0, err
		}
	}

	return id, nil
}

// FindAll implements position.PositionRepository.
func (r *positionRepositoryImpl) FindAll(ctx context.Context) ([]*position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + positionColumns + ` FROM positions p ORDER BY p.id ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get positions: %w", err)
	}
	defer rows.Close()

	var positions []*position.Position
	for rows.Next() {
		var p position.Position
		if err := rows.Scan(positionScanTargets(&p)...); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, &p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return positions, nil
}

// FindByID implements position.PositionRepository.
func (r *positionRepositoryImpl) FindByID(ctx context.Context, id int64) (*position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + positionColumns + ` FROM positions p WHERE p.id = $1`

	var p position.Position
	err := q.QueryRow(ctx, query, id).Scan(positionScanTargets(&p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get position: %w", err)
	}

	return &p, nil
}

// ExistsByID implements position.PositionRepository.
func (r *positionRepositoryImpl) ExistsByID(ctx context.Context, id int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM positions WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check position existence: %w", err)
	}

	return exists, nil
}

// Save implements position.PositionRepository. Only the shared columns are
// written; job and placement details are left as they are.
func (r *positionRepositoryImpl) Save(ctx context.Context, p position.Position) (position.Position, error) {
	if p.Kind == "" {
		return position.Position{}, fmt.Errorf("failed to save position: kind is required")
	}

	id, err := upsertPosition(ctx, GetQuerier(ctx, r.db), p)
	if err != nil {
		return position.Position{}, err
	}

	p.ID = id
	return p, nil
}

// SaveAll implements position.PositionRepository.
func (r *positionRepositoryImpl) SaveAll(ctx context.Context, positions []position.Position) ([]position.Position, error) {
	saved := make([]position.Position, 0, len(positions))

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		for _, p := range positions {
			result, err := r.Save(ctx, p)
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

// DeleteByID implements position.PositionRepository. Job and placement rows
// go with it through ON DELETE CASCADE.
func (r *positionRepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM positions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}

	return nil
}
