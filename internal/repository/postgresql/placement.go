package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/position"
	"github.com/wilma-platform/wilma-backend-go/internal/pkg/database"
)

const selectPlacements = `
	SELECT ` + positionColumns + `, pl.completed
	FROM positions p
	JOIN placements pl ON pl.position_id = p.id
`

type placementRepositoryImpl struct {
	db *database.DB
}

func NewPlacementRepository(db *database.DB) position.PlacementRepository {
	return &placementRepositoryImpl{db: db}
}

func scanPlacement(row pgx.Row) (position.Placement, error) {
	var pl position.Placement
	err := row.Scan(append(positionScanTargets(&pl.Position), &pl.Completed)...)
	return pl, err
}

// FindAll implements position.PlacementRepository.
func (r *placementRepositoryImpl) FindAll(ctx context.Context) ([]*position.Placement, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, selectPlacements+` ORDER BY p.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get placements: %w", err)
	}
	defer rows.Close()

	var placements []*position.Placement
	for rows.Next() {
		pl, err := scanPlacement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan placement: %w", err)
		}
		placements = append(placements, &pl)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return placements, nil
}

// FindByID implements position.PlacementRepository.
func (r *placementRepositoryImpl) FindByID(ctx context.Context, id int64) (*position.Placement, error) {
	q := GetQuerier(ctx, r.db)

	pl, err := scanPlacement(q.QueryRow(ctx, selectPlacements+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get placement: %w", err)
	}

	return &pl, nil
}

// ExistsByID implements position.PlacementRepository.
func (r *placementRepositoryImpl) ExistsByID(ctx context.Context, id int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM placements WHERE position_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check placement existence: %w", err)
	}

	return exists, nil
}

// Save implements position.PlacementRepository.
func (r *placementRepositoryImpl) Save(ctx context.Context, pl position.Placement) (position.Placement, error) {
	pl.Kind = position.KindPlacement

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		id, err := upsertPosition(ctx, q, pl.Position)
		if err != nil {
			return err
		}
		pl.ID = id

		query := `
			INSERT INTO placements (position_id, completed)
			VALUES ($1, $2)
			ON CONFLICT (position_id) DO UPDATE SET completed = EXCLUDED.completed
		`
		if _, err := q.Exec(ctx, query, pl.ID, pl.Completed); err != nil {
			return fmt.Errorf("failed to save placement details: %w", err)
		}

		if _, err := q.Exec(ctx, `DELETE FROM jobs WHERE position_id = $1`, pl.ID); err != nil {
			return fmt.Errorf("failed to clear job details: %w", err)
		}

		return nil
	})
	if err != nil {
		return position.Placement{}, err
	}

	return pl, nil
}

// SaveAll implements position.PlacementRepository.
func (r *placementRepositoryImpl) SaveAll(ctx context.Context, placements []position.Placement) ([]position.Placement, error) {
	saved := make([]position.Placement, 0, len(placements))

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		for _, pl := range placements {
			result, err := r.Save(ctx, pl)
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

// DeleteByID implements position.PlacementRepository.
func (r *placementRepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM positions WHERE id = $1 AND kind = $2`, id, position.KindPlacement); err != nil {
		return fmt.Errorf("failed to delete placement: %w", err)
	}

	return nil
}
