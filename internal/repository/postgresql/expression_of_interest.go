package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/position"
	"github.com/wilma-platform/wilma-backend-go/internal/pkg/database"
)

const expressionOfInterestColumns = `id, position_id, name, email, phone, message, created_at`

type expressionOfInterestRepositoryImpl struct {
	db *database.DB
}

func NewExpressionOfInterestRepository(db *database.DB) position.ExpressionOfInterestRepository {
	return &expressionOfInterestRepositoryImpl{db: db}
}

func scanExpressionOfInterest(row pgx.Row) (position.ExpressionOfInterest, error) {
	var e position.ExpressionOfInterest
	err := row.Scan(
		&e.ID,
		&e.PositionID,
		&e.Name,
		&e.Email,
		&e.Phone,
		&e.Message,
		&e.CreatedAt,
	)
	return e, err
}

// FindAll implements position.ExpressionOfInterestRepository.
func (r *expressionOfInterestRepositoryImpl) FindAll(ctx context.Context) ([]*position.ExpressionOfInterest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + expressionOfInterestColumns + ` FROM expressions_of_interest ORDER BY id ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get expressions of interest: %w", err)
	}
	defer rows.Close()

	var result []*position.ExpressionOfInterest
	for rows.Next() {
		e, err := scanExpressionOfInterest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expression of interest: %w", err)
		}
		result = append(result, &e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// FindByID implements position.ExpressionOfInterestRepository.
func (r *expressionOfInterestRepositoryImpl) FindByID(ctx context.Context, id int64) (*position.ExpressionOfInterest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + expressionOfInterestColumns + ` FROM expressions_of_interest WHERE id = $1`

	e, err := scanExpressionOfInterest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expression of interest: %w", err)
	}

	return &e, nil
}

// ExistsByID implements position.ExpressionOfInterestRepository.
func (r *expressionOfInterestRepositoryImpl) ExistsByID(ctx context.Context, id int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM expressions_of_interest WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check expression of interest existence: %w", err)
	}

	return exists, nil
}

// Save implements position.ExpressionOfInterestRepository. created_at is set
// on insert and kept on overwrite.
func (r *expressionOfInterestRepositoryImpl) Save(ctx context.Context, e position.ExpressionOfInterest) (position.ExpressionOfInterest, error) {
	q := GetQuerier(ctx, r.db)

	if e.ID == 0 {
		query := `
			INSERT INTO expressions_of_interest (position_id, name, email, phone, message, created_at)
			VALUES ($1, $2, $3, $4, $5, NOW())
			RETURNING ` + expressionOfInterestColumns

		saved, err := scanExpressionOfInterest(q.QueryRow(ctx, query, e.PositionID, e.Name, e.Email, e.Phone, e.Message))
		if err != nil {
			return position.ExpressionOfInterest{}, fmt.Errorf("failed to create expression of interest: %w", err)
		}
		return saved, nil
	}

	var saved position.ExpressionOfInterest
	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		query := `
			INSERT INTO expressions_of_interest (id, position_id, name, email, phone, message, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW())
			ON CONFLICT (id) DO UPDATE SET
				position_id = EXCLUDED.position_id,
				name = EXCLUDED.name,
				email = EXCLUDED.email,
				phone = EXCLUDED.phone,
				message = EXCLUDED.message
			RETURNING ` + expressionOfInterestColumns + `, (xmax = 0) AS inserted`

		var inserted bool
		err := q.QueryRow(ctx, query, e.ID, e.PositionID, e.Name, e.Email, e.Phone, e.Message).Scan(
			&saved.ID,
			&saved.PositionID,
			&saved.Name,
			&saved.Email,
			&saved.Phone,
			&saved.Message,
			&saved.CreatedAt,
			&inserted,
		)
		if err != nil {
			return fmt.Errorf("failed to save expression of interest %d: %w", e.ID, err)
		}

		if inserted {
			return syncSequence(ctx, q, "expressions_of_interest")
		}
		return nil
	})
	if err != nil {
		return position.ExpressionOfInterest{}, err
	}

	return saved, nil
}

// SaveAll implements position.ExpressionOfInterestRepository.
func (r *expressionOfInterestRepositoryImpl) SaveAll(ctx context.Context, entities []position.ExpressionOfInterest) ([]position.ExpressionOfInterest, error) {
	saved := make([]position.ExpressionOfInterest, 0, len(entities))

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		for _, e := range entities {
			result, err := r.Save(ctx, e)
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

// DeleteByID implements position.ExpressionOfInterestRepository.
func (r *expressionOfInterestRepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM expressions_of_interest WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete expression of interest: %w", err)
	}

	return nil
}
