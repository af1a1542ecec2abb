package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/wilma-platform/wilma-backend-go/internal/domain/position"
	"github.com/wilma-platform/wilma-backend-go/internal/pkg/database"
)

const selectJobs = `
	SELECT ` + positionColumns + `, j.pay_rate, j.pay_type, j.pay_frequency
	FROM positions p
	JOIN jobs j ON j.position_id = p.id
`

type jobRepositoryImpl struct {
	db *database.DB
}

func NewJobRepository(db *database.DB) position.JobRepository {
	return &jobRepositoryImpl{db: db}
}

func scanJob(row pgx.Row) (position.Job, error) {
	var j position.Job
	targets := append(positionScanTargets(&j.Position), &j.PayRate, &j.PayType, &j.PayFrequency)
	err := row.Scan(targets...)
	return j, err
}

// FindAll implements position.JobRepository.
func (r *jobRepositoryImpl) FindAll(ctx context.Context) ([]*position.Job, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, selectJobs+` ORDER BY p.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*position.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, &j)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return jobs, nil
}

// FindByID implements position.JobRepository.
func (r *jobRepositoryImpl) FindByID(ctx context.Context, id int64) (*position.Job, error) {
	q := GetQuerier(ctx, r.db)

	j, err := scanJob(q.QueryRow(ctx, selectJobs+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &j, nil
}

// ExistsByID implements position.JobRepository.
func (r *jobRepositoryImpl) ExistsByID(ctx context.Context, id int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE position_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check job existence: %w", err)
	}

	return exists, nil
}

// Save implements position.JobRepository. The position row and the job row
// are written in one transaction.
func (r *jobRepositoryImpl) Save(ctx context.Context, j position.Job) (position.Job, error) {
	j.Kind = position.KindJob

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		id, err := upsertPosition(ctx, q, j.Position)
		if err != nil {
			return err
		}
		j.ID = id

		query := `
			INSERT INTO jobs (position_id, pay_rate, pay_type, pay_frequency)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (position_id) DO UPDATE SET
				pay_rate = EXCLUDED.pay_rate,
				pay_type = EXCLUDED.pay_type,
				pay_frequency = EXCLUDED.pay_frequency
		`
		if _, err := q.Exec(ctx, query, j.ID, j.PayRate, j.PayType, j.PayFrequency); err != nil {
			return fmt.Errorf("failed to save job details: %w", err)
		}

		// A position that changed kind keeps no stale placement details.
		if _, err := q.Exec(ctx, `DELETE FROM placements WHERE position_id = $1`, j.ID); err != nil {
			return fmt.Errorf("failed to clear placement details: %w", err)
		}

		return nil
	})
	if err != nil {
		return position.Job{}, err
	}

	return j, nil
}

// SaveAll implements position.JobRepository.
func (r *jobRepositoryImpl) SaveAll(ctx context.Context, jobs []position.Job) ([]position.Job, error) {
	saved := make([]position.Job, 0, len(jobs))

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		for _, j := range jobs {
			result, err := r.Save(ctx, j)
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

// DeleteByID implements position.JobRepository.
func (r *jobRepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM positions WHERE id = $1 AND kind = $2`, id, position.KindJob); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	return nil
}
