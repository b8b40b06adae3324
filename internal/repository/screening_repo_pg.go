package repository

import (
	"context"

	"github.com/Domenick1991/cinemabooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ScreeningRepository interface {
	List(ctx context.Context) ([]domain.Screening, error)
}

type PGScreeningRepository struct {
	db *pgxpool.Pool
}

func NewScreeningRepository(db *pgxpool.Pool) ScreeningRepository {
	return &PGScreeningRepository{db: db}
}

func (r *PGScreeningRepository) List(ctx context.Context) ([]domain.Screening, error) {
	rows, err := r.db.Query(ctx, `SELECT id, start_time, hall, total_seats, created_at FROM screenings ORDER BY start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	screenings := make([]domain.Screening, 0)
	for rows.Next() {
		var s domain.Screening
		if err := rows.Scan(&s.ID, &s.StartTime, &s.Hall, &s.TotalSeats, &s.CreatedAt); err != nil {
			return nil, err
		}
		screenings = append(screenings, s)
	}
	return screenings, rows.Err()
}

var _ ScreeningRepository = (*PGScreeningRepository)(nil)
