package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

const (
	tableName       = "reviews"
	uniqueViolation = "23505"
)

var columns = []string{
	"id",
	"appointment_id",
	"salon_id",
	"staff_id",
	"service_id",
	"client_id",
	"rating",
	"comment",
	"created_at",
}

// Repository репозиторий отзывов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет отзыв. Один отзыв на запись обеспечивается уникальным индексом.
func (r *Repository) Create(ctx context.Context, rv *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("appointment_id", "salon_id", "staff_id", "service_id", "client_id", "rating", "comment").
		Values(rv.AppointmentID, rv.SalonID, rv.StaffID, rv.ServiceID, rv.ClientID, rv.Rating, rv.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rv.ID, &createdAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrReviewAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rv.CreatedAt = createdAt.Time
	return rv, nil
}

// GetBySalonID получает отзывы салона, новые первыми
func (r *Repository) GetBySalonID(ctx context.Context, salonID int64) ([]*domain.Review, error) {
	return r.list(ctx, "GetBySalonID", squirrel.Eq{"salon_id": salonID})
}

// GetBySalonAndPeriod получает отзывы салона, оставленные в [from, to)
func (r *Repository) GetBySalonAndPeriod(ctx context.Context, salonID int64, from, to time.Time) ([]*domain.Review, error) {
	return r.list(ctx, "GetBySalonAndPeriod", squirrel.And{
		squirrel.Eq{"salon_id": salonID},
		squirrel.GtOrEq{"created_at": from},
		squirrel.Lt{"created_at": to},
	})
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(where).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		var rv domain.Review
		var createdAt sql.NullTime

		err := rows.Scan(
			&rv.ID,
			&rv.AppointmentID,
			&rv.SalonID,
			&rv.StaffID,
			&rv.ServiceID,
			&rv.ClientID,
			&rv.Rating,
			&rv.Comment,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		rv.CreatedAt = createdAt.Time
		reviews = append(reviews, &rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return reviews, nil
}
