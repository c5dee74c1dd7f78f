package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

const tableName = "working_windows"

// Repository репозиторий недельного расписания мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByStaffID получает все окна мастера, отсортированные по дню недели
func (r *Repository) GetByStaffID(ctx context.Context, staffID int64) ([]*domain.WorkingWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "staff_id", "weekday", "start_time", "end_time", "is_active").
		From(tableName).
		Where(squirrel.Eq{"staff_id": staffID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.WorkingWindow, 0, 7)
	for rows.Next() {
		var w domain.WorkingWindow
		if err := rows.Scan(&w.ID, &w.StaffID, &w.Weekday, &w.Start, &w.End, &w.IsActive); err != nil {
			return nil, fmt.Errorf("%w: GetByStaffID - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByStaffID - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// GetByStaffAndWeekday получает окно мастера на день недели
func (r *Repository) GetByStaffAndWeekday(ctx context.Context, staffID int64, weekday time.Weekday) (*domain.WorkingWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "staff_id", "weekday", "start_time", "end_time", "is_active").
		From(tableName).
		Where(squirrel.Eq{"staff_id": staffID, "weekday": int(weekday)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	var w domain.WorkingWindow
	err = executor.QueryRowContext(ctx, query, args...).Scan(&w.ID, &w.StaffID, &w.Weekday, &w.Start, &w.End, &w.IsActive)
	if err == sql.ErrNoRows {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndWeekday - scan window: %v", ErrScanRow, err)
	}

	return &w, nil
}

// ReplaceForStaff заменяет недельное расписание мастера целиком.
// Должен вызываться внутри транзакции, иначе возможна частичная запись.
func (r *Repository) ReplaceForStaff(ctx context.Context, staffID int64, windows []*domain.WorkingWindow) ([]*domain.WorkingWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"staff_id": staffID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceForStaff - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("%w: ReplaceForStaff - execute delete: %v", ErrExecQuery, err)
	}

	if len(windows) == 0 {
		return []*domain.WorkingWindow{}, nil
	}

	insertBuilder := psqlbuilder.Insert(tableName).
		Columns("staff_id", "weekday", "start_time", "end_time", "is_active")
	for _, w := range windows {
		insertBuilder = insertBuilder.Values(staffID, int(w.Weekday), w.Start, w.End, w.IsActive)
	}

	insertQuery, insertArgs, err := insertBuilder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceForStaff - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, insertQuery, insertArgs...)
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceForStaff - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	// RETURNING отдает строки в порядке VALUES
	for i := 0; rows.Next(); i++ {
		if i >= len(windows) {
			break
		}
		if err := rows.Scan(&windows[i].ID); err != nil {
			return nil, fmt.Errorf("%w: ReplaceForStaff - scan id: %v", ErrScanRow, err)
		}
		windows[i].StaffID = staffID
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ReplaceForStaff - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}
