package teetime

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
	"github.com/m04kA/GolfTee-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GolfTee-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с tee times
// Строки создаются внешним процессом загрузки расписаний,
// сервис их читает и переключает статус при бронировании
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория tee times
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает tee time по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TeeTime, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"club_id",
		"course_name",
		"tee_off_at",
		"base_price",
		"status",
		"created_at",
		"updated_at",
	).
		From("tee_times").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var teeTime domain.TeeTime
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&teeTime.ID,
		&teeTime.ClubID,
		&teeTime.CourseName,
		&teeTime.TeeOffAt,
		&teeTime.BasePrice,
		&teeTime.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTeeTimeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan tee time: %v", ErrScanRow, err)
	}

	teeTime.CreatedAt = createdAt.Time
	teeTime.UpdatedAt = updatedAt.Time

	return &teeTime, nil
}

// MarkBooked условно переводит tee time из open в booked
//
// Условие status = 'open' в WHERE - это и есть защита от двойного
// бронирования: при конкурентной попытке второй UPDATE не затронет
// ни одной строки и вернёт ErrTeeTimeNotOpen. Вызывается только
// внутри сериализуемой транзакции вместе с созданием бронирования
func (r *Repository) MarkBooked(ctx context.Context, id int64) error {
	return r.transition(ctx, id, domain.TeeTimeOpen, domain.TeeTimeBooked, "MarkBooked")
}

// Release возвращает tee time из booked в open после отмены бронирования
func (r *Repository) Release(ctx context.Context, id int64) error {
	return r.transition(ctx, id, domain.TeeTimeBooked, domain.TeeTimeOpen, "Release")
}

// ListByClubAndRange получает tee times клуба с tee-off в [from, to)
func (r *Repository) ListByClubAndRange(ctx context.Context, clubID int64, from, to time.Time) ([]*domain.TeeTime, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"club_id",
		"course_name",
		"tee_off_at",
		"base_price",
		"status",
		"created_at",
		"updated_at",
	).
		From("tee_times").
		Where(squirrel.Eq{"club_id": clubID}).
		Where(squirrel.GtOrEq{"tee_off_at": from}).
		Where(squirrel.Lt{"tee_off_at": to}).
		OrderBy("tee_off_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByClubAndRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClubAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	teeTimes := make([]*domain.TeeTime, 0)
	for rows.Next() {
		var teeTime domain.TeeTime
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&teeTime.ID,
			&teeTime.ClubID,
			&teeTime.CourseName,
			&teeTime.TeeOffAt,
			&teeTime.BasePrice,
			&teeTime.Status,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByClubAndRange - scan row: %v", ErrScanRow, err)
		}

		teeTime.CreatedAt = createdAt.Time
		teeTime.UpdatedAt = updatedAt.Time

		teeTimes = append(teeTimes, &teeTime)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByClubAndRange - rows error: %v", ErrScanRow, err)
	}

	return teeTimes, nil
}

// transition условный перевод статуса from -> to
func (r *Repository) transition(ctx context.Context, id int64, from, to domain.TeeTimeStatus, op string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("tee_times").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrTeeTimeNotOpen
	}

	return nil
}
