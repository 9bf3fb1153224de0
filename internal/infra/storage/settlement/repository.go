package settlement

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

// DBExecutor общий интерфейс для выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с settlement
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория settlement
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает settlement в статусе draft
// Вызывается внутри транзакции вместе с привязкой бронирований
func (r *Repository) Create(ctx context.Context, s *domain.Settlement) (*domain.Settlement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("settlements").
		Columns(
			"club_id",
			"period_start",
			"period_end",
			"status",
			"gross_paid",
			"total_refunded",
			"net",
			"created_by",
		).
		Values(
			s.ClubID,
			s.PeriodStart,
			s.PeriodEnd,
			domain.SettlementDraft,
			s.GrossPaid,
			s.TotalRefunded,
			s.Net,
			s.CreatedBy,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.Status = domain.SettlementDraft
	s.CreatedAt = createdAt.Time

	return s, nil
}

// GetByID получает settlement по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Settlement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"club_id",
		"period_start",
		"period_end",
		"status",
		"gross_paid",
		"total_refunded",
		"net",
		"created_by",
		"created_at",
		"confirmed_by",
		"confirmed_at",
		"locked_by",
		"locked_at",
	).
		From("settlements").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Settlement
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.ClubID,
		&s.PeriodStart,
		&s.PeriodEnd,
		&s.Status,
		&s.GrossPaid,
		&s.TotalRefunded,
		&s.Net,
		&s.CreatedBy,
		&createdAt,
		&s.ConfirmedBy,
		&s.ConfirmedAt,
		&s.LockedBy,
		&s.LockedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettlementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan settlement: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time

	return &s, nil
}

// Confirm условно переводит settlement из draft в confirmed
// Условие на исходный статус в WHERE исключает двойное подтверждение
// и подтверждение заблокированного settlement
func (r *Repository) Confirm(ctx context.Context, id int64, byUserID int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("settlements").
		Set("status", domain.SettlementConfirmed).
		Set("confirmed_by", byUserID).
		Set("confirmed_at", at).
		Where(squirrel.Eq{"id": id, "status": domain.SettlementDraft}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	return r.execTransition(ctx, executor, query, args, "Confirm")
}

// Lock условно переводит settlement из confirmed в locked
// После locked никакие изменения невозможны
func (r *Repository) Lock(ctx context.Context, id int64, byUserID int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("settlements").
		Set("status", domain.SettlementLocked).
		Set("locked_by", byUserID).
		Set("locked_at", at).
		Where(squirrel.Eq{"id": id, "status": domain.SettlementConfirmed}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Lock - build update query: %v", ErrBuildQuery, err)
	}

	return r.execTransition(ctx, executor, query, args, "Lock")
}

func (r *Repository) execTransition(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrInvalidTransition
	}

	return nil
}
