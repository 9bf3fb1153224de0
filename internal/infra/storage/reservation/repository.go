package reservation

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
	"github.com/m04kA/GolfTee-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GolfTee-BookingService/pkg/psqlbuilder"
)

// reservationColumns полный набор колонок таблицы reservations
var reservationColumns = []string{
	"id",
	"user_id",
	"club_id",
	"tee_time_id",
	"tee_off_at",
	"base_price",
	"final_price",
	"factors",
	"payment_ref",
	"status",
	"policy_version",
	"is_imminent_deal",
	"cancellation_reason",
	"cancelled_at",
	"refund_amount",
	"refund_status",
	"no_show_marked_at",
	"settlement_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Создание бронирования всегда идёт в сериализуемой транзакции вместе
// с условным переводом tee time в booked (см. usecase create_reservation)
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	factorsJSON, err := json.Marshal(res.Factors)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal factors: %v", ErrEncodeFactors, err)
	}

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"user_id",
			"club_id",
			"tee_time_id",
			"tee_off_at",
			"base_price",
			"final_price",
			"factors",
			"payment_ref",
			"status",
			"policy_version",
			"is_imminent_deal",
			"refund_amount",
			"refund_status",
		).
		Values(
			res.UserID,
			res.ClubID,
			res.TeeTimeID,
			res.TeeOffAt,
			res.BasePrice,
			res.FinalPrice,
			factorsJSON,
			res.PaymentRef,
			res.Status,
			res.PolicyVersion,
			res.IsImminentDeal,
			res.RefundAmount,
			res.RefundStatus,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("tee_off_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetByClubWithFilter получает бронирования клуба с гибкой фильтрацией
// Поддерживает фильтрацию по периоду tee-off, статусу и включению
// неактивных бронирований
func (r *Repository) GetByClubWithFilter(ctx context.Context, filter domain.ClubReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"club_id": filter.ClubID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"tee_off_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"tee_off_at": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("tee_off_at DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClubWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClubWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetUnsettledByClubAndPeriod получает бронирования клуба, ещё не
// привязанные к settlement, с tee-off в [from, to)
// Внутри транзакции добавляет FOR UPDATE - кандидаты блокируются
// на время создания settlement
func (r *Repository) GetUnsettledByClubAndPeriod(ctx context.Context, clubID int64, from, to time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	settleableStatusStrings := make([]string, len(domain.SettleableStatuses))
	for i, s := range domain.SettleableStatuses {
		settleableStatusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"club_id": clubID}).
		Where(squirrel.GtOrEq{"tee_off_at": from}).
		Where(squirrel.Lt{"tee_off_at": to}).
		Where(squirrel.Eq{"settlement_id": nil}).
		Where(squirrel.Eq{"status": settleableStatusStrings}).
		OrderBy("tee_off_at DESC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnsettledByClubAndPeriod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnsettledByClubAndPeriod - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// Cancel отменяет бронирование с фиксацией причины и суммы возврата
// Сама отмена и возврат денег - отдельные шаги: здесь фиксируется
// refund_status pending/none, дальнейшая судьба возврата обновляется
// через UpdateRefundStatus
func (r *Repository) Cancel(ctx context.Context, id int64, reason string, refundAmount int64, refundStatus domain.RefundStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("refund_amount", refundAmount).
		Set("refund_status", refundStatus).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPaid}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// MarkNoShow условно фиксирует no-show
// Условие no_show_marked_at IS NULL делает фиксацию идемпотентной:
// повторный вызов не затронет ни одной строки
func (r *Repository) MarkNoShow(ctx context.Context, id int64, markedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusNoShow).
		Set("no_show_marked_at", markedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPaid}).
		Where(squirrel.Eq{"no_show_marked_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkNoShow - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkNoShow - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkNoShow - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAlreadyMarked
	}

	return nil
}

// UpdateRefundStatus обновляет статус возврата
// При успешном возврате бронирование переходит в refunded
func (r *Repository) UpdateRefundStatus(ctx context.Context, id int64, refundStatus domain.RefundStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("reservations").
		Set("refund_status", refundStatus).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if refundStatus == domain.RefundPaid {
		updateBuilder = updateBuilder.Set("status", domain.StatusRefunded)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateRefundStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateRefundStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateRefundStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// AssignSettlement условно привязывает бронирования к settlement
// Условие settlement_id IS NULL - строгий инвариант против двойного
// учёта: если хоть одно бронирование уже привязано к другому
// settlement, операция отклоняется целиком
func (r *Repository) AssignSettlement(ctx context.Context, ids []int64, settlementID int64) error {
	if len(ids) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("settlement_id", settlementID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"settlement_id": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AssignSettlement - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AssignSettlement - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AssignSettlement - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected != int64(len(ids)) {
		return fmt.Errorf("%w: AssignSettlement - expected %d rows, got %d", ErrAlreadySettled, len(ids), rowsAffected)
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует одну строку в бронирование
func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var factorsJSON []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.ClubID,
		&res.TeeTimeID,
		&res.TeeOffAt,
		&res.BasePrice,
		&res.FinalPrice,
		&factorsJSON,
		&res.PaymentRef,
		&res.Status,
		&res.PolicyVersion,
		&res.IsImminentDeal,
		&res.CancellationReason,
		&res.CancelledAt,
		&res.RefundAmount,
		&res.RefundStatus,
		&res.NoShowMarkedAt,
		&res.SettlementID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(factorsJSON) > 0 {
		if err := json.Unmarshal(factorsJSON, &res.Factors); err != nil {
			return nil, fmt.Errorf("unmarshal factors: %v", err)
		}
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
