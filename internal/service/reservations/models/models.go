package models

import (
	"errors"
	"time"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// GetUserReservationsRequest запрос на получение бронирований пользователя
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetClubReservationsRequest запрос на получение бронирований клуба
type GetClubReservationsRequest struct {
	UserID          int64      `json:"userId"`
	ClubID          int64      `json:"clubId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода по tee-off (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода по tee-off (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и завершённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetClubReservationsRequest) ToDomainFilter() (domain.ClubReservationsFilter, error) {
	filter := domain.ClubReservationsFilter{
		ClubID:          r.ClubID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// PriceFactorResponse строка применённого правила ценообразования
type PriceFactorResponse struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

// ReservationResponse бронирование в ответе API
type ReservationResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	ClubID    int64     `json:"clubId"`
	TeeTimeID int64     `json:"teeTimeId"`
	TeeOffAt  time.Time `json:"teeOffAt"`

	BasePrice  int64                 `json:"basePrice"`
	FinalPrice int64                 `json:"finalPrice"`
	Factors    []PriceFactorResponse `json:"factors"`

	Status         string `json:"status"`
	PolicyVersion  string `json:"policyVersion"`
	IsImminentDeal bool   `json:"isImminentDeal"`

	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	RefundAmount       int64      `json:"refundAmount"`
	RefundStatus       string     `json:"refundStatus"`

	NoShowMarkedAt *time.Time `json:"noShowMarkedAt,omitempty"`
	SettlementID   *int64     `json:"settlementId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"`
}

// FromDomainReservation конвертирует domain бронирование в response модель
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	factors := make([]PriceFactorResponse, 0, len(r.Factors))
	for _, f := range r.Factors {
		factors = append(factors, PriceFactorResponse{
			Description: f.Description,
			Amount:      f.Amount,
		})
	}

	return &ReservationResponse{
		ID:                 r.ID,
		UserID:             r.UserID,
		ClubID:             r.ClubID,
		TeeTimeID:          r.TeeTimeID,
		TeeOffAt:           r.TeeOffAt,
		BasePrice:          r.BasePrice,
		FinalPrice:         r.FinalPrice,
		Factors:            factors,
		Status:             string(r.Status),
		PolicyVersion:      r.PolicyVersion,
		IsImminentDeal:     r.IsImminentDeal,
		CancellationReason: r.CancellationReason,
		CancelledAt:        r.CancelledAt,
		RefundAmount:       r.RefundAmount,
		RefundStatus:       string(r.RefundStatus),
		NoShowMarkedAt:     r.NoShowMarkedAt,
		SettlementID:       r.SettlementID,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain бронирований
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	items := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		items = append(items, *FromDomainReservation(r))
	}

	return &ReservationListResponse{
		Reservations: items,
		Total:        len(items),
	}
}

// ToDomainReservationStatus конвертирует строку в domain статус
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(status) {
	case domain.StatusPending, domain.StatusPaid, domain.StatusCancelled,
		domain.StatusRefunded, domain.StatusNoShow, domain.StatusCompleted:
		return domain.ReservationStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}
