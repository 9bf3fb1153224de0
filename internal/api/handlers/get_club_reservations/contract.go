package get_club_reservations

import (
	"context"

	"github.com/m04kA/GolfTee-BookingService/internal/service/reservations/models"
)

type ReservationService interface {
	GetClubReservations(ctx context.Context, req *models.GetClubReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
