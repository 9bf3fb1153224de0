package mark_no_show

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GolfTee-BookingService/internal/api/handlers"
	"github.com/m04kA/GolfTee-BookingService/internal/api/middleware"
	markNoShow "github.com/m04kA/GolfTee-BookingService/internal/usecase/mark_no_show"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "только управляющий клуба может фиксировать неявку"
)

type Handler struct {
	useCase MarkNoShowUseCase
	logger  Logger
}

func NewHandler(useCase MarkNoShowUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/no-show
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationIDStr := vars["reservationId"]

	reservationID, err := strconv.ParseInt(reservationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/no-show - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	managerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/no-show - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &markNoShow.Request{
		ManagerID:     managerID,
		ReservationID: reservationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, markNoShow.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/no-show - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, markNoShow.ErrPermissionDenied):
			h.logger.Warn("PATCH /reservations/{id}/no-show - Access denied: reservation_id=%d, user_id=%d",
				reservationID, managerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, markNoShow.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/no-show - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		default:
			h.logger.Error("PATCH /reservations/{id}/no-show - Failed to mark no-show: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Success {
		h.logger.Info("PATCH /reservations/{id}/no-show - No-show marked: reservation_id=%d, user_id=%d, count=%d",
			reservationID, result.UserID, result.NoShowCount)
	} else {
		h.logger.Info("PATCH /reservations/{id}/no-show - Marking refused: reservation_id=%d, cause=%s",
			reservationID, result.RefusalCause)
	}
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
