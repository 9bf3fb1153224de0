package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/GolfTee-BookingService/internal/api/handlers"
	"github.com/m04kA/GolfTee-BookingService/internal/api/middleware"
	createReservation "github.com/m04kA/GolfTee-BookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgTeeTimeNotFound    = "tee time не найден"
	msgTeeTimeNotOpen     = "tee time уже забронирован"
	msgUserNotFound       = "пользователь не найден"
	msgUserSuspended      = "бронирование недоступно: аккаунт заблокирован"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrTeeTimeNotFound):
			h.logger.Warn("POST /reservations - Tee time not found: tee_time_id=%d", req.TeeTimeID)
			handlers.RespondNotFound(w, msgTeeTimeNotFound)

		case errors.Is(err, createReservation.ErrTeeTimeNotOpen):
			h.logger.Warn("POST /reservations - Tee time not open: tee_time_id=%d, user_id=%d", req.TeeTimeID, userID)
			handlers.RespondError(w, http.StatusConflict, msgTeeTimeNotOpen)

		case errors.Is(err, createReservation.ErrUserNotFound):
			h.logger.Warn("POST /reservations - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createReservation.ErrUserSuspended):
			h.logger.Warn("POST /reservations - User suspended: user_id=%d", userID)
			handlers.RespondForbidden(w, msgUserSuspended)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, tee_time_id=%d, error=%v",
				userID, req.TeeTimeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, final_price=%d",
		result.ID, userID, result.FinalPrice)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
