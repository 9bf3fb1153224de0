package quote_tee_time

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GolfTee-BookingService/internal/api/handlers"
	"github.com/m04kA/GolfTee-BookingService/internal/api/middleware"
	quoteTeeTime "github.com/m04kA/GolfTee-BookingService/internal/usecase/quote_tee_time"
)

const (
	msgInvalidTeeTimeID = "некорректный ID tee time"
	msgInvalidUserID    = "некорректный ID пользователя"
	msgTeeTimeNotFound  = "tee time не найден"
	msgUserNotFound     = "пользователь не найден"
)

type Handler struct {
	useCase QuoteTeeTimeUseCase
	logger  Logger
}

func NewHandler(useCase QuoteTeeTimeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tee-times/{teeTimeId}/quote
// Публичный роут: заголовок X-User-ID опционален, без него котировка
// анонимная
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	teeTimeIDStr := vars["teeTimeId"]

	teeTimeID, err := strconv.ParseInt(teeTimeIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /tee-times/{id}/quote - Invalid tee time ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTeeTimeID)
		return
	}

	// Опциональный пользователь для сегментной корректировки
	var userID int64
	if userIDStr := r.Header.Get(middleware.HeaderUserID); userIDStr != "" {
		userID, err = strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			h.logger.Warn("GET /tee-times/{id}/quote - Invalid user ID header: %s", userIDStr)
			handlers.RespondBadRequest(w, msgInvalidUserID)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &quoteTeeTime.Request{
		UserID:    userID,
		TeeTimeID: teeTimeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, quoteTeeTime.ErrTeeTimeNotFound):
			h.logger.Warn("GET /tee-times/{id}/quote - Tee time not found: tee_time_id=%d", teeTimeID)
			handlers.RespondNotFound(w, msgTeeTimeNotFound)

		case errors.Is(err, quoteTeeTime.ErrUserNotFound):
			h.logger.Warn("GET /tee-times/{id}/quote - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, quoteTeeTime.ErrInvalidInput):
			h.logger.Warn("GET /tee-times/{id}/quote - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTeeTimeID)

		default:
			h.logger.Error("GET /tee-times/{id}/quote - Failed to quote: tee_time_id=%d, error=%v", teeTimeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tee-times/{id}/quote - Quote built: tee_time_id=%d, final_price=%d",
		teeTimeID, result.FinalPrice)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
