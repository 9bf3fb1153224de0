package create_settlement

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GolfTee-BookingService/internal/api/handlers"
	"github.com/m04kA/GolfTee-BookingService/internal/api/middleware"
	createSettlement "github.com/m04kA/GolfTee-BookingService/internal/usecase/create_settlement"
)

const (
	msgInvalidClubID        = "некорректный ID клуба"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidBody          = "некорректное тело запроса"
	msgInvalidPeriod        = "некорректный период, ожидается periodStart и periodEnd в формате YYYY-MM-DD"
	msgForbidden            = "доступ запрещен"
	msgEmptyPeriod          = "за указанный период нет неучтенных бронирований"
	msgConcurrentSettlement = "часть бронирований уже учтена в другом расчете"
)

type Handler struct {
	useCase CreateSettlementUseCase
	logger  Logger
}

func NewHandler(useCase CreateSettlementUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/clubs/{clubId}/settlements
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clubIDStr := vars["clubId"]

	clubID, err := strconv.ParseInt(clubIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /clubs/{id}/settlements - Invalid club ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClubID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /clubs/{id}/settlements - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateSettlementRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /clubs/{id}/settlements - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	ucReq, err := req.ToUseCaseRequest(userID, clubID)
	if err != nil {
		h.logger.Warn("POST /clubs/{id}/settlements - Invalid period: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, createSettlement.ErrPermissionDenied):
			h.logger.Warn("POST /clubs/{id}/settlements - Access denied: club_id=%d, user_id=%d", clubID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createSettlement.ErrEmptyPeriod):
			h.logger.Warn("POST /clubs/{id}/settlements - Empty period: club_id=%d", clubID)
			handlers.RespondBadRequest(w, msgEmptyPeriod)

		case errors.Is(err, createSettlement.ErrConcurrentSettlement):
			h.logger.Warn("POST /clubs/{id}/settlements - Concurrent settlement: club_id=%d", clubID)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentSettlement)

		case errors.Is(err, createSettlement.ErrInvalidInput):
			h.logger.Warn("POST /clubs/{id}/settlements - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("POST /clubs/{id}/settlements - Failed to create settlement: club_id=%d, error=%v",
				clubID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /clubs/{id}/settlements - Settlement created: id=%d, club_id=%d, lines=%d, net=%d",
		result.ID, clubID, len(result.Lines), result.Totals.Net)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
