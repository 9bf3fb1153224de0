package lock_settlement

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GolfTee-BookingService/internal/api/handlers"
	"github.com/m04kA/GolfTee-BookingService/internal/api/middleware"
	"github.com/m04kA/GolfTee-BookingService/internal/service/settlements"
)

const (
	msgInvalidSettlementID = "некорректный ID расчета"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgSettlementNotFound  = "расчет не найден"
	msgForbidden           = "доступ запрещен"
	msgInvalidTransition   = "заблокировать можно только расчет в статусе confirmed"
)

type Handler struct {
	service SettlementService
	logger  Logger
}

func NewHandler(service SettlementService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/settlements/{settlementId}/lock
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	settlementIDStr := vars["settlementId"]

	settlementID, err := strconv.ParseInt(settlementIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /settlements/{id}/lock - Invalid settlement ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSettlementID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /settlements/{id}/lock - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Lock(r.Context(), settlementID, userID)
	if err != nil {
		switch {
		case errors.Is(err, settlements.ErrSettlementNotFound):
			h.logger.Warn("PATCH /settlements/{id}/lock - Settlement not found: id=%d", settlementID)
			handlers.RespondNotFound(w, msgSettlementNotFound)

		case errors.Is(err, settlements.ErrAccessDenied):
			h.logger.Warn("PATCH /settlements/{id}/lock - Access denied: id=%d, user_id=%d", settlementID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, settlements.ErrInvalidTransition):
			h.logger.Warn("PATCH /settlements/{id}/lock - Invalid transition: id=%d", settlementID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /settlements/{id}/lock - Failed to lock settlement: id=%d, error=%v",
				settlementID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /settlements/{id}/lock - Settlement locked: id=%d, by=%d", settlementID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
