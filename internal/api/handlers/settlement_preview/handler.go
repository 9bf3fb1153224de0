package settlement_preview

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/GolfTee-BookingService/internal/api/handlers"
	"github.com/m04kA/GolfTee-BookingService/internal/api/middleware"
	"github.com/m04kA/GolfTee-BookingService/internal/domain"
	settlementPreview "github.com/m04kA/GolfTee-BookingService/internal/usecase/settlement_preview"
)

const (
	msgInvalidClubID = "некорректный ID клуба"
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidPeriod = "некорректный период, ожидается periodStart и periodEnd в формате YYYY-MM-DD"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	useCase SettlementPreviewUseCase
	logger  Logger
}

func NewHandler(useCase SettlementPreviewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/clubs/{clubId}/settlements/preview
// Query params: periodStart, periodEnd (обязательны, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clubIDStr := vars["clubId"]

	clubID, err := strconv.ParseInt(clubIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /clubs/{id}/settlements/preview - Invalid club ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClubID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /clubs/{id}/settlements/preview - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	periodStart, periodEnd, err := parsePeriod(r.URL.Query().Get("periodStart"), r.URL.Query().Get("periodEnd"))
	if err != nil {
		h.logger.Warn("GET /clubs/{id}/settlements/preview - Invalid period: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &settlementPreview.Request{
		ManagerID:   userID,
		ClubID:      clubID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	})
	if err != nil {
		switch {
		case errors.Is(err, settlementPreview.ErrPermissionDenied):
			h.logger.Warn("GET /clubs/{id}/settlements/preview - Access denied: club_id=%d, user_id=%d", clubID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, settlementPreview.ErrInvalidInput):
			h.logger.Warn("GET /clubs/{id}/settlements/preview - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /clubs/{id}/settlements/preview - Failed to build preview: club_id=%d, error=%v",
				clubID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clubs/{id}/settlements/preview - Preview built: club_id=%d, lines=%d, net=%d",
		clubID, len(result.Lines), result.Totals.Net)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// parsePeriod парсит границы периода
// Конец периода - эксклюзивная граница: следующий день после endDate
func parsePeriod(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(domain.DateFormat, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	end, err := time.Parse(domain.DateFormat, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return start, end.AddDate(0, 0, 1), nil
}
