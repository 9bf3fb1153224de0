package get_club_reservations

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
	"github.com/m04kA/GolfTee-BookingService/internal/service/reservations/models"
)

// ToServiceRequest собирает запрос к сервису из path и query параметров
// Даты периода в формате YYYY-MM-DD, период по времени tee-off
func ToServiceRequest(clubID, userID int64, startDateStr, endDateStr, statusStr, includeInactiveStr string) (*models.GetClubReservationsRequest, error) {
	req := &models.GetClubReservationsRequest{
		UserID: userID,
		ClubID: clubID,
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate: %w", err)
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate: %w", err)
		}
		// Конец периода включает весь указанный день
		endOfDay := endDate.Add(24*time.Hour - time.Nanosecond)
		req.EndDate = &endOfDay
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
