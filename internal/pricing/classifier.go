package pricing

import "github.com/m04kA/GolfTee-BookingService/internal/domain"

// ClassifySegment выводит поведенческий сегмент пользователя из
// агрегатов истории бронирований. Вызывается периодической пересборкой
// сегментов, движок цен использует уже сохранённый снапшот.
//
// Порядок проверок важен: risk перекрывает vip - пользователь
// с историей no-show не получает лояльную скидку
func ClassifySegment(noShowCount, totalBookings int, totalSpent int64) domain.UserSegment {
	if totalBookings == 0 {
		return domain.SegmentFuture
	}

	if noShowCount >= domain.RiskNoShowCount {
		return domain.SegmentRisk
	}
	if float64(noShowCount)/float64(totalBookings) > domain.RiskNoShowRate {
		return domain.SegmentRisk
	}

	if totalSpent >= domain.VIPTotalSpent && totalBookings >= domain.VIPTotalBookings {
		return domain.SegmentVIP
	}

	return domain.SegmentActive
}
