package settlement

import (
	"sort"
	"time"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
)

// Line вклад одного бронирования в settlement
type Line struct {
	ReservationID int64
	TeeTimeID     int64
	TeeOffAt      time.Time
	FinalPrice    int64
	RefundAmount  int64
	Net           int64
}

// Totals агрегаты по всем строкам settlement
// Net всегда равен GrossPaid - TotalRefunded и сумме Net по строкам
type Totals struct {
	GrossPaid     int64
	TotalRefunded int64
	Net           int64
	Count         int
}

// Anomaly аномалия в исходных данных: два активных PAID на один tee time
// Ядро не может предотвратить нарушение инварианта на уровне данных,
// но обязано не задвоить сумму - дубликаты исключаются и репортятся
type Anomaly struct {
	TeeTimeID      int64
	ReservationIDs []int64
	Reason         string
}

// Preview расчёт settlement за период до его создания
type Preview struct {
	Lines     []Line
	Totals    Totals
	Anomalies []Anomaly
}

// BuildPreview строит расчёт settlement по списку бронирований клуба
//
// В расчёт входят бронирования с tee-off в [periodStart, periodEnd),
// ещё не привязанные к другому settlement (строгий инвариант против
// двойного учёта) и находящиеся в участвующем статусе.
// Строки упорядочены по tee-off по убыванию - сначала свежие
func BuildPreview(reservations []*domain.Reservation, periodStart, periodEnd time.Time) Preview {
	candidates := make([]*domain.Reservation, 0, len(reservations))

	for _, r := range reservations {
		if r.TeeOffAt.Before(periodStart) || !r.TeeOffAt.Before(periodEnd) {
			continue
		}
		if r.IsSettled() {
			continue
		}
		if !r.IsSettleable() {
			continue
		}
		candidates = append(candidates, r)
	}

	candidates, anomalies := excludeDuplicatePaid(candidates)

	// Сортировка по tee-off по убыванию, при равенстве - по id по убыванию
	sort.SliceStable(candidates, func(i, j int) bool {
		if !candidates[i].TeeOffAt.Equal(candidates[j].TeeOffAt) {
			return candidates[i].TeeOffAt.After(candidates[j].TeeOffAt)
		}
		return candidates[i].ID > candidates[j].ID
	})

	preview := Preview{
		Lines:     make([]Line, 0, len(candidates)),
		Anomalies: anomalies,
	}

	for _, r := range candidates {
		line := Line{
			ReservationID: r.ID,
			TeeTimeID:     r.TeeTimeID,
			TeeOffAt:      r.TeeOffAt,
			FinalPrice:    r.FinalPrice,
			RefundAmount:  r.RefundAmount,
			Net:           r.NetContribution(),
		}
		preview.Lines = append(preview.Lines, line)

		preview.Totals.GrossPaid += line.FinalPrice
		preview.Totals.TotalRefunded += line.RefundAmount
		preview.Totals.Net += line.Net
		preview.Totals.Count++
	}

	return preview
}

// excludeDuplicatePaid исключает задвоенные PAID бронирования одного
// tee time: остаётся созданное первым (наименьший id), остальные
// уходят в аномалии
func excludeDuplicatePaid(reservations []*domain.Reservation) ([]*domain.Reservation, []Anomaly) {
	paidByTeeTime := make(map[int64][]*domain.Reservation)
	for _, r := range reservations {
		if r.Status == domain.StatusPaid {
			paidByTeeTime[r.TeeTimeID] = append(paidByTeeTime[r.TeeTimeID], r)
		}
	}

	excluded := make(map[int64]bool)
	anomalies := make([]Anomaly, 0)

	for teeTimeID, group := range paidByTeeTime {
		if len(group) < 2 {
			continue
		}

		sort.Slice(group, func(i, j int) bool { return group[i].ID < group[j].ID })

		ids := make([]int64, 0, len(group))
		for _, r := range group {
			ids = append(ids, r.ID)
		}
		for _, r := range group[1:] {
			excluded[r.ID] = true
		}

		anomalies = append(anomalies, Anomaly{
			TeeTimeID:      teeTimeID,
			ReservationIDs: ids,
			Reason:         "multiple paid reservations for one tee time, extras excluded",
		})
	}

	sort.Slice(anomalies, func(i, j int) bool { return anomalies[i].TeeTimeID < anomalies[j].TeeTimeID })

	if len(excluded) == 0 {
		return reservations, anomalies
	}

	kept := make([]*domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if !excluded[r.ID] {
			kept = append(kept, r)
		}
	}

	return kept, anomalies
}
