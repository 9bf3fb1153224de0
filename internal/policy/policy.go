package policy

import (
	"fmt"
	"time"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
)

// Причины отказа в отмене. Возвращаются как данные, не как ошибки:
// отказ по политике - ожидаемый частый исход, а не сбой
const (
	ReasonNotCancellable = "reservation is not in a cancellable state"
	ReasonImminentDeal   = "imminent deal reservations cannot be cancelled"
	ReasonPastCutoff     = "cancellation window has passed"

	ReasonNotPaid       = "reservation is not paid"
	ReasonBeforeGrace   = "tee-off grace period has not passed yet"
	ReasonAlreadyMarked = "reservation is already marked as no-show"
)

// CancelDecision результат проверки возможности отмены
type CancelDecision struct {
	CanCancel bool
	Reason    string
	HoursLeft float64 // часов до tee-off, может быть отрицательным
}

// CanCancel проверяет возможность отмены бронирования
// Правила применяются по порядку, срабатывает первое подходящее:
// статус, imminent deal, cutoff
func CanCancel(r *domain.Reservation, cfg *Config, now time.Time) CancelDecision {
	hoursLeft := r.TeeOffAt.Sub(now).Hours()

	if !r.CanBeCancelled() {
		return CancelDecision{CanCancel: false, Reason: ReasonNotCancellable, HoursLeft: hoursLeft}
	}

	// Imminent deal по определению безвозвратен, независимо от времени
	if r.IsImminentDeal {
		return CancelDecision{CanCancel: false, Reason: ReasonImminentDeal, HoursLeft: hoursLeft}
	}

	if hoursLeft < cfg.CancelCutoffHours {
		return CancelDecision{CanCancel: false, Reason: ReasonPastCutoff, HoursLeft: hoursLeft}
	}

	return CancelDecision{CanCancel: true, HoursLeft: hoursLeft}
}

// RefundAmount вычисляет сумму возврата по ступеням версии политики
// Сумма не превышает FinalPrice; для imminent deal всегда 0
func RefundAmount(r *domain.Reservation, cfg *Config, now time.Time) int64 {
	if r.IsImminentDeal {
		return 0
	}

	hoursLeft := r.TeeOffAt.Sub(now).Hours()

	for _, tier := range cfg.RefundTiers {
		if hoursLeft >= tier.MinHoursBefore {
			return (r.FinalPrice*tier.Percent + 50) / 100
		}
	}

	return 0
}

// NoShowDecision результат проверки возможности фиксации no-show
type NoShowDecision struct {
	Eligible bool
	Reason   string
}

// CanMarkNoShow проверяет возможность фиксации no-show
// Фиксация идемпотентна: повторный вызов на уже отмеченном
// бронировании отклоняется
func CanMarkNoShow(r *domain.Reservation, cfg *Config, now time.Time) NoShowDecision {
	if r.Status != domain.StatusPaid {
		return NoShowDecision{Eligible: false, Reason: ReasonNotPaid}
	}

	if r.NoShowMarkedAt != nil {
		return NoShowDecision{Eligible: false, Reason: ReasonAlreadyMarked}
	}

	graceEnd := r.TeeOffAt.Add(time.Duration(cfg.NoShowGraceMinutes) * time.Minute)
	if !now.After(graceEnd) {
		return NoShowDecision{Eligible: false, Reason: ReasonBeforeGrace}
	}

	return NoShowDecision{Eligible: true}
}

// SuspensionDecision решение о блокировке пользователя после no-show
type SuspensionDecision struct {
	Suspend   bool
	Reason    string
	ExpiresAt *time.Time // nil - постоянная блокировка
}

// SuspensionForCount определяет блокировку для нового значения счётчика
// no-show. На первом пороге - временная блокировка, при удвоенном
// пороге - постоянная (до ручного снятия администратором)
func SuspensionForCount(count int, cfg *Config, now time.Time) SuspensionDecision {
	if count < cfg.NoShowSuspensionThreshold {
		return SuspensionDecision{}
	}

	if count >= cfg.NoShowSuspensionThreshold*2 {
		return SuspensionDecision{
			Suspend: true,
			Reason:  fmt.Sprintf("permanently suspended after %d no-shows", count),
		}
	}

	expiresAt := now.AddDate(0, 0, cfg.SuspensionDays)
	return SuspensionDecision{
		Suspend:   true,
		Reason:    fmt.Sprintf("suspended for %d days after %d no-shows", cfg.SuspensionDays, count),
		ExpiresAt: &expiresAt,
	}
}
