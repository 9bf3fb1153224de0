package pricing

import (
	"fmt"
	"time"

	"github.com/m04kA/GolfTee-BookingService/internal/domain"
)

// Config настройки ценового движка
type Config struct {
	// MinFinalPrice нижняя граница итоговой цены (minor units)
	MinFinalPrice int64
}

// Context входные данные для одного расчёта цены
// TeeTime обязателен, User и Weather опциональны:
// без погоды пропускается погодная скидка, без пользователя
// сегмент считается future (без корректировки)
type Context struct {
	TeeTime *domain.TeeTime
	User    *domain.User
	Weather *domain.WeatherSnapshot
	Now     time.Time
}

// Result результат расчёта цены
// FinalPrice всегда равен BasePrice + сумма всех Factors.Amount
type Result struct {
	BasePrice      int64
	FinalPrice     int64
	Factors        []domain.PriceFactor
	IsImminentDeal bool
	IsBlocked      bool
	BlockReason    *string
}

// decayTier ступень скидки по времени до tee-off
// Ступень применяется, когда часов до tee-off меньше MaxHours
type decayTier struct {
	maxHours    float64
	percent     int64
	description string
	imminent    bool
}

// Ступени перечислены от самой поздней (наибольшая скидка) к самой ранней.
// Отрицательное время до tee-off попадает в первую ступень.
var decayTiers = []decayTier{
	{maxHours: 3, percent: 40, description: "imminent deal discount (under 3h)", imminent: true},
	{maxHours: 6, percent: 25, description: "last-minute discount (under 6h)"},
	{maxHours: 12, percent: 15, description: "same-day discount (under 12h)"},
	{maxHours: 24, percent: 10, description: "day-before discount (under 24h)"},
}

// Погодная и сегментные корректировки (проценты от текущей цены)
const (
	weatherDiscountPercent = 10
	vipDiscountPercent     = 5
	activeDiscountPercent  = 3
	riskSurchargePercent   = 10
)

// Engine ценовой движок: чистая функция от снапшотов к решению
// Не ходит в БД и не мутирует входные данные
type Engine struct {
	cfg Config
}

// NewEngine создает новый ценовой движок
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Calculate вычисляет итоговую цену tee time
// Порядок применения правил фиксирован: время до tee-off, погода, сегмент.
// Каждое применённое правило добавляет фактор в Factors, итоговая цена -
// детерминированная свёртка базовой цены через все дельты слева направо.
func (e *Engine) Calculate(pctx Context) (*Result, error) {
	if pctx.TeeTime == nil {
		return nil, ErrNilTeeTime
	}
	if pctx.Now.IsZero() {
		return nil, ErrZeroTime
	}

	result := &Result{
		BasePrice: pctx.TeeTime.BasePrice,
		Factors:   make([]domain.PriceFactor, 0, 4),
	}

	price := pctx.TeeTime.BasePrice

	// 1. Скидка по времени до tee-off
	hours := pctx.TeeTime.HoursToTeeOff(pctx.Now)
	if tier := findDecayTier(hours); tier != nil {
		price = applyFactor(result, price, -percentOf(price, tier.percent), tier.description)
		result.IsImminentDeal = tier.imminent
	}

	// 2. Погодная скидка: только при неблагоприятных условиях
	// Отсутствие прогноза - нормальная ситуация, фактор не добавляется
	if pctx.Weather != nil && pctx.Weather.IsAdverse() {
		price = applyFactor(result, price, -percentOf(price, weatherDiscountPercent), "adverse weather discount")
	}

	// 3. Сегментная корректировка
	// Без пользователя считаем сегмент future - без корректировки
	segment := domain.SegmentFuture
	if pctx.User != nil {
		segment = pctx.User.Segment
	}

	switch segment {
	case domain.SegmentVIP:
		price = applyFactor(result, price, -percentOf(price, vipDiscountPercent), "vip segment discount")
	case domain.SegmentActive:
		price = applyFactor(result, price, -percentOf(price, activeDiscountPercent), "active segment discount")
	case domain.SegmentRisk:
		price = applyFactor(result, price, percentOf(price, riskSurchargePercent), "risk segment surcharge")
	}

	// 4. Нижняя граница цены
	// Корректировка оформляется фактором, чтобы свёртка оставалась точной
	if price < e.cfg.MinFinalPrice {
		price = applyFactor(result, price, e.cfg.MinFinalPrice-price, "minimum price adjustment")
	}

	result.FinalPrice = price

	// 5. Блокировка: цена считается до конца для отображения,
	// но бронирование должно быть отклонено вызывающей стороной
	if pctx.User != nil && pctx.User.IsSuspendedAt(pctx.Now) {
		result.IsBlocked = true
		reason := suspensionReason(pctx.User)
		result.BlockReason = &reason
	}

	return result, nil
}

// findDecayTier возвращает ступень скидки для указанного числа часов
// до tee-off, либо nil, если скидка ещё не действует (>= 24h)
func findDecayTier(hours float64) *decayTier {
	for i := range decayTiers {
		if hours < decayTiers[i].maxHours {
			return &decayTiers[i]
		}
	}
	return nil
}

// applyFactor добавляет фактор и возвращает новую текущую цену
func applyFactor(result *Result, price int64, amount int64, description string) int64 {
	result.Factors = append(result.Factors, domain.PriceFactor{
		Description: description,
		Amount:      amount,
	})
	return price + amount
}

// percentOf вычисляет процент от цены в целых minor units
// Округление half-up, дробных единиц валюты не бывает
func percentOf(price int64, percent int64) int64 {
	return (price*percent + 50) / 100
}

// suspensionReason формирует человекочитаемую причину блокировки
func suspensionReason(user *domain.User) string {
	reason := "account suspended"
	if user.SuspendedReason != nil {
		reason = fmt.Sprintf("account suspended: %s", *user.SuspendedReason)
	}
	if user.SuspensionExpiresAt != nil {
		reason = fmt.Sprintf("%s (until %s)", reason, user.SuspensionExpiresAt.Format(domain.DateFormat))
	}
	return reason
}
