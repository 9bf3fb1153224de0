package domain

// Weather thresholds
const (
	// AdverseRainProbability порог вероятности дождя, начиная с которого
	// погода считается неблагоприятной для игры
	AdverseRainProbability = 70
)

// Segment classification thresholds
const (
	RiskNoShowCount  = 2    // no-show count, начиная с которого пользователь попадает в risk
	RiskNoShowRate   = 0.30 // доля no-show от всех бронирований
	VIPTotalSpent    = 2_000_000
	VIPTotalBookings = 10
)

// Business validation constants
const (
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, при которых бронирование
// больше не занимает свой tee time
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
	StatusRefunded,
	StatusNoShow,
	StatusCompleted,
}

// SettleableStatuses список статусов, участвующих в расчёте settlement
var SettleableStatuses = []ReservationStatus{
	StatusPaid,
	StatusCancelled,
	StatusRefunded,
	StatusNoShow,
	StatusCompleted,
}
