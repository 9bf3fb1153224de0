package policy

// Версии политики отмены. Закрытое множество: версия хранится на
// бронировании строкой, но разрешается только через Resolve
const (
	VersionStandardV1 = "STANDARD_V1"
	VersionStandardV2 = "STANDARD_V2"
)

// RefundTier ступень возврата: процент возврата при отмене не позднее
// чем за MinHoursBefore часов до tee-off
type RefundTier struct {
	MinHoursBefore float64
	Percent        int64
}

// Config разрешённая конфигурация версии политики отмены
type Config struct {
	Version string

	// CancelCutoffHours минимальное число часов до tee-off,
	// при котором отмена ещё возможна
	CancelCutoffHours float64

	// RefundTiers ступени возврата, отсортированы по убыванию
	// MinHoursBefore; применяется первая подходящая
	RefundTiers []RefundTier

	// NoShowSuspensionThreshold число no-show, при достижении которого
	// пользователь блокируется
	NoShowSuspensionThreshold int

	// SuspensionDays длительность временной блокировки в днях
	SuspensionDays int

	// NoShowGraceMinutes грейс-период после tee-off, до истечения
	// которого no-show не фиксируется
	NoShowGraceMinutes int
}

// configs известные версии политики
// STANDARD_V2 - текущая: полный возврат до cutoff, частичных ступеней нет.
// STANDARD_V1 - legacy: сохранена для старых бронирований, двухступенчатый возврат
var configs = map[string]*Config{
	VersionStandardV1: {
		Version:           VersionStandardV1,
		CancelCutoffHours: 24,
		RefundTiers: []RefundTier{
			{MinHoursBefore: 48, Percent: 100},
			{MinHoursBefore: 24, Percent: 50},
		},
		NoShowSuspensionThreshold: 3,
		SuspensionDays:            30,
		NoShowGraceMinutes:        30,
	},
	VersionStandardV2: {
		Version:           VersionStandardV2,
		CancelCutoffHours: 24,
		RefundTiers: []RefundTier{
			{MinHoursBefore: 24, Percent: 100},
		},
		NoShowSuspensionThreshold: 3,
		SuspensionDays:            30,
		NoShowGraceMinutes:        30,
	},
}

// CurrentVersion версия политики, назначаемая новым бронированиям
const CurrentVersion = VersionStandardV2

// Resolve разрешает версию политики в конфигурацию
// Неизвестная версия - ошибка, не дефолт
func Resolve(version string) (*Config, error) {
	cfg, ok := configs[version]
	if !ok {
		return nil, ErrUnknownPolicyVersion
	}
	return cfg, nil
}
