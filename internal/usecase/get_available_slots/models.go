package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса на получение доступных вариантов начала
type Request struct {
	BranchID        int64     // ID филиала
	Date            time.Time // Дата (без времени)
	DurationMinutes int       // Требуемая длительность; 0 — один слот
}

// AvailableStart вариант начала обслуживания: время, в которое хотя бы
// один бокс может вместить запрошенную длительность целиком
type AvailableStart struct {
	StartTime     types.TimeString // Время начала
	EndTime       types.TimeString // Время окончания
	AvailableBays int              // Сколько боксов свободны на этот интервал
}

// Response модель ответа со списком доступных вариантов начала
type Response struct {
	BranchID        int64            // ID филиала
	Date            time.Time        // Дата запроса
	DurationMinutes int              // Фактическая длительность вариантов
	Starts          []AvailableStart // Варианты по возрастанию времени начала
}
