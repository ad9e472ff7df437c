package allocation

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// ReserveRequest запрос на резервирование непрерывного рана слотов
type ReserveRequest struct {
	BranchID        int64             // ID филиала
	Date            time.Time         // Дата (без времени)
	DurationMinutes int               // Требуемая длительность обслуживания
	PreferredStart  *types.TimeString // Желаемое время начала (опционально)
}
