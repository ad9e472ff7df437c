package generate_week

import "time"

// Итоги генерации на одну дату
const (
	OutcomeGenerated = "generated" // расписание создано (полностью или частично)
	OutcomeSkipped   = "skipped"   // расписание уже было на все боксы
	OutcomeClosed    = "closed"    // филиал закрыт в этот день
	OutcomeFailed    = "failed"    // генерация на эту дату не удалась
)

// Request модель запроса на генерацию расписания на неделю вперед
type Request struct {
	BranchID int64 // ID филиала
}

// DayOutcome результат генерации на одну дату
type DayOutcome struct {
	Date         time.Time // Дата
	Outcome      string    // Итог генерации
	SlotsCreated int       // Создано слотов
	Error        string    // Текст ошибки для outcome=failed
}

// Response модель ответа с результатами генерации по датам
type Response struct {
	BranchID     int64        // ID филиала
	Days         []DayOutcome // Результаты по датам в хронологическом порядке
	SlotsCreated int          // Всего создано слотов
}
