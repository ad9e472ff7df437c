package generate_schedule

import "time"

// Request модель запроса на генерацию расписания филиала на дату
type Request struct {
	BranchID int64     // ID филиала
	Date     time.Time // Дата генерации (без времени)
}

// Response модель ответа с результатом генерации
type Response struct {
	BranchID     int64     // ID филиала
	Date         time.Time // Дата генерации
	BaysTotal    int       // Всего боксов у филиала
	BaysSkipped  int       // Боксов пропущено (расписание уже было)
	SlotsCreated int       // Создано слотов
}
