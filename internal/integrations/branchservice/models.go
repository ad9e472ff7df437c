package branchservice

import "time"

// Branch модель филиала из BranchService.
// Для ядра расписания филиал read-only: рабочие часы, длительность слота
// и список боксов задаются на стороне справочника.
type Branch struct {
	ID                  int64        `json:"id"`
	Name                string       `json:"name"`
	Timezone            string       `json:"timezone"` // IANA, например "Europe/Moscow"
	SlotDurationMinutes int          `json:"slot_duration_minutes"`
	WorkingHours        WeekSchedule `json:"working_hours"`
	Bays                []Bay        `json:"bays"`
}

// Bay модель бокса (поста обслуживания) филиала
type Bay struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// WeekSchedule расписание работы филиала по дням недели
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule рабочие часы филиала в конкретный день недели
type DaySchedule struct {
	IsOpen    bool    `json:"is_open"`
	OpenTime  *string `json:"open_time,omitempty"`  // "08:00"
	CloseTime *string `json:"close_time,omitempty"` // "20:00"
}

// ServiceItem модель услуги из каталога филиала
type ServiceItem struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price,omitempty"`
}

// ErrorResponse модель ошибки от BranchService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// HoursFor возвращает рабочие часы филиала на указанный день недели
func (b *Branch) HoursFor(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return b.WorkingHours.Monday
	case time.Tuesday:
		return b.WorkingHours.Tuesday
	case time.Wednesday:
		return b.WorkingHours.Wednesday
	case time.Thursday:
		return b.WorkingHours.Thursday
	case time.Friday:
		return b.WorkingHours.Friday
	case time.Saturday:
		return b.WorkingHours.Saturday
	case time.Sunday:
		return b.WorkingHours.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// Location возвращает часовой пояс филиала.
// Пустая или некорректная таймзона трактуется как UTC.
func (b *Branch) Location() *time.Location {
	if b.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
