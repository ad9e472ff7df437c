package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"branch_id",
	"bay_id",
	"slot_date",
	"start_time",
	"end_time",
	"status",
	"booking_id",
	"reservation_token",
	"reserved_until",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch создает пачку слотов одним INSERT.
// Дубликаты по (bay_id, slot_date, start_time) молча пропускаются
// (ON CONFLICT DO NOTHING) — это страховка идемпотентности генерации
// на случай конкурентного вызова для одного и того же дня.
// Возвращает число реально вставленных строк.
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.Slot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("slots").
		Columns(
			"branch_id",
			"bay_id",
			"slot_date",
			"start_time",
			"end_time",
			"status",
		)

	for _, s := range slots {
		insertBuilder = insertBuilder.Values(
			s.BranchID,
			s.BayID,
			s.SlotDate,
			s.StartTime,
			s.EndTime,
			s.Status,
		)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (bay_id, slot_date, start_time) DO NOTHING").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - get rows affected: %v", ErrExecQuery, err)
	}

	return int(inserted), nil
}

// GetGeneratedBayIDs возвращает список боксов, для которых на дату
// уже сгенерировано расписание
func (r *Repository) GetGeneratedBayIDs(ctx context.Context, branchID int64, date time.Time) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT bay_id").
		From("slots").
		Where(squirrel.Eq{"branch_id": branchID, "slot_date": date}).
		OrderBy("bay_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetGeneratedBayIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetGeneratedBayIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bayIDs := make([]int64, 0)
	for rows.Next() {
		var bayID int64
		if err := rows.Scan(&bayID); err != nil {
			return nil, fmt.Errorf("%w: GetGeneratedBayIDs - scan bay_id: %v", ErrScanRow, err)
		}
		bayIDs = append(bayIDs, bayID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetGeneratedBayIDs - rows error: %v", ErrScanRow, err)
	}

	return bayIDs, nil
}

// GetByBranchAndDate возвращает все слоты филиала на дату.
// Порядок фиксирован: bay_id ASC, start_time ASC — на нем строится
// детерминированный обход боксов в аллокаторе.
func (r *Repository) GetByBranchAndDate(ctx context.Context, branchID int64, date time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"branch_id": branchID, "slot_date": date}).
		OrderBy("bay_id ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// CountByStatus возвращает количество слотов бокса на дату по статусам.
// Пустая map означает, что расписание на дату не генерировалось.
func (r *Repository) CountByStatus(ctx context.Context, bayID int64, date time.Time) (map[domain.SlotStatus]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From("slots").
		Where(squirrel.Eq{"bay_id": bayID, "slot_date": date}).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.SlotStatus]int)
	for rows.Next() {
		var status domain.SlotStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByStatus - scan row: %v", ErrScanRow, err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// ReserveRun атомарно переводит все слоты рана из available в reserved,
// помечая их общим токеном и сроком удержания.
// Обновляются только строки, которые ВСЁ ЕЩЁ available: если затронуто
// меньше строк, чем запрошено, значит гонка проиграна — возвращается
// ErrRunConflict, и вызывающая транзакция обязана откатиться, чтобы
// не оставить частично зарезервированный ран.
// Должен вызываться внутри транзакции (txManager.Do).
func (r *Repository) ReserveRun(ctx context.Context, slotIDs []int64, token string, reservedUntil time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotReserved).
		Set("reservation_token", token).
		Set("reserved_until", reservedUntil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotIDs, "status": domain.SlotAvailable}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReserveRun - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ReserveRun - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ReserveRun - get rows affected: %v", ErrExecQuery, err)
	}

	if affected != int64(len(slotIDs)) {
		return ErrRunConflict
	}

	return nil
}

// ConfirmRun переводит все слоты резервирования из reserved в booked,
// привязывая их к бронированию. Токен уникален для рана, и все его строки
// разделяют один reserved_until, поэтому либо весь ран ещё удерживается,
// либо весь уже переработан — частичное подтверждение невозможно.
// Возвращает ErrReservationNotFound, если по токену нет действующих слотов.
func (r *Repository) ConfirmRun(ctx context.Context, token string, bookingID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotBooked).
		Set("booking_id", bookingID).
		Set("reservation_token", nil).
		Set("reserved_until", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"reservation_token": token, "status": domain.SlotReserved}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ConfirmRun - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ConfirmRun - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ConfirmRun - get rows affected: %v", ErrExecQuery, err)
	}

	if affected == 0 {
		return 0, ErrReservationNotFound
	}

	return int(affected), nil
}

// ReleaseRun возвращает все слоты резервирования в available.
// Возвращает ErrReservationNotFound, если по токену нет действующих слотов.
func (r *Repository) ReleaseRun(ctx context.Context, token string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotAvailable).
		Set("reservation_token", nil).
		Set("reserved_until", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"reservation_token": token, "status": domain.SlotReserved}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseRun - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseRun - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseRun - get rows affected: %v", ErrExecQuery, err)
	}

	if affected == 0 {
		return 0, ErrReservationNotFound
	}

	return int(affected), nil
}

// ReleaseExpired возвращает в available все просроченные резервирования
// филиала на дату. Вызывается аллокатором перед каждым поиском (lazy reclaim),
// чтобы брошенные клиентами холды не утекали из ёмкости навсегда.
func (r *Repository) ReleaseExpired(ctx context.Context, branchID int64, date time.Time, now time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotAvailable).
		Set("reservation_token", nil).
		Set("reserved_until", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"branch_id": branchID, "slot_date": date, "status": domain.SlotReserved}).
		Where(squirrel.Lt{"reserved_until": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseExpired - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseExpired - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return int(affected), nil
}

// ReleaseByBooking возвращает в available все слоты бронирования.
// Используется жизненным циклом бронирования при отмене.
func (r *Repository) ReleaseByBooking(ctx context.Context, bookingID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotAvailable).
		Set("booking_id", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_id": bookingID, "status": domain.SlotBooked}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseByBooking - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseByBooking - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseByBooking - get rows affected: %v", ErrExecQuery, err)
	}

	return int(affected), nil
}

// BlockDate переводит все свободные слоты филиала на дату в blocked
// (административная блокировка дня). Занятые слоты не трогаются,
// партиция дня остаётся невредимой.
func (r *Repository) BlockDate(ctx context.Context, branchID int64, date time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotBlocked).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"branch_id": branchID, "slot_date": date, "status": domain.SlotAvailable}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: BlockDate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: BlockDate - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: BlockDate - get rows affected: %v", ErrExecQuery, err)
	}

	return int(affected), nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		var s domain.Slot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.BranchID,
			&s.BayID,
			&s.SlotDate,
			&s.StartTime,
			&s.EndTime,
			&s.Status,
			&s.BookingID,
			&s.ReservationToken,
			&s.ReservedUntil,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
