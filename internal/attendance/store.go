package attendance

import (
	"context"
	"database/sql"
	"errors"

	"attendance-backend/internal/employee"
	platformdb "attendance-backend/internal/platform/db"
)

// Repo: Recorderが1トランザクション内で使う操作の集合。
// SQL実装のほか、テスト用のインメモリ実装がある。
type Repo interface {
	// EmployeeForUpdate: 職員行を行ロック付きで取得。
	// 同一職員の同時打刻はここで直列化される。
	EmployeeForUpdate(ctx context.Context, id int64) (*employee.Employee, error)
	EmployeeByToken(ctx context.Context, token string) (*employee.Employee, error)
	EventsOn(ctx context.Context, employeeID int64, date string) ([]Event, error)
	MonthlyCheckInDays(ctx context.Context, employeeID int64, from, to string) (int, error)
	InsertEvent(ctx context.Context, ev *Event) (int64, error)
	BindDevice(ctx context.Context, employeeID int64, fingerprint, token string) error
	UpdateDeviceToken(ctx context.Context, employeeID int64, token string) error
	InsertAudit(ctx context.Context, a *BindingAudit) error
}

type sqlRepo struct{ db platformdb.DBTX }

func NewRepo(db platformdb.DBTX) Repo { return &sqlRepo{db: db} }

const employeeColumns = `
	employee_id, employee_code, name, job_title, department, phone_number,
	web_fingerprint, device_token, status`

func scanEmployee(row *sql.Row) (*employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.Code, &e.Name, &e.JobTitle, &e.Department, &e.PhoneNumber,
		&e.WebFingerprint, &e.DeviceToken, &e.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *sqlRepo) EmployeeForUpdate(ctx context.Context, id int64) (*employee.Employee, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT`+employeeColumns+`
	FROM employees
	WHERE employee_id = ? LIMIT 1 FOR UPDATE`, id)
	return scanEmployee(row)
}

func (r *sqlRepo) EmployeeByToken(ctx context.Context, token string) (*employee.Employee, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT`+employeeColumns+`
	FROM employees
	WHERE device_token = ? LIMIT 1`, token)
	return scanEmployee(row)
}

// EventsOn: 指定日の打刻をID昇順で。Evaluatorの入力契約（昇順）に合わせる。
func (r *sqlRepo) EventsOn(ctx context.Context, employeeID int64, date string) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT event_id, employee_id, event_type, DATE_FORMAT(event_date, '%Y-%m-%d'),
	       check_time, recorded_at, reason_code, latitude, longitude, location_id,
	       device_token, fingerprint, duration_hours
	FROM attendance_events
	WHERE employee_id = ? AND event_date = ?
	ORDER BY event_id ASC`, employeeID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var ev Event
		var reason sql.NullString
		if err := rows.Scan(
			&ev.ID, &ev.EmployeeID, &ev.Type, &ev.EventDate,
			&ev.CheckTime, &ev.RecordedAt, &reason, &ev.Latitude, &ev.Longitude,
			&ev.LocationID, &ev.DeviceToken, &ev.Fingerprint, &ev.DurationHours,
		); err != nil {
			return nil, err
		}
		ev.Reason = ReasonCode(reason.String)
		out = append(out, ev)
	}
	return out, rows.Err()
}

// MonthlyCheckInDays: 期間内に Check-In が1件でもある日の数。
// event_date は書き込み時に拠点ローカルで確定しているので、そのまま数えられる。
func (r *sqlRepo) MonthlyCheckInDays(ctx context.Context, employeeID int64, from, to string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
	SELECT COUNT(DISTINCT event_date)
	FROM attendance_events
	WHERE employee_id = ? AND event_type = ? AND event_date BETWEEN ? AND ?`,
		employeeID, string(EventCheckIn), from, to,
	).Scan(&n)
	return n, err
}

func (r *sqlRepo) InsertEvent(ctx context.Context, ev *Event) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO attendance_events
	(employee_id, event_type, event_date, check_time, recorded_at, reason_code,
	 latitude, longitude, location_id, device_token, fingerprint, duration_hours)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.EmployeeID, string(ev.Type), ev.EventDate, ev.CheckTime, ev.RecordedAt.UTC(),
		reasonOrNil(ev.Reason), ev.Latitude, ev.Longitude, ev.LocationID,
		ev.DeviceToken, ev.Fingerprint, ev.DurationHours)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// BindDevice: 初回打刻時の一度きりのバインド。以降の上書きはしない
// （トークン差し替えは UpdateDeviceToken のみ）。
func (r *sqlRepo) BindDevice(ctx context.Context, employeeID int64, fingerprint, token string) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE employees SET web_fingerprint = ?, device_token = ?
	WHERE employee_id = ? AND device_token IS NULL`, fingerprint, token, employeeID)
	return err
}

func (r *sqlRepo) UpdateDeviceToken(ctx context.Context, employeeID int64, token string) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE employees SET device_token = ? WHERE employee_id = ?`, token, employeeID)
	return err
}

func (r *sqlRepo) InsertAudit(ctx context.Context, a *BindingAudit) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO binding_audit
	(audit_id, employee_id, decision, device_token, fingerprint, out_of_range, distance_meters)
	VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.AuditID, a.EmployeeID, a.Decision, a.DeviceToken, a.Fingerprint,
		a.OutOfRange, a.Distance)
	return err
}

func reasonOrNil(r ReasonCode) any {
	if r == ReasonNone {
		return nil
	}
	return string(r)
}
