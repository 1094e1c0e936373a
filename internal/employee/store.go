package employee

import (
	"context"
	"database/sql"
	"errors"
)

type DBTX interface {
	ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, q string, args ...any) *sql.Row
}

type EmployeeStore interface {
	FindByIdentifier(ctx context.Context, identifier string) (*Employee, error)
	GetByID(ctx context.Context, id int64) (*Employee, error)
	ExistsCodeOrPhone(ctx context.Context, code, phone string, excludeID int64) (bool, error)
	List(ctx context.Context, limit, offset int) ([]Employee, int64, error)
	Create(ctx context.Context, e *Employee) (int64, error)
	Update(ctx context.Context, e *Employee) (int64, error)
	ClearDevice(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type Store struct{ db DBTX }

func NewStore(db DBTX) *Store { return &Store{db: db} }

const selectColumns = `
	employee_id, employee_code, name, job_title, department, phone_number,
	web_fingerprint, device_token, status`

func scanEmployee(row interface{ Scan(...any) error }) (*Employee, error) {
	var e Employee
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

// FindByIdentifier: 職員コード OR 電話番号の完全一致。最初の1件。
func (s *Store) FindByIdentifier(ctx context.Context, identifier string) (*Employee, error) {
	row := s.db.QueryRowContext(ctx, `
	SELECT`+selectColumns+`
	FROM employees
	WHERE employee_code = ? OR phone_number = ?
	ORDER BY employee_id ASC
	LIMIT 1`, identifier, identifier)
	return scanEmployee(row)
}

func (s *Store) GetByID(ctx context.Context, id int64) (*Employee, error) {
	row := s.db.QueryRowContext(ctx, `
	SELECT`+selectColumns+`
	FROM employees
	WHERE employee_id = ? LIMIT 1`, id)
	return scanEmployee(row)
}

func (s *Store) ExistsCodeOrPhone(ctx context.Context, code, phone string, excludeID int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
	SELECT 1 FROM employees
	WHERE (employee_code = ? OR phone_number = ?) AND employee_id <> ?
	LIMIT 1`, code, phone, excludeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) List(ctx context.Context, limit, offset int) ([]Employee, int64, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT`+selectColumns+`
	FROM employees
	ORDER BY employee_id ASC
	LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *Store) Create(ctx context.Context, e *Employee) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
	INSERT INTO employees (employee_code, name, job_title, department, phone_number, status)
	VALUES (?, ?, ?, ?, ?, ?)`,
		e.Code, e.Name, e.JobTitle, e.Department, e.PhoneNumber, e.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) Update(ctx context.Context, e *Employee) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
	UPDATE employees
	SET name = ?, job_title = ?, department = ?, phone_number = ?, status = ?
	WHERE employee_id = ?`,
		e.Name, e.JobTitle, e.Department, e.PhoneNumber, e.Status, e.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ClearDevice: 管理操作でのバインド解除。次回打刻で再バインドされる。
func (s *Store) ClearDevice(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `
	UPDATE employees SET web_fingerprint = NULL, device_token = NULL
	WHERE employee_id = ?`, id)
	return err
}

func (s *Store) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE employee_id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
