package employee

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound  = errors.New("employee not found")
	ErrDuplicate = errors.New("employee code or phone already registered")
	ErrInvalid   = errors.New("invalid employee")
)

// 4文字未満の入力は検索せずに「未登録扱い」で返す。
// キオスク側の入力デバウンスをサーバでも守るだけで、セキュリティ境界ではない。
const MinIdentifierLength = 4

type Service struct {
	store EmployeeStore
}

func NewService(db DBTX) *Service {
	return &Service{store: NewStore(db)}
}

// Resolve: 職員コードまたは電話番号から職員を一意に引く。
// 見つからない場合は (nil, nil)。異常ではなく通常の結果。
func (s *Service) Resolve(ctx context.Context, identifier string) (*Employee, error) {
	identifier = strings.TrimSpace(identifier)
	if len(identifier) < MinIdentifierLength {
		return nil, nil
	}
	e, err := s.store.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if e == nil || !e.IsActive() {
		return nil, nil
	}
	return e, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Employee, error) {
	e, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Employee, int64, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.List(ctx, limit, offset)
}

func (s *Service) Create(ctx context.Context, req CreateEmployeeRequest) (*Employee, error) {
	code := strings.TrimSpace(req.Code)
	phone := strings.TrimSpace(req.PhoneNumber)
	if code == "" || req.Name == "" || phone == "" {
		return nil, ErrInvalid
	}

	// 一意制約はDBが最終防衛。ここでの存在確認は親切なエラーメッセージ用。
	exists, err := s.store.ExistsCodeOrPhone(ctx, code, phone, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicate
	}

	e := &Employee{
		Code:        code,
		Name:        req.Name,
		JobTitle:    req.JobTitle,
		Department:  req.Department,
		PhoneNumber: phone,
		Status:      StatusActive,
	}
	id, err := s.store.Create(ctx, e)
	if err != nil {
		return nil, err
	}
	e.ID = id
	return e, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (*Employee, error) {
	e, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.JobTitle != nil {
		e.JobTitle = *req.JobTitle
	}
	if req.Department != nil {
		e.Department = *req.Department
	}
	if req.PhoneNumber != nil {
		phone := strings.TrimSpace(*req.PhoneNumber)
		if phone == "" {
			return nil, ErrInvalid
		}
		e.PhoneNumber = phone
	}
	if req.Status != nil {
		if *req.Status != StatusActive && *req.Status != StatusInactive {
			return nil, ErrInvalid
		}
		e.Status = *req.Status
	}

	exists, err := s.store.ExistsCodeOrPhone(ctx, e.Code, e.PhoneNumber, e.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicate
	}

	if _, err := s.store.Update(ctx, e); err != nil {
		return nil, err
	}

	if req.ResetDevice {
		if err := s.store.ClearDevice(ctx, e.ID); err != nil {
			return nil, err
		}
		e.WebFingerprint = nil
		e.DeviceToken = nil
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	n, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
