package employee

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

type Employee struct {
	ID          int64
	Code        string // 職員コード（一意）
	Name        string
	JobTitle    string
	Department  string
	PhoneNumber string // 一意
	// 端末バインド。初回打刻時に一度だけ自動設定される（Guard管轄）。
	WebFingerprint *string
	DeviceToken    *string
	Status         string
}

func (e *Employee) IsActive() bool { return e.Status == StatusActive }

// Bound: 端末バインド済みか
func (e *Employee) Bound() bool {
	return e.DeviceToken != nil && *e.DeviceToken != ""
}
