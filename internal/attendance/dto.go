package attendance

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// GET /api/employee-status のレスポンス
type StatusResponse struct {
	Status       string     `json:"status"` // "found" | "not_found"
	EmployeeName string     `json:"employee_name,omitempty"`
	JobTitle     string     `json:"job_title,omitempty"`
	NextAction   EventType  `json:"next_action,omitempty"`
	IsLate       bool       `json:"is_late"`
	TodaysLog    []LogEntry `json:"todays_log"`
	Stats        *StatsDTO  `json:"stats,omitempty"`
}

type LogEntry struct {
	ID        int64     `json:"id"`
	Type      EventType `json:"type"`
	CheckTime string    `json:"check_time"` // 拠点ローカル "HH:MM:SS"
}

type StatsDTO struct {
	MonthlyAttendance int `json:"monthly_attendance"`
}

// POST /api/check-in のリクエスト
type CheckInRequest struct {
	Identifier  string       `json:"identifier" binding:"required"`
	Fingerprint string       `json:"fingerprint" binding:"required"`
	Location    *LocationDTO `json:"location"` // 権限拒否などで null あり
	Type        EventType    `json:"type" binding:"required"`
	Notes       string       `json:"notes"` // 遅刻理由コード（閉集合）
	Token       string       `json:"token" binding:"required"`
}

type LocationDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type CheckInResponse struct {
	Status  string `json:"status"` // "success" | "error"
	Code    Code   `json:"code,omitempty"`
	Message string `json:"message"`
}
