package attendance

import "time"

type EventType string

const (
	EventCheckIn  EventType = "Check-In"
	EventCheckOut EventType = "Check-Out"
)

func (t EventType) Valid() bool {
	return t == EventCheckIn || t == EventCheckOut
}

// Opposite: 状態機械の次の動作はもう一方の型
func (t EventType) Opposite() EventType {
	if t == EventCheckIn {
		return EventCheckOut
	}
	return EventCheckIn
}

// 遅刻理由コード（閉集合）。キオスクの notes フィールドで運ばれる。
type ReasonCode string

const (
	ReasonNone           ReasonCode = ""
	ReasonLatePermission ReasonCode = "late_permission"
	ReasonMorningMission ReasonCode = "morning_mission"
	ReasonEmergency      ReasonCode = "emergency"
)

func (r ReasonCode) Valid() bool {
	switch r {
	case ReasonNone, ReasonLatePermission, ReasonMorningMission, ReasonEmergency:
		return true
	}
	return false
}

type Status string

const (
	StatusIn  Status = "In"
	StatusOut Status = "Out"
)

// Event: 打刻ログの1行。書き込み後は不変（追記専用）。
type Event struct {
	ID         int64
	EmployeeID int64
	Type       EventType
	// 拠点ローカルの日付と時刻（表示・日次集計用）。比較は RecordedAt で行う。
	EventDate  string // "2006-01-02"
	CheckTime  string // "15:04:05"
	RecordedAt time.Time
	Reason     ReasonCode
	Latitude   *float64
	Longitude  *float64
	LocationID *int64
	// 監査用に受理時の端末シグナルをそのまま残す
	DeviceToken   string
	Fingerprint   string
	DurationHours *float64 // Check-Out 時のみ: 当日の最初の Check-In からの経過時間
}

// BindingAudit: Guardの判定を1件ずつ記録する監査行（merge不可・追記専用）。
type BindingAudit struct {
	AuditID     string // ULID
	EmployeeID  int64
	Decision    string
	DeviceToken string
	Fingerprint string
	OutOfRange  bool
	Distance    *float64 // 最寄り拠点までのメートル。位置情報なしなら nil。
}
