package settings

import (
	"fmt"
	"strconv"
	"time"
)

// 勤務ルール。app_settings の欠損・パース失敗時は既定値に落とす。
const (
	KeyWorkStartTime        = "work_start_time"        // "HH:MM:SS"
	KeyLateAllowanceMinutes = "late_allowance_minutes" // 整数（分）

	DefaultWorkStartTime        = "08:30:00"
	DefaultLateAllowanceMinutes = 15

	timeOfDayLayout = "15:04:05"
)

// TimeOfDay: 深夜0時からの経過秒。日付に依存しない比較用。
type TimeOfDay int

func (t TimeOfDay) String() string {
	sec := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", sec/3600, (sec/60)%60, sec%60)
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parsed, err := time.Parse(timeOfDayLayout, s)
	if err != nil {
		return 0, err
	}
	return TimeOfDay(parsed.Hour()*3600 + parsed.Minute()*60 + parsed.Second()), nil
}

func TimeOfDayFrom(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

type WorkRules struct {
	OfficialStart TimeOfDay
	GraceMinutes  int
}

// Deadline: この時刻を「過ぎたら」遅刻。ちょうどは間に合い。
func (w WorkRules) Deadline() TimeOfDay {
	return w.OfficialStart + TimeOfDay(w.GraceMinutes*60)
}

func DefaultWorkRules() WorkRules {
	start, _ := ParseTimeOfDay(DefaultWorkStartTime)
	return WorkRules{OfficialStart: start, GraceMinutes: DefaultLateAllowanceMinutes}
}

// WorkRulesFrom: 設定マップから組み立てる。壊れた値は既定値で補う。
func WorkRulesFrom(values map[string]string) WorkRules {
	rules := DefaultWorkRules()

	if raw, ok := values[KeyWorkStartTime]; ok {
		if start, err := ParseTimeOfDay(raw); err == nil {
			rules.OfficialStart = start
		}
	}
	if raw, ok := values[KeyLateAllowanceMinutes]; ok {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			rules.GraceMinutes = n
		}
	}
	return rules
}
