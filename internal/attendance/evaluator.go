package attendance

import (
	"time"

	"attendance-backend/internal/settings"
)

// 状態は常に当日のログから導出する。「現在ステータス」列は持たない。
// ログと食い違うキャッシュを作らないための方針（ログが唯一の真実）。

type Evaluation struct {
	Status     Status
	NextAction EventType
	IsLate     bool
}

// after: a が b より「後」か。時刻同値はIDの大きい方が後（IDは単調増加）。
func after(a, b *Event) bool {
	if a.RecordedAt.Equal(b.RecordedAt) {
		return a.ID > b.ID
	}
	return a.RecordedAt.After(b.RecordedAt)
}

func latestOfType(events []Event, t EventType) *Event {
	var latest *Event
	for i := range events {
		if events[i].Type != t {
			continue
		}
		if latest == nil || after(&events[i], latest) {
			latest = &events[i]
		}
	}
	return latest
}

// Evaluate: 当日のイベント列（ID昇順）と現在時刻から
// ステータス・次の動作・遅刻判定を導く。now は拠点ローカル時刻であること。
// 入力が変わらない限り結果は変わらない（純関数）。
func Evaluate(todays []Event, now time.Time, rules settings.WorkRules) Evaluation {
	lastIn := latestOfType(todays, EventCheckIn)
	lastOut := latestOfType(todays, EventCheckOut)

	status := StatusOut
	if lastIn != nil && (lastOut == nil || after(lastIn, lastOut)) {
		status = StatusIn
	}

	next := EventCheckIn
	if status == StatusIn {
		next = EventCheckOut
	}

	// 遅刻は次が Check-In のときだけ意味を持つ。
	// 締め時刻ちょうどはセーフ、1秒でも過ぎたら遅刻。
	late := false
	if next == EventCheckIn {
		late = settings.TimeOfDayFrom(now) > rules.Deadline()
	}

	return Evaluation{Status: status, NextAction: next, IsLate: late}
}

// FirstCheckInTime: 当日の最初の Check-In。勤務時間の計算用。
func FirstCheckInTime(todays []Event) (time.Time, bool) {
	var first *Event
	for i := range todays {
		if todays[i].Type != EventCheckIn {
			continue
		}
		if first == nil || after(first, &todays[i]) {
			first = &todays[i]
		}
	}
	if first == nil {
		return time.Time{}, false
	}
	return first.RecordedAt, true
}
