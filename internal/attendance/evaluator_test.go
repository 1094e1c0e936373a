package attendance

import (
	"testing"
	"time"

	"attendance-backend/internal/settings"
)

func testRules(t *testing.T, start string, graceMinutes int) settings.WorkRules {
	t.Helper()
	tod, err := settings.ParseTimeOfDay(start)
	if err != nil {
		t.Fatalf("parse start: %v", err)
	}
	return settings.WorkRules{OfficialStart: tod, GraceMinutes: graceMinutes}
}

func at(t *testing.T, hhmmss string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04:05", "2026-03-05 "+hhmmss)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return parsed
}

func ev(t *testing.T, id int64, typ EventType, hhmmss string) Event {
	t.Helper()
	return Event{ID: id, EmployeeID: 1, Type: typ, EventDate: "2026-03-05", CheckTime: hhmmss, RecordedAt: at(t, hhmmss)}
}

func TestEvaluateEmptyDay(t *testing.T) {
	got := Evaluate(nil, at(t, "08:00:00"), testRules(t, "09:00:00", 15))
	if got.Status != StatusOut {
		t.Fatalf("status: %v", got.Status)
	}
	if got.NextAction != EventCheckIn {
		t.Fatalf("next action: %v", got.NextAction)
	}
}

func TestEvaluateLatestEventDrivesStatus(t *testing.T) {
	rules := testRules(t, "09:00:00", 15)

	in := []Event{ev(t, 1, EventCheckIn, "08:55:00")}
	if got := Evaluate(in, at(t, "12:00:00"), rules); got.Status != StatusIn || got.NextAction != EventCheckOut {
		t.Fatalf("after check-in: %+v", got)
	}

	out := append(in, ev(t, 2, EventCheckOut, "17:00:00"))
	if got := Evaluate(out, at(t, "17:30:00"), rules); got.Status != StatusOut || got.NextAction != EventCheckIn {
		t.Fatalf("after check-out: %+v", got)
	}

	// 退勤後の再出勤も許す（次の動作は常にステータスの裏返し）
	again := append(out, ev(t, 3, EventCheckIn, "18:00:00"))
	if got := Evaluate(again, at(t, "18:30:00"), rules); got.Status != StatusIn {
		t.Fatalf("after re-check-in: %+v", got)
	}
}

func TestEvaluateEqualTimesTieBreakByID(t *testing.T) {
	rules := testRules(t, "09:00:00", 15)

	// 同時刻の In/Out。IDが単調増加なので大きい方が後。
	events := []Event{
		ev(t, 10, EventCheckIn, "09:00:00"),
		ev(t, 11, EventCheckOut, "09:00:00"),
	}
	if got := Evaluate(events, at(t, "10:00:00"), rules); got.Status != StatusOut {
		t.Fatalf("expected Out when check-out has the larger id: %+v", got)
	}

	reversed := []Event{
		ev(t, 10, EventCheckOut, "09:00:00"),
		ev(t, 11, EventCheckIn, "09:00:00"),
	}
	if got := Evaluate(reversed, at(t, "10:00:00"), rules); got.Status != StatusIn {
		t.Fatalf("expected In when check-in has the larger id: %+v", got)
	}
}

func TestEvaluateToleratesDirtyInterleaving(t *testing.T) {
	// 既存データに In,In,Out が並んでいても最後の状態だけで判定する
	events := []Event{
		ev(t, 1, EventCheckIn, "08:00:00"),
		ev(t, 2, EventCheckIn, "08:30:00"),
		ev(t, 3, EventCheckOut, "17:00:00"),
	}
	got := Evaluate(events, at(t, "18:00:00"), testRules(t, "09:00:00", 15))
	if got.Status != StatusOut || got.NextAction != EventCheckIn {
		t.Fatalf("dirty log: %+v", got)
	}
}

func TestEvaluateLatenessBoundary(t *testing.T) {
	rules := testRules(t, "09:00:00", 15)

	// 締め時刻ちょうど（09:15:00）はセーフ
	if got := Evaluate(nil, at(t, "09:15:00"), rules); got.IsLate {
		t.Fatalf("09:15:00 must not be late")
	}
	if got := Evaluate(nil, at(t, "09:15:01"), rules); !got.IsLate {
		t.Fatalf("09:15:01 must be late")
	}
	if got := Evaluate(nil, at(t, "09:16:00"), rules); !got.IsLate {
		t.Fatalf("09:16:00 must be late")
	}
}

func TestEvaluateLatenessOnlyForCheckIn(t *testing.T) {
	rules := testRules(t, "09:00:00", 15)
	events := []Event{ev(t, 1, EventCheckIn, "09:40:00")}
	got := Evaluate(events, at(t, "18:00:00"), rules)
	if got.NextAction != EventCheckOut {
		t.Fatalf("next action: %v", got.NextAction)
	}
	if got.IsLate {
		t.Fatalf("lateness must not be reported for a pending check-out")
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	rules := testRules(t, "09:00:00", 15)
	events := []Event{
		ev(t, 1, EventCheckIn, "09:40:00"),
		ev(t, 2, EventCheckOut, "13:00:00"),
	}
	now := at(t, "14:00:00")
	first := Evaluate(events, now, rules)
	second := Evaluate(events, now, rules)
	if first != second {
		t.Fatalf("evaluate is not idempotent: %+v vs %+v", first, second)
	}
}

func TestFirstCheckInTime(t *testing.T) {
	events := []Event{
		ev(t, 2, EventCheckIn, "09:30:00"),
		ev(t, 1, EventCheckIn, "08:00:00"),
		ev(t, 3, EventCheckOut, "17:00:00"),
	}
	first, ok := FirstCheckInTime(events)
	if !ok {
		t.Fatalf("expected a first check-in")
	}
	if !first.Equal(at(t, "08:00:00")) {
		t.Fatalf("first check-in: %v", first)
	}

	if _, ok := FirstCheckInTime([]Event{ev(t, 1, EventCheckOut, "17:00:00")}); ok {
		t.Fatalf("no check-in means no duration base")
	}
}
