package settings

import "testing"

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("08:30:00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tod != TimeOfDay(8*3600+30*60) {
		t.Fatalf("unexpected value: %d", tod)
	}
	if tod.String() != "08:30:00" {
		t.Fatalf("round trip: %s", tod.String())
	}

	if _, err := ParseTimeOfDay("25:99"); err == nil {
		t.Fatalf("expected error for malformed time")
	}
}

func TestWorkRulesFromDefaults(t *testing.T) {
	rules := WorkRulesFrom(map[string]string{})
	def := DefaultWorkRules()
	if rules != def {
		t.Fatalf("expected defaults, got %+v", rules)
	}
}

func TestWorkRulesFromSettings(t *testing.T) {
	rules := WorkRulesFrom(map[string]string{
		KeyWorkStartTime:        "09:00:00",
		KeyLateAllowanceMinutes: "15",
	})
	if rules.OfficialStart.String() != "09:00:00" {
		t.Fatalf("start: %s", rules.OfficialStart)
	}
	if rules.GraceMinutes != 15 {
		t.Fatalf("grace: %d", rules.GraceMinutes)
	}
	if rules.Deadline().String() != "09:15:00" {
		t.Fatalf("deadline: %s", rules.Deadline())
	}
}

func TestWorkRulesBrokenValuesFallBack(t *testing.T) {
	rules := WorkRulesFrom(map[string]string{
		KeyWorkStartTime:        "nine o'clock",
		KeyLateAllowanceMinutes: "-3",
	})
	if rules != DefaultWorkRules() {
		t.Fatalf("expected defaults for broken values, got %+v", rules)
	}
}
