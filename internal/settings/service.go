package settings

import (
	"context"
	"fmt"
	"log"
	"strconv"
)

type Service struct {
	store *Store
}

func NewService(db DBTX) *Service {
	return &Service{store: NewStore(db)}
}

func (s *Service) GetAll(ctx context.Context) (map[string]string, error) {
	return s.store.GetAll(ctx)
}

func (s *Service) Put(ctx context.Context, key, value string) error {
	// 勤務ルール系は保存前に形式を確認する
	switch key {
	case KeyWorkStartTime:
		if _, err := ParseTimeOfDay(value); err != nil {
			return errInvalidValue(key, value)
		}
	case KeyLateAllowanceMinutes:
		if _, ok := parseNonNegativeInt(value); !ok {
			return errInvalidValue(key, value)
		}
	}
	return s.store.Put(ctx, key, value)
}

// WorkRules: 現在有効な勤務ルール。設定が読めない場合も既定値で動かす
// （ここで止めなくても、本当にDBが落ちていれば打刻ログ側で UNAVAILABLE になる）。
func (s *Service) WorkRules(ctx context.Context) (WorkRules, error) {
	values, err := s.store.GetAll(ctx)
	if err != nil {
		log.Printf("[WARN] settings unavailable, using defaults: %v", err)
		return DefaultWorkRules(), nil
	}
	return WorkRulesFrom(values), nil
}

type InvalidValueError struct {
	Key   string
	Value string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value for %s: %q", e.Key, e.Value)
}

func errInvalidValue(key, value string) error {
	return &InvalidValueError{Key: key, Value: value}
}

func parseNonNegativeInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
