package attendance

import (
	"github.com/google/uuid"

	"attendance-backend/internal/employee"
)

// 端末バインドの判定。初回打刻で指紋＋トークンを固定し、
// 以降は提示されたシグナルと比較する（勝手な上書きはしない）。
//
// 初回の端末が正しい保証はない（trust-on-first-use の既知の弱点）。
// 不一致時の方針は web 側の運用実績どおり:
//   - 提示トークンが他人にバインド済み → 拒否
//   - トークン一致 → 許可
//   - トークン不一致でも canvas 指紋一致 → 許可してトークンを差し替え
//     （キオスクのローカルストレージが消えただけの同一端末とみなす）
//   - 両方不一致 → 拒否

type Decision int

const (
	DecisionAllow Decision = iota
	DecisionBind           // 初回バインド（TOFU）
	DecisionRotateToken    // 指紋一致によるトークン差し替え
	DecisionRejectForeignToken
	DecisionRejectMismatch
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionBind:
		return "bind"
	case DecisionRotateToken:
		return "rotate_token"
	case DecisionRejectForeignToken:
		return "reject_foreign_token"
	case DecisionRejectMismatch:
		return "reject_mismatch"
	}
	return "unknown"
}

func (d Decision) Rejected() bool {
	return d == DecisionRejectForeignToken || d == DecisionRejectMismatch
}

// ValidToken: 端末トークンはクライアント生成のUUID。形式だけ確認する。
func ValidToken(token string) bool {
	_, err := uuid.Parse(token)
	return err == nil
}

// Authorize: emp に対する端末シグナルの判定。
// tokenOwner は提示トークンを現在バインドしている職員（いなければ nil）。
func Authorize(emp *employee.Employee, token, fingerprint string, tokenOwner *employee.Employee) Decision {
	if tokenOwner != nil && tokenOwner.ID != emp.ID {
		return DecisionRejectForeignToken
	}

	if !emp.Bound() {
		return DecisionBind
	}

	if *emp.DeviceToken == token {
		return DecisionAllow
	}

	if emp.WebFingerprint != nil && *emp.WebFingerprint != "" && *emp.WebFingerprint == fingerprint {
		return DecisionRotateToken
	}

	return DecisionRejectMismatch
}
