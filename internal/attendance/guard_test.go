package attendance

import (
	"testing"

	"attendance-backend/internal/employee"
)

const (
	tokenA = "3f0c8a1e-5b9f-4e46-9a30-8f1f1c2f9b01"
	tokenB = "9d2b7c44-1a6e-4f1b-b2d3-0e5a6c7d8e02"
	fpA    = "canvas-hash-a"
	fpB    = "canvas-hash-b"
)

func boundEmployee(id int64, token, fp string) *employee.Employee {
	return &employee.Employee{
		ID: id, Code: "EMP-001", Name: "Ahmed", Status: employee.StatusActive,
		DeviceToken: &token, WebFingerprint: &fp,
	}
}

func TestAuthorizeFirstUseBinds(t *testing.T) {
	emp := &employee.Employee{ID: 1, Status: employee.StatusActive}
	if d := Authorize(emp, tokenA, fpA, nil); d != DecisionBind {
		t.Fatalf("expected bind on first use, got %v", d)
	}
}

func TestAuthorizeTokenMatchAllows(t *testing.T) {
	emp := boundEmployee(1, tokenA, fpA)
	if d := Authorize(emp, tokenA, fpB, emp); d != DecisionAllow {
		t.Fatalf("expected allow on token match, got %v", d)
	}
}

func TestAuthorizeFingerprintMatchRotatesToken(t *testing.T) {
	// キオスクのストレージが消えた同一端末: トークンは変わるが指紋は一致
	emp := boundEmployee(1, tokenA, fpA)
	if d := Authorize(emp, tokenB, fpA, nil); d != DecisionRotateToken {
		t.Fatalf("expected token rotation, got %v", d)
	}
}

func TestAuthorizeFullMismatchRejects(t *testing.T) {
	emp := boundEmployee(1, tokenA, fpA)
	d := Authorize(emp, tokenB, fpB, nil)
	if d != DecisionRejectMismatch {
		t.Fatalf("expected mismatch rejection, got %v", d)
	}
	if !d.Rejected() {
		t.Fatalf("mismatch must count as rejected")
	}
}

func TestAuthorizeForeignTokenRejects(t *testing.T) {
	// 提示トークンが別職員にバインド済み → 本人の端末でも拒否
	emp := boundEmployee(1, tokenA, fpA)
	other := boundEmployee(2, tokenB, fpB)
	if d := Authorize(emp, tokenB, fpA, other); d != DecisionRejectForeignToken {
		t.Fatalf("expected foreign-token rejection, got %v", d)
	}
}

func TestValidToken(t *testing.T) {
	if !ValidToken(tokenA) {
		t.Fatalf("uuid token must validate")
	}
	for _, bad := range []string{"", "abc", "not-a-uuid-at-all"} {
		if ValidToken(bad) {
			t.Fatalf("token %q must not validate", bad)
		}
	}
}
