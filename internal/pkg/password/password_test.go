package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashWithCost("opor45796", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashWithCost() error: %v", err)
	}
	if !Verify("opor45796", hash) {
		t.Error("expected matching secret to verify")
	}
	if Verify("wrong", hash) {
		t.Error("expected wrong secret to fail")
	}
}

func TestHashTokenStable(t *testing.T) {
	a := HashToken(`[{"id":"m1"}]`)
	if a != HashToken(`[{"id":"m1"}]`) {
		t.Error("HashToken must be deterministic")
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
	if a == HashToken(`[]`) {
		t.Error("different input, same hash")
	}
}
