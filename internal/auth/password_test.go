package auth

import "testing"

func TestPasswordHashingLifecycle(t *testing.T) {
	password := "S3curePass!"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("unexpected error hashing password: %v", err)
	}
	if hash == "" {
		t.Fatal("expected hash to be populated")
	}

	if !CheckPassword(hash, password) {
		t.Fatal("expected password to verify")
	}

	if CheckPassword(hash, "wrong") {
		t.Fatal("expected verification to fail for wrong password")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword("   "); err == nil {
		t.Fatal("expected error for blank password")
	}
}

func TestCheckPasswordUnsetHash(t *testing.T) {
	// 未设置密码的账户永远不能通过校验
	if CheckPassword("", "anything") {
		t.Fatal("expected unset hash to reject all candidates")
	}
	if CheckPassword("   ", "") {
		t.Fatal("expected blank hash to reject empty candidate")
	}
}

func TestHashPasswordProducesDistinctHashes(t *testing.T) {
	first, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Fatal("expected salted hashes to differ")
	}
}
