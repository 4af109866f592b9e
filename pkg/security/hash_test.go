package security_test

import (
	"strconv"
	"testing"

	"github.com/angelmondragon/catalogo-industrial-backend/pkg/config"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/security"
)

func TestHashAndVerifySecret(t *testing.T) {
	cfg := config.PasswordConfig{
		ArgonMemoryKB:    32768,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}

	hash, err := security.HashSecret("482913", cfg)
	if err != nil {
		t.Fatalf("HashSecret returned error: %v", err)
	}
	if hash == "" || hash == "482913" {
		t.Fatalf("unexpected hash %q", hash)
	}

	ok, err := security.VerifySecret("482913", hash)
	if err != nil {
		t.Fatalf("VerifySecret returned error for valid hash: %v", err)
	}
	if !ok {
		t.Fatal("VerifySecret failed for the correct secret")
	}

	ok, err = security.VerifySecret("482914", hash)
	if err != nil {
		t.Fatalf("VerifySecret returned error for wrong secret: %v", err)
	}
	if ok {
		t.Fatal("VerifySecret returned true for incorrect secret")
	}
}

func TestHashSecretWithZeroConfigClampsParams(t *testing.T) {
	hash, err := security.HashSecret("123456", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("HashSecret returned error: %v", err)
	}
	ok, err := security.VerifySecret("123456", hash)
	if err != nil || !ok {
		t.Fatalf("expected verify to succeed, ok=%v err=%v", ok, err)
	}
}

func TestHashSecretRejectsEmpty(t *testing.T) {
	if _, err := security.HashSecret("", config.PasswordConfig{}); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestVerifySecretBadHash(t *testing.T) {
	if _, err := security.VerifySecret("irrelevant", "not-a-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}

func TestGenerateNumericCodeRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := security.GenerateNumericCode(100000, 999999)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil || n < 100000 || n > 999999 {
			t.Fatalf("code %q out of range", code)
		}
	}
	if _, err := security.GenerateNumericCode(10, 1); err == nil {
		t.Fatal("expected invalid range error")
	}
}
