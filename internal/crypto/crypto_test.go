package crypto

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

func testKey(t *testing.T) string {
	t.Helper()
	return hex.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
}

func newTestCipher(t *testing.T) *FieldCipher {
	t.Helper()
	c, err := NewFieldCipher(testKey(t))
	if err != nil {
		t.Fatalf("NewFieldCipher: %v", err)
	}
	return c
}

func TestRoundtrip(t *testing.T) {
	c := newTestCipher(t)

	original := "Great ownership of the release; clear written updates."
	sealed, err := c.Seal(original, "fb-1")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if !strings.HasPrefix(sealed, sealedPrefix) {
		t.Fatalf("sealed value should carry %q prefix, got %q", sealedPrefix, sealed)
	}
	if strings.Contains(sealed, "ownership") {
		t.Fatal("sealed value leaks plaintext")
	}

	opened, err := c.Open(sealed, "fb-1")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if opened != original {
		t.Errorf("roundtrip failed: got %q, want %q", opened, original)
	}
}

func TestDifferentCiphertexts(t *testing.T) {
	c := newTestCipher(t)

	s1, err := c.Seal("same input", "fb-1")
	if err != nil {
		t.Fatalf("Seal 1: %v", err)
	}
	s2, err := c.Seal("same input", "fb-1")
	if err != nil {
		t.Fatalf("Seal 2: %v", err)
	}
	if s1 == s2 {
		t.Error("two seals of the same plaintext should differ (random nonce)")
	}
}

func TestOpenBoundToRow(t *testing.T) {
	c := newTestCipher(t)

	sealed, err := c.Seal("for row one", "fb-1")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if _, err := c.Open(sealed, "fb-2"); err == nil {
		t.Error("expected error opening a value under another row id")
	}
}

func TestPlaintextPassthrough(t *testing.T) {
	c := newTestCipher(t)

	got, err := c.Open("written before encryption was enabled", "fb-1")
	if err != nil {
		t.Fatalf("Open plaintext: %v", err)
	}
	if got != "written before encryption was enabled" {
		t.Errorf("plaintext should pass through, got %q", got)
	}
}

func TestNilCipher(t *testing.T) {
	var c *FieldCipher

	sealed, err := c.Seal("hello", "fb-1")
	if err != nil {
		t.Fatalf("nil Seal: %v", err)
	}
	if sealed != "hello" {
		t.Errorf("nil Seal should return plaintext unchanged, got %q", sealed)
	}

	opened, err := c.Open("hello", "fb-1")
	if err != nil || opened != "hello" {
		t.Errorf("nil Open of plaintext: got %q, %v", opened, err)
	}

	keyed := newTestCipher(t)
	enc, _ := keyed.Seal("secret", "fb-1")
	if _, err := c.Open(enc, "fb-1"); !errors.Is(err, ErrNoKey) {
		t.Errorf("expected ErrNoKey, got %v", err)
	}
}

func TestEmptyKeyReturnsNil(t *testing.T) {
	c, err := NewFieldCipher("")
	if err != nil {
		t.Fatalf("NewFieldCipher with empty key: %v", err)
	}
	if c != nil {
		t.Error("NewFieldCipher with empty key should return nil")
	}
}

func TestInvalidKeyLength(t *testing.T) {
	short := hex.EncodeToString([]byte("0123456789abcdef"))
	_, err := NewFieldCipher(short)
	if err == nil {
		t.Fatal("expected error for 16-byte key")
	}
	if !strings.Contains(err.Error(), "32 bytes") {
		t.Errorf("error should mention 32 bytes, got: %v", err)
	}

	if _, err := NewFieldCipher("not-hex"); err == nil {
		t.Error("expected error for invalid hex")
	}
}

func TestOpenInvalidData(t *testing.T) {
	c := newTestCipher(t)

	if _, err := c.Open(sealedPrefix+"!!!not-base64!!!", "fb-1"); err == nil {
		t.Error("expected error for invalid base64")
	}
	if _, err := c.Open(sealedPrefix+"YQ==", "fb-1"); err == nil {
		t.Error("expected error for too-short ciphertext")
	}

	sealed, _ := c.Seal("hello", "fb-1")
	tampered := []byte(sealed)
	i := len(sealedPrefix) + (len(tampered)-len(sealedPrefix))/2
	if tampered[i] == 'A' {
		tampered[i] = 'B'
	} else {
		tampered[i] = 'A'
	}
	if _, err := c.Open(string(tampered), "fb-1"); err == nil {
		t.Error("expected error for tampered ciphertext")
	}
}
