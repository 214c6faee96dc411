package crypto

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	blob, err := EncryptSecret("hunter2", "passphrase")
	if err != nil {
		t.Fatalf("EncryptSecret: %v", err)
	}

	got, err := DecryptSecret(blob, "passphrase")
	if err != nil {
		t.Fatalf("DecryptSecret: %v", err)
	}
	if got != "hunter2" {
		t.Errorf("decrypted = %q, want hunter2", got)
	}
}

func TestDecryptWrongPassphrase(t *testing.T) {
	blob, err := EncryptSecret("hunter2", "passphrase")
	if err != nil {
		t.Fatalf("EncryptSecret: %v", err)
	}

	if _, err := DecryptSecret(blob, "not-the-passphrase"); err == nil {
		t.Error("expected error for wrong passphrase")
	}
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	blob, err := EncryptSecret("hunter2", "passphrase")
	if err != nil {
		t.Fatalf("EncryptSecret: %v", err)
	}

	var stored map[string]any
	if err := json.Unmarshal(blob, &stored); err != nil {
		t.Fatalf("unmarshal blob: %v", err)
	}
	ct := stored["ciphertext"].(string)
	// flip one character of the base64 payload
	flipped := "A"
	if strings.HasPrefix(ct, "A") {
		flipped = "B"
	}
	stored["ciphertext"] = flipped + ct[1:]
	tampered, _ := json.Marshal(stored)

	if _, err := DecryptSecret(tampered, "passphrase"); err == nil {
		t.Error("expected error for tampered ciphertext")
	}
}

func TestDecryptUnsupportedVersion(t *testing.T) {
	blob := []byte(`{"version":99,"salt":"","nonce":"","ciphertext":""}`)
	if _, err := DecryptSecret(blob, "passphrase"); err == nil || !strings.Contains(err.Error(), "version") {
		t.Errorf("err = %v, want unsupported version", err)
	}
}

func TestEncryptRejectsEmptyInputs(t *testing.T) {
	if _, err := EncryptSecret("", "passphrase"); err == nil {
		t.Error("expected error for empty secret")
	}
	if _, err := EncryptSecret("secret", ""); err == nil {
		t.Error("expected error for empty passphrase")
	}
}

func TestResolvePassword(t *testing.T) {
	t.Run("plaintext wins", func(t *testing.T) {
		got, err := ResolvePassword(PasswordConfig{Plaintext: "direct", EncryptedPath: "/nonexistent"})
		if err != nil || got != "direct" {
			t.Errorf("got %q, %v; want direct", got, err)
		}
	})

	t.Run("encrypted file", func(t *testing.T) {
		blob, err := EncryptSecret("from-vault", "phrase")
		if err != nil {
			t.Fatalf("EncryptSecret: %v", err)
		}
		path := filepath.Join(t.TempDir(), "pw.vault")
		if err := os.WriteFile(path, blob, 0o600); err != nil {
			t.Fatalf("write vault: %v", err)
		}

		got, err := ResolvePassword(PasswordConfig{EncryptedPath: path, Passphrase: "phrase"})
		if err != nil {
			t.Fatalf("ResolvePassword: %v", err)
		}
		if got != "from-vault" {
			t.Errorf("got %q, want from-vault", got)
		}
	})

	t.Run("no source", func(t *testing.T) {
		if _, err := ResolvePassword(PasswordConfig{}); err == nil {
			t.Error("expected error for empty config")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ResolvePassword(PasswordConfig{EncryptedPath: filepath.Join(t.TempDir(), "absent"), Passphrase: "p"})
		if err == nil {
			t.Error("expected error for missing vault file")
		}
	})
}
