package store

import (
	"crypto/aes"
	"crypto/cipher"
	"testing"
)

func encryptV10(t *testing.T, plaintext string, key []byte) []byte {
	t.Helper()

	padLen := aes.BlockSize - len(plaintext)%aes.BlockSize
	padded := []byte(plaintext)
	for i := 0; i < padLen; i++ {
		padded = append(padded, byte(padLen))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, []byte(aesCBCIV)).CryptBlocks(out, padded)
	return append([]byte("v10"), out...)
}

func TestDecryptAESCBC_RoundTrip(t *testing.T) {
	key := deriveAESCBCKey("peanuts", pbkdf2IterationsLinux)
	encrypted := encryptV10(t, "session-value", key)

	plain, err := decryptAESCBC(encrypted, key, 0)
	if err != nil {
		t.Fatalf("decryptAESCBC: %v", err)
	}
	if string(plain) != "session-value" {
		t.Fatalf("plain = %q, want session-value", plain)
	}
}

func TestDecryptAESCBC_WrongKeyFailsPadding(t *testing.T) {
	key := deriveAESCBCKey("peanuts", pbkdf2IterationsLinux)
	other := deriveAESCBCKey("walnuts", pbkdf2IterationsLinux)
	encrypted := encryptV10(t, "session-value", key)

	if plain, err := decryptAESCBC(encrypted, other, 0); err == nil {
		// CBC padding can coincidentally validate; the decode gate catches the rest.
		if s, ok := decodeCookieValue(plain); ok && s == "session-value" {
			t.Fatalf("wrong key produced correct plaintext %q", s)
		}
	}
}

func TestDecryptor_V10(t *testing.T) {
	t.Setenv("CDECK_SAFE_STORAGE_PASSWORD", "irrelevant")

	key := deriveAESCBCKey("peanuts", pbkdf2IterationsLinux)
	encrypted := encryptV10(t, "abc123", key)

	decrypt := newSafeStorageDecryptor(BrowserChrome)
	value, ok := decrypt(encrypted, 0)
	if !ok || value != "abc123" {
		t.Fatalf("decrypt = %q, %v; want abc123, true", value, ok)
	}
}

func TestDecryptor_V11UsesOverridePassword(t *testing.T) {
	t.Setenv("CDECK_SAFE_STORAGE_PASSWORD", "hunter2")

	key := deriveAESCBCKey("hunter2", pbkdf2IterationsLinux)
	encrypted := encryptV10(t, "v11-value", key)
	encrypted[2] = '1' // rewrite prefix to v11

	decrypt := newSafeStorageDecryptor(BrowserChrome)
	value, ok := decrypt(encrypted, 0)
	if !ok || value != "v11-value" {
		t.Fatalf("decrypt = %q, %v; want v11-value, true", value, ok)
	}
}

func TestDecryptor_UnknownPrefixRejected(t *testing.T) {
	t.Setenv("CDECK_SAFE_STORAGE_PASSWORD", "irrelevant")

	decrypt := newSafeStorageDecryptor(BrowserChrome)
	if _, ok := decrypt([]byte("plaintext"), 0); ok {
		t.Fatal("unprefixed value decrypted")
	}
	if _, ok := decrypt([]byte("v9"), 0); ok {
		t.Fatal("short value decrypted")
	}
}

func TestDecryptAESCBC_MetaV24StripsHashPrefix(t *testing.T) {
	key := deriveAESCBCKey("peanuts", pbkdf2IterationsLinux)
	prefixed := string(make([]byte, 32)) + "real-value"
	encrypted := encryptV10(t, prefixed, key)

	plain, err := decryptAESCBC(encrypted, key, 24)
	if err != nil {
		t.Fatalf("decryptAESCBC: %v", err)
	}
	if string(plain) != "real-value" {
		t.Fatalf("plain = %q, want real-value", plain)
	}
}

func TestStripPKCS7_Invalid(t *testing.T) {
	if _, err := stripPKCS7([]byte{1, 2, 3, 17}); err == nil {
		t.Fatal("padding length > block size accepted")
	}
	if _, err := stripPKCS7([]byte{2, 2, 3, 2}); err == nil {
		t.Fatal("mismatched padding bytes accepted")
	}
}

func TestDecodeCookieValue(t *testing.T) {
	if v, ok := decodeCookieValue([]byte{0x01, 0x02, 'o', 'k'}); !ok || v != "ok" {
		t.Fatalf("decodeCookieValue = %q, %v", v, ok)
	}
	if _, ok := decodeCookieValue([]byte{'a', 0xff, 0xfe}); ok {
		t.Fatal("invalid UTF-8 accepted")
	}
}

func TestChromiumTime(t *testing.T) {
	// 2026-01-01T00:00:00Z in microseconds since 1601.
	const micros = (windowsEpochDelta + 1767225600) * 1_000_000
	got, ok := chromiumTime(micros)
	if !ok {
		t.Fatal("chromiumTime rejected valid timestamp")
	}
	if got.Year() != 2026 || got.Month() != 1 || got.Day() != 1 {
		t.Fatalf("chromiumTime = %v, want 2026-01-01", got)
	}

	if _, ok := chromiumTime(0); ok {
		t.Fatal("zero timestamp accepted")
	}
}
