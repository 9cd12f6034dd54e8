package store

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha1" //nolint:gosec // Chromium derives cookie keys with PBKDF2-SHA1.
	"errors"
	"os"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/zalando/go-keyring"
	"golang.org/x/crypto/pbkdf2"
)

const (
	aesCBCSalt   = "saltysalt"
	aesCBCIV     = "                " // 16 spaces
	aesCBCKeyLen = 16

	pbkdf2IterationsLinux  = 1
	pbkdf2IterationsDarwin = 1003
)

// decryptFunc decrypts one encrypted_value column. ok is false when no
// candidate key applies.
type decryptFunc func(encrypted []byte, metaVersion int64) (string, bool)

// newSafeStorageDecryptor builds a decryptor for a Chromium-family browser.
// v10 values use the hardcoded "peanuts" password, v11 values the per-user
// safe-storage password held in the OS keychain.
func newSafeStorageDecryptor(b Browser) decryptFunc {
	iterations := pbkdf2IterationsLinux
	if runtime.GOOS == "darwin" {
		iterations = pbkdf2IterationsDarwin
	}

	v10Key := deriveAESCBCKey("peanuts", iterations)
	emptyKey := deriveAESCBCKey("", iterations)

	var v11Key []byte
	if pw := safeStoragePassword(b); pw != "" {
		v11Key = deriveAESCBCKey(pw, iterations)
	}

	return func(encrypted []byte, metaVersion int64) (string, bool) {
		if len(encrypted) < 3 {
			return "", false
		}
		var keys [][]byte
		switch string(encrypted[:3]) {
		case "v10":
			keys = [][]byte{v10Key, emptyKey}
		case "v11":
			if v11Key == nil {
				return "", false
			}
			keys = [][]byte{v11Key, emptyKey}
		default:
			return "", false
		}
		for _, key := range keys {
			plain, err := decryptAESCBC(encrypted, key, metaVersion)
			if err != nil {
				continue
			}
			if value, ok := decodeCookieValue(plain); ok {
				return value, true
			}
		}
		return "", false
	}
}

// safeStoragePassword fetches the browser's safe-storage password from the OS
// keychain. CDECK_SAFE_STORAGE_PASSWORD overrides it for deterministic
// tooling.
func safeStoragePassword(b Browser) string {
	if override := strings.TrimSpace(os.Getenv("CDECK_SAFE_STORAGE_PASSWORD")); override != "" {
		return override
	}
	service, account := safeStorageService(b)
	pw, err := keyring.Get(service, account)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(pw)
}

func safeStorageService(b Browser) (service, account string) {
	switch b {
	case BrowserChromium:
		return "Chromium Safe Storage", "Chromium"
	case BrowserEdge:
		return "Microsoft Edge Safe Storage", "Microsoft Edge"
	case BrowserBrave:
		return "Brave Safe Storage", "Brave"
	default:
		return "Chrome Safe Storage", "Chrome"
	}
}

func deriveAESCBCKey(password string, iterations int) []byte {
	return pbkdf2.Key([]byte(password), []byte(aesCBCSalt), iterations, aesCBCKeyLen, sha1.New)
}

func decryptAESCBC(encrypted, key []byte, metaVersion int64) ([]byte, error) {
	ciphertext := encrypted[3:] // strip v## prefix
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, errors.New("cipher input not full blocks")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, []byte(aesCBCIV)).CryptBlocks(out, ciphertext)

	out, err = stripPKCS7(out)
	if err != nil {
		return nil, err
	}
	// Meta version 24 prefixes the plaintext with a SHA-256 of the host key.
	if metaVersion >= 24 && len(out) >= 32 {
		out = out[32:]
	}
	return out, nil
}

func stripPKCS7(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return b, nil
	}
	n := int(b[len(b)-1])
	if n <= 0 || n > aes.BlockSize || n > len(b) {
		return nil, errors.New("invalid padding length")
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, errors.New("invalid padding bytes")
		}
	}
	return b[:len(b)-n], nil
}

func decodeCookieValue(b []byte) (string, bool) {
	i := 0
	for i < len(b) && b[i] < 0x20 {
		i++
	}
	b = bytes.Clone(b[i:])
	if !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}
