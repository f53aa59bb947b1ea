package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func TestSealOpen(t *testing.T) {
	secret := []byte("correct horse battery staple")
	plaintext := []byte(`{"messages":{}}`)

	sealed, err := Seal(plaintext, secret, "mintlog/email")
	if err != nil {
		t.Fatalf("seal failed: %v", err)
	}
	if bytes.Contains(sealed, plaintext) {
		t.Fatalf("sealed value contains plaintext")
	}

	tests := []struct {
		name      string
		sealed    []byte
		secret    []byte
		namespace string
		expectErr bool
	}{
		{
			name:      "round trip",
			sealed:    sealed,
			secret:    secret,
			namespace: "mintlog/email",
		},
		{
			name:      "wrong secret",
			sealed:    sealed,
			secret:    []byte("other"),
			namespace: "mintlog/email",
			expectErr: true,
		},
		{
			name:      "wrong namespace",
			sealed:    sealed,
			secret:    secret,
			namespace: "mintlog/beats",
			expectErr: true,
		},
		{
			name:      "tampered ciphertext",
			sealed:    append(append([]byte(nil), sealed[:len(sealed)-1]...), sealed[len(sealed)-1]^0xff),
			secret:    secret,
			namespace: "mintlog/email",
			expectErr: true,
		},
		{
			name:      "truncated",
			sealed:    sealed[:10],
			secret:    secret,
			namespace: "mintlog/email",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opened, err := Open(tt.sealed, append([]byte(nil), tt.secret...), tt.namespace)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("expected error, got plaintext %q", opened)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(opened, plaintext) {
				t.Fatalf("got %q want %q", opened, plaintext)
			}
		})
	}
}

func TestSealRandomized(t *testing.T) {
	secret := []byte("s")
	first, err := Seal([]byte("same"), secret, "n")
	if err != nil {
		t.Fatalf("seal failed: %v", err)
	}
	second, err := Seal([]byte("same"), secret, "n")
	if err != nil {
		t.Fatalf("seal failed: %v", err)
	}
	if bytes.Equal(first, second) {
		t.Fatal("two seals of the same plaintext must differ")
	}
}

func TestSealEmptySecret(t *testing.T) {
	_, err := Seal([]byte("x"), nil, "n")
	if err == nil {
		t.Fatal("expected error for empty secret")
	}
	_, err = Open([]byte("short"), []byte("s"), "n")
	if !errors.Is(err, ErrSealedFormat) {
		t.Fatalf("expected ErrSealedFormat, got %v", err)
	}
}

func TestMemzero(t *testing.T) {
	buf := []byte{1, 2, 3}
	Memzero(buf)
	if !bytes.Equal(buf, []byte{0, 0, 0}) {
		t.Fatalf("not zeroed: %v", buf)
	}
	Memzero(nil)
}
