package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/papper-tech/auth-service/internal/common"
)

func testKeyPairPEM(t *testing.T) (privatePEM, publicPEM []byte) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey error: %v", err)
	}

	privatePEM = pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	pub, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("MarshalPKIXPublicKey error: %v", err)
	}
	publicPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pub})

	return privatePEM, publicPEM
}

func newTestCodec(t *testing.T) *Codec {
	t.Helper()

	privatePEM, publicPEM := testKeyPairPEM(t)
	c, err := NewCodec(privatePEM, publicPEM, "RS256")
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}
	return c
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t)

	in := Claims{UserID: "user-123", Login: "alice", HasFaceID: true}
	tok, err := c.Issue(in, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	got, err := c.VerifyAndDecode(tok)
	if err != nil {
		t.Fatalf("VerifyAndDecode error: %v", err)
	}
	if got.UserID != "user-123" || got.Login != "alice" || !got.HasFaceID {
		t.Fatalf("claims mismatch: %+v", got)
	}
	if got.ExpiresAt == nil || !got.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected future exp, got %v", got.ExpiresAt)
	}
}

func TestVerifyAndDecode_Expired(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t)

	tok, err := c.Issue(Claims{UserID: "u1"}, -1*time.Second)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = c.VerifyAndDecode(tok)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("want common.ErrTokenExpired, got %v", err)
	}
}

func TestVerifyAndDecode_Tampered(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t)

	tok, err := c.Issue(Claims{UserID: "u2"}, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(tok, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	parts[2] = string(sig)

	_, err = c.VerifyAndDecode(strings.Join(parts, "."))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want common.ErrInvalidToken, got %v", err)
	}
}

func TestVerifyAndDecode_WrongKey(t *testing.T) {
	t.Parallel()

	signer := newTestCodec(t)
	verifier := newTestCodec(t)

	tok, err := signer.Issue(Claims{UserID: "u3"}, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = verifier.VerifyAndDecode(tok)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want common.ErrInvalidToken, got %v", err)
	}
}

func TestVerifyAndDecode_Malformed(t *testing.T) {
	t.Parallel()

	c := newTestCodec(t)

	_, err := c.VerifyAndDecode("not.a.jwt")
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want common.ErrInvalidToken, got %v", err)
	}
}

func TestIssue_WithoutPrivateKey(t *testing.T) {
	t.Parallel()

	_, publicPEM := testKeyPairPEM(t)
	c, err := NewCodec(nil, publicPEM, "RS256")
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}

	if _, err := c.Issue(Claims{UserID: "u4"}, time.Hour); err == nil {
		t.Fatalf("expected error for verify-only codec, got nil")
	}
}

func TestNewCodec_RejectsNonRSAAlgorithm(t *testing.T) {
	t.Parallel()

	privatePEM, publicPEM := testKeyPairPEM(t)
	if _, err := NewCodec(privatePEM, publicPEM, "HS256"); err == nil {
		t.Fatalf("expected error for HS256, got nil")
	}
}
