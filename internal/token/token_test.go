package token_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AbdulmosenAlmuzaini/mezan/internal/domain"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/token"
)

const testSecret = "token-test-secret-at-least-32-chars!"

func TestIssueVerify_RoundTrip(t *testing.T) {
	issuer := token.NewIssuer([]byte(testSecret), token.DefaultTTL)

	raw, err := issuer.Issue("alice@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	subject, err := issuer.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != "alice@x.com" {
		t.Errorf("subject = %q, want %q", subject, "alice@x.com")
	}
}

func TestVerify_ExpiredToken_ReturnsErrTokenExpired(t *testing.T) {
	issuer := token.NewIssuer([]byte(testSecret), -time.Minute)

	raw, err := issuer.Issue("alice@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := issuer.Verify(raw); !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("want ErrTokenExpired, got %v", err)
	}
}

func TestVerify_Malformed_ReturnsErrTokenInvalid(t *testing.T) {
	issuer := token.NewIssuer([]byte(testSecret), token.DefaultTTL)

	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := issuer.Verify(raw); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("Verify(%q): want ErrTokenInvalid, got %v", raw, err)
		}
	}
}

func TestVerify_WrongKey_ReturnsErrTokenInvalid(t *testing.T) {
	issuer := token.NewIssuer([]byte(testSecret), token.DefaultTTL)
	other := token.NewIssuer([]byte("a-completely-different-32-char-key!!"), token.DefaultTTL)

	raw, err := other.Issue("alice@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := issuer.Verify(raw); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("want ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_TamperedSubject_ReturnsErrTokenInvalid(t *testing.T) {
	issuer := token.NewIssuer([]byte(testSecret), token.DefaultTTL)

	raw, err := issuer.Issue("alice@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Flip a character in the payload segment; the signature no longer matches.
	parts := strings.SplitN(raw, ".", 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := issuer.Verify(tampered); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("want ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_UnexpectedSigningMethod_Rejected(t *testing.T) {
	issuer := token.NewIssuer([]byte(testSecret), token.DefaultTTL)

	// alg=none style token: unsigned, same claims shape.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "alice@x.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := issuer.Verify(raw); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("want ErrTokenInvalid, got %v", err)
	}
}

func TestIssue_EmbedsSevenDayExpiry(t *testing.T) {
	issuer := token.NewIssuer([]byte(testSecret), token.DefaultTTL)

	raw, err := issuer.Issue("alice@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var claims jwt.RegisteredClaims
	if _, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != 7*24*time.Hour {
		t.Errorf("embedded ttl = %v, want 168h", ttl)
	}
}
