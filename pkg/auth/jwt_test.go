package auth

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

func TestIssueAndParse(t *testing.T) {
	tk := NewTokens("secret", time.Hour, "find-best-guide")
	tok, exp, err := tk.Issue("u1", "guide", "g@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("exp = %v, want future", exp)
	}
	c, err := tk.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.UserID() != "u1" || c.Role != "guide" || c.Email != "g@example.com" {
		t.Fatalf("claims = %+v", c)
	}
}

func TestParseExpired(t *testing.T) {
	tk := NewTokens("secret", -time.Minute, "find-best-guide")
	tok, _, err := tk.Issue("u1", "traveler", "t@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	_, err = tk.Parse(tok)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
}

func TestParseRejectsForeignSignature(t *testing.T) {
	other := NewTokens("other-secret", time.Hour, "find-best-guide")
	tok, _, _ := other.Issue("u1", "traveler", "t@example.com")

	tk := NewTokens("secret", time.Hour, "find-best-guide")
	if _, err := tk.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
	if _, err := tk.Parse("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage err = %v, want ErrInvalidToken", err)
	}
}

func TestParseRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{Role: "admin", RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "u1",
		Issuer:    "find-best-guide",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	tk := NewTokens("secret", time.Hour, "find-best-guide")
	if _, err := tk.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestParseRequiresSubject(t *testing.T) {
	tk := NewTokens("secret", time.Hour, "find-best-guide")
	tok, _, _ := tk.Issue("", "traveler", "t@example.com")
	if _, err := tk.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "correct horse") {
		t.Fatalf("CheckPassword(correct) = false")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatalf("CheckPassword(wrong) = true")
	}
}
