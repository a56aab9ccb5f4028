package security

import (
	"bytes"
	"testing"
	"time"
)

func TestGenerateSessionToken(t *testing.T) {
	token, hash, err := GenerateSessionToken(48)
	if err != nil {
		t.Fatalf("GenerateSessionToken error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if !bytes.Equal(hash, HashSessionToken(token)) {
		t.Fatal("returned hash must match the token's hash")
	}

	other, _, err := GenerateSessionToken(48)
	if err != nil {
		t.Fatalf("GenerateSessionToken error: %v", err)
	}
	if token == other {
		t.Fatal("tokens must be unique")
	}
}

func TestDownloadTokenRoundTrip(t *testing.T) {
	signed, err := GenerateDownloadToken("secret", "app-1", "resumes", "2026/09/01/x.pdf", time.Minute)
	if err != nil {
		t.Fatalf("GenerateDownloadToken error: %v", err)
	}

	claims, err := ParseDownloadToken(signed, "secret")
	if err != nil {
		t.Fatalf("ParseDownloadToken error: %v", err)
	}
	if claims.ApplicationID != "app-1" || claims.Bucket != "resumes" || claims.ObjectKey != "2026/09/01/x.pdf" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestDownloadTokenWrongSecret(t *testing.T) {
	signed, err := GenerateDownloadToken("secret", "app-1", "resumes", "k", time.Minute)
	if err != nil {
		t.Fatalf("GenerateDownloadToken error: %v", err)
	}
	if _, err := ParseDownloadToken(signed, "other"); err == nil {
		t.Fatal("wrong secret must fail")
	}
}

func TestDownloadTokenExpired(t *testing.T) {
	signed, err := GenerateDownloadToken("secret", "app-1", "resumes", "k", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateDownloadToken error: %v", err)
	}
	if _, err := ParseDownloadToken(signed, "secret"); err == nil {
		t.Fatal("expired token must fail")
	}
}
