package signing

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"strings"
	"testing"
)

func TestHMACSigner_Sign(t *testing.T) {
	s := NewHMACSigner("secret")
	doc := []byte("prescription body")

	res, err := s.Sign(context.Background(), doc, "cert-1", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(res.SignatureID, "sig-") || len(res.SignatureID) != 20 {
		t.Fatalf("expected sig- prefixed id, got %q", res.SignatureID)
	}
	if !bytes.HasPrefix(res.SignedDocument, doc) || !bytes.Contains(res.SignedDocument, []byte("certificate: cert-1")) {
		t.Fatalf("expected signed document to embed original and certificate, got %q", res.SignedDocument)
	}

	again, _ := s.Sign(context.Background(), doc, "cert-1", "pw")
	if again.SignatureID != res.SignatureID {
		t.Fatalf("expected deterministic signature id, got %s and %s", res.SignatureID, again.SignatureID)
	}
	other, _ := s.Sign(context.Background(), doc, "cert-1", "other")
	if other.SignatureID == res.SignatureID {
		t.Fatalf("expected password to change the signature")
	}

	if !s.Verify(doc, "cert-1", "pw", s.mac(doc, "cert-1", "pw")) {
		t.Fatalf("expected signature to verify")
	}
	forged := hmac.New(sha256.New, []byte("wrong")).Sum(nil)
	if s.Verify(doc, "cert-1", "pw", forged) {
		t.Fatalf("expected forged signature to fail")
	}
}

func TestHMACSigner_Errors(t *testing.T) {
	if _, err := NewHMACSigner("k").Sign(context.Background(), nil, " ", ""); !errors.Is(err, ErrCertificateRequired) {
		t.Fatalf("expected ErrCertificateRequired, got %v", err)
	}
	if _, err := New("").Sign(context.Background(), nil, "c", ""); !errors.Is(err, ErrSigningNotConfigured) {
		t.Fatalf("expected ErrSigningNotConfigured, got %v", err)
	}
}
