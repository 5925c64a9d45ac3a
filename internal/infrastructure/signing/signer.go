// Package signing holds the ISigningService adapters.
package signing

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"medrequest_xpto/internal/usecase/interfaces"
)

var (
	ErrSigningNotConfigured = errors.New("document signing not configured")
	ErrCertificateRequired  = errors.New("certificate reference is required")
)

// UnavailableSigner rejects every signature. Doctors then sign externally and send
// the signed document URL.
type UnavailableSigner struct{}

var _ interfaces.ISigningService = UnavailableSigner{}

func (UnavailableSigner) Sign(context.Context, []byte, string, string) (interfaces.SignResult, error) {
	return interfaces.SignResult{}, ErrSigningNotConfigured
}

// HMACSigner appends a detached HMAC-SHA256 signature block keyed by the server secret,
// the certificate reference and its password. It is meant for development and staging.
type HMACSigner struct {
	secret []byte
}

var _ interfaces.ISigningService = (*HMACSigner)(nil)

func NewHMACSigner(secret string) *HMACSigner {
	return &HMACSigner{secret: []byte(secret)}
}

// New returns an HMACSigner when secret is set and UnavailableSigner otherwise.
func New(secret string) interfaces.ISigningService {
	if strings.TrimSpace(secret) == "" {
		return UnavailableSigner{}
	}
	return NewHMACSigner(secret)
}

func (s *HMACSigner) Sign(ctx context.Context, document []byte, certificateRef, password string) (interfaces.SignResult, error) {
	if err := ctx.Err(); err != nil {
		return interfaces.SignResult{}, err
	}
	certificateRef = strings.TrimSpace(certificateRef)
	if certificateRef == "" {
		return interfaces.SignResult{}, ErrCertificateRequired
	}

	mac := s.mac(document, certificateRef, password)
	id := "sig-" + hex.EncodeToString(mac[:8])
	block := fmt.Sprintf("\n-----BEGIN SIGNATURE-----\nid: %s\ncertificate: %s\nvalue: %s\n-----END SIGNATURE-----\n",
		id, certificateRef, base64.StdEncoding.EncodeToString(mac))

	signed := make([]byte, 0, len(document)+len(block))
	signed = append(signed, document...)
	signed = append(signed, block...)
	return interfaces.SignResult{SignatureID: id, SignedDocument: signed}, nil
}

// Verify reports whether signature was produced by Sign for the same inputs.
func (s *HMACSigner) Verify(document []byte, certificateRef, password string, signature []byte) bool {
	return hmac.Equal(s.mac(document, strings.TrimSpace(certificateRef), password), signature)
}

func (s *HMACSigner) mac(document []byte, certificateRef, password string) []byte {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(certificateRef))
	h.Write([]byte{0})
	h.Write([]byte(password))
	h.Write([]byte{0})
	h.Write(document)
	return h.Sum(nil)
}
