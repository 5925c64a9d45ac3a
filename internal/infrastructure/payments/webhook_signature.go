package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"medrequest_xpto/internal/usecase/interfaces"
)

// VerifySignature validates a Mercado Pago x-signature header ("ts=...,v1=...").
//
// The signed manifest is "id:<data.id>;request-id:<x-request-id>;ts:<ts>;" where
// parts whose value is missing are left out.
func VerifySignature(secret string, sig interfaces.WebhookSignature) error {
	ts, v1 := parseSignatureHeader(sig.Header)
	if ts == "" || v1 == "" {
		return interfaces.ErrInvalidWebhookSignature
	}
	expected := SignManifest(secret, sig.DataID, sig.RequestID, ts)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(v1))) {
		return interfaces.ErrInvalidWebhookSignature
	}
	return nil
}

// SignManifest returns the hex HMAC-SHA256 Mercado Pago computes for a notification.
func SignManifest(secret, dataID, requestID, ts string) string {
	var b strings.Builder
	if dataID != "" {
		b.WriteString("id:" + strings.ToLower(dataID) + ";")
	}
	if requestID != "" {
		b.WriteString("request-id:" + requestID + ";")
	}
	b.WriteString("ts:" + ts + ";")

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(b.String()))
	return hex.EncodeToString(mac.Sum(nil))
}

func parseSignatureHeader(header string) (ts, v1 string) {
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(k) {
		case "ts":
			ts = strings.TrimSpace(v)
		case "v1":
			v1 = strings.TrimSpace(v)
		}
	}
	return ts, v1
}
