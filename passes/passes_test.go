package passes

import (
	"strings"
	"testing"
	"time"
)

func TestQRPayloadRoundTrip(t *testing.T) {
	payload := GenerateQRPayload("evt123", "u456", time.Unix(1700000000, 0))

	if !strings.HasPrefix(payload, "evt123|u456|1700000000|") {
		t.Fatalf("unexpected payload shape: %s", payload)
	}
	if !VerifyQRPayload(payload) {
		t.Fatal("freshly generated payload failed verification")
	}
}

func TestQRPayloadTamperDetected(t *testing.T) {
	payload := GenerateQRPayload("evt123", "u456", time.Now())

	tampered := strings.Replace(payload, "u456", "u789", 1)
	if VerifyQRPayload(tampered) {
		t.Fatal("tampered payload passed verification")
	}

	if VerifyQRPayload("no-separator-here") {
		t.Fatal("garbage payload passed verification")
	}
}
