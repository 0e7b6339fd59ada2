package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Webhook signatures use the processor's timestamped HMAC scheme:
// "t=<unix>,v1=<hex hmac-sha256 of "<unix>.<payload>">". The timestamp bounds
// replay of captured payloads.
const signatureTolerance = 5 * time.Minute

// SignPayload produces a signature header for payload at ts. Exported so the
// stub gateway and tests can produce valid inbound events.
func SignPayload(secret string, ts time.Time, payload []byte) string {
	unix := strconv.FormatInt(ts.Unix(), 10)
	return fmt.Sprintf("t=%s,v1=%s", unix, computeSignature(secret, unix, payload))
}

func computeSignature(secret, unixTS string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(unixTS))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func verifyAndParse(secret string, payload []byte, signature string, now time.Time) (*Event, error) {
	var unixTS, v1 string
	for _, part := range strings.Split(signature, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			unixTS = v
		case "v1":
			v1 = v
		}
	}
	if unixTS == "" || v1 == "" {
		return nil, &Error{Code: "invalid_signature", Message: "malformed signature header"}
	}
	ts, err := strconv.ParseInt(unixTS, 10, 64)
	if err != nil {
		return nil, &Error{Code: "invalid_signature", Message: "malformed signature timestamp"}
	}
	age := now.Sub(time.Unix(ts, 0))
	if age > signatureTolerance || age < -signatureTolerance {
		return nil, &Error{Code: "invalid_signature", Message: "signature timestamp outside tolerance"}
	}
	expected := computeSignature(secret, unixTS, payload)
	if !hmac.Equal([]byte(expected), []byte(v1)) {
		return nil, &Error{Code: "invalid_signature", Message: "signature mismatch"}
	}
	return parseEvent(payload)
}

type webhookEnvelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string            `json:"id"`
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

func parseEvent(payload []byte) (*Event, error) {
	var env webhookEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, &Error{Code: "invalid_payload", Message: "malformed event payload"}
	}
	return &Event{
		ID:            env.ID,
		Type:          env.Type,
		TransactionID: env.Data.Object.Metadata["transaction_id"],
		Reference:     env.Data.Object.ID,
	}, nil
}
