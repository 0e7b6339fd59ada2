package gateway

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test"

func eventPayload(eventType, objectID, transactionID string) []byte {
	return []byte(fmt.Sprintf(
		`{"id":"evt_1","type":"%s","data":{"object":{"id":"%s","metadata":{"transaction_id":"%s"}}}}`,
		eventType, objectID, transactionID,
	))
}

func TestVerifyAndParse_RoundTrip(t *testing.T) {
	now := time.Now()
	payload := eventPayload(EventChargeSucceeded, "pi_123", "42")
	sig := SignPayload(testSecret, now, payload)

	event, err := verifyAndParse(testSecret, payload, sig, now)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, EventChargeSucceeded, event.Type)
	assert.Equal(t, "42", event.TransactionID)
	assert.Equal(t, "pi_123", event.Reference)
}

func TestVerifyAndParse_TamperedPayload(t *testing.T) {
	now := time.Now()
	payload := eventPayload(EventChargeSucceeded, "pi_123", "42")
	sig := SignPayload(testSecret, now, payload)

	tampered := eventPayload(EventChargeSucceeded, "pi_123", "43")
	_, err := verifyAndParse(testSecret, tampered, sig, now)
	require.Error(t, err)
	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "invalid_signature", gwErr.Code)
}

func TestVerifyAndParse_WrongSecret(t *testing.T) {
	now := time.Now()
	payload := eventPayload(EventChargeSucceeded, "pi_123", "42")
	sig := SignPayload("whsec_other", now, payload)

	_, err := verifyAndParse(testSecret, payload, sig, now)
	require.Error(t, err)
}

func TestVerifyAndParse_StaleTimestamp(t *testing.T) {
	signedAt := time.Now().Add(-signatureTolerance - time.Minute)
	payload := eventPayload(EventChargeSucceeded, "pi_123", "42")
	sig := SignPayload(testSecret, signedAt, payload)

	_, err := verifyAndParse(testSecret, payload, sig, time.Now())
	require.Error(t, err)
	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Contains(t, gwErr.Message, "tolerance")
}

func TestVerifyAndParse_MalformedHeader(t *testing.T) {
	payload := eventPayload(EventChargeSucceeded, "pi_123", "42")
	for _, sig := range []string{"", "garbage", "t=123", "v1=deadbeef", "t=notanumber,v1=deadbeef"} {
		_, err := verifyAndParse(testSecret, payload, sig, time.Now())
		require.Error(t, err, "signature %q", sig)
	}
}

func TestParseEvent_MissingMetadata(t *testing.T) {
	now := time.Now()
	payload := []byte(`{"id":"evt_2","type":"charge.succeeded","data":{"object":{"id":"pi_9"}}}`)
	sig := SignPayload(testSecret, now, payload)

	event, err := verifyAndParse(testSecret, payload, sig, now)
	require.NoError(t, err)
	assert.Empty(t, event.TransactionID)
	assert.Equal(t, "pi_9", event.Reference)
}

func TestStubGateway_VerifyWebhook(t *testing.T) {
	stub := NewStubGateway(testSecret)
	payload := eventPayload(EventPayoutPaid, "po_1", "7")
	sig := SignPayload(testSecret, time.Now(), payload)

	event, err := stub.VerifyWebhook(payload, sig)
	require.NoError(t, err)
	assert.Equal(t, EventPayoutPaid, event.Type)

	_, err = stub.VerifyWebhook(payload, "t=1,v1=bad")
	require.Error(t, err)
}
