package queue

import (
	"reflect"
	"testing"
)

func TestMessageRoundTrip(t *testing.T) {
	msg := Message{
		DecisionID:            "decision-123",
		RecommendationID:      "rec-456",
		RecommendedOptionText: "Lisbon",
		ConfidenceScore:       0.685,
		Explanation:           "Recommended based on a final score of 69%.",
		EnqueuedAt:            "2026-08-30T22:00:00Z",
	}

	payload, err := EncodeMessage(msg)
	if err != nil {
		t.Fatalf("encode message: %v", err)
	}

	got, err := DecodeMessage(payload)
	if err != nil {
		t.Fatalf("decode message: %v", err)
	}

	if !reflect.DeepEqual(got, msg) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, msg)
	}
}

func TestDecodeMessageRejectsInvalidJSON(t *testing.T) {
	if _, err := DecodeMessage([]byte("{not json")); err == nil {
		t.Fatal("expected error for invalid payload")
	}
}
