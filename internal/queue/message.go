package queue

import "encoding/json"

// Message is the notification event emitted after a recommendation is
// persisted. Delivery is best-effort and never affects scoring results.
type Message struct {
	DecisionID            string  `json:"decision_id"`
	RecommendationID      string  `json:"recommendation_id"`
	RecommendedOptionText string  `json:"recommended_option_text"`
	ConfidenceScore       float64 `json:"confidence_score"`
	Explanation           string  `json:"explanation"`
	EnqueuedAt            string  `json:"enqueued_at"`
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}
