package funpay

import (
	"encoding/json"
	"strconv"
)

// FieldMap is the flattened name→value representation of a form. It is
// both what extractFormValues produces and what the offerSave endpoint
// consumes, so hidden server-required fields replay verbatim.
type FieldMap map[string]string

func (f FieldMap) Clone() FieldMap {
	out := make(FieldMap, len(f))
	for name, value := range f {
		out[name] = value
	}
	return out
}

// buildLotStatePayload overlays an enable/disable intent on a freshly
// extracted baseline. The location marker is always forced so the
// endpoint treats the submission as an in-trade edit.
func buildLotStatePayload(baseline FieldMap, active bool) FieldMap {
	fields := baseline.Clone()
	if active {
		fields["active"] = "on"
	} else {
		delete(fields, "active")
	}
	fields["location"] = "trade"
	return fields
}

func buildLotPricePayload(baseline FieldMap, price float64) FieldMap {
	fields := baseline.Clone()
	fields["price"] = strconv.FormatFloat(price, 'f', -1, 64)
	fields["location"] = "trade"
	return fields
}

// validateCreateFields rejects a creation payload whose declared
// node_id disagrees with the id the caller independently specified,
// before anything goes over the wire.
func validateCreateFields(lotId int, fields FieldMap) error {
	if fields["node_id"] != strconv.Itoa(lotId) {
		return ValidationError{
			Reason: "node_id in fields does not match the specified lot id",
		}
	}
	return nil
}

type messageRequest struct {
	Action string      `json:"action"`
	Data   messageData `json:"data"`
}

type messageData struct {
	Node        int    `json:"node"`
	LastMessage int    `json:"last_message"`
	Context     string `json:"context"`
}

// buildMessageEnvelope composes the runner chat-message body: an inner
// request object serialized to a string, wrapped in the outer envelope
// carrying the csrf token.
func buildMessageEnvelope(chatId int, message, csrfToken string) (string, error) {
	request, err := json.Marshal(messageRequest{
		Action: "chat_message",
		Data: messageData{
			Node:        chatId,
			LastMessage: -1,
			Context:     message,
		},
	})
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(struct {
		Objects   string `json:"objects"`
		Request   string `json:"request"`
		CsrfToken string `json:"csrf_token"`
	}{
		Objects:   "",
		Request:   string(request),
		CsrfToken: csrfToken,
	})
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

func buildRaiseEnvelope(gameId, nodeId int) (string, error) {
	payload, err := json.Marshal(struct {
		GameId int `json:"game_id"`
		NodeId int `json:"node_id"`
	}{
		GameId: gameId,
		NodeId: nodeId,
	})
	if err != nil {
		return "", err
	}
	return string(payload), nil
}
