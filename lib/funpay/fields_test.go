package funpay

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildLotStatePayload(t *testing.T) {
	baseline := FieldMap{"node_id": "5", "active": "on", "price": "10"}

	disabled := buildLotStatePayload(baseline, false)
	require.NotContains(t, disabled, "active")
	require.Equal(t, "trade", disabled["location"])
	require.Equal(t, "5", disabled["node_id"])
	require.Equal(t, "10", disabled["price"])

	enabled := buildLotStatePayload(FieldMap{"node_id": "5", "price": "10"}, true)
	require.Equal(t, "on", enabled["active"])
	require.Equal(t, "trade", enabled["location"])

	// the baseline itself never mutates
	require.Equal(t, "on", baseline["active"])
	require.NotContains(t, baseline, "location")
}

func TestBuildLotPricePayload(t *testing.T) {
	baseline := FieldMap{"node_id": "5", "active": "on", "price": "10"}

	changed := buildLotPricePayload(baseline, 12.5)
	require.Equal(t, "12.5", changed["price"])
	require.Equal(t, "on", changed["active"])
	require.Equal(t, "trade", changed["location"])
	require.Equal(t, "10", baseline["price"])
}

func TestValidateCreateFields(t *testing.T) {
	err := validateCreateFields(8, FieldMap{"node_id": "7"})
	var validationErr ValidationError
	require.ErrorAs(t, err, &validationErr)

	require.NoError(t, validateCreateFields(7, FieldMap{"node_id": "7"}))
}

func TestBuildMessageEnvelope(t *testing.T) {
	body, err := buildMessageEnvelope(4321, "hello there", "csrf-value")
	require.NoError(t, err)

	var outer struct {
		Objects   string `json:"objects"`
		Request   string `json:"request"`
		CsrfToken string `json:"csrf_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &outer))
	require.Equal(t, "", outer.Objects)
	require.Equal(t, "csrf-value", outer.CsrfToken)

	// the inner request travels as a string, not as a nested object
	var inner struct {
		Action string `json:"action"`
		Data   struct {
			Node        int    `json:"node"`
			LastMessage int    `json:"last_message"`
			Context     string `json:"context"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(outer.Request), &inner))
	require.Equal(t, "chat_message", inner.Action)
	require.Equal(t, 4321, inner.Data.Node)
	require.Equal(t, -1, inner.Data.LastMessage)
	require.Equal(t, "hello there", inner.Data.Context)
}

func TestBuildRaiseEnvelope(t *testing.T) {
	body, err := buildRaiseEnvelope(41, 210)
	require.NoError(t, err)
	require.JSONEq(t, `{"game_id":41,"node_id":210}`, body)
}
