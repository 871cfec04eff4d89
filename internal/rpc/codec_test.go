package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type message struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

func TestJSONCodec(t *testing.T) {
	codec := JSONCodec{}
	assert.Equal(t, "json", codec.Name())

	data, err := codec.Marshal(&message{Name: "Ana", Amount: "12.50"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ana","amount":"12.50"}`, string(data))

	var got message
	require.NoError(t, codec.Unmarshal(data, &got))
	assert.Equal(t, message{Name: "Ana", Amount: "12.50"}, got)

	require.NoError(t, codec.Unmarshal(nil, &got))
	assert.Error(t, codec.Unmarshal([]byte("{"), &got))
}

func TestHandlerOptionsRegisterCharsetVariant(t *testing.T) {
	assert.Len(t, HandlerOptions(), 2)
	assert.Equal(t, "json; charset=utf-8", JSONCodec{name: codecNameJSONCharset}.Name())
}
