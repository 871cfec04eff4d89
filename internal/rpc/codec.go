// Package rpc holds the connect plumbing shared by handlers and clients.
package rpc

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// Codec names connect negotiates for JSON bodies.
const (
	codecNameJSON        = "json"
	codecNameJSONCharset = "json; charset=utf-8"
)

// JSONCodec marshals plain Go message structs as JSON, standing in for the
// protobuf JSON codec connect registers by default.
type JSONCodec struct {
	name string
}

var _ connect.Codec = JSONCodec{}

// Name implements connect.Codec.
func (c JSONCodec) Name() string {
	if c.name == "" {
		return codecNameJSON
	}
	return c.name
}

// Marshal implements connect.Codec.
func (c JSONCodec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

// Unmarshal implements connect.Codec. An empty body leaves msg untouched.
func (c JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}

// HandlerOptions registers the JSON codec under both names browsers and
// connect clients send.
func HandlerOptions() []connect.HandlerOption {
	return []connect.HandlerOption{
		connect.WithCodec(JSONCodec{name: codecNameJSON}),
		connect.WithCodec(JSONCodec{name: codecNameJSONCharset}),
	}
}

// ClientOptions makes a connect client speak the JSON codec.
func ClientOptions() []connect.ClientOption {
	return []connect.ClientOption{
		connect.WithCodec(JSONCodec{name: codecNameJSON}),
	}
}
