// Package rpc defines the Connect procedures of the Split Ledger API: their
// names, request and response messages, handler and client constructors.
//
// Messages are plain Go structs carried by a JSON codec registered under the
// "json" name, so any Connect client speaking application/json can call the
// API.
package rpc

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// Codec marshals messages as JSON.
type Codec struct{}

var _ connect.Codec = Codec{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

// Unmarshal implements connect.Codec.
func (Codec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
}
