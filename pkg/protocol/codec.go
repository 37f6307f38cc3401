package protocol

import (
	"encoding/json"
	"errors"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// Codec frames envelopes for one wire format. Text WebSocket frames carry
// JSON, binary frames carry CBOR; both use the same field names.
type Codec interface {
	Name() string
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
	DecodeEnvelope(b []byte) (string, []byte, error)
}

var ErrEmptyEnvelope = errors.New("empty envelope")

type outgoingEnvelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Encode wraps an event in an envelope.
func Encode(codec Codec, event Event) ([]byte, error) {
	var data interface{} = event
	if p, ok := event.(Payloader); ok {
		data = p.Payload()
	}
	return codec.Marshal(outgoingEnvelope{
		Event: event.EventName(),
		Data:  data,
	})
}

type jsonCodec struct{}

var JSON Codec = jsonCodec{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v interface{}) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }

func (jsonCodec) DecodeEnvelope(b []byte) (string, []byte, error) {
	if len(b) == 0 {
		return "", nil, ErrEmptyEnvelope
	}
	var e struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &e); err != nil {
		return "", nil, err
	}
	if string(e.Data) == "null" {
		e.Data = nil
	}
	return e.Event, e.Data, nil
}

type cborCodec struct {
	dec cbor.DecMode
}

// CBOR decodes maps as map[string]interface{} so that relayed payloads can be
// re-encoded as JSON for peers on the other codec.
var CBOR Codec = newCBORCodec()

func newCBORCodec() cborCodec {
	dec, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]interface{}(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return cborCodec{dec: dec}
}

func (cborCodec) Name() string { return "cbor" }

func (cborCodec) Marshal(v interface{}) ([]byte, error) { return cbor.Marshal(v) }

func (c cborCodec) Unmarshal(data []byte, v interface{}) error { return c.dec.Unmarshal(data, v) }

func (c cborCodec) DecodeEnvelope(b []byte) (string, []byte, error) {
	if len(b) == 0 {
		return "", nil, ErrEmptyEnvelope
	}
	var e struct {
		Event string          `json:"event"`
		Data  cbor.RawMessage `json:"data"`
	}
	if err := c.dec.Unmarshal(b, &e); err != nil {
		return "", nil, err
	}
	// 0xf6 is CBOR null
	if len(e.Data) == 1 && e.Data[0] == 0xf6 {
		e.Data = nil
	}
	return e.Event, e.Data, nil
}
