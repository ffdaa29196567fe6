package label

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	_ msgpack.CustomEncoder = Label{}
	_ msgpack.CustomDecoder = (*Label)(nil)
)

// EncodeMsgpack writes the label as a three element array: kind, number, key.
func (l Label) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(3); err != nil {
		return err
	}
	if err := enc.EncodeUint8(uint8(l.kind)); err != nil {
		return err
	}
	if err := enc.EncodeUint64(l.num); err != nil {
		return err
	}
	return enc.EncodeString(l.key)
}

// DecodeMsgpack reads a label written by EncodeMsgpack.
func (l *Label) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n != 3 {
		return fmt.Errorf("label: expected 3 fields, got %d", n)
	}
	kind, err := dec.DecodeUint8()
	if err != nil {
		return err
	}
	num, err := dec.DecodeUint64()
	if err != nil {
		return err
	}
	key, err := dec.DecodeString()
	if err != nil {
		return err
	}
	if Kind(kind) > KindKeyed {
		return fmt.Errorf("label: unknown kind %d", kind)
	}
	*l = Label{kind: Kind(kind), num: num, key: key}
	return nil
}
