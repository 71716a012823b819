// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

// ObjectID is a non-zero 32-bit object identifier. A zero value is only
// valid where the call site represents it as an optional object (see
// ReadOptionalObject/WriteOptionalObject); a required object field reading
// zero is ErrInvalidMethod.
type ObjectID uint32

// DisplayID is the reserved ID of the display singleton; always 1.
const DisplayID ObjectID = 1

// FirstClientID is the first ID a client may allocate for itself.
const FirstClientID = 2

func readID(c *Cursor) (uint32, error) {
	return ReadUint(c)
}

// ReadObject reads a required (non-nullable) object ID.
func ReadObject(c *Cursor) (ObjectID, error) {
	id, err := readID(c)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, ErrInvalidMethod
	}
	return ObjectID(id), nil
}

// WriteObject writes a required object ID.
func WriteObject(c *Cursor, id ObjectID) error {
	return WriteUint(c, uint32(id))
}

// ReadOptionalObject reads an object ID that may be null (wire value 0).
// A zero return with ok=false means "none".
func ReadOptionalObject(c *Cursor) (id ObjectID, ok bool, err error) {
	v, err := readID(c)
	if err != nil {
		return 0, false, err
	}
	if v == 0 {
		return 0, false, nil
	}
	return ObjectID(v), true, nil
}

// WriteOptionalObject writes an optional object ID; ok=false writes the
// null encoding (four zero bytes).
func WriteOptionalObject(c *Cursor, id ObjectID, ok bool) error {
	if !ok {
		return WriteUint(c, 0)
	}
	return WriteUint(c, uint32(id))
}

// NewID announces a freshly allocated object ID to the peer. A zero ID is
// always a protocol error (spec §3 invariants).
type NewID uint32

// ReadNewID reads a new_id field; an ID of zero is ErrInvalidMethod.
func ReadNewID(c *Cursor) (NewID, error) {
	v, err := readID(c)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, ErrInvalidMethod
	}
	return NewID(v), nil
}

// WriteNewID writes a new_id field.
func WriteNewID(c *Cursor, id NewID) error {
	return WriteUint(c, uint32(id))
}

// NewIDDyn is the schema-less form used when a request's bound interface is
// generic (the canonical case is wl_registry.bind): the wire form is
// name:uint | interface:string | version:uint | id:uint.
type NewIDDyn struct {
	Interface string
	Version   uint32
	ID        NewID
}

// Len returns the encoded length in bytes.
func (n NewIDDyn) Len() uint32 {
	return StringLen(n.Interface) + 4 + 4
}

// ReadNewIDDyn reads a schema-less new_id triple.
func ReadNewIDDyn(c *Cursor) (NewIDDyn, error) {
	iface, err := ReadString(c)
	if err != nil {
		return NewIDDyn{}, err
	}
	version, err := ReadUint(c)
	if err != nil {
		return NewIDDyn{}, err
	}
	id, err := ReadNewID(c)
	if err != nil {
		return NewIDDyn{}, err
	}
	return NewIDDyn{Interface: iface, Version: version, ID: id}, nil
}

// WriteNewIDDyn writes a schema-less new_id triple. The interface name is
// always written with an explicit trailing NUL, even though a Go string has
// none in memory — the extra byte lives in the zeroed padding region.
func WriteNewIDDyn(c *Cursor, n NewIDDyn) error {
	if err := WriteString(c, n.Interface); err != nil {
		return err
	}
	if err := WriteUint(c, n.Version); err != nil {
		return err
	}
	return WriteNewID(c, n.ID)
}
