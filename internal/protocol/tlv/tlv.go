package tlv

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// HeaderLen is the size of a record header.
const HeaderLen = 4

// MaxDataLen is the largest payload a record can carry.
const MaxDataLen = math.MaxUint16

// ErrTooLong is returned for payloads that do not fit the 16-bit length field.
var ErrTooLong = errors.New("tlv: payload longer than 65535 bytes")

// Type identifies the meaning of a record.
type Type uint16

const (
	TypePadding      Type = 0
	TypeDisconnected Type = 1
	TypeSMP1         Type = 2
	TypeSMP2         Type = 3
	TypeSMP3         Type = 4
	TypeSMP4         Type = 5
	TypeSMPAbort     Type = 6
	TypeSMP1Q        Type = 7
	TypeSymKey       Type = 8
)

func (t Type) String() string {
	switch t {
	case TypePadding:
		return "PADDING"
	case TypeDisconnected:
		return "DISCONNECTED"
	case TypeSMP1:
		return "SMP1"
	case TypeSMP2:
		return "SMP2"
	case TypeSMP3:
		return "SMP3"
	case TypeSMP4:
		return "SMP4"
	case TypeSMPAbort:
		return "SMP_ABORT"
	case TypeSMP1Q:
		return "SMP1Q"
	case TypeSymKey:
		return "SYMKEY"
	default:
		return fmt.Sprintf("TLV(%d)", uint16(t))
	}
}

// TLV is one record. Its length on the wire is len(Data).
type TLV struct {
	Type Type
	Data []byte
}

// New builds a record holding a copy of data.
func New(t Type, data []byte) (TLV, error) {
	if len(data) > MaxDataLen {
		return TLV{}, ErrTooLong
	}
	return TLV{Type: t, Data: append([]byte(nil), data...)}, nil
}

// Len returns the payload length as carried in the header.
func (r TLV) Len() uint16 { return uint16(len(r.Data)) }

// Parse decodes the records in b. Every returned record owns a copy of its
// payload, so b may be reused afterwards.
func Parse(b []byte) []TLV {
	var out []TLV
	for len(b) >= HeaderLen {
		t := Type(binary.BigEndian.Uint16(b[0:2]))
		n := int(binary.BigEndian.Uint16(b[2:4]))
		b = b[HeaderLen:]
		if len(b) < n {
			break
		}
		out = append(out, TLV{Type: t, Data: append([]byte{}, b[:n]...)})
		b = b[n:]
	}
	return out
}

// SerialLen returns the number of bytes Serialize will produce.
func SerialLen(tlvs []TLV) int {
	n := 0
	for _, r := range tlvs {
		n += HeaderLen + len(r.Data)
	}
	return n
}

// Serialize encodes tlvs in order.
func Serialize(tlvs []TLV) ([]byte, error) {
	return Append(make([]byte, 0, SerialLen(tlvs)), tlvs)
}

// Append encodes tlvs onto dst and returns the extended buffer.
func Append(dst []byte, tlvs []TLV) ([]byte, error) {
	for _, r := range tlvs {
		if len(r.Data) > MaxDataLen {
			return nil, fmt.Errorf("%w: type %s has %d bytes", ErrTooLong, r.Type, len(r.Data))
		}
		dst = binary.BigEndian.AppendUint16(dst, uint16(r.Type))
		dst = binary.BigEndian.AppendUint16(dst, uint16(len(r.Data)))
		dst = append(dst, r.Data...)
	}
	return dst, nil
}

// Find returns the first record of type t, or nil.
func Find(tlvs []TLV, t Type) *TLV {
	for i := range tlvs {
		if tlvs[i].Type == t {
			return &tlvs[i]
		}
	}
	return nil
}
