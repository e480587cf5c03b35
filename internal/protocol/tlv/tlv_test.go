package tlv

import (
	"bytes"
	"errors"
	"testing"
)

func TestParse_SingleRecord(t *testing.T) {
	in := []byte{0x00, 0x01, 0x00, 0x03, 0x41, 0x42, 0x43}
	got := Parse(in)
	if len(got) != 1 {
		t.Fatalf("want 1 record, got %d", len(got))
	}
	if got[0].Type != TypeDisconnected || string(got[0].Data) != "ABC" || got[0].Len() != 3 {
		t.Fatalf("unexpected record %+v", got[0])
	}

	out, err := Serialize(got)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("reserialised %x, want %x", out, in)
	}
}

func TestParse_CopiesPayload(t *testing.T) {
	in := []byte{0x00, 0x08, 0x00, 0x02, 0xAA, 0xBB}
	got := Parse(in)
	in[4] = 0
	if got[0].Data[0] != 0xAA {
		t.Fatal("parsed record aliases the input buffer")
	}
}

func TestRoundTrip_Chain(t *testing.T) {
	recs := []TLV{
		{Type: TypeSMP1Q, Data: []byte("question\x00payload")},
		{Type: TypePadding, Data: []byte{}},
		{Type: TypeSymKey, Data: bytes.Repeat([]byte{7}, 300)},
	}
	wire, err := Serialize(recs)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if len(wire) != SerialLen(recs) {
		t.Fatalf("len %d, SerialLen %d", len(wire), SerialLen(recs))
	}
	again, err := Serialize(Parse(wire))
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if !bytes.Equal(again, wire) {
		t.Fatal("serialize(parse(b)) != b")
	}
}

func TestParse_Truncated(t *testing.T) {
	full, err := Serialize([]TLV{
		{Type: TypeSMP1, Data: []byte("one")},
		{Type: TypeSMP2, Data: []byte("two-two")},
	})
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	cases := []struct {
		name string
		cut  int
		want int
	}{
		{"mid payload", len(full) - 2, 1},
		{"mid header", 7 + 2, 1},
		{"header only", 7 + HeaderLen, 1},
		{"under one header", 3, 0},
		{"empty", 0, 0},
		{"whole", len(full), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(full[:tc.cut])
			if len(got) != tc.want {
				t.Fatalf("want %d records, got %d", tc.want, len(got))
			}
			if tc.want > 0 && string(got[0].Data) != "one" {
				t.Fatalf("first record %q", got[0].Data)
			}
		})
	}
}

func TestSerialize_TooLong(t *testing.T) {
	_, err := Serialize([]TLV{{Type: TypePadding, Data: make([]byte, MaxDataLen+1)}})
	if !errors.Is(err, ErrTooLong) {
		t.Fatalf("want ErrTooLong, got %v", err)
	}
	if _, err := New(TypePadding, make([]byte, MaxDataLen+1)); !errors.Is(err, ErrTooLong) {
		t.Fatalf("New: want ErrTooLong, got %v", err)
	}
}

func TestFind(t *testing.T) {
	recs := Parse([]byte{
		0x00, 0x02, 0x00, 0x01, 'a',
		0x00, 0x06, 0x00, 0x00,
		0x00, 0x02, 0x00, 0x01, 'b',
	})
	if r := Find(recs, TypeSMP1); r == nil || string(r.Data) != "a" {
		t.Fatalf("Find(SMP1) = %+v", r)
	}
	if r := Find(recs, TypeSMPAbort); r == nil || len(r.Data) != 0 {
		t.Fatalf("Find(SMPAbort) = %+v", r)
	}
	if Find(recs, TypeSymKey) != nil {
		t.Fatal("Find(SymKey) should be nil")
	}
	if Find(nil, TypePadding) != nil {
		t.Fatal("Find on nil chain should be nil")
	}
}
