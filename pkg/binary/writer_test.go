package binary

import (
	"bytes"
	"errors"
	"testing"
)

func TestWriterIntegers(t *testing.T) {
	got, err := NewWriter().
		WriteU8(0xAB).
		WriteU16(0x0102).
		WriteU32(0x03040506).
		WriteU64(0x0708090A0B0C0D0E).
		Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	want := []byte{
		0xAB,
		0x01, 0x02,
		0x03, 0x04, 0x05, 0x06,
		0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Bytes() = %x, want %x", got, want)
	}
}

func TestWriterTlv(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{
			name: "short field",
			in:   []byte("abc"),
			want: []byte{0x00, 0x03, 'a', 'b', 'c'},
		},
		{
			name: "empty field",
			in:   nil,
			want: []byte{0x00, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewWriter().WriteTlv(tt.in).Bytes()
			if err != nil {
				t.Fatalf("Bytes() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("WriteTlv(%q) = %x, want %x", tt.in, got, tt.want)
			}
		})
	}
}

func TestWriterTlvOversize(t *testing.T) {
	_, err := NewWriter().WriteTlv(make([]byte, 0x10000)).Bytes()
	if !errors.Is(err, ErrOversizeField) {
		t.Errorf("Bytes() error = %v, want ErrOversizeField", err)
	}

	// The error sticks across later valid writes.
	_, err = NewWriter().
		WriteTlv(make([]byte, 0x10000)).
		WriteU32(1).
		Bytes()
	if !errors.Is(err, ErrOversizeField) {
		t.Errorf("sticky error lost, got %v", err)
	}
}

func TestWriterTlvLimited(t *testing.T) {
	in := []byte("0123456789abcdef0123456789abcdefEXTRA")
	got, err := NewWriter().WriteTlvLimited(in, 32).Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	if got[0] != 0x00 || got[1] != 32 {
		t.Errorf("length prefix = %x, want 0020", got[:2])
	}
	if !bytes.Equal(got[2:], in[:32]) {
		t.Errorf("truncated field = %q, want %q", got[2:], in[:32])
	}

	// Under the limit the field passes through untouched.
	got, err = NewWriter().WriteTlvLimited([]byte("ok"), 32).Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if !bytes.Equal(got, []byte{0x00, 0x02, 'o', 'k'}) {
		t.Errorf("short field = %x", got)
	}
}

func TestWriterPrepend(t *testing.T) {
	w := NewWriter().WriteBytes([]byte("payload"))
	w.Prepend([]byte{0x01, 0x02})

	got, err := w.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	want := append([]byte{0x01, 0x02}, []byte("payload")...)
	if !bytes.Equal(got, want) {
		t.Errorf("Prepend result = %x, want %x", got, want)
	}
	if w.Len() != len(want) {
		t.Errorf("Len() = %d, want %d", w.Len(), len(want))
	}
}
