package bitio

import "testing"

func TestWriteReadBitsRoundTrip(t *testing.T) {
	s := NewDynamic()
	s.WriteBits(0b0100100, 7)
	s.WriteBits(0b110, 3)

	if s.NumBits() != 10 {
		t.Fatalf("NumBits() = %d, want 10", s.NumBits())
	}

	got := s.GetBytes()
	want := []byte{0b01001001, 0b10000000}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("GetBytes() = %08b %08b, want %08b %08b", got[0], got[1], want[0], want[1])
	}
}

func TestWriteBitSingle(t *testing.T) {
	s := NewDynamic()
	for _, b := range []bool{true, false, true, true} {
		s.WriteBit(b)
	}
	if s.ReadBits(0, 4) != 0b1011 {
		t.Fatalf("ReadBits = %b, want 1011", s.ReadBits(0, 4))
	}
}

func TestWriteBitNAndCountConsecutive(t *testing.T) {
	s := NewDynamic()
	s.WriteBitN(true, 5)
	s.WriteBit(false)
	s.WriteBitN(true, 3)

	if n := s.CountConsecutive(0, true); n != 5 {
		t.Fatalf("CountConsecutive(0,true) = %d, want 5", n)
	}
	if n := s.CountConsecutive(5, false); n != 1 {
		t.Fatalf("CountConsecutive(5,false) = %d, want 1", n)
	}
}

func TestSequentialReader(t *testing.T) {
	s := NewDynamic()
	s.WriteBits(0b101, 3)
	s.WriteBits(0b11110000, 8)

	r := NewSequentialReader(s)
	if !r.HasNext(1) {
		t.Fatal("expected HasNext(1)")
	}
	if got := r.ReadBits(3); got != 0b101 {
		t.Fatalf("ReadBits(3) = %b, want 101", got)
	}
	if got := r.PeekBits(4); got != 0b1111 {
		t.Fatalf("PeekBits(4) = %b, want 1111", got)
	}
	if got := r.ReadBits(8); got != 0b11110000 {
		t.Fatalf("ReadBits(8) = %b, want 11110000", got)
	}
	if r.HasNext(1) {
		t.Fatal("expected stream exhausted")
	}
}

func TestSetBitsFromBytesRoundTrip(t *testing.T) {
	s := NewDynamic()
	s.WriteBits(0b0100100, 7)
	s.WriteBits(0b110, 3)
	data := s.GetBytes()

	s2 := NewDynamic()
	s2.SetBitsFromBytes(data, 10)
	if s2.NumBits() != 10 {
		t.Fatalf("NumBits() = %d, want 10", s2.NumBits())
	}
	for i := 0; i < 10; i++ {
		if s.ReadBit(i) != s2.ReadBit(i) {
			t.Fatalf("bit %d mismatch after round trip", i)
		}
	}
}

func TestBoundedStreamPanicsOnOverflow(t *testing.T) {
	s := NewBounded(4)
	s.WriteBits(0b1, 4)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic writing past bounded capacity")
		}
	}()
	s.WriteBit(true)
}
