package price

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"800$00", 800},
		{"0$00", 0},
		{"1250$00", 1250},
		{"Meio a Meio 876$00", 876},
		{"", 0},
		{"abc", 0},
		{"800", 0},
		{"$00", 0},
		{"800$0", 0},
	}
	for _, c := range cases {
		if got := Parse(c.in); got != c.want {
			t.Fatalf("Parse(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := Format(800); got != "800$00" {
		t.Fatalf("Format(800) = %q", got)
	}
	if got := Format(0); got != "0$00" {
		t.Fatalf("Format(0) = %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, 99, 100, 800, 951, 10000, 123456789} {
		if got := Parse(Format(n)); got != n {
			t.Fatalf("round trip %d = %d", n, got)
		}
	}
}
