package cat

import "testing"

func TestAppendLineNumber(t *testing.T) {
	cases := map[int]string{
		1:       "     1  ",
		42:      "    42  ",
		999999:  "999999  ",
		1234567: "1234567  ",
	}
	for n, want := range cases {
		if got := string(appendLineNumber(nil, n)); got != want {
			t.Fatalf("appendLineNumber(%d) = %q want %q", n, got, want)
		}
	}
}

func TestIsPrintable(t *testing.T) {
	for b := 0; b < 256; b++ {
		want := b >= ' ' && b <= '~'
		if got := isPrintable(byte(b)); got != want {
			t.Fatalf("isPrintable(%#x) = %v", b, got)
		}
	}
}
