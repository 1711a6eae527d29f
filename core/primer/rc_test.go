// core/primer/rc_test.go
package primer

import (
	"bytes"
	"testing"
)

func TestRevCompSimple(t *testing.T) {
	got := RevComp([]byte("AGTC"))
	want := []byte("GACT")
	if !bytes.Equal(got, want) {
		t.Errorf("RevComp(AGTC) = %s, want %s", got, want)
	}
}

// Snapshot over the full ambiguity alphabet.
func TestRevCompAmbiguous(t *testing.T) {
	in := []byte("RYSWKMBDHVN")
	want := []byte("NBDHVKMWSRY")
	if got := RevComp(in); !bytes.Equal(got, want) {
		t.Errorf("RevComp(%s) = %s, want %s", in, got, want)
	}
}

func TestRevCompLowerAndUnknown(t *testing.T) {
	if got := RevCompString("acgX"); got != "NCGT" {
		t.Errorf("RevCompString(acgX) = %s, want NCGT", got)
	}
}

func TestRevCompEmpty(t *testing.T) {
	if RevComp(nil) != nil {
		t.Errorf("RevComp(nil) should return nil")
	}
}
