package domain_test

import (
	"encoding/json"
	"testing"

	"courier/internal/domain"
)

func TestHexBytes_MarshalNilAsNull(t *testing.T) {
	got, err := json.Marshal(domain.HexBytes(nil))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(got) != "null" {
		t.Fatalf("Marshal(nil) = %s, want null", got)
	}
}

func TestHexBytes_MarshalLowercaseHex(t *testing.T) {
	got, err := json.Marshal(domain.HexBytes{0xde, 0xad, 0xbe, 0xef})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(got) != `"deadbeef"` {
		t.Fatalf("Marshal = %s, want \"deadbeef\"", got)
	}
}

func TestHexBytes_UnmarshalNull(t *testing.T) {
	h := domain.HexBytes{1, 2, 3}
	if err := json.Unmarshal([]byte("null"), &h); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if h != nil {
		t.Fatalf("Unmarshal(null) = %v, want nil", h)
	}
}

func TestHexBytes_UnmarshalRejectsBadInput(t *testing.T) {
	for _, raw := range []string{`"zz"`, `"abc"`, `7`, `["ab"]`} {
		var h domain.HexBytes
		if err := json.Unmarshal([]byte(raw), &h); err == nil {
			t.Fatalf("Unmarshal(%s) accepted, want error", raw)
		}
	}
}

func TestHexBytes_RoundTrip(t *testing.T) {
	in := domain.HexBytes{0x00, 0x01, 0xff}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out domain.HexBytes
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.String() != in.String() {
		t.Fatalf("round trip = %s, want %s", out, in)
	}
}
