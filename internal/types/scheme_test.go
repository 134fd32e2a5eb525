package types

import "testing"

func TestParseScheme(t *testing.T) {
	tests := []struct {
		in      string
		want    Scheme
		wantErr bool
	}{
		{"sr25519", SchemeSr25519, false},
		{"Ed25519", SchemeEd25519, false},
		{" ECDSA ", SchemeEcdsa, false},
		{"secp256k1", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseScheme(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseScheme(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseScheme(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseScheme(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestMultiSignatureIndex(t *testing.T) {
	if SchemeEd25519.MultiSignatureIndex() != 0 {
		t.Error("ed25519 should be variant 0")
	}
	if SchemeSr25519.MultiSignatureIndex() != 1 {
		t.Error("sr25519 should be variant 1")
	}
	if SchemeEcdsa.MultiSignatureIndex() != 2 {
		t.Error("ecdsa should be variant 2")
	}
}

func TestParseOutputType(t *testing.T) {
	if o, err := ParseOutputType("JSON"); err != nil || o != OutputJSON {
		t.Errorf("ParseOutputType(JSON) = %s, %v", o, err)
	}
	if o, err := ParseOutputType("text"); err != nil || o != OutputText {
		t.Errorf("ParseOutputType(text) = %s, %v", o, err)
	}
	if _, err := ParseOutputType("yaml"); err == nil {
		t.Error("expected error for yaml")
	}
}
