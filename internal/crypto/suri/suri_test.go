package suri

import "testing"

func TestCompose(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		password string
		want     string
	}{
		{"plain phrase", DevPhrase, "", DevPhrase},
		{"dev junction", "//Alice", "", DevPhrase + "//Alice"},
		{"password appended", "//Alice", "secret", DevPhrase + "//Alice///secret"},
		{"password replaces embedded", "//Alice///old", "new", DevPhrase + "//Alice///new"},
		{"embedded kept without override", "//Alice///old", "", DevPhrase + "//Alice///old"},
		{"hex seed", "0x01//x", "", "0x01//x"},
		{"trims whitespace", "  " + DevPhrase + "\n", "", DevPhrase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compose(tt.uri, tt.password); got != tt.want {
				t.Errorf("Compose() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasJunctions(t *testing.T) {
	if HasJunctions(DevPhrase) {
		t.Error("plain phrase has no junctions")
	}
	if !HasJunctions(DevPhrase + "/soft") {
		t.Error("soft junction not detected")
	}
}
