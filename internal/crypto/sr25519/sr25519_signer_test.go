package sr25519

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/EmekaIwuagwu/keyforge/internal/crypto/suri"
)

const aliceSr25519Public = "d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"

func TestFromURI_DevAccount(t *testing.T) {
	s, err := FromURI("//Alice", "")
	if err != nil {
		t.Fatalf("Failed to derive //Alice: %v", err)
	}
	defer s.Close()

	if got := hex.EncodeToString(s.Public()); got != aliceSr25519Public {
		t.Errorf("Public key mismatch: got %s, want %s", got, aliceSr25519Public)
	}
}

func TestFromPhrase_Scenario(t *testing.T) {
	s, err := FromPhrase(suri.DevPhrase, "")
	if err != nil {
		t.Fatalf("FromPhrase failed: %v", err)
	}
	defer s.Close()

	if len(s.Public()) != PublicKeySize {
		t.Errorf("Public key size: got %d, want %d", len(s.Public()), PublicKeySize)
	}
	if len(s.Seed()) == 0 {
		t.Error("phrase derivation should expose a seed")
	}

	again, err := FromPhrase(suri.DevPhrase, "")
	if err != nil {
		t.Fatalf("FromPhrase failed: %v", err)
	}
	defer again.Close()
	if !bytes.Equal(s.Public(), again.Public()) {
		t.Error("derivation should be deterministic")
	}
}

func TestSoftDerivation(t *testing.T) {
	hard, err := FromURI("//Alice", "")
	if err != nil {
		t.Fatalf("hard derivation failed: %v", err)
	}
	defer hard.Close()

	soft, err := FromURI("//Alice/stash", "")
	if err != nil {
		t.Fatalf("soft derivation failed: %v", err)
	}
	defer soft.Close()

	if bytes.Equal(hard.Public(), soft.Public()) {
		t.Error("soft junction should change the key")
	}
}

func TestSignVerify(t *testing.T) {
	s, err := FromURI("//Alice", "")
	if err != nil {
		t.Fatalf("Failed to derive: %v", err)
	}

	msg := []byte("hello")
	sig, err := s.Sign(msg)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if len(sig) != SignatureSize {
		t.Errorf("Signature size: got %d, want %d", len(sig), SignatureSize)
	}
	if !s.Verify(msg, sig) {
		t.Error("signature should verify")
	}

	s.Close()
	if _, err := s.Sign(msg); err == nil {
		t.Error("closed signer should refuse to sign")
	}
}
