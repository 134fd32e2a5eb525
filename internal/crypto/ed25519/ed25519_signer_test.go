package ed25519

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/EmekaIwuagwu/keyforge/internal/crypto/suri"
)

const aliceEd25519Public = "88dc3417d5058ec4b4503e0c12ea1a0a89be200fe98922423d4334014fa6b0ee"

func TestFromURI_DevAccount(t *testing.T) {
	s, err := FromURI("//Alice", "")
	if err != nil {
		t.Fatalf("Failed to derive //Alice: %v", err)
	}
	defer s.Close()

	if got := hex.EncodeToString(s.Public()); got != aliceEd25519Public {
		t.Errorf("Public key mismatch: got %s, want %s", got, aliceEd25519Public)
	}
	if len(s.Seed()) != 32 {
		t.Errorf("Seed length: got %d, want 32", len(s.Seed()))
	}
}

func TestFromPhrase_MatchesURI(t *testing.T) {
	a, err := FromPhrase(suri.DevPhrase, "")
	if err != nil {
		t.Fatalf("FromPhrase failed: %v", err)
	}
	defer a.Close()

	b, err := FromURI(suri.DevPhrase, "")
	if err != nil {
		t.Fatalf("FromURI failed: %v", err)
	}
	defer b.Close()

	if !bytes.Equal(a.Public(), b.Public()) {
		t.Error("phrase and uri derivation should agree")
	}
}

func TestPasswordChangesKey(t *testing.T) {
	a, err := FromPhrase(suri.DevPhrase, "")
	if err != nil {
		t.Fatalf("FromPhrase failed: %v", err)
	}
	defer a.Close()

	b, err := FromPhrase(suri.DevPhrase, "hunter2")
	if err != nil {
		t.Fatalf("FromPhrase failed: %v", err)
	}
	defer b.Close()

	if bytes.Equal(a.Public(), b.Public()) {
		t.Error("password should change the derived key")
	}
}

func TestSoftJunctionRejected(t *testing.T) {
	if _, err := FromURI("//Alice/soft", ""); err == nil {
		t.Error("ed25519 should reject soft junctions")
	}
}

func TestSignAndVerify(t *testing.T) {
	s, err := FromURI("//Bob", "")
	if err != nil {
		t.Fatalf("Failed to derive: %v", err)
	}

	msg := []byte("hello keyforge")
	sig, err := s.Sign(msg)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if len(sig) != SignatureSize {
		t.Errorf("Signature size: got %d, want %d", len(sig), SignatureSize)
	}

	again, _ := s.Sign(msg)
	if !bytes.Equal(sig, again) {
		t.Error("ed25519 signatures should be deterministic")
	}

	if !s.Verify(msg, sig) {
		t.Error("signature should verify")
	}
	if s.Verify([]byte("other message"), sig) {
		t.Error("signature should not verify another message")
	}

	s.Close()
	if _, err := s.Sign(msg); err == nil {
		t.Error("closed signer should refuse to sign")
	}
	if s.Seed() != nil {
		t.Error("closed signer should not expose a seed")
	}
}

func TestNewEd25519SignerFromSeed_InvalidSize(t *testing.T) {
	if _, err := NewEd25519SignerFromSeed([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for short seed")
	}
}
