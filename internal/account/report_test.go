package account

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/EmekaIwuagwu/keyforge/internal/address"
	"github.com/EmekaIwuagwu/keyforge/internal/crypto"
	"github.com/EmekaIwuagwu/keyforge/internal/crypto/suri"
	"github.com/EmekaIwuagwu/keyforge/internal/types"
)

const aliceAddress = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"

func TestInspect_DevPhrase(t *testing.T) {
	var buf bytes.Buffer
	_, err := Inspect(&buf, crypto.ForScheme(types.SchemeSr25519), suri.DevPhrase, "", nil, types.OutputJSON)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}

	var out map[string]string
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	if out["secretPhrase"] != suri.DevPhrase {
		t.Errorf("secretPhrase: got %q", out["secretPhrase"])
	}
	if len(out["publicKey"]) != 2+64 {
		t.Errorf("publicKey should be 32 bytes of hex, got %q", out["publicKey"])
	}
	if out["accountId"] != out["publicKey"] {
		t.Error("accountId of a 32-byte key is the key itself")
	}

	network, _, err := address.Decode(out["ss58Address"])
	if err != nil {
		t.Fatalf("ss58Address should decode: %v", err)
	}
	if network != types.DefaultNetwork {
		t.Errorf("network: got %d, want %d", network, types.DefaultNetwork)
	}
}

func TestInspect_SecretURIText(t *testing.T) {
	var buf bytes.Buffer
	_, err := Inspect(&buf, crypto.ForScheme(types.SchemeSr25519), "//Alice", "", nil, types.OutputText)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}

	text := buf.String()
	if !strings.HasPrefix(text, "Secret Key URI `//Alice` is account:\n") {
		t.Errorf("unexpected header:\n%s", text)
	}
	if !strings.Contains(text, "SS58 Address:     "+aliceAddress) {
		t.Errorf("missing Alice address:\n%s", text)
	}
}

func TestInspect_PublicAddress(t *testing.T) {
	var buf bytes.Buffer
	_, err := Inspect(&buf, crypto.ForScheme(types.SchemeSr25519), aliceAddress, "", nil, types.OutputJSON)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}

	var out map[string]string
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if out["publicKeyUri"] != aliceAddress {
		t.Errorf("publicKeyUri: got %q", out["publicKeyUri"])
	}
	if out["secretSeed"] != NotApplicable {
		t.Errorf("secretSeed: got %q, want %q", out["secretSeed"], NotApplicable)
	}
	if out["networkId"] != "42" {
		t.Errorf("networkId: got %q, want 42", out["networkId"])
	}
}

func TestNewReport_NetworkOverride(t *testing.T) {
	d, err := crypto.Derive(crypto.ForScheme(types.SchemeSr25519), aliceAddress, "")
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	defer d.Close()

	polkadot := uint16(0)
	report, err := NewReport(d, &polkadot)
	if err != nil {
		t.Fatalf("NewReport failed: %v", err)
	}
	if report.Network != 0 {
		t.Errorf("override should win over embedded network, got %d", report.Network)
	}
	if report.Address != "15oF4uVJwmo4TdGW7VfQxNLavjCXviqxT9S1MgbjMNHr6Sp5" {
		t.Errorf("unexpected polkadot address %s", report.Address)
	}
}

func TestInspect_Invalid(t *testing.T) {
	var buf bytes.Buffer
	_, err := Inspect(&buf, crypto.ForScheme(types.SchemeEd25519), "not key material", "", nil, types.OutputText)
	if !errors.Is(err, crypto.ErrInvalidKeyMaterial) {
		t.Errorf("expected ErrInvalidKeyMaterial, got %v", err)
	}
	if strings.TrimSpace(buf.String()) != InvalidURIMessage {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestInspect_EcdsaAccountID(t *testing.T) {
	var buf bytes.Buffer
	_, err := Inspect(&buf, crypto.ForScheme(types.SchemeEcdsa), "//Alice", "", nil, types.OutputJSON)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}

	var out map[string]string
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(out["publicKey"]) != 2+66 {
		t.Errorf("ecdsa publicKey should be 33 bytes, got %q", out["publicKey"])
	}
	if len(out["accountId"]) != 2+64 {
		t.Errorf("ecdsa accountId should be hashed to 32 bytes, got %q", out["accountId"])
	}
}
