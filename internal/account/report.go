package account

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/EmekaIwuagwu/keyforge/internal/address"
	"github.com/EmekaIwuagwu/keyforge/internal/crypto"
	"github.com/EmekaIwuagwu/keyforge/internal/types"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// InvalidURIMessage is printed when no derivation strategy accepts the input
const InvalidURIMessage = "Invalid phrase/URI given"

// NotApplicable marks a seed that cannot be shown
const NotApplicable = "n/a"

// Report is the public identity of derived key material
type Report struct {
	Kind      crypto.DerivationKind
	Input     string
	Seed      string
	Network   uint16
	PublicKey string
	AccountID string
	Address   string
}

// NewReport builds a report for d. The effective network is the explicit
// override when given, then a network embedded in a public address, then
// the default.
func NewReport(d *crypto.Derived, override *uint16) (*Report, error) {
	network := types.DefaultNetwork
	switch {
	case override != nil:
		network = *override
	case d.NetworkEmbedded:
		network = d.Network
	}

	public := d.Public()
	addr, err := address.EncodeAccount(public, network)
	if err != nil {
		return nil, fmt.Errorf("failed to encode address: %w", err)
	}

	seed := NotApplicable
	if s := d.Seed(); s != nil {
		seed = hexutil.Encode(s)
	}

	return &Report{
		Kind:      d.Kind,
		Input:     d.Input,
		Seed:      seed,
		Network:   network,
		PublicKey: hexutil.Encode(public),
		AccountID: hexutil.Encode(address.AccountID(public)),
		Address:   addr,
	}, nil
}

// MarshalJSON renders the report with the field names of its derivation kind
func (r *Report) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case crypto.KindPhrase:
		return json.Marshal(struct {
			SecretPhrase string `json:"secretPhrase"`
			SecretSeed   string `json:"secretSeed"`
			PublicKey    string `json:"publicKey"`
			AccountID    string `json:"accountId"`
			SS58Address  string `json:"ss58Address"`
		}{r.Input, r.Seed, r.PublicKey, r.AccountID, r.Address})
	case crypto.KindSecretURI:
		return json.Marshal(struct {
			SecretKeyURI string `json:"secretKeyUri"`
			SecretSeed   string `json:"secretSeed"`
			PublicKey    string `json:"publicKey"`
			AccountID    string `json:"accountId"`
			SS58Address  string `json:"ss58Address"`
		}{r.Input, r.Seed, r.PublicKey, r.AccountID, r.Address})
	default:
		return json.Marshal(struct {
			PublicKeyURI string `json:"publicKeyUri"`
			SecretSeed   string `json:"secretSeed"`
			NetworkID    string `json:"networkId"`
			PublicKey    string `json:"publicKey"`
			AccountID    string `json:"accountId"`
			SS58Address  string `json:"ss58Address"`
		}{r.Input, r.Seed, strconv.Itoa(int(r.Network)), r.PublicKey, r.AccountID, r.Address})
	}
}

// Text renders the report as a fixed-format block
func (r *Report) Text() string {
	switch r.Kind {
	case crypto.KindPhrase:
		return fmt.Sprintf("Secret phrase `%s` is account:\n"+
			"  Secret seed:      %s\n"+
			"  Public key (hex): %s\n"+
			"  Account ID:       %s\n"+
			"  SS58 Address:     %s\n",
			r.Input, r.Seed, r.PublicKey, r.AccountID, r.Address)
	case crypto.KindSecretURI:
		return fmt.Sprintf("Secret Key URI `%s` is account:\n"+
			"  Secret seed:      %s\n"+
			"  Public key (hex): %s\n"+
			"  Account ID:       %s\n"+
			"  SS58 Address:     %s\n",
			r.Input, r.Seed, r.PublicKey, r.AccountID, r.Address)
	default:
		return fmt.Sprintf("Public Key URI `%s` is account:\n"+
			"  Secret seed:        %s\n"+
			"  Network ID/version: %d\n"+
			"  Public key (hex):   %s\n"+
			"  Account ID:         %s\n"+
			"  SS58 Address:       %s\n",
			r.Input, r.Seed, r.Network, r.PublicKey, r.AccountID, r.Address)
	}
}

// Write renders the report to w in the requested output type
func Write(w io.Writer, r *Report, output types.OutputType) error {
	switch output {
	case types.OutputJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		_, err := io.WriteString(w, r.Text())
		return err
	}
}

// Inspect derives uri and writes its report. When no derivation strategy
// accepts the input, InvalidURIMessage is written and ErrInvalidKeyMaterial
// is returned so non-interactive callers can tell the cases apart.
func Inspect(w io.Writer, c crypto.Capability, uri, password string, override *uint16, output types.OutputType) (*Report, error) {
	d, err := crypto.Derive(c, uri, password)
	if err != nil {
		fmt.Fprintln(w, InvalidURIMessage)
		return nil, err
	}
	defer d.Close()

	report, err := NewReport(d, override)
	if err != nil {
		return nil, err
	}
	if err := Write(w, report, output); err != nil {
		return nil, err
	}
	return report, nil
}
