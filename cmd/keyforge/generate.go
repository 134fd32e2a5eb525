package main

import (
	"fmt"

	"github.com/EmekaIwuagwu/keyforge/internal/account"
	"github.com/EmekaIwuagwu/keyforge/internal/crypto"
	"github.com/EmekaIwuagwu/keyforge/internal/input"
	"github.com/EmekaIwuagwu/keyforge/internal/monitoring"
	"github.com/spf13/cobra"
	"github.com/tyler-smith/go-bip39"
)

// entropyBits maps supported phrase lengths to BIP39 entropy sizes
var entropyBits = map[int]int{
	12: 128,
	15: 160,
	18: 192,
	21: 224,
	24: 256,
}

func (a *app) generateCmd() *cobra.Command {
	var words int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random secret phrase and show its account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.record(cmd, a.runGenerate(words))
		},
	}
	cmd.Flags().IntVar(&words, "words", 12, "Number of words in the phrase: 12, 15, 18, 21 or 24")

	return cmd
}

func (a *app) runGenerate(words int) error {
	bits, ok := entropyBits[words]
	if !ok {
		return fmt.Errorf("unsupported phrase length: %d words", words)
	}

	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return fmt.Errorf("failed to generate entropy: %w", err)
	}
	phrase, err := bip39.NewMnemonic(entropy)
	clear(entropy)
	if err != nil {
		return fmt.Errorf("failed to generate phrase: %w", err)
	}

	password, err := input.ResolvePassword(a.cfg.Password, false, a.prompter)
	if err != nil {
		return err
	}

	c := a.capability()
	d, err := crypto.Derive(c, phrase, password)
	if err != nil {
		return err
	}
	defer d.Close()

	report, err := account.NewReport(d, a.networkOverride())
	if err != nil {
		return err
	}
	monitoring.RecordDerivation(c.Scheme().String(), d.Kind.String())

	return account.Write(a.stdout, report, a.cfg.OutputType())
}
