package main

import (
	"errors"

	"github.com/EmekaIwuagwu/keyforge/internal/account"
	"github.com/EmekaIwuagwu/keyforge/internal/crypto"
	"github.com/EmekaIwuagwu/keyforge/internal/input"
	"github.com/EmekaIwuagwu/keyforge/internal/monitoring"
	"github.com/spf13/cobra"
)

func (a *app) inspectCmd() *cobra.Command {
	var suri string

	cmd := &cobra.Command{
		Use:   "inspect [uri]",
		Short: "Show the public identity of a phrase, seed, secret URI or address",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if suri == "" && len(args) == 1 {
				suri = args[0]
			}
			return a.record(cmd, a.runInspect(suri))
		},
	}
	cmd.Flags().StringVar(&suri, "suri", "", "Secret URI, phrase, seed, public key, address or a file containing one")

	return cmd
}

func (a *app) runInspect(value string) error {
	uri, err := input.ReadURI(value, a.prompter)
	if err != nil {
		return err
	}
	password, err := input.ResolvePassword(a.cfg.Password, false, a.prompter)
	if err != nil {
		return err
	}

	c := a.capability()
	report, err := account.Inspect(a.stdout, c, uri, password, a.networkOverride(), a.cfg.OutputType())
	if errors.Is(err, crypto.ErrInvalidKeyMaterial) {
		a.logger.Warn().Str("scheme", c.Scheme().String()).Msg("No derivation strategy accepted the input")
		return nil
	}
	if err != nil {
		return err
	}

	monitoring.RecordDerivation(c.Scheme().String(), report.Kind.String())
	a.logger.Debug().
		Str("kind", report.Kind.String()).
		Uint16("network", report.Network).
		Msg("Account inspected")

	return nil
}
