package main

import (
	"fmt"
	"strconv"

	"github.com/EmekaIwuagwu/keyforge/internal/crypto"
	"github.com/EmekaIwuagwu/keyforge/internal/extrinsic"
	"github.com/EmekaIwuagwu/keyforge/internal/input"
	"github.com/EmekaIwuagwu/keyforge/internal/signing"
	"github.com/spf13/cobra"
)

func (a *app) signTransactionCmd() *cobra.Command {
	var (
		suri  string
		nonce string
		call  string
	)

	cmd := &cobra.Command{
		Use:   "sign-transaction",
		Short: "Build and sign an extrinsic from an encoded call and a nonce",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.record(cmd, a.runSignTransaction(suri, nonce, call))
		},
	}
	cmd.Flags().StringVar(&suri, "suri", "", "Secret URI or a file containing one")
	cmd.Flags().StringVar(&nonce, "nonce", "", "Account nonce")
	cmd.Flags().StringVar(&call, "call", "", "SCALE-encoded call as hex")
	_ = cmd.MarkFlagRequired("nonce")
	_ = cmd.MarkFlagRequired("call")

	return cmd
}

func (a *app) runSignTransaction(value, nonceArg, callArg string) error {
	nonce, err := strconv.ParseUint(nonceArg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid nonce %q: %w", nonceArg, err)
	}
	callBytes, err := signing.DecodeHex(callArg)
	if err != nil {
		return fmt.Errorf("invalid call: %w", err)
	}

	runtime, err := extrinsic.NewGenericRuntime(&a.cfg.Runtime)
	if err != nil {
		return err
	}
	addressFormat, err := extrinsic.ParseAddressFormat(a.cfg.Runtime.AddressFormat)
	if err != nil {
		return err
	}
	signatureFormat, err := extrinsic.ParseSignatureFormat(a.cfg.Runtime.SignatureFormat)
	if err != nil {
		return err
	}
	builder := extrinsic.NewBuilder(runtime, addressFormat, signatureFormat, a.logger)

	uri, err := input.ReadURI(value, a.prompter)
	if err != nil {
		return err
	}
	password, err := input.ResolvePassword(a.cfg.Password, true, a.prompter)
	if err != nil {
		return err
	}

	return crypto.WithKeyPair(a.capability(), uri, password, func(pair crypto.KeyPair) error {
		xt, err := builder.Build(callBytes, nonce, pair)
		if err != nil {
			return err
		}
		encoded, err := xt.Encode()
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(a.stdout, signing.EncodeHex(encoded))
		return err
	})
}
