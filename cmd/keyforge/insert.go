package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/EmekaIwuagwu/keyforge/internal/config"
	"github.com/EmekaIwuagwu/keyforge/internal/crypto"
	"github.com/EmekaIwuagwu/keyforge/internal/input"
	"github.com/EmekaIwuagwu/keyforge/internal/keystore"
	"github.com/EmekaIwuagwu/keyforge/internal/monitoring"
	"github.com/spf13/cobra"
)

func (a *app) insertCmd() *cobra.Command {
	var (
		suri    string
		keyType string
	)

	cmd := &cobra.Command{
		Use:   "insert",
		Short: "Insert a key into a node keystore over JSON-RPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.record(cmd, a.runInsert(cmd, suri, keyType))
		},
	}
	cmd.Flags().StringVar(&suri, "suri", "", "Secret URI or a file containing one")
	cmd.Flags().StringVar(&keyType, "key-type", "", "Four character keystore key type, e.g. babe")
	cmd.Flags().String("node-url", "", "Node JSON-RPC endpoint (default "+config.DefaultNodeURL+")")
	_ = cmd.MarkFlagRequired("key-type")

	return cmd
}

func (a *app) runInsert(cmd *cobra.Command, value, keyType string) error {
	if err := keystore.ValidateKeyType(keyType); err != nil {
		return err
	}

	uri, err := input.ReadURI(value, a.prompter)
	if err != nil {
		return err
	}
	password, err := input.ResolvePassword(a.cfg.Password, true, a.prompter)
	if err != nil {
		return err
	}

	var public []byte
	err = crypto.WithKeyPair(a.capability(), uri, password, func(pair crypto.KeyPair) error {
		public = pair.Public()
		return nil
	})
	if err != nil {
		return err
	}

	client := keystore.NewClient(a.cfg.NodeURL, a.logger)

	start := time.Now()
	err = client.Insert(cmd.Context(), keyType, uri, public)
	monitoring.RecordKeystoreInsert(err, time.Since(start).Seconds())

	if errors.Is(err, keystore.ErrTransport) {
		fmt.Fprintf(a.stdout, "Error inserting key: %v\n", err)
		if a.cfg.Insert.Strict {
			return err
		}
		a.logger.Warn().Err(err).Str("endpoint", client.URL()).Msg("Keystore insertion failed")
		return nil
	}
	return err
}
