package main

import (
	"fmt"

	"github.com/EmekaIwuagwu/keyforge/internal/crypto"
	"github.com/EmekaIwuagwu/keyforge/internal/input"
	"github.com/EmekaIwuagwu/keyforge/internal/signing"
	"github.com/spf13/cobra"
)

func (a *app) signCmd() *cobra.Command {
	var (
		suri    string
		message string
		isHex   bool
	)

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message, read from --message or stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var msg *string
			if cmd.Flags().Changed("message") {
				msg = &message
			}
			return a.record(cmd, a.runSign(suri, msg, isHex))
		},
	}
	cmd.Flags().StringVar(&suri, "suri", "", "Secret URI or a file containing one")
	cmd.Flags().StringVar(&message, "message", "", "Message to sign; stdin is read when omitted")
	cmd.Flags().BoolVar(&isHex, "hex", false, "Treat the message as hex")

	return cmd
}

func (a *app) runSign(value string, message *string, isHex bool) error {
	uri, err := input.ReadURI(value, a.prompter)
	if err != nil {
		return err
	}
	password, err := input.ResolvePassword(a.cfg.Password, true, a.prompter)
	if err != nil {
		return err
	}

	data, err := signing.ReadMessage(message, isHex, a.stdin)
	if err != nil {
		return err
	}

	return crypto.WithKeyPair(a.capability(), uri, password, func(pair crypto.KeyPair) error {
		signature, err := signing.Sign(pair, data)
		if err != nil {
			return err
		}

		a.logger.Debug().
			Int("message_len", len(data)).
			Msg("Message signed")

		_, err = fmt.Fprintln(a.stdout, signature)
		return err
	})
}
