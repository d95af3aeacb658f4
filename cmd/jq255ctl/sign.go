package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSignCommand() *cobra.Command {
	var privArg, msgArg string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "sign a message with a private key",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := state.logBack.GetLogger("jq255ctl/sign")

			curve, err := resolveCurve()
			if err != nil {
				return err
			}
			priv, err := decodeArg(privArg)
			if err != nil {
				return err
			}
			msg, err := decodeArg(msgArg)
			if err != nil {
				return err
			}

			sig, err := signCurve(curve, priv, msg, hashFlag)
			if err != nil {
				logger.Errorf("sign failed: %v", err)
				return err
			}
			logger.Noticef("produced a %d-byte signature over %s", len(sig), curve)
			fmt.Println(encodeOut(sig))
			return nil
		},
	}

	cmd.Flags().StringVar(&privArg, "priv", "", "encoded private key (required)")
	cmd.Flags().StringVar(&msgArg, "msg", "", "encoded message, or pre-hashed value when --hash-name is set")
	cmd.MarkFlagRequired("priv")
	cmd.MarkFlagRequired("msg")
	return cmd
}
