package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newVerifyCommand() *cobra.Command {
	var pubArg, msgArg, sigArg string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "verify a signature against a public key",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := state.logBack.GetLogger("jq255ctl/verify")

			curve, err := resolveCurve()
			if err != nil {
				return err
			}
			pub, err := decodeArg(pubArg)
			if err != nil {
				return err
			}
			msg, err := decodeArg(msgArg)
			if err != nil {
				return err
			}
			sig, err := decodeArg(sigArg)
			if err != nil {
				return err
			}

			ok, err := verifyCurve(curve, pub, msg, sig, hashFlag)
			if err != nil {
				logger.Errorf("verify failed: %v", err)
				return err
			}
			if !ok {
				logger.Warningf("signature did not verify (%s)", curve)
				fmt.Println("invalid")
				return errors.New("jq255ctl: signature does not verify")
			}
			logger.Noticef("signature verified (%s)", curve)
			fmt.Println("valid")
			return nil
		},
	}

	cmd.Flags().StringVar(&pubArg, "pub", "", "encoded public key (required)")
	cmd.Flags().StringVar(&msgArg, "msg", "", "encoded message, or pre-hashed value when --hash-name is set")
	cmd.Flags().StringVar(&sigArg, "sig", "", "encoded 48-byte signature (required)")
	cmd.MarkFlagRequired("pub")
	cmd.MarkFlagRequired("msg")
	cmd.MarkFlagRequired("sig")
	return cmd
}
