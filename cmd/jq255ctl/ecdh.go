package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newECDHCommand() *cobra.Command {
	var privArg, peerArg string

	cmd := &cobra.Command{
		Use:   "ecdh",
		Short: "derive a shared secret from a private key and a peer public key",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := state.logBack.GetLogger("jq255ctl/ecdh")

			curve, err := resolveCurve()
			if err != nil {
				return err
			}
			priv, err := decodeArg(privArg)
			if err != nil {
				return err
			}
			peer, err := decodeArg(peerArg)
			if err != nil {
				return err
			}

			shared, ok, err := ecdhCurve(curve, priv, peer)
			if err != nil {
				logger.Errorf("ecdh failed: %v", err)
				return err
			}
			if !ok {
				logger.Warningf("peer key was invalid or the identity (%s); returning the masked fallback secret", curve)
			} else {
				logger.Noticef("derived a shared secret (%s)", curve)
			}
			fmt.Println(encodeOut(shared[:]))
			return nil
		},
	}

	cmd.Flags().StringVar(&privArg, "priv", "", "encoded private key (required)")
	cmd.Flags().StringVar(&peerArg, "peer", "", "encoded peer public key (required)")
	cmd.MarkFlagRequired("priv")
	cmd.MarkFlagRequired("peer")
	return cmd
}
