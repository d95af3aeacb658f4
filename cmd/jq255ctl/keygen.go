package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newKeygenCommand() *cobra.Command {
	var seedArg string

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "generate a fresh key pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := state.logBack.GetLogger("jq255ctl/keygen")

			curve, err := resolveCurve()
			if err != nil {
				return err
			}

			var seed []byte
			if seedArg != "" {
				if seed, err = decodeArg(seedArg); err != nil {
					return err
				}
			}

			priv, pub, err := keygenCurve(curve, seed)
			if err != nil {
				logger.Errorf("keygen failed: %v", err)
				return err
			}
			logger.Noticef("generated a %s key pair", curve)
			fmt.Printf("private: %s\n", encodeOut(priv))
			fmt.Printf("public:  %s\n", encodeOut(pub))
			return nil
		},
	}

	cmd.Flags().StringVar(&seedArg, "seed", "",
		"derive the private key directly from this seed instead of a fresh random source")
	return cmd
}
