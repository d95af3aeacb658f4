package main

import (
	"fmt"

	"github.com/doubleodd/jq255/jq255e"
	"github.com/doubleodd/jq255/jq255s"
)

// resolveCurve returns the effective curve name for a command invocation,
// preferring an explicit flag over the config file default.
func resolveCurve() (string, error) {
	switch state.cfg.Curve {
	case "jq255e", "jq255s":
		return state.cfg.Curve, nil
	default:
		return "", fmt.Errorf("unknown curve %q (want jq255e or jq255s)", state.cfg.Curve)
	}
}

func keygenCurve(curve string, seed []byte) (priv, pub []byte, err error) {
	switch curve {
	case "jq255e":
		var sk *jq255e.PrivateKey
		if seed != nil {
			sk = jq255e.PrivateKeyFromSeed(seed)
		} else if sk, err = jq255e.GenerateKeyPair(nil); err != nil {
			return nil, nil, err
		}
		return sk.Encode(nil), sk.Public().Encode(nil), nil
	case "jq255s":
		var sk *jq255s.PrivateKey
		if seed != nil {
			sk = jq255s.PrivateKeyFromSeed(seed)
		} else if sk, err = jq255s.GenerateKeyPair(nil); err != nil {
			return nil, nil, err
		}
		return sk.Encode(nil), sk.Public().Encode(nil), nil
	default:
		return nil, nil, fmt.Errorf("unknown curve %q", curve)
	}
}

func signCurve(curve string, priv, hv []byte, hashName string) ([]byte, error) {
	switch curve {
	case "jq255e":
		sk, err := jq255e.DecodePrivateKey(priv)
		if err != nil {
			return nil, err
		}
		return sk.Sign(nil, hashName, hv)
	case "jq255s":
		sk, err := jq255s.DecodePrivateKey(priv)
		if err != nil {
			return nil, err
		}
		return sk.Sign(nil, hashName, hv)
	default:
		return nil, fmt.Errorf("unknown curve %q", curve)
	}
}

func verifyCurve(curve string, pub, hv, sig []byte, hashName string) (bool, error) {
	switch curve {
	case "jq255e":
		pk, err := jq255e.DecodePublicKey(pub)
		if err != nil {
			return false, err
		}
		return pk.VerifyVartime(hashName, hv, sig), nil
	case "jq255s":
		pk, err := jq255s.DecodePublicKey(pub)
		if err != nil {
			return false, err
		}
		return pk.VerifyVartime(hashName, hv, sig), nil
	default:
		return false, fmt.Errorf("unknown curve %q", curve)
	}
}

func ecdhCurve(curve string, priv, peerPub []byte) (shared [32]byte, ok bool, err error) {
	switch curve {
	case "jq255e":
		sk, err := jq255e.DecodePrivateKey(priv)
		if err != nil {
			return shared, false, err
		}
		s, ok := jq255e.ECDH(sk, peerPub)
		return s, ok, nil
	case "jq255s":
		sk, err := jq255s.DecodePrivateKey(priv)
		if err != nil {
			return shared, false, err
		}
		s, ok := jq255s.ECDH(sk, peerPub)
		return s, ok, nil
	default:
		return shared, false, fmt.Errorf("unknown curve %q", curve)
	}
}
