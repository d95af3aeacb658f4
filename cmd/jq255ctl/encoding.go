package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

func decodeArg(s string) ([]byte, error) {
	switch state.cfg.Encoding {
	case "base64":
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("bad base64 argument: %v", err)
		}
		return b, nil
	default:
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("bad hex argument: %v", err)
		}
		return b, nil
	}
}

func encodeOut(b []byte) string {
	if state.cfg.Encoding == "base64" {
		return base64.StdEncoding.EncodeToString(b)
	}
	return hex.EncodeToString(b)
}
