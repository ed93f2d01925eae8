package utils

import (
	"golang.org/x/crypto/ed25519"

	"github.com/celer-network/go-ledger/log"
)

const (
	SignatureSize = ed25519.SignatureSize
	VerifyKeySize = ed25519.PublicKeySize
)

// SigIsValid checks an Ed25519 signature over the hash of data.
func SigIsValid(verifyKey []byte, data []byte, sig []byte) bool {
	if len(verifyKey) != VerifyKeySize {
		log.Default().Error().Int("len", len(verifyKey)).Msg("malformed verify key")
		return false
	}
	if len(sig) != SignatureSize {
		return false
	}
	digest := Hasher(data)
	return ed25519.Verify(ed25519.PublicKey(verifyKey), digest, sig)
}

// SignData signs the hash of the concatenated data.
func SignData(privateKey ed25519.PrivateKey, data ...[]byte) []byte {
	var msg []byte
	for _, d := range data {
		msg = append(msg, d...)
	}
	return ed25519.Sign(privateKey, Hasher(msg))
}
