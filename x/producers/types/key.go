package types

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/mr-tron/base58"
)

// PublicKeyLength is the size of a compressed secp256k1 public key.
const PublicKeyLength = 33

// ValidateProducerKey checks that key is the base58 encoding of a compressed
// secp256k1 public key.
func ValidateProducerKey(key string) error {
	if key == "" {
		return errorsmod.Wrap(ErrInvalidProducerKey, "key must not be empty")
	}
	bz, err := base58.Decode(key)
	if err != nil {
		return errorsmod.Wrapf(ErrInvalidProducerKey, "%q: %s", key, err)
	}
	if len(bz) != PublicKeyLength {
		return errorsmod.Wrapf(ErrInvalidProducerKey, "%q decodes to %d bytes, want %d", key, len(bz), PublicKeyLength)
	}
	if bz[0] != 0x02 && bz[0] != 0x03 {
		return errorsmod.Wrapf(ErrInvalidProducerKey, "%q is not a compressed point", key)
	}
	return nil
}
