// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/meridianpay/payledger/fault"
	"github.com/meridianpay/payledger/util"
)

// supported key algorithms
const (
	ED25519 = 1

	// end of list (one greater than last item)
	algorithmLimit = 2
)

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01
	testKeyCode   = 0x02

	algorithmShift = 4 // shift 4 bits to get algorithm
)

// Identity - an ed25519 signing identity
//
// the public key doubles as an authorisation subject and as a
// derivation seed; the private part never enters this module
type Identity struct {
	Test      bool
	PublicKey []byte
}

// New - wrap a raw ed25519 public key
func New(publicKey []byte, testnet bool) (*Identity, error) {
	if ed25519.PublicKeySize != len(publicKey) {
		return nil, fault.ErrInvalidKeyLength
	}
	return &Identity{
		Test:      testnet,
		PublicKey: publicKey,
	}, nil
}

// FromAddress - reconstruct an identity from its address form
//
// only meaningful for addresses that are actually public keys; a
// derived address wrapped this way will simply fail any signature
// check
func FromAddress(address Address, testnet bool) *Identity {
	publicKey := make([]byte, AddressLength)
	copy(publicKey, address[:])
	return &Identity{
		Test:      testnet,
		PublicKey: publicKey,
	}
}

// FromBytes - decode the binary form: key variant followed by raw key
func FromBytes(buffer []byte) (*Identity, error) {

	keyVariant, keyVariantLength := util.FromVarint64(buffer)
	if 0 == keyVariantLength || keyVariant&publicKeyCode != publicKeyCode {
		return nil, fault.ErrNotPublicKey
	}

	keyAlgorithm := keyVariant >> algorithmShift
	if ED25519 != keyAlgorithm {
		return nil, fault.ErrInvalidKeyType
	}

	isTest := 0 != keyVariant&testKeyCode

	keyLength := len(buffer) - keyVariantLength
	if ed25519.PublicKeySize != keyLength {
		return nil, fault.ErrInvalidKeyLength
	}

	publicKey := make([]byte, keyLength)
	copy(publicKey, buffer[keyVariantLength:])

	return &Identity{
		Test:      isTest,
		PublicKey: publicKey,
	}, nil
}

// FromBase58 - decode the checksummed text form
func FromBase58(s string) (*Identity, error) {
	decoded, err := base58.Decode(s)
	if nil != err || 0 == len(decoded) {
		return nil, fault.ErrCannotDecodeIdentity
	}

	if len(decoded) <= checksumLength {
		return nil, fault.ErrCannotDecodeIdentity
	}

	checksumStart := len(decoded) - checksumLength
	checksum := sha3.Sum256(decoded[:checksumStart])
	for i := 0; i < checksumLength; i += 1 {
		if checksum[i] != decoded[checksumStart+i] {
			return nil, fault.ErrChecksumMismatch
		}
	}

	return FromBytes(decoded[:checksumStart])
}

// CheckSignature - verify a signature over a message
func (identity *Identity) CheckSignature(message []byte, signature Signature) error {

	if ed25519.SignatureSize != len(signature) {
		return fault.ErrInvalidSignature
	}

	if !ed25519.Verify(identity.PublicKey, message, signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}

// Bytes - byte slice for encoded key
func (identity *Identity) Bytes() []byte {
	keyVariant := byte(ED25519<<algorithmShift) | publicKeyCode
	if identity.Test {
		keyVariant |= testKeyCode
	}
	return append([]byte{keyVariant}, identity.PublicKey...)
}

// Address - the storage address corresponding to this identity
func (identity *Identity) Address() Address {
	var address Address
	copy(address[:], identity.PublicKey)
	return address
}

// String - base58 encoding of encoded key with checksum
func (identity *Identity) String() string {
	buffer := identity.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// IsTesting - return whether the public key is in test mode or not
func (identity *Identity) IsTesting() bool {
	return identity.Test
}

// MarshalText - convert an identity to its Base58 JSON form
func (identity Identity) MarshalText() ([]byte, error) {
	return []byte(identity.String()), nil
}

// UnmarshalText - convert the Base58 JSON form back to an identity
func (identity *Identity) UnmarshalText(s []byte) error {
	i, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	identity.Test = i.Test
	identity.PublicKey = i.PublicKey
	return nil
}
