// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package derivation

import (
	"filippo.io/edwards25519"
	"golang.org/x/crypto/sha3"

	"github.com/meridianpay/payledger/fault"
	"github.com/meridianpay/payledger/identity"
)

// namespace tags for the ledger's derived records
var (
	UserTag    = []byte("user")
	BalanceTag = []byte("balance")
)

// domain separator so derived addresses can never collide with any
// other use of SHA3-256 in this module
const marker = "payledger:derived-address:v1"

// Derive - map a namespace tag and an ordered seed list to a storage
// address and a disambiguation nonce
//
// the nonce is bump searched from 0xFF downward until the resulting
// address is not a valid ed25519 curve point; such an address cannot
// be the public half of any signing key, so only program logic can
// ever authorise writes to it
//
// seed order matters: derivation at creation time and at verification
// time must present identical tag, seeds and program
func Derive(tag []byte, seeds [][]byte, program identity.Address) (identity.Address, byte, error) {

	for nonce := 0xFF; nonce >= 0; nonce -= 1 {
		address := DeriveWithNonce(tag, seeds, byte(nonce), program)
		if !isSignable(address) {
			return address, byte(nonce), nil
		}
	}

	var zero identity.Address
	return zero, 0, fault.ErrNoDerivableAddress
}

// DeriveWithNonce - the single hash underlying the bump search
//
// concatenation order is fixed: tag, each seed in caller order, the
// nonce byte, the program namespace, the domain marker
func DeriveWithNonce(tag []byte, seeds [][]byte, nonce byte, program identity.Address) identity.Address {
	h := sha3.New256()
	h.Write(tag)
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write([]byte{nonce})
	h.Write(program[:])
	h.Write([]byte(marker))

	var address identity.Address
	copy(address[:], h.Sum(nil))
	return address
}

// Verify - re-derive and require exact equality with a claimed address
//
// mismatch is a hard rejection; the claimed address is never used
func Verify(claimed identity.Address, tag []byte, seeds [][]byte, program identity.Address) error {
	address, _, err := Derive(tag, seeds, program)
	if nil != err {
		return err
	}
	if claimed != address {
		return fault.ErrDerivedAddressMismatch
	}
	return nil
}

// a 32 byte value is signable when it decodes as a point on the
// ed25519 curve
func isSignable(address identity.Address) bool {
	_, err := new(edwards25519.Point).SetBytes(address[:])
	return nil == err
}
