// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"github.com/mr-tron/base58"

	"github.com/meridianpay/payledger/fault"
)

// AddressLength - number of bytes in a storage address
const AddressLength = 32

// Address - a fixed length storage location
//
// either the raw public key of a signing identity or a value produced
// by the derivation package; records are keyed by this
type Address [AddressLength]byte

// AddressFromBytes - convert a byte slice to an address
func AddressFromBytes(buffer []byte) (Address, error) {
	var address Address
	if AddressLength != len(buffer) {
		return address, fault.ErrInvalidKeyLength
	}
	copy(address[:], buffer)
	return address, nil
}

// String - plain base58 form for display and logging
func (address Address) String() string {
	return base58.Encode(address[:])
}

// MarshalText - convert an address to its Base58 JSON form
func (address Address) MarshalText() ([]byte, error) {
	return []byte(address.String()), nil
}

// UnmarshalText - convert the Base58 JSON form back to an address
func (address *Address) UnmarshalText(s []byte) error {
	decoded, err := base58.Decode(string(s))
	if nil != err {
		return fault.ErrCannotDecodeIdentity
	}
	a, err := AddressFromBytes(decoded)
	if nil != err {
		return err
	}
	*address = a
	return nil
}
