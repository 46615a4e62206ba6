// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/meridianpay/payledger/fault"
	"github.com/meridianpay/payledger/identity"
	"github.com/meridianpay/payledger/util"
)

// pack User
//
// fields in order as struct above: identity length-prefixed, name
// length-prefixed; no tag, no padding, no version byte
func (user *User) Pack() (Packed, error) {
	if nil == user.Signer {
		return nil, fault.ErrInvalidOwner
	}
	if utf8.RuneCountInString(user.Name) > maxNameLength {
		return nil, fault.ErrNameTooLong
	}

	message := appendIdentity(Packed{}, user.Signer)
	return appendString(message, user.Name), nil
}

// pack Balance
//
// identity and symbol length-prefixed, amount as a fixed 8 byte big
// endian word so credit/debit rewrites keep the encoded size constant
func (balance *Balance) Pack() (Packed, error) {
	if nil == balance.Owner {
		return nil, fault.ErrInvalidOwner
	}
	if utf8.RuneCountInString(balance.Symbol) < minSymbolLength {
		return nil, fault.ErrSymbolTooShort
	}
	if utf8.RuneCountInString(balance.Symbol) > maxSymbolLength {
		return nil, fault.ErrSymbolTooLong
	}

	message := appendIdentity(Packed{}, balance.Owner)
	message = appendString(message, balance.Symbol)
	return appendFixedUint64(message, balance.Amount), nil
}

// pack Sum
//
// three fixed 8 byte big endian words
func (sum *Sum) Pack() (Packed, error) {
	message := appendFixedUint64(Packed{}, sum.OperandA)
	message = appendFixedUint64(message, sum.OperandB)
	return appendFixedUint64(message, sum.Total), nil
}

// pack Name
func (name *Name) Pack() (Packed, error) {
	if utf8.RuneCountInString(name.Value) > maxValueLength {
		return nil, fault.ErrValueTooLong
	}
	return appendString(Packed{}, name.Value), nil
}

// append a text field to a buffer
//
// the field is prefixed by Varint64(length)
func appendString(buffer Packed, s string) Packed {
	l := util.ToVarint64(uint64(len(s)))
	buffer = append(buffer, l...)
	return append(buffer, s...)
}

// append an identity to a buffer
//
// the field is prefixed by Varint64(length)
func appendIdentity(buffer Packed, id *identity.Identity) Packed {
	data := id.Bytes()
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	buffer = append(buffer, data...)
	return buffer
}

// append a fixed width big endian uint64 to a buffer
func appendFixedUint64(buffer Packed, value uint64) Packed {
	word := make([]byte, amountLength)
	binary.BigEndian.PutUint64(word, value)
	return append(buffer, word...)
}
