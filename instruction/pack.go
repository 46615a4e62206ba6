// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package instruction

import (
	"unicode/utf8"

	"github.com/meridianpay/payledger/fault"
	"github.com/meridianpay/payledger/identity"
	"github.com/meridianpay/payledger/util"
)

// pack RegisterIdentity
//
// Pack Varint64(tag) followed by fields in order as struct above
func (register *RegisterIdentity) Pack() (Packed, error) {
	if utf8.RuneCountInString(register.Name) > maxNameLength {
		return nil, fault.ErrNameTooLong
	}

	message := Packed(util.ToVarint64(uint64(RegisterIdentityTag)))
	return appendString(message, register.Name), nil
}

// pack Credit
//
// Pack Varint64(tag) followed by fields in order as struct above
func (credit *Credit) Pack() (Packed, error) {
	if err := checkSymbol(credit.Symbol); nil != err {
		return nil, err
	}

	message := Packed(util.ToVarint64(uint64(CreditTag)))
	message = appendString(message, credit.Symbol)
	return appendUint64(message, credit.Amount), nil
}

// pack Transfer
//
// Pack Varint64(tag) followed by fields in order as struct above
func (transfer *Transfer) Pack() (Packed, error) {
	if err := checkSymbol(transfer.Symbol); nil != err {
		return nil, err
	}
	if nil == transfer.Recipient {
		return nil, fault.ErrInvalidOwner
	}

	message := Packed(util.ToVarint64(uint64(TransferTag)))
	message = appendString(message, transfer.Symbol)
	message = appendUint64(message, transfer.Amount)
	return appendIdentity(message, transfer.Recipient), nil
}

func checkSymbol(symbol string) error {
	if utf8.RuneCountInString(symbol) < minSymbolLength {
		return fault.ErrSymbolTooShort
	}
	if utf8.RuneCountInString(symbol) > maxSymbolLength {
		return fault.ErrSymbolTooLong
	}
	return nil
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

// append a Varint64 to buffer
func appendUint64(buffer Packed, value uint64) Packed {
	valueBytes := util.ToVarint64(value)
	buffer = append(buffer, valueBytes...)
	return buffer
}
