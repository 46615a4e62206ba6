// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package instruction

import (
	"github.com/meridianpay/payledger/fault"
	"github.com/meridianpay/payledger/identity"
	"github.com/meridianpay/payledger/util"
)

// Unpack - turn a byte slice into an instruction
//
// must cast result to the correct type
//
// e.g.
//   credit, ok := result.(*instruction.Credit)
// or:
//   switch ix := result.(type) {
//   case *instruction.Credit:
func (buffer Packed) Unpack(testnet bool) (ix Instruction, n int, e error) {

	defer func() {
		if r := recover(); nil != r {
			e = fault.ErrNotInstructionPack
		}
	}()

	tag, n := util.ClippedVarint64(buffer, 1, 8192)
	if 0 == n {
		return nil, 0, fault.ErrNotInstructionPack
	}

unpack_switch:
	switch TagType(tag) {

	case RegisterIdentityTag:

		// display name (can be zero length)
		nameLength, nameOffset := util.ClippedVarint64(buffer[n:], 0, 4*maxNameLength)
		if 0 == nameOffset {
			break unpack_switch
		}
		n += nameOffset
		name := string(buffer[n : n+nameLength])
		n += nameLength

		r := &RegisterIdentity{
			Name: name,
		}
		return r, n, nil

	case CreditTag:

		// symbol
		symbolLength, symbolOffset := util.ClippedVarint64(buffer[n:], minSymbolLength, 4*maxSymbolLength)
		if 0 == symbolOffset {
			break unpack_switch
		}
		n += symbolOffset
		symbol := string(buffer[n : n+symbolLength])
		n += symbolLength

		// amount
		amount, amountLength := util.FromVarint64(buffer[n:])
		if 0 == amountLength {
			break unpack_switch
		}
		n += amountLength

		r := &Credit{
			Symbol: symbol,
			Amount: amount,
		}
		return r, n, nil

	case TransferTag:

		// symbol
		symbolLength, symbolOffset := util.ClippedVarint64(buffer[n:], minSymbolLength, 4*maxSymbolLength)
		if 0 == symbolOffset {
			break unpack_switch
		}
		n += symbolOffset
		symbol := string(buffer[n : n+symbolLength])
		n += symbolLength

		// amount
		amount, amountLength := util.FromVarint64(buffer[n:])
		if 0 == amountLength {
			break unpack_switch
		}
		n += amountLength

		// recipient public key
		recipientLength, recipientOffset := util.ClippedVarint64(buffer[n:], 1, 64)
		if 0 == recipientOffset {
			break unpack_switch
		}
		n += recipientOffset
		recipient, err := identity.FromBytes(buffer[n : n+recipientLength])
		if nil != err {
			return nil, 0, err
		}
		if recipient.IsTesting() != testnet {
			return nil, 0, fault.ErrWrongNetworkForPublicKey
		}
		n += recipientLength

		r := &Transfer{
			Symbol:    symbol,
			Amount:    amount,
			Recipient: recipient,
		}
		return r, n, nil

	default: // also NullTag
	}
	return nil, 0, fault.ErrNotInstructionPack
}
