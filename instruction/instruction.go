// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package instruction

import (
	"github.com/meridianpay/payledger/identity"
	"github.com/meridianpay/payledger/util"
)

// TagType - type code for instructions
type TagType uint64

// enumerate the possible instruction types
// this is encoded as a Varint64 at the start of "Packed"
const (
	// null marks beginning of list - not used as an instruction type
	NullTag = TagType(iota)

	// valid instruction types
	RegisterIdentityTag = TagType(iota) // create the caller's identity record
	CreditTag           = TagType(iota) // create or increment a balance
	TransferTag         = TagType(iota) // move an amount between balances

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed instructions are just a byte slice
type Packed []byte

// Instruction - generic instruction interface
type Instruction interface {
	Pack() (Packed, error)
}

// byte sizes for various fields
const (
	maxNameLength   = 64
	minSymbolLength = 1
	maxSymbolLength = 16
)

// RegisterIdentity - claim a display name for the signing identity
type RegisterIdentity struct {
	Name string `json:"name"` // utf-8
}

// Credit - add an amount to the signer's balance for one symbol,
// creating the balance record on first use
type Credit struct {
	Symbol string `json:"symbol"`        // utf-8
	Amount uint64 `json:"amount,string"` // unsigned 0..N
}

// Transfer - move an amount from the signer's balance to the
// recipient's balance for the same symbol
type Transfer struct {
	Symbol    string             `json:"symbol"`        // utf-8
	Amount    uint64             `json:"amount,string"` // unsigned 0..N
	Recipient *identity.Identity `json:"recipient"`     // base58
}

// Type - returns the instruction type code
func (buffer Packed) Type() TagType {
	tag, n := util.FromVarint64(buffer)
	if 0 == n {
		return NullTag
	}
	return TagType(tag)
}

// InstructionName - returns the name of an instruction as a string
func InstructionName(instruction interface{}) (string, bool) {
	switch instruction.(type) {
	case *RegisterIdentity, RegisterIdentity:
		return "RegisterIdentity", true

	case *Credit, Credit:
		return "Credit", true

	case *Transfer, Transfer:
		return "Transfer", true

	default:
		return "*unknown*", false
	}
}
