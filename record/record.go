// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/meridianpay/payledger/identity"
)

// Packed - packed records are just a byte slice
type Packed []byte

// byte sizes for various fields
const (
	maxNameLength   = 64
	minSymbolLength = 1
	maxSymbolLength = 16
	maxValueLength  = 1024

	// fixed width so in place amount updates never change the
	// encoded size
	amountLength = 8
)

// User - the identity record
//
// created exactly once per signing identity at the address derived
// from the "user" tag and the identity's public key; never mutated
type User struct {
	Signer *identity.Identity `json:"signer"` // base58
	Name   string             `json:"name"`   // utf-8
}

// Balance - one asset balance record
//
// one record per (owner, symbol) pair at the address derived from the
// "balance" tag, the owner's public key and the symbol bytes
type Balance struct {
	Owner  *identity.Identity `json:"owner"`         // base58
	Symbol string             `json:"symbol"`        // utf-8
	Amount uint64             `json:"amount,string"` // unsigned 0..N
}

// Sum - the auxiliary composite record: two operands and their total
//
// single instance per deployment slot, overwritten wholesale on update
type Sum struct {
	OperandA uint64 `json:"operandA,string"` // unsigned 0..N
	OperandB uint64 `json:"operandB,string"` // unsigned 0..N
	Total    uint64 `json:"total,string"`    // unsigned 0..N
}

// Name - the auxiliary single string register
type Name struct {
	Value string `json:"value"` // utf-8
}

// SumLength - encoded size of a Sum record (three fixed words)
const SumLength = 3 * amountLength
