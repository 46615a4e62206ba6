// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package alloc - provision record slots at derived addresses
//
// provides the two primitives the ledger needs from its environment:
// create a zero-initialised record of known size at a given address,
// funded to the host's required minimum, and overwrite an existing
// record without changing its size
package alloc

import (
	"github.com/meridianpay/payledger/fault"
	"github.com/meridianpay/payledger/identity"
	"github.com/meridianpay/payledger/storage"
)

// FundingRule - the host supplied minimum balance rule
//
// given a record size, returns the native funding amount required to
// keep the record alive indefinitely; the ledger queries this rule
// and never hard-codes a funding constant
type FundingRule interface {
	MinimumBalance(size uint64) uint64
}

// LinearRule - a base amount plus a rate per byte
type LinearRule struct {
	Base    uint64
	PerByte uint64
}

// MinimumBalance - the linear funding requirement
func (rule LinearRule) MinimumBalance(size uint64) uint64 {
	return rule.Base + rule.PerByte*size
}

// DefaultRule - storage overhead of 128 bytes charged at the same per
// byte rate as the record itself
var DefaultRule = LinearRule{
	Base:    128 * 6960,
	PerByte: 6960,
}

// Create - provision a zero-initialised record slot of exactly size
// bytes at the target address
//
// fails if the target already holds data; the funder's native balance
// is debited by the rule's minimum and the debit moves to the new
// record's address
func Create(trx *storage.Transaction, pool *storage.PoolHandle, funder identity.Address, target identity.Address, size uint64, rule FundingRule) error {

	if nil != trx.Get(pool, target[:]) {
		return fault.ErrRecordAlreadyExists
	}

	required := rule.MinimumBalance(size)

	funds, _ := trx.GetN(storage.Pool.Funds, funder[:])
	if funds < required {
		return fault.ErrInsufficientFunding
	}

	held, _ := trx.GetN(storage.Pool.Funds, target[:])
	if held+required < held {
		return fault.ErrBalanceOverflow
	}

	trx.PutN(storage.Pool.Funds, funder[:], funds-required)
	trx.PutN(storage.Pool.Funds, target[:], held+required)
	trx.Put(pool, target[:], make([]byte, size))

	return nil
}

// Overwrite - replace the bytes of an existing record slot
//
// the slot must exist and the replacement must have exactly the
// originally allocated size; length growth is rejected, there is no
// reallocation path
func Overwrite(trx *storage.Transaction, pool *storage.PoolHandle, target identity.Address, data []byte) error {
	existing := trx.Get(pool, target[:])
	if nil == existing || len(existing) != len(data) {
		return fault.ErrRecordSizeMismatch
	}
	trx.Put(pool, target[:], data)
	return nil
}
