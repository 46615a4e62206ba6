// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/meridianpay/payledger/alloc"
	"github.com/meridianpay/payledger/derivation"
	"github.com/meridianpay/payledger/fault"
	"github.com/meridianpay/payledger/identity"
	"github.com/meridianpay/payledger/instruction"
	"github.com/meridianpay/payledger/record"
	"github.com/meridianpay/payledger/storage"
)

// add an amount to the signer's balance for one symbol
//
// references: [signer, identity target, balance target, allocator]
//
// the signer must have registered an identity first; the balance
// record is created on first use and incremented with checked
// arithmetic afterwards
func credit(trx *storage.Transaction, refs []Ref, ix *instruction.Credit) error {

	signerRef := refs[0]
	userRef := refs[1]
	balanceRef := refs[2]

	err := requireSigned(signerRef)
	if nil != err {
		return err
	}

	err = verifyUser(trx, signerRef.Address, userRef.Address)
	if nil != err {
		return err
	}

	err = derivation.Verify(
		balanceRef.Address,
		derivation.BalanceTag,
		[][]byte{signerRef.Address[:], []byte(ix.Symbol)},
		globalData.program,
	)
	if nil != err {
		return err
	}

	existing := trx.Get(storage.Pool.Balances, balanceRef.Address[:])
	if nil == existing {
		// first credit for this (owner, symbol) pair
		balance := record.Balance{
			Owner:  identity.FromAddress(signerRef.Address, globalData.testnet),
			Symbol: ix.Symbol,
			Amount: ix.Amount,
		}
		packed, err := balance.Pack()
		if nil != err {
			return err
		}
		err = alloc.Create(trx, storage.Pool.Balances, signerRef.Address, balanceRef.Address, uint64(len(packed)), globalData.rule)
		if nil != err {
			return err
		}
		globalData.log.Infof("credit: new balance %s %s %d", balanceRef.Address, ix.Symbol, ix.Amount)
		return alloc.Overwrite(trx, storage.Pool.Balances, balanceRef.Address, packed)
	}

	balance, err := record.Packed(existing).UnpackBalance(globalData.testnet)
	if nil != err {
		return err
	}

	amount, ok := checkedAdd(balance.Amount, ix.Amount)
	if !ok {
		return fault.ErrBalanceOverflow
	}
	balance.Amount = amount

	packed, err := balance.Pack()
	if nil != err {
		return err
	}

	globalData.log.Infof("credit: %s %s +%d = %d", balanceRef.Address, ix.Symbol, ix.Amount, amount)
	return alloc.Overwrite(trx, storage.Pool.Balances, balanceRef.Address, packed)
}

// check that the signer's identity record exists, sits at its derived
// address and names this signer
func verifyUser(trx *storage.Transaction, signer identity.Address, claimed identity.Address) error {

	err := derivation.Verify(
		claimed,
		derivation.UserTag,
		[][]byte{signer[:]},
		globalData.program,
	)
	if nil != err {
		return err
	}

	data := trx.Get(storage.Pool.Identities, claimed[:])
	if nil == data {
		return fault.ErrUnknownIdentity
	}

	user, err := record.Packed(data).UnpackUser(globalData.testnet)
	if nil != err {
		return err
	}
	if user.Signer.Address() != signer {
		return fault.ErrUnknownIdentity
	}
	return nil
}
