// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/meridianpay/payledger/alloc"
	"github.com/meridianpay/payledger/derivation"
	"github.com/meridianpay/payledger/fault"
	"github.com/meridianpay/payledger/instruction"
	"github.com/meridianpay/payledger/record"
	"github.com/meridianpay/payledger/storage"
)

// move an amount between two balances of the same symbol
//
// references: [signer, sender balance, recipient balance, allocator]
//
// the debit happens before the credit and both are staged in the same
// transaction, so a failure at any point rolls back the whole move; a
// self transfer debits and credits the same staged record and leaves
// the amount unchanged
func transfer(trx *storage.Transaction, refs []Ref, ix *instruction.Transfer) error {

	signerRef := refs[0]
	senderRef := refs[1]
	recipientRef := refs[2]

	err := requireSigned(signerRef)
	if nil != err {
		return err
	}

	err = derivation.Verify(
		senderRef.Address,
		derivation.BalanceTag,
		[][]byte{signerRef.Address[:], []byte(ix.Symbol)},
		globalData.program,
	)
	if nil != err {
		return err
	}

	recipientAddress := ix.Recipient.Address()
	err = derivation.Verify(
		recipientRef.Address,
		derivation.BalanceTag,
		[][]byte{recipientAddress[:], []byte(ix.Symbol)},
		globalData.program,
	)
	if nil != err {
		return err
	}

	// debit the sender
	data := trx.Get(storage.Pool.Balances, senderRef.Address[:])
	if nil == data {
		return fault.ErrInsufficientFunds
	}
	sender, err := record.Packed(data).UnpackBalance(globalData.testnet)
	if nil != err {
		return err
	}

	remaining, ok := checkedSub(sender.Amount, ix.Amount)
	if !ok {
		return fault.ErrInsufficientFunds
	}
	sender.Amount = remaining

	packed, err := sender.Pack()
	if nil != err {
		return err
	}
	err = alloc.Overwrite(trx, storage.Pool.Balances, senderRef.Address, packed)
	if nil != err {
		return err
	}

	// credit the recipient; on a self transfer this reads back the
	// debited record just staged above
	data = trx.Get(storage.Pool.Balances, recipientRef.Address[:])
	if nil == data {
		balance := record.Balance{
			Owner:  ix.Recipient,
			Symbol: ix.Symbol,
			Amount: ix.Amount,
		}
		packed, err := balance.Pack()
		if nil != err {
			return err
		}
		err = alloc.Create(trx, storage.Pool.Balances, signerRef.Address, recipientRef.Address, uint64(len(packed)), globalData.rule)
		if nil != err {
			return err
		}
		globalData.log.Infof("transfer: %s %s %d to new %s", senderRef.Address, ix.Symbol, ix.Amount, recipientRef.Address)
		return alloc.Overwrite(trx, storage.Pool.Balances, recipientRef.Address, packed)
	}

	recipient, err := record.Packed(data).UnpackBalance(globalData.testnet)
	if nil != err {
		return err
	}

	amount, ok := checkedAdd(recipient.Amount, ix.Amount)
	if !ok {
		return fault.ErrBalanceOverflow
	}
	recipient.Amount = amount

	packed, err = recipient.Pack()
	if nil != err {
		return err
	}

	globalData.log.Infof("transfer: %s %s %d to %s", senderRef.Address, ix.Symbol, ix.Amount, recipientRef.Address)
	return alloc.Overwrite(trx, storage.Pool.Balances, recipientRef.Address, packed)
}
