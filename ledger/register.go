// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/meridianpay/payledger/alloc"
	"github.com/meridianpay/payledger/derivation"
	"github.com/meridianpay/payledger/identity"
	"github.com/meridianpay/payledger/instruction"
	"github.com/meridianpay/payledger/record"
	"github.com/meridianpay/payledger/storage"
)

// create the signer's identity record at its derived address
//
// references: [signer, identity target, allocator]
//
// exactly one identity record can ever exist per signer: the target
// address is a pure function of the public key and an occupied slot
// is refused, so a second registration can never succeed
func registerIdentity(trx *storage.Transaction, refs []Ref, ix *instruction.RegisterIdentity) error {

	signerRef := refs[0]
	targetRef := refs[1]

	err := requireSigned(signerRef)
	if nil != err {
		return err
	}

	err = derivation.Verify(
		targetRef.Address,
		derivation.UserTag,
		[][]byte{signerRef.Address[:]},
		globalData.program,
	)
	if nil != err {
		return err
	}

	user := record.User{
		Signer: identity.FromAddress(signerRef.Address, globalData.testnet),
		Name:   ix.Name,
	}
	packed, err := user.Pack()
	if nil != err {
		return err
	}

	err = alloc.Create(trx, storage.Pool.Identities, signerRef.Address, targetRef.Address, uint64(len(packed)), globalData.rule)
	if nil != err {
		return err
	}

	globalData.log.Infof("register identity: %s name: %q", targetRef.Address, ix.Name)
	return alloc.Overwrite(trx, storage.Pool.Identities, targetRef.Address, packed)
}
