// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/meridianpay/payledger/fault"
	"github.com/meridianpay/payledger/identity"
	"github.com/meridianpay/payledger/instruction"
	"github.com/meridianpay/payledger/storage"
)

// Ref - one record referenced by a call
//
// Signed is set by the environment when the holder of the address's
// private key authorised this call; it can never be set for a derived
// address as no key exists for one
type Ref struct {
	Address identity.Address
	Signed  bool
}

// required reference counts, in positional order
//
// register identity: signer, identity target, allocator
// credit:            signer, identity target, balance target, allocator
// transfer:          signer, sender balance, recipient balance, allocator
const (
	registerIdentityRefCount = 3
	creditRefCount           = 4
	transferRefCount         = 4
)

// Process - execute one ledger call
//
// unpacks the instruction, routes it by type and commits the staged
// writes only if the whole operation succeeds; a failed call leaves no
// trace in storage
func Process(refs []Ref, data []byte) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	ix, n, err := instruction.Packed(data).Unpack(globalData.testnet)
	if nil != err {
		return err
	}
	if len(data) != n {
		// trailing garbage is not a valid instruction
		return fault.ErrNotInstructionPack
	}

	name, _ := instruction.InstructionName(ix)
	globalData.log.Infof("process: %s", name)

	trx := storage.NewTransaction()

	switch ix := ix.(type) {

	case *instruction.RegisterIdentity:
		if registerIdentityRefCount != len(refs) {
			return fault.ErrWrongReferenceCount
		}
		err = registerIdentity(trx, refs, ix)

	case *instruction.Credit:
		if creditRefCount != len(refs) {
			return fault.ErrWrongReferenceCount
		}
		err = credit(trx, refs, ix)

	case *instruction.Transfer:
		if transferRefCount != len(refs) {
			return fault.ErrWrongReferenceCount
		}
		err = transfer(trx, refs, ix)

	default:
		err = fault.ErrNotInstructionPack
	}

	if nil != err {
		globalData.log.Warnf("process: %s error: %s", name, err)
		return err
	}

	return trx.Commit()
}

// the signature gate: the first reference must carry an authorisation
func requireSigned(ref Ref) error {
	if !ref.Signed {
		return fault.ErrMissingSignature
	}
	return nil
}
