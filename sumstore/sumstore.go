// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sumstore - a single composite arithmetic record
//
// keeps two operands and their checked total in one record slot; the
// slot address is chosen by the caller at initialise time and every
// later update rewrites the whole record in place
package sumstore

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/meridianpay/payledger/alloc"
	"github.com/meridianpay/payledger/fault"
	"github.com/meridianpay/payledger/instruction"
	"github.com/meridianpay/payledger/ledger"
	"github.com/meridianpay/payledger/record"
	"github.com/meridianpay/payledger/storage"
	"github.com/meridianpay/payledger/util"
)

// instruction type codes
const (
	NullTag = instruction.TagType(iota)

	InitialiseTag = instruction.TagType(iota) // create the record slot and store the first sum
	UpdateTag     = instruction.TagType(iota) // replace operands and recompute the total

	InvalidTag = instruction.TagType(iota)
)

// references: signer, record slot, allocator
const refCount = 3

// globals
type globalDataType struct {
	sync.Mutex
	log         *logger.L
	rule        alloc.FundingRule
	initialised bool
}

var globalData globalDataType

// Initialise - set the funding rule for slot creation
func Initialise(rule alloc.FundingRule) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("sumstore")
	globalData.log.Info("starting…")

	globalData.rule = rule
	globalData.initialised = true
	return nil
}

// Finalise - shut down the store
func Finalise() {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return
	}
	globalData.log.Info("shutting down…")
	globalData.log.Flush()
	globalData.initialised = false
}

// Process - execute one sum store call
//
// wire format: Varint64 tag, operand A, operand B; both operands are
// Varint64 and the payload must be consumed exactly
func Process(refs []ledger.Ref, data []byte) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	if refCount != len(refs) {
		return fault.ErrWrongReferenceCount
	}
	if !refs[0].Signed {
		return fault.ErrMissingSignature
	}
	slot := refs[1].Address

	tag, operandA, operandB, err := unpack(data)
	if nil != err {
		return err
	}

	total := operandA + operandB
	if total < operandA {
		return fault.ErrSumOverflow
	}

	sum := record.Sum{
		OperandA: operandA,
		OperandB: operandB,
		Total:    total,
	}
	packed, err := sum.Pack()
	if nil != err {
		return err
	}

	trx := storage.NewTransaction()

	switch tag {

	case InitialiseTag:
		// the slot is sized from the record about to be written
		err = alloc.Create(trx, storage.Pool.Sums, refs[0].Address, slot, uint64(len(packed)), globalData.rule)
		if nil != err {
			return err
		}

	case UpdateTag:
		if nil == trx.Get(storage.Pool.Sums, slot[:]) {
			return fault.ErrRecordNotFound
		}

	default:
		return fault.ErrNotInstructionPack
	}

	err = alloc.Overwrite(trx, storage.Pool.Sums, slot, packed)
	if nil != err {
		return err
	}

	globalData.log.Infof("sum: %s %d + %d = %d", slot, operandA, operandB, total)
	return trx.Commit()
}

func unpack(data []byte) (instruction.TagType, uint64, uint64, error) {
	tag, n := util.FromVarint64(data)
	if 0 == n {
		return NullTag, 0, 0, fault.ErrNotInstructionPack
	}

	operandA, operandALength := util.FromVarint64(data[n:])
	if 0 == operandALength {
		return NullTag, 0, 0, fault.ErrNotInstructionPack
	}
	n += operandALength

	operandB, operandBLength := util.FromVarint64(data[n:])
	if 0 == operandBLength {
		return NullTag, 0, 0, fault.ErrNotInstructionPack
	}
	n += operandBLength

	if len(data) != n {
		return NullTag, 0, 0, fault.ErrNotInstructionPack
	}

	return instruction.TagType(tag), operandA, operandB, nil
}

// PackInstruction - build the wire form of a sum store call
func PackInstruction(tag instruction.TagType, operandA uint64, operandB uint64) []byte {
	data := util.ToVarint64(uint64(tag))
	data = append(data, util.ToVarint64(operandA)...)
	return append(data, util.ToVarint64(operandB)...)
}
