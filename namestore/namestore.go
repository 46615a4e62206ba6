// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package namestore - a single string register
//
// one text value per record slot; the slot is sized by the first value
// stored and an update must encode to exactly the allocated size, so
// the register can never grow
package namestore

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

	InitialiseTag = instruction.TagType(iota) // create the record slot and store the first value
	UpdateTag     = instruction.TagType(iota) // replace the value in place

	InvalidTag = instruction.TagType(iota)
)

// references: signer, record slot, allocator
const refCount = 3

// byte sizes for various fields
const maxValueLength = 1024

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

	globalData.log = logger.New("namestore")
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

// Process - execute one name store call
//
// wire format: Varint64 tag, Varint64 length, value bytes; the payload
// must be consumed exactly
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

	tag, value, err := unpack(data)
	if nil != err {
		return err
	}

	name := record.Name{
		Value: value,
	}
	packed, err := name.Pack()
	if nil != err {
		return err
	}

	trx := storage.NewTransaction()

	switch tag {

	case InitialiseTag:
		err = alloc.Create(trx, storage.Pool.Names, refs[0].Address, slot, uint64(len(packed)), globalData.rule)
		if nil != err {
			return err
		}

	case UpdateTag:
		if nil == trx.Get(storage.Pool.Names, slot[:]) {
			return fault.ErrRecordNotFound
		}

	default:
		return fault.ErrNotInstructionPack
	}

	// a value that encodes to any other size than the slot is refused
	err = alloc.Overwrite(trx, storage.Pool.Names, slot, packed)
	if nil != err {
		return err
	}

	globalData.log.Infof("name: %s = %q", slot, value)
	return trx.Commit()
}

func unpack(data []byte) (tag instruction.TagType, value string, e error) {

	defer func() {
		if r := recover(); nil != r {
			e = fault.ErrNotInstructionPack
		}
	}()

	t, n := util.FromVarint64(data)
	if 0 == n {
		return NullTag, "", fault.ErrNotInstructionPack
	}

	valueLength, valueOffset := util.ClippedVarint64(data[n:], 0, 4*maxValueLength)
	if 0 == valueOffset {
		return NullTag, "", fault.ErrNotInstructionPack
	}
	n += valueOffset
	value = string(data[n : n+valueLength])
	n += valueLength

	if len(data) != n {
		return NullTag, "", fault.ErrNotInstructionPack
	}

	return instruction.TagType(t), value, nil
}

// PackInstruction - build the wire form of a name store call
func PackInstruction(tag instruction.TagType, value string) []byte {
	data := util.ToVarint64(uint64(tag))
	data = append(data, util.ToVarint64(uint64(len(value)))...)
	return append(data, value...)
}
