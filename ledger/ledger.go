// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the derived-address account ledger
//
// maps (owner, symbol) pairs to balance records at reproducible
// storage addresses and mutates them under signature, derivation and
// checked-arithmetic rules
//
// every call is a single synchronous unit: all writes are staged in a
// storage transaction and committed only when the whole operation
// succeeds
package ledger

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/meridianpay/payledger/alloc"
	"github.com/meridianpay/payledger/fault"
	"github.com/meridianpay/payledger/identity"
)

// globals
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	testnet     bool
	program     identity.Address
	rule        alloc.FundingRule
	initialised bool
}

// global storage
var globalData globalDataType

// Initialise - set the program namespace and funding rule
//
// this must be called before any call is processed
func Initialise(program identity.Address, rule alloc.FundingRule, testnet bool) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("ledger")
	globalData.log.Info("starting…")

	globalData.program = program
	globalData.rule = rule
	globalData.testnet = testnet
	globalData.initialised = true

	return nil
}

// Finalise - shut down the ledger
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

// checked addition; the second result is false on wraparound
func checkedAdd(a uint64, b uint64) (uint64, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// checked subtraction; the second result is false on underflow
func checkedSub(a uint64, b uint64) (uint64, bool) {
	if b > a {
		return 0, false
	}
	return a - b, true
}
