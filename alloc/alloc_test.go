// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package alloc_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/meridianpay/payledger/alloc"
	"github.com/meridianpay/payledger/fault"
	"github.com/meridianpay/payledger/identity"
	"github.com/meridianpay/payledger/storage"
)

// test database file
const (
	databaseFileName = "test.leveldb"
)

var (
	funder = identity.Address{0x01}
	target = identity.Address{0x02}
)

func removeFiles() {
	os.RemoveAll(databaseFileName)
}

func setup(t *testing.T) {
	removeFiles()
	err := storage.Initialise(databaseFileName)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

func teardown(t *testing.T) {
	storage.Finalise()
	removeFiles()
}

// the linear rule matches the documented formula
func TestLinearRule(t *testing.T) {
	rule := alloc.LinearRule{Base: 100, PerByte: 3}
	if 100 != rule.MinimumBalance(0) {
		t.Fatalf("zero size minimum: %d", rule.MinimumBalance(0))
	}
	if 130 != rule.MinimumBalance(10) {
		t.Fatalf("ten byte minimum: %d", rule.MinimumBalance(10))
	}
}

// create debits the funder and reserves a zero slot
func TestCreate(t *testing.T) {
	setup(t)
	defer teardown(t)

	rule := alloc.LinearRule{Base: 100, PerByte: 1}
	storage.Pool.Funds.PutN(funder[:], 1000)

	trx := storage.NewTransaction()
	err := alloc.Create(trx, storage.Pool.Balances, funder, target, 46, rule)
	if nil != err {
		t.Fatalf("create error: %s", err)
	}
	err = trx.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}

	slot := storage.Pool.Balances.Get(target[:])
	if 46 != len(slot) {
		t.Fatalf("slot length: %d", len(slot))
	}
	if !bytes.Equal(make([]byte, 46), slot) {
		t.Fatalf("slot not zero initialised")
	}

	funds, _ := storage.Pool.Funds.GetN(funder[:])
	if 1000-146 != funds {
		t.Fatalf("funder balance: %d", funds)
	}
	held, _ := storage.Pool.Funds.GetN(target[:])
	if 146 != held {
		t.Fatalf("target holding: %d", held)
	}
}

// an occupied target must be refused
func TestCreateAlreadyExists(t *testing.T) {
	setup(t)
	defer teardown(t)

	rule := alloc.LinearRule{Base: 0, PerByte: 1}
	storage.Pool.Funds.PutN(funder[:], 1000)
	storage.Pool.Balances.Put(target[:], []byte("occupied"))

	trx := storage.NewTransaction()
	err := alloc.Create(trx, storage.Pool.Balances, funder, target, 8, rule)
	if fault.ErrRecordAlreadyExists != err {
		t.Fatalf("wrong error for occupied target: %v", err)
	}
}

// an underfunded funder must be refused
func TestCreateInsufficientFunding(t *testing.T) {
	setup(t)
	defer teardown(t)

	rule := alloc.LinearRule{Base: 100, PerByte: 1}
	storage.Pool.Funds.PutN(funder[:], 99)

	trx := storage.NewTransaction()
	err := alloc.Create(trx, storage.Pool.Balances, funder, target, 10, rule)
	if fault.ErrInsufficientFunding != err {
		t.Fatalf("wrong error for underfunded create: %v", err)
	}

	// nothing was staged for commit
	err = trx.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}
	if nil != storage.Pool.Balances.Get(target[:]) {
		t.Fatalf("slot created despite funding failure")
	}
	funds, _ := storage.Pool.Funds.GetN(funder[:])
	if 99 != funds {
		t.Fatalf("funder balance changed: %d", funds)
	}
}

// overwrite keeps the size fixed
func TestOverwrite(t *testing.T) {
	setup(t)
	defer teardown(t)

	rule := alloc.LinearRule{Base: 0, PerByte: 1}
	storage.Pool.Funds.PutN(funder[:], 1000)

	trx := storage.NewTransaction()
	err := alloc.Create(trx, storage.Pool.Names, funder, target, 4, rule)
	if nil != err {
		t.Fatalf("create error: %s", err)
	}

	err = alloc.Overwrite(trx, storage.Pool.Names, target, []byte{1, 2, 3, 4})
	if nil != err {
		t.Fatalf("overwrite error: %s", err)
	}

	// length growth is rejected
	err = alloc.Overwrite(trx, storage.Pool.Names, target, []byte{1, 2, 3, 4, 5})
	if fault.ErrRecordSizeMismatch != err {
		t.Fatalf("wrong error for grown record: %v", err)
	}

	// a missing slot is rejected
	other := identity.Address{0x99}
	err = alloc.Overwrite(trx, storage.Pool.Names, other, []byte{1})
	if fault.ErrRecordSizeMismatch != err {
		t.Fatalf("wrong error for missing slot: %v", err)
	}

	err = trx.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}
	if !bytes.Equal([]byte{1, 2, 3, 4}, storage.Pool.Names.Get(target[:])) {
		t.Fatalf("overwrite not applied")
	}
}
