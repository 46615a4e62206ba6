// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/meridianpay/payledger/alloc"
	"github.com/meridianpay/payledger/derivation"
	"github.com/meridianpay/payledger/identity"
	"github.com/meridianpay/payledger/instruction"
	"github.com/meridianpay/payledger/ledger"
	"github.com/meridianpay/payledger/record"
	"github.com/meridianpay/payledger/storage"
)

// test files
const (
	testingDirName   = "testing"
	databaseFileName = testingDirName + "/test.leveldb"
)

var (
	testProgram = identity.Address{'p', 'a', 'y', 'l', 'e', 'd', 'g', 'e', 'r'}
	testRule    = alloc.LinearRule{Base: 10, PerByte: 1}
)

func TestMain(m *testing.M) {
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if err := logger.Initialise(logging); nil != err {
		panic(fmt.Sprintf("logger initialise failed: %s", err))
	}

	rc := m.Run()

	logger.Finalise()
	os.RemoveAll(testingDirName)
	os.Exit(rc)
}

// configure for testing
func setup(t *testing.T) {
	os.RemoveAll(databaseFileName)
	err := storage.Initialise(databaseFileName)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	err = ledger.Initialise(testProgram, testRule, true)
	if nil != err {
		t.Fatalf("ledger initialise error: %s", err)
	}
}

// post test cleanup
func teardown(t *testing.T) {
	ledger.Finalise()
	storage.Finalise()
	os.RemoveAll(databaseFileName)
}

// an address filled with one byte value stands in for a public key
func newSigner(seed byte) identity.Address {
	var address identity.Address
	for i := range address {
		address[i] = seed
	}
	return address
}

func userAddress(t *testing.T, signer identity.Address) identity.Address {
	address, _, err := derivation.Derive(derivation.UserTag, [][]byte{signer[:]}, testProgram)
	if nil != err {
		t.Fatalf("derive user address error: %s", err)
	}
	return address
}

func balanceAddress(t *testing.T, owner identity.Address, symbol string) identity.Address {
	address, _, err := derivation.Derive(derivation.BalanceTag, [][]byte{owner[:], []byte(symbol)}, testProgram)
	if nil != err {
		t.Fatalf("derive balance address error: %s", err)
	}
	return address
}

func fund(address identity.Address, amount uint64) {
	storage.Pool.Funds.PutN(address[:], amount)
}

func doRegister(t *testing.T, signer identity.Address, name string) error {
	packed, err := (&instruction.RegisterIdentity{Name: name}).Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	refs := []ledger.Ref{
		{Address: signer, Signed: true},
		{Address: userAddress(t, signer)},
		{},
	}
	return ledger.Process(refs, packed)
}

func doCredit(t *testing.T, signer identity.Address, symbol string, amount uint64) error {
	packed, err := (&instruction.Credit{Symbol: symbol, Amount: amount}).Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	refs := []ledger.Ref{
		{Address: signer, Signed: true},
		{Address: userAddress(t, signer)},
		{Address: balanceAddress(t, signer, symbol)},
		{},
	}
	return ledger.Process(refs, packed)
}

func doTransfer(t *testing.T, signer identity.Address, recipient identity.Address, symbol string, amount uint64) error {
	packed, err := (&instruction.Transfer{
		Symbol:    symbol,
		Amount:    amount,
		Recipient: identity.FromAddress(recipient, true),
	}).Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	refs := []ledger.Ref{
		{Address: signer, Signed: true},
		{Address: balanceAddress(t, signer, symbol)},
		{Address: balanceAddress(t, recipient, symbol)},
		{},
	}
	return ledger.Process(refs, packed)
}

// read a committed balance amount back from storage
func balanceAmount(t *testing.T, owner identity.Address, symbol string) uint64 {
	address := balanceAddress(t, owner, symbol)
	data := storage.Pool.Balances.Get(address[:])
	if nil == data {
		t.Fatalf("no balance record for %s %s", owner, symbol)
	}
	balance, err := record.Packed(data).UnpackBalance(true)
	if nil != err {
		t.Fatalf("unpack balance error: %s", err)
	}
	return balance.Amount
}
