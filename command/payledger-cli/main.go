// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/meridianpay/payledger/alloc"
	"github.com/meridianpay/payledger/derivation"
	"github.com/meridianpay/payledger/identity"
	"github.com/meridianpay/payledger/instruction"
	"github.com/meridianpay/payledger/ledger"
	"github.com/meridianpay/payledger/namestore"
	"github.com/meridianpay/payledger/record"
	"github.com/meridianpay/payledger/storage"
	"github.com/meridianpay/payledger/sumstore"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// the namespace all record addresses are derived under
var programID = identity.Address(sha3.Sum256([]byte("payledger.program.v1")))

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "debug", HasArg: getoptions.NO_ARGUMENT, Short: 'D'},
		{Long: "data", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'd'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 || 0 == len(arguments) {
		usage(program)
	}

	dataDirectory := "data"
	if len(options["data"]) > 0 {
		dataDirectory = options["data"][0]
	}
	if err = os.MkdirAll(dataDirectory, 0700); nil != err {
		exitwithstatus.Message("%s: cannot create: %q  error: %s", program, dataDirectory, err)
	}

	level := "critical"
	if len(options["debug"]) > 0 {
		level = "debug"
	}

	logging := logger.Configuration{
		Directory: dataDirectory,
		File:      "payledger-cli.log",
		Size:      1048576,
		Count:     10,
		Console:   len(options["verbose"]) > 0,
		Levels: map[string]string{
			logger.DefaultTag: level,
		},
	}

	// start logging
	if err = logger.Initialise(logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	command := arguments[0]
	arguments = arguments[1:]

	// key generation needs no database
	if "generate" == command {
		if 1 != len(arguments) {
			usage(program)
		}
		generate(program, dataDirectory, arguments[0])
		return
	}

	// start of main processing
	err = storage.Initialise(filepath.Join(dataDirectory, "payledger.leveldb"))
	if nil != err {
		exitwithstatus.Message("%s: storage setup failed with error: %s", program, err)
	}
	defer storage.Finalise()

	err = ledger.Initialise(programID, alloc.DefaultRule, true)
	if nil != err {
		exitwithstatus.Message("%s: ledger setup failed with error: %s", program, err)
	}
	defer ledger.Finalise()

	err = sumstore.Initialise(alloc.DefaultRule)
	if nil != err {
		exitwithstatus.Message("%s: sumstore setup failed with error: %s", program, err)
	}
	defer sumstore.Finalise()

	err = namestore.Initialise(alloc.DefaultRule)
	if nil != err {
		exitwithstatus.Message("%s: namestore setup failed with error: %s", program, err)
	}
	defer namestore.Finalise()

	switch command {

	case "faucet":
		if 2 != len(arguments) {
			usage(program)
		}
		owner, _ := loadKey(program, dataDirectory, arguments[0])
		amount := parseAmount(program, arguments[1])

		address := owner.Address()
		held, _ := storage.Pool.Funds.GetN(address[:])
		storage.Pool.Funds.PutN(address[:], held+amount)
		fmt.Printf("funds: %s: %d\n", owner, held+amount)

	case "signup":
		if 2 != len(arguments) {
			usage(program)
		}
		owner, privateKey := loadKey(program, dataDirectory, arguments[0])

		packed, err := (&instruction.RegisterIdentity{Name: arguments[1]}).Pack()
		if nil != err {
			exitwithstatus.Message("%s: pack error: %s", program, err)
		}
		refs := []ledger.Ref{
			signedRef(program, owner, privateKey, packed),
			{Address: derive(program, derivation.UserTag, owner.Address())},
			{},
		}
		if err := ledger.Process(refs, packed); nil != err {
			exitwithstatus.Message("%s: signup failed: %s", program, err)
		}
		fmt.Printf("registered: %s as %q\n", owner, arguments[1])

	case "onramp":
		if 3 != len(arguments) {
			usage(program)
		}
		owner, privateKey := loadKey(program, dataDirectory, arguments[0])
		symbol := arguments[1]
		amount := parseAmount(program, arguments[2])

		packed, err := (&instruction.Credit{Symbol: symbol, Amount: amount}).Pack()
		if nil != err {
			exitwithstatus.Message("%s: pack error: %s", program, err)
		}
		refs := []ledger.Ref{
			signedRef(program, owner, privateKey, packed),
			{Address: derive(program, derivation.UserTag, owner.Address())},
			{Address: derive(program, derivation.BalanceTag, owner.Address(), []byte(symbol)...)},
			{},
		}
		if err := ledger.Process(refs, packed); nil != err {
			exitwithstatus.Message("%s: onramp failed: %s", program, err)
		}
		fmt.Printf("credited: %s %s %d\n", owner, symbol, amount)

	case "transfer":
		if 4 != len(arguments) {
			usage(program)
		}
		owner, privateKey := loadKey(program, dataDirectory, arguments[0])
		recipient, err := identity.FromBase58(arguments[1])
		if nil != err {
			exitwithstatus.Message("%s: recipient decode error: %s", program, err)
		}
		symbol := arguments[2]
		amount := parseAmount(program, arguments[3])

		packed, err := (&instruction.Transfer{
			Symbol:    symbol,
			Amount:    amount,
			Recipient: recipient,
		}).Pack()
		if nil != err {
			exitwithstatus.Message("%s: pack error: %s", program, err)
		}
		refs := []ledger.Ref{
			signedRef(program, owner, privateKey, packed),
			{Address: derive(program, derivation.BalanceTag, owner.Address(), []byte(symbol)...)},
			{Address: derive(program, derivation.BalanceTag, recipient.Address(), []byte(symbol)...)},
			{},
		}
		if err := ledger.Process(refs, packed); nil != err {
			exitwithstatus.Message("%s: transfer failed: %s", program, err)
		}
		fmt.Printf("transferred: %s %d to %s\n", symbol, amount, recipient)

	case "balance":
		if 2 != len(arguments) {
			usage(program)
		}
		owner, _ := loadKey(program, dataDirectory, arguments[0])
		symbol := arguments[1]

		address := derive(program, derivation.BalanceTag, owner.Address(), []byte(symbol)...)
		data := storage.Pool.Balances.Get(address[:])
		if nil == data {
			exitwithstatus.Message("%s: no balance for: %s %s", program, owner, symbol)
		}
		balance, err := record.Packed(data).UnpackBalance(true)
		if nil != err {
			exitwithstatus.Message("%s: unpack error: %s", program, err)
		}
		fmt.Printf("balance: %s %s: %d\n", owner, balance.Symbol, balance.Amount)

	case "sum":
		if 4 != len(arguments) {
			usage(program)
		}
		owner, privateKey := loadKey(program, dataDirectory, arguments[0])
		tag := storeTag(program, arguments[1])
		operandA := parseAmount(program, arguments[2])
		operandB := parseAmount(program, arguments[3])

		packed := sumstore.PackInstruction(tag, operandA, operandB)
		refs := []ledger.Ref{
			signedRef(program, owner, privateKey, packed),
			{Address: derive(program, []byte("sum"), owner.Address())},
			{},
		}
		if err := sumstore.Process(refs, packed); nil != err {
			exitwithstatus.Message("%s: sum failed: %s", program, err)
		}
		fmt.Printf("sum: %s: %d + %d = %d\n", owner, operandA, operandB, operandA+operandB)

	case "note":
		if 3 != len(arguments) {
			usage(program)
		}
		owner, privateKey := loadKey(program, dataDirectory, arguments[0])
		tag := storeTag(program, arguments[1])

		packed := namestore.PackInstruction(tag, arguments[2])
		refs := []ledger.Ref{
			signedRef(program, owner, privateKey, packed),
			{Address: derive(program, []byte("note"), owner.Address())},
			{},
		}
		if err := namestore.Process(refs, packed); nil != err {
			exitwithstatus.Message("%s: note failed: %s", program, err)
		}
		fmt.Printf("note: %s: %q\n", owner, arguments[2])

	default:
		usage(program)
	}
}

func usage(program string) {
	exitwithstatus.Message(strings.Join([]string{
		"usage: " + program + " [--help] [--verbose] [--debug] [--data=DIR] command…",
		"       generate NAME",
		"       faucet NAME AMOUNT",
		"       signup NAME DISPLAY-NAME",
		"       onramp NAME SYMBOL AMOUNT",
		"       transfer NAME RECIPIENT SYMBOL AMOUNT",
		"       balance NAME SYMBOL",
		"       sum NAME init|update A B",
		"       note NAME init|update VALUE",
	}, "\n"))
}

// create a new key pair and store the seed
func generate(program string, dataDirectory string, name string) {
	fileName := keyFileName(dataDirectory, name)
	if _, err := os.Stat(fileName); nil == err {
		exitwithstatus.Message("%s: key already exists: %q", program, fileName)
	}

	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		exitwithstatus.Message("%s: key generation failed: %s", program, err)
	}

	err = ioutil.WriteFile(fileName, []byte(hex.EncodeToString(privateKey.Seed())+"\n"), 0600)
	if nil != err {
		exitwithstatus.Message("%s: cannot write: %q  error: %s", program, fileName, err)
	}

	owner, err := identity.New(publicKey, true)
	if nil != err {
		exitwithstatus.Message("%s: identity error: %s", program, err)
	}
	fmt.Printf("generated: %s\n", owner)
}

// load a stored key pair by name
func loadKey(program string, dataDirectory string, name string) (*identity.Identity, ed25519.PrivateKey) {
	fileName := keyFileName(dataDirectory, name)
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		exitwithstatus.Message("%s: cannot read: %q  error: %s", program, fileName, err)
	}

	seed, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if nil != err || ed25519.SeedSize != len(seed) {
		exitwithstatus.Message("%s: corrupt key file: %q", program, fileName)
	}

	privateKey := ed25519.NewKeyFromSeed(seed)
	owner, err := identity.New(privateKey.Public().(ed25519.PublicKey), true)
	if nil != err {
		exitwithstatus.Message("%s: identity error: %s", program, err)
	}
	return owner, privateKey
}

func keyFileName(dataDirectory string, name string) string {
	return filepath.Join(dataDirectory, name+".key")
}

// init and update share tag values across both auxiliary stores
func storeTag(program string, s string) instruction.TagType {
	switch s {
	case "init":
		return sumstore.InitialiseTag
	case "update":
		return sumstore.UpdateTag
	default:
		usage(program)
		return sumstore.NullTag // unreachable
	}
}

func parseAmount(program string, s string) uint64 {
	amount, err := strconv.ParseUint(s, 10, 64)
	if nil != err {
		exitwithstatus.Message("%s: convert amount error: %s", program, err)
	}
	return amount
}

// sign the instruction payload and verify before marking the
// reference as signed, the same check the call boundary applies
func signedRef(program string, owner *identity.Identity, privateKey ed25519.PrivateKey, message []byte) ledger.Ref {
	signature := identity.Signature(ed25519.Sign(privateKey, message))
	if err := owner.CheckSignature(message, signature); nil != err {
		exitwithstatus.Message("%s: signature check failed: %s", program, err)
	}
	return ledger.Ref{
		Address: owner.Address(),
		Signed:  true,
	}
}

// derive a record address under the program namespace
func derive(program string, tag []byte, primary identity.Address, extra ...byte) identity.Address {
	seeds := [][]byte{primary[:]}
	if len(extra) > 0 {
		seeds = append(seeds, extra)
	}
	address, _, err := derivation.Derive(tag, seeds, programID)
	if nil != err {
		exitwithstatus.Message("%s: derivation error: %s", program, err)
	}
	return address
}
