// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record_test

import (
	"reflect"
	"testing"

	"golang.org/x/crypto/ed25519"

	"github.com/meridianpay/payledger/fault"
	"github.com/meridianpay/payledger/identity"
	"github.com/meridianpay/payledger/record"
)

func makeIdentity(t *testing.T, fill byte) *identity.Identity {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = fill + byte(i)
	}
	privateKey := ed25519.NewKeyFromSeed(seed)
	id, err := identity.New(privateKey.Public().(ed25519.PublicKey), true)
	if nil != err {
		t.Fatalf("new identity error: %s", err)
	}
	return id
}

// pack → unpack must be the identity transformation
func TestUserRoundTrip(t *testing.T) {
	r := record.User{
		Signer: makeIdentity(t, 0x11),
		Name:   "alice",
	}

	packed, err := r.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}

	unpacked, err := packed.UnpackUser(true)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if !reflect.DeepEqual(r, *unpacked) {
		t.Fatalf("different, original: %v  recovered: %v", r, *unpacked)
	}
}

// empty display name is valid
func TestUserEmptyName(t *testing.T) {
	r := record.User{
		Signer: makeIdentity(t, 0x22),
		Name:   "",
	}

	packed, err := r.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	unpacked, err := packed.UnpackUser(true)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if "" != unpacked.Name {
		t.Fatalf("unexpected name: %q", unpacked.Name)
	}
}

func TestBalanceRoundTrip(t *testing.T) {
	r := record.Balance{
		Owner:  makeIdentity(t, 0x33),
		Symbol: "USD",
		Amount: 1500,
	}

	packed, err := r.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}

	unpacked, err := packed.UnpackBalance(true)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if !reflect.DeepEqual(r, *unpacked) {
		t.Fatalf("different, original: %v  recovered: %v", r, *unpacked)
	}
}

// amount changes must not change the encoded size
func TestBalanceSizeStable(t *testing.T) {
	r := record.Balance{
		Owner:  makeIdentity(t, 0x44),
		Symbol: "MERIDIAN",
		Amount: 0,
	}

	small, err := r.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}

	r.Amount = 0xffffffffffffffff
	large, err := r.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}

	if len(small) != len(large) {
		t.Fatalf("encoded size changed with amount: %d vs %d", len(small), len(large))
	}
}

func TestSumRoundTrip(t *testing.T) {
	r := record.Sum{
		OperandA: 7,
		OperandB: 35,
		Total:    42,
	}

	packed, err := r.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	if record.SumLength != len(packed) {
		t.Fatalf("packed length: %d  expected: %d", len(packed), record.SumLength)
	}

	unpacked, err := packed.UnpackSum()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if !reflect.DeepEqual(r, *unpacked) {
		t.Fatalf("different, original: %v  recovered: %v", r, *unpacked)
	}
}

func TestNameRoundTrip(t *testing.T) {
	r := record.Name{
		Value: "a name register value",
	}

	packed, err := r.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	unpacked, err := packed.UnpackName()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if !reflect.DeepEqual(r, *unpacked) {
		t.Fatalf("different, original: %v  recovered: %v", r, *unpacked)
	}
}

// pack validation failures
func TestPackErrors(t *testing.T) {
	noOwner := record.Balance{Symbol: "USD", Amount: 1}
	_, err := noOwner.Pack()
	if fault.ErrInvalidOwner != err {
		t.Fatalf("wrong error for missing owner: %v", err)
	}

	emptySymbol := record.Balance{Owner: makeIdentity(t, 0x55), Symbol: "", Amount: 1}
	_, err = emptySymbol.Pack()
	if fault.ErrSymbolTooShort != err {
		t.Fatalf("wrong error for empty symbol: %v", err)
	}

	longSymbol := record.Balance{Owner: makeIdentity(t, 0x55), Symbol: "ABCDEFGHIJKLMNOPQ", Amount: 1}
	_, err = longSymbol.Pack()
	if fault.ErrSymbolTooLong != err {
		t.Fatalf("wrong error for long symbol: %v", err)
	}
}

// malformed and truncated buffers must fail cleanly
func TestUnpackErrors(t *testing.T) {
	r := record.Balance{
		Owner:  makeIdentity(t, 0x66),
		Symbol: "USD",
		Amount: 99,
	}
	packed, err := r.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}

	for n := 0; n < len(packed); n += 1 {
		// fresh copy so the unpacker cannot read past the
		// truncation point into the original backing array
		truncated := append(record.Packed{}, packed[:n]...)
		_, err := truncated.UnpackBalance(true)
		if nil == err {
			t.Errorf("truncation to %d bytes accepted", n)
		}
	}

	// trailing garbage is also a decode failure
	_, err = append(record.Packed{}, append(packed, 0x00)...).UnpackBalance(true)
	if nil == err {
		t.Fatalf("trailing bytes accepted")
	}

	// mainnet record on a testnet store
	_, err = packed.UnpackBalance(false)
	if fault.ErrWrongNetworkForPublicKey != err {
		t.Fatalf("wrong error for network mismatch: %v", err)
	}

	_, err = record.Packed{}.UnpackUser(true)
	if nil == err {
		t.Fatalf("empty user record accepted")
	}

	_, err = record.Packed{1, 2, 3}.UnpackSum()
	if fault.ErrNotRecordPack != err {
		t.Fatalf("wrong error for short sum record: %v", err)
	}
}
