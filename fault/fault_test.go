// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/meridianpay/payledger/fault"
)

// test that error classes are correctly detected
func TestClassification(t *testing.T) {

	items := []struct {
		err        error
		isExists   bool
		isInvalid  bool
		isLength   bool
		isNotFound bool
		isProcess  bool
	}{
		{fault.ErrRecordAlreadyExists, true, false, false, false, false},
		{fault.ErrMissingSignature, false, true, false, false, false},
		{fault.ErrDerivedAddressMismatch, false, true, false, false, false},
		{fault.ErrInsufficientFunds, false, true, false, false, false},
		{fault.ErrRecordSizeMismatch, false, false, true, false, false},
		{fault.ErrUnknownIdentity, false, false, false, true, false},
		{fault.ErrBalanceOverflow, false, false, false, false, true},
	}

	for i, item := range items {
		if fault.IsErrExists(item.err) != item.isExists {
			t.Errorf("%d: wrong exists classification for: %v", i, item.err)
		}
		if fault.IsErrInvalid(item.err) != item.isInvalid {
			t.Errorf("%d: wrong invalid classification for: %v", i, item.err)
		}
		if fault.IsErrLength(item.err) != item.isLength {
			t.Errorf("%d: wrong length classification for: %v", i, item.err)
		}
		if fault.IsErrNotFound(item.err) != item.isNotFound {
			t.Errorf("%d: wrong not-found classification for: %v", i, item.err)
		}
		if fault.IsErrProcess(item.err) != item.isProcess {
			t.Errorf("%d: wrong process classification for: %v", i, item.err)
		}
	}
}

// singleton comparison must work with plain equality
func TestComparison(t *testing.T) {
	err := func() error { return fault.ErrBalanceOverflow }()
	if fault.ErrBalanceOverflow != err {
		t.Fatalf("singleton comparison failed")
	}
	if "balance amount overflow" != err.Error() {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
