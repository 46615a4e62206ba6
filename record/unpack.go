// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/binary"

	"github.com/meridianpay/payledger/fault"
	"github.com/meridianpay/payledger/identity"
	"github.com/meridianpay/payledger/util"
)

// UnpackUser - turn a stored byte slice back into a User record
//
// the buffer must be consumed exactly; out of bounds access on a
// truncated record is converted to an error by the recover guard
func (buffer Packed) UnpackUser(testnet bool) (user *User, e error) {

	defer func() {
		if r := recover(); nil != r {
			e = fault.ErrNotRecordPack
		}
	}()

	signer, n, err := unpackIdentity(buffer, 0, testnet)
	if nil != err {
		return nil, err
	}

	name, n, err := unpackString(buffer, n, 0, 4*maxNameLength)
	if nil != err {
		return nil, err
	}

	if len(buffer) != n {
		return nil, fault.ErrNotRecordPack
	}

	return &User{
		Signer: signer,
		Name:   name,
	}, nil
}

// UnpackBalance - turn a stored byte slice back into a Balance record
func (buffer Packed) UnpackBalance(testnet bool) (balance *Balance, e error) {

	defer func() {
		if r := recover(); nil != r {
			e = fault.ErrNotRecordPack
		}
	}()

	owner, n, err := unpackIdentity(buffer, 0, testnet)
	if nil != err {
		return nil, err
	}

	symbol, n, err := unpackString(buffer, n, minSymbolLength, 4*maxSymbolLength)
	if nil != err {
		return nil, err
	}

	if len(buffer) != n+amountLength {
		return nil, fault.ErrNotRecordPack
	}
	amount := binary.BigEndian.Uint64(buffer[n : n+amountLength])

	return &Balance{
		Owner:  owner,
		Symbol: symbol,
		Amount: amount,
	}, nil
}

// UnpackSum - turn a stored byte slice back into a Sum record
func (buffer Packed) UnpackSum() (*Sum, error) {
	if SumLength != len(buffer) {
		return nil, fault.ErrNotRecordPack
	}
	return &Sum{
		OperandA: binary.BigEndian.Uint64(buffer[0:8]),
		OperandB: binary.BigEndian.Uint64(buffer[8:16]),
		Total:    binary.BigEndian.Uint64(buffer[16:24]),
	}, nil
}

// UnpackName - turn a stored byte slice back into a Name record
func (buffer Packed) UnpackName() (name *Name, e error) {

	defer func() {
		if r := recover(); nil != r {
			e = fault.ErrNotRecordPack
		}
	}()

	value, n, err := unpackString(buffer, 0, 0, 4*maxValueLength)
	if nil != err {
		return nil, err
	}
	if len(buffer) != n {
		return nil, fault.ErrNotRecordPack
	}
	return &Name{
		Value: value,
	}, nil
}

// read a length-prefixed identity starting at offset n
func unpackIdentity(buffer Packed, n int, testnet bool) (*identity.Identity, int, error) {
	idLength, idOffset := util.ClippedVarint64(buffer[n:], 1, 64)
	if 0 == idOffset {
		return nil, 0, fault.ErrNotRecordPack
	}
	n += idOffset
	id, err := identity.FromBytes(buffer[n : n+idLength])
	if nil != err {
		return nil, 0, err
	}
	if id.IsTesting() != testnet {
		return nil, 0, fault.ErrWrongNetworkForPublicKey
	}
	n += idLength
	return id, n, nil
}

// read a length-prefixed text field starting at offset n
//
// note: a zero length is valid when minimum is zero
func unpackString(buffer Packed, n int, minimum int, maximum int) (string, int, error) {
	textLength, textOffset := util.ClippedVarint64(buffer[n:], minimum, maximum)
	if 0 == textOffset {
		return "", 0, fault.ErrNotRecordPack
	}
	n += textOffset
	s := string(buffer[n : n+textLength])
	n += textLength
	return s, n, nil
}
