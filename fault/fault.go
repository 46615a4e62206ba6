// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised       = ProcessError("already initialised")
	ErrBalanceOverflow          = ProcessError("balance amount overflow")
	ErrCannotDecodeIdentity     = InvalidError("cannot decode identity")
	ErrChecksumMismatch         = InvalidError("checksum mismatch")
	ErrDerivedAddressMismatch   = InvalidError("derived address mismatch")
	ErrInsufficientFunding      = InvalidError("insufficient funding for allocation")
	ErrInsufficientFunds        = InvalidError("insufficient funds")
	ErrInvalidKeyLength         = InvalidError("invalid key length")
	ErrInvalidKeyType           = InvalidError("invalid key type")
	ErrInvalidOwner             = InvalidError("invalid owner")
	ErrInvalidSignature         = InvalidError("invalid signature")
	ErrMissingSignature         = InvalidError("missing required signature")
	ErrNameTooLong              = LengthError("name too long")
	ErrNoDerivableAddress       = ProcessError("no derivable address for these seeds")
	ErrNotInitialised           = ProcessError("not initialised")
	ErrNotInstructionPack       = InvalidError("not an instruction pack")
	ErrNotPublicKey             = InvalidError("not a public key")
	ErrNotRecordPack            = InvalidError("not a record pack")
	ErrRecordAlreadyExists      = ExistsError("record already exists")
	ErrRecordNotFound           = NotFoundError("record not found")
	ErrRecordSizeMismatch       = LengthError("record size mismatch")
	ErrSumOverflow              = ProcessError("sum overflow")
	ErrSymbolTooLong            = LengthError("symbol too long")
	ErrSymbolTooShort           = LengthError("symbol too short")
	ErrUnknownIdentity          = NotFoundError("identity is not registered")
	ErrValueTooLong             = LengthError("value too long")
	ErrWrongNetworkForPublicKey = InvalidError("wrong network for public key")
	ErrWrongReferenceCount      = InvalidError("wrong number of record references")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
