// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/meridianpay/payledger/fault"
)

// Transaction - the staged writes of a single call
//
// reads observe the call's own staged writes before falling back to
// the database; Commit applies the whole batch atomically and an
// abandoned transaction leaves the database untouched
type Transaction struct {
	batch  *leveldb.Batch
	staged map[string][]byte
}

// NewTransaction - begin an empty staged write set
func NewTransaction() *Transaction {
	return &Transaction{
		batch:  new(leveldb.Batch),
		staged: make(map[string][]byte),
	}
}

// Put - stage a key/value bytes pair
func (trx *Transaction) Put(p *PoolHandle, key []byte, value []byte) {
	prefixedKey := p.prefixKey(key)
	staged := make([]byte, len(value))
	copy(staged, value)
	trx.batch.Put(prefixedKey, staged)
	trx.staged[string(prefixedKey)] = staged
}

// Get - read through the staged writes, then the database
//
// returns nil when the key is unknown to both
func (trx *Transaction) Get(p *PoolHandle, key []byte) []byte {
	if value, ok := trx.staged[string(p.prefixKey(key))]; ok {
		return value
	}
	return p.Get(key)
}

// Has - check key existence through the staged writes, then the database
func (trx *Transaction) Has(p *PoolHandle, key []byte) bool {
	if _, ok := trx.staged[string(p.prefixKey(key))]; ok {
		return true
	}
	return p.Has(key)
}

// GetN - read a big endian uint64 record through the staged writes
//
// second parameter is false if record was not found
func (trx *Transaction) GetN(p *PoolHandle, key []byte) (uint64, bool) {
	if value, ok := trx.staged[string(p.prefixKey(key))]; ok {
		if 8 != len(value) {
			return 0, false
		}
		return binary.BigEndian.Uint64(value), true
	}
	return p.GetN(key)
}

// PutN - stage a big endian uint64 record
func (trx *Transaction) PutN(p *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	trx.Put(p, key, buffer)
}

// Commit - apply all staged writes as one atomic batch
func (trx *Transaction) Commit() error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return fault.ErrNotInitialised
	}
	return poolData.db.Write(trx.batch, nil)
}
