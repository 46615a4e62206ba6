// SPDX-License-Identifier: ISC
// Copyright (c) 2025-2026 Meridian Pay Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk record store
//
// maintain separate pools of a common database, each pool being
// prefixed by a single byte; records are keyed by their storage
// address
//
// the ledger relies on this package's Transaction for its atomicity
// guarantee: all writes of one call are staged in a batch and either
// committed as a whole or discarded
package storage
