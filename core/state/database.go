// Copyright 2020 by the Authors
// This file is part of the go-core library.
//
// The go-core library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-core library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-core library. If not, see <http://www.gnu.org/licenses/>.

package state

import (
	"math/big"

	"github.com/core-coin/cvm/common"
)

// AccountInfo is the account shape the backing store hands back on a
// basic() lookup: balance, nonce and a code hash, but never the code body
// itself (that is a separate, hash-addressed lookup so unrelated accounts
// sharing a code hash don't duplicate it in storage).
//
// A nil *AccountInfo (no error) means the account does not exist. That is
// distinct from the zero AccountInfo, which is an existing, empty account
// (balance, nonce and code all zero) — the distinction this package's
// caller (StateDB) needs to apply the state-clearing rule at the Spurious
// Dragon-equivalent boundary.
type AccountInfo struct {
	Balance  *big.Int
	Nonce    uint64
	CodeHash common.Hash
}

// Database is the backing store interface the journaled state overlays.
// It is the sole channel through which the engine reads state that it did
// not itself write earlier in the same transaction. Every method is
// fallible with a generic, opaque error: a Database error is a fatal
// condition distinct from an in-VM revert (see DatabaseError).
type Database interface {
	// Basic returns account info for addr, or (nil, nil) if the account
	// does not exist.
	Basic(addr common.Address) (*AccountInfo, error)
	// CodeByHash returns the code whose hash is hash, or nil if hash is
	// the hash of empty code.
	CodeByHash(hash common.Hash) ([]byte, error)
	// Storage returns the value stored at (addr, key), or the zero hash
	// if the slot has never been written.
	Storage(addr common.Address, key common.Hash) (common.Hash, error)
	// BlockHash returns the hash of the block numbered number, if it is
	// one of the most recent 256 blocks preceding the current one, or
	// the zero hash otherwise.
	BlockHash(number uint64) (common.Hash, error)
}

// DatabaseError wraps a failure reported by the backing store. It is
// propagated unchanged through the handler pipeline, aborting the whole
// transaction without committing — distinct from any in-VM Halt or Revert,
// which are frame-local results the pipeline resolves on its own.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string { return "state: " + e.Op + ": " + e.Err.Error() }
func (e *DatabaseError) Unwrap() error { return e.Err }

// NoopDatabase is a backing store with no accounts, no code and no
// history: every account is nonexistent, every slot is zero, every block
// hash is zero. It is the Go analogue of the empty default database
// test-tooling idiom (an explicit always-empty backing store rather than a
// hand-rolled stub per test file), useful on its own and to embed in a
// richer fake that only wants to override a few methods.
type NoopDatabase struct{}

func (NoopDatabase) Basic(common.Address) (*AccountInfo, error)        { return nil, nil }
func (NoopDatabase) CodeByHash(common.Hash) ([]byte, error)            { return nil, nil }
func (NoopDatabase) Storage(common.Address, common.Hash) (common.Hash, error) {
	return common.Hash{}, nil
}
func (NoopDatabase) BlockHash(uint64) (common.Hash, error) { return common.Hash{}, nil }

// MemoryDatabase is a simple in-memory backing store: a fixed snapshot of
// accounts, code and recent block hashes. It never errors. Tests and
// standalone drivers construct one directly rather than through a trie or
// disk-backed layer, since persistence and historical-state indexing are
// out of this module's scope.
type MemoryDatabase struct {
	accounts   map[common.Address]AccountInfo
	code       map[common.Hash][]byte
	storage    map[common.Address]map[common.Hash]common.Hash
	blockHashes map[uint64]common.Hash
}

// NewMemoryDatabase returns an empty MemoryDatabase ready for Set* calls.
func NewMemoryDatabase() *MemoryDatabase {
	return &MemoryDatabase{
		accounts:    make(map[common.Address]AccountInfo),
		code:        make(map[common.Hash][]byte),
		storage:     make(map[common.Address]map[common.Hash]common.Hash),
		blockHashes: make(map[uint64]common.Hash),
	}
}

func (db *MemoryDatabase) SetAccount(addr common.Address, info AccountInfo) {
	db.accounts[addr] = info
}

func (db *MemoryDatabase) SetCode(hash common.Hash, code []byte) {
	db.code[hash] = code
}

func (db *MemoryDatabase) SetStorage(addr common.Address, key, value common.Hash) {
	slots, ok := db.storage[addr]
	if !ok {
		slots = make(map[common.Hash]common.Hash)
		db.storage[addr] = slots
	}
	slots[key] = value
}

func (db *MemoryDatabase) SetBlockHash(number uint64, hash common.Hash) {
	db.blockHashes[number] = hash
}

func (db *MemoryDatabase) Basic(addr common.Address) (*AccountInfo, error) {
	info, ok := db.accounts[addr]
	if !ok {
		return nil, nil
	}
	cp := info
	if cp.Balance == nil {
		cp.Balance = new(big.Int)
	} else {
		cp.Balance = new(big.Int).Set(cp.Balance)
	}
	return &cp, nil
}

func (db *MemoryDatabase) CodeByHash(hash common.Hash) ([]byte, error) {
	return db.code[hash], nil
}

func (db *MemoryDatabase) Storage(addr common.Address, key common.Hash) (common.Hash, error) {
	slots, ok := db.storage[addr]
	if !ok {
		return common.Hash{}, nil
	}
	return slots[key], nil
}

func (db *MemoryDatabase) BlockHash(number uint64) (common.Hash, error) {
	return db.blockHashes[number], nil
}
