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

// Package state implements the journaled, checkpointed account state the
// CVM operates on (spec.md §3 "Account", "Journal", "Checkpoint" and §4.8
// "State & Journal"). A StateDB overlays a backing Database with an
// in-memory set of stateObjects; every mutation is recorded in a journal so
// that a nested call or create frame can be rolled back to any earlier
// checkpoint without touching the backing store.
package state

import (
	"math/big"
	"sort"

	"github.com/core-coin/cvm/common"
	"github.com/core-coin/cvm/core/types"
	"github.com/core-coin/cvm/crypto"
)

// StateDB implements vm.StateDB. It holds every account touched during the
// current transaction, plus the journal and checkpoint bookkeeping that
// make RevertToSnapshot possible.
type StateDB struct {
	db Database

	stateObjects map[common.Address]*stateObject

	journal *journal

	refund uint64

	logs    map[common.Hash][]*types.Log
	logSize uint

	preimages map[common.Hash][]byte

	accessList *accessList

	transientStorage map[common.Address]map[common.Hash]common.Hash

	thash common.Hash // current transaction hash, for AddLog bookkeeping

	// err holds the first DatabaseError encountered. Once set, it is
	// fatal: the handler pipeline checks it after the call returns and
	// aborts the whole transaction rather than committing a state built
	// on an incomplete read.
	err error
}

// New returns a StateDB overlaying db, with no accounts yet materialized.
func New(db Database) *StateDB {
	return &StateDB{
		db:               db,
		stateObjects:     make(map[common.Address]*stateObject),
		journal:          newJournal(),
		logs:             make(map[common.Hash][]*types.Log),
		preimages:        make(map[common.Hash][]byte),
		accessList:       newAccessList(),
		transientStorage: make(map[common.Address]map[common.Hash]common.Hash),
	}
}

// Error returns the first DatabaseError the backing store reported, or nil.
func (s *StateDB) Error() error { return s.err }

func (s *StateDB) setError(err error) {
	if s.err == nil {
		s.err = err
	}
}

// SetTxHash sets the transaction hash AddLog stamps onto new logs. The
// handler pipeline does not call it; callers that want logs keyed by
// transaction set it before execution.
func (s *StateDB) SetTxHash(hash common.Hash) { s.thash = hash }

// -- stateObject lookup --------------------------------------------------

func (s *StateDB) getStateObject(addr common.Address) *stateObject {
	if obj, ok := s.stateObjects[addr]; ok {
		return obj
	}
	info, err := s.db.Basic(addr)
	if err != nil {
		s.setError(&DatabaseError{Op: "Basic", Err: err})
		return nil
	}
	if info == nil {
		return nil
	}
	obj := newObject(s, addr, account{Nonce: info.Nonce, Balance: info.Balance, CodeHash: info.CodeHash})
	s.stateObjects[addr] = obj
	return obj
}

func (s *StateDB) getOrNewStateObject(addr common.Address) *stateObject {
	obj := s.getStateObject(addr)
	if obj == nil {
		obj = s.createObject(addr)
	}
	return obj
}

// createObject materializes a brand-new, empty stateObject for addr,
// discarding whatever was there before (used by CreateAccount and by
// CREATE/CREATE2 address-collision handling upstream in core/vm).
func (s *StateDB) createObject(addr common.Address) *stateObject {
	obj := newObject(s, addr, account{Balance: new(big.Int)})
	obj.fresh = true
	s.journal.append(createObjectChange{account: &addr})
	s.stateObjects[addr] = obj
	return obj
}

// CreateAccount materializes addr as a fresh, empty account. Per spec.md's
// CREATE/CREATE2 semantics, any existing balance is preserved across the
// replacement — only nonce, code and storage start over.
func (s *StateDB) CreateAccount(addr common.Address) {
	prev := s.getStateObject(addr)
	newObj := s.createObject(addr)
	if prev != nil {
		newObj.setBalance(prev.Balance())
	}
}

// -- balance / nonce / code ----------------------------------------------

func (s *StateDB) SubBalance(addr common.Address, amount *big.Int) {
	obj := s.getOrNewStateObject(addr)
	if obj != nil {
		obj.subBalance(amount)
	}
}

func (s *StateDB) AddBalance(addr common.Address, amount *big.Int) {
	obj := s.getOrNewStateObject(addr)
	if obj != nil {
		obj.addBalance(amount)
	}
}

func (s *StateDB) GetBalance(addr common.Address) *big.Int {
	if obj := s.getStateObject(addr); obj != nil {
		return obj.Balance()
	}
	return new(big.Int)
}

func (s *StateDB) GetNonce(addr common.Address) uint64 {
	if obj := s.getStateObject(addr); obj != nil {
		return obj.Nonce()
	}
	return 0
}

func (s *StateDB) SetNonce(addr common.Address, nonce uint64) {
	if obj := s.getOrNewStateObject(addr); obj != nil {
		obj.setNonce(nonce)
	}
}

func (s *StateDB) GetCodeHash(addr common.Address) common.Hash {
	if obj := s.getStateObject(addr); obj != nil {
		return obj.data.CodeHash
	}
	return common.Hash{}
}

func (s *StateDB) GetCode(addr common.Address) []byte {
	if obj := s.getStateObject(addr); obj != nil {
		return obj.Code()
	}
	return nil
}

func (s *StateDB) SetCode(addr common.Address, code []byte) {
	if obj := s.getOrNewStateObject(addr); obj != nil {
		obj.setCode(crypto.Keccak256Hash(code), code)
	}
}

func (s *StateDB) GetCodeSize(addr common.Address) int {
	if obj := s.getStateObject(addr); obj != nil {
		return obj.CodeSize()
	}
	return 0
}

// -- refund counter -------------------------------------------------------

func (s *StateDB) AddRefund(gas uint64) {
	s.journal.append(refundChange{prev: s.refund})
	s.refund += gas
}

func (s *StateDB) SubRefund(gas uint64) {
	s.journal.append(refundChange{prev: s.refund})
	if gas > s.refund {
		// Matches the teacher's own defensive panic: a negative refund
		// can only mean a bug in energy accounting upstream.
		panic("state: refund counter below zero")
	}
	s.refund -= gas
}

func (s *StateDB) GetRefund() uint64 { return s.refund }

// -- storage ---------------------------------------------------------------

func (s *StateDB) GetCommittedState(addr common.Address, key common.Hash) common.Hash {
	if obj := s.getStateObject(addr); obj != nil {
		return obj.GetCommittedState(key)
	}
	return common.Hash{}
}

func (s *StateDB) GetState(addr common.Address, key common.Hash) common.Hash {
	if obj := s.getStateObject(addr); obj != nil {
		return obj.GetState(key)
	}
	return common.Hash{}
}

func (s *StateDB) SetState(addr common.Address, key, value common.Hash) {
	if obj := s.getOrNewStateObject(addr); obj != nil {
		obj.SetState(key, value)
	}
}

// ForEachStorage iterates the dirty and committed storage slots known for
// addr this transaction, in ascending key order, calling cb for each until
// cb returns false or every slot has been visited.
func (s *StateDB) ForEachStorage(addr common.Address, cb func(common.Hash, common.Hash) bool) error {
	obj := s.getStateObject(addr)
	if obj == nil {
		return nil
	}
	seen := make(map[common.Hash]bool, len(obj.dirtyStorage)+len(obj.originStorage))
	keys := make([]common.Hash, 0, len(obj.dirtyStorage)+len(obj.originStorage))
	for k := range obj.dirtyStorage {
		keys = append(keys, k)
		seen[k] = true
	}
	for k := range obj.originStorage {
		if !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Hex() < keys[j].Hex() })
	for _, k := range keys {
		if !cb(k, obj.GetState(k)) {
			break
		}
	}
	return s.err
}

// -- suicide / existence ----------------------------------------------------

// Suicide marks addr for removal at the end of the transaction and zeroes
// its balance immediately (spec.md §4.8: a self-destructed account's
// balance is transferred to the beneficiary by the SELFDESTRUCT handler
// before this is called; removal itself is deferred to commit-time state
// clearing). It reports whether addr existed.
func (s *StateDB) Suicide(addr common.Address) bool {
	obj := s.getStateObject(addr)
	if obj == nil {
		return false
	}
	s.journal.append(suicideChange{
		account:     &addr,
		prev:        obj.suicided,
		prevBalance: new(big.Int).Set(obj.Balance()),
	})
	obj.suicided = true
	obj.setBalanceNoJournal(new(big.Int))
	return true
}

func (s *StateDB) HasSuicided(addr common.Address) bool {
	obj := s.getStateObject(addr)
	return obj != nil && obj.suicided
}

func (s *StateDB) Exist(addr common.Address) bool {
	return s.getStateObject(addr) != nil
}

func (s *StateDB) Empty(addr common.Address) bool {
	obj := s.getStateObject(addr)
	return obj == nil || obj.empty()
}

// -- snapshots --------------------------------------------------------------

// Snapshot returns a checkpoint identifying the journal's current length.
// RevertToSnapshot(id) later undoes every change made since.
func (s *StateDB) Snapshot() int { return s.journal.length() }

func (s *StateDB) RevertToSnapshot(id int) { s.journal.revert(s, id) }

// -- logs & preimages --------------------------------------------------------

func (s *StateDB) AddLog(log *types.Log) {
	s.journal.append(addLogChange{txhash: s.thash})
	log.TxHash = s.thash
	log.Index = s.logSize
	s.logs[s.thash] = append(s.logs[s.thash], log)
	s.logSize++
}

// Logs returns every log recorded for the current transaction hash.
func (s *StateDB) Logs() []*types.Log { return s.logs[s.thash] }

func (s *StateDB) AddPreimage(hash common.Hash, preimage []byte) {
	if _, ok := s.preimages[hash]; !ok {
		s.journal.append(addPreimageChange{hash: hash})
		s.preimages[hash] = common.CopyBytes(preimage)
	}
}

func (s *StateDB) Preimages() map[common.Hash][]byte { return s.preimages }

// -- access list --------------------------------------------------------------
//
// Access-list mutations bypass the journal entirely: membership is
// monotonic within a transaction (spec.md §4.8 — "Access-list warmth...
// survives reverts"), so there is nothing for a revert to undo.

func (s *StateDB) AddressInAccessList(addr common.Address) bool {
	return s.accessList.ContainsAddress(addr)
}

func (s *StateDB) SlotInAccessList(addr common.Address, slot common.Hash) (bool, bool) {
	return s.accessList.Contains(addr, slot)
}

func (s *StateDB) AddAddressToAccessList(addr common.Address) {
	s.accessList.AddAddress(addr)
}

func (s *StateDB) AddSlotToAccessList(addr common.Address, slot common.Hash) {
	s.accessList.AddSlot(addr, slot)
}

// ResetAccessList clears warmth. The handler pipeline calls this once, at
// the very start of a transaction — never mid-transaction.
func (s *StateDB) ResetAccessList() { s.accessList = newAccessList() }

// -- transient storage --------------------------------------------------------
//
// Transient storage (spec.md §4.8, CIP-1153-equivalent) is journaled like
// ordinary storage: unlike access-list warmth it is an observable EVM value,
// not a metering bookkeeping detail, so a reverted frame must see it put
// back.

func (s *StateDB) GetTransientState(addr common.Address, key common.Hash) common.Hash {
	return s.transientStorage[addr][key]
}

func (s *StateDB) SetTransientState(addr common.Address, key, value common.Hash) {
	prev := s.GetTransientState(addr, key)
	if prev == value {
		return
	}
	s.journal.append(transientStorageChange{account: &addr, key: key, prevalue: prev})
	s.setTransientState(addr, key, value)
}

func (s *StateDB) setTransientState(addr common.Address, key, value common.Hash) {
	slots, ok := s.transientStorage[addr]
	if !ok {
		slots = make(map[common.Hash]common.Hash)
		s.transientStorage[addr] = slots
	}
	slots[key] = value
}

// ClearTransientStorage drops all transient storage. The handler pipeline
// calls this once, at the end of every transaction (spec.md §4.10 step 8),
// regardless of whether the transaction succeeded.
func (s *StateDB) ClearTransientStorage() {
	s.transientStorage = make(map[common.Address]map[common.Hash]common.Hash)
}

// -- finalize / commit --------------------------------------------------------

// Finalize removes every account marked suicided this transaction. It does
// not apply a state-clearing rule: accounts that end the transaction empty
// but not suicided are kept. It is the in-memory analogue of the teacher's
// IntermediateRoot — with no trie to commit to, all it does is prune
// stateObjects.
func (s *StateDB) Finalize() {
	for addr, obj := range s.stateObjects {
		if obj.suicided {
			delete(s.stateObjects, addr)
		}
	}
}
