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
	"github.com/core-coin/cvm/crypto"
)

// account is the per-address data the journal mutates directly. It mirrors
// the three consensus fields spec.md §3 assigns an Account: balance, nonce,
// code hash — code itself is addressed separately, by hash.
type account struct {
	Nonce    uint64
	Balance  *big.Int
	CodeHash common.Hash
}

// stateObject is the in-memory representation of one account for the
// duration of a transaction. It is materialized on first touch from the
// backing Database and mutated only through the journal: every field the
// journal can change has a corresponding journalEntry that knows how to
// put it back.
type stateObject struct {
	db      *StateDB
	address common.Address
	data    account

	// code is loaded lazily from the backing store on first access and
	// cached here; codeHash is the authoritative reference until then.
	code []byte

	// originStorage holds values read from the backing store this
	// transaction, serving as each slot's "original" value for the
	// SSTORE net-metering rule (spec.md §4.2) — it is never mutated by
	// SetState, only populated by GetCommittedState.
	originStorage map[common.Hash]common.Hash
	// dirtyStorage holds values written by SetState this transaction;
	// it is what GetState consults first.
	dirtyStorage map[common.Hash]common.Hash

	// fresh is true for an account created by CreateAccount during this
	// transaction — a state-object journal entry created it out of thin
	// air rather than loading it from the backing store.
	fresh bool
	// suicided marks the account for deletion at transaction end, subject
	// to the state-clearing rule (spec.md §4.8).
	suicided bool
}

func newObject(db *StateDB, address common.Address, data account) *stateObject {
	if data.Balance == nil {
		data.Balance = new(big.Int)
	}
	if data.CodeHash == (common.Hash{}) {
		data.CodeHash = emptyCodeHash
	}
	return &stateObject{
		db:            db,
		address:       address,
		data:          data,
		originStorage: make(map[common.Hash]common.Hash),
		dirtyStorage:  make(map[common.Hash]common.Hash),
	}
}

func (s *stateObject) empty() bool {
	return s.data.Nonce == 0 && s.data.Balance.Sign() == 0 && s.data.CodeHash == emptyCodeHash
}

func (s *stateObject) touch() {
	s.db.journal.append(touchChange{account: &s.address})
}

func (s *stateObject) setBalance(amount *big.Int) {
	s.db.journal.append(balanceChange{account: &s.address, prev: new(big.Int).Set(s.data.Balance)})
	s.setBalanceNoJournal(amount)
}

func (s *stateObject) setBalanceNoJournal(amount *big.Int) {
	s.data.Balance = amount
}

func (s *stateObject) addBalance(amount *big.Int) {
	if amount.Sign() == 0 {
		if s.empty() {
			s.touch()
		}
		return
	}
	s.setBalance(new(big.Int).Add(s.Balance(), amount))
}

func (s *stateObject) subBalance(amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	s.setBalance(new(big.Int).Sub(s.Balance(), amount))
}

func (s *stateObject) setNonce(nonce uint64) {
	s.db.journal.append(nonceChange{account: &s.address, prev: s.data.Nonce})
	s.setNonceNoJournal(nonce)
}

func (s *stateObject) setNonceNoJournal(nonce uint64) {
	s.data.Nonce = nonce
}

func (s *stateObject) setCode(codeHash common.Hash, code []byte) {
	s.db.journal.append(codeChange{account: &s.address, prevHash: s.data.CodeHash, prevCode: s.code})
	s.setCodeNoJournal(codeHash, code)
}

func (s *stateObject) setCodeNoJournal(codeHash common.Hash, code []byte) {
	s.code = code
	s.data.CodeHash = codeHash
}

func (s *stateObject) Balance() *big.Int { return s.data.Balance }
func (s *stateObject) Nonce() uint64     { return s.data.Nonce }

func (s *stateObject) Code() []byte {
	if s.code != nil {
		return s.code
	}
	if s.data.CodeHash == emptyCodeHash {
		return nil
	}
	code, err := s.db.db.CodeByHash(s.data.CodeHash)
	if err != nil {
		s.db.setError(&DatabaseError{Op: "CodeByHash", Err: err})
		return nil
	}
	s.code = code
	return code
}

func (s *stateObject) CodeSize() int { return len(s.Code()) }

// GetCommittedState returns the slot's value as of the start of the
// transaction (its "original" value, spec.md §3), loading it from the
// backing store on first access and caching the result.
func (s *stateObject) GetCommittedState(key common.Hash) common.Hash {
	if value, cached := s.originStorage[key]; cached {
		return value
	}
	value, err := s.db.db.Storage(s.address, key)
	if err != nil {
		s.db.setError(&DatabaseError{Op: "Storage", Err: err})
		return common.Hash{}
	}
	s.originStorage[key] = value
	return value
}

// GetState returns the slot's current value: whatever this transaction
// last wrote, or the committed value if it never did.
func (s *stateObject) GetState(key common.Hash) common.Hash {
	if value, dirty := s.dirtyStorage[key]; dirty {
		return value
	}
	return s.GetCommittedState(key)
}

func (s *stateObject) SetState(key, value common.Hash) {
	prev := s.GetState(key)
	if prev == value {
		return
	}
	_, dirty := s.dirtyStorage[key]
	s.db.journal.append(storageChange{
		account:    &s.address,
		key:        key,
		prevalue:   prev,
		prevExists: dirty,
	})
	s.setState(key, value)
}

func (s *stateObject) setState(key, value common.Hash) {
	s.dirtyStorage[key] = value
}

func emptyCodeHashOf() common.Hash { return crypto.Keccak256Hash(nil) }

var emptyCodeHash = emptyCodeHashOf()
