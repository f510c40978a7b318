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

// journalEntry is one reversible state delta (spec.md §3 "Journal"). Every
// mutation StateDB makes is recorded as one of these before it takes
// effect, so revert(cp) can put the prior value back exactly.
type journalEntry interface {
	// revert undoes the effect of the change on db.
	revert(db *StateDB)
	// dirtied returns the address whose stateObject this entry belongs
	// to, if any — used to keep the dirty-object set accurate across
	// reverts.
	dirtied() *common.Address
}

// journal is an append-only log of journalEntry values. A checkpoint is
// simply the journal length at the moment it was taken; revert(cp) unwinds
// every entry appended since. There is no separate checkpoint stack and no
// commit step: a checkpoint that is not reverted is just never used again.
type journal struct {
	entries []journalEntry
	dirties map[common.Address]int // address -> number of changes in this journal
}

func newJournal() *journal {
	return &journal{dirties: make(map[common.Address]int)}
}

func (j *journal) append(entry journalEntry) {
	j.entries = append(j.entries, entry)
	if addr := entry.dirtied(); addr != nil {
		j.dirties[*addr]++
	}
}

// length returns the number of entries in the journal — the checkpoint
// value that revert operates on.
func (j *journal) length() int { return len(j.entries) }

// revert undoes every entry appended since snapshot, in reverse order, and
// truncates the journal back to it.
func (j *journal) revert(db *StateDB, snapshot int) {
	for i := len(j.entries) - 1; i >= snapshot; i-- {
		j.entries[i].revert(db)

		if addr := j.entries[i].dirtied(); addr != nil {
			if j.dirties[*addr]--; j.dirties[*addr] == 0 {
				delete(j.dirties, *addr)
			}
		}
	}
	j.entries = j.entries[:snapshot]
}

// dirty marks addr as having at least one uncommitted change, used when a
// change is made outside the normal append path (there is none today, but
// mirrors the teacher's own journal.dirty hook for future use).
func (j *journal) dirty(addr common.Address) {
	j.dirties[addr]++
}

type (
	// createObjectChange is appended when CreateAccount materializes a
	// brand-new stateObject where none existed (or replaces a
	// self-destructed one, per CREATE2 collision handling upstream).
	createObjectChange struct {
		account *common.Address
	}

	touchChange struct {
		account *common.Address
	}

	balanceChange struct {
		account *common.Address
		prev    *big.Int
	}

	nonceChange struct {
		account *common.Address
		prev    uint64
	}

	codeChange struct {
		account  *common.Address
		prevCode []byte
		prevHash common.Hash
	}

	storageChange struct {
		account       *common.Address
		key, prevalue common.Hash
		prevExists    bool
	}

	suicideChange struct {
		account     *common.Address
		prev        bool // whether account had already suicided
		prevBalance *big.Int
	}

	refundChange struct {
		prev uint64
	}

	addLogChange struct {
		txhash common.Hash
	}

	addPreimageChange struct {
		hash common.Hash
	}

	transientStorageChange struct {
		account       *common.Address
		key, prevalue common.Hash
	}
)

func (ch createObjectChange) revert(db *StateDB) {
	delete(db.stateObjects, *ch.account)
}
func (ch createObjectChange) dirtied() *common.Address { return ch.account }

func (ch touchChange) revert(db *StateDB)            {}
func (ch touchChange) dirtied() *common.Address       { return ch.account }

func (ch balanceChange) revert(db *StateDB) {
	db.getStateObject(*ch.account).setBalanceNoJournal(ch.prev)
}
func (ch balanceChange) dirtied() *common.Address { return ch.account }

func (ch nonceChange) revert(db *StateDB) {
	db.getStateObject(*ch.account).setNonceNoJournal(ch.prev)
}
func (ch nonceChange) dirtied() *common.Address { return ch.account }

func (ch codeChange) revert(db *StateDB) {
	db.getStateObject(*ch.account).setCodeNoJournal(ch.prevHash, ch.prevCode)
}
func (ch codeChange) dirtied() *common.Address { return ch.account }

func (ch storageChange) revert(db *StateDB) {
	obj := db.getStateObject(*ch.account)
	if ch.prevExists {
		obj.setState(ch.key, ch.prevalue)
	} else {
		delete(obj.dirtyStorage, ch.key)
	}
}
func (ch storageChange) dirtied() *common.Address { return ch.account }

func (ch suicideChange) revert(db *StateDB) {
	obj := db.getStateObject(*ch.account)
	obj.suicided = ch.prev
	obj.setBalanceNoJournal(ch.prevBalance)
}
func (ch suicideChange) dirtied() *common.Address { return ch.account }

func (ch refundChange) revert(db *StateDB) {
	db.refund = ch.prev
}
func (ch refundChange) dirtied() *common.Address { return nil }

func (ch addLogChange) revert(db *StateDB) {
	logs := db.logs[ch.txhash]
	if len(logs) == 1 {
		delete(db.logs, ch.txhash)
	} else {
		db.logs[ch.txhash] = logs[:len(logs)-1]
	}
	db.logSize--
}
func (ch addLogChange) dirtied() *common.Address { return nil }

func (ch addPreimageChange) revert(db *StateDB) {
	delete(db.preimages, ch.hash)
}
func (ch addPreimageChange) dirtied() *common.Address { return nil }

func (ch transientStorageChange) revert(db *StateDB) {
	db.setTransientState(*ch.account, ch.key, ch.prevalue)
}
func (ch transientStorageChange) dirtied() *common.Address { return nil }
