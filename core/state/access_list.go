// Copyright 2021 by the Authors
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

import "github.com/core-coin/cvm/common"

// accessList tracks which addresses and (address, slot) pairs have already
// paid the cold-access surcharge during the current transaction (spec.md
// §4.2/§4.8, the CIP-2929-equivalent access list). Membership only ever
// grows within a transaction: per the protocol rule, warmth survives a
// reverted checkpoint, so entries here are never journaled and never
// removed mid-transaction — only StateDB.ResetAccessList, at the start of
// the next one, clears it.
type accessList struct {
	addresses map[common.Address]int
	slots     []map[common.Hash]struct{}
}

func newAccessList() *accessList {
	return &accessList{addresses: make(map[common.Address]int)}
}

// ContainsAddress reports whether addr is already warm.
func (al *accessList) ContainsAddress(addr common.Address) bool {
	_, ok := al.addresses[addr]
	return ok
}

// Contains reports whether (addr, slot) is already warm, and separately
// whether addr itself is warm (an address can be warm with no warm slots).
func (al *accessList) Contains(addr common.Address, slot common.Hash) (addressPresent bool, slotPresent bool) {
	idx, ok := al.addresses[addr]
	if !ok {
		return false, false
	}
	if idx == -1 {
		return true, false
	}
	_, slotPresent = al.slots[idx][slot]
	return true, slotPresent
}

// AddAddress marks addr as warm. It reports whether addr was already warm.
func (al *accessList) AddAddress(addr common.Address) bool {
	if al.ContainsAddress(addr) {
		return true
	}
	al.addresses[addr] = -1
	return false
}

// AddSlot marks (addr, slot) as warm, warming addr too if it wasn't
// already. It reports the warmth of addr and slot as they were *before*
// this call.
func (al *accessList) AddSlot(addr common.Address, slot common.Hash) (addrPresent bool, slotPresent bool) {
	idx, addrPresent := al.addresses[addr]
	if !addrPresent {
		al.addresses[addr] = len(al.slots)
		al.slots = append(al.slots, map[common.Hash]struct{}{slot: {}})
		return false, false
	}
	if idx == -1 {
		idx = len(al.slots)
		al.addresses[addr] = idx
		al.slots = append(al.slots, map[common.Hash]struct{}{slot: {}})
		return true, false
	}
	if _, ok := al.slots[idx][slot]; ok {
		return true, true
	}
	al.slots[idx][slot] = struct{}{}
	return true, false
}

// DeleteAddress and DeleteSlot exist only so tests can construct a
// specific pre-warmed fixture; production code never calls them, since
// access-list membership is monotonic within a transaction.
func (al *accessList) DeleteAddress(addr common.Address) {
	delete(al.addresses, addr)
}

func (al *accessList) DeleteSlot(addr common.Address, slot common.Hash) {
	idx, ok := al.addresses[addr]
	if !ok || idx == -1 {
		return
	}
	delete(al.slots[idx], slot)
}
