// Copyright 2016 by the Authors
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

package vm

import (
	"math/big"

	"github.com/core-coin/cvm/common"
	"github.com/core-coin/cvm/core/types"
)

// StateDB is an CVM database for full state querying.
type StateDB interface {
	CreateAccount(common.Address)

	SubBalance(common.Address, *big.Int)
	AddBalance(common.Address, *big.Int)
	GetBalance(common.Address) *big.Int

	GetNonce(common.Address) uint64
	SetNonce(common.Address, uint64)

	GetCodeHash(common.Address) common.Hash
	GetCode(common.Address) []byte
	SetCode(common.Address, []byte)
	GetCodeSize(common.Address) int

	AddRefund(uint64)
	SubRefund(uint64)
	GetRefund() uint64

	GetCommittedState(common.Address, common.Hash) common.Hash
	GetState(common.Address, common.Hash) common.Hash
	SetState(common.Address, common.Hash, common.Hash)

	Suicide(common.Address) bool
	HasSuicided(common.Address) bool

	// Exist reports whether the given account exists in state.
	// Notably this should also return true for suicided accounts.
	Exist(common.Address) bool
	// Empty returns whether the given account is empty. Empty
	// is defined according to CIP161 (balance = nonce = code = 0).
	Empty(common.Address) bool

	RevertToSnapshot(int)
	Snapshot() int

	AddLog(*types.Log)
	AddPreimage(common.Hash, []byte)

	ForEachStorage(common.Address, func(common.Hash, common.Hash) bool) error

	// AddressInAccessList reports whether the given address is already
	// warm (has been touched earlier in the current transaction).
	AddressInAccessList(addr common.Address) bool
	// SlotInAccessList reports whether the given address and storage slot
	// are already warm.
	SlotInAccessList(addr common.Address, slot common.Hash) (addressOk bool, slotOk bool)
	// AddAddressToAccessList marks the given address as warm. It returns
	// nothing; AddressInAccessList reports prior warmth.
	AddAddressToAccessList(addr common.Address)
	// AddSlotToAccessList marks the given address and storage slot as
	// warm.
	AddSlotToAccessList(addr common.Address, slot common.Hash)

	// GetTransientState returns the transient storage value associated
	// with the given address and key. Transient storage is scoped to a
	// single transaction and is never part of the committed state trie.
	GetTransientState(addr common.Address, key common.Hash) common.Hash
	// SetTransientState sets the transient storage value associated with
	// the given address and key.
	SetTransientState(addr common.Address, key, value common.Hash)
}

// CallContext provides a basic interface for the CVM calling conventions. The CVM
// depends on this context being implemented for doing subcalls and initialising new CVM contracts.
type CallContext interface {
	// Call another contract
	Call(env *CVM, me ContractRef, addr common.Address, data []byte, energy, value *big.Int) ([]byte, error)
	// Take another's contract code and execute within our own context
	CallCode(env *CVM, me ContractRef, addr common.Address, data []byte, energy, value *big.Int) ([]byte, error)
	// Same as CallCode except sender and value is propagated from parent to child scope
	DelegateCall(env *CVM, me ContractRef, addr common.Address, data []byte, energy *big.Int) ([]byte, error)
	// Create a new contract
	Create(env *CVM, me ContractRef, data []byte, energy, value *big.Int) ([]byte, common.Address, error)
}
