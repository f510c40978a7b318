// Copyright 2014 by the Authors
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

package core

import (
	"math/big"

	"github.com/core-coin/cvm/common"
	"github.com/core-coin/cvm/core/types"
)

// Message represents a message sent to a contract (spec.md §6
// "Transaction (input)"). It carries both the legacy single energy-price
// form and the London-equivalent fee-cap/tip-cap form; EnergyPrice returns
// the fee cap, and the price the handler pipeline actually charges is the
// effective price it derives from the fee cap, tip cap and block basefee.
type Message interface {
	From() common.Address
	To() *common.Address

	EnergyPrice() *big.Int
	EnergyFeeCap() *big.Int
	EnergyTipCap() *big.Int
	Energy() uint64
	Value() *big.Int

	Nonce() uint64
	CheckNonce() bool
	Data() []byte
	AccessList() types.AccessList

	BlobEnergyFeeCap() *big.Int
	BlobHashes() []common.Hash
}

// message is the concrete Message implementation this module constructs
// directly (no transaction-decoding step exists: serialization is out of
// scope per spec.md §1, so callers build a message from already-decoded
// fields).
type message struct {
	from         common.Address
	to           *common.Address
	nonce        uint64
	value        *big.Int
	energy       uint64
	energyFeeCap *big.Int
	energyTipCap *big.Int
	data         []byte
	accessList   types.AccessList
	checkNonce   bool

	blobEnergyFeeCap *big.Int
	blobHashes       []common.Hash
}

// NewMessage builds a Message. energyFeeCap and energyTipCap may be equal
// (the legacy, pre-London convention of a single energy price) or distinct
// (the London-equivalent priority-fee convention); RewardBeneficiary and
// ReimburseCaller in the handler pipeline derive the effective price from
// whichever was supplied, clipped to the block's basefee.
func NewMessage(from common.Address, to *common.Address, nonce uint64, value *big.Int, energy uint64, energyFeeCap, energyTipCap *big.Int, data []byte, accessList types.AccessList, checkNonce bool) Message {
	return &message{
		from:         from,
		to:           to,
		nonce:        nonce,
		value:        value,
		energy:       energy,
		energyFeeCap: energyFeeCap,
		energyTipCap: energyTipCap,
		data:         data,
		accessList:   accessList,
		checkNonce:   checkNonce,
	}
}

// WithBlobs attaches Cancun-equivalent blob fields to an existing message.
func WithBlobs(msg Message, blobEnergyFeeCap *big.Int, blobHashes []common.Hash) Message {
	m := msg.(*message)
	clone := *m
	clone.blobEnergyFeeCap = blobEnergyFeeCap
	clone.blobHashes = blobHashes
	return &clone
}

func (m *message) From() common.Address         { return m.from }
func (m *message) To() *common.Address          { return m.to }
func (m *message) EnergyPrice() *big.Int        { return m.energyFeeCap }
func (m *message) EnergyFeeCap() *big.Int       { return m.energyFeeCap }
func (m *message) EnergyTipCap() *big.Int       { return m.energyTipCap }
func (m *message) Energy() uint64               { return m.energy }
func (m *message) Value() *big.Int              { return m.value }
func (m *message) Nonce() uint64                { return m.nonce }
func (m *message) CheckNonce() bool             { return m.checkNonce }
func (m *message) Data() []byte                 { return m.data }
func (m *message) AccessList() types.AccessList { return m.accessList }
func (m *message) BlobEnergyFeeCap() *big.Int   { return m.blobEnergyFeeCap }
func (m *message) BlobHashes() []common.Hash    { return m.blobHashes }
