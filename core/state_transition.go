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

// Package core implements the handler pipeline that applies one Message to
// one CVM (spec.md §4.10): validate, compute intrinsic energy, validate
// against state, debit the caller, execute, reward the beneficiary,
// reimburse the caller, and finalize. Every stage is a replaceable field on
// a Handler (see handler.go); StateTransition just threads state between
// them in order.
package core

import (
	"math/big"

	"github.com/core-coin/cvm/core/state"
	"github.com/core-coin/cvm/core/vm"
	"github.com/core-coin/cvm/params"
)

// StateTransition holds everything the handler pipeline's stages thread
// between each other for the duration of one message.
type StateTransition struct {
	gp      *EnergyPool
	msg     Message
	energy  uint64 // energy remaining for execution, decremented as stages spend it
	initial uint64 // msg.Energy(), kept to compute UsedEnergy
	state   vm.StateDB
	stateDB *state.StateDB // state, type-asserted once for the methods vm.StateDB doesn't expose
	cvm     *vm.CVM
	handler *Handler
}

// NewStateTransition initialises a StateTransition for msg against cvm,
// using the default Handler for cvm's chain rules.
func NewStateTransition(cvm *vm.CVM, msg Message, gp *EnergyPool) *StateTransition {
	rules := cvm.ChainConfig().Rules(cvm.BlockNumber)
	sdb, _ := cvm.StateDB.(*state.StateDB)
	return &StateTransition{
		gp:      gp,
		cvm:     cvm,
		msg:     msg,
		state:   cvm.StateDB,
		stateDB: sdb,
		handler: NewHandler(rules),
	}
}

// ApplyMessage computes the new state by applying msg against cvm's current
// state. It returns the ExecutionResult, or an error when the message could
// not be evaluated at all (it failed validation or pre-execution, or the
// backing store failed), not merely that its execution reverted or halted —
// compare spec.md §7's two error planes.
func ApplyMessage(cvm *vm.CVM, msg Message, gp *EnergyPool) (*ExecutionResult, error) {
	return NewStateTransition(cvm, msg, gp).TransitionDb()
}

func (st *StateTransition) rules() params.Rules {
	return st.cvm.ChainConfig().Rules(st.cvm.BlockNumber)
}

func (st *StateTransition) useEnergy(amount uint64) error {
	if st.energy < amount {
		return vm.ErrOutOfEnergy
	}
	st.energy -= amount
	return nil
}

func (st *StateTransition) buyEnergy() error {
	mgval := new(big.Int).Mul(new(big.Int).SetUint64(st.msg.Energy()), st.msg.EnergyFeeCap())
	if st.state.GetBalance(st.msg.From()).Cmp(mgval) < 0 {
		return ErrInsufficientFunds
	}
	if err := st.gp.SubEnergy(st.msg.Energy()); err != nil {
		return err
	}
	st.energy += st.msg.Energy()
	st.initial = st.msg.Energy()
	st.state.SubBalance(st.msg.From(), mgval)
	return nil
}

// energyUsed returns the energy spent so far against st.initial.
func (st *StateTransition) energyUsed() uint64 {
	return st.initial - st.energy
}

// TransitionDb drives msg through every Handler stage in order (spec.md
// §4.10), returning the resolved ExecutionResult. A non-nil error return
// means a stage failed — a validation error, insufficient energy for the
// intrinsic cost, or a fatal, backing-store-level failure (spec.md §7) —
// and no stage after it ran; every outcome of execution itself — success,
// revert, any halt reason — comes back as a populated ExecutionResult with
// a nil error.
func (st *StateTransition) TransitionDb() (*ExecutionResult, error) {
	h := st.handler

	if err := h.ValidateEnvironment(st); err != nil {
		return nil, err
	}
	intrinsic, err := h.InitialEnergy(st)
	if err != nil {
		return nil, err
	}
	if err := h.ValidateTransaction(st); err != nil {
		return nil, err
	}
	if err := h.PreExecution(st); err != nil {
		return nil, err
	}
	if err := st.useEnergy(intrinsic); err != nil {
		return nil, err
	}

	result, err := h.Execute(st)
	if err != nil {
		return nil, err
	}

	if err := h.RewardBeneficiary(st, result); err != nil {
		return nil, err
	}
	if err := h.ReimburseCaller(st, result); err != nil {
		return nil, err
	}
	return h.Finalize(st, result), nil
}
