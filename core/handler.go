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

package core

import (
	"errors"
	"math"
	"math/big"

	"github.com/core-coin/cvm/core/types"
	"github.com/core-coin/cvm/core/vm"
	"github.com/core-coin/cvm/log"
	"github.com/core-coin/cvm/params"
)

// Handler is the spec.md §4.10/§9 pipeline: a struct of independently
// substitutable stage functions, the Go equivalent of
// original_source's per-stage Arc<dyn Fn(...)> handle table. A tooling
// driver wanting to, say, skip the caller debit for symbolic execution
// replaces st.handler.PreExecution on a StateTransition it otherwise builds
// normally; nothing else in the pipeline needs to change.
type Handler struct {
	ValidateEnvironment func(st *StateTransition) error
	InitialEnergy       func(st *StateTransition) (uint64, error)
	ValidateTransaction func(st *StateTransition) error
	PreExecution        func(st *StateTransition) error
	Execute             func(st *StateTransition) (*ExecutionResult, error)
	RewardBeneficiary   func(st *StateTransition, result *ExecutionResult) error
	ReimburseCaller     func(st *StateTransition, result *ExecutionResult) error
	Finalize            func(st *StateTransition, result *ExecutionResult) *ExecutionResult
}

// NewHandler returns the default Handler for rules, wiring every stage to
// this module's own implementation of spec.md §4.10.
func NewHandler(rules params.Rules) *Handler {
	return &Handler{
		ValidateEnvironment: validateEnvironment,
		InitialEnergy:       initialEnergy,
		ValidateTransaction: validateTransaction,
		PreExecution:        preExecution,
		Execute:             execute,
		RewardBeneficiary:   rewardBeneficiary,
		ReimburseCaller:     reimburseCaller,
		Finalize:            finalize,
	}
}

// -- stage 1: validate environment ------------------------------------------

func validateEnvironment(st *StateTransition) error {
	rules := st.rules()
	if len(st.msg.AccessList()) > 0 && !rules.IsBerlin {
		return ErrTxTypeNotSupported
	}
	if st.msg.BlobHashes() != nil && !rules.IsCancun {
		return ErrTxTypeNotSupported
	}
	return nil
}

// -- stage 2: compute initial energy ----------------------------------------

// IntrinsicEnergy computes the intrinsic energy for a message: transaction
// base cost, per-byte data cost, access-list surcharges (Berlin+) and
// init-code word cost (Shanghai+, creation only) — spec.md §4.10 step 2.
func IntrinsicEnergy(data []byte, accessList types.AccessList, isContractCreation, isHomestead, isCIP2028, isBerlin, isShanghai bool) (uint64, error) {
	var energy uint64
	if isContractCreation && isHomestead {
		energy = params.TxEnergyContractCreation
	} else {
		energy = params.TxEnergy
	}
	if len(data) > 0 {
		var nz uint64
		for _, b := range data {
			if b != 0 {
				nz++
			}
		}
		nonZeroEnergy := params.TxDataNonZeroEnergyFrontier
		if isCIP2028 {
			nonZeroEnergy = params.TxDataNonZeroEnergyCIP2028
		}
		if (math.MaxUint64-energy)/nonZeroEnergy < nz {
			return 0, vm.ErrEnergyUintOverflow
		}
		energy += nz * nonZeroEnergy

		z := uint64(len(data)) - nz
		if (math.MaxUint64-energy)/params.TxDataZeroEnergy < z {
			return 0, vm.ErrEnergyUintOverflow
		}
		energy += z * params.TxDataZeroEnergy
	}
	if isBerlin {
		surcharge := uint64(len(accessList))*params.TxAccessListAddressEnergy + uint64(accessList.StorageKeys())*params.TxAccessListStorageKeyEnergy
		if (math.MaxUint64 - energy) < surcharge {
			return 0, vm.ErrEnergyUintOverflow
		}
		energy += surcharge
	}
	if isContractCreation && isShanghai {
		words := (uint64(len(data)) + 31) / 32
		surcharge := words * params.InitCodeWordEnergy
		if (math.MaxUint64 - energy) < surcharge {
			return 0, vm.ErrEnergyUintOverflow
		}
		energy += surcharge
	}
	return energy, nil
}

func initialEnergy(st *StateTransition) (uint64, error) {
	rules := st.rules()
	isCreate := st.msg.To() == nil
	return IntrinsicEnergy(st.msg.Data(), st.msg.AccessList(), isCreate, rules.IsHomestead, rules.IsIstanbul, rules.IsBerlin, rules.IsShanghai)
}

// -- stage 3: validate tx against state -------------------------------------

func validateTransaction(st *StateTransition) error {
	if st.msg.CheckNonce() {
		stateNonce := st.state.GetNonce(st.msg.From())
		if stateNonce < st.msg.Nonce() {
			return ErrNonceTooHigh
		} else if stateNonce > st.msg.Nonce() {
			return ErrNonceTooLow
		}
		if stateNonce+1 < stateNonce {
			return ErrNonceMax
		}
	}

	rules := st.rules()
	if rules.IsLondon && st.state.GetCodeSize(st.msg.From()) > 0 {
		return ErrSenderNoEOA
	}

	maxFee := st.msg.EnergyFeeCap()
	need := new(big.Int).Mul(new(big.Int).SetUint64(st.msg.Energy()), maxFee)
	need.Add(need, st.msg.Value())
	if st.state.GetBalance(st.msg.From()).Cmp(need) < 0 {
		return ErrInsufficientFunds
	}
	return nil
}

// -- stage 4: pre-execution (debit caller, nonce, warm access list) --------

func preExecution(st *StateTransition) error {
	if err := st.buyEnergy(); err != nil {
		return err
	}
	st.state.SetNonce(st.msg.From(), st.msg.Nonce()+1)

	if sdb := st.stateDB; sdb != nil {
		sdb.ResetAccessList()
	}
	st.state.AddAddressToAccessList(st.msg.From())
	if to := st.msg.To(); to != nil {
		st.state.AddAddressToAccessList(*to)
	}
	for _, tuple := range st.msg.AccessList() {
		st.state.AddAddressToAccessList(tuple.Address)
		for _, key := range tuple.StorageKeys {
			st.state.AddSlotToAccessList(tuple.Address, key)
		}
	}
	return nil
}

// -- stage 5: execute ---------------------------------------------------------

func execute(st *StateTransition) (*ExecutionResult, error) {
	sender := vm.AccountRef(st.msg.From())
	var (
		ret            []byte
		leftOverEnergy uint64
		vmerr          error
	)
	if st.msg.To() == nil {
		ret, _, leftOverEnergy, vmerr = st.cvm.Create(sender, st.msg.Data(), st.energy, st.msg.Value())
	} else {
		ret, leftOverEnergy, vmerr = st.cvm.Call(sender, *st.msg.To(), st.msg.Data(), st.energy, st.msg.Value())
	}
	if sdb := st.stateDB; sdb != nil {
		if dbErr := sdb.Error(); dbErr != nil && isFatal(dbErr) {
			return nil, dbErr
		}
	}
	st.energy = leftOverEnergy

	result := &ExecutionResult{
		UsedEnergy: st.energyUsed(),
		Err:        vmerr,
		ReturnData: ret,
	}
	if sdb := st.stateDB; sdb != nil {
		result.Logs = sdb.Logs()
	}
	return result, nil
}

// -- stage 6/7: reward beneficiary / reimburse caller ------------------------

// effectivePrice returns the per-unit price actually charged: the tip the
// message offers on top of basefee, capped by the message's fee cap, per
// the London-equivalent priority-fee rule. Pre-London it is simply the
// (equal) fee cap/tip cap NewMessage was built with.
func effectivePrice(msg Message, baseFee *big.Int) *big.Int {
	if baseFee == nil || baseFee.Sign() == 0 {
		return msg.EnergyFeeCap()
	}
	tip := new(big.Int).Sub(msg.EnergyFeeCap(), baseFee)
	if tip.Cmp(msg.EnergyTipCap()) > 0 {
		tip.Set(msg.EnergyTipCap())
	}
	return new(big.Int).Add(baseFee, tip)
}

func rewardBeneficiary(st *StateTransition, result *ExecutionResult) error {
	result.RefundedEnergy = st.computeRefund(result.UsedEnergy)

	baseFee := st.cvm.BaseFee
	price := effectivePrice(st.msg, baseFee)
	reward := new(big.Int).SetUint64(result.UsedEnergy - result.RefundedEnergy)
	if baseFee != nil && baseFee.Sign() > 0 {
		tip := new(big.Int).Sub(price, baseFee)
		reward.Mul(reward, tip)
	} else {
		reward.Mul(reward, price)
	}
	st.state.AddBalance(st.cvm.Coinbase, reward)
	return nil
}

func reimburseCaller(st *StateTransition, result *ExecutionResult) error {
	remaining := st.energy + result.RefundedEnergy
	price := effectivePrice(st.msg, st.cvm.BaseFee)
	refundValue := new(big.Int).Mul(new(big.Int).SetUint64(remaining), price)
	st.state.AddBalance(st.msg.From(), refundValue)
	st.gp.AddEnergy(remaining)
	return nil
}

// computeRefund applies spec.md §4.2's refund rule: min(spent/5, refunded)
// post-London, else min(spent/2, refunded).
func (st *StateTransition) computeRefund(usedEnergy uint64) uint64 {
	quotient := params.RefundQuotient
	if st.rules().IsLondon {
		quotient = params.RefundQuotientCIP3529
	}
	ceiling := usedEnergy / quotient
	refund := st.state.GetRefund()
	if refund > ceiling {
		refund = ceiling
	}
	return refund
}

// -- stage 8: finalize ---------------------------------------------------------

func finalize(st *StateTransition, result *ExecutionResult) *ExecutionResult {
	if sdb := st.stateDB; sdb != nil {
		sdb.Finalize()
		sdb.ClearTransientStorage()
	}
	if result.Err != nil {
		log.Debug("cvm returned with error", "err", result.Err)
	}
	return result
}

var (
	ErrNonceTooHigh       = errors.New("nonce too high")
	ErrNonceTooLow        = errors.New("nonce too low")
	ErrNonceMax           = errors.New("nonce has max value")
	ErrSenderNoEOA        = errors.New("sender not an eoa")
	ErrInsufficientFunds  = errors.New("insufficient funds for transfer")
	ErrTxTypeNotSupported = errors.New("transaction type not supported")
	ErrEnergyLimitReached = errors.New("energy limit reached")
)

