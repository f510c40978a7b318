// Copyright 2019 The go-core Authors
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
	"fmt"

	"github.com/core-coin/uint256"

	"github.com/core-coin/cvm/params"
)

// EnableCIP enables the given CIP on the config.
// This operation writes in-place, and callers need to ensure that the globally
// defined jump tables are not polluted.
func EnableCIP(cipNum int, jt *JumpTable) error {
	switch cipNum {
	case 1344:
		enable1344(jt)
	case 1884:
		enable1884(jt)
	case 2200:
		enable2200(jt)
	case 2929:
		enable2929(jt)
	case 3198:
		enable3198(jt)
	case 3855:
		enable3855(jt)
	case 3860:
		enable3860(jt)
	case 1153:
		enable1153(jt)
	case 5656:
		enable5656(jt)
	case 4844:
		enable4844(jt)
	default:
		return fmt.Errorf("undefined cip %d", cipNum)
	}
	return nil
}

// enable1884 applies CIP-1884 to the given jump table:
// - Increase cost of BALANCE to 700
// - Increase cost of EXTCODEHASH to 700
// - Increase cost of SLOAD to 800
// - Define SELFBALANCE, with cost EnergyFastStep (5)
func enable1884(jt *JumpTable) {
	// Energy cost changes
	jt[SLOAD].constantEnergy = params.SloadEnergyCIP1884
	jt[BALANCE].constantEnergy = params.BalanceEnergyCIP1884
	jt[EXTCODEHASH].constantEnergy = params.ExtcodeHashEnergyCIP1884

	// New opcode
	jt[SELFBALANCE] = operation{
		execute:     opSelfBalance,
		constantEnergy: EnergyFastStep,
		minStack:    minStack(0, 1),
		maxStack:    maxStack(0, 1),
		valid:       true,
	}
}

// opSelfBalance implements the SELFBALANCE opcode.
func opSelfBalance(pc *uint64, interpreter *CVMInterpreter, contract *Contract, memory *Memory, stack *Stack) ([]byte, error) {
	balance, _ := uint256.FromBig(interpreter.cvm.StateDB.GetBalance(contract.Address()))
	stack.push(balance)
	return nil, nil
}

// enable1344 applies CIP-1344 (ChainID Opcode)
// - Adds an opcode that returns the current chainâ€™s CIP-155 unique identifier
func enable1344(jt *JumpTable) {
	// New opcode
	jt[CHAINID] = operation{
		execute:     opChainID,
		constantEnergy: EnergyQuickStep,
		minStack:    minStack(0, 1),
		maxStack:    maxStack(0, 1),
		valid:       true,
	}
}

// opChainID implements the CHAINID opcode.
func opChainID(pc *uint64, interpreter *CVMInterpreter, contract *Contract, memory *Memory, stack *Stack) ([]byte, error) {
	chainID, _ := uint256.FromBig(interpreter.cvm.chainConfig.NetworkID)
	stack.push(chainID)
	return nil, nil
}

// enable2200 applies CIP-2200 (rebalanced net-metered SSTORE).
func enable2200(jt *JumpTable) {
	jt[SLOAD].constantEnergy = params.SloadEnergyCIP2200
	jt[SSTORE].dynamicEnergy = energySStoreCIP2200
}

// enable2929 applies CIP-2929 (cold/warm account and storage access costs).
// Static SLOAD/EXTCODE*/BALANCE/CALL-family costs are replaced with dynamic
// costs that are cheap on a warm (already-touched-this-transaction) access
// and expensive on the first (cold) access.
func enable2929(jt *JumpTable) {
	jt[SSTORE].dynamicEnergy = energySStoreCIP2929

	jt[SLOAD].constantEnergy = 0
	jt[SLOAD].dynamicEnergy = energySloadCIP2929

	jt[EXTCODECOPY].constantEnergy = 0
	jt[EXTCODECOPY].dynamicEnergy = energyExtCodeCopyCIP2929

	jt[EXTCODESIZE].constantEnergy = 0
	jt[EXTCODESIZE].dynamicEnergy = energyExtCodeSizeCIP2929

	jt[EXTCODEHASH].constantEnergy = 0
	jt[EXTCODEHASH].dynamicEnergy = energyExtCodeHashCIP2929

	jt[BALANCE].constantEnergy = 0
	jt[BALANCE].dynamicEnergy = energyBalanceCIP2929

	jt[CALL].dynamicEnergy = energyCallCIP2929
	jt[CALLCODE].dynamicEnergy = energyCallCodeCIP2929
	jt[STATICCALL].dynamicEnergy = energyStaticCallCIP2929
	jt[DELEGATECALL].dynamicEnergy = energyDelegateCallCIP2929

	jt[SELFDESTRUCT].dynamicEnergy = energySelfdestructCIP2929
}

// enable3198 applies the BASEFEE-opcode equivalent: exposes the block's
// base energy fee per unit so contracts can read it without an oracle call.
func enable3198(jt *JumpTable) {
	jt[BASEFEE] = operation{
		execute:        opBaseFee,
		constantEnergy: EnergyQuickStep,
		minStack:       minStack(0, 1),
		maxStack:       maxStack(0, 1),
		valid:          true,
	}
}

// enable3855 applies the PUSH0-opcode equivalent: pushes the constant 0
// for the price of a quick step, avoiding the PUSH1 0x00 idiom.
func enable3855(jt *JumpTable) {
	jt[PUSH0] = operation{
		execute:        opPush0,
		constantEnergy: EnergyQuickStep,
		minStack:       minStack(0, 1),
		maxStack:       maxStack(0, 1),
		valid:          true,
	}
}

// enable3860 applies the init-code-size-limit equivalent: CREATE/CREATE2
// charge a per-word surcharge for hashing/validating the supplied initcode,
// on top of the hard cap enforced in CVM.create.
func enable3860(jt *JumpTable) {
	jt[CREATE].dynamicEnergy = energyCreateCIP3860
	jt[CREATE2].dynamicEnergy = energyCreate2CIP3860
}

// enable1153 applies the TLOAD/TSTORE-opcode equivalent: transient storage
// scoped to the transaction, never touching the journaled/persistent trie.
func enable1153(jt *JumpTable) {
	jt[TLOAD] = operation{
		execute:        opTload,
		constantEnergy: params.WarmStorageReadEnergyCIP2929,
		minStack:       minStack(1, 1),
		maxStack:       maxStack(1, 1),
		valid:          true,
	}
	jt[TSTORE] = operation{
		execute:        opTstore,
		constantEnergy: params.WarmStorageReadEnergyCIP2929,
		minStack:       minStack(2, 0),
		maxStack:       maxStack(2, 0),
		valid:          true,
		writes:         true,
	}
}

// enable5656 applies the MCOPY-opcode equivalent: a native, overlap-safe
// memory-to-memory copy, replacing the PUSH/DUP/MLOAD/MSTORE idiom
// contracts previously needed.
func enable5656(jt *JumpTable) {
	jt[MCOPY] = operation{
		execute:        opMcopy,
		constantEnergy: EnergyFastestStep,
		dynamicEnergy:  energyMcopy,
		minStack:       minStack(3, 0),
		maxStack:       maxStack(3, 0),
		memorySize:     memoryMcopy,
		valid:          true,
		writes:         true,
	}
}

// enable4844 applies the BLOBHASH/BLOBBASEFEE-opcode equivalent, exposing
// the transaction's blob versioned hashes and the block's blob base energy
// fee. This module does not carry blob transactions themselves (no KZG
// commitment verification); it only surfaces the two opcodes against
// values supplied through the Context so contracts compiled against a
// blob-aware fork still execute correctly.
func enable4844(jt *JumpTable) {
	jt[BLOBHASH] = operation{
		execute:        opBlobHash,
		constantEnergy: EnergyFastestStep,
		minStack:       minStack(1, 1),
		maxStack:       maxStack(1, 1),
		valid:          true,
	}
	jt[BLOBBASEFEE] = operation{
		execute:        opBlobBaseFee,
		constantEnergy: EnergyQuickStep,
		minStack:       minStack(0, 1),
		maxStack:       maxStack(0, 1),
		valid:          true,
	}
}
