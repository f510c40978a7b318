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

package vm

import (
	"errors"
	"fmt"
)

// List execution errors. These are the Halt-reason taxonomy: every one of
// them except ErrExecutionReverted consumes the remaining energy of the
// frame that raised it, and each reverts that frame's checkpoint
// (ErrExecutionReverted returns the remaining energy; CreateCollision/CodeSizeLimit/
// StartsWithEF/NonceOverflow only revert the create, per the handler
// pipeline's error-plane rules).
var (
	// ErrInvalidSubroutineEntry means that a BEGINSUB was reached via iteration,
	// as opposed to from a JUMPSUB instruction
	ErrInvalidSubroutineEntry   = errors.New("invalid subroutine entry")
	ErrOutOfEnergy              = errors.New("out of energy")
	ErrCodeStoreOutOfEnergy     = errors.New("contract creation code storage out of energy")
	ErrDepth                    = errors.New("max call depth exceeded")
	ErrTraceLimitReached        = errors.New("the number of logs reached the specified limit")
	ErrInsufficientBalance      = errors.New("insufficient balance for transfer")
	ErrContractAddressCollision = errors.New("contract address collision")
	ErrNoCompatibleInterpreter  = errors.New("no compatible interpreter")
	ErrInvalidRetsub            = errors.New("invalid retsub")
	ErrReturnStackExceeded      = errors.New("return stack limit reached")
	ErrExecutionReverted        = errors.New("cvm: execution reverted")
	ErrReturnDataOutOfBounds    = errors.New("cvm: return data out of bounds")
	ErrEnergyUintOverflow       = errors.New("energy uint64 overflow")
	ErrWriteProtection          = errors.New("cvm: write protection")
	ErrInvalidJump              = errors.New("cvm: invalid jump destination")
	ErrMaxCodeSizeExceeded      = errors.New("cvm: max code size exceeded")
	ErrMaxInitCodeSizeExceeded  = errors.New("cvm: max initcode size exceeded")
	ErrInvalidCode              = errors.New("cvm: invalid code: must not begin with 0xef")
	ErrNonceUintOverflow        = errors.New("cvm: nonce uint64 overflow")
)

// ErrStackUnderflow wraps an evaluation error when the items on the stack are
// less than the minimum requirement.
type ErrStackUnderflow struct {
	stackLen int
	required int
}

func (e *ErrStackUnderflow) Error() string {
	return fmt.Sprintf("stack underflow (%d <=> %d)", e.stackLen, e.required)
}

// ErrStackOverflow wraps an evaluation error when the items on the stack are
// more than the allowed limit.
type ErrStackOverflow struct {
	stackLen int
	limit    int
}

func (e *ErrStackOverflow) Error() string {
	return fmt.Sprintf("stack limit reached %d (%d)", e.stackLen, e.limit)
}

// ErrInvalidOpCode wraps an evaluation error when an invalid opcode is
// encountered during execution.
type ErrInvalidOpCode struct {
	opcode OpCode
}

func (e *ErrInvalidOpCode) Error() string { return fmt.Sprintf("invalid opcode: %s", e.opcode) }
