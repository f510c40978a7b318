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

	"github.com/core-coin/cvm/core/state"
	"github.com/core-coin/cvm/core/types"
	"github.com/core-coin/cvm/core/vm"
)

// ExecutionResult is the tagged-union Result of spec.md §6, flattened into
// one Go struct the way the teacher's own ecosystem shapes it (this mirrors
// go-core/go-ethereum's own core.ExecutionResult): Err nil and no
// ErrExecutionReverted means Success; Err wrapping vm.ErrExecutionReverted
// means Revert; any other non-nil Err is a Halt, with Err identifying the
// reason.
type ExecutionResult struct {
	UsedEnergy     uint64 // total energy consumed by the message
	RefundedEnergy uint64 // portion of UsedEnergy returned via the refund counter
	Err            error  // nil on Success
	ReturnData     []byte // output bytes (Success: return data; Revert: revert reason; Halt: none)
	Logs           []*types.Log
}

// Unwrap returns the inner in-VM error, for errors.Is/As use by callers
// that only care whether a *specific* halt reason occurred.
func (r *ExecutionResult) Unwrap() error { return r.Err }

// Failed reports whether the message did not complete as Success.
func (r *ExecutionResult) Failed() bool { return r.Err != nil }

// Reverted reports whether the message's result is specifically a Revert,
// as opposed to a Halt.
func (r *ExecutionResult) Reverted() bool { return errors.Is(r.Err, vm.ErrExecutionReverted) }

// Return returns the data to return to the caller on Success or Revert; nil
// on Halt, per spec.md §6's "halts do not [copy return data]" rule.
func (r *ExecutionResult) Return() []byte {
	if r.Err != nil && !r.Reverted() {
		return nil
	}
	return r.ReturnData
}

// Revert returns the concrete revert reason bytes, or nil if this result is
// not a Revert.
func (r *ExecutionResult) Revert() []byte {
	if !r.Reverted() {
		return nil
	}
	return r.ReturnData
}

// isFatal reports whether err is a backing-store failure (spec.md §7
// "Database/fatal errors") rather than an in-VM result. Fatal errors abort
// the whole handler pipeline before any balance changes are committed;
// in-VM errors are resolved into an ExecutionResult instead.
func isFatal(err error) bool {
	var dbErr *state.DatabaseError
	return errors.As(err, &dbErr)
}
