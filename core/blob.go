// Copyright 2023 by the Authors
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

	"github.com/core-coin/cvm/params"
)

// CalcExcessBlobEnergy computes the excess blob energy carried into the
// next block (spec.md §6 "Blob-energy helpers"): the Cancun-equivalent
// analogue of basefee's excess-gas accumulator, saturating at zero.
func CalcExcessBlobEnergy(parentExcess, parentUsed uint64) uint64 {
	total := parentExcess + parentUsed
	if total < params.BlobTxTargetBlobEnergyPerBlock {
		return 0
	}
	return total - params.BlobTxTargetBlobEnergyPerBlock
}

// CalcBlobEnergyPrice returns the per-unit blob energy price for a block
// with the given excess blob energy, via fakeExponential (spec.md §6).
func CalcBlobEnergyPrice(excessBlobEnergy uint64) uint64 {
	return fakeExponential(params.BlobTxMinBlobEnergyprice, excessBlobEnergy, params.BlobTxEnergyPriceUpdateFraction)
}

// fakeExponential approximates factor * e**(numerator/denominator) using
// the Taylor expansion the protocol defines, summing terms until one
// underflows to zero (spec.md §6, §8 property 10: fakeExponential(f, 0,
// d) == f, and is monotone non-decreasing in numerator). denominator is
// never zero in any caller here; a zero denominator panics rather than
// silently misbehaving, since that would only happen from a programming
// error, not untrusted input.
func fakeExponential(factor, numerator, denominator uint64) uint64 {
	if denominator == 0 {
		panic("core: fakeExponential called with zero denominator")
	}
	var (
		i            = big.NewInt(1)
		output       = new(big.Int)
		bigFactor    = new(big.Int).SetUint64(factor)
		bigNumerator = new(big.Int).SetUint64(numerator)
		bigDenom     = new(big.Int).SetUint64(denominator)
		numeratorAcc = new(big.Int).Mul(bigFactor, bigDenom)
		term         = new(big.Int)
	)
	for numeratorAcc.Sign() > 0 {
		output.Add(output, numeratorAcc)
		term.Mul(numeratorAcc, bigNumerator)
		term.Div(term, new(big.Int).Mul(bigDenom, i))
		numeratorAcc.Set(term)
		i.Add(i, big.NewInt(1))
	}
	return new(big.Int).Div(output, bigDenom).Uint64()
}
