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

// Package crypto wraps the hash and signature primitives the interpreter
// and handler pipeline treat as opaque: Keccak256 for hashing, and an
// EdDSA-based signature recovery used by precompile #1. Curve arithmetic
// itself lives in github.com/core-coin/go-goldilocks and is never
// reimplemented here.
package crypto

import (
	"errors"

	"github.com/core-coin/cvm/common"
	"github.com/core-coin/go-goldilocks"
	"golang.org/x/crypto/sha3"
)

// SignatureLength is the length of an EdDSA signature before the public
// key suffix used for recovery.
const SignatureLength = 112 + 56

// ExtendedSignatureLength is SignatureLength plus the embedded public key,
// the wire format accepted by precompile #1 and Ecrecover.
const ExtendedSignatureLength = SignatureLength + 56

// PubkeyLength is the length in bytes of a marshalled EdDSA public key.
const PubkeyLength = 56

var errInvalidSignature = errors.New("invalid signature")

// Keccak256 calculates and returns the Keccak256 hash of the input data.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Hash calculates and returns the Keccak256 hash of the input
// data, converting it to an internal Hash data structure.
func Keccak256Hash(data ...[]byte) (h common.Hash) {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	d.Sum(h[:0])
	return h
}

// CreateAddress derives the address for a CREATE, from sender and nonce:
// hash(sender‖nonce) truncated to the 20-byte suffix, checksum-prefixed.
func CreateAddress(b common.Address, nonce uint64) common.Address {
	nb := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		nb[i] = byte(nonce)
		nonce >>= 8
	}
	addr := Keccak256(b.Bytes(), nb)[12:]
	checksum := common.CalculateChecksum(addr)
	return common.BytesToAddress(append(common.Hex2Bytes(checksum), addr...))
}

// CreateAddress2 derives the address for a CREATE2, from sender, salt and
// the hash of the init code: hash(0xff‖sender‖salt‖hash(init_code)).
func CreateAddress2(b common.Address, salt [32]byte, inithash []byte) common.Address {
	addr := Keccak256([]byte{0xff}, b.Bytes(), salt[:], inithash)[12:]
	checksum := common.CalculateChecksum(addr)
	return common.BytesToAddress(append(common.Hex2Bytes(checksum), addr...))
}

// PubkeyToAddress derives the account address owning the given public key.
func PubkeyToAddress(p goldilocks.PublicKey) common.Address {
	pubBytes := p.Bytes()
	addr := Keccak256(pubBytes[:])[12:]
	checksum := common.CalculateChecksum(addr)
	return common.BytesToAddress(append(common.Hex2Bytes(checksum), addr...))
}

// Ecrecover returns the public key that created the given EdDSA signature.
// It returns a nil key and a nil error on a structurally valid but
// cryptographically invalid signature — the precompile charges its base
// cost either way and returns empty output rather than surfacing an error.
func Ecrecover(hash, sig []byte) ([]byte, error) {
	if len(sig) != ExtendedSignatureLength {
		return nil, errInvalidSignature
	}
	pub := sig[SignatureLength:]
	if !goldilocks.Verify(goldilocks.BytesToPublicKey(pub), hash, sig[:SignatureLength]) {
		return nil, nil
	}
	return pub, nil
}
