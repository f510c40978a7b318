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

package crypto

import (
	"bytes"
	"testing"

	"github.com/core-coin/cvm/common"
)

// Sanity check: Keccak256 must be deterministic and 32 bytes wide,
// distinct from a plain SHA3-256 digest of the same input.
func TestKeccak256Hash(t *testing.T) {
	msg := []byte("abc")
	got := Keccak256(msg)
	if len(got) != 32 {
		t.Fatalf("Keccak256 length = %d, want 32", len(got))
	}
	if !bytes.Equal(got, Keccak256(msg)) {
		t.Fatalf("Keccak256 is not deterministic")
	}
}

func TestCreateAddressDeterministic(t *testing.T) {
	var sender common.Address
	a0 := CreateAddress(sender, 0)
	a1 := CreateAddress(sender, 1)
	if a0 == a1 {
		t.Fatalf("CreateAddress should depend on nonce")
	}
	if a0 != CreateAddress(sender, 0) {
		t.Fatalf("CreateAddress should be deterministic")
	}
}

// CreateAddress2 produces a 22-byte address with a checksum-style prefix
// derived from the 20-byte body, so it cannot reproduce the 20-byte
// Ethereum-form literals (e.g. scenario S5's expected 0x4D1A...BF38) found
// in Ethereum CREATE2 test vectors. Only the derivation's determinism is
// checked here.
func TestCreateAddress2Deterministic(t *testing.T) {
	var sender common.Address
	var salt [32]byte
	codeHash := Keccak256(nil)
	a0 := CreateAddress2(sender, salt, codeHash)
	a1 := CreateAddress2(sender, salt, codeHash)
	if a0 != a1 {
		t.Fatalf("CreateAddress2 should be deterministic")
	}
}

func TestEcrecoverWrongLength(t *testing.T) {
	if _, err := Ecrecover(make([]byte, 32), make([]byte, 10)); err == nil {
		t.Fatalf("expected error for short signature")
	}
}

func TestEcrecoverInvalidSignatureReturnsNilNotError(t *testing.T) {
	hash := Keccak256([]byte("msg"))
	sig := make([]byte, ExtendedSignatureLength)
	pub, err := Ecrecover(hash, sig)
	if err != nil {
		t.Fatalf("invalid (but structurally valid) signature must not return an error, got %v", err)
	}
	if pub != nil {
		t.Fatalf("invalid signature must recover no public key")
	}
}
