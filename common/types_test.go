// Copyright 2015 by the Authors
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

package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestBytesConversion(t *testing.T) {
	data := []byte{5}
	hash := BytesToHash(data)

	var exp Hash
	exp[31] = 5

	if hash != exp {
		t.Errorf("expected %x got %x", exp, hash)
	}
}

func TestIsHexAddress(t *testing.T) {
	tests := []struct {
		str string
		exp bool
	}{
		{strings.Repeat("ab", AddressLength), true},
		{"0x" + strings.Repeat("ab", AddressLength), true},
		{strings.Repeat("ab", AddressLength-1), false},
		{strings.Repeat("ab", AddressLength) + "aa", false},
		{"0xxx" + strings.Repeat("ab", AddressLength-1), false},
	}

	for _, test := range tests {
		if result := IsHexAddress(test.str); result != test.exp {
			t.Errorf("IsHexAddress(%s) == %v; expected %v", test.str, result, test.exp)
		}
	}
}

func TestHashJsonValidation(t *testing.T) {
	var tests = []struct {
		Prefix string
		Size   int
		Error  string
	}{
		{"", 63, "invalid hex string for common.Hash: encoding/hex: odd length hex string"},
		{"0x", 66, "hex string has length 66, want 64 for common.Hash"},
		{"0x", 0, "hex string has length 0, want 64 for common.Hash"},
		{"0x", 64, ""},
		{"0X", 64, ""},
	}
	for _, test := range tests {
		input := `"` + test.Prefix + strings.Repeat("0", test.Size) + `"`
		var v Hash
		err := json.Unmarshal([]byte(input), &v)
		if err == nil {
			if test.Error != "" {
				t.Errorf("%s: error mismatch: have nil, want %q", input, test.Error)
			}
		} else {
			if err.Error() != test.Error {
				t.Errorf("%s: error mismatch: have %q, want %q", input, err, test.Error)
			}
		}
	}
}

func TestAddressUnmarshalJSON(t *testing.T) {
	addrHex := strings.Repeat("cb", AddressLength)
	var tests = []struct {
		Input     string
		ShouldErr bool
	}{
		{`"0x99"`, true},
		{`"` + addrHex + `"`, false},
		{`"0x` + addrHex + `"`, false},
	}
	for i, test := range tests {
		var v Address
		err := json.Unmarshal([]byte(test.Input), &v)
		if err != nil && !test.ShouldErr {
			t.Errorf("test #%d: unexpected error: %v", i, err)
		}
		if err == nil && test.ShouldErr {
			t.Errorf("test #%d: expected error, got none", i)
		}
	}
}

func TestHash_Scan(t *testing.T) {
	src := make([]byte, HashLength)
	for i := range src {
		src[i] = byte(i)
	}
	h := &Hash{}
	if err := h.Scan(src); err != nil {
		t.Fatalf("Hash.Scan() error = %v", err)
	}
	if !bytes.Equal(h[:], src) {
		t.Errorf("Hash.Scan() didn't scan correctly: have %x, want %x", h[:], src)
	}
	if err := h.Scan(int64(1)); err == nil {
		t.Errorf("Hash.Scan() expected error scanning non-[]byte")
	}
	if err := h.Scan(src[:HashLength-1]); err == nil {
		t.Errorf("Hash.Scan() expected error scanning wrong length")
	}
}

func TestHash_Value(t *testing.T) {
	b := make([]byte, HashLength)
	for i := range b {
		b[i] = byte(i)
	}
	var h Hash
	h.SetBytes(b)
	got, err := h.Value()
	if err != nil {
		t.Fatalf("Hash.Value() error = %v", err)
	}
	if !reflect.DeepEqual(got, interface{}([]byte(b))) {
		t.Errorf("Hash.Value() = %v, want %v", got, b)
	}
}

func TestAddress_Scan(t *testing.T) {
	src := make([]byte, AddressLength)
	for i := range src {
		src[i] = byte(i)
	}
	a := &Address{}
	if err := a.Scan(src); err != nil {
		t.Fatalf("Address.Scan() error = %v", err)
	}
	if !bytes.Equal(a[:], src) {
		t.Errorf("Address.Scan() didn't scan correctly: have %x, want %x", a[:], src)
	}
	if err := a.Scan(int64(1)); err == nil {
		t.Errorf("Address.Scan() expected error scanning non-[]byte")
	}
}

func TestAddress_Value(t *testing.T) {
	b := make([]byte, AddressLength)
	for i := range b {
		b[i] = byte(i)
	}
	var a Address
	a.SetBytes(b)
	got, err := a.Value()
	if err != nil {
		t.Fatalf("Address.Value() error = %v", err)
	}
	if !reflect.DeepEqual(got, interface{}([]byte(b))) {
		t.Errorf("Address.Value() = %v, want %v", got, b)
	}
}

func TestAddress_Format(t *testing.T) {
	b := make([]byte, AddressLength)
	for i := range b {
		b[i] = byte(i)
	}
	var addr Address
	addr.SetBytes(b)

	want := fmt.Sprintf("%x", []byte(b))
	if got := fmt.Sprintf("%x", addr); got != want {
		t.Errorf("%%x does not render as expected:\n got  %s\n want %s", got, want)
	}
	if got := addr.Hex(); got != "0x"+want {
		t.Errorf("Hex() = %s, want %s", got, "0x"+want)
	}
}

func TestCalculateChecksum(t *testing.T) {
	addr := make([]byte, 20)
	for i := range addr {
		addr[i] = byte(i)
	}
	if got := CalculateChecksum(addr); len(got) != 4 {
		t.Errorf("CalculateChecksum() = %q, want a 2-byte hex string", got)
	}
}
