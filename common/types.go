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
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
)

const (
	// HashLength is the expected length of a word-sized hash.
	HashLength = 32
	// AddressLength is the expected length of an account address. Wider
	// than the 20-byte Ethereum form: a 2-byte prefix followed by a 20-byte
	// body (derived addresses carry CalculateChecksum of the body there).
	AddressLength = 22
)

var (
	hashT    = reflect.TypeOf(Hash{})
	addressT = reflect.TypeOf(Address{})
)

// Hash represents the 32-byte output of the protocol's hash function.
type Hash [HashLength]byte

// BytesToHash sets b to hash. If b is larger than HashLength, b will be
// cropped from the left.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// HexToHash sets byte representation of s to hash. If s is larger than
// HashLength, s will be cropped from the left.
func HexToHash(s string) Hash { return BytesToHash(FromHex(s)) }

// BigToHash sets byte representation of b to hash. If b is larger than
// HashLength, b will be cropped from the left.
func BigToHash(b *big.Int) Hash { return BytesToHash(b.Bytes()) }

// Bytes gets the byte representation of the underlying hash.
func (h Hash) Bytes() []byte { return h[:] }

// Hex converts a hash to a hex string.
func (h Hash) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

// TerminalString implements a log-friendly shortened form for long output.
func (h Hash) TerminalString() string {
	return fmt.Sprintf("%x…%x", h[:3], h[len(h)-3:])
}

// String implements the stringer interface and is used also by gometalinter.
func (h Hash) String() string { return h.Hex() }

// Format implements fmt.Formatter, forcing the byte slice to be formatted
// as is, without going through the stringer interface used for logging.
func (h Hash) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "%"+string(c), h[:])
}

// SetBytes sets the hash to the value of b. If b is larger than
// HashLength, b will be cropped from the left.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > len(h) {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// Scan implements database/sql's Scanner interface.
func (h *Hash) Scan(src interface{}) error {
	srcB, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("can't scan %T into Hash", src)
	}
	if len(srcB) != HashLength {
		return fmt.Errorf("can't scan []byte of len %d into Hash, want %d", len(srcB), HashLength)
	}
	copy(h[:], srcB)
	return nil
}

// Value implements the database/sql/driver Valuer interface.
func (h Hash) Value() (driver.Value, error) { return h[:], nil }

// MarshalText returns the hex representation of h.
func (h Hash) MarshalText() ([]byte, error) { return hexBytes(h[:]).MarshalText() }

// UnmarshalText parses a hash in hex syntax.
func (h *Hash) UnmarshalText(input []byte) error {
	return unmarshalFixedText("Hash", input, h[:])
}

// UnmarshalJSON parses a hash in hex syntax.
func (h *Hash) UnmarshalJSON(input []byte) error {
	return unmarshalFixedJSON(hashT, input, h[:])
}

// Address represents the 22-byte address of a protocol account. The first
// two bytes are a prefix (for derived addresses, the checksum that
// CalculateChecksum computes over the body); the remaining 20 bytes are the
// account identifier.
type Address [AddressLength]byte

// BytesToAddress returns Address with value b. If b is larger than
// AddressLength, b will be cropped from the left.
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// HexToAddress returns Address with byte values of s. It returns an error if
// s is not valid hex or does not decode to exactly AddressLength bytes.
func HexToAddress(s string) (Address, error) {
	b, err := hex.DecodeString(trim0x(s))
	if err != nil {
		return Address{}, err
	}
	if len(b) != AddressLength {
		return Address{}, fmt.Errorf("invalid address length %d, want %d", len(b), AddressLength)
	}
	return BytesToAddress(b), nil
}

// IsHexAddress verifies whether a string can represent a valid hex-encoded
// address or not.
func IsHexAddress(s string) bool {
	s = trim0x(s)
	if len(s) != 2*AddressLength {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// Bytes gets the byte representation of the underlying address.
func (a Address) Bytes() []byte { return a[:] }

// Bytes22 returns the raw, 22-byte array of the address, matching the
// common cvm-stack idiom for coercing a 32-byte stack word down to an
// address.
func (a Address) Bytes22() [22]byte { return a }

// Hex returns an hex-encoded string representation of the address.
func (a Address) Hex() string { return "0x" + hex.EncodeToString(a[:]) }

// String implements fmt.Stringer.
func (a Address) String() string { return a.Hex() }

// Format implements fmt.Formatter.
func (a Address) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "%"+string(c), a[:])
}

// SetBytes sets the address to the value of b. If b is larger than
// AddressLength, b will be cropped from the left.
func (a *Address) SetBytes(b []byte) {
	if len(b) > len(a) {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

// Scan implements database/sql's Scanner interface.
func (a *Address) Scan(src interface{}) error {
	srcB, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("can't scan %T into Address", src)
	}
	if len(srcB) != AddressLength {
		return fmt.Errorf("can't scan []byte of len %d into Address, want %d", len(srcB), AddressLength)
	}
	copy(a[:], srcB)
	return nil
}

// Value implements the database/sql/driver Valuer interface.
func (a Address) Value() (driver.Value, error) { return a[:], nil }

// MarshalText returns the hex representation of a.
func (a Address) MarshalText() ([]byte, error) { return hexBytes(a[:]).MarshalText() }

// UnmarshalJSON parses an address in hex syntax.
func (a *Address) UnmarshalJSON(input []byte) error {
	return unmarshalFixedJSON(addressT, input, a[:])
}

// CopyBytes returns an exact copy of the provided bytes.
func CopyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}

// FromHex returns the bytes represented by the hexadecimal string s, with
	// or without a 0x prefix.
func FromHex(s string) []byte {
	s = trim0x(s)
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, _ := hex.DecodeString(s)
	return b
}

func trim0x(s string) string {
	if len(s) >= 2 && (s[0:2] == "0x" || s[0:2] == "0X") {
		return s[2:]
	}
	return s
}

type hexBytes []byte

func (b hexBytes) MarshalText() ([]byte, error) {
	result := make([]byte, len(b)*2+2)
	copy(result, `0x`)
	hex.Encode(result[2:], b)
	return result, nil
}

func unmarshalFixedJSON(typ reflect.Type, input, out []byte) error {
	var v string
	if err := json.Unmarshal(input, &v); err != nil {
		return fmt.Errorf("cannot unmarshal non-string into %v", typ)
	}
	return unmarshalFixedText(typ.String(), []byte(v), out)
}

func unmarshalFixedText(typname string, input, out []byte) error {
	raw := trim0x(string(input))
	dec, err := hex.DecodeString(raw)
	if err != nil {
		return fmt.Errorf("invalid hex string for %s: %v", typname, err)
	}
	if len(dec) != len(out) {
		return fmt.Errorf("hex string has length %d, want %d for %s", len(dec)*2, len(out)*2, typname)
	}
	copy(out, dec)
	return nil
}
