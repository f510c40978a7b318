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

package common

import "encoding/hex"

// LeftPadBytes zero-pads slice to the left up to length l.
func LeftPadBytes(slice []byte, l int) []byte {
	if l <= len(slice) {
		return slice
	}
	padded := make([]byte, l)
	copy(padded[l-len(slice):], slice)
	return padded
}

// RightPadBytes zero-pads slice to the right up to length l.
func RightPadBytes(slice []byte, l int) []byte {
	if l <= len(slice) {
		return slice
	}
	padded := make([]byte, l)
	copy(padded, slice)
	return padded
}

// Hex2Bytes returns the bytes represented by the hexadecimal string str.
func Hex2Bytes(str string) []byte {
	b, _ := hex.DecodeString(str)
	return b
}

// Bytes2Hex returns the hexadecimal encoding of b.
func Bytes2Hex(b []byte) string {
	return hex.EncodeToString(b)
}

// CalculateChecksum derives the two-byte address checksum prefix this
// module prepends ahead of the 20-byte hash suffix to form a 22-byte
// address. It XOR-folds the hash suffix with itself, matching the style
// (not the exact byte values) of the go-core network-id checksum prefix;
// see DESIGN.md for why this module does not attempt byte-for-byte parity
// with go-core's unretrieved checksum source.
func CalculateChecksum(addr []byte) string {
	var c [2]byte
	for i, b := range addr {
		c[i%2] ^= b
	}
	return Bytes2Hex(c[:])
}
