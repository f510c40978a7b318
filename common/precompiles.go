// Copyright 2016 by the Authors
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

// Fixed addresses of the built-in precompiled contracts, 1 through 9.
var (
	Addr1 = BytesToAddress([]byte{1})
	Addr2 = BytesToAddress([]byte{2})
	Addr3 = BytesToAddress([]byte{3})
	Addr4 = BytesToAddress([]byte{4})
	Addr5 = BytesToAddress([]byte{5})
	Addr6 = BytesToAddress([]byte{6})
	Addr7 = BytesToAddress([]byte{7})
	Addr8 = BytesToAddress([]byte{8})
	Addr9 = BytesToAddress([]byte{9})
)
