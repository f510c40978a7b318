// Copyright 2017 by the Authors
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

package log

import (
	"bytes"
	"fmt"
	"strconv"
)

const timeFormat = "2006-01-02T15:04:05-0700"

// Format renders a Record as a line of bytes.
type Format interface {
	Format(r *Record) []byte
}

type formatFunc func(*Record) []byte

func (f formatFunc) Format(r *Record) []byte { return f(r) }

// TerminalFormat renders records the way go-core's "glog" terminal handler
// does: "LVL[time] msg key=val key=val...".
func TerminalFormat() Format {
	return formatFunc(func(r *Record) []byte {
		b := &bytes.Buffer{}
		fmt.Fprintf(b, "%s[%s] %s", r.Lvl.String(), r.Time.Format(timeFormat), r.Msg)
		for i := 0; i < len(r.Ctx); i += 2 {
			fmt.Fprintf(b, " %s=%s", r.Ctx[i], formatValue(r.Ctx[i+1]))
		}
		b.WriteByte('\n')
		return b.Bytes()
	})
}

// LogfmtFormat renders records as logfmt-style key=value pairs, including
// time and level, one record per line.
func LogfmtFormat() Format {
	return formatFunc(func(r *Record) []byte {
		b := &bytes.Buffer{}
		fmt.Fprintf(b, "t=%s lvl=%s msg=%s", r.Time.Format(timeFormat), r.Lvl.String(), strconv.Quote(r.Msg))
		for i := 0; i < len(r.Ctx); i += 2 {
			fmt.Fprintf(b, " %v=%s", r.Ctx[i], formatValue(r.Ctx[i+1]))
		}
		b.WriteByte('\n')
		return b.Bytes()
	})
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case error:
		return strconv.Quote(v.Error())
	case fmt.Stringer:
		return strconv.Quote(v.String())
	case string:
		return strconv.Quote(v)
	default:
		return strconv.Quote(fmt.Sprintf("%+v", v))
	}
}
