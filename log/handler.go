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
	"io"
	"sync"

	"github.com/go-stack/stack"
)

// Handler dispatches a Record somewhere: a stream, a filter, a multiplexer.
type Handler interface {
	Log(r *Record) error
}

// FuncHandler turns a function into a Handler.
type FuncHandler func(r *Record) error

func (h FuncHandler) Log(r *Record) error { return h(r) }

// StreamHandler writes records to a io.Writer, formatted with fmtr, one
// record at a time behind a mutex (matches log15's own StreamHandler: the
// underlying writer is assumed not safe for concurrent use on its own).
func StreamHandler(wr io.Writer, fmtr Format) Handler {
	h := FuncHandler(func(r *Record) error {
		_, err := wr.Write(fmtr.Format(r))
		return err
	})
	return &syncHandler{h: h}
}

type syncHandler struct {
	mu sync.Mutex
	h  Handler
}

func (s *syncHandler) Log(r *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.h.Log(r)
}

// DiscardHandler discards every record. It is the handler a Logger is given
// when SetHandler(nil) is called.
func DiscardHandler() Handler {
	return FuncHandler(func(r *Record) error { return nil })
}

// LvlFilterHandler returns a Handler that only forwards records at or above
// maxLvl (where LvlCrit < LvlError < ... < LvlTrace numerically, so "above"
// here means "at least as severe").
func LvlFilterHandler(maxLvl Lvl, h Handler) Handler {
	return FuncHandler(func(r *Record) error {
		if r.Lvl > maxLvl {
			return nil
		}
		return h.Log(r)
	})
}

// MultiHandler fans a record out to every handler given, stopping at the
// first error.
func MultiHandler(hs ...Handler) Handler {
	return FuncHandler(func(r *Record) error {
		for _, h := range hs {
			if err := h.Log(r); err != nil {
				return err
			}
		}
		return nil
	})
}

// CallerFileHandler annotates records with the file:line of the call site
// that produced them. The call site is resolved for every record, before
// the record is passed on to h.
func CallerFileHandler(h Handler) Handler {
	return FuncHandler(func(r *Record) error {
		call := stack.Caller(3)
		r.Call = fmtCall(call)
		return h.Log(r)
	})
}

func fmtCall(c stack.Call) string {
	return c.String()
}
