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

// Package log implements a minimal, structured, leveled logger in the style
// of inconshreveable/log15, the way github.com/core-coin/go-core/log wraps
// it. The handler pipeline and interpreter loop use it for Debug/Trace
// diagnostics only; per-transaction detail never reaches Info or above.
package log

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Lvl is a log severity level.
type Lvl int

const (
	LvlCrit Lvl = iota
	LvlError
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

func (l Lvl) String() string {
	switch l {
	case LvlCrit:
		return "crit"
	case LvlError:
		return "eror"
	case LvlWarn:
		return "warn"
	case LvlInfo:
		return "info"
	case LvlDebug:
		return "dbug"
	case LvlTrace:
		return "trce"
	default:
		return "unkn"
	}
}

// LvlFromString parses a level name, accepting the same spellings log15 does.
func LvlFromString(s string) (Lvl, error) {
	switch s {
	case "crit":
		return LvlCrit, nil
	case "error", "eror":
		return LvlError, nil
	case "warn":
		return LvlWarn, nil
	case "info":
		return LvlInfo, nil
	case "debug", "dbug":
		return LvlDebug, nil
	case "trace", "trce":
		return LvlTrace, nil
	default:
		return LvlDebug, fmt.Errorf("unknown level: %v", s)
	}
}

// Record is a single log event produced by a Logger and consumed by a
// Handler.
type Record struct {
	Time  time.Time
	Lvl   Lvl
	Msg   string
	Ctx   []interface{}
	Call  string
}

// A Logger writes structured, leveled messages with a fixed context.
type Logger interface {
	New(ctx ...interface{}) Logger

	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
	Crit(msg string, ctx ...interface{})

	GetHandler() Handler
	SetHandler(h Handler)
}

type logger struct {
	ctx []interface{}
	h   *swapHandler
}

// swapHandler lets a logger's handler be replaced atomically (by Root's
// SetHandler) without every child logger needing to be revisited.
type swapHandler struct {
	handler Handler
}

func (s *swapHandler) Log(r *Record) error {
	if s.handler == nil {
		return nil
	}
	return s.handler.Log(r)
}

func (l *logger) write(lvl Lvl, msg string, ctx []interface{}) {
	r := &Record{
		Time: time.Now(),
		Lvl:  lvl,
		Msg:  msg,
		Ctx:  newContext(l.ctx, ctx),
	}
	l.h.Log(r)
}

func newContext(prefix []interface{}, suffix []interface{}) []interface{} {
	normalizedSuffix := normalize(suffix)
	newCtx := make([]interface{}, 0, len(prefix)+len(normalizedSuffix))
	newCtx = append(newCtx, prefix...)
	newCtx = append(newCtx, normalizedSuffix...)
	return newCtx
}

func normalize(ctx []interface{}) []interface{} {
	if len(ctx)%2 != 0 {
		ctx = append(ctx, nil, "LOG_ERR_MISSING_VALUE")
	}
	return ctx
}

func (l *logger) New(ctx ...interface{}) Logger {
	child := &logger{newContext(l.ctx, ctx), new(swapHandler)}
	child.SetHandler(l.h)
	return child
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.write(LvlTrace, msg, ctx) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.write(LvlDebug, msg, ctx) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.write(LvlInfo, msg, ctx) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.write(LvlWarn, msg, ctx) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.write(LvlError, msg, ctx) }
func (l *logger) Crit(msg string, ctx ...interface{}) {
	l.write(LvlCrit, msg, ctx)
	os.Exit(1)
}

func (l *logger) GetHandler() Handler { return l.h.handler }
func (l *logger) SetHandler(h Handler) {
	if h == nil {
		h = DiscardHandler()
	}
	l.h.handler = h
}

var root = &logger{nil, new(swapHandler)}

func init() {
	out := os.Stderr
	var w = io.Writer(out)
	if isatty.IsTerminal(out.Fd()) {
		w = colorable.NewColorable(out)
	}
	root.SetHandler(LvlFilterHandler(LvlInfo, StreamHandler(w, TerminalFormat())))
}

// Root returns the root logger, whose handler every freshly New'd logger
// inherits until SetHandler is called on it directly.
func Root() Logger { return root }

// New returns a new Logger with the given context merged into Root's.
func New(ctx ...interface{}) Logger { return root.New(ctx...) }

func Trace(msg string, ctx ...interface{}) { root.write(LvlTrace, msg, ctx) }
func Debug(msg string, ctx ...interface{}) { root.write(LvlDebug, msg, ctx) }
func Info(msg string, ctx ...interface{})  { root.write(LvlInfo, msg, ctx) }
func Warn(msg string, ctx ...interface{})  { root.write(LvlWarn, msg, ctx) }
func Error(msg string, ctx ...interface{}) { root.write(LvlError, msg, ctx) }
func Crit(msg string, ctx ...interface{})  { root.write(LvlCrit, msg, ctx) }
