// Copyright 2026 The midlc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package servant implements the dispatch side of an emitted interface: it
// reads a request message's 1-byte method-id prefix, decodes the matching
// in-args record via a generated skeleton table, and hands the call to an
// implementer-supplied callback. A dispatch never leaves Call with an error
// of its own — failures are translated into the canonical one-byte error
// reply and swallowed, matching the "call always completes" contract the
// emitted request/reply codec relies on.
package servant

import (
	"strconv"

	"github.com/google/uuid"
	logging "github.com/op/go-logging"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/midlc/midlc/wire"
)

var log = logging.MustGetLogger("servant")

// errReplyByte is the canonical one-byte error reply body: a request that
// could not be dispatched or decoded gets this back instead of a real
// out-args message.
const errReplyByte = 1

// SkeletonEntry is one dispatchable method of an emitted interface: its
// fixed in-args base size and the codec closures the servant dispatches
// through. The emitter generates one `[]SkeletonEntry` table per interface,
// indexed by method id; this type is shared across every generated
// interface rather than re-declared per interface, since every entry's
// shape is identical regardless of which interface or method it serves.
type SkeletonEntry struct {
	// ArgsSize is the in-args record's base byte footprint, including the
	// 1-byte method-id prefix. Dynamic content beyond this
	// is discovered by ReadArgs itself via the iterator it's handed.
	ArgsSize int

	// NewArgs allocates a zero-value in-args record for this method.
	NewArgs func() any

	// ReadArgs decodes msg's in-args into args, which must be the pointer
	// NewArgs returned.
	ReadArgs func(msg *wire.Message, args any) error

	// FreeArgs releases whatever ReadArgs allocated into args.
	FreeArgs func(args any)

	// CreateReply encodes out (the out-args record the implementation
	// callback filled in) as a reply message.
	CreateReply func(out any) (*wire.Message, error)
}

// Replier accepts exactly one reply message for a single pending call.
// Implementations decide how that message reaches the caller (in-process
// channel, socket write, test spy); this package only produces the
// message and hands it over.
type Replier interface {
	Reply(msg *wire.Message)
}

// ImplFn is the single dispatch callback a Servant holds. id is the
// method id already validated against the skeleton; args is the decoded
// in-args record (nil if the entry's ArgsSize is 0, which the emitter never
// generates since ArgsSize counts the method-id prefix). The callback
// is expected to call Return synchronously before returning, or to retain
// replier and call Return later for an asynchronous reply — either way
// Call itself returns as soon as the callback does.
type ImplFn func(s *Servant, replier Replier, id int, args any)

// DispatchTotal counts requests dispatched to an implementation callback,
// by method id. Like internal/diagnostics's counters, this is not
// auto-registered to the global registry; Register adds it to a
// caller-supplied one, so embedding midlc never collides with a host's own
// /metrics handler. Nothing in this module calls Register.
var DispatchTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "midlc_servant_dispatch_total",
		Help: "Requests dispatched to an implementation callback, by method id.",
	},
	[]string{"method_id"},
)

// ErrorTotal counts requests that short-circuited to the canonical error
// reply, by reason.
var ErrorTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "midlc_servant_error_total",
		Help: "Requests that short-circuited to the canonical error reply, by reason.",
	},
	[]string{"reason"},
)

// Register adds the package's metrics to reg.
func Register(reg *prometheus.Registry) {
	reg.MustRegister(DispatchTotal, ErrorTotal)
}

// Servant binds a skeleton table, a single implementation callback, and
// opaque user data the callback can close over via UserData.
type Servant struct {
	Skeleton []SkeletonEntry
	Impl     ImplFn
	UserData any
}

// New returns a Servant dispatching through skeleton to impl.
func New(skeleton []SkeletonEntry, impl ImplFn, userData any) *Servant {
	return &Servant{Skeleton: skeleton, Impl: impl, UserData: userData}
}

// Call reads msg's method-id prefix, decodes its in-args, and dispatches
// to s.Impl. A correlation id is attached to every dispatch purely for
// diagnostic logging; it is not carried on the wire. Any decode or
// range failure replies with the canonical one-byte error message instead
// of propagating an error — per the servant contract, a call always
// completes.
func (s *Servant) Call(msg *wire.Message, replier Replier) {
	callID := uuid.New()

	id := readMethodID(msg)
	if id < 0 || id >= len(s.Skeleton) {
		log.Debugf("call %s: method id %d out of range (skeleton has %d entries)", callID, id, len(s.Skeleton))
		ErrorTotal.WithLabelValues("method_id_out_of_range").Inc()
		replier.Reply(errorReply())
		return
	}
	entry := s.Skeleton[id]

	var args any
	if entry.ArgsSize > 0 {
		args = entry.NewArgs()
		if err := entry.ReadArgs(msg, args); err != nil {
			log.Debugf("call %s: method %d args decode failed: %v", callID, id, err)
			ErrorTotal.WithLabelValues("args_decode_failed").Inc()
			replier.Reply(errorReply())
			return
		}
	}

	log.Debugf("call %s: dispatching method %d", callID, id)
	DispatchTotal.WithLabelValues(strconv.Itoa(id)).Inc()
	s.Impl(s, replier, id, args)

	if entry.ArgsSize > 0 {
		entry.FreeArgs(args)
	}
}

// Return encodes outArgs via method id's CreateReply and hands the result
// to replier. Implementation callbacks call this (directly, or later via a
// retained replier) to complete a dispatched call.
func (s *Servant) Return(id int, replier Replier, outArgs any) error {
	msg, err := s.Skeleton[id].CreateReply(outArgs)
	if err != nil {
		ErrorTotal.WithLabelValues("reply_encode_failed").Inc()
		replier.Reply(errorReply())
		return err
	}
	replier.Reply(msg)
	return nil
}

// readMethodID reads msg's root 1-byte prefix, or -1 if msg carries no
// bytes at all.
func readMethodID(msg *wire.Message) int {
	if len(msg.Bytes) < 1 {
		return -1
	}
	return int(msg.Bytes[0])
}

// errorReply builds the canonical [0x01] error message.
func errorReply() *wire.Message {
	msg := wire.NewMessage(1, 0)
	iter := wire.NewIterator(msg)
	seg, err := iter.GetSegment(1, 0)
	if err != nil {
		// NewMessage(1, 0) always has room for exactly one byte.
		panic(err)
	}
	seg.PutU8(errReplyByte)
	return msg
}

