// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package diag implements the precondition-diagnostic surface shared
// by attr and scenegraph.
//
// Every operation in those packages that hits a caller bug (an unknown
// enum tag, an out-of-range index, a detached scene) is a precondition
// violation, never routine control flow. Reporting one writes a single
// line to a redirectable sink and returns an error the caller is meant
// to propagate; it never panics on its own, but a program can opt into
// aborting via SetAbort, mirroring release builds that terminate on
// invariant breakage instead of returning to undefined behavior.
package diag

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Kind identifies the taxonomy of a precondition violation.
type Kind int

// Precondition kinds.
const (
	InvalidType Kind = iota
	InvalidName
	UnknownStringSize
	TypeMismatch
	RecordTooLarge
	EmptyRecord
	NotSorted
	DuplicateAttribute
	InvalidLayerRange
	IndexOutOfRange
	AttributeNotFound
	LayerNotFound
	MissingTexture
	NotScene
	ForeignObject
	Detached
	TooManyObjects
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case InvalidType:
		return "InvalidType"
	case InvalidName:
		return "InvalidName"
	case UnknownStringSize:
		return "UnknownStringSize"
	case TypeMismatch:
		return "TypeMismatch"
	case RecordTooLarge:
		return "RecordTooLarge"
	case EmptyRecord:
		return "EmptyRecord"
	case NotSorted:
		return "NotSorted"
	case DuplicateAttribute:
		return "DuplicateAttribute"
	case InvalidLayerRange:
		return "InvalidLayerRange"
	case IndexOutOfRange:
		return "IndexOutOfRange"
	case AttributeNotFound:
		return "AttributeNotFound"
	case LayerNotFound:
		return "LayerNotFound"
	case MissingTexture:
		return "MissingTexture"
	case NotScene:
		return "NotScene"
	case ForeignObject:
		return "ForeignObject"
	case Detached:
		return "Detached"
	case TooManyObjects:
		return "TooManyObjects"
	default:
		return fmt.Sprintf("Kind(0x%02X)", int(k))
	}
}

// Error is the error type returned by Report.
// Op is the operation identity named in the diagnostic
// (e.g. "MaterialData::has_attribute"); Kind is the taxonomy
// entry; Detail is the offending name/type/index rendered as text.
type Error struct {
	Op     string
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Op + ": " + e.Kind.String()
	}
	return e.Op + ": " + e.Kind.String() + ": " + e.Detail
}

var (
	mu    sync.Mutex
	sink  io.Writer = os.Stderr
	abort bool
)

// SetSink redirects the diagnostic sink. Passing nil silences it.
// It returns the previously configured sink.
func SetSink(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := sink
	if w == nil {
		w = io.Discard
	}
	sink = w
	return prev
}

// SetAbort configures whether Report panics after writing to the
// sink, emulating a release build that terminates on a precondition
// violation instead of returning to the caller.
func SetAbort(b bool) { mu.Lock(); abort = b; mu.Unlock() }

// Report writes a single diagnostic line to the sink and returns an
// *Error describing the violation. If SetAbort(true) was called, it
// panics with the same error after writing the line.
func Report(op string, kind Kind, detail string) error {
	err := &Error{Op: op, Kind: kind, Detail: detail}
	mu.Lock()
	w := sink
	doAbort := abort
	mu.Unlock()
	fmt.Fprintln(w, err.Error())
	if doAbort {
		panic(err)
	}
	return err
}
