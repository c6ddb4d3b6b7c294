package encoder

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies why a line could not be encoded.
type ErrorKind int

const (
	UnknownMnemonic ErrorKind = iota + 1
	UnknownRegister
	MalformedOperand
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownMnemonic:
		return "unknown mnemonic"
	case UnknownRegister:
		return "unknown register"
	case MalformedOperand:
		return "malformed operand"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinels that an EncodeError of the corresponding kind unwraps to, for
// use with errors.Is.
var (
	ErrUnknownMnemonic  = errors.New(UnknownMnemonic.String())
	ErrUnknownRegister  = errors.New(UnknownRegister.String())
	ErrMalformedOperand = errors.New(MalformedOperand.String())
)

// EncodeError describes a line that could not be encoded.
type EncodeError struct {
	Kind ErrorKind

	// Line is the source line as it was given to the encoder.
	Line string

	// Token is the mnemonic or operand that caused the failure. It is
	// empty when the problem is with the line as a whole, such as having
	// the wrong number of operands.
	Token string

	// Reason optionally gives more detail than Kind alone.
	Reason string
}

func (e *EncodeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Token != "" {
		fmt.Fprintf(&b, " %q", e.Token)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	fmt.Fprintf(&b, " in %q", strings.TrimSpace(e.Line))
	return b.String()
}

func (e *EncodeError) Unwrap() error {
	switch e.Kind {
	case UnknownMnemonic:
		return ErrUnknownMnemonic
	case UnknownRegister:
		return ErrUnknownRegister
	case MalformedOperand:
		return ErrMalformedOperand
	default:
		return nil
	}
}
