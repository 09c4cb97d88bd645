package cpu

import "fmt"

// IllegalInstructionError is returned by Step/Run when the decoder reads
// an opcode byte with no entry in the dispatch table. PC has already
// advanced past the offending byte when this is returned.
type IllegalInstructionError struct {
	Opcode byte
	At     uint16 // address the opcode byte was read from
}

func (e *IllegalInstructionError) Error() string {
	return fmt.Sprintf("illegal instruction %#02x at %#04x", e.Opcode, e.At)
}

// UnimplementedError is returned when a recognized opcode maps to a
// kernel this core deliberately does not execute (decimal-mode ADC, SBC,
// RTI). It is distinct from IllegalInstructionError so
// callers can tell "not a 6502 opcode" apart from "a 6502 opcode this
// core declines to execute".
type UnimplementedError struct {
	Mnemonic string
	Detail   string
}

func (e *UnimplementedError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("unimplemented instruction %s", e.Mnemonic)
	}
	return fmt.Sprintf("unimplemented instruction %s (%s)", e.Mnemonic, e.Detail)
}
