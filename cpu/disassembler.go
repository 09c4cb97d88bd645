package cpu

import (
	"bytes"
	"fmt"
)

// Disassemble renders every instruction between startAddr and endAddr
// (inclusive) into a map from the instruction's own address to a
// human-readable line, in the style "$0400: LDA #$42 {IMM}". Bytes that
// do not decode to a known opcode are rendered as "???" rather than
// aborting the listing; Disassemble is a debugging aid, not an executor,
// so it never returns an error.
func (c *CPU) Disassemble(startAddr, endAddr uint16) map[uint16]string {
	listing := make(map[uint16]string)
	var line bytes.Buffer

	addr := uint32(startAddr)
	for addr <= uint32(endAddr) {
		lineAddr := uint16(addr)
		line.WriteString(fmt.Sprintf("$%04X: ", lineAddr))

		opcode := c.Peek(uint16(addr))
		addr++

		inst := opcodeTable[opcode]
		if inst == nil {
			line.WriteString(fmt.Sprintf("??? {$%02X}", opcode))
			listing[lineAddr] = line.String()
			line.Reset()
			continue
		}
		line.WriteString(inst.Name)
		line.WriteByte(' ')

		switch inst.Mode {
		case Implied:
			line.WriteString("{IMP}")
		case Accumulator:
			line.WriteString("A {ACC}")
		case Immediate:
			v := c.Peek(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("#$%02X {IMM}", v))
		case Relative:
			v := int8(c.Peek(uint16(addr)))
			addr++
			target := uint16(int32(addr) + int32(v))
			line.WriteString(fmt.Sprintf("$%02X [$%04X] {REL}", byte(v), target))
		case ZeroPage:
			v := c.Peek(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("$%02X {ZP0}", v))
		case ZeroPageX:
			v := c.Peek(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("$%02X,X {ZPX}", v))
		case ZeroPageY:
			v := c.Peek(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("$%02X,Y {ZPY}", v))
		case Absolute:
			lo := c.Peek(uint16(addr))
			addr++
			hi := c.Peek(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("$%04X {ABS}", uint16(hi)<<8|uint16(lo)))
		case AbsoluteX:
			lo := c.Peek(uint16(addr))
			addr++
			hi := c.Peek(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("$%04X,X {ABX}", uint16(hi)<<8|uint16(lo)))
		case AbsoluteY:
			lo := c.Peek(uint16(addr))
			addr++
			hi := c.Peek(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("$%04X,Y {ABY}", uint16(hi)<<8|uint16(lo)))
		case Indirect:
			lo := c.Peek(uint16(addr))
			addr++
			hi := c.Peek(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("($%04X) {IND}", uint16(hi)<<8|uint16(lo)))
		case IndexedIndirect:
			v := c.Peek(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("($%02X,X) {IZX}", v))
		case IndirectIndexed:
			v := c.Peek(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("($%02X),Y {IZY}", v))
		}

		listing[lineAddr] = line.String()
		line.Reset()
	}

	return listing
}
