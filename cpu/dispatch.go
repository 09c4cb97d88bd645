package cpu

// Instruction pairs a mnemonic with the closure that resolves its
// addressing mode and applies its kernel. Exec is built once per opcode
// at package init time by the constructors below, not per CPU instance —
// the closures only ever touch the *CPU passed to Exec.
type Instruction struct {
	Name  string
	Mode  Mode
	Halts bool // true only for BRK, which terminates Run/Step successfully
	Exec  func(c *CPU) error
}

// regOp builds an Instruction around a register kernel: resolve the
// operand under mode, fetch it, and apply kernel.
func regOp(name string, mode Mode, kernel regKernel) Instruction {
	return Instruction{Name: name, Mode: mode, Exec: func(c *CPU) error {
		c.resolve(mode)
		c.fetch()
		return kernel(c, c.fetched)
	}}
}

// memOp builds a read-modify-write Instruction: resolve, fetch, apply
// kernel, write the transformed byte back to A (Accumulator mode) or the
// effective address (every other mode).
func memOp(name string, mode Mode, kernel memKernel) Instruction {
	return Instruction{Name: name, Mode: mode, Exec: func(c *CPU) error {
		c.resolve(mode)
		c.fetch()
		c.writeResult(kernel(c, c.fetched))
		return nil
	}}
}

// storeOp builds a store Instruction: resolve the effective address
// under mode and write reg's value there. Stores have no flag effects.
func storeOp(name string, mode Mode, reg func(c *CPU) byte) Instruction {
	return Instruction{Name: name, Mode: mode, Exec: func(c *CPU) error {
		c.resolve(mode)
		c.Poke(c.addrAbs, reg(c))
		return nil
	}}
}

// branchOp builds a conditional-branch Instruction: fetch the signed
// relative offset unconditionally, then add it to PC only if flag reads
// as want.
func branchOp(name string, flag Flag, want bool) Instruction {
	return Instruction{Name: name, Mode: Relative, Exec: func(c *CPU) error {
		c.resolve(Relative)
		if c.GetFlag(flag) == want {
			c.Pc += uint16(c.addrRel)
		}
		return nil
	}}
}

// flagOp builds an Instruction that sets or clears a single status flag.
func flagOp(name string, flag Flag, value bool) Instruction {
	return Instruction{Name: name, Exec: func(c *CPU) error {
		c.SetFlag(flag, value)
		return nil
	}}
}

// transferOp builds an 8-bit register-to-register copy. TXS is the only
// transfer that does not update Z/N.
func transferOp(name string, updateFlags bool, get func(c *CPU) byte, set func(c *CPU, v byte)) Instruction {
	return Instruction{Name: name, Exec: func(c *CPU) error {
		v := get(c)
		set(c, v)
		if updateFlags {
			c.updateZN(v)
		}
		return nil
	}}
}

// bumpOp builds an INX/INY/DEX/DEY-style increment or decrement of a
// single register, wrapping at 8 bits.
func bumpOp(name string, delta byte, get func(c *CPU) byte, set func(c *CPU, v byte)) Instruction {
	return Instruction{Name: name, Exec: func(c *CPU) error {
		v := get(c) + delta
		set(c, v)
		c.updateZN(v)
		return nil
	}}
}

func getA(c *CPU) byte     { return c.A }
func setA(c *CPU, v byte)  { c.A = v }
func getX(c *CPU) byte     { return c.X }
func setX(c *CPU, v byte)  { c.X = v }
func getY(c *CPU) byte     { return c.Y }
func setY(c *CPU, v byte)  { c.Y = v }
func getSp(c *CPU) byte    { return c.Sp }
func setSp(c *CPU, v byte) { c.Sp = v }

// opJMP builds JMP for either Absolute or Indirect addressing.
func opJMP(mode Mode) Instruction {
	return Instruction{Name: "JMP", Mode: mode, Exec: func(c *CPU) error {
		c.resolve(mode)
		c.Pc = c.addrAbs
		return nil
	}}
}

// opJSR pushes the address of the last byte of the JSR instruction
// (PC-1, after the operand fetch has already advanced PC past it) and
// jumps to the target address. RTS compensates by incrementing the
// pulled address by one, so the pair round-trips to the instruction
// immediately following JSR.
func opJSR(c *CPU) error {
	c.resolve(Absolute)
	c.pushWord(c.Pc - 1)
	c.Pc = c.addrAbs
	return nil
}

func opRTS(c *CPU) error {
	c.Pc = c.popWord() + 1
	return nil
}

// opRTI is an extension point: this core does not model the interrupt
// frame BRK would have pushed, so there is nothing correct for RTI to
// pull.
func opRTI(c *CPU) error {
	return &UnimplementedError{Mnemonic: "RTI"}
}

func opNOP(c *CPU) error { return nil }

func opPHA(c *CPU) error {
	c.push(c.A)
	return nil
}

func opPLA(c *CPU) error {
	c.A = c.pop()
	c.updateZN(c.A)
	return nil
}

// opPHP pushes status with B and the unused bit forced to 1, matching
// the historical convention that a pushed P always reports a break even
// when PHP itself did not cause one.
func opPHP(c *CPU) error {
	c.push(c.Status | byte(FlagB) | 0x20)
	return nil
}

// opPLP pulls status from the stack, leaving B as it was: B is never
// really "stored", only ever visible on the stack after a push.
func opPLP(c *CPU) error {
	b := c.GetFlag(FlagB)
	c.Status = c.pop()
	c.SetFlag(FlagB, b)
	return nil
}

// opcodeTable is the canonical 6502 (operation x addressing mode) map.
// Unmapped slots are left nil and surface as IllegalInstructionError.
var opcodeTable = buildOpcodeTable()

func buildOpcodeTable() [256]*Instruction {
	var t [256]*Instruction
	set := func(opcode byte, inst Instruction) {
		i := inst
		t[opcode] = &i
	}

	// ADC
	set(0x69, regOp("ADC", Immediate, adc))
	set(0x65, regOp("ADC", ZeroPage, adc))
	set(0x75, regOp("ADC", ZeroPageX, adc))
	set(0x6D, regOp("ADC", Absolute, adc))
	set(0x7D, regOp("ADC", AbsoluteX, adc))
	set(0x79, regOp("ADC", AbsoluteY, adc))
	set(0x61, regOp("ADC", IndexedIndirect, adc))
	set(0x71, regOp("ADC", IndirectIndexed, adc))

	// AND
	set(0x29, regOp("AND", Immediate, and))
	set(0x25, regOp("AND", ZeroPage, and))
	set(0x35, regOp("AND", ZeroPageX, and))
	set(0x2D, regOp("AND", Absolute, and))
	set(0x3D, regOp("AND", AbsoluteX, and))
	set(0x39, regOp("AND", AbsoluteY, and))
	set(0x21, regOp("AND", IndexedIndirect, and))
	set(0x31, regOp("AND", IndirectIndexed, and))

	// ASL
	set(0x0A, memOp("ASL", Accumulator, asl))
	set(0x06, memOp("ASL", ZeroPage, asl))
	set(0x16, memOp("ASL", ZeroPageX, asl))
	set(0x0E, memOp("ASL", Absolute, asl))
	set(0x1E, memOp("ASL", AbsoluteX, asl))

	// BIT
	set(0x24, regOp("BIT", ZeroPage, bit))
	set(0x2C, regOp("BIT", Absolute, bit))

	// Branches
	set(0x10, branchOp("BPL", FlagN, false))
	set(0x30, branchOp("BMI", FlagN, true))
	set(0x50, branchOp("BVC", FlagV, false))
	set(0x70, branchOp("BVS", FlagV, true))
	set(0x90, branchOp("BCC", FlagC, false))
	set(0xB0, branchOp("BCS", FlagC, true))
	set(0xD0, branchOp("BNE", FlagZ, false))
	set(0xF0, branchOp("BEQ", FlagZ, true))

	// BRK
	set(0x00, Instruction{Name: "BRK", Halts: true, Exec: func(c *CPU) error { return nil }})

	// Flag clear/set
	set(0x18, flagOp("CLC", FlagC, false))
	set(0x38, flagOp("SEC", FlagC, true))
	set(0x58, flagOp("CLI", FlagI, false))
	set(0x78, flagOp("SEI", FlagI, true))
	set(0xB8, flagOp("CLV", FlagV, false))
	set(0xD8, flagOp("CLD", FlagD, false))
	set(0xF8, flagOp("SED", FlagD, true))

	// CMP / CPX / CPY
	set(0xC9, regOp("CMP", Immediate, cmp))
	set(0xC5, regOp("CMP", ZeroPage, cmp))
	set(0xD5, regOp("CMP", ZeroPageX, cmp))
	set(0xCD, regOp("CMP", Absolute, cmp))
	set(0xDD, regOp("CMP", AbsoluteX, cmp))
	set(0xD9, regOp("CMP", AbsoluteY, cmp))
	set(0xC1, regOp("CMP", IndexedIndirect, cmp))
	set(0xD1, regOp("CMP", IndirectIndexed, cmp))

	set(0xE0, regOp("CPX", Immediate, cpx))
	set(0xE4, regOp("CPX", ZeroPage, cpx))
	set(0xEC, regOp("CPX", Absolute, cpx))

	set(0xC0, regOp("CPY", Immediate, cpy))
	set(0xC4, regOp("CPY", ZeroPage, cpy))
	set(0xCC, regOp("CPY", Absolute, cpy))

	// DEC
	set(0xC6, memOp("DEC", ZeroPage, dec))
	set(0xD6, memOp("DEC", ZeroPageX, dec))
	set(0xCE, memOp("DEC", Absolute, dec))
	set(0xDE, memOp("DEC", AbsoluteX, dec))

	// DEX / DEY / INX / INY
	set(0xCA, bumpOp("DEX", 0xFF, getX, setX))
	set(0x88, bumpOp("DEY", 0xFF, getY, setY))
	set(0xE8, bumpOp("INX", 0x01, getX, setX))
	set(0xC8, bumpOp("INY", 0x01, getY, setY))

	// EOR
	set(0x49, regOp("EOR", Immediate, eor))
	set(0x45, regOp("EOR", ZeroPage, eor))
	set(0x55, regOp("EOR", ZeroPageX, eor))
	set(0x4D, regOp("EOR", Absolute, eor))
	set(0x5D, regOp("EOR", AbsoluteX, eor))
	set(0x59, regOp("EOR", AbsoluteY, eor))
	set(0x41, regOp("EOR", IndexedIndirect, eor))
	set(0x51, regOp("EOR", IndirectIndexed, eor))

	// INC
	set(0xE6, memOp("INC", ZeroPage, inc))
	set(0xF6, memOp("INC", ZeroPageX, inc))
	set(0xEE, memOp("INC", Absolute, inc))
	set(0xFE, memOp("INC", AbsoluteX, inc))

	// JMP / JSR / RTS / RTI
	set(0x4C, opJMP(Absolute))
	set(0x6C, opJMP(Indirect))
	set(0x20, Instruction{Name: "JSR", Mode: Absolute, Exec: opJSR})
	set(0x60, Instruction{Name: "RTS", Exec: opRTS})
	set(0x40, Instruction{Name: "RTI", Exec: opRTI})

	// LDA / LDX / LDY
	set(0xA9, regOp("LDA", Immediate, lda))
	set(0xA5, regOp("LDA", ZeroPage, lda))
	set(0xB5, regOp("LDA", ZeroPageX, lda))
	set(0xAD, regOp("LDA", Absolute, lda))
	set(0xBD, regOp("LDA", AbsoluteX, lda))
	set(0xB9, regOp("LDA", AbsoluteY, lda))
	set(0xA1, regOp("LDA", IndexedIndirect, lda))
	set(0xB1, regOp("LDA", IndirectIndexed, lda))

	set(0xA2, regOp("LDX", Immediate, ldx))
	set(0xA6, regOp("LDX", ZeroPage, ldx))
	set(0xB6, regOp("LDX", ZeroPageY, ldx))
	set(0xAE, regOp("LDX", Absolute, ldx))
	set(0xBE, regOp("LDX", AbsoluteY, ldx))

	set(0xA0, regOp("LDY", Immediate, ldy))
	set(0xA4, regOp("LDY", ZeroPage, ldy))
	set(0xB4, regOp("LDY", ZeroPageX, ldy))
	set(0xAC, regOp("LDY", Absolute, ldy))
	set(0xBC, regOp("LDY", AbsoluteX, ldy))

	// LSR
	set(0x4A, memOp("LSR", Accumulator, lsr))
	set(0x46, memOp("LSR", ZeroPage, lsr))
	set(0x56, memOp("LSR", ZeroPageX, lsr))
	set(0x4E, memOp("LSR", Absolute, lsr))
	set(0x5E, memOp("LSR", AbsoluteX, lsr))

	// NOP
	set(0xEA, Instruction{Name: "NOP", Exec: opNOP})

	// ORA
	set(0x09, regOp("ORA", Immediate, ora))
	set(0x05, regOp("ORA", ZeroPage, ora))
	set(0x15, regOp("ORA", ZeroPageX, ora))
	set(0x0D, regOp("ORA", Absolute, ora))
	set(0x1D, regOp("ORA", AbsoluteX, ora))
	set(0x19, regOp("ORA", AbsoluteY, ora))
	set(0x01, regOp("ORA", IndexedIndirect, ora))
	set(0x11, regOp("ORA", IndirectIndexed, ora))

	// Stack ops for A / P
	set(0x48, Instruction{Name: "PHA", Exec: opPHA})
	set(0x68, Instruction{Name: "PLA", Exec: opPLA})
	set(0x08, Instruction{Name: "PHP", Exec: opPHP})
	set(0x28, Instruction{Name: "PLP", Exec: opPLP})

	// ROL / ROR
	set(0x2A, memOp("ROL", Accumulator, rol))
	set(0x26, memOp("ROL", ZeroPage, rol))
	set(0x36, memOp("ROL", ZeroPageX, rol))
	set(0x2E, memOp("ROL", Absolute, rol))
	set(0x3E, memOp("ROL", AbsoluteX, rol))

	set(0x6A, memOp("ROR", Accumulator, ror))
	set(0x66, memOp("ROR", ZeroPage, ror))
	set(0x76, memOp("ROR", ZeroPageX, ror))
	set(0x6E, memOp("ROR", Absolute, ror))
	set(0x7E, memOp("ROR", AbsoluteX, ror))

	// SBC
	set(0xE9, regOp("SBC", Immediate, sbc))
	set(0xE5, regOp("SBC", ZeroPage, sbc))
	set(0xF5, regOp("SBC", ZeroPageX, sbc))
	set(0xED, regOp("SBC", Absolute, sbc))
	set(0xFD, regOp("SBC", AbsoluteX, sbc))
	set(0xF9, regOp("SBC", AbsoluteY, sbc))
	set(0xE1, regOp("SBC", IndexedIndirect, sbc))
	set(0xF1, regOp("SBC", IndirectIndexed, sbc))

	// STA / STX / STY
	set(0x85, storeOp("STA", ZeroPage, getA))
	set(0x95, storeOp("STA", ZeroPageX, getA))
	set(0x8D, storeOp("STA", Absolute, getA))
	set(0x9D, storeOp("STA", AbsoluteX, getA))
	set(0x99, storeOp("STA", AbsoluteY, getA))
	set(0x81, storeOp("STA", IndexedIndirect, getA))
	set(0x91, storeOp("STA", IndirectIndexed, getA))

	set(0x86, storeOp("STX", ZeroPage, getX))
	set(0x96, storeOp("STX", ZeroPageY, getX))
	set(0x8E, storeOp("STX", Absolute, getX))

	set(0x84, storeOp("STY", ZeroPage, getY))
	set(0x94, storeOp("STY", ZeroPageX, getY))
	set(0x8C, storeOp("STY", Absolute, getY))

	// Register transfers
	set(0xAA, transferOp("TAX", true, getA, setX))
	set(0xA8, transferOp("TAY", true, getA, setY))
	set(0xBA, transferOp("TSX", true, getSp, setX))
	set(0x8A, transferOp("TXA", true, getX, setA))
	set(0x9A, transferOp("TXS", false, getX, setSp))
	set(0x98, transferOp("TYA", true, getY, setA))

	return t
}

// Step executes exactly one instruction: fetch the opcode at PC, resolve
// its addressing mode, and apply its kernel. It returns halted=true only
// when BRK was executed (success); any error means an illegal or
// unimplemented opcode, and PC has already advanced past the offending
// byte.
func (c *CPU) Step() (halted bool, err error) {
	opAddr := c.Pc
	opcode := c.read()

	inst := opcodeTable[opcode]
	if inst == nil {
		return false, &IllegalInstructionError{Opcode: opcode, At: opAddr}
	}

	if err := inst.Exec(c); err != nil {
		return false, err
	}

	return inst.Halts, nil
}

// Run drives Step in a loop until BRK (success, nil error) or an
// illegal/unimplemented opcode (the error returned by Step).
func (c *CPU) Run() error {
	for {
		halted, err := c.Step()
		if err != nil {
			return err
		}
		if halted {
			return nil
		}
	}
}
