package cpu

// regKernel consumes a byte fetched by the addressing resolver and
// mutates a register plus status flags (ADC, AND, LDA, CMP, ...). An
// error signals an extension point the core declines to execute, such as
// decimal-mode ADC or SBC.
type regKernel func(c *CPU, m byte) error

// memKernel consumes a byte and returns a transformed byte; the caller
// (writeResult) stores it back to the accumulator or the effective
// address. Covers the read-modify-write family: ASL, DEC, INC, LSR, ROL,
// ROR.
type memKernel func(c *CPU, m byte) byte

// ADC - Add with Carry. Decimal mode is an extension point this core does
// not implement; it is reported rather than silently miscomputed.
func adc(c *CPU, m byte) error {
	if c.GetFlag(FlagD) {
		return &UnimplementedError{Mnemonic: "ADC", Detail: "decimal mode"}
	}
	carry := uint16(0)
	if c.GetFlag(FlagC) {
		carry = 1
	}
	t := uint16(c.A) + uint16(m) + carry
	result := byte(t)

	c.SetFlag(FlagC, t > 0xFF)
	c.SetFlag(FlagV, (c.A^result)&(m^result)&0x80 != 0)
	c.A = result
	c.updateZN(c.A)
	return nil
}

// SBC - Subtract with Carry. Not implemented; see spec notes on ADC/SBC
// as extension points.
func sbc(c *CPU, _ byte) error {
	return &UnimplementedError{Mnemonic: "SBC"}
}

func and(c *CPU, m byte) error {
	c.A &= m
	c.updateZN(c.A)
	return nil
}

func ora(c *CPU, m byte) error {
	c.A |= m
	c.updateZN(c.A)
	return nil
}

func eor(c *CPU, m byte) error {
	c.A ^= m
	c.updateZN(c.A)
	return nil
}

// BIT - Bit Test. N and V come from bits 7 and 6 of the operand, not the
// result; only Z reflects A & m.
func bit(c *CPU, m byte) error {
	c.SetFlag(FlagZ, c.A&m == 0)
	c.SetFlag(FlagV, m&0x40 != 0)
	c.SetFlag(FlagN, m&0x80 != 0)
	return nil
}

func compare(c *CPU, reg byte, m byte) {
	t := reg - m
	c.SetFlag(FlagC, reg >= m)
	c.updateZN(t)
}

func cmp(c *CPU, m byte) error { compare(c, c.A, m); return nil }
func cpx(c *CPU, m byte) error { compare(c, c.X, m); return nil }
func cpy(c *CPU, m byte) error { compare(c, c.Y, m); return nil }

func lda(c *CPU, m byte) error { c.A = m; c.updateZN(c.A); return nil }
func ldx(c *CPU, m byte) error { c.X = m; c.updateZN(c.X); return nil }
func ldy(c *CPU, m byte) error { c.Y = m; c.updateZN(c.Y); return nil }

func asl(c *CPU, m byte) byte {
	c.SetFlag(FlagC, m&0x80 != 0)
	r := m << 1
	c.updateZN(r)
	return r
}

func lsr(c *CPU, m byte) byte {
	c.SetFlag(FlagC, m&0x01 != 0)
	r := m >> 1
	c.updateZN(r)
	return r
}

func rol(c *CPU, m byte) byte {
	oldCarry := byte(0)
	if c.GetFlag(FlagC) {
		oldCarry = 1
	}
	c.SetFlag(FlagC, m&0x80 != 0)
	r := (m << 1) | oldCarry
	c.updateZN(r)
	return r
}

func ror(c *CPU, m byte) byte {
	oldCarry := byte(0)
	if c.GetFlag(FlagC) {
		oldCarry = 1 << 7
	}
	c.SetFlag(FlagC, m&0x01 != 0)
	r := (m >> 1) | oldCarry
	c.updateZN(r)
	return r
}

func dec(c *CPU, m byte) byte {
	r := m - 1
	c.updateZN(r)
	return r
}

func inc(c *CPU, m byte) byte {
	r := m + 1
	c.updateZN(r)
	return r
}
