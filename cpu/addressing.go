package cpu

// Mode identifies one of the 6502's 13 addressing modes. Each mode has a
// dedicated resolver below that computes an effective address (or, for
// Immediate/Accumulator/Implied, arranges for the operand to come from
// somewhere other than memory) from the operand bytes at PC and the
// current register file.
type Mode int

const (
	Implied    Mode = iota // no operand
	Accumulator             // operand is A
	Immediate               // operand is the next byte itself
	ZeroPage                // 1-byte address into page zero
	ZeroPageX               // 1-byte address into page zero, + X, wraps mod 256
	ZeroPageY               // 1-byte address into page zero, + Y, wraps mod 256
	Absolute                // 2-byte address
	AbsoluteX               // 2-byte address + X, wraps mod 2^16
	AbsoluteY               // 2-byte address + Y, wraps mod 2^16
	Indirect                // 2-byte pointer to a 2-byte address (JMP only)
	IndexedIndirect         // (zp,X): zero-page pointer indexed before dereference
	IndirectIndexed         // (zp),Y: zero-page pointer indexed after dereference
	Relative                // signed 1-byte branch displacement
)

// resolvers maps each Mode to the function that sets up c.addrAbs (or
// c.fetched/c.implied, for the modes with no memory operand) from the
// bytes at PC. Addressing resolution is the only place PC-relative
// operand layout and wrap-around arithmetic live; every operation kernel
// is written purely in terms of a byte value or an effective address.
var resolvers = [...]func(c *CPU){
	Implied:         (*CPU).resolveImplied,
	Accumulator:     (*CPU).resolveAccumulator,
	Immediate:       (*CPU).resolveImmediate,
	ZeroPage:        (*CPU).resolveZeroPage,
	ZeroPageX:       (*CPU).resolveZeroPageX,
	ZeroPageY:       (*CPU).resolveZeroPageY,
	Absolute:        (*CPU).resolveAbsolute,
	AbsoluteX:       (*CPU).resolveAbsoluteX,
	AbsoluteY:       (*CPU).resolveAbsoluteY,
	Indirect:        (*CPU).resolveIndirect,
	IndexedIndirect: (*CPU).resolveIndexedIndirect,
	IndirectIndexed: (*CPU).resolveIndirectIndexed,
	Relative:        (*CPU).resolveRelative,
}

// resolve runs the resolver for mode, leaving the effective address (or
// equivalent) set on the CPU for the kernel that follows.
func (c *CPU) resolve(mode Mode) {
	c.implied = false
	resolvers[mode](c)
}

func (c *CPU) resolveImplied() {
	c.implied = true
}

func (c *CPU) resolveAccumulator() {
	c.implied = true
	c.fetched = c.A
}

func (c *CPU) resolveImmediate() {
	c.addrAbs = c.Pc
	c.Pc++
}

func (c *CPU) resolveZeroPage() {
	c.addrAbs = uint16(c.read())
}

func (c *CPU) resolveZeroPageX() {
	c.addrAbs = uint16(c.read()+c.X) & zeroPage
}

func (c *CPU) resolveZeroPageY() {
	c.addrAbs = uint16(c.read()+c.Y) & zeroPage
}

func (c *CPU) resolveAbsolute() {
	c.addrAbs = c.readWord()
}

func (c *CPU) resolveAbsoluteX() {
	c.addrAbs = c.readWord() + uint16(c.X)
}

func (c *CPU) resolveAbsoluteY() {
	c.addrAbs = c.readWord() + uint16(c.Y)
}

// resolveIndirect reads a 16-bit vector from the 16-bit operand address,
// used only by JMP (indirect).
func (c *CPU) resolveIndirect() {
	ptr := c.readWord()
	c.addrAbs = c.PeekWord(ptr)
}

// resolveIndexedIndirect implements (zp,X): the zero-page byte operand is
// added to X (wrapping in page zero) before the pointer is dereferenced;
// both bytes of the pointer must lie in page zero.
func (c *CPU) resolveIndexedIndirect() {
	base := uint16(c.read()+c.X) & zeroPage
	lo := c.Peek(base)
	hi := c.Peek((base + 1) & zeroPage)
	c.addrAbs = uint16(hi)<<8 | uint16(lo)
}

// resolveIndirectIndexed implements (zp),Y: the zero-page byte operand
// points (unindexed) at a 2-byte pointer in page zero, and Y is added to
// the dereferenced 16-bit address, which may cross a page.
func (c *CPU) resolveIndirectIndexed() {
	zp := uint16(c.read())
	lo := c.Peek(zp)
	hi := c.Peek((zp + 1) & zeroPage)
	base := uint16(hi)<<8 | uint16(lo)
	c.addrAbs = base + uint16(c.Y)
}

// resolveRelative fetches the signed branch offset and sign-extends it;
// branch kernels add it to PC only if their predicate holds.
func (c *CPU) resolveRelative() {
	c.addrRel = int16(int8(c.read()))
}

// fetch loads the operand byte into c.fetched from the effective address
// set by resolve, for every mode except Implied/Accumulator (which
// already populated c.fetched, or have no operand at all).
func (c *CPU) fetch() {
	if !c.implied {
		c.fetched = c.Peek(c.addrAbs)
	}
}

// writeResult stores a memory-kernel result back to the accumulator (for
// Accumulator mode) or to the effective address (every other mode).
func (c *CPU) writeResult(v byte) {
	if c.implied {
		c.A = v
	} else {
		c.Poke(c.addrAbs, v)
	}
}
