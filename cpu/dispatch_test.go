package cpu

import "testing"

// load writes prog into memory starting at addr, the way a loader would
// populate ROM before Run.
func load(c *CPU, addr uint16, prog ...byte) {
	for i, b := range prog {
		c.Poke(addr+uint16(i), b)
	}
}

func TestRunLdaStaBrk(t *testing.T) {
	c := New()
	load(c, romBase,
		0xA9, 0x42, // LDA #$42
		0x85, 0x07, // STA $07
		0x00, // BRK
	)

	if err := c.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if c.A != 0x42 {
		t.Errorf("A = %#02x, want 0x42", c.A)
	}
	if got := c.Peek(0x07); got != 0x42 {
		t.Errorf("mem[0x07] = %#02x, want 0x42", got)
	}
	if want := romBase + 5; c.Pc != want {
		t.Errorf("Pc = %#04x, want %#04x", c.Pc, want)
	}
}

func TestRunJsrRtsReturnsToInstructionAfterJsr(t *testing.T) {
	c := New()
	load(c, 0x0400,
		0xEA,             // NOP
		0x20, 0x05, 0x04, // JSR $0405
	)
	load(c, 0x0405,
		0xA2, 0x65, // LDX #$65
		0x86, 0x05, // STX $05
		0xA2, 0x02, // LDX #$02
		0x86, 0x06, // STX $06
		0x60, // RTS
	)
	// BRK right after the JSR so Run halts once control returns.
	c.Poke(0x0404, 0x00)

	if err := c.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := c.Peek(0x05); got != 0x65 {
		t.Errorf("mem[0x05] = %#02x, want 0x65", got)
	}
	if got := c.Peek(0x06); got != 0x02 {
		t.Errorf("mem[0x06] = %#02x, want 0x02", got)
	}
	if c.Pc != 0x0405 {
		t.Errorf("Pc after RTS+BRK = %#04x, want 0x0405 (0x0404 + 1 for the BRK byte)", c.Pc)
	}
}

func TestRunLdaBrkFlagsFromResult(t *testing.T) {
	cases := []struct {
		name    string
		value   byte
		wantN   bool
		wantZ   bool
	}{
		{"negative", 0x80, true, false},
		{"zero", 0x00, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			load(c, romBase, 0xA9, tc.value, 0x00)
			if err := c.Run(); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if c.GetFlag(FlagN) != tc.wantN {
				t.Errorf("N = %v, want %v", c.GetFlag(FlagN), tc.wantN)
			}
			if c.GetFlag(FlagZ) != tc.wantZ {
				t.Errorf("Z = %v, want %v", c.GetFlag(FlagZ), tc.wantZ)
			}
		})
	}
}

func TestRunDexWraps(t *testing.T) {
	c := New()
	load(c, romBase, 0xA2, 0x01, 0xCA, 0x00) // LDX #$01; DEX; BRK
	if err := c.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if c.X != 0x00 || !c.GetFlag(FlagZ) || c.GetFlag(FlagN) {
		t.Errorf("X=%#02x Z=%v N=%v, want X=0 Z=true N=false", c.X, c.GetFlag(FlagZ), c.GetFlag(FlagN))
	}

	c2 := New()
	load(c2, romBase, 0xA2, 0x00, 0xCA, 0x00) // LDX #$00; DEX; BRK
	if err := c2.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if c2.X != 0xFF || c2.GetFlag(FlagZ) || !c2.GetFlag(FlagN) {
		t.Errorf("X=%#02x Z=%v N=%v, want X=0xFF Z=false N=true", c2.X, c2.GetFlag(FlagZ), c2.GetFlag(FlagN))
	}
}

func TestRunAdcCarryWrapsToZero(t *testing.T) {
	c := New()
	load(c, romBase,
		0x18,       // CLC
		0xA9, 0xFF, // LDA #$FF
		0x69, 0x01, // ADC #$01
		0x00, // BRK
	)
	if err := c.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if c.A != 0x00 || !c.GetFlag(FlagC) || !c.GetFlag(FlagZ) || c.GetFlag(FlagN) || c.GetFlag(FlagV) {
		t.Errorf("A=%#02x C=%v Z=%v N=%v V=%v, want A=0 C=true Z=true N=false V=false",
			c.A, c.GetFlag(FlagC), c.GetFlag(FlagZ), c.GetFlag(FlagN), c.GetFlag(FlagV))
	}
}

func TestRunAdcSignedOverflow(t *testing.T) {
	c := New()
	load(c, romBase,
		0x38,       // SEC
		0xA9, 0x50, // LDA #$50
		0x69, 0x50, // ADC #$50
		0x00, // BRK
	)
	if err := c.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if c.A != 0xA1 || c.GetFlag(FlagC) || !c.GetFlag(FlagN) || !c.GetFlag(FlagV) {
		t.Errorf("A=%#02x C=%v N=%v V=%v, want A=0xA1 C=false N=true V=true",
			c.A, c.GetFlag(FlagC), c.GetFlag(FlagN), c.GetFlag(FlagV))
	}
}

func TestRunIllegalOpcodeReportsOffendingByteAndAddress(t *testing.T) {
	c := New()
	load(c, romBase, 0x02) // 0x02 has no entry in the opcode map
	err := c.Run()

	var illegal *IllegalInstructionError
	if err == nil {
		t.Fatal("Run() error = nil, want IllegalInstructionError")
	}
	if ok := errorsAsIllegal(err, &illegal); !ok {
		t.Fatalf("Run() error = %v, want *IllegalInstructionError", err)
	}
	if illegal.Opcode != 0x02 || illegal.At != romBase {
		t.Errorf("illegal = %+v, want Opcode=0x02 At=%#04x", illegal, romBase)
	}
}

func errorsAsIllegal(err error, target **IllegalInstructionError) bool {
	if e, ok := err.(*IllegalInstructionError); ok {
		*target = e
		return true
	}
	return false
}

func TestRunSbcIsUnimplemented(t *testing.T) {
	c := New()
	load(c, romBase, 0xE9, 0x01) // SBC #$01
	err := c.Run()
	if _, ok := err.(*UnimplementedError); !ok {
		t.Fatalf("Run() error = %v (%T), want *UnimplementedError", err, err)
	}
}

func TestRunBranchNotTakenAdvancesPastOperandOnly(t *testing.T) {
	c := New()
	load(c, romBase,
		0xD0, 0x10, // BNE +16, not taken because Z is set directly below
	)
	c.A = 0
	c.SetFlag(FlagZ, true)
	halted, err := c.Step()
	if err != nil || halted {
		t.Fatalf("Step() = (%v, %v), want (false, nil)", halted, err)
	}
	if want := romBase + 2; c.Pc != want {
		t.Errorf("Pc = %#04x, want %#04x", c.Pc, want)
	}
}

func TestRunBranchTakenAddsSignedOffset(t *testing.T) {
	c := New()
	load(c, romBase,
		0xF0, 0x05, // BEQ +5
	)
	c.SetFlag(FlagZ, true)
	halted, err := c.Step()
	if err != nil || halted {
		t.Fatalf("Step() = (%v, %v), want (false, nil)", halted, err)
	}
	if want := romBase + 2 + 5; c.Pc != want {
		t.Errorf("Pc = %#04x, want %#04x", c.Pc, want)
	}
}

func TestDisassembleRendersKnownAndUnknownOpcodes(t *testing.T) {
	c := New()
	load(c, romBase, 0xA9, 0x42, 0x02, 0x00)
	listing := c.Disassemble(romBase, romBase+3)
	if got, ok := listing[romBase]; !ok || got == "" {
		t.Errorf("missing disassembly for LDA at %#04x: %q", romBase, got)
	}
	if got, ok := listing[romBase+2]; !ok || got == "" {
		t.Errorf("missing disassembly for unknown opcode at %#04x: %q", romBase+2, got)
	}
}
