package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/halvorsen-dev/mos6502/cpu"
)

// debugModel is the bubbletea model for the interactive stepping
// debugger: each press of space or "n" advances the CPU by exactly one
// instruction and redraws register, flag, and memory-page state; "q" and
// ctrl+c quit, and other keys are ignored.
type debugModel struct {
	cpu    *cpu.CPU
	prevPC uint16
	halted bool
	err    error
}

func (m debugModel) Init() tea.Cmd { return nil }

func (m debugModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "n":
			if m.halted {
				return m, nil
			}
			m.prevPC = m.cpu.Pc
			halted, err := m.cpu.Step()
			m.halted = halted
			m.err = err
			if err != nil {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// renderPage renders one 16-byte memory row, bracketing the byte at the
// current PC.
func (m debugModel) renderPage(start uint16) string {
	var s strings.Builder
	fmt.Fprintf(&s, "%04X | ", start)
	for i := uint16(0); i < 16; i++ {
		addr := start + i
		b := m.cpu.Peek(addr)
		if addr == m.cpu.Pc {
			fmt.Fprintf(&s, "[%02X] ", b)
		} else {
			fmt.Fprintf(&s, " %02X  ", b)
		}
	}
	return s.String()
}

func (m debugModel) pageTable() string {
	var header strings.Builder
	header.WriteString("page | ")
	for b := 0; b < 16; b++ {
		fmt.Fprintf(&header, "  %01X  ", b)
	}
	rows := []string{header.String()}
	base := m.cpu.Pc &^ 0x0F
	for i := -1; i <= 2; i++ {
		rows = append(rows, m.renderPage(base+uint16(i*16)))
	}
	return strings.Join(rows, "\n")
}

func (m debugModel) status() string {
	flagBits := []struct {
		name string
		set  bool
	}{
		{"N", m.cpu.GetFlag(cpu.FlagN)},
		{"V", m.cpu.GetFlag(cpu.FlagV)},
		{"B", m.cpu.GetFlag(cpu.FlagB)},
		{"D", m.cpu.GetFlag(cpu.FlagD)},
		{"I", m.cpu.GetFlag(cpu.FlagI)},
		{"Z", m.cpu.GetFlag(cpu.FlagZ)},
		{"C", m.cpu.GetFlag(cpu.FlagC)},
	}
	var header, flags strings.Builder
	for _, f := range flagBits {
		fmt.Fprintf(&header, "%s ", f.name)
		if f.set {
			flags.WriteString("/ ")
		} else {
			flags.WriteString("  ")
		}
	}

	status := fmt.Sprintf(
		"PC: %04X (%04X)\n A: %02X\n X: %02X\n Y: %02X\nSP: %02X\n%s\n%s",
		m.cpu.Pc, m.prevPC, m.cpu.A, m.cpu.X, m.cpu.Y, m.cpu.Sp,
		header.String(), flags.String(),
	)
	if m.err != nil {
		status += fmt.Sprintf("\n\n%v", m.err)
	} else if m.halted {
		status += "\n\nhalted (BRK)"
	}
	return status
}

func (m debugModel) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), "   ", m.status()),
		"",
		"space/n: step   q: quit",
		"",
		spew.Sdump(m.cpu),
	)
}

// runDebugger starts an interactive TUI stepping c one instruction per
// step key (space or "n").
func runDebugger(c *cpu.CPU) error {
	p := tea.NewProgram(debugModel{cpu: c, prevPC: c.Pc})
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(debugModel); ok && m.err != nil {
		fmt.Println("error:", m.err)
	}
	return nil
}
