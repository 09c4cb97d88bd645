package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/halvorsen-dev/mos6502/cpu"
)

// loadFile reads path and pokes its contents into c starting at addr. Two
// formats are accepted: a raw binary image, and a text file of
// whitespace-separated hex byte pairs (e.g. "A9 42 85 07 00"), the format
// hand-written test programs tend to arrive in. A file is treated as hex
// text when every field parses as a byte; otherwise it is loaded raw.
func loadFile(c *cpu.CPU, path string, addr uint16) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading program %q", path)
	}

	prog, ok := parseHexText(data)
	if !ok {
		prog = data
	}

	if len(prog) > 0x0800 {
		return errors.Errorf("program %q is %d bytes, larger than the 2 KiB memory image", path, len(prog))
	}

	for i, b := range prog {
		c.Poke(addr+uint16(i), b)
	}
	return nil
}

func parseHexText(data []byte) ([]byte, bool) {
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return nil, false
	}
	prog := make([]byte, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 16, 8)
		if err != nil {
			return nil, false
		}
		prog = append(prog, byte(v))
	}
	return prog, true
}
