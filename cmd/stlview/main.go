package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	stlinspect "github.com/wippyai/stl-inspect"
	stlerrors "github.com/wippyai/stl-inspect/errors"
	"github.com/wippyai/stl-inspect/inspect"
	"github.com/wippyai/stl-inspect/simplify"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	addrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

func main() {
	var (
		name        = flag.String("name", "", "Type name to simplify and print")
		dumpFile    = flag.String("dump", "", "Path to a raw memory dump")
		baseStr     = flag.String("base", "0", "Virtual address the dump was captured from")
		typeName    = flag.String("type", "", "Full type name of the container variable")
		addrStr     = flag.String("addr", "", "Virtual address of the container struct")
		size        = flag.Uint64("size", 0, "Declared byte size of the variable")
		elSize      = flag.Uint64("elsize", 0, "Byte size of the container's value type")
		maxElems    = flag.Uint64("max", 16, "Maximum elements to print")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *name != "" {
		fmt.Println(simplify.Name(*name))
		return
	}

	if *dumpFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: stlview -name <type>")
		fmt.Fprintln(os.Stderr, "       stlview -dump <file> -base <addr> -type <name> -addr <a> -size <n> -elsize <n> [-max <n>]")
		fmt.Fprintln(os.Stderr, "       stlview -dump <file> -base <addr> -i  (interactive mode)")
		os.Exit(1)
	}

	base, err := parseAddr(*baseStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: bad -base: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(*dumpFile, base); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	addr, err := parseAddr(*addrStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: bad -addr: %v\n", err)
		os.Exit(1)
	}
	if err := run(*dumpFile, base, *typeName, addr, *size, *elSize, *maxElems); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseAddr accepts decimal or 0x-prefixed hexadecimal.
func parseAddr(s string) (uint64, error) {
	if s == "" {
		return 0, stlerrors.InvalidInput(stlerrors.PhaseLoad, "empty address")
	}
	return strconv.ParseUint(s, 0, 64)
}

// dumpMemory serves reads out of a raw dump file mapped at a base
// virtual address.
type dumpMemory struct {
	base uint64
	data []byte
}

func loadDump(path string, base uint64) (*dumpMemory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, stlerrors.Load("read dump file", err)
	}
	if len(data) == 0 {
		return nil, stlerrors.Load("dump file is empty", nil)
	}
	return &dumpMemory{base: base, data: data}, nil
}

func (m *dumpMemory) slice(addr, n uint64) ([]byte, error) {
	if addr < m.base || addr-m.base+n > uint64(len(m.data)) {
		return nil, stlerrors.OutOfBounds(stlerrors.PhaseIterate, addr, n)
	}
	off := addr - m.base
	return m.data[off : off+n], nil
}

func (m *dumpMemory) contains(addr uint64) bool {
	return addr >= m.base && addr < m.base+uint64(len(m.data))
}

func (m *dumpMemory) Read(addr, length uint64) ([]byte, error) { return m.slice(addr, length) }

func (m *dumpMemory) ReadU8(addr uint64) (uint8, error) {
	b, err := m.slice(addr, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (m *dumpMemory) ReadU16(addr uint64) (uint16, error) {
	b, err := m.slice(addr, 2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

func (m *dumpMemory) ReadU32(addr uint64) (uint32, error) {
	b, err := m.slice(addr, 4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

func (m *dumpMemory) ReadU64(addr uint64) (uint64, error) {
	lo, err := m.ReadU32(addr)
	if err != nil {
		return 0, err
	}
	hi, err := m.ReadU32(addr + 4)
	if err != nil {
		return 0, err
	}
	return uint64(lo) | uint64(hi)<<32, nil
}

func run(dumpFile string, base uint64, typeName string, addr, size, elSize, maxElems uint64) error {
	if typeName == "" {
		return stlerrors.InvalidInput(stlerrors.PhaseClassify, "missing -type")
	}
	if size == 0 || elSize == 0 {
		return stlerrors.InvalidInput(stlerrors.PhaseLoad, "missing -size or -elsize")
	}

	mem, err := loadDump(dumpFile, base)
	if err != nil {
		return err
	}
	raw, err := mem.Read(addr, size)
	if err != nil {
		return err
	}

	ins := inspect.New(mem, inspect.Options{Probe: mem.contains})
	blob := stlinspect.Blob{Addr: addr, Data: raw}

	fmt.Println(headerStyle.Render("stlview"), dumpFile)
	fmt.Printf("Type:  %s\n", simplify.Name(typeName))
	fmt.Printf("Addr:  %s\n", addrStyle.Render(fmt.Sprintf("%#x", addr)))

	info, res := ins.Inspect(typeName, blob, size, elSize)
	if res != stlinspect.ResultOK {
		fmt.Printf("Result: %s\n", badStyle.Render(res.String()))
		return stlerrors.FromResult(int(res), typeName, addr)
	}
	fmt.Printf("Count: %d\n\n", info.Count)

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	cur := info.Cursor
	shown := uint64(0)
	for i := uint64(0); i < info.Count && i < maxElems; i++ {
		elemAddr, ok := info.Step(mem, elSize, &cur)
		if !ok {
			break
		}
		line := fmt.Sprintf("  [%d] %s", i, addrStyle.Render(fmt.Sprintf("%#x", elemAddr)))
		if b, err := mem.Read(elemAddr, elSize); err == nil {
			hex := fmt.Sprintf("% x", b)
			if room := width - lipgloss.Width(line) - 2; room > 3 && len(hex) > room {
				hex = hex[:room-3] + "..."
			}
			line += "  " + valueStyle.Render(hex)
		}
		fmt.Println(line)
		shown++
	}
	if shown < info.Count {
		fmt.Printf("  ... %d more\n", info.Count-shown)
	}
	return nil
}
