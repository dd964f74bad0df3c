package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	stlinspect "github.com/wippyai/stl-inspect"
	"github.com/wippyai/stl-inspect/inspect"
	"github.com/wippyai/stl-inspect/simplify"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const (
	inputType = iota
	inputAddr
	inputSize
	inputElSize
	numInputs
)

// pageSize is how many elements fit one screen of the element view.
const pageSize = 20

type modelState int

const (
	stateInputQuery modelState = iota
	stateShowElements
)

type elementRow struct {
	index uint64
	addr  uint64
	bytes []byte
}

type interactiveModel struct {
	err      error
	mem      *dumpMemory
	ins      *inspect.Inspector
	filename string
	base     uint64

	inputs   []textinput.Model
	focusIdx int
	state    modelState

	simplified string
	count      uint64
	rows       []elementRow
	offset     int
}

type loadedMsg struct {
	err error
	mem *dumpMemory
}

type inspectedMsg struct {
	err        error
	simplified string
	count      uint64
	rows       []elementRow
}

func newInteractiveModel(filename string, base uint64) *interactiveModel {
	prompts := [numInputs]struct{ prompt, placeholder string }{
		{"type:   ", "std::vector<int,std::allocator<int> >"},
		{"addr:   ", "0x401000"},
		{"size:   ", "24"},
		{"elsize: ", "4"},
	}
	m := &interactiveModel{
		filename: filename,
		base:     base,
		state:    stateInputQuery,
		inputs:   make([]textinput.Model, numInputs),
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = prompts[i].prompt
		ti.Placeholder = prompts[i].placeholder
		ti.Width = 50
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadDump
}

func (m *interactiveModel) loadDump() tea.Msg {
	mem, err := loadDump(m.filename, m.base)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{mem: mem}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		// "q" stays available to the type-name input ("std::deque")
		case "q":
			if m.state == stateShowElements {
				m.state = stateInputQuery
				return m, nil
			}
			if m.mem == nil {
				// load-error screen
				return m, tea.Quit
			}

		case "tab":
			if m.state == stateInputQuery {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
				return m, nil
			}

		case "up", "k":
			if m.state == stateShowElements && m.offset > 0 {
				m.offset--
			}

		case "down", "j":
			if m.state == stateShowElements && m.offset+pageSize < len(m.rows) {
				m.offset++
			}

		case "enter":
			if m.state == stateInputQuery && m.mem != nil {
				return m, m.inspectQuery
			}

		case "esc":
			if m.state == stateShowElements {
				m.state = stateInputQuery
				m.err = nil
				return m, nil
			}
			return m, tea.Quit
		}

	case loadedMsg:
		m.err = msg.err
		m.mem = msg.mem
		if m.mem != nil {
			m.ins = inspect.New(m.mem, inspect.Options{Probe: m.mem.contains})
		}

	case inspectedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.simplified = msg.simplified
			m.count = msg.count
			m.rows = msg.rows
			m.offset = 0
			m.state = stateShowElements
		}
	}

	if m.state == stateInputQuery {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) inspectQuery() tea.Msg {
	typeName := m.inputs[inputType].Value()
	addr, err := parseAddr(m.inputs[inputAddr].Value())
	if err != nil {
		return inspectedMsg{err: fmt.Errorf("bad addr: %w", err)}
	}
	size, err := strconv.ParseUint(m.inputs[inputSize].Value(), 0, 64)
	if err != nil {
		return inspectedMsg{err: fmt.Errorf("bad size: %w", err)}
	}
	elSize, err := strconv.ParseUint(m.inputs[inputElSize].Value(), 0, 64)
	if err != nil || elSize == 0 {
		return inspectedMsg{err: fmt.Errorf("bad elsize")}
	}

	raw, err := m.mem.Read(addr, size)
	if err != nil {
		return inspectedMsg{err: err}
	}

	blob := stlinspect.Blob{Addr: addr, Data: raw}
	info, res := m.ins.Inspect(typeName, blob, size, elSize)
	if res != stlinspect.ResultOK {
		return inspectedMsg{err: fmt.Errorf("inspection failed: %s", res)}
	}

	cur := info.Cursor
	rows := make([]elementRow, 0, info.Count)
	for i := uint64(0); i < info.Count; i++ {
		elemAddr, ok := info.Step(m.mem, elSize, &cur)
		if !ok {
			break
		}
		row := elementRow{index: i, addr: elemAddr}
		if b, err := m.mem.Read(elemAddr, elSize); err == nil {
			row.bytes = b
		}
		rows = append(rows, row)
	}

	return inspectedMsg{
		simplified: simplify.Name(typeName),
		count:      info.Count,
		rows:       rows,
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("stlview"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	if m.mem == nil {
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n\n")
			b.WriteString(helpStyle.Render("q quit"))
			return b.String()
		}
		b.WriteString("Loading dump...")
		return b.String()
	}

	switch m.state {
	case stateInputQuery:
		b.WriteString("Describe the container variable:\n\n")
		for i := range m.inputs {
			b.WriteString(m.inputs[i].View())
			b.WriteString("\n")
		}
		if m.err != nil {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter inspect • esc quit"))

	case stateShowElements:
		fmt.Fprintf(&b, "%s  %d elements\n\n", selectedStyle.Render(m.simplified), m.count)
		end := m.offset + pageSize
		if end > len(m.rows) {
			end = len(m.rows)
		}
		for _, row := range m.rows[m.offset:end] {
			fmt.Fprintf(&b, "  [%d] %s", row.index, addrStyle.Render(fmt.Sprintf("%#x", row.addr)))
			if row.bytes != nil {
				b.WriteString("  ")
				b.WriteString(valueStyle.Render(fmt.Sprintf("% x", row.bytes)))
			}
			b.WriteString("\n")
		}
		if len(m.rows) > pageSize {
			fmt.Fprintf(&b, "\n%s\n", helpStyle.Render(
				fmt.Sprintf("%d-%d of %d", m.offset+1, end, len(m.rows))))
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc back"))
	}

	return b.String()
}

func runInteractive(filename string, base uint64) error {
	p := tea.NewProgram(newInteractiveModel(filename, base), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
