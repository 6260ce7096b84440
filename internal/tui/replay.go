// Package tui provides the interactive transcript replay viewer for
// restitch-ui.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/restitch/restitch/internal/assistant"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("136")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	textStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	toolStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("36")).Bold(true)
	paramStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	partialStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
	valueStyle   = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("238")).
			PaddingLeft(1)
)

// Options configures the replay viewer.
type Options struct {
	Transcript string
	ChunkSize  int
	Delay      time.Duration
	Parser     *assistant.Parser
}

// Model steps through a transcript the way a stream would arrive: each
// step extends the visible prefix by one chunk and re-parses it, so the
// viewer shows exactly the blocks a consumer would see at that point.
type Model struct {
	transcript string
	chunkSize  int
	delay      time.Duration
	parser     *assistant.Parser

	pos      int
	auto     bool
	done     bool
	viewport viewport.Model
	ready    bool
	width    int
}

type tickMsg struct{}

// New creates a replay model. Zero or negative chunk size falls back to a
// sane default.
func New(opts Options) Model {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 64
	}
	if opts.Delay <= 0 {
		opts.Delay = 25 * time.Millisecond
	}
	parser := opts.Parser
	if parser == nil {
		parser = assistant.NewParser(nil)
	}
	return Model{
		transcript: opts.Transcript,
		chunkSize:  opts.ChunkSize,
		delay:      opts.Delay,
		parser:     parser,
		width:      80,
	}
}

// Init starts the viewer paused; autoplay is a keypress away.
func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.delay, func(time.Time) tea.Msg { return tickMsg{} })
}

// Update handles input and autoplay ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		headerHeight := 2
		footerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.refresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case " ", "enter", "right", "l":
			m.step()
			m.refresh()

		case "a":
			m.auto = !m.auto
			if m.auto && !m.done {
				return m, m.tick()
			}

		case "r":
			m.pos = 0
			m.done = false
			m.auto = false
			m.refresh()

		case "g", "home":
			m.viewport.GotoTop()

		case "G", "end":
			m.viewport.GotoBottom()
		}

	case tickMsg:
		if m.auto && !m.done {
			m.step()
			m.refresh()
			if !m.done {
				return m, m.tick()
			}
			m.auto = false
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// step advances the visible prefix by one chunk.
func (m *Model) step() {
	if m.pos >= len(m.transcript) {
		m.done = true
		return
	}
	m.pos += m.chunkSize
	if m.pos >= len(m.transcript) {
		m.pos = len(m.transcript)
		m.done = true
	}
}

// refresh re-parses the current prefix and rebuilds the viewport content.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderBlocks())
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// renderBlocks formats the parse of the current prefix.
func (m *Model) renderBlocks() string {
	blocks := m.parser.Parse(m.transcript[:m.pos])
	if len(blocks) == 0 {
		return statusStyle.Render("(nothing parsed yet; press space to feed a chunk)")
	}

	var b strings.Builder
	for i, block := range blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		switch block := block.(type) {
		case *assistant.TextContent:
			b.WriteString(textStyle.Render(wrap(block.Text, m.width)))
			b.WriteString("\n")

		case *assistant.ToolUse:
			header := string(block.Name)
			if block.Partial {
				header += partialStyle.Render("  (streaming…)")
			}
			b.WriteString(toolStyle.Render("▸ "+header) + "\n")
			for _, name := range paramOrder {
				value, ok := block.Params[name]
				if !ok {
					continue
				}
				b.WriteString(paramStyle.Render("  "+string(name)+":") + "\n")
				b.WriteString(valueStyle.Render(truncate(value, 24)) + "\n")
			}
		}
	}
	return b.String()
}

// paramOrder fixes display order; map iteration would jitter between
// re-renders.
var paramOrder = []assistant.ParamName{
	assistant.ParamPath,
	assistant.ParamCommand,
	assistant.ParamRegex,
	assistant.ParamFilePattern,
	assistant.ParamRecursive,
	assistant.ParamRequiresApproval,
	assistant.ParamQuestion,
	assistant.ParamResult,
	assistant.ParamContent,
	assistant.ParamDiff,
}

// View renders header, viewport, and help footer.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	status := fmt.Sprintf("%d / %d bytes", m.pos, len(m.transcript))
	if m.done {
		status += "  [end of stream]"
	} else if m.auto {
		status += "  [autoplay]"
	}
	header := titleStyle.Render("restitch replay") + "  " + statusStyle.Render(status)

	help := helpStyle.Render("space: step  a: autoplay  r: restart  g/G: top/bottom  q: quit")

	return header + "\n\n" + m.viewport.View() + "\n" + help
}

// wrap soft-wraps text at width. lipgloss handles styling, not reflow, so
// long assistant paragraphs need manual breaking.
func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	var out []string
	for _, line := range strings.Split(s, "\n") {
		for len(line) > width {
			cut := strings.LastIndex(line[:width], " ")
			if cut <= 0 {
				cut = width
			}
			out = append(out, line[:cut])
			line = strings.TrimLeft(line[cut:], " ")
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// truncate caps a param value at n lines for display.
func truncate(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	kept := lines[:n]
	return strings.Join(kept, "\n") + fmt.Sprintf("\n… (%d more lines)", len(lines)-n)
}
