package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/bstviz/pkg/core/bst"
	"github.com/matzehuels/bstviz/pkg/core/layout"
	"github.com/matzehuels/bstviz/pkg/core/step"
)

const (
	minTreeWidth = 40
	historySize  = 6
)

// =============================================================================
// StepModel - Interactive insertion stepper
// =============================================================================

// StepModel is the bubbletea model for `bstviz step`.
type StepModel struct {
	stepper *step.Stepper
	width   int

	history  []string // recent status messages, newest last
	order    *bst.Order
	deleting bool
	buf      string
	errMsg   string
}

// NewStepModel creates a model driving s.
func NewStepModel(s *step.Stepper) StepModel {
	return StepModel{stepper: s, width: 80}
}

func (m StepModel) Init() tea.Cmd {
	return nil
}

func (m StepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if m.deleting {
			return m.updateDelete(msg)
		}
		m.errMsg = ""
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "n", " ", "right", "enter":
			m.push(m.stepper.Next().Message)
		case "f":
			events := m.stepper.Finish()
			if len(events) == 0 {
				m.push(m.stepper.Next().Message)
			}
			for _, e := range events {
				m.push(e.Message)
			}
		case "r":
			m.stepper.Reset()
			m.history = nil
			m.push("Tree reset.")
		case "d":
			if m.stepper.Busy() {
				m.errMsg = "Finish the current insertion before deleting."
				break
			}
			m.deleting = true
			m.buf = ""
		case "1", "2", "3":
			o := []bst.Order{bst.InOrder, bst.PreOrder, bst.PostOrder}[msg.String()[0]-'1']
			m.order = &o
		case "0":
			m.order = nil
		}
	}
	return m, nil
}

func (m StepModel) updateDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.deleting = false
	case tea.KeyBackspace:
		if m.buf != "" {
			m.buf = m.buf[:len(m.buf)-1]
		}
	case tea.KeyEnter:
		m.deleting = false
		v, err := m.stepper.Category().Parse(m.buf)
		if err != nil {
			m.errMsg = fmt.Sprintf("%q is not a valid %s value.", m.buf, m.stepper.Category())
			break
		}
		ev, err := m.stepper.Delete(v)
		if err != nil {
			m.errMsg = err.Error()
			break
		}
		m.push(ev.Message)
	case tea.KeyRunes, tea.KeySpace:
		m.buf += string(msg.Runes)
	}
	return m, nil
}

func (m *StepModel) push(msg string) {
	m.history = append(m.history, msg)
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
}

// Status returns the latest status message.
func (m StepModel) Status() string {
	if len(m.history) == 0 {
		return ""
	}
	return m.history[len(m.history)-1]
}

func (m StepModel) View() string {
	var b strings.Builder
	s := m.stepper

	b.WriteString(StyleTitle.Render("bstviz") + StyleDim.Render(" · "+s.Category().String()))
	b.WriteString("\n\n")
	b.WriteString(drawTree(s.Tree(), s.Bounds(), s.Cursor(), max(m.width-2, minTreeWidth)))
	b.WriteString("\n\n")
	b.WriteString(pendingLine(s))
	b.WriteString("\n\n")

	for i, h := range m.history {
		if i == len(m.history)-1 {
			b.WriteString(StyleValue.Render(iconInfo+" "+h) + "\n")
		} else {
			b.WriteString(StyleDim.Render("  "+h) + "\n")
		}
	}
	if m.errMsg != "" {
		b.WriteString(styleIconError.Render(iconError+" "+m.errMsg) + "\n")
	}

	if m.order != nil {
		b.WriteString("\n" + styleHeader.Render(m.order.String()+": "))
		b.WriteString(StyleHighlight.Render(strings.Join(s.Tree().Strings(*m.order), " → ")) + "\n")
	}

	b.WriteString("\n")
	if m.deleting {
		b.WriteString(StyleWarning.Render("delete value: ") + m.buf + "▏\n")
		b.WriteString(StyleDim.Render("⏎ delete  esc cancel"))
	} else {
		b.WriteString(StyleDim.Render("n/space step  f finish  d delete  r reset  1/2/3 in/pre/post-order  0 hide  q quit"))
	}
	return b.String()
}

// pendingLine lists the input values: inserted ones dimmed, the one being
// inserted highlighted.
func pendingLine(s *step.Stepper) string {
	values := s.Values()
	if len(values) == 0 {
		return StyleDim.Render("(no values)")
	}
	parts := make([]string, len(values))
	for i, v := range values {
		switch {
		case i < s.Index():
			parts[i] = StyleDim.Render(v.String())
		case i == s.Index():
			parts[i] = styleCursor.Render(v.String())
		default:
			parts[i] = stylePending.Render(v.String())
		}
	}
	return strings.Join(parts, StyleDim.Render(", "))
}

// drawTree draws t on a character grid cols wide. Node columns are scaled
// from layout coordinates; levels are two rows apart with the edges between.
func drawTree(t *bst.Tree, b layout.Bounds, cursor *bst.Node, cols int) string {
	if t.Root() == nil {
		return StyleDim.Render("(empty tree)")
	}

	rows := 2*t.MaxDepth() - 1
	grid := make([][]string, rows)
	for r := range grid {
		grid[r] = make([]string, cols)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}

	col := func(x float64) int {
		c := int(math.Round(x / b.Width * float64(cols-1)))
		return min(max(c, 0), cols-1)
	}

	for n := range t.Walk(bst.PreOrder) {
		row := 2 * (bst.Level(n) - 1)
		c := col(n.X)

		if p := n.Parent(); p != nil {
			edge := "\\"
			if p.Left() == n {
				edge = "/"
			}
			grid[row-1][(col(p.X)+c)/2] = styleEdge.Render(edge)
		}

		label := n.Value.String()
		style := styleNode
		if n == cursor {
			style = styleCursor
		}
		start := min(max(c-len(label)/2, 0), max(cols-len(label), 0))
		grid[row][start] = style.Render(label)
		for i := 1; i < len(label) && start+i < cols; i++ {
			grid[row][start+i] = ""
		}
	}

	lines := make([]string, rows)
	for r, cells := range grid {
		lines[r] = strings.TrimRight(strings.Join(cells, ""), " ")
	}
	return strings.Join(lines, "\n")
}
