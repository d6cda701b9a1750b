package quantumsim

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// The timeline renderer consumes only the display surface of a gate: its
// label, its (time, qubit-row) coordinate, and its optional annotation.
// One column is drawn per gate in the collection's current order, so a
// scheduled circuit renders in execution order.

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// cellWidthFor returns the column width needed for a gate's label, time
// and annotation.
func cellWidthFor(g Gate) int {
	w := max(len(g.Label())+4, minCellW)
	w = max(w, len(timeLabel(g))+2)
	w = max(w, len(g.Annotation())+2)
	if d, ok := g.(*AmpPhDamp); ok {
		w = max(w, len(durationLabel(d))+2)
	}
	return w
}

func timeLabel(g Gate) string {
	return fmt.Sprintf("%g", g.Time())
}

func durationLabel(g *AmpPhDamp) string {
	return fmt.Sprintf("%gns", g.Duration)
}

// RenderTimeline draws the circuit as a styled terminal timeline: one wire
// row per qubit in insertion order, one column per gate in current gate
// order, a time header, and sequence-index annotations under each column.
func RenderTimeline(c *Circuit) string {
	gates := c.Gates()
	qubits := c.Qubits()
	if len(gates) == 0 || len(qubits) == 0 {
		return titleStyle.Render(c.Title) + "\n(empty circuit)\n"
	}

	row := make(map[string]int, len(qubits))
	for i, qb := range qubits {
		row[qb.Name] = i
	}

	widths := make([]int, len(gates))
	for i, g := range gates {
		widths[i] = cellWidthFor(g)
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(c.Title))
	sb.WriteString("\n\n")

	// Time header.
	header := strings.Repeat(" ", labelVisualW)
	for i, g := range gates {
		header += dimStyle.Render(padCenter(timeLabel(g), widths[i]))
	}
	sb.WriteString(header + "\n")

	for q, qb := range qubits {
		var topLine, midLine, botLine, annLine strings.Builder
		topLine.WriteString(strings.Repeat(" ", labelVisualW))
		midLine.WriteString(qubitLabelStyle.Render(fmt.Sprintf("%-5s", qb.Name)) + "──")
		botLine.WriteString(strings.Repeat(" ", labelVisualW))
		annLine.WriteString(strings.Repeat(" ", labelVisualW))

		for i, g := range gates {
			top, mid, bot, ann := renderCell(g, qb.Name, q, row, widths[i])
			topLine.WriteString(top)
			midLine.WriteString(mid)
			botLine.WriteString(bot)
			annLine.WriteString(ann)
		}

		sb.WriteString(topLine.String() + "\n")
		sb.WriteString(midLine.String() + "\n")
		sb.WriteString(botLine.String() + "\n")
		sb.WriteString(annLine.String() + "\n")
	}

	return sb.String()
}

// renderCell draws the four lines of one (gate, qubit-row) cell.
func renderCell(g Gate, qubit string, q int, row map[string]int, cellW int) (top, mid, bot, ann string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)
	wireRow := strings.Repeat("─", cellW)
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	top, mid, bot, ann = emptyRow, wireRow, emptyRow, emptyRow

	// Vertical connectors for two-qubit gates.
	names := g.Qubits()
	if len(names) == 2 {
		r0, r1 := row[names[0]], row[names[1]]
		lo, hi := min(r0, r1), max(r0, r1)
		if q > lo && q <= hi {
			top = vertRow
		}
		if q >= lo && q < hi {
			bot = vertRow
		}
		if q > lo && q < hi {
			mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)
			return
		}
	}

	if !g.Involves(qubit) {
		return
	}

	switch g := g.(type) {
	case *CPhase:
		mid = strings.Repeat("─", dashL) + gateStyle.Render("●") + strings.Repeat("─", dashR)
	case *AmpPhDamp:
		top = padCenter(durationLabel(g), cellW)
		mid = strings.Repeat("─", dashL) + dampStyle.Render("~") + strings.Repeat("─", dashR)
	case *Measurement:
		top, mid, bot = boxedLabel(g.Label(), cellW, measureStyle)
	default:
		top, mid, bot = boxedLabel(g.Label(), cellW, gateStyle)
	}

	// Sequence-index annotation under the gate's first qubit row.
	if g.Annotation() != "" && row[names[0]] == q {
		ann = annotationStyle.Render(padCenter(g.Annotation(), cellW))
	}
	return
}

// boxedLabel draws a gate label inside a small box spanning three lines.
func boxedLabel(label string, cellW int, style lipgloss.Style) (top, mid, bot string) {
	nameW := len(label) + 2
	margin := (cellW - nameW - 2) / 2
	rightMargin := cellW - margin - nameW - 2

	top = strings.Repeat(" ", margin) + style.Render("┌"+strings.Repeat("─", nameW)+"┐") + strings.Repeat(" ", rightMargin)
	mid = strings.Repeat("─", margin) + style.Render("┤"+padCenter(label, nameW)+"├") + strings.Repeat("─", rightMargin)
	bot = strings.Repeat(" ", margin) + style.Render("└"+strings.Repeat("─", nameW)+"┘") + strings.Repeat(" ", rightMargin)
	return
}
