package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("memexplorer — %s", m.dtbPath)))
	b.WriteString("\n")
	b.WriteString(paneStyle.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.statusBar())

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(
			"1-5 alloc class • a alloc random • A alloc 64K@4K • d free last • r reset • ? help • q quit"))
	}

	return b.String()
}

// freeListContent renders the free list and the live allocations.
func (m Model) freeListContent() string {
	var b strings.Builder

	ranges, err := m.alloc.FreeRanges()
	if err != nil {
		return errorStyle.Render(fmt.Sprintf("free list unavailable: %v", err))
	}

	b.WriteString(fmt.Sprintf("%-18s %-18s %s\n", "START", "END", "SIZE"))
	for _, r := range ranges {
		b.WriteString(rangeStyle.Render(
			fmt.Sprintf("%#-18x %#-18x %d", r.Start(), r.End(), r.Size())))
		b.WriteString("\n")
	}

	if len(m.live) > 0 {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("live allocations (%d, newest last):\n", len(m.live)))
		for _, al := range m.live {
			b.WriteString(liveStyle.Render(
				fmt.Sprintf("  %#x  size=%d align=%d", al.addr, al.size, al.align)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// statusBar renders free totals and the last operation's outcome.
func (m Model) statusBar() string {
	free, err := m.alloc.FreeMemorySize()
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	ranges, _ := m.alloc.FreeRanges()

	left := statusStyle.Render(fmt.Sprintf(
		"free %d bytes in %d regions • %d live", free, len(ranges), len(m.live)))

	msg := m.status
	style := statusStyle
	if m.statusErr {
		style = errorStyle
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, statusStyle.Render(" • "), style.Render(msg))
}
