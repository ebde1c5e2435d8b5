package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/memkit/memkit/mem"
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Header, status bar and pane frame.
		vpHeight := msg.Height - 6
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = vpHeight
		}
		m.viewport.SetContent(m.freeListContent())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.AllocClass):
		classes := mem.SizeClasses()
		idx := int(msg.String()[0] - '1')
		if idx >= 0 && idx < len(classes) {
			m.doAlloc(classes[idx], 8)
		}

	case key.Matches(msg, m.keys.AllocRand):
		size := uint64(m.rng.Int63n(4096)) + 1
		aligns := []uint64{1, 8, 16, 64}
		m.doAlloc(size, aligns[m.rng.Intn(len(aligns))])

	case key.Matches(msg, m.keys.AllocBig):
		m.doAlloc(64<<10, 4096)

	case key.Matches(msg, m.keys.Free):
		m.doFree()

	case key.Matches(msg, m.keys.Reset):
		if err := m.boot(); err != nil {
			m.setStatus(fmt.Sprintf("reset failed: %v", err), true)
		} else {
			m.setStatus("reset to boot-time state", false)
		}

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	m.viewport.SetContent(m.freeListContent())
	return m, nil
}

func (m *Model) doAlloc(size, align uint64) {
	addr, err := m.alloc.TryAlloc(size, align)
	if err != nil {
		m.setStatus(fmt.Sprintf("alloc size=%d align=%d: %v", size, align, err), true)
		return
	}
	m.live = append(m.live, allocation{addr: addr, size: size, align: align})
	m.setStatus(fmt.Sprintf("allocated %d bytes @ %#x (align %d)", size, addr, align), false)
}

func (m *Model) doFree() {
	if len(m.live) == 0 {
		m.setStatus("nothing to free", true)
		return
	}
	al := m.live[len(m.live)-1]
	if err := m.alloc.TryDealloc(al.addr, al.size, al.align); err != nil {
		m.setStatus(fmt.Sprintf("dealloc %#x: %v", al.addr, err), true)
		return
	}
	m.live = m.live[:len(m.live)-1]
	m.setStatus(fmt.Sprintf("freed %d bytes @ %#x", al.size, al.addr), false)
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}
