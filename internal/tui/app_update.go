package tui

import (
	"strconv"
	"strings"

	"outline-cli/internal/model"
	"outline-cli/internal/nav"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

const (
	paneWidthStep = 4
	wheelStep     = 3
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.syncDetail()
		return m, nil

	case sourceChangedMsg:
		m.logger.Debug("source changed", zap.String("path", msg.path))
		return m, m.reloadCmd()

	case sourceLoadedMsg:
		if msg.err != nil {
			// Keep showing the last good tree.
			m.logger.Warn("reload failed", zap.Error(msg.err))
			m.status = "reload failed: " + msg.err.Error()
			return m, nil
		}
		m.loadErr = nil
		m.setNodes(msg.nodes)
		m.status = "reloaded"
		m.detailKey = ""
		m.syncDetail()
		return m, nil

	case stateSavedMsg:
		if msg.err != nil {
			m.logger.Warn("save pane state", zap.Error(msg.err))
		}
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.query = ""
		m.applyQuery()
		m.layout()
		m.syncDetail()
		return m, nil
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		m.layout()
		return m, nil
	case tea.KeyUp, tea.KeyDown:
		// Arrows still move through matches while typing.
		return m.handleNav(m.keys.navKey(msg))
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if v := m.filter.Value(); v != m.query {
		m.query = v
		m.applyQuery()
		m.syncDetail()
	}
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filter.SetValue(m.query)
		m.filter.CursorEnd()
		m.layout()
		return m, m.filter.Focus()

	case key.Matches(msg, m.keys.ClearFilter):
		if m.query == "" {
			return m, nil
		}
		m.filter.SetValue("")
		m.query = ""
		m.applyQuery()
		m.layout()
		m.syncDetail()
		return m, nil

	case key.Matches(msg, m.keys.ExpandAll):
		m.current().ExpandAll()
		m.syncDetail()
		return m, nil

	case key.Matches(msg, m.keys.CollapseAll):
		m.current().CollapseAll()
		m.syncDetail()
		return m, nil

	case key.Matches(msg, m.keys.Detail):
		m.showDetail = !m.showDetail
		m.layout()
		m.syncDetail()
		return m, nil

	case key.Matches(msg, m.keys.HideOutline):
		m.pane.Collapsed = !m.pane.Collapsed
		if m.pane.Collapsed {
			m.showDetail = true
		}
		m.layout()
		m.syncDetail()
		return m, m.savePaneCmd()

	case key.Matches(msg, m.keys.Narrower), key.Matches(msg, m.keys.Wider):
		step := paneWidthStep
		if key.Matches(msg, m.keys.Narrower) {
			step = -step
		}
		w := clampPaneWidth(m.paneWidth() + step)
		if w == m.pane.Width {
			return m, nil
		}
		m.pane.Width = w
		m.layout()
		m.syncDetail()
		return m, m.savePaneCmd()

	case key.Matches(msg, m.keys.DetailDown):
		m.detail.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keys.DetailUp):
		m.detail.HalfViewUp()
		return m, nil
	}
	return m.handleNav(m.keys.navKey(msg))
}

func (m Model) handleNav(k nav.Key) (tea.Model, tea.Cmd) {
	if k == nav.KeyNone {
		return m, nil
	}
	res := m.current().HandleKey(k)
	if res.Activated != nil {
		n := *res.Activated
		m.activated = &n
		m.status = activationStatus(n)
		m.logger.Debug("activated", zap.String("id", n.ID), zap.String("target", targetString(n.Target)))
	}
	m.syncDetail()
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	n := m.current()
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		n.ScrollBy(-wheelStep)
		return m, nil
	case tea.MouseButtonWheelDown:
		n.ScrollBy(wheelStep)
		return m, nil
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
	default:
		return m, nil
	}

	outlineW, _ := m.splitWidths()
	if msg.X >= outlineW {
		return m, nil
	}
	i := n.Offset() + msg.Y - m.bodyTop()
	rows := n.Rows()
	if msg.Y < m.bodyTop() || i < 0 || i >= len(rows) || i >= n.Offset()+n.Height() {
		return m, nil
	}
	row := rows[i]
	// A click on the twisty column toggles, anywhere else focuses.
	if tw := row.Depth * 2; row.HasChildren && msg.X >= tw && msg.X <= tw+1 {
		n.Toggle(row.ID())
	} else {
		n.SetActive(row.ID())
	}
	m.syncDetail()
	return m, nil
}

func activationStatus(n model.Node) string {
	if t := targetString(n.Target); t != "" {
		return glyphArrow() + " " + t
	}
	return "activated " + n.Label
}

func (m Model) paneWidth() int {
	if m.pane.Width > 0 {
		return m.pane.Width
	}
	return 48
}

func (m Model) splitWidths() (outline, detail int) {
	return splitWidths(m.width, m.paneWidth(), m.showDetail, m.pane.Collapsed)
}

// bodyTop is the first screen line of the outline body.
func (m Model) bodyTop() int {
	top := 1 // header
	if m.filtering || strings.TrimSpace(m.query) != "" {
		top++
	}
	return top
}

func (m *Model) bodyHeight() int {
	h := m.height - m.bodyTop() - 1 // footer
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) layout() {
	h := m.bodyHeight()
	m.browse.SetViewport(h)
	if m.search != nil {
		m.search.SetViewport(h)
	}
	_, detailW := m.splitWidths()
	m.detail.Width = detailW
	m.detail.Height = h
	m.filter.Width = m.width - 4
	m.detailKey = ""
}

// syncDetail re-renders the detail pane when the active node or its width changed.
func (m *Model) syncDetail() {
	if !m.showDetail || m.detail.Width <= 0 {
		return
	}
	row, ok := m.current().Active()
	if !ok {
		m.detail.SetContent("")
		m.detailKey = ""
		return
	}
	k := row.ID() + "@" + strconv.Itoa(m.detail.Width)
	if k == m.detailKey {
		return
	}
	m.detailKey = k
	m.detail.SetContent(renderMarkdown(detailMarkdown(row.Node), m.detail.Width-1))
	m.detail.GotoTop()
}
