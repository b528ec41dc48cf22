package monitor

import tea "github.com/charmbracelet/bubbletea"

// ViewMode defines the current display mode of the dashboard.
type ViewMode int

const (
	ViewDashboard ViewMode = iota
	ViewDetail
	ViewNetworks
)

// Key bindings as constants for consistency.
const (
	KeyQuit       = "q"
	KeyQuitAlt    = "ctrl+c"
	KeyRefresh    = "r"
	KeyScan       = "n"
	KeyExpand     = "enter"
	KeyCollapse   = "esc"
	KeyToggleHelp = "?"
	KeyNetworks   = "tab"
)

// HandleKeyMsg processes keyboard input. Returns true if the key was handled.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	// Help toggle takes priority
	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}
	if m.showHelp && key == KeyCollapse {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		if m.poller != nil && m.updates != nil {
			m.poller.Unsubscribe(m.updates)
		}
		return true, tea.Quit

	case KeyRefresh:
		if m.poller != nil {
			m.poller.Refresh()
		}
		return true, nil

	case KeyScan:
		m.viewMode = ViewNetworks
		return true, m.startScan()

	case KeyNetworks:
		if m.viewMode == ViewNetworks {
			m.viewMode = ViewDashboard
			return true, nil
		}
		m.viewMode = ViewNetworks
		if !m.scanned && !m.scanning {
			return true, m.startScan()
		}
		return true, nil

	case KeyExpand:
		if m.viewMode == ViewDashboard {
			m.viewMode = ViewDetail
			m.updateDetailViewportContent()
		}
		return true, nil

	case KeyCollapse:
		m.viewMode = ViewDashboard
		return true, nil
	}

	// Scrolling keys belong to whichever pane is open.
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewDetail:
		if m.viewportReady {
			m.detailViewport, cmd = m.detailViewport.Update(msg)
			return true, cmd
		}
	case ViewNetworks:
		m.networkTable, cmd = m.networkTable.Update(msg)
		return true, cmd
	}
	return false, nil
}
