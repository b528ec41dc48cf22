package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/wifimon/internal/probe"
	"github.com/rileyhilliard/wifimon/internal/ui"
	"github.com/rileyhilliard/wifimon/internal/wifi"
)

// Scanner lists visible networks. *probe.Service implements it.
type Scanner interface {
	ScanNetworks(ctx context.Context) probe.Response[[]wifi.NetworkEntry]
}

// Width breakpoints for layout
const (
	BreakpointCompact = 80
	BreakpointWide    = 120
)

// Model is the Bubble Tea model for the link dashboard. It renders states
// published by a Poller; the Poller's loop runs outside the program.
type Model struct {
	poller   *Poller
	scanner  Scanner
	updates  <-chan State
	platform string

	state State

	networks     []wifi.NetworkEntry
	networkTable table.Model
	scanned      bool
	scanning     bool
	scanErr      string
	lastScan     time.Time

	spinner        spinner.Model
	detailViewport viewport.Model
	viewportReady  bool

	width    int
	height   int
	viewMode ViewMode
	showHelp bool
	quitting bool
	now      func() time.Time
}

// stateMsg carries a state published by the poller.
type stateMsg State

// pollerClosedMsg signals that the subscription channel was closed.
type pollerClosedMsg struct{}

// scanMsg carries the result of an on-demand scan.
type scanMsg struct {
	resp probe.Response[[]wifi.NetworkEntry]
	at   time.Time
}

// NewModel creates a dashboard subscribed to poller. scanner may be nil,
// which disables network scans.
func NewModel(poller *Poller, scanner Scanner, platform string) Model {
	sp := spinner.New()
	sp.Spinner = ui.SpinnerFrames
	sp.Style = StatusConnectingStyle

	m := Model{
		poller:       poller,
		scanner:      scanner,
		platform:     platform,
		state:        poller.Latest(),
		networkTable: ui.NewTable(ui.NetworkColumns, nil, 10, true),
		spinner:      sp,
		now:          time.Now,
	}
	m.updates = poller.Subscribe()
	return m
}

// Init starts listening for poller states and the spinner animation.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForState(m.updates), m.spinner.Tick)
}

// waitForState blocks until the poller publishes the next state.
func waitForState(ch <-chan State) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return pollerClosedMsg{}
		}
		return stateMsg(s)
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3
		footerHeight := 2
		bodyHeight := m.height - headerHeight - footerHeight
		if bodyHeight < 1 {
			bodyHeight = 1
		}

		if !m.viewportReady {
			m.detailViewport = viewport.New(m.width, bodyHeight)
			m.detailViewport.YPosition = headerHeight
			m.viewportReady = true
		} else {
			m.detailViewport.Width = m.width
			m.detailViewport.Height = bodyHeight
		}
		m.networkTable.SetHeight(bodyHeight)
		if m.viewMode == ViewDetail {
			m.updateDetailViewportContent()
		}

	case stateMsg:
		m.state = State(msg)
		if m.viewMode == ViewDetail {
			m.updateDetailViewportContent()
		}
		return m, waitForState(m.updates)

	case pollerClosedMsg:
		return m, nil

	case scanMsg:
		m.scanning = false
		m.scanned = true
		m.lastScan = msg.at
		m.networks = msg.resp.Data
		m.scanErr = ""
		if msg.resp.Err != nil {
			m.scanErr = msg.resp.Err.Error()
		}
		m.networkTable.SetRows(ui.NetworkTableRows(m.networks))
		m.networkTable.GotoTop()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	switch m.viewMode {
	case ViewDetail:
		return m.renderDetailView()
	case ViewNetworks:
		return m.renderNetworksView()
	}
	return m.renderDashboard()
}

// startScan launches a scan unless one is already running.
func (m *Model) startScan() tea.Cmd {
	if m.scanner == nil || m.scanning {
		return nil
	}
	m.scanning = true
	scanner := m.scanner
	now := m.now
	return func() tea.Msg {
		resp := scanner.ScanNetworks(context.Background())
		return scanMsg{resp: resp, at: now()}
	}
}

// State returns the state currently on screen.
func (m Model) State() State {
	return m.state
}

// Networks returns the last scan result.
func (m Model) Networks() []wifi.NetworkEntry {
	return m.networks
}

// SecondsSinceUpdate returns how many seconds have passed since the last poll.
func (m Model) SecondsSinceUpdate() int {
	if m.state.UpdatedAt.IsZero() {
		return 0
	}
	return int(m.now().Sub(m.state.UpdatedAt).Seconds())
}

// compact reports whether the terminal is too narrow for side-by-side panels.
func (m Model) compact() bool {
	return m.width > 0 && m.width < BreakpointWide
}
