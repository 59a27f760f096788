package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"coteach/internal/classify"
	"coteach/internal/service"
)

// DashboardModel is the faculty view: summary metrics, the recommended
// action, the topic distribution and the filterable, paginated question log.
// The filter and page cursor are explicit model state passed into the core
// on every load.
type DashboardModel struct {
	svc      *service.Service
	pageSize int

	filters   []string // "All" followed by each topic
	filterIdx int
	pageIdx   int

	dash service.Dashboard
	page service.PageResult

	confirmReset bool
	status       string
	err          error

	width  int
	height int
}

// NewDashboard builds the faculty dashboard model.
func NewDashboard(svc *service.Service, pageSize int) *DashboardModel {
	filters := []string{classify.FilterAll}
	for _, t := range classify.AllTopics() {
		filters = append(filters, string(t))
	}
	return &DashboardModel{svc: svc, pageSize: pageSize, filters: filters}
}

func (m *DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

// loadCmd captures the current filter and cursor so a stale closure cannot
// race a later key press.
func (m *DashboardModel) loadCmd() tea.Cmd {
	svc := m.svc
	filter := m.filters[m.filterIdx]
	pageIdx := m.pageIdx
	pageSize := m.pageSize
	return func() tea.Msg {
		dash, err := svc.GetDashboard()
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		page, err := svc.GetPage(filter, pageIdx, pageSize)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		return dashboardLoadedMsg{dash: dash, page: page}
	}
}

func (m *DashboardModel) exportCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		path := fmt.Sprintf("coteach_export_%s.csv", time.Now().Format("20060102_150405"))
		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		defer f.Close()
		rows, err := svc.Export(f)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path, rows: rows}
	}
}

func (m *DashboardModel) resetCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return resetDoneMsg{err: svc.Reset()}
	}
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case dashboardLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.dash = msg.dash
		m.page = msg.page
		// The core clamps stale cursors; adopt the page it actually served.
		m.pageIdx = msg.page.PageIndex
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = fmt.Sprintf("exported %d rows to %s", msg.rows, msg.path)
		return m, nil

	case resetDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = "all data cleared"
		m.pageIdx = 0
		return m, m.loadCmd()
	}

	return m, nil
}

func (m *DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.confirmReset {
		m.confirmReset = false
		if key == "y" {
			return m, m.resetCmd()
		}
		m.status = "reset cancelled"
		return m, nil
	}

	m.status = ""
	switch key {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "f", "tab":
		m.filterIdx = (m.filterIdx + 1) % len(m.filters)
		m.pageIdx = 0
		return m, m.loadCmd()
	case "F", "shift+tab":
		m.filterIdx = (m.filterIdx + len(m.filters) - 1) % len(m.filters)
		m.pageIdx = 0
		return m, m.loadCmd()
	case "right", "l", "n":
		if m.pageIdx < m.page.TotalPages-1 {
			m.pageIdx++
			return m, m.loadCmd()
		}
		return m, nil
	case "left", "h", "p":
		if m.pageIdx > 0 {
			m.pageIdx--
			return m, m.loadCmd()
		}
		return m, nil
	case "r":
		return m, m.loadCmd()
	case "e":
		return m, m.exportCmd()
	case "R":
		m.confirmReset = true
		return m, nil
	}
	return m, nil
}

func (m *DashboardModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Faculty Insights Dashboard"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n\n")
	}

	if !m.dash.Summary.HasData() {
		b.WriteString(dimStyle.Render("No data yet. Run the student chat and ask some questions to populate the log."))
		b.WriteString("\n\n")
		b.WriteString(m.footer())
		return b.String()
	}

	// Metrics row
	total := metricCardStyle.Render(fmt.Sprintf("Total Questions\n%d", m.dash.Summary.Total))
	gap := metricCardStyle.Render(fmt.Sprintf("Primary Learning Gap\n%s", m.dash.Summary.TopTopic))
	last := metricCardStyle.Render(fmt.Sprintf("Last Activity\n%s", m.dash.Summary.LastActivity.Format("15:04")))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, total, " ", gap, " ", last))
	b.WriteString("\n\n")

	// Recommendation
	b.WriteString(adviceStyle.Render("Teaching strategy: " + m.dash.Recommendation))
	b.WriteString("\n\n")

	// Topic distribution
	b.WriteString(headerStyle.Render("Gap Analysis by Topic"))
	b.WriteString("\n")
	b.WriteString(renderDistribution(m.dash.Counts, m.dash.Summary.Total))
	b.WriteString("\n")

	// Question log
	b.WriteString(headerStyle.Render("Question Log"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  filter: %s  page %d/%d",
		m.filters[m.filterIdx], m.pageIdx+1, m.page.TotalPages)))
	b.WriteString("\n")
	if len(m.page.Entries) == 0 {
		b.WriteString(dimStyle.Render("  no questions match this filter"))
		b.WriteString("\n")
	}
	for _, e := range m.page.Entries {
		marker := "  "
		if e.Urgent {
			marker = urgentStyle.Render("! ")
		}
		line := fmt.Sprintf("%s%s  %-10s  %s",
			marker, e.Timestamp.Format("01-02 15:04"), e.Topic, truncate(e.Text, m.width-28))
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.confirmReset {
		b.WriteString(urgentStyle.Render("Delete ALL interactions? Press y to confirm, any other key to cancel."))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(dimStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.footer())
	return b.String()
}

func (m *DashboardModel) footer() string {
	return dimStyle.Render("f filter  ←/→ page  r refresh  e export  R reset  q quit")
}

func renderDistribution(counts map[classify.Topic]int, total int) string {
	const barWidth = 30
	var b strings.Builder
	for _, topic := range classify.AllTopics() {
		n := counts[topic]
		filled := 0
		if total > 0 {
			filled = n * barWidth / total
		}
		if n > 0 && filled == 0 {
			filled = 1
		}
		bar := barStyle.Render(strings.Repeat("█", filled)) +
			dimStyle.Render(strings.Repeat("░", barWidth-filled))
		b.WriteString(fmt.Sprintf("  %-10s %s %d\n", topic, bar, n))
	}
	return b.String()
}

func truncate(s string, max int) string {
	if max < 10 {
		max = 60
	}
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// RunDashboard starts the faculty dashboard interface.
func RunDashboard(svc *service.Service, pageSize int) error {
	p := tea.NewProgram(NewDashboard(svc, pageSize), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
