// Package regconsole renders the register as a terminal console: dashboard
// header, summary list, and a detail pane for the selected system. The
// console is read only; mutations go through the CLI or the HTTP API.
package regconsole

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"aiahub/internal/domain/assessment"
	"aiahub/internal/usecase/register"
)

const maxShownMitigations = 4

type Options struct {
	Actor           string
	StatusFilter    string
	AgencyFilter    string
	RefreshInterval time.Duration
}

type registerModel struct {
	ctx             context.Context
	service         *register.Service
	actor           string
	statusFilter    string
	agencyFilter    string
	refreshInterval time.Duration

	systems       []register.SystemListItem
	selectedIndex int
	detail        *assessment.Assessment
	hasDetail     bool
	dashboard     register.Dashboard
	hasDashboard  bool
	status        string
}

type tickMsg struct{}

type systemsLoadedMsg struct {
	items []register.SystemListItem
	err   error
}

type dashboardLoadedMsg struct {
	counts register.Dashboard
	err    error
}

type detailLoadedMsg struct {
	systemID uint64
	record   *assessment.Assessment
	err      error
}

func NewModel(ctx context.Context, service *register.Service, options Options) tea.Model {
	interval := options.RefreshInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	return &registerModel{
		ctx:             ctx,
		service:         service,
		actor:           strings.TrimSpace(options.Actor),
		statusFilter:    strings.TrimSpace(options.StatusFilter),
		agencyFilter:    strings.TrimSpace(options.AgencyFilter),
		refreshInterval: interval,
		status:          "loading",
	}
}

func (m *registerModel) Init() tea.Cmd {
	return tea.Batch(m.loadDashboardCmd(), m.loadSystemsCmd(), m.tickCmd())
}

func (m *registerModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case tickMsg:
		return m, tea.Batch(m.loadDashboardCmd(), m.loadSystemsCmd(), m.tickCmd())
	case systemsLoadedMsg:
		if msg.err != nil {
			m.status = "refresh failed: " + msg.err.Error()
			return m, nil
		}
		m.systems = msg.items
		if len(m.systems) == 0 {
			m.selectedIndex = 0
			m.hasDetail = false
			m.detail = nil
			m.status = "register is empty"
			return m, nil
		}
		if m.selectedIndex < 0 {
			m.selectedIndex = 0
		}
		if m.selectedIndex >= len(m.systems) {
			m.selectedIndex = len(m.systems) - 1
		}
		m.status = fmt.Sprintf("refreshed, %d systems", len(m.systems))
		return m, m.loadSelectedDetailCmd()
	case dashboardLoadedMsg:
		if msg.err != nil {
			m.hasDashboard = false
			m.status = "dashboard failed: " + msg.err.Error()
			return m, nil
		}
		m.dashboard = msg.counts
		m.hasDashboard = true
		return m, nil
	case detailLoadedMsg:
		if !m.isCurrentSelection(msg.systemID) {
			return m, nil
		}
		if msg.err != nil {
			m.hasDetail = false
			m.detail = nil
			m.status = "detail failed: " + msg.err.Error()
			return m, nil
		}
		m.detail = msg.record
		m.hasDetail = true
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "g":
			m.status = "refreshing"
			return m, tea.Batch(m.loadDashboardCmd(), m.loadSystemsCmd())
		case "up", "k":
			if m.selectedIndex > 0 {
				m.selectedIndex--
				return m, m.loadSelectedDetailCmd()
			}
			return m, nil
		case "down", "j":
			if m.selectedIndex < len(m.systems)-1 {
				m.selectedIndex++
				return m, m.loadSelectedDetailCmd()
			}
			return m, nil
		}
	}
	return m, nil
}

func (m *registerModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("62"))

	var builder strings.Builder
	builder.WriteString(titleStyle.Render("AI Governance Register"))
	builder.WriteString("\n")
	builder.WriteString(dimStyle.Render(fmt.Sprintf(
		"actor=%s status=%s agency=%s refresh=%s",
		firstNonEmpty(m.actor, "-"),
		firstNonEmpty(m.statusFilter, "all"),
		firstNonEmpty(m.agencyFilter, "all"),
		m.refreshInterval,
	)))
	builder.WriteString("\n\n")

	builder.WriteString(sectionStyle.Render("Dashboard"))
	builder.WriteString("\n")
	if !m.hasDashboard {
		builder.WriteString(dimStyle.Render("- not loaded"))
		builder.WriteString("\n\n")
	} else {
		builder.WriteString(fmt.Sprintf("Systems: %d\n", m.dashboard.TotalSystems))
		builder.WriteString("Status:  " + formatCounts(m.dashboard.ByStatus, assessment.Statuses) + "\n")
		builder.WriteString("Risk:    " + m.renderRiskCounts() + "\n")
		builder.WriteString("\n")
	}

	builder.WriteString(sectionStyle.Render("Systems"))
	builder.WriteString("\n")
	if len(m.systems) == 0 {
		builder.WriteString(dimStyle.Render("- no systems"))
		builder.WriteString("\n\n")
	} else {
		for index, item := range m.systems {
			line := fmt.Sprintf(
				"#%d %s [%s] status=%s risk=%s total=%d",
				item.SystemID,
				item.SystemName,
				firstNonEmpty(item.AgencyName, "-"),
				item.Status,
				firstNonEmpty(item.RiskCategory, "-"),
				item.TotalScore,
			)
			if index == m.selectedIndex {
				builder.WriteString(selectedStyle.Render("> " + line))
			} else {
				builder.WriteString("  " + riskStyle(item.RiskCategory).Render(line))
			}
			builder.WriteString("\n")
		}
		builder.WriteString("\n")
	}

	builder.WriteString(sectionStyle.Render("Detail"))
	builder.WriteString("\n")
	if !m.hasDetail || m.detail == nil {
		builder.WriteString(dimStyle.Render("- no detail"))
		builder.WriteString("\n\n")
	} else {
		record := m.detail
		builder.WriteString(fmt.Sprintf("System:   #%d %s\n", record.SystemID, record.SystemName))
		builder.WriteString(fmt.Sprintf("Agency:   %s\n", firstNonEmpty(record.AgencyName, "-")))
		builder.WriteString(fmt.Sprintf("Status:   %s\n", record.Status))
		builder.WriteString("Risk:     " + riskStyle(record.RiskCategory.Category).Render(
			fmt.Sprintf("%s (total %d/%d)", record.RiskCategory.Category, record.TotalScore, assessment.MaxTotalScore)))
		builder.WriteString("\n")
		builder.WriteString(fmt.Sprintf("Scored:   %d of %d dimensions\n", scoredDimensions(record), len(assessment.Dimensions)))
		builder.WriteString("Related:  " + formatRelatedStatuses(record.RelatedStatuses) + "\n")

		if len(record.MitigationPlan) > 0 {
			builder.WriteString("Mitigations:\n")
			shown := record.MitigationPlan
			if len(shown) > maxShownMitigations {
				shown = shown[:maxShownMitigations]
			}
			for _, item := range shown {
				builder.WriteString(fmt.Sprintf("- [%s] %s\n", item.Status, firstNonEmpty(item.RiskDescription, item.Dimension)))
			}
			if len(record.MitigationPlan) > maxShownMitigations {
				builder.WriteString(dimStyle.Render(fmt.Sprintf("- and %d more\n", len(record.MitigationPlan)-maxShownMitigations)))
			}
		} else {
			builder.WriteString("Mitigations: none\n")
		}
		builder.WriteString(fmt.Sprintf("Modified: %s\n", record.LastModified))
		builder.WriteString("\n")
	}

	builder.WriteString(sectionStyle.Render("Status"))
	builder.WriteString("\n")
	builder.WriteString("- " + firstNonEmpty(m.status, "ready"))
	builder.WriteString("\n\n")

	builder.WriteString(dimStyle.Render("Keys: ↑/k ↓/j move  g refresh  q quit"))
	return builder.String()
}

func (m *registerModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *registerModel) loadSystemsCmd() tea.Cmd {
	return func() tea.Msg {
		items, err := m.service.ListSystems(m.ctx, register.ListSystemsInput{
			Status: m.statusFilter,
			Agency: m.agencyFilter,
		})
		if err != nil {
			return systemsLoadedMsg{err: err}
		}
		return systemsLoadedMsg{items: items}
	}
}

func (m *registerModel) loadDashboardCmd() tea.Cmd {
	return func() tea.Msg {
		counts, err := m.service.DashboardCounts(m.ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		return dashboardLoadedMsg{counts: counts}
	}
}

func (m *registerModel) loadSelectedDetailCmd() tea.Cmd {
	selected, ok := m.selectedSystem()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		record, err := m.service.GetAssessment(m.ctx, selected.SystemID)
		if err != nil {
			return detailLoadedMsg{systemID: selected.SystemID, err: err}
		}
		return detailLoadedMsg{systemID: selected.SystemID, record: record}
	}
}

func (m *registerModel) selectedSystem() (register.SystemListItem, bool) {
	if len(m.systems) == 0 {
		return register.SystemListItem{}, false
	}
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.systems) {
		return register.SystemListItem{}, false
	}
	return m.systems[m.selectedIndex], true
}

func (m *registerModel) isCurrentSelection(systemID uint64) bool {
	selected, ok := m.selectedSystem()
	if !ok {
		return false
	}
	return selected.SystemID == systemID
}

func (m *registerModel) renderRiskCounts() string {
	order := []string{assessment.RiskLow, assessment.RiskMedium, assessment.RiskHigh, assessment.RiskSevere, assessment.RiskUndefined}
	parts := make([]string, 0, len(order))
	for _, category := range order {
		count, ok := m.dashboard.ByRisk[category]
		if !ok || count == 0 {
			continue
		}
		parts = append(parts, riskStyle(category).Render(fmt.Sprintf("%s=%d", category, count)))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

// riskStyle colors a fragment by risk category; undefined and unknown
// categories stay unstyled.
func riskStyle(category string) lipgloss.Style {
	switch category {
	case assessment.RiskLow:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	case assessment.RiskMedium:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	case assessment.RiskHigh:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	case assessment.RiskSevere:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	default:
		return lipgloss.NewStyle()
	}
}

func scoredDimensions(record *assessment.Assessment) int {
	count := 0
	for _, entry := range record.Dimensions {
		if entry.Score > 0 {
			count++
		}
	}
	return count
}

func formatCounts(counts map[string]int64, order []string) string {
	parts := make([]string, 0, len(counts))
	for _, key := range order {
		if count, ok := counts[key]; ok && count > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", key, count))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func formatRelatedStatuses(statuses map[string]string) string {
	if len(statuses) == 0 {
		return "-"
	}
	names := make([]string, 0, len(statuses))
	for name := range statuses {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%s", name, statuses[name]))
	}
	return strings.Join(parts, " ")
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		normalized := strings.TrimSpace(value)
		if normalized != "" {
			return normalized
		}
	}
	return ""
}
