package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/archguard/archguard/internal/archguard/domain"
	"github.com/archguard/archguard/internal/archguard/recommend"
)

var (
	focusedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))

	normalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff5555")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1fa8c"))
)

type item struct {
	title, desc string
	finding     domain.Finding
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

// Model is the findings browser: one column per severity, a detail pane
// below showing the selected finding's context line and recommendation.
type Model struct {
	report *domain.ValidationReport

	lists    []list.Model
	focused  int
	viewport viewport.Model

	ready  bool
	width  int
	height int
}

func NewModel(report *domain.ValidationReport) Model {
	columns := []struct {
		title    string
		findings []domain.Finding
	}{
		{"Errors", report.Errors},
		{"Warnings", report.Warnings},
	}

	lists := make([]list.Model, len(columns))
	for i, col := range columns {
		findings := append([]domain.Finding{}, col.findings...)
		sort.SliceStable(findings, func(a, b int) bool {
			if findings[a].File != findings[b].File {
				return findings[a].File < findings[b].File
			}
			return findings[a].Line < findings[b].Line
		})

		items := make([]list.Item, 0, len(findings))
		for _, f := range findings {
			items = append(items, item{
				title:   fmt.Sprintf("%s:%d", shortPath(f.File), f.Line),
				desc:    f.RuleID,
				finding: f,
			})
		}
		lists[i] = list.New(items, list.NewDefaultDelegate(), 0, 0)
		lists[i].Title = fmt.Sprintf("%s (%d)", col.title, len(items))
		lists[i].SetShowHelp(false)
	}

	return Model{
		report:  report,
		lists:   lists,
		focused: 0,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "left", "h":
			m.focused--
			if m.focused < 0 {
				m.focused = len(m.lists) - 1
			}
		case "right", "l":
			m.focused++
			if m.focused >= len(m.lists) {
				m.focused = 0
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height/3)
			m.viewport.YPosition = msg.Height - msg.Height/3
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height / 3
		}

		colWidth := msg.Width / len(m.lists)
		listHeight := msg.Height - m.viewport.Height - 5

		for i := range m.lists {
			m.lists[i].SetSize(colWidth-2, listHeight)
		}
	}

	m.lists[m.focused], cmd = m.lists[m.focused].Update(msg)
	cmds = append(cmds, cmd)

	selectedItem := m.lists[m.focused].SelectedItem()
	if selectedItem != nil {
		it := selectedItem.(item)
		m.viewport.SetContent(m.renderDetails(it.finding))
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	cols := make([]string, len(m.lists))
	for i, l := range m.lists {
		style := normalStyle
		if i == m.focused {
			style = focusedStyle
		}
		cols[i] = style.Render(l.View())
	}

	board := lipgloss.JoinHorizontal(lipgloss.Left, cols...)
	details := detailStyle.Width(m.width - 4).Render(m.viewport.View())
	summary := lipgloss.NewStyle().Padding(0, 1).Render(m.report.Summary)

	return lipgloss.JoinVertical(lipgloss.Left, summary, board, details)
}

func (m Model) renderDetails(f domain.Finding) string {
	var sb strings.Builder

	header := errorStyle
	if f.Severity != domain.SeverityError {
		header = warningStyle
	}
	sb.WriteString(header.Render(fmt.Sprintf("[%s] %s", f.Severity, f.RuleID)) + "\n")
	sb.WriteString(fmt.Sprintf("File: %s:%d\n", f.File, f.Line))
	sb.WriteString(f.Message + "\n")
	if f.Context != "" {
		sb.WriteString("\n  " + f.Context + "\n")
	}

	rec := recommend.For(f)
	sb.WriteString(fmt.Sprintf("\n%s\n%s\n", rec.Title, rec.Message))
	if rec.FixText != "" {
		sb.WriteString("Fix: " + rec.FixText + "\n")
	}
	for _, link := range rec.DocLinks {
		sb.WriteString(link + "\n")
	}

	return sb.String()
}

func shortPath(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) > 2 {
		return strings.Join(parts[len(parts)-2:], "/")
	}
	return path
}
