package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/felixgeelhaar/evmkit/pkg/domain/kpi"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI dashboard of the portfolio KPIs",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		dash, err := services.Portfolio.WorkspaceDashboard(cmd.Context())
		if err != nil {
			return err
		}
		m := newDashboardModel(dash)
		if os.Getenv("EVMKIT_SKIP_DASHBOARD_RUN") == "true" {
			fmt.Println(m.View())
			return nil
		}
		p := tea.NewProgram(m)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard run failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(dashboardCmd)
}

var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

type dashboardModel struct {
	table   table.Model
	summary kpi.Summary
	results []kpi.Result
	missing []string
}

func newDashboardModel(d *kpi.Dashboard) dashboardModel {
	results := d.All()

	t := table.New(
		table.WithColumns(kpiColumns),
		table.WithRows(kpiRows(results)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229"))
	t.SetStyles(s)

	return dashboardModel{table: t, summary: d.Summary, results: results, missing: d.Unavailable}
}

func (m dashboardModel) Init() tea.Cmd { return nil }

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// selected returns the result under the cursor.
func (m dashboardModel) selected() (kpi.Result, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.results) {
		return kpi.Result{}, false
	}
	return m.results[i], true
}

func (m dashboardModel) View() string {
	s := m.summary
	header := headerStyle.Render(fmt.Sprintf("Portfolio KPIs: %d excellent, %d good, %d warning, %d critical",
		s.Excellent, s.Good, s.Warning, s.Critical))

	detail := ""
	if r, ok := m.selected(); ok {
		detail = fmt.Sprintf("\n%s [%s]\n%s\n%s", r.Name, colorStatus(r.Status), r.Description, dimStyle.Render(r.Calculation))
	}

	missing := ""
	if len(m.missing) > 0 {
		missing = dimStyle.Render(fmt.Sprintf("\n%d indicators lack data", len(m.missing)))
	}

	return baseStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			m.table.View(),
			detail,
			missing,
			"\n[q] Quit  [Up/Down] Navigate",
		),
	) + "\n"
}
