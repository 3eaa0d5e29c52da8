package storage

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/evmkit/pkg/domain/evm"
	"github.com/felixgeelhaar/evmkit/pkg/domain/kpi"
	"github.com/felixgeelhaar/evmkit/pkg/domain/portfolio"
)

// Dates are kept as strings in the document so both plain dates and RFC 3339
// timestamps round-trip unchanged.
const dateLayout = "2006-01-02"

type portfolioDocument struct {
	Name      string            `yaml:"name,omitempty"`
	Timeframe timeframeDocument `yaml:"timeframe,omitempty"`
	Projects  []projectDocument `yaml:"projects"`
	Tasks     []taskDocument    `yaml:"tasks,omitempty"`
}

type timeframeDocument struct {
	Start string `yaml:"start_date,omitempty"`
	End   string `yaml:"end_date,omitempty"`
}

type projectDocument struct {
	ID             string              `yaml:"id"`
	Name           string              `yaml:"name,omitempty"`
	Status         string              `yaml:"status,omitempty"`
	StartDate      string              `yaml:"start_date"`
	EndDate        string              `yaml:"end_date"`
	ActualEndDate  string              `yaml:"actual_end_date,omitempty"`
	StatusDate     string              `yaml:"status_date,omitempty"`
	Budget         kpi.Budget          `yaml:"budget"`
	Revenue        float64             `yaml:"revenue,omitempty"`
	Costs          float64             `yaml:"costs,omitempty"`
	Ratings        []float64           `yaml:"ratings,omitempty"`
	Risks          []kpi.Risk          `yaml:"risks,omitempty"`
	Issues         []issueDocument     `yaml:"issues,omitempty"`
	Resources      resourcesDocument   `yaml:"resources,omitempty"`
	RequiredSkills []string            `yaml:"required_skills,omitempty"`
	TeamSkills     []string            `yaml:"team_skills,omitempty"`
	Progress       []progressDocument  `yaml:"progress,omitempty"`
	History        []historyDocument   `yaml:"history,omitempty"`
	CostEntries    []costEntryDocument `yaml:"cost_entries,omitempty"`
}

type issueDocument struct {
	ID         string `yaml:"id"`
	OpenedAt   string `yaml:"opened_at"`
	ResolvedAt string `yaml:"resolved_at,omitempty"`
}

type resourcesDocument struct {
	AvailableHours float64 `yaml:"available_hours,omitempty"`
	UsedHours      float64 `yaml:"used_hours,omitempty"`
}

type progressDocument struct {
	ID               string  `yaml:"id"`
	Title            string  `yaml:"title,omitempty"`
	PlannedValue     float64 `yaml:"planned_value"`
	ActualCost       float64 `yaml:"actual_cost"`
	PercentComplete  float64 `yaml:"percent_complete"`
	PlannedStartDate string  `yaml:"planned_start_date"`
	PlannedEndDate   string  `yaml:"planned_end_date"`
	Weight           float64 `yaml:"weight,omitempty"`
}

type historyDocument struct {
	Date string  `yaml:"date"`
	CPI  float64 `yaml:"cpi"`
	SPI  float64 `yaml:"spi"`
	CV   float64 `yaml:"cv,omitempty"`
	SV   float64 `yaml:"sv,omitempty"`
}

type costEntryDocument struct {
	ID            string  `yaml:"id,omitempty"`
	TaskID        string  `yaml:"task_id,omitempty"`
	Category      string  `yaml:"category"`
	PlannedAmount float64 `yaml:"planned_amount"`
	ActualAmount  float64 `yaml:"actual_amount"`
	Date          string  `yaml:"date,omitempty"`
}

type taskDocument struct {
	ID          string `yaml:"id"`
	ProjectID   string `yaml:"project_id,omitempty"`
	Status      string `yaml:"status,omitempty"`
	ReworkCount int    `yaml:"rework_count,omitempty"`
}

// ParseDate accepts a plain date or an RFC 3339 timestamp. An empty string
// is the zero time.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}

// FormatDate writes midnight UTC as a plain date and anything else as RFC 3339.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if u := t.UTC(); u.Equal(u.Truncate(24 * time.Hour)) {
		return u.Format(dateLayout)
	}
	return t.Format(time.RFC3339)
}

// dateParser collects date errors so a document reports all of them at once.
type dateParser struct {
	problems []string
}

func (p *dateParser) parse(field, value string) time.Time {
	t, err := ParseDate(value)
	if err != nil {
		p.problems = append(p.problems, fmt.Sprintf("%s: %v", field, err))
	}
	return t
}

func (d portfolioDocument) toPortfolio() (*portfolio.Portfolio, error) {
	dp := &dateParser{}
	pf := &portfolio.Portfolio{
		Name: d.Name,
		Timeframe: kpi.Timeframe{
			Start: dp.parse("timeframe.start_date", d.Timeframe.Start),
			End:   dp.parse("timeframe.end_date", d.Timeframe.End),
		},
		Projects: make([]portfolio.Project, 0, len(d.Projects)),
		Tasks:    make([]kpi.Task, 0, len(d.Tasks)),
	}

	for i, pd := range d.Projects {
		at := fmt.Sprintf("projects.%d", i)
		p := portfolio.Project{
			Project: kpi.Project{
				ID:             pd.ID,
				Name:           pd.Name,
				Status:         kpi.ProjectStatus(pd.Status),
				StartDate:      dp.parse(at+".start_date", pd.StartDate),
				EndDate:        dp.parse(at+".end_date", pd.EndDate),
				ActualEndDate:  dp.parse(at+".actual_end_date", pd.ActualEndDate),
				Budget:         pd.Budget,
				Revenue:        pd.Revenue,
				Costs:          pd.Costs,
				Ratings:        pd.Ratings,
				Risks:          pd.Risks,
				Resources:      kpi.Resources(pd.Resources),
				RequiredSkills: pd.RequiredSkills,
				TeamSkills:     pd.TeamSkills,
			},
			StatusDate: dp.parse(at+".status_date", pd.StatusDate),
		}
		if p.Status == "" {
			p.Status = kpi.ProjectActive
		}

		for j, is := range pd.Issues {
			p.Issues = append(p.Issues, kpi.Issue{
				ID:         is.ID,
				OpenedAt:   dp.parse(fmt.Sprintf("%s.issues.%d.opened_at", at, j), is.OpenedAt),
				ResolvedAt: dp.parse(fmt.Sprintf("%s.issues.%d.resolved_at", at, j), is.ResolvedAt),
			})
		}
		for j, tp := range pd.Progress {
			p.Progress = append(p.Progress, evm.TaskProgress{
				ID:               tp.ID,
				Title:            tp.Title,
				PlannedValue:     tp.PlannedValue,
				ActualCost:       tp.ActualCost,
				PercentComplete:  tp.PercentComplete,
				PlannedStartDate: dp.parse(fmt.Sprintf("%s.progress.%d.planned_start_date", at, j), tp.PlannedStartDate),
				PlannedEndDate:   dp.parse(fmt.Sprintf("%s.progress.%d.planned_end_date", at, j), tp.PlannedEndDate),
				Weight:           tp.Weight,
			})
		}
		for j, h := range pd.History {
			p.History = append(p.History, evm.HistoryPoint{
				Date: dp.parse(fmt.Sprintf("%s.history.%d.date", at, j), h.Date),
				CPI:  h.CPI,
				SPI:  h.SPI,
				CV:   h.CV,
				SV:   h.SV,
			})
		}
		for j, ce := range pd.CostEntries {
			p.CostEntries = append(p.CostEntries, evm.CostEntry{
				ID:            ce.ID,
				TaskID:        ce.TaskID,
				Category:      ce.Category,
				PlannedAmount: ce.PlannedAmount,
				ActualAmount:  ce.ActualAmount,
				Date:          dp.parse(fmt.Sprintf("%s.cost_entries.%d.date", at, j), ce.Date),
			})
		}

		pf.Projects = append(pf.Projects, p)
	}

	for _, td := range d.Tasks {
		pf.Tasks = append(pf.Tasks, kpi.Task(td))
	}

	if len(dp.problems) > 0 {
		return nil, &SchemaError{Problems: dp.problems}
	}
	return pf, nil
}

func fromPortfolio(pf *portfolio.Portfolio) portfolioDocument {
	d := portfolioDocument{
		Name: pf.Name,
		Timeframe: timeframeDocument{
			Start: FormatDate(pf.Timeframe.Start),
			End:   FormatDate(pf.Timeframe.End),
		},
		Projects: make([]projectDocument, 0, len(pf.Projects)),
	}

	for _, p := range pf.Projects {
		pd := projectDocument{
			ID:             p.ID,
			Name:           p.Name,
			Status:         string(p.Status),
			StartDate:      FormatDate(p.StartDate),
			EndDate:        FormatDate(p.EndDate),
			ActualEndDate:  FormatDate(p.ActualEndDate),
			StatusDate:     FormatDate(p.StatusDate),
			Budget:         p.Budget,
			Revenue:        p.Revenue,
			Costs:          p.Costs,
			Ratings:        p.Ratings,
			Risks:          p.Risks,
			Resources:      resourcesDocument(p.Resources),
			RequiredSkills: p.RequiredSkills,
			TeamSkills:     p.TeamSkills,
		}
		for _, is := range p.Issues {
			pd.Issues = append(pd.Issues, issueDocument{
				ID:         is.ID,
				OpenedAt:   FormatDate(is.OpenedAt),
				ResolvedAt: FormatDate(is.ResolvedAt),
			})
		}
		for _, tp := range p.Progress {
			pd.Progress = append(pd.Progress, progressDocument{
				ID:               tp.ID,
				Title:            tp.Title,
				PlannedValue:     tp.PlannedValue,
				ActualCost:       tp.ActualCost,
				PercentComplete:  tp.PercentComplete,
				PlannedStartDate: FormatDate(tp.PlannedStartDate),
				PlannedEndDate:   FormatDate(tp.PlannedEndDate),
				Weight:           tp.Weight,
			})
		}
		for _, h := range p.History {
			pd.History = append(pd.History, historyDocument{
				Date: FormatDate(h.Date),
				CPI:  h.CPI,
				SPI:  h.SPI,
				CV:   h.CV,
				SV:   h.SV,
			})
		}
		for _, ce := range p.CostEntries {
			pd.CostEntries = append(pd.CostEntries, costEntryDocument{
				ID:            ce.ID,
				TaskID:        ce.TaskID,
				Category:      ce.Category,
				PlannedAmount: ce.PlannedAmount,
				ActualAmount:  ce.ActualAmount,
				Date:          FormatDate(ce.Date),
			})
		}
		d.Projects = append(d.Projects, pd)
	}

	for _, t := range pf.Tasks {
		d.Tasks = append(d.Tasks, taskDocument(t))
	}
	return d
}
