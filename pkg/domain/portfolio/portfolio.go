// Package portfolio models the tracked project collection: each project's
// portfolio attributes together with its task progress and metric history.
package portfolio

import (
	"time"

	"github.com/felixgeelhaar/evmkit/pkg/domain/evm"
	"github.com/felixgeelhaar/evmkit/pkg/domain/kpi"
)

// Project is a tracked project.
type Project struct {
	kpi.Project
	StatusDate  time.Time          `json:"status_date"`
	Progress    []evm.TaskProgress `json:"progress,omitempty"`
	History     []evm.HistoryPoint `json:"history,omitempty"`
	CostEntries []evm.CostEntry    `json:"cost_entries,omitempty"`
}

// HasProgress reports whether the project carries task progress for EVM.
func (p Project) HasProgress() bool {
	return len(p.Progress) > 0
}

// EVMInput builds the earned value input of the project. The budget total is
// the BAC and the project dates bound the plan.
func (p Project) EVMInput() evm.Input {
	return evm.Input{
		ProjectID:        p.ID,
		Tasks:            p.Progress,
		TotalBudget:      p.Budget.Total,
		StatusDate:       p.StatusDate,
		PlannedStartDate: p.StartDate,
		PlannedEndDate:   p.EndDate,
	}
}

// Portfolio is the full workspace document.
type Portfolio struct {
	Name      string        `json:"name"`
	Projects  []Project     `json:"projects"`
	Tasks     []kpi.Task    `json:"tasks,omitempty"`
	Timeframe kpi.Timeframe `json:"timeframe"`
}

// Find returns the project with the given id.
func (pf *Portfolio) Find(id string) (*Project, bool) {
	for i := range pf.Projects {
		if pf.Projects[i].ID == id {
			return &pf.Projects[i], true
		}
	}
	return nil, false
}

// KPIProjects returns the portfolio view of every project.
func (pf *Portfolio) KPIProjects() []kpi.Project {
	out := make([]kpi.Project, len(pf.Projects))
	for i, p := range pf.Projects {
		out[i] = p.Project
	}
	return out
}

// TasksOf returns the tasks of a project.
func (pf *Portfolio) TasksOf(projectID string) []kpi.Task {
	var out []kpi.Task
	for _, t := range pf.Tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}
