package portfolio

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/evmkit/pkg/domain/evm"
	"github.com/felixgeelhaar/evmkit/pkg/domain/kpi"
)

func testPortfolio() *Portfolio {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	return &Portfolio{
		Name: "org",
		Projects: []Project{
			{
				Project:    kpi.Project{ID: "a", StartDate: start, EndDate: end, Budget: kpi.Budget{Total: 1000}},
				StatusDate: start.AddDate(0, 6, 0),
				Progress:   []evm.TaskProgress{{ID: "t1", PlannedValue: 1000}},
			},
			{Project: kpi.Project{ID: "b"}},
		},
		Tasks: []kpi.Task{
			{ID: "t1", ProjectID: "a"},
			{ID: "t2", ProjectID: "b"},
			{ID: "t3", ProjectID: "a"},
		},
	}
}

func TestFind(t *testing.T) {
	pf := testPortfolio()

	p, ok := pf.Find("b")
	if !ok || p.ID != "b" {
		t.Fatalf("Find(b) = %v, %v", p, ok)
	}
	p.Name = "renamed"
	if pf.Projects[1].Name != "renamed" {
		t.Error("Find should return a pointer into the portfolio")
	}

	if _, ok := pf.Find("missing"); ok {
		t.Error("expected missing project not to be found")
	}
}

func TestHasProgress(t *testing.T) {
	pf := testPortfolio()
	if !pf.Projects[0].HasProgress() {
		t.Error("project a has progress")
	}
	if pf.Projects[1].HasProgress() {
		t.Error("project b has no progress")
	}
}

func TestEVMInput(t *testing.T) {
	p := testPortfolio().Projects[0]
	in := p.EVMInput()

	if in.ProjectID != "a" || in.TotalBudget != 1000 || len(in.Tasks) != 1 {
		t.Fatalf("unexpected input: %+v", in)
	}
	if !in.PlannedStartDate.Equal(p.StartDate) || !in.PlannedEndDate.Equal(p.EndDate) {
		t.Errorf("plan bounds = %v..%v", in.PlannedStartDate, in.PlannedEndDate)
	}
	if !in.StatusDate.Equal(p.StatusDate) {
		t.Errorf("StatusDate = %v, want %v", in.StatusDate, p.StatusDate)
	}
}

func TestKPIProjectsAndTasksOf(t *testing.T) {
	pf := testPortfolio()

	projects := pf.KPIProjects()
	if len(projects) != 2 || projects[0].ID != "a" || projects[1].ID != "b" {
		t.Fatalf("KPIProjects = %+v", projects)
	}

	tests := []struct {
		project string
		want    int
	}{
		{"a", 2},
		{"b", 1},
		{"none", 0},
	}
	for _, tt := range tests {
		if got := len(pf.TasksOf(tt.project)); got != tt.want {
			t.Errorf("TasksOf(%s) = %d, want %d", tt.project, got, tt.want)
		}
	}
}
