package application_test

import (
	"errors"
	"testing"

	"github.com/felixgeelhaar/evmkit/pkg/application"
	"github.com/felixgeelhaar/evmkit/pkg/domain/evm"
)

func TestInitService_InitializeWorkspace(t *testing.T) {
	tests := []struct {
		name         string
		sample       bool
		wantProjects int
	}{
		{"empty", false, 0},
		{"sample", true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockRepo{}
			svc := application.NewInitService(repo, evm.FixedClock(fixedNow))

			pf, err := svc.InitializeWorkspace("acme", tt.sample)
			if err != nil {
				t.Fatalf("InitializeWorkspace: %v", err)
			}
			if !repo.Initialized {
				t.Error("expected repository to be initialized")
			}
			if repo.Portfolio != pf || pf.Name != "acme" {
				t.Errorf("expected saved portfolio named acme, got %+v", repo.Portfolio)
			}
			if len(pf.Projects) != tt.wantProjects {
				t.Errorf("expected %d projects, got %d", tt.wantProjects, len(pf.Projects))
			}
		})
	}
}

func TestInitService_AlreadyInitialized(t *testing.T) {
	svc := application.NewInitService(&MockRepo{Initialized: true}, nil)
	if _, err := svc.InitializeWorkspace("acme", false); !errors.Is(err, application.ErrAlreadyInitialized) {
		t.Fatalf("expected ErrAlreadyInitialized, got %v", err)
	}
}

func TestInitService_SaveFailure(t *testing.T) {
	saveErr := errors.New("read-only")
	svc := application.NewInitService(&MockRepo{SaveError: saveErr}, nil)
	if _, err := svc.InitializeWorkspace("acme", true); !errors.Is(err, saveErr) {
		t.Fatalf("expected save error, got %v", err)
	}
}

func TestSamplePortfolioIsValid(t *testing.T) {
	pf := application.SamplePortfolio("demo", fixedNow)
	calc := evm.NewCalculator(evm.WithClock(evm.FixedClock(fixedNow)))
	for _, p := range pf.Projects {
		if !p.HasProgress() {
			continue
		}
		if _, err := calc.Calculate(p.EVMInput()); err != nil {
			t.Errorf("project %s: %v", p.ID, err)
		}
	}
}
