package application_test

import (
	"context"

	"github.com/felixgeelhaar/evmkit/pkg/domain/portfolio"
)

type MockRepo struct {
	Portfolio   *portfolio.Portfolio
	Initialized bool
	InitError   error
	SaveError   error
	LoadError   error
}

func (m *MockRepo) Initialize() error {
	if m.InitError != nil {
		return m.InitError
	}
	m.Initialized = true
	return nil
}
func (m *MockRepo) IsInitialized() bool { return m.Initialized }
func (m *MockRepo) SavePortfolio(pf *portfolio.Portfolio) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Portfolio = pf
	return nil
}
func (m *MockRepo) LoadPortfolio(ctx context.Context) (*portfolio.Portfolio, error) {
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	if m.Portfolio == nil {
		return nil, portfolio.ErrNoPortfolio
	}
	return m.Portfolio, nil
}
