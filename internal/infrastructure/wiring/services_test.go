package wiring

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/felixgeelhaar/evmkit/internal/infrastructure/config"
	"github.com/felixgeelhaar/evmkit/pkg/domain/evm"
)

func TestBuildAppServicesDefaults(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tempDir, ".evmkit"), 0700); err != nil {
		t.Fatalf("mkdir evmkit: %v", err)
	}

	services, err := BuildAppServices(tempDir)
	if err != nil {
		t.Fatalf("build services failed: %v", err)
	}
	if services.Workspace == nil || services.Init == nil || services.EVM == nil || services.Portfolio == nil {
		t.Fatalf("expected non-nil services, got %+v", services)
	}
	if services.Calculator.Thresholds() != evm.DefaultThresholds() {
		t.Fatalf("expected default thresholds, got %+v", services.Calculator.Thresholds())
	}
}

func TestBuildAppServicesUsesAlertConfig(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tempDir, ".evmkit"), 0700); err != nil {
		t.Fatalf("mkdir evmkit: %v", err)
	}
	cfg := config.DefaultAlertConfig()
	cfg.Thresholds.CPIWarning = 0.97
	if err := config.SaveAlertConfig(tempDir, cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}

	services, err := BuildAppServices(tempDir)
	if err != nil {
		t.Fatalf("build services failed: %v", err)
	}
	if services.Calculator.Thresholds().CPIWarning != 0.97 {
		t.Fatalf("expected configured threshold, got %+v", services.Calculator.Thresholds())
	}
}

func TestBuildAppServicesFallbackOnInvalidConfig(t *testing.T) {
	tempDir := t.TempDir()
	dir := filepath.Join(tempDir, ".evmkit")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatalf("mkdir evmkit: %v", err)
	}
	content := "thresholds:\n  spi_warning: 0.7\n  spi_critical: 0.8\n"
	if err := os.WriteFile(filepath.Join(dir, "alerts.yaml"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	services, err := BuildAppServices(tempDir)
	if err == nil {
		t.Fatalf("expected error when alert config is invalid")
	}
	if services == nil {
		t.Fatal("expected services even when fallback error occurs")
	}
	if services.Calculator.Thresholds() != evm.DefaultThresholds() {
		t.Fatalf("expected default thresholds after fallback")
	}
}

func TestBuildAppServicesWithClock(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	services, err := BuildAppServices(t.TempDir(), WithClock(evm.FixedClock(now)))
	if err != nil {
		t.Fatalf("build services failed: %v", err)
	}

	pf, err := services.Init.InitializeWorkspace("demo", true)
	if err != nil {
		t.Fatalf("init workspace: %v", err)
	}
	if !pf.Projects[0].StatusDate.Equal(now) {
		t.Fatalf("expected sample status date %v, got %v", now, pf.Projects[0].StatusDate)
	}

	report, err := services.EVM.ProjectReport(context.Background(), pf.Projects[0].ID)
	if err != nil {
		t.Fatalf("project report: %v", err)
	}
	if !report.ReportDate.Equal(now) {
		t.Fatalf("expected report date %v, got %v", now, report.ReportDate)
	}
}
