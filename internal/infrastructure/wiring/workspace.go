package wiring

import (
	"github.com/felixgeelhaar/evmkit/internal/infrastructure/config"
	"github.com/felixgeelhaar/evmkit/pkg/storage"
)

// Workspace bundles core infrastructure dependencies.
type Workspace struct {
	Root   string
	Repo   *storage.FilesystemRepository
	Alerts *config.AlertConfig
}

// NewWorkspace opens the workspace at root. An unreadable alerts.yaml falls
// back to the default alert config and the load error is returned alongside.
func NewWorkspace(root string) (*Workspace, error) {
	ws := &Workspace{
		Root: root,
		Repo: storage.NewFilesystemRepository(root),
	}

	alerts, err := config.LoadAlertConfig(root)
	if err != nil {
		ws.Alerts = config.DefaultAlertConfig()
		return ws, err
	}
	ws.Alerts = alerts
	return ws, nil
}
