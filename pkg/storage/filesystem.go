package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/evmkit/pkg/domain/portfolio"
	"github.com/felixgeelhaar/fortify/retry"
	"gopkg.in/yaml.v3"
)

const EvmkitDir = ".evmkit"
const PortfolioFile = "portfolio.yaml"

type FilesystemRepository struct {
	root        string
	retryConfig retry.Config
}

func NewFilesystemRepository(root string) *FilesystemRepository {
	return &FilesystemRepository{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Root returns the workspace root directory.
func (r *FilesystemRepository) Root() string {
	return r.root
}

// ResolvePath ensures the path is within the .evmkit directory and prevents traversal.
func (r *FilesystemRepository) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	baseDir := filepath.Join(r.root, EvmkitDir)
	fullPath := filepath.Join(baseDir, filename)
	cleanPath := filepath.Clean(fullPath)

	// Only direct children of .evmkit are allowed
	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}

	return cleanPath, nil
}

func (r *FilesystemRepository) Initialize() error {
	path := filepath.Join(r.root, EvmkitDir)
	// G301: Use 0700 for directories
	if err := os.MkdirAll(path, 0700); err != nil {
		return fmt.Errorf("failed to create .evmkit directory: %w", err)
	}
	return nil
}

func (r *FilesystemRepository) IsInitialized() bool {
	_, err := os.Stat(filepath.Join(r.root, EvmkitDir))
	return err == nil
}

func (r *FilesystemRepository) SavePortfolio(pf *portfolio.Portfolio) error {
	if pf == nil {
		return fmt.Errorf("portfolio is nil")
	}
	path, err := r.ResolvePath(PortfolioFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(fromPortfolio(pf))
	if err != nil {
		return fmt.Errorf("failed to marshal portfolio: %w", err)
	}

	// G306: Use 0600 for files
	return os.WriteFile(path, data, 0600)
}

// LoadPortfolio reads, validates and decodes portfolio.yaml. The read is
// retried because the file may be caught mid-write while it is watched.
// A missing file yields portfolio.ErrNoPortfolio and a document that fails
// validation yields a *SchemaError.
func (r *FilesystemRepository) LoadPortfolio(ctx context.Context) (*portfolio.Portfolio, error) {
	path, err := r.ResolvePath(PortfolioFile)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", portfolio.ErrNoPortfolio, path)
	}

	retryer := retry.New[[]byte](r.retryConfig)
	data, err := retryer.Do(ctx, func(ctx context.Context) ([]byte, error) {
		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read portfolio file: %w", err)
		}
		var probe yaml.Node
		if err := yaml.Unmarshal(data, &probe); err != nil {
			return nil, fmt.Errorf("failed to parse portfolio: %w", err)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	return DecodePortfolio(data)
}

// DecodePortfolio validates a YAML portfolio document and converts it into
// the domain model.
func DecodePortfolio(data []byte) (*portfolio.Portfolio, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio: %w", err)
	}
	if err := ValidateDocument(raw); err != nil {
		return nil, err
	}

	var doc portfolioDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal portfolio: %w", err)
	}
	return doc.toPortfolio()
}
