package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "arealint.dev/pkg/arealint/internal/model"
	"arealint.dev/pkg/arealint/pkg"
)

const (
	summaryFileName    = "summary.yaml"
	violationsFileName = "violations.gob"
)

// ReportStore persists check runs under an output directory: a YAML summary
// for humans and CI, and the violation records themselves as a gob spill so
// very large runs stay cheap to write and reload.
type ReportStore interface {
	SaveRun(dir m.Path, report m.CheckReport, violations []m.Violation) error
	LoadRun(dir m.Path) (m.CheckReport, []m.Violation, error)
}

// LocalReportStore is the concrete ReportStore backed by the filesystem.
type LocalReportStore struct{}

// NewLocalReportStore constructs a LocalReportStore.
func NewLocalReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

// SaveRun implements ReportStore.
func (s *LocalReportStore) SaveRun(dir m.Path, report m.CheckReport, violations []m.Violation) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports directory: %w", err)
	}

	spill, err := pkg.NewSpill[m.Violation](filepath.Join(string(dir), violationsFileName))
	if err != nil {
		return err
	}

	if err := spill.AppendBatch(violations); err != nil {
		_ = spill.Close()
		return err
	}

	if err := spill.Close(); err != nil {
		return err
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	return os.WriteFile(filepath.Join(string(dir), summaryFileName), data, 0o600)
}

// LoadRun implements ReportStore.
func (s *LocalReportStore) LoadRun(dir m.Path) (m.CheckReport, []m.Violation, error) {
	var report m.CheckReport

	data, err := os.ReadFile(filepath.Join(string(dir), summaryFileName))
	if err != nil {
		return report, nil, fmt.Errorf("read summary: %w", err)
	}

	if err := yaml.Unmarshal(data, &report); err != nil {
		return report, nil, fmt.Errorf("unmarshal summary: %w", err)
	}

	spill, err := pkg.OpenSpill[m.Violation](filepath.Join(string(dir), violationsFileName))
	if err != nil {
		return report, nil, err
	}

	violations, err := spill.Items()
	if err != nil {
		return report, nil, err
	}

	return report, violations, nil
}
