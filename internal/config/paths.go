package config

import (
	"fmt"
	"os"
	"path/filepath"

	"log/slog"
)

// Paths contains all the application paths
// This is the single source of truth for ALL file paths in the pipeline
type Paths struct {
	ExecutableDir string
	DataDir       string
	ReportsDir    string
	PlotsDir      string
	LogsDir       string

	// Well-known pipeline artifacts
	RawSalesCSV      string
	RawSalesXLSX     string
	CleanedSalesCSV  string
	PreparedSalesCSV string
	DecompositionCSV string
	ChartsWorkbook   string
}

// GetPaths returns the application paths relative to the executable location.
// All paths are ALWAYS relative to the executable directory, never the
// current working directory, so the stage binaries behave identically
// wherever they are invoked from.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	return PathsIn(filepath.Dir(exe)), nil
}

// PathsIn builds the path set rooted at the given base directory.
// Directory structure:
//
//	base/
//	  ├── data/                (raw input + stage artifacts)
//	  ├── reports/             (decomposition CSV and other insights)
//	  │   └── plots/           (chart workbook)
//	  └── logs/
func PathsIn(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	reportsDir := filepath.Join(baseDir, "reports")
	plotsDir := filepath.Join(reportsDir, "plots")

	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       dataDir,
		ReportsDir:    reportsDir,
		PlotsDir:      plotsDir,
		LogsDir:       filepath.Join(baseDir, "logs"),

		RawSalesCSV:      filepath.Join(dataDir, "sales.csv"),
		RawSalesXLSX:     filepath.Join(dataDir, "sales.xlsx"),
		CleanedSalesCSV:  filepath.Join(dataDir, "cleaned_sales_data.csv"),
		PreparedSalesCSV: filepath.Join(dataDir, "sales_prepared.csv"),
		DecompositionCSV: filepath.Join(reportsDir, "decomposition.csv"),
		ChartsWorkbook:   filepath.Join(plotsDir, "sales_charts.xlsx"),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.ReportsDir,
		p.PlotsDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}

		if logger != nil {
			logger.Debug("Ensured directory exists",
				slog.String("directory", dir))
		}
	}

	return nil
}

// GetLogPath returns the full path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// GetReportPath returns the full path for a report file
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetDataPath returns the full path for a data file
func (p *Paths) GetDataPath(filename string) string {
	return filepath.Join(p.DataDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
