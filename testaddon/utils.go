package testaddon

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
)

// ReportFileName is the name of the JUnit file inside the per step result dir.
const ReportFileName = "test262-junit.xml"

const metadataFileName = "test-info.json"

// TestAddon ...
type TestAddon interface {
	ReplaceUnsupportedFilenameCharacters(s string) string
	WriteReport(outputDir string, report TestReport) error
	SaveBundleMetadata(outputDir string, bundleName string) error
}

type testAddon struct {
	fileManager fileutil.FileManager
	logger      log.Logger
}

// NewTestAddon ...
func NewTestAddon(fileManager fileutil.FileManager, logger log.Logger) TestAddon {
	return &testAddon{
		fileManager: fileManager,
		logger:      logger,
	}
}

// ReplaceUnsupportedFilenameCharacters Replaces characters '/' and ':', which are unsupported in filnenames on macOS
func (t testAddon) ReplaceUnsupportedFilenameCharacters(s string) string {
	s = strings.Replace(s, "/", "-", -1)
	s = strings.Replace(s, ":", "-", -1)
	return s
}

func (t testAddon) WriteReport(outputDir string, report TestReport) error {
	content, err := xml.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode test report: %w", err)
	}

	pth := filepath.Join(outputDir, ReportFileName)
	if err := t.fileManager.Write(pth, xml.Header+string(content), 0600); err != nil {
		return fmt.Errorf("failed to write test report: %w", err)
	}

	t.logger.Donef("Test report written to %s", pth)

	return nil
}

func (t testAddon) SaveBundleMetadata(outputDir string, bundleName string) error {
	// Save test bundle metadata
	type testBundle struct {
		BundleName string `json:"test-name"`
	}
	bytes, err := json.Marshal(testBundle{
		BundleName: bundleName,
	})
	if err != nil {
		return fmt.Errorf("could not encode metadata: %w", err)
	}
	if err = t.fileManager.Write(filepath.Join(outputDir, metadataFileName), string(bytes), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
