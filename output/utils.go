package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-steplib/steps-test262-report/resulttree"
)

// Writer persists the rendered report and the debug dump.
type Writer interface {
	WriteReport(outputPath, content string) error
	WriteDebugDump(pth string, tree resulttree.Tree, unitTestURL string) error
}

type writer struct {
	fileManager fileutil.FileManager
	stdout      io.Writer
}

// NewWriter returns a writer printing reports without an output path to stdout.
func NewWriter(fileManager fileutil.FileManager, stdout io.Writer) Writer {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &writer{
		fileManager: fileManager,
		stdout:      stdout,
	}
}

func (w writer) WriteReport(outputPath, content string) error {
	if outputPath == "" {
		if _, err := io.WriteString(w.stdout, content+"\n"); err != nil {
			return fmt.Errorf("failed to print report: %w", err)
		}
		return nil
	}

	if err := w.fileManager.Write(outputPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", outputPath, err)
	}
	return nil
}

func (w writer) WriteDebugDump(pth string, tree resulttree.Tree, unitTestURL string) error {
	var buf strings.Builder
	if err := resulttree.Dump(&buf, tree, unitTestURL, resulttree.DumpFormatForPath(pth)); err != nil {
		return err
	}

	if err := w.fileManager.Write(pth, buf.String(), 0644); err != nil {
		return fmt.Errorf("failed to write debug dump to %s: %w", pth, err)
	}
	return nil
}
