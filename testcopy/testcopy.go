// Package testcopy copies the tests named in list files from one suite checkout into another directory.
package testcopy

import (
	"fmt"
	"path/filepath"
	"strings"

	v1fileutil "github.com/bitrise-io/go-utils/fileutil"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
)

// Copier ...
type Copier interface {
	Copy(listPaths []string, fromDir, toDir string) (int, error)
}

type copier struct {
	fileManager fileutil.FileManager
	logger      log.Logger
}

// NewCopier ...
func NewCopier(fileManager fileutil.FileManager, logger log.Logger) Copier {
	return &copier{
		fileManager: fileManager,
		logger:      logger,
	}
}

// Copy copies every test listed in the list files from fromDir to toDir, keeping
// relative paths, and returns the number of copied tests.
func (c *copier) Copy(listPaths []string, fromDir, toDir string) (int, error) {
	var tests []string
	for _, listPath := range listPaths {
		content, err := v1fileutil.ReadStringFromFile(listPath)
		if err != nil {
			return 0, fmt.Errorf("failed to read test list %s: %w", listPath, err)
		}
		tests = append(tests, ParseList(content)...)
	}

	c.logger.Printf("Found %d tests", len(tests))

	for i, test := range tests {
		src := filepath.Join(fromDir, test)
		dst := filepath.Join(toDir, test)

		content, err := v1fileutil.ReadStringFromFile(src)
		if err != nil {
			return i, fmt.Errorf("failed to read test %s: %w", src, err)
		}
		if err := c.fileManager.Write(dst, content, 0644); err != nil {
			return i, fmt.Errorf("failed to write test %s: %w", dst, err)
		}

		c.logger.Debugf("Copied %s", test)
	}

	return len(tests), nil
}

// ParseList returns the test paths of a list file: one per line, blank lines ignored.
func ParseList(content string) []string {
	var tests []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tests = append(tests, line)
	}
	return tests
}
