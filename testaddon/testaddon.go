package testaddon

import (
	"path/filepath"

	"github.com/bitrise-steplib/steps-test262-report/resulttree"
)

// Exporter ...
type Exporter interface {
	ExportReport(info AddonExport) error
}

type exporter struct {
	testAddon TestAddon
}

// NewExporter ...
func NewExporter(testAddon TestAddon) Exporter {
	return &exporter{
		testAddon: testAddon,
	}
}

// AddonExport ...
type AddonExport struct {
	Tree                  resulttree.Tree
	Causes                CauseNames
	TargetAddonPath       string
	TargetAddonBundleName string
}

func (e exporter) ExportReport(info AddonExport) error {
	info.TargetAddonBundleName = e.testAddon.ReplaceUnsupportedFilenameCharacters(info.TargetAddonBundleName)
	addonPerStepOutputDir := filepath.Join(info.TargetAddonPath, info.TargetAddonBundleName)

	if err := e.testAddon.WriteReport(addonPerStepOutputDir, NewTestReport(info.Tree, info.Causes)); err != nil {
		return err
	}
	if err := e.testAddon.SaveBundleMetadata(addonPerStepOutputDir, info.TargetAddonBundleName); err != nil {
		return err
	}
	return nil
}
