// Package suiterunner spawns the test262 harness against a runner command and probes the runtime version.
package suiterunner

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitrise-io/go-utils/errorutil"
	"github.com/bitrise-io/go-utils/progress"
	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-test262-report/fileremover"
	version "github.com/hashicorp/go-version"
	"github.com/kballard/go-shellquote"
)

const harnessScript = "tools/packaging/test262.py"

// Config ...
type Config struct {
	Python        string
	SuiteDir      string
	RunnerCommand string
	LogPath       string
	// Args are extra harness arguments, split with shell quoting rules.
	Args    string
	WorkDir string
}

// Output ...
type Output struct {
	RawOut   []byte
	ExitCode int
}

// Runner ...
type Runner interface {
	Run(cfg Config) (Output, error)
	RuntimeVersion(runtime string) (*version.Version, error)
}

type harnessRunner struct {
	logger         log.Logger
	commandFactory command.Factory
	fileRemover    fileremover.FileRemover
}

// NewRunner ...
func NewRunner(logger log.Logger, commandFactory command.Factory, fileRemover fileremover.FileRemover) Runner {
	return &harnessRunner{
		logger:         logger,
		commandFactory: commandFactory,
		fileRemover:    fileRemover,
	}
}

// HarnessArgs returns the python arguments starting the harness described by cfg.
func HarnessArgs(cfg Config) ([]string, error) {
	args := []string{
		filepath.Join(cfg.SuiteDir, harnessScript),
		"--tests=" + cfg.SuiteDir,
		"--command", cfg.RunnerCommand,
		"--logname", cfg.LogPath,
	}

	extra, err := shellquote.Split(cfg.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to parse harness arguments (%s): %w", cfg.Args, err)
	}

	return append(args, extra...), nil
}

// Run starts the harness and waits for it. A non zero exit code is returned in
// Output; the error is set only if the harness could not run at all.
// A log left over at cfg.LogPath is removed first.
func (r *harnessRunner) Run(cfg Config) (Output, error) {
	args, err := HarnessArgs(cfg)
	if err != nil {
		return Output{}, err
	}

	removed, err := r.fileRemover.RemoveIfExists(cfg.LogPath)
	if err != nil {
		return Output{}, fmt.Errorf("failed to remove previous harness log: %w", err)
	}
	if removed {
		r.logger.Debugf("Removed previous harness log: %s", cfg.LogPath)
	}

	var (
		outBuffer bytes.Buffer
		exitCode  int
	)

	cmd := r.commandFactory.Create(cfg.Python, args, &command.Opts{
		Stdout: &outBuffer,
		Stderr: &outBuffer,
		Dir:    cfg.WorkDir,
	})

	r.logger.TPrintf("$ %s", cmd.PrintableCommandArgs())

	progress.SimpleProgress(".", time.Minute, func() {
		exitCode, err = cmd.RunAndReturnExitCode()
	})

	out := Output{
		RawOut:   outBuffer.Bytes(),
		ExitCode: exitCode,
	}

	if err != nil {
		if exitCode <= 0 {
			return out, fmt.Errorf("failed to run test262 harness: %w", err)
		}
		r.logger.Warnf("test262 harness exited with code %d", exitCode)
	}

	return out, nil
}

// RuntimeVersion runs `<runtime> --version` and parses its output as a semantic version.
func (r *harnessRunner) RuntimeVersion(runtime string) (*version.Version, error) {
	cmd := r.commandFactory.Create(runtime, []string{"--version"}, nil)

	out, err := cmd.RunAndReturnTrimmedOutput()
	if err != nil {
		if errorutil.IsExitStatusError(err) {
			return nil, fmt.Errorf("%s version command failed: %w", runtime, err)
		}

		return nil, fmt.Errorf("failed to run %s command: %w", runtime, err)
	}

	ver, err := version.NewVersion(strings.TrimSpace(out))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s version (%s): %w", runtime, out, err)
	}

	return ver, nil
}

// CheckMinimumVersion fails if current is older than minimum. An empty minimum accepts every version.
func CheckMinimumVersion(current *version.Version, minimum string) error {
	if minimum == "" {
		return nil
	}

	minVersion, err := version.NewVersion(minimum)
	if err != nil {
		return fmt.Errorf("invalid minimum runtime version (%s): %w", minimum, err)
	}

	if current.LessThan(minVersion) {
		return fmt.Errorf("runtime version %s is older than the required %s", current, minVersion)
	}

	return nil
}
