package cli

import (
	"errors"
	"fmt"
	"strings"

	v1fileutil "github.com/bitrise-io/go-utils/fileutil"
	"github.com/bitrise-steplib/steps-test262-report/filter"
	"github.com/bitrise-steplib/steps-test262-report/report"
	"github.com/spf13/cobra"
)

var errNoMatch = errors.New("no matching tests")

// FilterFlags holds the flags for the filter command
type FilterFlags struct {
	Kind        string
	Legacy      bool
	ToolName    string
	RuntimeName string
}

// NewFilterCmd creates the filter command
func NewFilterCmd() *cobra.Command {
	flags := &FilterFlags{
		Kind:        string(filter.KindTool),
		ToolName:    report.DefaultToolName,
		RuntimeName: report.DefaultRuntimeName,
	}

	cmd := &cobra.Command{
		Use:   "filter report.md",
		Short: "List the failing tests of a report by cause",
		Long: fmt.Sprintf(`Lists the paths of the failing tests of a report, one per line, relative to
the test suite. The output can be fed to the copy command.

Supported kinds: %s`, strings.Join(kindNames(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := filter.ParseKind(flags.Kind)
			if err != nil {
				return err
			}

			content, err := v1fileutil.ReadStringFromFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read report: %w", err)
			}

			f := filter.NewFilter(report.Options{
				ToolName:    flags.ToolName,
				RuntimeName: flags.RuntimeName,
				BaseURL:     report.BaseURLFor(flags.Legacy),
			})
			tests, err := f.Tests(content, kind)
			if err != nil {
				return err
			}
			if len(tests) == 0 {
				return errNoMatch
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(tests, "\n"))
			return err
		},
	}

	cmd.Flags().StringVarP(&flags.Kind, "kind", "k", flags.Kind, "Failure cause to list")
	cmd.Flags().BoolVar(&flags.Legacy, "es5", false, "Report was produced in test262 es5 mode")
	cmd.Flags().StringVar(&flags.ToolName, "tool-name", flags.ToolName, "Name of the tool under test")
	cmd.Flags().StringVar(&flags.RuntimeName, "runtime-name", flags.RuntimeName, "Name of the JavaScript runtime")

	return cmd
}

func kindNames() []string {
	var names []string
	for _, kind := range filter.Kinds {
		names = append(names, string(kind))
	}
	return names
}
