package step

import (
	"fmt"

	"github.com/bitrise-io/go-utils/colorstring"
	"github.com/bitrise-io/go-utils/stringutil"
	"github.com/bitrise-io/go-utils/v2/log"
)

func printLastLinesOfHarnessLog(logger log.Logger, rawOutput string, isRunSuccess bool) {
	if rawOutput == "" {
		return
	}

	const lastLines = "\nLast lines of the test262 harness output:"
	if !isRunSuccess {
		logger.Errorf(lastLines)
	} else {
		logger.Infof(lastLines)
	}

	fmt.Println(stringutil.LastNLines(rawOutput, 20))

	if !isRunSuccess {
		logger.Warnf("If you can't find the reason of the error in the output, please check the suite log (suite_log_path).")
	}

	logger.Infof(colorstring.Magenta(`
The report is stored in $BITRISE_DEPLOY_DIR, and its full path
is available in the $TEST262_REPORT_PATH environment variable.`))
}
