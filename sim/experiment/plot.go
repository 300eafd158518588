package experiment

import (
	"fmt"
	"os/exec"

	"github.com/sirupsen/logrus"
)

// PythonInterpreter is the executable Plot runs scripts with.
var PythonInterpreter = "python"

// Plot runs an external plotting script over the written traces.
// The script is expected to scan the trace directory itself.
func Plot(script string) error {
	out, err := exec.Command(PythonInterpreter, script).CombinedOutput()
	if err != nil {
		return fmt.Errorf("running %s %s: %w: %s", PythonInterpreter, script, err, out)
	}
	logrus.Infof("plotted traces with %s", script)
	return nil
}
