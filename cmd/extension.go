package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
)

// Environment variables passed to extensions.
const (
	EnvStatementDir    = "ROBOSTAT_STATEMENT_DIR"
	EnvIdentifiersFile = "ROBOSTAT_IDENTIFIERS_FILE"
	EnvVerbose         = "ROBOSTAT_VERBOSE"
)

// RunExtension attempts to find and execute an external rbs-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "rbs-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		slog.Debug("extension not found in PATH", "command", externalCmdName, "error", err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass global flags as environment variables, only when set so that the
	// extension still sees the user's environment otherwise.
	cmd.Env = os.Environ()
	if *statementDir != "" {
		cmd.Env = append(cmd.Env, EnvStatementDir+"="+*statementDir)
	}
	if *identifiersFile != "" {
		cmd.Env = append(cmd.Env, EnvIdentifiersFile+"="+*identifiersFile)
	}
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(*Verbose))

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
