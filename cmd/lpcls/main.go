package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lpcls/internal/prof"
	"lpcls/internal/version"
)

// errFindings makes the process exit with status 1 without printing an error;
// the command already reported its findings.
var errFindings = errors.New("findings reported")

// activeProfile is started by the root pre-run hook and stopped by main, so
// failing commands are profiled too.
var activeProfile *prof.Session

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lpcls",
		Short:         "LPC semantic analysis engine",
		Long:          `lpcls builds scope trees of LPC source files and answers name, member and inheritance queries across a mudlib`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("{{.Version}}\n")

	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().String("config", "", "path to lpc.toml (default: searched upwards from the working directory)")
	root.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error), overrides [log].level")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics kept per file")
	root.PersistentFlags().String("cpuprofile", "", "write a CPU profile to file")
	root.PersistentFlags().String("memprofile", "", "write a heap profile to file on exit")
	root.PersistentFlags().String("trace", "", "write a runtime execution trace to file")
	root.PersistentPreRunE = startProfile

	root.AddCommand(
		newCheckCmd(),
		newScopesCmd(),
		newResolveCmd(),
		newReferencesCmd(),
		newCompleteCmd(),
		newMembersCmd(),
		newInheritsCmd(),
		newTokensCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)
	return root
}

func main() {
	err := newRootCmd().Execute()
	if stopErr := activeProfile.Stop(); stopErr != nil {
		fmt.Fprintln(os.Stderr, "error:", stopErr)
	}
	if err != nil {
		if !errors.Is(err, errFindings) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func startProfile(cmd *cobra.Command, _ []string) error {
	var opts prof.Options
	var err error
	flags := cmd.Flags()
	if opts.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("memprofile"); err != nil {
		return fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("trace"); err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	if !opts.Enabled() {
		return nil
	}
	activeProfile, err = prof.Start(opts)
	return err
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag for output written to f.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(f) && os.Getenv("NO_COLOR") == "", nil
	}
	return false, fmt.Errorf("unknown color mode %q (must be auto, on or off)", mode)
}
