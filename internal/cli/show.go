package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harun/seslog/pkg/sessionlog"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <session>",
	Short: "Print a session log, color-coded by category",
	Long: `Print a session log to the terminal with entries color-coded by
category. The argument is either a file path or the name of a session in
the sessions directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, lg, err := setup()
	if err != nil {
		return err
	}
	defer lg.Close()

	path, err := resolveSessionPath(cfg.Sessions.Dir, args[0])
	if err != nil {
		return err
	}

	// Parse first so format problems surface as typed errors, not garbage output.
	mgr, err := sessionlog.NewManager(cfg.Sessions.Dir)
	if err != nil {
		return err
	}
	if _, err := mgr.Read(path); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open session log: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fmt.Fprintln(cmd.OutOrStdout(), sessionlog.ColorizeLine(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read session log: %w", err)
	}

	return nil
}

// resolveSessionPath accepts either an existing file path or a session name
// inside the sessions directory.
func resolveSessionPath(dir, arg string) (string, error) {
	if _, err := os.Stat(arg); err == nil {
		return arg, nil
	}

	candidate := filepath.Join(dir, arg+".log")
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}

	return "", fmt.Errorf("no session log at %q or named %q in %s", arg, arg, dir)
}
