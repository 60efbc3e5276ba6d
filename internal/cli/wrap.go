package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/harun/seslog/pkg/sessionlog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	wrapName string
	wrapOut  string
	wrapEcho bool
)

var wrapCmd = &cobra.Command{
	Use:   "wrap [flags] -- <command> [args...]",
	Short: "Run a command inside a session log",
	Long: `Run a command and record its execution as a session log: a header with
host and user provenance, one INF entry per stdout line, one ERR entry per
stderr line, the exit status, and a footer with the total duration.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWrap,
}

func init() {
	rootCmd.AddCommand(wrapCmd)

	wrapCmd.Flags().StringVar(&wrapName, "name", "", "session name (default is a generated timestamp-id name)")
	wrapCmd.Flags().StringVar(&wrapOut, "out", "", "write the session log to this exact path instead of the sessions directory")
	wrapCmd.Flags().BoolVar(&wrapEcho, "echo", false, "echo session entries to stdout, color-coded")
}

func runWrap(cmd *cobra.Command, args []string) error {
	cfg, lg, err := setup()
	if err != nil {
		return err
	}
	defer lg.Close()

	serveMetrics(cfg)

	meta, err := sessionlog.CollectMetadata()
	if err != nil {
		return fmt.Errorf("failed to collect session metadata: %w", err)
	}
	// The session should name the wrapped command, not this wrapper.
	if path, err := exec.LookPath(args[0]); err == nil {
		meta.ScriptPath = path
	}

	var opts []sessionlog.Option
	if wrapEcho || cfg.Sessions.Echo {
		opts = append(opts, sessionlog.WithEcho(os.Stdout))
	}

	session, err := beginSession(cfg.Sessions.Dir, meta, opts)
	if err != nil {
		return err
	}

	if err := session.Info(fmt.Sprintf("running command: %s", strings.Join(args, " "))); err != nil {
		return err
	}

	exit, runErr := runChild(session, args)
	if err := recordStatus(session, exit, runErr); err != nil {
		return err
	}

	sum, err := session.End()
	if err != nil {
		return err
	}

	log.Info().
		Str("path", session.Path()).
		Int64("seconds", sum.Seconds).
		Msg("Session recorded")
	fmt.Fprintf(cmd.OutOrStdout(), "session log: %s\n", session.Path())

	return runErr
}

// beginSession opens the session either at an explicit path or inside the
// managed sessions directory.
func beginSession(dir string, meta sessionlog.Metadata, opts []sessionlog.Option) (*sessionlog.Session, error) {
	if wrapOut != "" {
		return sessionlog.Begin(wrapOut, meta, opts...)
	}

	mgr, err := sessionlog.NewManager(dir)
	if err != nil {
		return nil, err
	}
	return mgr.Begin(wrapName, meta, opts...)
}

// recordStatus appends the final entry describing how the command ended.
func recordStatus(session *sessionlog.Session, exit int, runErr error) error {
	switch {
	case runErr != nil:
		return session.Error(fmt.Sprintf("command failed to run: %v", runErr))
	case exit != 0:
		return session.Warn(fmt.Sprintf("command exited with status %d", exit))
	default:
		return session.Info("command completed")
	}
}

// runChild executes the wrapped command, streaming stdout lines as INF
// entries and stderr lines as ERR entries. Returns the child's exit status.
func runChild(session *sessionlog.Session, args []string) (int, error) {
	child := exec.Command(args[0], args[1:]...)
	child.Stdin = os.Stdin

	stdout, err := child.StdoutPipe()
	if err != nil {
		return 0, fmt.Errorf("failed to open stdout pipe: %w", err)
	}
	stderr, err := child.StderrPipe()
	if err != nil {
		return 0, fmt.Errorf("failed to open stderr pipe: %w", err)
	}

	if err := child.Start(); err != nil {
		return 0, fmt.Errorf("failed to start command: %w", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go streamLines(&wg, stdout, session, sessionlog.INF)
	go streamLines(&wg, stderr, session, sessionlog.ERR)
	wg.Wait()

	if err := child.Wait(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf("command failed: %w", err)
	}
	return 0, nil
}

// maxStreamLine bounds a single captured output line.
const maxStreamLine = 1024 * 1024

func streamLines(wg *sync.WaitGroup, r io.Reader, session *sessionlog.Session, cat sessionlog.Category) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxStreamLine)
	for scanner.Scan() {
		if err := session.Log(cat, scanner.Text()); err != nil {
			log.Error().Err(err).Msg("Failed to record output line")
			drainStream(r)
			return
		}
	}
	if err := scanner.Err(); err != nil {
		if logErr := session.Error(fmt.Sprintf("output stream unreadable: %v", err)); logErr != nil {
			log.Error().Err(logErr).Msg("Failed to record stream error")
		}
		// The child blocks on a full pipe unless the rest is consumed.
		drainStream(r)
	}
}

func drainStream(r io.Reader) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		log.Error().Err(err).Msg("Failed to drain output stream")
	}
}
