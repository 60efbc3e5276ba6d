package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/harun/seslog/pkg/sessionlog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var tailCmd = &cobra.Command{
	Use:   "tail <session>",
	Short: "Follow a live session log",
	Long: `Print a session log and keep following it as entries are appended,
color-coded by category. Stops on interrupt or when the file is removed.`,
	Args: cobra.ExactArgs(1),
	RunE: runTail,
}

func init() {
	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	cfg, lg, err := setup()
	if err != nil {
		return err
	}
	defer lg.Close()

	serveMetrics(cfg)

	path, err := resolveSessionPath(cfg.Sessions.Dir, args[0])
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open session log: %w", err)
	}
	defer f.Close()

	// Print what is already there, then follow appends.
	out := cmd.OutOrStdout()
	follow := &lineFollower{r: f}
	defer follow.finish(out)
	if err := follow.emit(out); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: append events arrive as writes on the file path.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch session log: %w", err)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	log.Debug().Str("path", path).Msg("Following session log")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path {
				continue
			}
			if event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
				log.Info().Str("path", path).Msg("Session log removed, stopping")
				return nil
			}
			if event.Op.Has(fsnotify.Write) {
				if err := follow.emit(out); err != nil {
					return err
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("Watcher error")
		case <-interrupt:
			return nil
		}
	}
}

// lineFollower reads from a growing file and emits only newline-terminated
// lines, holding any partially written tail until the rest arrives.
type lineFollower struct {
	r   io.Reader
	buf []byte
}

// emit drains the reader from its current offset and prints every complete
// line, buffering a trailing fragment for the next call.
func (lf *lineFollower) emit(w io.Writer) error {
	chunk, err := io.ReadAll(lf.r)
	if err != nil {
		return fmt.Errorf("failed to read session log: %w", err)
	}
	lf.buf = append(lf.buf, chunk...)

	for {
		i := bytes.IndexByte(lf.buf, '\n')
		if i < 0 {
			return nil
		}
		fmt.Fprintln(w, sessionlog.ColorizeLine(string(lf.buf[:i])))
		lf.buf = lf.buf[i+1:]
	}
}

// finish flushes a buffered fragment that will never be completed, so the
// last line of a file without a trailing newline is not lost.
func (lf *lineFollower) finish(w io.Writer) {
	if len(lf.buf) > 0 {
		fmt.Fprintln(w, sessionlog.ColorizeLine(string(lf.buf)))
		lf.buf = nil
	}
}
