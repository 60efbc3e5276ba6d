package cli

import (
	"fmt"
	"time"

	"github.com/harun/seslog/pkg/sessionlog"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List session logs in the sessions directory",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, lg, err := setup()
	if err != nil {
		return err
	}
	defer lg.Close()

	mgr, err := sessionlog.NewManager(cfg.Sessions.Dir)
	if err != nil {
		return err
	}

	infos, err := mgr.List()
	if err != nil {
		return err
	}

	if len(infos) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no sessions found")
		return nil
	}

	for _, info := range infos {
		duration := "open"
		if info.Summary != nil {
			duration = (time.Duration(info.Summary.Seconds) * time.Second).String()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-40s  %s  %4d entries  %s\n",
			info.Name,
			info.Start.Format(sessionlog.TimeLayout),
			info.Entries,
			duration,
		)
	}

	return nil
}
