package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harun/dzapprove/internal/daemon"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the dzapprove daemon",
	Long: `Start the dzapprove daemon in the foreground.
The daemon sweeps pending subscription requests on the configured schedule
and serves Prometheus metrics.`,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	s, err := newSetup(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer s.close()

	// Refuse to start on top of a running instance
	pidFile := daemon.PIDFilePath(s.cfg.DataDir)
	if pid, err := daemon.ReadPID(pidFile); err == nil && daemon.ProcessRunning(pid) {
		return fmt.Errorf("daemon is already running (PID %d, PID file: %s)", pid, pidFile)
	}

	d, err := daemon.New(s.cfg, s.logger, s.metrics, s.sweeper)
	if err != nil {
		return err
	}

	if err := d.Start(); err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	fmt.Printf("Daemon started (schedule: %s)\n", s.cfg.Daemon.Schedule)

	// Block until SIGINT/SIGTERM
	d.Wait()

	return nil
}
