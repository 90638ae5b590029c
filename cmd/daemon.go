package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/theirongolddev/amort/internal/config"
	"github.com/theirongolddev/amort/internal/daemon"

	"github.com/spf13/cobra"
)

var (
	flagDaemonAddr         string
	flagDaemonEventsBuffer int
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Serve schedules over HTTP with JSON and SSE endpoints",
	RunE:  runDaemon,
}

func init() {
	daemonCmd.Flags().StringVar(&flagDaemonAddr, "addr", "127.0.0.1:8787", "HTTP listen address")
	daemonCmd.Flags().IntVar(&flagDaemonEventsBuffer, "events-buffer", 200, "Max in-memory events retained")
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, _ []string) error {
	loan, err := config.LoanDefaults(appConfig)
	if err != nil {
		return err
	}
	floor, months, err := scheduleLimits(cmd)
	if err != nil {
		return err
	}

	svc := daemon.New(daemon.Config{
		Addr:         flagDaemonAddr,
		EventsBuffer: flagDaemonEventsBuffer,
		Loan:         loan,
		StopBelow:    floor,
		MaxMonths:    months,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("  API: http://%s/v1/schedule\n", flagDaemonAddr)
	return svc.Run(ctx)
}
