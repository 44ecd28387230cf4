package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/udsscan/udsscan/pkg/bar"
	"github.com/udsscan/udsscan/pkg/scan"
	"github.com/udsscan/udsscan/pkg/uds"
)

const (
	flagOutput = "output"
	flagFirst  = "first"
	flagLast   = "last"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Find UDS responders by probing every 11 bit identifier pair",
	Long: `Sends a default session request (02 10 01) to every identifier and listens
for an answer on identifier+8. Responders are written to a CSV file as found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gctx := cmd.Context()

		cfg := scan.DefaultSweepConfig()
		cfg.Timeout = viper.GetDuration(flagTimeout)
		cfg.First = viper.GetUint32(flagFirst)
		cfg.Last = viper.GetUint32(flagLast)

		sink, err := scan.CreateCSVSink(viper.GetString(flagOutput))
		if err != nil {
			return err
		}
		defer sink.Close()

		c, err := initBus(gctx)
		if err != nil {
			return err
		}
		defer c.Close()

		ctx, cancel := context.WithCancel(gctx)
		defer cancel()
		errg, ctx := errgroup.WithContext(ctx)

		// a dead adapter aborts the sweep instead of reporting 2000 silent ids
		errg.Go(func() error {
			select {
			case err := <-c.Err():
				return fmt.Errorf("adapter failed: %w", err)
			case <-ctx.Done():
				return nil
			}
		})

		pb := bar.New(int(cfg.Last)-int(cfg.First)+1, "sweeping")
		sweeper := scan.NewSweeper(c, cfg, sink)
		sweeper.OnProgress = func(id uint32, r *scan.SweepReport) {
			pb.Set(int(id - cfg.First))
		}
		sweeper.OnHit = func(rec scan.Record, o uds.Outcome) {
			pb.Clear()
			fmt.Println(green("found"), rec.String(), faint(o.String()))
		}
		sweeper.OnTransmitError = func(id uint32, err error) {
			log.Printf("0x%03X: %v", id, err)
		}

		var report *scan.SweepReport
		errg.Go(func() error {
			defer cancel()
			r, err := sweeper.Run(ctx)
			report = r
			if err == nil {
				pb.Finish()
			}
			return err
		})

		err = errg.Wait()
		if report != nil {
			fmt.Printf("\ntested %d identifier pairs, %s responding, results in %s\n",
				report.Tested, green(report.Found), viper.GetString(flagOutput))
			if report.TransmitErrors > 0 {
				fmt.Printf("%s frames could not be sent\n", red(report.TransmitErrors))
			}
		}
		if aborted(gctx, err) {
			log.Println("sweep aborted")
			return nil
		}
		return err
	},
}

func init() {
	f := sweepCmd.Flags()
	f.StringP(flagOutput, "o", "uds_scan_results.csv", "csv file for responding identifiers")
	f.Duration(flagTimeout, 100*time.Millisecond, "time to wait for each response")
	f.Uint32(flagFirst, 0, "first request identifier")
	f.Uint32(flagLast, scan.MaxIdentifier, "last request identifier")
	rootCmd.AddCommand(sweepCmd)
}
