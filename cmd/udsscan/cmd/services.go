package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/udsscan/udsscan/pkg/scan"
	"github.com/udsscan/udsscan/pkg/uds"
)

const (
	flagTx      = "tx"
	flagRx      = "rx"
	flagPadding = "padding"
	flagTimeout = "timeout"
	flagCatalog = "catalog"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "Probe an ECU with every request of the service catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		catalog, err := loadCatalog()
		if err != nil {
			return err
		}

		cfg := uds.DefaultProbeConfig()
		cfg.TxID = viper.GetUint32(flagTx)
		cfg.RxID = viper.GetUint32(flagRx)
		cfg.Padding = byte(viper.GetUint(flagPadding))
		cfg.Timeout = viper.GetDuration(flagTimeout)

		c, err := initBus(ctx, cfg.RxID)
		if err != nil {
			return err
		}
		defer c.Close()

		fmt.Printf("Scanning UDS services on 0x%03X -> 0x%03X, %d requests\n", cfg.TxID, cfg.RxID, len(catalog))

		scanner := scan.NewServiceScanner(uds.NewProber(c, cfg), catalog)
		scanner.OnResult = printResult
		report, err := scanner.Run(ctx)
		printServiceSummary(report)
		if aborted(ctx, err) {
			log.Println("scan aborted")
			return nil
		}
		return err
	},
}

func init() {
	f := servicesCmd.Flags()
	f.Uint32(flagTx, uds.TesterID, "request identifier")
	f.Uint32(flagRx, uds.ECUID, "response identifier")
	f.Uint8(flagPadding, uds.DefaultPadding, "padding byte for unused frame bytes")
	f.Duration(flagTimeout, 2*time.Second, "time to wait for each response")
	f.String(flagCatalog, "", "yaml service catalog, default built-in")
	rootCmd.AddCommand(servicesCmd)
}

func loadCatalog() (scan.Catalog, error) {
	if file := viper.GetString(flagCatalog); file != "" {
		return scan.LoadCatalog(file)
	}
	return scan.DefaultCatalog(), nil
}

func printResult(i int, res scan.Result) {
	prefix := fmt.Sprintf("[%02d] %-60s", i+1, res.Entry.Label)
	if res.Err != nil {
		fmt.Println(prefix, red("error: "+res.Err.Error()))
		return
	}
	o := res.Outcome
	switch o.Kind {
	case uds.Positive:
		fmt.Println(prefix, green("supported"), faint(o.Frame.Hex()))
	case uds.Negative:
		fmt.Println(prefix, yellow(fmt.Sprintf("0x%02X %s", o.NRC, o.Reason)))
	case uds.Unexpected:
		fmt.Println(prefix, yellow(fmt.Sprintf("unexpected service 0x%02X", o.ServiceID)), faint(o.Frame.Hex()))
	default:
		fmt.Println(prefix, red("no response"))
	}
}

func printServiceSummary(r *scan.ServiceReport) {
	if r == nil {
		return
	}
	fmt.Printf("\n%d requests, %d responded: %s positive, %s negative, %s unexpected, %s silent",
		len(r.Results),
		r.Responded,
		green(r.Count(uds.Positive)),
		yellow(r.Count(uds.Negative)),
		yellow(r.Count(uds.Unexpected)),
		red(r.Count(uds.NoResponse)),
	)
	if n := r.Failed(); n > 0 {
		fmt.Printf(", %s failed", red(n))
	}
	fmt.Println()
}

// aborted reports whether err is the result of the operator cancelling ctx
func aborted(ctx context.Context, err error) bool {
	return errors.Is(err, context.Canceled) && ctx.Err() != nil
}
