package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "udsscan",
	Short: "UDS diagnostic scanner",
	Long: `Probe an ECU for supported UDS services, or sweep the 11 bit
identifier space for anything answering a diagnostic session request`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

const (
	flagAdapter  = "adapter"
	flagPort     = "port"
	flagBaudrate = "baudrate"
	flagCANRate  = "canrate"
	flagDebug    = "debug"
	flagConfig   = "config"
)

func init() {
	log.SetFlags(log.Lshortfile | log.LstdFlags)

	pf := rootCmd.PersistentFlags()
	pf.StringP(flagAdapter, "a", "SocketCAN", "what adapter to use, see the adapters command")
	pf.StringP(flagPort, "p", "can0", "CAN interface or serial port, empty = select from available")
	pf.IntP(flagBaudrate, "b", 115200, "serial port baudrate")
	pf.Float64P(flagCANRate, "r", 0, "CAN bitrate in kbit/s, 0 = leave interface as is")
	pf.BoolP(flagDebug, "d", false, "debug mode, dump every frame")
	pf.StringP(flagConfig, "c", "", "config file (default ./udsscan.yaml if present)")
	if err := viper.BindPFlags(pf); err != nil {
		log.Fatal(err)
	}
}

// loadConfig layers flags over environment over the yaml config file.
// A missing default config file is fine, a missing explicit one is not.
func loadConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	viper.SetEnvPrefix("udsscan")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if file := viper.GetString(flagConfig); file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.SetConfigName("udsscan")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	if viper.GetBool(flagDebug) {
		log.Printf("using config file %s", viper.ConfigFileUsed())
	}
	return nil
}
