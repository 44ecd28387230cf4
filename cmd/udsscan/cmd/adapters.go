package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/udsscan/udsscan"
)

var adaptersCmd = &cobra.Command{
	Use:   "adapters",
	Short: "List available adapters and interfaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Adapters:")
		for _, a := range udsscan.ListAdapters() {
			fmt.Println("  " + a.String())
		}
		fmt.Println("CAN interfaces:")
		for _, i := range udsscan.FindCANInterfaces() {
			fmt.Println("  " + i)
		}
		ports, err := udsscan.FindSerialPorts()
		if err != nil {
			return err
		}
		fmt.Println("Serial ports:")
		for _, p := range ports {
			fmt.Println("  " + p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(adaptersCmd)
}
