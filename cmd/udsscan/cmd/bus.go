package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/manifoldco/promptui"
	"github.com/spf13/viper"

	"github.com/udsscan/udsscan"
)

// initBus creates the configured adapter and opens it. An interface that is
// still down gets a few more attempts, an unknown one fails at once.
func initBus(ctx context.Context, filters ...uint32) (*udsscan.Client, error) {
	adapterName := viper.GetString(flagAdapter)
	port := viper.GetString(flagPort)
	if port == "" || port == "*" {
		p, err := selectPort(adapterName)
		if err != nil {
			return nil, err
		}
		port = p
	}

	cfg := &udsscan.AdapterConfig{
		Debug:        viper.GetBool(flagDebug),
		Port:         port,
		PortBaudrate: viper.GetInt(flagBaudrate),
		CANRate:      viper.GetFloat64(flagCANRate),
		CANFilter:    filters,
		OnMessage: func(s string) {
			log.Printf("adapter message: %v", s)
		},
	}

	var client *udsscan.Client
	err := retry.Do(
		func() error {
			dev, err := udsscan.NewAdapter(adapterName, cfg)
			if err != nil {
				return err
			}
			c, err := udsscan.New(ctx, dev)
			if err != nil {
				return err
			}
			client = c
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, udsscan.ErrUnknownAdapter) &&
				!errors.Is(err, udsscan.ErrInterfaceNotFound)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("retry #%d: %v", n+1, err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open bus: %w", err)
	}
	client.SetDebug(cfg.Debug)
	return client, nil
}

func selectPort(adapterName string) (string, error) {
	var items []string
	for _, a := range udsscan.ListAdapters() {
		if !strings.EqualFold(a.Name, adapterName) {
			continue
		}
		if a.RequiresSerialPort {
			ports, err := udsscan.FindSerialPorts()
			if err != nil {
				return "", err
			}
			items = ports
		} else {
			items = udsscan.FindCANInterfaces()
		}
	}
	if len(items) == 0 {
		return "", fmt.Errorf("%w: nothing to select for %s", udsscan.ErrInterfaceNotFound, adapterName)
	}
	if len(items) == 1 {
		return items[0], nil
	}
	prompt := promptui.Select{
		Label: "Select interface",
		Items: items,
	}
	_, result, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return result, nil
}
