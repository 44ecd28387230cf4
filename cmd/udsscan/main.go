package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/udsscan/udsscan/cmd/udsscan/cmd"
)

// longest a scan may take to wind down after ctrl-c, a probe waits 2s at most
const shutdownGrace = 10 * time.Second

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ctrl-c stops the scan between probes, the partial report is still printed
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		s := <-sigChan
		log.Printf("got %v, stopping scan", s)
		cancel()
		<-time.After(shutdownGrace)
		log.Fatal("scan did not stop in time, exiting")
	}()

	if err := cmd.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
