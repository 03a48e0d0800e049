// Command biquadfilter streams WAV files through a cascade of biquad
// sections described in a YAML file.
//
// Usage:
//
//	biquadfilter [flags] filter <in.wav> <out.wav>
//	biquadfilter [flags] response
//	biquadfilter kernel
//
// Examples:
//
//	biquadfilter --config hum.yaml filter in.wav out.wav
//	biquadfilter --config hum.yaml --block-size 256 --parallel filter in.wav out.wav
//	biquadfilter --config hum.yaml response --freqs 50,100,1000
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
