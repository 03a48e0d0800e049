package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-biquad/measure/freqresp"
	"github.com/spf13/cobra"
)

var defaultFreqs = []float64{20, 50, 100, 200, 500, 1000, 2000, 5000, 10000, 20000}

func newResponseCmd(opts *options) *cobra.Command {
	var (
		freqs   []float64
		fftSize int
	)

	cmd := &cobra.Command{
		Use:   "response",
		Short: "Print analytic and measured magnitude response of the cascade",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}

			nyquist := cfg.SampleRate / 2
			var valid []float64
			for _, f := range freqs {
				if f >= 0 && f <= nyquist {
					valid = append(valid, f)
				}
			}

			points, err := freqresp.Compare(cfg.Cascade.Build(), valid,
				freqresp.WithSampleRate(cfg.SampleRate),
				freqresp.WithFFTSize(fftSize))
			if err != nil {
				return err
			}

			return printResponse(cmd.OutOrStdout(), points)
		},
	}

	cmd.Flags().Float64SliceVarP(&freqs, "freqs", "f", defaultFreqs,
		"Frequencies in Hz to report (above Nyquist are skipped)")
	cmd.Flags().IntVar(&fftSize, "fft-size", 4096,
		"Impulse response length and FFT size (power of two)")

	return cmd
}

func printResponse(w io.Writer, points []freqresp.Point) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Freq (Hz)\tAnalytic (dB)\tMeasured (dB)\tDiff (dB)\t\n")
	for _, p := range points {
		fmt.Fprintf(tw, "%.1f\t%.2f\t%.2f\t%.4f\t\n",
			p.FreqHz, p.AnalyticDB, p.MeasuredDB, p.MeasuredDB-p.AnalyticDB)
	}
	return tw.Flush()
}
