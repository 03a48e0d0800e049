package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-biquad/dsp/filter/bank"
	"github.com/cwbudde/algo-biquad/dsp/filter/biquad"
	"github.com/cwbudde/algo-biquad/internal/config"
	"github.com/cwbudde/algo-biquad/internal/wavio"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newFilterCmd(opts *options) *cobra.Command {
	var parallel bool

	cmd := &cobra.Command{
		Use:   "filter <in.wav> <out.wav>",
		Short: "Filter a WAV file chunk by chunk, one cascade per channel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}

			logger := newLogger(cmd, cfg.LogLevel)
			return filterFile(cmd.Context(), logger, cfg, args[0], args[1], parallel)
		},
	}

	cmd.Flags().BoolVarP(&parallel, "parallel", "p", false,
		"Process channels concurrently")

	return cmd
}

// filterFile streams in through a bank built from cfg and writes the result
// to out at the source format.
func filterFile(ctx context.Context, logger *logrus.Logger, cfg *config.Config, in, out string, parallel bool) (err error) {
	r, err := wavio.Open(in)
	if err != nil {
		return fmt.Errorf("open %s: %w", in, err)
	}
	defer r.Close()

	b, err := bank.New(r.Channels(), cfg.Cascade.Build)
	if err != nil {
		return err
	}

	w, err := wavio.Create(out, r.SampleRate(), r.BitDepth(), r.Channels())
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer func() {
		if cerr := w.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", out, cerr)
		}
	}()

	logger.WithFields(logrus.Fields{
		"input":       in,
		"output":      out,
		"channels":    r.Channels(),
		"sample_rate": r.SampleRate(),
		"bit_depth":   r.BitDepth(),
		"sections":    b.Cascade(0).NumSections(),
		"block_size":  cfg.BlockSize,
		"kernel":      biquad.KernelName(),
	}).Info("filtering")

	bufs := make([][]float64, r.Channels())
	for ch := range bufs {
		bufs[ch] = make([]float64, cfg.BlockSize)
	}
	chunk := make([][]float64, len(bufs))

	var chunks, frames int
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := r.Read(bufs)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", in, err)
		}

		for ch := range bufs {
			chunk[ch] = bufs[ch][:n]
		}

		if parallel {
			err = b.ProcessParallel(ctx, chunk)
		} else {
			err = b.ProcessInPlace(chunk)
		}
		if err != nil {
			return err
		}

		if err := w.Write(chunk, n); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}

		chunks++
		frames += n
		logger.WithFields(logrus.Fields{"chunk": chunks, "frames": n}).Debug("chunk processed")
	}

	logger.WithFields(logrus.Fields{"chunks": chunks, "frames": frames}).Info("done")
	return nil
}
