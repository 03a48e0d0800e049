// Package bank runs one biquad cascade per audio channel.
//
// A [Bank] owns an independent [biquad.Cascade] for every channel, all built
// from the same [Factory]. Channels never share filter history, so a bank
// can process planar buffers channel by channel, interleaved frames, or all
// channels concurrently with [Bank.ProcessParallel].
//
// Like the cascades it wraps, a Bank keeps state across calls and is not
// safe for concurrent use; a single goroutine should own it per stream.
//
// Basic usage:
//
//	b, err := bank.New(2, func() *biquad.Cascade {
//	    return biquad.NewFromPoleZeros(params)
//	})
//	if err != nil {
//	    return err
//	}
//	for chunk := range chunks {
//	    if err := b.ProcessInPlace(chunk); err != nil {
//	        return err
//	    }
//	}
package bank
