package freqresp_test

import (
	"fmt"

	"github.com/cwbudde/algo-biquad/dsp/filter/biquad"
	"github.com/cwbudde/algo-biquad/measure/freqresp"
)

func ExampleCompare() {
	c := biquad.NewCascade(biquad.Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04})

	points, err := freqresp.Compare(c, []float64{0, 12000}, freqresp.WithFFTSize(1024))
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, p := range points {
		fmt.Printf("%5.0f Hz: analytic %+.2f dB, measured %+.2f dB\n", p.FreqHz, p.AnalyticDB, p.MeasuredDB)
	}
	// Output:
	//     0 Hz: analytic +1.51 dB, measured +1.51 dB
	// 12000 Hz: analytic -5.85 dB, measured -5.85 dB
}
