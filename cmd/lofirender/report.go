package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-lofi/dsp/core"
	"github.com/cwbudde/algo-lofi/dsp/effects/lofi"
	"github.com/cwbudde/algo-lofi/internal/source"
	"github.com/cwbudde/algo-lofi/measure/artifact"
)

type reportRow struct {
	label  string
	report artifact.Report
}

// analyze compares every channel, plus the mono mix for stereo input.
func analyze(dry source.Signal, res renderResult, fftSize int) ([]reportRow, error) {
	if res.latency >= dry.Frames() {
		return nil, fmt.Errorf("signal (%d frames) is not longer than the latency (%d)", dry.Frames(), res.latency)
	}

	cfg := artifact.Config{
		SampleRate: float64(dry.SampleRate),
		FFTSize:    fftSize,
		Latency:    res.latency,
	}

	labels := []string{"mono"}
	if len(dry.Channels) == 2 {
		labels = []string{"left", "right", "mix"}
	}

	rows := make([]reportRow, 0, len(labels))
	for i, label := range labels {
		c := i
		if label == "mix" {
			c = -1
		}
		r, err := artifact.Analyze(dry.Mix(c), res.wet.Mix(c), cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", label, err)
		}
		rows = append(rows, reportRow{label: label, report: r})
	}
	return rows, nil
}

func printHeader(w io.Writer, v lofi.Variant, c lofi.Controls, res renderResult) {
	fmt.Fprintf(w, "%s: amount=%g", v.Name(), c.Amount)
	if v.Supports(lofi.ParamTolerance) {
		fmt.Fprintf(w, " tolerance=%g dither=%t", c.Tolerance, c.Dither)
	}
	if v.Supports(lofi.ParamCurve) {
		fmt.Fprintf(w, " curve=%g", c.Curve)
	}
	if v.Supports(lofi.ParamInvert) {
		fmt.Fprintf(w, " invert=%t", c.Invert)
	}
	fmt.Fprintf(w, "\nlatency %d samples, %d blocks\n\n", res.latency, res.blocks)
}

func printReport(w io.Writer, rows []reportRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Channel\tPeak [dB]\tRMS [dB]\tError RMS [dB]\tSNR [dB]\tCentroid [Hz]\tFlatness\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "-------\t---------\t--------\t--------------\t--------\t-------------\t--------\n"); err != nil {
		return err
	}

	for _, row := range rows {
		r := row.report
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%.2f\t%.0f -> %.0f\t%.3f -> %.3f\n",
			row.label,
			change(r.DryPeak, r.WetPeak),
			change(r.DryRMS, r.WetRMS),
			core.LinearToDB(r.ErrorRMS),
			r.SNR_dB,
			r.Dry.CentroidHz, r.Wet.CentroidHz,
			r.Dry.Flatness, r.Wet.Flatness,
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func change(dry, wet float64) string {
	return fmt.Sprintf("%.2f -> %.2f", core.LinearToDB(dry), core.LinearToDB(wet))
}
