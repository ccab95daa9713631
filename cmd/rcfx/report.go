package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-remaincalm/dsp/effectchain"
	"github.com/cwbudde/algo-remaincalm/dsp/param"
	"github.com/cwbudde/algo-remaincalm/dsp/spectrum"
	"github.com/cwbudde/algo-remaincalm/dsp/window"
	timestats "github.com/cwbudde/algo-remaincalm/stats/time"
)

// report prints level and spectral statistics of the source and every
// rendered output channel.
func report(w io.Writer, src []float32, outs [][]float32, sampleRate float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SIGNAL\tPEAK dBFS\tRMS dBFS\tDC\tCREST dB\tZC\tGAIN dB\tPEAK Hz\tCENTROID Hz\tROLLOFF95 Hz")

	in := timestats.Calculate(src)
	if err := reportRow(tw, "in", src, in, in, sampleRate); err != nil {
		return err
	}

	for ch, out := range outs {
		st := timestats.Calculate(out)
		if err := reportRow(tw, fmt.Sprintf("out%d", ch), out, st, in, sampleRate); err != nil {
			return err
		}

		if st.NonFinite > 0 {
			fmt.Fprintf(tw, "\t%d non-finite samples\n", st.NonFinite)
		}
	}

	return tw.Flush()
}

func reportRow(w io.Writer, label string, x []float32, st, ref timestats.Stats, sampleRate float64) error {
	a, err := spectrum.Analyze(x, sampleRate, window.TypeHann)
	if err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}

	peakHz, _ := a.Peak(20, sampleRate/2)

	fmt.Fprintf(w, "%s\t%s\t%s\t%.4f\t%.2f\t%d\t%.2f\t%.1f\t%.1f\t%.1f\n",
		label, dBString(st.PeakdB()), dBString(st.RMSdB()), st.DC, st.CrestdB(),
		st.ZeroCrossings, timestats.GainDB(ref, st), peakHz, a.Centroid(), a.Rolloff(0.95))

	return nil
}

func dBString(v float64) string {
	if math.IsInf(v, -1) {
		return "-inf"
	}

	return fmt.Sprintf("%.2f", v)
}

func printUnits(w io.Writer, sampleRate float64) error {
	reg := effectchain.DefaultRegistry()
	ctx := effectchain.Context{SampleRate: sampleRate}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tLABEL\tID\tVERSION\tIN\tOUT\tMIDI\tPARAMS\tPROGRAMS\tDESCRIPTION")

	for _, typ := range reg.Types() {
		u, err := reg.New(ctx, typ)
		if err != nil {
			return err
		}

		info := u.Info()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%t\t%d\t%d\t%s\n",
			typ, info.Label, info.IDString(), info.VersionString(), info.Inputs, info.Outputs,
			info.MIDI, len(u.Parameters()), len(u.Programs()), info.Description)
	}

	return tw.Flush()
}

func printParams(w io.Writer, unitType string, sampleRate float64) error {
	u, err := effectchain.DefaultRegistry().New(effectchain.Context{SampleRate: sampleRate}, unitType)
	if err != nil {
		return err
	}

	info := u.Info()
	fmt.Fprintf(w, "%s (%s) %s by %s, %s\n\n", info.Label, info.IDString(), info.VersionString(), info.Maker, info.License)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSYMBOL\tNAME\tUNIT\tMIN\tDEFAULT\tMAX\tFLAGS")

	for i, d := range u.Parameters() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%g\t%g\t%g\t%s\n", i, d.Symbol, d.Name, d.Unit, d.Min, d.Default, d.Max, flagString(d))
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PROGRAM\tNAME\tVALUES")

	for i, p := range u.Programs() {
		fmt.Fprintf(tw, "%d\t%s\t%v\n", i, p.Name, p.Values)
	}

	return tw.Flush()
}

func flagString(d param.Descriptor) string {
	s := ""
	if d.Has(param.Automatable) {
		s += "A"
	}

	if d.Has(param.Integer) {
		s += "I"
	}

	if s == "" {
		return "-"
	}

	return s
}
