// Package plot renders traced queue lengths as PNG figures.
package plot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/inference-sim/mmc-sim/sim/trace"
)

const (
	figureWidth  = 6 * vg.Inch
	figureHeight = 4 * vg.Inch
)

// QueueLengthHistogram writes a histogram of the in-system count observed at
// each traced event to path. The image format follows the file extension.
func QueueLengthHistogram(st *trace.SimulationTrace, path string, bins int) error {
	lengths := st.QueueLengths()
	if len(lengths) == 0 {
		return fmt.Errorf("queue length histogram: trace has no events")
	}
	if bins < 1 {
		bins = 10
	}

	p := plot.New()
	p.Title.Text = "Queue Length Distribution"
	p.X.Label.Text = "Queue Length"
	p.Y.Label.Text = "Frequency"

	h, err := plotter.NewHist(plotter.Values(lengths), bins)
	if err != nil {
		return fmt.Errorf("queue length histogram: %w", err)
	}
	p.Add(h)

	if err := p.Save(figureWidth, figureHeight, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// RunningAverage writes the cumulative mean in-system count against simulated
// time to path.
func RunningAverage(st *trace.SimulationTrace, path string) error {
	pts := RunningAveragePoints(st)
	if len(pts) == 0 {
		return fmt.Errorf("running average: trace has no events")
	}

	p := plot.New()
	p.Title.Text = "Average Queue Length Over Time"
	p.X.Label.Text = "Time"
	p.Y.Label.Text = "Average Queue Length"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("running average: %w", err)
	}
	p.Add(line)

	if err := p.Save(figureWidth, figureHeight, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// RunningAveragePoints returns (event time, mean in-system count so far) for
// every traced event.
func RunningAveragePoints(st *trace.SimulationTrace) plotter.XYs {
	if st == nil {
		return nil
	}
	pts := make(plotter.XYs, len(st.Events))
	cumulative := 0.0
	for i, ev := range st.Events {
		cumulative += float64(ev.InSystem)
		pts[i].X = ev.Time
		pts[i].Y = cumulative / float64(i+1)
	}
	return pts
}
