package montecarlo

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV exports per-cell summaries, one row per sweep cell, for
// downstream plotting and statistical analysis.
func WriteCSV(w io.Writer, cells []CellSummary) error {
	cw := csv.NewWriter(w)
	header := []string{
		"loss_rate",
		"max_transmissions",
		"trials",
		"successes",
		"success_probability",
		"mean_completion_time",
		"stddev_completion_time",
		"mean_transmissions",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, c := range cells {
		row := []string{
			strconv.FormatFloat(c.LossRate, 'g', -1, 64),
			strconv.Itoa(c.MaxTransmissions),
			strconv.Itoa(c.Trials),
			strconv.Itoa(c.Successes),
			strconv.FormatFloat(c.SuccessProbability, 'g', -1, 64),
			strconv.FormatFloat(c.MeanCompletionTime, 'g', -1, 64),
			strconv.FormatFloat(c.StdDevCompletionTime, 'g', -1, 64),
			strconv.FormatFloat(c.MeanTransmissions, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
