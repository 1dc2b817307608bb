package main

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/sweep"
	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/utils"
)

// reportRows returns an empty row value for each report kind.
var reportRows = map[string]func() any{
	"simulate":           func() any { return &sweep.LoopDPIRows{} },
	"multichannel":       func() any { return &sweep.MultiChannelRows{} },
	"bounds":             func() any { return &boundsReport{} },
	"predict":            func() any { return &predictRows{} },
	"sweep/loop-dpi":     func() any { return &sweep.LoopDPIRows{} },
	"sweep/multichannel": func() any { return &sweep.MultiChannelRows{} },
	"sweep/smoothed":     func() any { return &sweep.SmoothedRows{} },
	"sweep/pareto":       func() any { return &sweep.ParetoRows{} },
	"sweep/converse":     func() any { return &sweep.ConverseRows{} },
	"sweep/heatmap":      func() any { return &sweep.Heatmap{} },
}

func newReportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "report <file>",
		Short: "Print the rows of a saved report in the chosen format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := utils.LoadReport(args[0])
			if err != nil {
				return err
			}
			rows, err := decodeRows(report)
			if err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{
				"kind":       report.Kind,
				"run_id":     report.RunID,
				"created_at": report.CreatedAt,
			}).Info("report loaded")
			return utils.Encode(cmd.OutOrStdout(), a.cfg.Output.Format, rows)
		},
	}
}

func decodeRows(report *utils.Report) (any, error) {
	newRows, ok := reportRows[report.Kind]
	if !ok {
		return nil, fmt.Errorf("report %s has unknown kind %q", report.RunID, report.Kind)
	}
	raw, ok := report.Rows.(json.RawMessage)
	if !ok {
		return nil, fmt.Errorf("report %s rows were not loaded as JSON", report.RunID)
	}
	rows := newRows()
	if err := json.Unmarshal(raw, rows); err != nil {
		return nil, fmt.Errorf("failed to decode %s rows: %w", report.Kind, err)
	}
	return rows, nil
}
