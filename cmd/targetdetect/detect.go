package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/config"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/ingest"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/log"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/report"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/target"
)

func detectCmd(a *app) *cobra.Command {
	var (
		input   string
		jobID   string
		outDir  string
		chart   string
		noStore bool
	)

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Score every column of a CSV file and decide the target",
		Example: `  targetdetect detect --input customers.csv
  targetdetect detect --input sales.csv --job-id q3 --out ./jobs --chart q3.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if jobID == "" {
				jobID = uuid.New().String()
			}
			logger := a.logger.With(log.JobIDKey, jobID)

			ds, err := ingest.ReadFile(input, ingest.WithLogger(logger))
			if err != nil {
				return err
			}

			det, err := target.NewDetector(a.cfg.Config, target.WithLogger(logger))
			if err != nil {
				return err
			}
			res, err := det.Detect(cmd.Context(), ds, jobID)
			if err != nil {
				return errors.Wrap(err, "detection failed")
			}

			if !noStore && a.cfg.Store.Driver != config.DriverNone {
				st, err := a.openStore(cmd, outDir)
				if err != nil {
					return err
				}
				defer st.Close()
				if err := st.Save(cmd.Context(), res); err != nil {
					return err
				}
				logger.Info("Result stored", "store.driver", a.cfg.Store.Driver)
			}

			if chart != "" {
				if len(res.Decision.Candidates) == 0 {
					logger.Warn("No candidates to chart", "chart", chart)
				} else if err := report.SaveCandidateChart(chart, res.Decision, a.cfg.Thresholds); err != nil {
					return err
				}
			}

			return a.printJSON(res.Decision)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", "", "CSV file to analyse (required)")
	f.StringVar(&jobID, "job-id", "", "job id (default: random UUID)")
	f.StringVar(&outDir, "out", "", "output directory for the file store (overrides store.dir)")
	f.StringVar(&chart, "chart", "", "write a candidate chart to this path (.png, .svg, .pdf)")
	f.BoolVar(&noStore, "no-store", false, "do not persist the result")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
