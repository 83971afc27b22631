package main

import (
	"github.com/spf13/cobra"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/config"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
)

func showCmd(a *app) *cobra.Command {
	var (
		outDir  string
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "show JOB_ID",
		Short: "Print a stored decision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Store.Driver == config.DriverNone {
				return errors.New("no store configured")
			}
			st, err := a.openStore(cmd, outDir)
			if err != nil {
				return err
			}
			defer st.Close()

			res, err := st.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if summary {
				return a.printJSON(res)
			}
			return a.printJSON(res.Decision)
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "output directory for the file store (overrides store.dir)")
	cmd.Flags().BoolVar(&summary, "summary", false, "include the dataset summary")
	return cmd
}
