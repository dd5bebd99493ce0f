package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/star/neotrack/internal/neo"
)

func newInspectCmd(a *app) *cobra.Command {
	var (
		pdes    string
		name    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show one NEO, found by primary designation or name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (pdes == "") == (name == "") {
				return errors.New("exactly one of --pdes or --name is required")
			}

			db, err := a.loadDatabase()
			if err != nil {
				return err
			}

			var n *neo.NearEarthObject
			if pdes != "" {
				n = db.GetNEOByDesignation(pdes)
			} else {
				n = db.GetNEOByName(name)
			}

			out := cmd.OutOrStdout()
			if n == nil {
				fmt.Fprintln(out, "No matching NEOs exist in the database.")
				return nil
			}

			fmt.Fprintln(out, n)
			if verbose {
				for _, ca := range n.Approaches {
					fmt.Fprintf(out, "- %s\n", ca)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pdes, "pdes", "p", "", "primary designation of the NEO")
	cmd.Flags().StringVarP(&name, "name", "n", "", "IAU name of the NEO")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "also list the NEO's close approaches")
	cmd.MarkFlagsMutuallyExclusive("pdes", "name")

	return cmd
}
