package main

import (
	"errors"
	"fmt"
	"iter"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/star/neotrack/internal/filter"
	"github.com/star/neotrack/internal/metrics"
	"github.com/star/neotrack/internal/neo"
	"github.com/star/neotrack/internal/timeutil"
	"github.com/star/neotrack/internal/write"
)

// defaultDisplayLimit caps results printed to the terminal when --limit is unset.
const defaultDisplayLimit = 10

type queryOptions struct {
	date, startDate, endDate string
	minDistance, maxDistance float64
	minVelocity, maxVelocity float64
	minDiameter, maxDiameter float64
	hazardous, notHazardous  bool
	limit                    int
	outfile                  string
}

func newQueryCmd(a *app) *cobra.Command {
	var opts queryOptions

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Find close approaches matching the given criteria",
		Long: `Find close approaches matching every given criterion, in dataset order.
Results are printed unless --outfile is set, in which case the file extension
selects the format: .csv for tabular output or .json for nested output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := opts.criteria(cmd.Flags())
			if err != nil {
				return err
			}

			writeFn, format, err := resultWriter(opts.outfile)
			if err != nil {
				return err
			}

			db, err := a.loadDatabase()
			if err != nil {
				return err
			}

			filters := filter.Create(criteria)
			for _, f := range filters {
				a.logger.Debug("query filter", "filter", f.String())
			}
			results := filter.Query(db, filters)

			if writeFn == nil {
				limit := opts.limit
				if !cmd.Flags().Changed("limit") {
					limit = defaultDisplayLimit
				}
				out := cmd.OutOrStdout()
				n := 0
				for ca := range filter.Limit(results, limit) {
					fmt.Fprintln(out, ca)
					n++
				}
				if n == 0 {
					fmt.Fprintln(out, "No matching close approaches.")
				}
				return nil
			}

			n, err := writeFn(filter.Limit(results, opts.limit), opts.outfile)
			if err != nil {
				return err
			}
			metrics.RecordsWritten(format, n)
			a.logger.Info("wrote results", "path", opts.outfile, "format", format, "count", n)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.date, "date", "d", "", "only approaches on this date (YYYY-MM-DD)")
	f.StringVarP(&opts.startDate, "start-date", "s", "", "only approaches on or after this date (YYYY-MM-DD)")
	f.StringVarP(&opts.endDate, "end-date", "e", "", "only approaches on or before this date (YYYY-MM-DD)")
	f.Float64Var(&opts.minDistance, "min-distance", 0, "minimum approach distance in au")
	f.Float64Var(&opts.maxDistance, "max-distance", 0, "maximum approach distance in au")
	f.Float64Var(&opts.minVelocity, "min-velocity", 0, "minimum relative velocity in km/s")
	f.Float64Var(&opts.maxVelocity, "max-velocity", 0, "maximum relative velocity in km/s")
	f.Float64Var(&opts.minDiameter, "min-diameter", 0, "minimum NEO diameter in km")
	f.Float64Var(&opts.maxDiameter, "max-diameter", 0, "maximum NEO diameter in km")
	f.BoolVar(&opts.hazardous, "hazardous", false, "only potentially hazardous NEOs")
	f.BoolVar(&opts.notHazardous, "not-hazardous", false, "only NEOs that are not potentially hazardous")
	f.IntVarP(&opts.limit, "limit", "l", 0, "maximum number of results (0 for all; printed output defaults to 10)")
	f.StringVarP(&opts.outfile, "outfile", "o", "", "write results to this .csv or .json file")
	cmd.MarkFlagsMutuallyExclusive("hazardous", "not-hazardous")
	cmd.MarkFlagsMutuallyExclusive("date", "start-date")
	cmd.MarkFlagsMutuallyExclusive("date", "end-date")

	return cmd
}

func (o *queryOptions) criteria(flags *pflag.FlagSet) (filter.Criteria, error) {
	var c filter.Criteria

	dates := []struct {
		raw string
		dst **time.Time
	}{
		{o.date, &c.Date},
		{o.startDate, &c.StartDate},
		{o.endDate, &c.EndDate},
	}
	for _, d := range dates {
		if d.raw == "" {
			continue
		}
		t, err := timeutil.ParseDate(d.raw)
		if err != nil {
			return c, err
		}
		*d.dst = &t
	}

	floats := []struct {
		flag string
		val  float64
		dst  **float64
	}{
		{"min-distance", o.minDistance, &c.DistanceMin},
		{"max-distance", o.maxDistance, &c.DistanceMax},
		{"min-velocity", o.minVelocity, &c.VelocityMin},
		{"max-velocity", o.maxVelocity, &c.VelocityMax},
		{"min-diameter", o.minDiameter, &c.DiameterMin},
		{"max-diameter", o.maxDiameter, &c.DiameterMax},
	}
	for _, fl := range floats {
		if flags.Changed(fl.flag) {
			v := fl.val
			*fl.dst = &v
		}
	}

	switch {
	case o.hazardous:
		h := true
		c.Hazardous = &h
	case o.notHazardous:
		h := false
		c.Hazardous = &h
	}

	if o.limit < 0 {
		return c, errors.New("--limit must not be negative")
	}
	return c, nil
}

type writeFunc func(iter.Seq[*neo.CloseApproach], string) (int, error)

// resultWriter picks the serializer for outfile by extension. It returns a
// nil writer when outfile is empty.
func resultWriter(outfile string) (writeFunc, string, error) {
	if outfile == "" {
		return nil, "", nil
	}
	switch ext := strings.ToLower(filepath.Ext(outfile)); ext {
	case ".csv":
		return write.WriteCSV, "csv", nil
	case ".json":
		return write.WriteJSON, "json", nil
	default:
		return nil, "", fmt.Errorf("unsupported output format %q: use .csv or .json", ext)
	}
}
