package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/enayetsyl/industry-grade-project-format/internal/db/mongodb"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/campus"
	"github.com/enayetsyl/industry-grade-project-format/internal/domain/query"
	"github.com/enayetsyl/industry-grade-project-format/internal/usecase/listing"
)

var (
	explainDefaultLimit int
	explainMaxLimit     int
)

var explainCmd = &cobra.Command{
	Use:   "explain <entity> [query-string]",
	Short: "Print the Mongo query a list request translates to",
	Example: `  campus explain students 'searchTerm=ali&gender=male&sort=-createdAt&page=2&limit=5'
  campus explain courses prefix=CSE`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := ""
		if len(args) == 2 {
			raw = args[1]
		}
		return explain(cmd.OutOrStdout(), args[0], raw)
	},
}

func init() {
	explainCmd.Flags().IntVar(&explainDefaultLimit, "default-limit", query.DefaultLimit, "page size when limit is absent")
	explainCmd.Flags().IntVar(&explainMaxLimit, "max-limit", 0, "clamp for requested limits (0 = none)")
}

func explain(w io.Writer, entity, rawQuery string) error {
	e, err := campus.DefaultRegistry().Lookup(entity)
	if err != nil {
		return err //nolint:wrapcheck // carries the entity name
	}
	params, err := query.ParseQuery(rawQuery)
	if err != nil {
		return fmt.Errorf("parse query string: %w", err)
	}

	// explain never executes, so the builder gets no source
	svc := listing.New[struct{}](e, nil, listing.WithPagination(explainDefaultLimit, explainMaxLimit))
	b := svc.Builder(params)

	q, err := mongodb.Translate(b.Spec())
	if err != nil {
		return fmt.Errorf("translate: %w", err)
	}
	out, err := q.ExtJSON()
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	stages := make([]string, 0, len(b.Stages()))
	for _, s := range b.Stages() {
		stages = append(stages, string(s))
	}
	fmt.Fprintf(w, "entity:  %s (%s)\n", e.Name(), e.Collection())
	fmt.Fprintf(w, "stages:  %s\n", strings.Join(stages, " -> "))
	fmt.Fprintf(w, "sort:    %s\n", query.SortString(b.Spec().Sort))
	fmt.Fprintf(w, "page:    %d (limit %d)\n", b.Page(), b.Limit())
	fmt.Fprintln(w, out)
	return nil
}
