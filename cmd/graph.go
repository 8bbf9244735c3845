package main

import (
	"context"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"relgraph/generate"
	"relgraph/graph"
	"relgraph/parser"
)

func newGraphCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Inspect the inferred table graph",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "path <start> <end>",
			Short: "Shortest path between two tables and the relationship it yields",
			Args:  cobra.ExactArgs(2),
			RunE: withGraph(opts, func(_ context.Context, _ *app, g *graph.Graph, args []string) error {
				path := g.ShortestPath(args[0], args[1])
				if len(path) == 0 {
					pterm.Warning.Printf("No path found between %s and %s\n", args[0], args[1])
					return nil
				}
				pterm.Println(strings.Join(path, " -> "))

				steps, err := g.Resolve(path)
				if err != nil {
					pterm.Warning.Println(err.Error())
					return nil
				}
				for _, s := range steps {
					pterm.Printf("  %s.%s -> %s.%s (key on %s)\n", s.Table, s.Column, s.NextTable, s.NextColumn, s.Owner)
				}
				kind := generate.SelectKind(len(steps))
				pterm.Info.Printf("%s / %s\n", kind.Method(false), kind.Method(true))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "reachable <table>...",
			Short: "Tables reachable from the given tables",
			Args:  cobra.MinimumNArgs(1),
			RunE: withGraph(opts, func(_ context.Context, _ *app, g *graph.Graph, args []string) error {
				printTables(g.ReachableFromSet(args))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "connect <table>...",
			Short: "Tables needed to connect the given tables",
			Args:  cobra.MinimumNArgs(1),
			RunE: withGraph(opts, func(_ context.Context, _ *app, g *graph.Graph, args []string) error {
				printTables(g.MinimalConnectingSet(args))
				return nil
			}),
		},
		newAuditCmd(opts),
	)
	return cmd
}

func newAuditCmd(opts *options) *cobra.Command {
	var ddl string
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Compare FOREIGN KEY constraints from a DDL file with inferred edges",
		Args:  cobra.NoArgs,
		RunE: withGraph(opts, func(_ context.Context, a *app, g *graph.Graph, _ []string) error {
			file := ddl
			if file == "" {
				file = a.cfg.Paths.SchemaFile
			}
			declared, err := parser.ParseRelations(file)
			if err != nil {
				return err
			}

			audit := g.Compare(declared)
			pterm.Success.Printf("Confirmed: %d\n", len(audit.Confirmed))
			for _, r := range audit.Missed {
				pterm.Warning.Printf("Not inferred: %s.%s -> %s.%s (%s)\n",
					r.SourceTable, r.SourceColumn, r.TargetTable, r.TargetColumn, r.ConstraintName)
			}
			for _, e := range audit.Unconfirmed {
				pterm.Info.Printf("No constraint: %s.%s -> %s\n", e.Owner, e.Column, e.Target)
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&ddl, "ddl", "", "DDL file with constraints (defaults to paths.schema_file)")
	return cmd
}

type graphFunc func(ctx context.Context, a *app, g *graph.Graph, args []string) error

func withGraph(opts *options, fn graphFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), opts)
		if err != nil {
			return err
		}
		defer a.Close()

		g, err := graph.NewBuilder(a.logger).Build(cmd.Context(), a.schema)
		if err != nil {
			return err
		}
		return fn(cmd.Context(), a, g, args)
	}
}

func printTables(tables []string) {
	for _, t := range tables {
		pterm.Println(t)
	}
}
