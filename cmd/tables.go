package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newListModelsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list-models",
		Short: "List models with the models of directly connected tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			list, err := a.service.ListModels(cmd.Context())
			if err != nil {
				return err
			}
			pterm.DefaultSection.Println("Models Found")
			for _, m := range list {
				pterm.Println(m.Model)
				for _, c := range m.Connected {
					if c.HasFile {
						pterm.Printf("  - %s\n", c.Model)
					} else {
						pterm.Printf("  - %s\n", pterm.Yellow(c.Model))
					}
				}
			}
			return nil
		},
	}
}

func newCheckTablesCmd(opts *options) *cobra.Command {
	var create bool
	cmd := &cobra.Command{
		Use:   "check-tables",
		Short: "Find tables that have no model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			tables, err := a.service.TablesWithoutModels(cmd.Context())
			if err != nil {
				return err
			}
			if len(tables) == 0 {
				pterm.Success.Println("All tables have models")
				return nil
			}
			pterm.Warning.Println("Tables without models:")
			for _, t := range tables {
				pterm.Printf("  - %s\n", t)
			}
			if !create {
				return nil
			}
			for _, m := range a.service.CreateModels(cmd.Context(), tables) {
				pterm.Info.Println(m)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&create, "make", false, "Scaffold models for the listed tables")
	return cmd
}
