package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"relgraph/relations"
)

func selectorFromArgs(args []string, all bool) relations.Selector {
	sel := relations.Selector{All: all}
	if len(args) > 0 {
		sel.Start = args[0]
	}
	if len(args) > 1 {
		sel.End = args[1]
	}
	return sel
}

// confirmAll спрашивает подтверждение для режима все со всеми
func confirmAll(opts *options, sel relations.Selector, action string) (bool, error) {
	if !sel.All || sel.Start != "" || opts.yes {
		return true, nil
	}
	return pterm.DefaultInteractiveConfirm.
		WithDefaultText(action + " relationships between every pair of models?").
		Show()
}

func newBuildCmd(opts *options) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "build [start] [end]",
		Short: "Add relationship methods between models",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := selectorFromArgs(args, all)
			ok, err := confirmAll(opts, sel, "Build")
			if err != nil || !ok {
				return err
			}

			a, err := newApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			messages, err := a.service.Build(cmd.Context(), sel)
			if err != nil {
				return err
			}
			for _, m := range messages {
				pterm.Info.Println(m)
			}
			pterm.Success.Println("Relationships built")
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Process every connected model")
	return cmd
}

func newRemoveCmd(opts *options) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "remove [start] [end]",
		Short: "Remove relationship methods that build would add",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := selectorFromArgs(args, all)
			ok, err := confirmAll(opts, sel, "Remove")
			if err != nil || !ok {
				return err
			}

			a, err := newApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.service.Remove(cmd.Context(), sel); err != nil {
				return err
			}
			pterm.Success.Println("Relationships removed")
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Process every other model")
	return cmd
}
