package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/0x0FACED/fortune-sweep/pkg/tui"
)

func newTUICmd(o *rootOpts) *cobra.Command {
	var step float64

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Step through the sweep in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("step") {
				step = cfg.Sweep.Step
			}
			// the terminal belongs to the UI
			cfg.Log.Console = false

			log, err := newLogger(cfg, nil)
			if err != nil {
				return err
			}
			s, err := o.sweep(cfg, log)
			if err != nil {
				return err
			}

			m := tui.New(s, step)
			m.ShowCircles = cfg.Render.ShowCircles
			m.ShowParabolas = cfg.Render.ShowParabolas
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			return err
		},
	}
	cmd.Flags().Float64Var(&step, "step", 0, "sweep distance per keypress (default from config)")
	return cmd
}
