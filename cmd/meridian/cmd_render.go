package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/polarisobs/meridian/internal/command"
	"github.com/polarisobs/meridian/internal/policy"
	"github.com/polarisobs/meridian/internal/rules"
)

var (
	renderT0     string
	renderT1     string
	renderPolicy string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Build a schedule and print the command sequence",
	Long:  "Run the selected policy for an observation window and print the rendered command sequence to stdout, without starting the server",
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderT0, "t0", "", "window start, formatted as \"YYYY-MM-DD HH:MM\"")
	renderCmd.Flags().StringVar(&renderT1, "t1", "", "window end, formatted as \"YYYY-MM-DD HH:MM\"")
	renderCmd.Flags().StringVar(&renderPolicy, "policy", "dummy", "scheduling policy to run")
	_ = renderCmd.MarkFlagRequired("t0")
	_ = renderCmd.MarkFlagRequired("t1")
}

func runRender(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	const layout = "2006-01-02 15:04"
	t0, err := time.Parse(layout, renderT0)
	if err != nil {
		return fmt.Errorf("parse t0: %w", err)
	}
	t1, err := time.Parse(layout, renderT1)
	if err != nil {
		return fmt.Errorf("parse t1: %w", err)
	}

	tuning, err := policy.LoadTuning(cfg.PolicyFile)
	if err != nil {
		return fmt.Errorf("load policy tuning: %w", err)
	}

	p, err := policy.New(renderPolicy, t0, t1, tuning)
	if err != nil {
		return err
	}

	blocks, err := rules.Run(p)
	if err != nil {
		return fmt.Errorf("run policy: %w", err)
	}

	compiled, err := command.Compile(blocks)
	if err != nil {
		return fmt.Errorf("compile schedule: %w", err)
	}

	fmt.Println(command.Render(compiled))
	return nil
}
