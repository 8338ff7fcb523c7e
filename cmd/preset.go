package cmd

import (
	"fmt"

	"reshort/internal/model"
	"reshort/internal/schedule"

	"github.com/spf13/cobra"
)

var (
	presetDay      string
	presetHour     int
	presetMinute   int
	presetInterval int
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage schedule presets",
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List schedule presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := schedule.NewPresetStore(cfg.PresetsPath)
		presets := store.Load()

		fmt.Printf("%-25s %-10s %-6s %s\n", "NAME", "DAY", "TIME", "INTERVAL")
		for _, name := range store.Names() {
			p := presets[name]
			fmt.Printf("%-25s %-10s %02d:%02d  every %d days\n",
				name, p.StartDay, p.Hour, p.Minute, p.IntervalDays)
		}

		return nil
	},
}

var presetAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or update a schedule preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := schedule.NewPresetStore(cfg.PresetsPath)

		preset := model.Preset{
			StartDay:     presetDay,
			Hour:         presetHour,
			Minute:       presetMinute,
			IntervalDays: presetInterval,
		}
		if err := store.AddOrUpdate(args[0], preset); err != nil {
			return err
		}

		fmt.Printf("Saved preset %q\n", args[0])
		return nil
	},
}

var presetRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a schedule preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := schedule.NewPresetStore(cfg.PresetsPath)
		if err := store.Delete(args[0]); err != nil {
			return err
		}

		fmt.Printf("Removed preset %q\n", args[0])
		return nil
	},
}

func init() {
	presetAddCmd.Flags().StringVar(&presetDay, "day", "Sunday", "weekday of the first upload")
	presetAddCmd.Flags().IntVar(&presetHour, "hour", 9, "hour of day (0-23)")
	presetAddCmd.Flags().IntVar(&presetMinute, "minute", 0, "minute (0-59)")
	presetAddCmd.Flags().IntVar(&presetInterval, "interval", 7, "days between uploads")

	presetCmd.AddCommand(presetListCmd, presetAddCmd, presetRemoveCmd)
	rootCmd.AddCommand(presetCmd)
}
