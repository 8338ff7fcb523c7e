package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"reshort/internal/logger"
	"reshort/internal/model"
	"reshort/internal/youtube"

	"github.com/spf13/cobra"
)

var localDescription string

var localCmd = &cobra.Command{
	Use:   "local <file>...",
	Short: "Upload local video files on a schedule",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()

		jobs := make([]model.Job, 0, len(args))
		for _, path := range args {
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("cannot read %s: %w", path, err)
			}

			base := filepath.Base(path)
			title := strings.TrimSuffix(base, filepath.Ext(base))

			jobs = append(jobs, model.Job{
				Type:        model.JobLocal,
				SourcePath:  path,
				Title:       title,
				Description: localDescription,
			})
		}

		plan, err := resolvePlanFlags()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		client, err := youtube.NewClient(ctx, cfg)
		if err != nil {
			return err
		}

		return runBatch(ctx, client, jobs, plan)
	},
}

func init() {
	localCmd.Flags().StringVar(&localDescription, "description", "", "description for all uploaded videos")
	addPlanFlags(localCmd)
	rootCmd.AddCommand(localCmd)
}
