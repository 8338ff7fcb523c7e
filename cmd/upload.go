package cmd

import (
	"context"
	"fmt"
	"time"

	"reshort/internal/downloader"
	"reshort/internal/logger"
	"reshort/internal/model"
	"reshort/internal/notify"
	"reshort/internal/repository"
	"reshort/internal/runner"
	"reshort/internal/schedule"
	"reshort/internal/youtube"

	"github.com/spf13/cobra"
)

var (
	planPreset   string
	planDate     string
	planTime     string
	planInterval int

	uploadTitle       string
	uploadDescription string
)

var uploadCmd = &cobra.Command{
	Use:   "upload <video-id>...",
	Short: "Re-upload Shorts from your channel on a schedule",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()

		if err := downloader.CheckDependency(); err != nil {
			return err
		}

		ctx := cmd.Context()
		client, err := youtube.NewClient(ctx, cfg)
		if err != nil {
			return err
		}

		shorts, err := client.ListShorts(ctx)
		if err != nil {
			return err
		}

		byID := make(map[string]model.ShortVideo, len(shorts))
		for _, short := range shorts {
			byID[short.ID] = short
		}

		jobs := make([]model.Job, 0, len(args))
		for _, id := range args {
			short, ok := byID[id]
			if !ok {
				return fmt.Errorf("video %s is not a Short on your channel", id)
			}

			jobs = append(jobs, model.Job{
				Type:        model.JobReUpload,
				SourceID:    short.ID,
				Title:       short.Title,
				Description: short.Description,
			})
		}

		jobs, err = applyMetadataFlags(jobs, uploadTitle, uploadDescription)
		if err != nil {
			return err
		}

		plan, err := resolvePlanFlags()
		if err != nil {
			return err
		}

		return runBatch(ctx, client, jobs, plan)
	},
}

// applyMetadataFlags overrides the fetched title/description before
// submission. The overrides are ambiguous across multiple videos, so they are
// only accepted for a single-job invocation.
func applyMetadataFlags(jobs []model.Job, title, description string) ([]model.Job, error) {
	if title == "" && description == "" {
		return jobs, nil
	}
	if len(jobs) != 1 {
		return nil, fmt.Errorf("--title and --description apply to a single video, got %d", len(jobs))
	}

	if title != "" {
		jobs[0].Title = title
	}
	if description != "" {
		jobs[0].Description = description
	}

	return jobs, nil
}

// resolvePlanFlags turns the shared schedule flags into a plan: an explicit
// --date wins, otherwise the named preset is resolved against now.
func resolvePlanFlags() (model.SchedulePlan, error) {
	if planDate != "" {
		date, err := time.Parse("2006-01-02", planDate)
		if err != nil {
			return model.SchedulePlan{}, fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", planDate)
		}

		at, err := time.Parse("15:04", planTime)
		if err != nil {
			return model.SchedulePlan{}, fmt.Errorf("invalid --time %q, expected HH:MM", planTime)
		}

		return schedule.ResolveManual(date, at.Hour(), at.Minute(), planInterval), nil
	}

	store := schedule.NewPresetStore(cfg.PresetsPath)
	preset, ok := store.Get(planPreset)
	if !ok {
		return model.SchedulePlan{}, fmt.Errorf("unknown preset %q, see 'reshort preset list'", planPreset)
	}

	return schedule.ResolvePreset(preset, time.Now())
}

// runBatch executes the jobs in-process, printing batch events as they
// arrive.
func runBatch(ctx context.Context, uploader runner.UploadProvider, jobs []model.Job, plan model.SchedulePlan) error {
	notifier := notify.FromConfig(cfg)
	r := runner.New(downloader.New(cfg, notifier), uploader, notifier, repository.NewUploadRepository())

	fmt.Printf("Scheduling %d videos from %s, one every %s\n",
		len(jobs), plan.StartAt.Format("2006-01-02 15:04"), plan.Interval)

	runner.Poll(r.Run(ctx, jobs, plan), func(ev model.BatchEvent) {
		switch ev.Type {
		case model.EventStatusUpdate:
			fmt.Println(ev.Message)
		case model.EventProgressUpdate:
			fmt.Printf("[%3.0f%%]\n", ev.Percent)
		case model.EventUploadComplete:
			fmt.Println("Batch complete")
		}
	})

	return nil
}

func addPlanFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&planPreset, "preset", schedule.DefaultPresetName, "schedule preset name")
	cmd.Flags().StringVar(&planDate, "date", "", "first publish date (YYYY-MM-DD), overrides --preset")
	cmd.Flags().StringVar(&planTime, "time", "09:00", "publish time of day (HH:MM), used with --date")
	cmd.Flags().IntVar(&planInterval, "interval", 7, "days between videos, used with --date")
}

func init() {
	uploadCmd.Flags().StringVar(&uploadTitle, "title", "", "replace the title (single video only)")
	uploadCmd.Flags().StringVar(&uploadDescription, "description", "", "replace the description (single video only)")
	addPlanFlags(uploadCmd)
	rootCmd.AddCommand(uploadCmd)
}
