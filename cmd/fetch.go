package cmd

import (
	"fmt"
	"reshort/internal/logger"
	"reshort/internal/model"
	"reshort/internal/runner"
	"reshort/internal/youtube"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "List the Shorts on your channel",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()

		ctx := cmd.Context()
		client, err := youtube.NewClient(ctx, cfg)
		if err != nil {
			return err
		}

		var shorts []model.ShortVideo
		var failure string
		runner.Poll(runner.RunFetch(ctx, client), func(ev model.BatchEvent) {
			switch ev.Type {
			case model.EventStatusUpdate:
				fmt.Println(ev.Message)
			case model.EventFetchComplete:
				shorts = ev.Items
			case model.EventFetchFailed:
				failure = ev.Message
			}
		})

		if failure != "" {
			return fmt.Errorf("fetch failed: %s", failure)
		}

		if len(shorts) == 0 {
			fmt.Println("no Shorts found on channel", client.ChannelTitle)
			return nil
		}

		fmt.Printf("%-14s %-5s %s\n", "ID", "SEC", "TITLE")
		for _, short := range shorts {
			fmt.Printf("%-14s %-5d %s\n", short.ID, short.Duration, short.Title)
		}
		fmt.Printf("\n%d Shorts on channel %s\n", len(shorts), client.ChannelTitle)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
