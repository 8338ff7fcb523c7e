package youtube

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reshort/internal/config"
	"reshort/internal/logger"
	"reshort/internal/model"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/youtube/v3"
)

// Client wraps an authenticated YouTube service for the two calls the batch
// pipeline needs: listing the channel's Shorts and uploading a video.
type Client struct {
	svc        *youtube.Service
	categoryID string
	tags       []string
	signature  string

	ChannelTitle string
}

func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	svc, err := newService(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Channels.List([]string{"snippet", "contentDetails"}).Mine(true).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to look up channel: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("no channel found for the authenticated account")
	}

	title := resp.Items[0].Snippet.Title

	return &Client{
		svc:          svc,
		categoryID:   cfg.CategoryID,
		tags:         cfg.Tags,
		signature:    fmt.Sprintf("@%s used %s", title, ProvenanceTag),
		ChannelTitle: title,
	}, nil
}

// ListShorts walks the channel's uploads playlist and keeps every video under
// the Short duration threshold.
func (c *Client) ListShorts(ctx context.Context) ([]model.ShortVideo, error) {
	chResp, err := c.svc.Channels.List([]string{"contentDetails"}).Mine(true).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to look up channel: %w", err)
	}
	if len(chResp.Items) == 0 {
		return nil, fmt.Errorf("no channel found for the authenticated account")
	}

	playlistID := chResp.Items[0].ContentDetails.RelatedPlaylists.Uploads

	var shorts []model.ShortVideo
	pageToken := ""
	for {
		page, err := c.svc.PlaylistItems.List([]string{"contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(50).
			PageToken(pageToken).
			Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list uploads playlist: %w", err)
		}

		ids := make([]string, 0, len(page.Items))
		for _, item := range page.Items {
			ids = append(ids, item.ContentDetails.VideoId)
		}
		if len(ids) == 0 {
			break
		}

		videos, err := c.svc.Videos.List([]string{"snippet", "contentDetails"}).
			Id(ids...).
			Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch video details: %w", err)
		}

		for _, v := range videos.Items {
			seconds, err := ParseISODuration(v.ContentDetails.Duration)
			if err != nil {
				logger.Log.Warn("skipping video with unparseable duration",
					zap.String("id", v.Id),
					zap.String("duration", v.ContentDetails.Duration))
				continue
			}

			if IsShort(seconds) {
				shorts = append(shorts, model.ShortVideo{
					ID:          v.Id,
					Title:       v.Snippet.Title,
					Description: v.Snippet.Description,
					PublishedAt: v.Snippet.PublishedAt,
					Duration:    seconds,
				})
			}
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return shorts, nil
}

// Upload publishes a video file with the job's metadata. When publishAt is
// set the video is created private so the platform can flip it public at the
// scheduled instant. Returns the new remote video ID.
func (c *Client) Upload(ctx context.Context, path string, job model.Job, publishAt time.Time) (string, error) {
	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       job.Title,
			Description: ComposeDescription(job.Description, c.signature),
			Tags:        WithProvenanceTag(c.tags),
			CategoryId:  c.categoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           "private",
			SelfDeclaredMadeForKids: false,
			ForceSendFields:         []string{"SelfDeclaredMadeForKids"},
		},
	}

	if !publishAt.IsZero() {
		video.Status.PublishAt = publishAt.UTC().Format(time.RFC3339)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open video file: %w", err)
	}

	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	resp, err := c.svc.Videos.Insert([]string{"snippet", "status"}, video).
		Media(f).
		Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if ok := errors.As(err, &apiErr); ok {
			return "", fmt.Errorf("upload rejected (HTTP %d): %w", apiErr.Code, err)
		}

		return "", fmt.Errorf("upload failed: %w", err)
	}

	logger.Log.Info("upload successful",
		zap.String("id", resp.Id),
		zap.String("title", job.Title))

	return resp.Id, nil
}
