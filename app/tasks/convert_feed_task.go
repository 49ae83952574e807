package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/podparse/app/convert"
)

type ConvertFeedTask struct {
	Task
	converter *convert.Converter
}

func NewConvertFeedTask(path string, converter *convert.Converter) *ConvertFeedTask {
	return &ConvertFeedTask{
		Task:      NewTask(TaskTypeConvertFeed, path),
		converter: converter,
	}
}

func (t *ConvertFeedTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	out, p, err := t.converter.ConvertFile(t.Source)
	if err != nil {
		return fmt.Errorf("failed to convert feed: %w", err)
	}

	slog.Info("Task completed",
		"type", "ConvertedFeed",
		"feed", t.Source,
		"output", out,
		"duration", t.GetDuration(),
		"title", p.Meta.String("title"),
		"episodes", len(p.Episodes),
		"live_episodes", len(p.LiveEpisodes))

	return nil
}
