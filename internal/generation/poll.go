package generation

import (
	"context"
	"errors"
	"time"

	"sunogen/internal/suno"
)

// poll queries the task status on a fixed interval until it reaches a terminal
// state or the attempt budget runs out. The loop is a passive observer: it
// never drives transitions, and a transient transport error while polling is
// swallowed so a momentarily unreachable service does not kill the run. A
// service-level rejection is not transient and fails the run immediately.
func (p *Pipeline) poll(ctx context.Context, taskID string) (*suno.RecordInfo, error) {
	for attempt := 1; attempt <= p.cfg.MaxPollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.cfg.PollInterval):
		}

		info, err := p.client.RecordInfo(ctx, taskID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			var apiErr *suno.APIError
			if errors.As(err, &apiErr) {
				return nil, err
			}
			p.logger.Warn().Err(err).Int("attempt", attempt).Msg("generation: poll request failed, retrying")
			continue
		}

		switch {
		case info.Status == suno.StatusSuccess:
			p.logger.Info().Str("task_id", taskID).Int("attempt", attempt).Msg("generation: task completed")
			return info, nil
		case suno.IsFailureStatus(info.Status):
			return nil, &FailureError{Status: info.Status, Message: info.ErrorMessage}
		default:
			// PENDING, TEXT_SUCCESS, FIRST_SUCCESS: keep waiting.
			p.observe(info.Status, attempt)
		}
	}

	return nil, &TimeoutError{
		TaskID:   taskID,
		Attempts: p.cfg.MaxPollAttempts,
		Elapsed:  time.Duration(p.cfg.MaxPollAttempts) * p.cfg.PollInterval,
	}
}

func (p *Pipeline) observe(status string, attempt int) {
	if p.observer == nil {
		return
	}
	p.observer(status, attempt, p.cfg.MaxPollAttempts)
}
