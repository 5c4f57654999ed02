// Package webset turns the upstream state of a webset job into the status
// snapshot served to polling clients.
package webset

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/websetgate/websetgate/internal/exa"
)

// Client fetches webset records from the upstream service.
type Client interface {
	GetWebset(ctx context.Context, id string, expand ...string) (*exa.Webset, error)
}

// Poller serves status polls for webset jobs.
type Poller struct {
	client Client
	apiKey string
	logger *slog.Logger
}

// NewPoller returns a Poller. An empty apiKey makes every poll fail with
// ErrServiceUnavailable without contacting the upstream.
func NewPoller(client Client, apiKey string, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{client: client, apiKey: apiKey, logger: logger}
}

// Configured reports whether the upstream credential is set.
func (p *Poller) Configured() bool {
	return p.apiKey != "" && p.client != nil
}

// Poll fetches the current state of websetID on behalf of userID and
// returns its snapshot. Errors are ErrServiceUnavailable or *InternalError.
func (p *Poller) Poll(ctx context.Context, userID, websetID string, opts PollOptions) (*StatusResponse, error) {
	if !p.Configured() {
		return nil, ErrServiceUnavailable
	}

	resp, err := p.poll(ctx, userID, websetID, opts)
	if err != nil {
		err = classify(err)
		if !errors.Is(err, ErrServiceUnavailable) {
			p.logger.Error("failed to poll webset status",
				"webset_id", websetID,
				"user_id", userID,
				"error", err,
				"trace", fmt.Sprintf("%+v", err),
			)
		}
		return nil, err
	}
	return resp, nil
}

func (p *Poller) poll(ctx context.Context, userID, websetID string, opts PollOptions) (*StatusResponse, error) {
	limit := opts.ItemLimit
	switch {
	case limit < 1:
		limit = DefaultItemLimit
	case limit > MaxItemLimit:
		limit = MaxItemLimit
	}

	var expand []string
	if opts.IncludeItems {
		expand = []string{exa.ExpandItems}
	}
	ws, err := p.client.GetWebset(ctx, websetID, expand...)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, errors.Newf("webset %s: empty response", websetID)
	}

	var (
		progress         *Progress
		searchStatus     exa.Status
		enrichmentStatus exa.Status
	)
	if len(ws.Searches) > 0 {
		s := ws.Searches[0]
		searchStatus = s.Status
		if s.Progress != nil {
			progress = &Progress{
				Found:      s.Progress.Found,
				Analyzed:   s.Progress.Analyzed,
				Completion: s.Progress.Completion,
				TimeLeft:   s.Progress.TimeLeft,
			}
		}
	}
	if len(ws.Enrichments) > 0 {
		enrichmentStatus = ws.Enrichments[len(ws.Enrichments)-1].Status
	}

	var items []FormattedItem
	if opts.IncludeItems {
		items = []FormattedItem{}
		for i, item := range ws.Items {
			if i == limit {
				break
			}
			items = append(items, FormatItem(item))
		}
	}

	status := ws.Status
	isProcessing := status.IsActive() || searchStatus.IsActive() || enrichmentStatus.IsActive()
	isComplete := status == exa.StatusIdle &&
		(searchStatus == "" || searchStatus == exa.StatusCompleted) &&
		(enrichmentStatus == "" || enrichmentStatus == exa.StatusCompleted)

	message := StatusMessage(string(status), progress, isComplete)

	found, completion := 0, 100.0
	if progress != nil {
		found, completion = progress.Found, progress.Completion
	}
	p.logger.Debug("poll webset",
		"webset_id", websetID,
		"user_id", userID,
		"status", string(status),
		"found", found,
		"completion", completion,
	)

	message = enrichmentNote(message, enrichmentStatus)

	resp := &StatusResponse{
		WebsetID:      ws.ID,
		Status:        string(status),
		IsProcessing:  isProcessing,
		IsComplete:    isComplete,
		Progress:      progress,
		ItemsFound:    len(items),
		ItemsReturned: len(items),
		Items:         items,
		Message:       message,
	}
	if searchStatus != "" {
		s := string(searchStatus)
		resp.SearchStatus = &s
	}
	if progress != nil {
		resp.ItemsFound = progress.Found
	}
	return resp, nil
}
