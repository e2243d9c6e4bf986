package quran

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/huroofhub/huroof/internal/model"
)

// Provider is the UI-facing view of the API: failures are logged and come
// back as empty results instead of errors.
type Provider struct {
	client *Client
	log    logrus.FieldLogger
}

// NewProvider wraps client.
func NewProvider(client *Client, log logrus.FieldLogger) *Provider {
	return &Provider{
		client: client,
		log:    log.WithField("component", "provider"),
	}
}

// FetchChapterList returns the table of contents, or nil when it cannot be
// fetched.
func (p *Provider) FetchChapterList(ctx context.Context) []model.ChapterSummary {
	chapters, err := p.client.ListChapters(ctx)
	if err != nil {
		p.log.WithError(err).Error("failed to fetch chapter list")
		return nil
	}
	return chapters
}

// FetchChapter returns chapter id, or nil when it cannot be fetched.
func (p *Provider) FetchChapter(ctx context.Context, id int) *model.Chapter {
	ch, err := p.client.Chapter(ctx, id)
	if err != nil {
		p.log.WithError(err).WithField("chapter", id).Error("failed to fetch chapter")
		return nil
	}
	return &ch
}
