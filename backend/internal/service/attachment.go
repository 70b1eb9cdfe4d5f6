package service

import (
	"context"
	"io"
	"net/http"

	"github.com/itchan-dev/mediameta/shared/attachment"
	"github.com/itchan-dev/mediameta/shared/domain"
	internal_errors "github.com/itchan-dev/mediameta/shared/errors"
	"github.com/itchan-dev/mediameta/shared/i18n"
	"github.com/itchan-dev/mediameta/shared/logger"
	"github.com/itchan-dev/mediameta/shared/middleware/metrics"
	"github.com/itchan-dev/mediameta/shared/validation"
)

// to mock service in tests
type AttachmentService interface {
	Describe(a *domain.Attachment, locale domain.Locale) string
	DescribeStored(ctx context.Context, id domain.AttachmentId, locale domain.Locale) (*domain.Attachment, string, error)
	Layout(attachments domain.Attachments, minAspect, maxAspect float64) []float64
	MessageLayout(ctx context.Context, msgId domain.MsgId, minAspect, maxAspect float64) (domain.Attachments, []float64, error)
	Save(ctx context.Context, a *domain.Attachment) (domain.AttachmentId, error)
	Delete(ctx context.Context, id domain.AttachmentId) error
	Probe(data io.Reader) (*domain.MediaSize, error)
}

type AttachmentStorage interface {
	SaveAttachment(ctx context.Context, a *domain.Attachment) (domain.AttachmentId, error)
	GetAttachment(ctx context.Context, id domain.AttachmentId) (*domain.Attachment, error)
	GetMessageAttachments(ctx context.Context, msgId domain.MsgId) (domain.Attachments, error)
	DeleteAttachment(ctx context.Context, id domain.AttachmentId) error
}

type Attachment struct {
	storage AttachmentStorage
	strings i18n.Resolver
}

func NewAttachment(storage AttachmentStorage, strings i18n.Resolver) AttachmentService {
	return &Attachment{storage, strings}
}

func (s *Attachment) Describe(a *domain.Attachment, locale domain.Locale) string {
	placeholder := s.strings.String(locale, i18n.KeyNoDescriptionPlaceholder)
	metrics.ObserveDescription(a.DescriptionText() == "")
	return attachment.FormatDescription(a, placeholder)
}

func (s *Attachment) DescribeStored(ctx context.Context, id domain.AttachmentId, locale domain.Locale) (*domain.Attachment, string, error) {
	a, err := s.storage.GetAttachment(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return a, s.Describe(a, locale), nil
}

func (s *Attachment) Layout(attachments domain.Attachments, minAspect, maxAspect float64) []float64 {
	fallbacks := 0
	for _, a := range attachments {
		if _, ok := attachment.RawAspectRatio(a); !ok {
			fallbacks++
		}
	}
	metrics.ObserveAspectFallbacks(fallbacks)
	return attachment.AspectRatios(attachments, minAspect, maxAspect)
}

func (s *Attachment) MessageLayout(ctx context.Context, msgId domain.MsgId, minAspect, maxAspect float64) (domain.Attachments, []float64, error) {
	attachments, err := s.storage.GetMessageAttachments(ctx, msgId)
	if err != nil {
		return nil, nil, err
	}
	return attachments, s.Layout(attachments, minAspect, maxAspect), nil
}

// Save stores the attachment, filling precomputed aspects that are missing
func (s *Attachment) Save(ctx context.Context, a *domain.Attachment) (domain.AttachmentId, error) {
	if a == nil {
		return domain.AttachmentId{}, internal_errors.BadRequest("Attachment is required")
	}
	if a.MediaType == "" {
		a.MediaType = domain.MediaUnknown
	}
	if !a.MediaType.Valid() {
		return domain.AttachmentId{}, internal_errors.BadRequest("Unknown media type: " + string(a.MediaType))
	}
	if a.Meta != nil {
		if d := a.Meta.Duration; d != nil && *d < 0 {
			return domain.AttachmentId{}, internal_errors.BadRequest("Duration must not be negative")
		}
		attachment.FillAspect(a.Meta.Small)
		attachment.FillAspect(a.Meta.Original)
	}

	id, err := s.storage.SaveAttachment(ctx, a)
	if err != nil {
		return domain.AttachmentId{}, err
	}
	logger.Log.Info("attachment saved", "id", id, "message_id", a.MessageId, "type", a.MediaType)
	return id, nil
}

func (s *Attachment) Delete(ctx context.Context, id domain.AttachmentId) error {
	if err := s.storage.DeleteAttachment(ctx, id); err != nil {
		return err
	}
	logger.Log.Info("attachment deleted", "id", id)
	return nil
}

// Probe reads image dimensions so clients can fill size metadata before saving
func (s *Attachment) Probe(data io.Reader) (*domain.MediaSize, error) {
	size, err := validation.ProbeImageSize(data)
	if err != nil {
		return nil, &internal_errors.ErrorWithStatusCode{Message: err.Error(), StatusCode: http.StatusUnsupportedMediaType}
	}
	return size, nil
}
