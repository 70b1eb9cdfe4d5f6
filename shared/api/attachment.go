package api

import (
	"github.com/itchan-dev/mediameta/shared/domain"
)

// Request DTOs

type DescribeRequest struct {
	Attachment *domain.Attachment `json:"attachment" validate:"required"`
	Lang       string             `json:"lang,omitempty"`
}

// AspectBounds is the clamp range a client may send. Omitted bounds use configured defaults.
type AspectBounds struct {
	MinAspect *float64 `json:"min_aspect,omitempty"`
	MaxAspect *float64 `json:"max_aspect,omitempty"`
}

// AspectRange is AspectBounds after defaults are applied
type AspectRange struct {
	MinAspect float64 `json:"min_aspect" validate:"gt=0"`
	MaxAspect float64 `json:"max_aspect" validate:"gt=0,gtefield=MinAspect"`
}

type AspectRatiosRequest struct {
	Attachments []*domain.Attachment `json:"attachments"`
	AspectBounds
}

type CreateAttachmentRequest struct {
	MessageId   domain.MsgId           `json:"message_id" validate:"required,gt=0"`
	Position    int                    `json:"position" validate:"gte=0"`
	MediaType   domain.MediaType       `json:"type" validate:"required,oneof=image gifv video audio unknown"`
	Description *string                `json:"description,omitempty" validate:"omitempty,max=1500"`
	Meta        *domain.AttachmentMeta `json:"meta,omitempty"`
}

// Response DTOs

type DescriptionResponse struct {
	Description string `json:"description"`
	AltText     string `json:"alt_text"`
}

type AttachmentResponse struct {
	Attachment *domain.Attachment `json:"attachment"`
	DescriptionResponse
}

type AspectRatiosResponse struct {
	AspectRatios []float64 `json:"aspect_ratios"`
}

type MessageLayoutResponse struct {
	Attachments  []*domain.Attachment `json:"attachments"`
	AspectRatios []float64            `json:"aspect_ratios"`
}

type CreateAttachmentResponse struct {
	Id domain.AttachmentId `json:"id"`
}

type PublicConfigResponse struct {
	MinAspect     float64  `json:"min_aspect"`
	MaxAspect     float64  `json:"max_aspect"`
	DefaultLocale string   `json:"default_locale"`
	Locales       []string `json:"locales"`
}
