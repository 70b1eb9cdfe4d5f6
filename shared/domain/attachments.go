package domain

import "time"

// MediaSize describes one rendition of a media file
type MediaSize struct {
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Aspect float64 `json:"aspect,omitempty"` // <= 0 means not computed
}

// AttachmentMeta holds optional media metadata. Any field may be missing.
type AttachmentMeta struct {
	Duration *float64   `json:"duration,omitempty"` // seconds, audio/video only
	Small    *MediaSize `json:"small,omitempty"`
	Original *MediaSize `json:"original,omitempty"`
}

// Attachment represents a media item attached to a message
type Attachment struct {
	Id          AttachmentId    `json:"id"`
	MessageId   MsgId           `json:"message_id"`
	Position    int             `json:"position"`
	MediaType   MediaType       `json:"type"`
	Description *string         `json:"description,omitempty"`
	Meta        *AttachmentMeta `json:"meta,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Attachments is a slice of attachments
type Attachments = []*Attachment
