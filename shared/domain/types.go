package domain

import "github.com/google/uuid"

type (
	AttachmentId = uuid.UUID
	MsgId        = int64
	Locale       = string
)

// MediaType mirrors the attachment kinds a post can carry
type MediaType string

const (
	MediaImage   MediaType = "image"
	MediaGifv    MediaType = "gifv"
	MediaVideo   MediaType = "video"
	MediaAudio   MediaType = "audio"
	MediaUnknown MediaType = "unknown"
)

func (t MediaType) Valid() bool {
	switch t {
	case MediaImage, MediaGifv, MediaVideo, MediaAudio, MediaUnknown:
		return true
	}
	return false
}
