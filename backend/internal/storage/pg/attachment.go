package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/itchan-dev/mediameta/shared/domain"
	internal_errors "github.com/itchan-dev/mediameta/shared/errors"
)

const attachmentColumns = `
	id,
	message_id,
	position,
	media_type,
	description,
	duration,
	small_width, small_height, small_aspect,
	original_width, original_height, original_aspect,
	created_at`

// SaveAttachment inserts the attachment or replaces the stored row with the same id
func (s *Storage) SaveAttachment(ctx context.Context, a *domain.Attachment) (domain.AttachmentId, error) {
	if a.Id == uuid.Nil {
		a.Id = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC().Round(time.Microsecond) // database anyway round to microsecond
	}

	var duration sql.NullFloat64
	var small, original nullSize
	if a.Meta != nil {
		if a.Meta.Duration != nil {
			duration = sql.NullFloat64{Float64: *a.Meta.Duration, Valid: true}
		}
		small = toNullSize(a.Meta.Small)
		original = toNullSize(a.Meta.Original)
	}

	_, err := s.db.ExecContext(ctx, `
	INSERT INTO attachments(`+attachmentColumns+`)
	VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (id) DO UPDATE SET
		message_id = EXCLUDED.message_id,
		position = EXCLUDED.position,
		media_type = EXCLUDED.media_type,
		description = EXCLUDED.description,
		duration = EXCLUDED.duration,
		small_width = EXCLUDED.small_width,
		small_height = EXCLUDED.small_height,
		small_aspect = EXCLUDED.small_aspect,
		original_width = EXCLUDED.original_width,
		original_height = EXCLUDED.original_height,
		original_aspect = EXCLUDED.original_aspect`,
		a.Id, a.MessageId, a.Position, string(a.MediaType), a.Description, duration,
		small.width, small.height, small.aspect,
		original.width, original.height, original.aspect,
		a.CreatedAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save attachment: %w", err)
	}
	return a.Id, nil
}

func (s *Storage) GetAttachment(ctx context.Context, id domain.AttachmentId) (*domain.Attachment, error) {
	row := s.db.QueryRowContext(ctx, `SELECT`+attachmentColumns+` FROM attachments WHERE id = $1`, id)
	a, err := scanAttachment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Attachment not found")
		}
		return nil, fmt.Errorf("failed to query attachment: %w", err)
	}
	return a, nil
}

// GetMessageAttachments returns attachments of a message in display order
func (s *Storage) GetMessageAttachments(ctx context.Context, msgId domain.MsgId) (domain.Attachments, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT`+attachmentColumns+`
	FROM attachments
	WHERE message_id = $1
	ORDER BY position, created_at, id`, msgId)
	if err != nil {
		return nil, fmt.Errorf("failed to query message attachments: %w", err)
	}
	defer rows.Close()

	attachments := domain.Attachments{}
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		attachments = append(attachments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return attachments, nil
}

func (s *Storage) DeleteAttachment(ctx context.Context, id domain.AttachmentId) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return internal_errors.NotFound("Attachment not found")
	}
	return nil
}

type nullSize struct {
	width, height sql.NullInt64
	aspect        sql.NullFloat64
}

func toNullSize(size *domain.MediaSize) nullSize {
	if size == nil {
		return nullSize{}
	}
	return nullSize{
		width:  sql.NullInt64{Int64: int64(size.Width), Valid: true},
		height: sql.NullInt64{Int64: int64(size.Height), Valid: true},
		aspect: sql.NullFloat64{Float64: size.Aspect, Valid: true},
	}
}

// a size record is stored when any of its columns is set
func (n nullSize) toSize() *domain.MediaSize {
	if !n.width.Valid && !n.height.Valid && !n.aspect.Valid {
		return nil
	}
	return &domain.MediaSize{
		Width:  int(n.width.Int64),
		Height: int(n.height.Int64),
		Aspect: n.aspect.Float64,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAttachment(row scanner) (*domain.Attachment, error) {
	var (
		a               domain.Attachment
		mediaType       string
		description     sql.NullString
		duration        sql.NullFloat64
		small, original nullSize
	)
	err := row.Scan(
		&a.Id, &a.MessageId, &a.Position, &mediaType, &description, &duration,
		&small.width, &small.height, &small.aspect,
		&original.width, &original.height, &original.aspect,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.MediaType = domain.MediaType(mediaType)
	if description.Valid {
		a.Description = &description.String
	}

	meta := &domain.AttachmentMeta{Small: small.toSize(), Original: original.toSize()}
	if duration.Valid {
		meta.Duration = &duration.Float64
	}
	if meta.Duration != nil || meta.Small != nil || meta.Original != nil {
		a.Meta = meta
	}
	return &a, nil
}
