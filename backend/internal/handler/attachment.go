package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/mediameta/shared/api"
	"github.com/itchan-dev/mediameta/shared/attachment"
	"github.com/itchan-dev/mediameta/shared/domain"
	internal_errors "github.com/itchan-dev/mediameta/shared/errors"
	"github.com/itchan-dev/mediameta/shared/utils"
	"github.com/itchan-dev/mediameta/shared/validation"
)

const probeFormField = "file"

func describeResponse(description string) api.DescriptionResponse {
	return api.DescriptionResponse{Description: description, AltText: attachment.AltText(description)}
}

func (h *Handler) Describe(w http.ResponseWriter, r *http.Request) {
	var body api.DescribeRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	description := h.attachment.Describe(body.Attachment, requestLocale(r, body.Lang))
	writeJSON(w, describeResponse(description))
}

func (h *Handler) AspectRatios(w http.ResponseWriter, r *http.Request) {
	var body api.AspectRatiosRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	rng, err := h.resolveRange(body.AspectBounds)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	ratios := h.attachment.Layout(body.Attachments, rng.MinAspect, rng.MaxAspect)
	writeJSON(w, api.AspectRatiosResponse{AspectRatios: ratios})
}

func (h *Handler) CreateAttachment(w http.ResponseWriter, r *http.Request) {
	var body api.CreateAttachmentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err := h.attachment.Save(r.Context(), &domain.Attachment{
		MessageId:   body.MessageId,
		Position:    body.Position,
		MediaType:   body.MediaType,
		Description: body.Description,
		Meta:        body.Meta,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, api.CreateAttachmentResponse{Id: id})
}

func (h *Handler) GetAttachment(w http.ResponseWriter, r *http.Request) {
	id, err := parseAttachmentId(chi.URLParam(r, "attachment"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	a, description, err := h.attachment.DescribeStored(r.Context(), id, requestLocale(r, ""))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.AttachmentResponse{Attachment: a, DescriptionResponse: describeResponse(description)})
}

func (h *Handler) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	id, err := parseAttachmentId(chi.URLParam(r, "attachment"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.attachment.Delete(r.Context(), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GetMessageLayout(w http.ResponseWriter, r *http.Request) {
	msgId, err := parseIntParam(chi.URLParam(r, "message"), "message")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	rng, err := h.rangeFromQuery(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	attachments, ratios, err := h.attachment.MessageLayout(r.Context(), msgId, rng.MinAspect, rng.MaxAspect)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.MessageLayoutResponse{Attachments: attachments, AspectRatios: ratios})
}

func (h *Handler) ProbeAttachment(w http.ResponseWriter, r *http.Request) {
	maxRequestSize := validation.CalculateMaxRequestSize(h.cfg.Public.MaxProbeSize, 1<<20)
	if err := validation.ValidateAndParseMultipart(r, w, maxRequestSize); err != nil {
		if !errors.Is(err, validation.ErrPayloadTooLarge) {
			utils.WriteErrorAndStatusCode(w, internal_errors.BadRequest("expected multipart/form-data body"))
			return
		}
		msg := fmt.Sprintf("file exceeds the limit of %.0f MB", validation.FormatSizeMB(h.cfg.Public.MaxProbeSize))
		utils.WriteErrorAndStatusCode(w, &internal_errors.ErrorWithStatusCode{Message: msg, StatusCode: http.StatusRequestEntityTooLarge})
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(probeFormField)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, internal_errors.BadRequest("missing file field"))
		return
	}
	defer file.Close()

	allowed := validation.BuildAllowedMimeMap(h.cfg.Public.AllowedImageMimeTypes)
	if _, err := validation.ValidateMimeType(header, allowed); err != nil {
		utils.WriteErrorAndStatusCode(w, &internal_errors.ErrorWithStatusCode{Message: err.Error(), StatusCode: http.StatusUnsupportedMediaType})
		return
	}

	size, err := h.attachment.Probe(file)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, size)
}

func (h *Handler) GetPublicConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, api.PublicConfigResponse{
		MinAspect:     h.cfg.Public.MinAspect,
		MaxAspect:     h.cfg.Public.MaxAspect,
		DefaultLocale: h.cfg.Public.DefaultLocale,
		Locales:       h.locales,
	})
}
