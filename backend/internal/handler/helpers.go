package handler

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/itchan-dev/mediameta/shared/api"
	"github.com/itchan-dev/mediameta/shared/domain"
	"github.com/itchan-dev/mediameta/shared/errors"
	"github.com/itchan-dev/mediameta/shared/utils"
)

// parseIntParam parses an integer parameter from a string and returns a meaningful error
func parseIntParam(param string, paramName string) (int64, error) {
	val, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, errors.BadRequest(fmt.Sprintf("invalid %s: must be an integer", paramName))
	}
	return val, nil
}

func parseFloatParam(param string, paramName string) (float64, error) {
	val, err := strconv.ParseFloat(param, 64)
	if err != nil || !isFinite(val) {
		return 0, errors.BadRequest(fmt.Sprintf("invalid %s: must be a number", paramName))
	}
	return val, nil
}

func parseAttachmentId(param string) (domain.AttachmentId, error) {
	id, err := uuid.Parse(param)
	if err != nil {
		return uuid.Nil, errors.BadRequest("invalid attachment: must be a uuid")
	}
	return id, nil
}

// requestLocale prefers an explicit choice over the Accept-Language header
func requestLocale(r *http.Request, explicit string) domain.Locale {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return lang
	}
	if explicit != "" {
		return explicit
	}
	return r.Header.Get("Accept-Language")
}

// resolveRange fills omitted bounds with configured defaults and validates the result
func (h *Handler) resolveRange(bounds api.AspectBounds) (api.AspectRange, error) {
	rng := api.AspectRange{MinAspect: h.cfg.Public.MinAspect, MaxAspect: h.cfg.Public.MaxAspect}
	if bounds.MinAspect != nil {
		rng.MinAspect = *bounds.MinAspect
	}
	if bounds.MaxAspect != nil {
		rng.MaxAspect = *bounds.MaxAspect
	}
	if !isFinite(rng.MinAspect) || !isFinite(rng.MaxAspect) {
		return rng, errors.BadRequest("Invalid fields: aspect bounds must be finite")
	}
	if err := utils.Validate(rng); err != nil {
		return rng, err
	}
	return rng, nil
}

// rangeFromQuery reads min_aspect and max_aspect query params
func (h *Handler) rangeFromQuery(r *http.Request) (api.AspectRange, error) {
	var bounds api.AspectBounds
	for name, dst := range map[string]**float64{"min_aspect": &bounds.MinAspect, "max_aspect": &bounds.MaxAspect} {
		v := r.URL.Query().Get(name)
		if v == "" {
			continue
		}
		f, err := parseFloatParam(v, name)
		if err != nil {
			return api.AspectRange{}, err
		}
		*dst = &f
	}
	return h.resolveRange(bounds)
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
