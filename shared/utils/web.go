package utils

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/itchan-dev/mediameta/shared/errors"
	"github.com/itchan-dev/mediameta/shared/logger"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so clients see the fields they sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	var e *errors.ErrorWithStatusCode
	if stderrors.As(err, &e) {
		http.Error(w, e.Error(), e.StatusCode)
		return
	}
	// default error is 500
	logger.Log.Error("internal error", "error", err)
	http.Error(w, "Internal error", http.StatusInternalServerError)
}

func DecodeValidate(r io.ReadCloser, body any) error {
	if err := Decode(r, body); err != nil {
		return err
	}
	return Validate(body)
}

// Validate runs struct validation and turns failures into a 400 listing the offending fields
func Validate(body any) error {
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("request validation failed", "error", err)
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Namespace())
			}
			return errors.BadRequest("Invalid fields: " + strings.Join(fields, ", "))
		}
		return errors.BadRequest("Invalid request")
	}
	return nil
}

func Decode(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("request decoding failed", "error", err)
		return errors.BadRequest("Body is invalid json")
	}
	return nil
}
