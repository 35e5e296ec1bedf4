package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrymomot/mpjsonapi/core"
	"github.com/dmitrymomot/mpjsonapi/jsonapi"
	"github.com/dmitrymomot/mpjsonapi/pkg/logger"
	"github.com/dmitrymomot/mpjsonapi/pkg/requestid"
	"github.com/dmitrymomot/mpjsonapi/pkg/validator"
)

// ErrorInfo contains classified error information.
type ErrorInfo struct {
	StatusCode int
	Objects    []jsonapi.ErrorObject
	LogLevel   slog.Level
}

func isClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

func determineLogLevel(statusCode int) slog.Level {
	if isClientError(statusCode) {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// pointerFor maps a validation field to a JSON pointer.
// Fields that already look like pointers are kept.
func pointerFor(field string) string {
	if strings.HasPrefix(field, "/") {
		return field
	}
	return jsonapi.AttributePointer(field)
}

// ClassifyError converts err into a status code and JSON:API error objects.
// Validation errors win over HTTP errors found in the same chain.
func ClassifyError(err error) ErrorInfo {
	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		status := http.StatusUnprocessableEntity
		objects := make([]jsonapi.ErrorObject, 0, len(verrs))
		for _, ve := range verrs {
			objects = append(objects, jsonapi.ErrorObject{
				Status: strconv.Itoa(status),
				Code:   ve.Code,
				Title:  http.StatusText(status),
				Detail: ve.Message,
				Source: &jsonapi.ErrorSource{Pointer: pointerFor(ve.Field)},
			})
		}
		return ErrorInfo{StatusCode: status, Objects: objects, LogLevel: determineLogLevel(status)}
	}

	status := http.StatusInternalServerError
	object := jsonapi.ErrorObject{
		Code:   core.ErrInternalServerError.Key,
		Detail: "An error occurred processing your request",
	}

	var httpErr core.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		object.Code = httpErr.Key
		if isClientError(status) {
			// The wrapped message names the offending part or header.
			object.Detail = err.Error()
		} else {
			object.Detail = httpErr.Error()
		}
	}

	object.Status = strconv.Itoa(status)
	object.Title = http.StatusText(status)

	return ErrorInfo{
		StatusCode: status,
		Objects:    []jsonapi.ErrorObject{object},
		LogLevel:   determineLogLevel(status),
	}
}

func logError(log *slog.Logger, r *http.Request, err error, info ErrorInfo) {
	log.LogAttrs(r.Context(), info.LogLevel, "request error",
		logger.RequestID(requestid.FromContext(r.Context())),
		logger.Error(err),
		logger.StatusCode(info.StatusCode),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		logger.Component("error_handler"),
	)
}

// WriteError renders err as a JSON:API error document.
func WriteError(w http.ResponseWriter, info ErrorInfo) error {
	w.Header().Set("Content-Type", jsonapi.MediaType)
	w.WriteHeader(info.StatusCode)
	return json.NewEncoder(w).Encode(jsonapi.ErrorDocument{Errors: info.Objects})
}

// NewErrorHandler creates the error handler rendering JSON:API error documents.
// Client errors are logged at warn level, everything else at error level.
// Configure it once in main.go and pass it to every route.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		info := ClassifyError(err)
		if id := ctx.RequestID(); id != "" {
			for i := range info.Objects {
				info.Objects[i].ID = id
			}
		}
		logError(log, r, err, info)

		if writeErr := WriteError(ctx.ResponseWriter(), info); writeErr != nil {
			log.LogAttrs(r.Context(), slog.LevelError, "failed to write error document",
				logger.RequestID(ctx.RequestID()),
				logger.Error(writeErr),
				logger.Event("render_error_document"),
			)
		}
	}
}
