package handlers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/camilogv/billing-gateway/internal/services"
	xhttp "github.com/camilogv/billing-gateway/pkg/http"
	"github.com/camilogv/billing-gateway/pkg/logger"
)

// Every response is the JSON envelope the web UI consumes:
// {success: bool, data|error, ...extras}.

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	body := ctx.PostBody()
	return json.Unmarshal(body, dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeData(ctx *xhttp.RequestCtx, status int, data any) {
	writeJSON(ctx, status, map[string]any{"success": true, "data": data})
}

func writeList(ctx *xhttp.RequestCtx, data any, count int) {
	writeJSON(ctx, xhttp.StatusOK, map[string]any{"success": true, "data": data, "count": count})
}

func writeMessage(ctx *xhttp.RequestCtx, status int, message string, data any) {
	body := map[string]any{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	writeJSON(ctx, status, body)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]any{"success": false, "error": msg})
}

func writeErrorDetails(ctx *xhttp.RequestCtx, status int, msg, details string) {
	writeJSON(ctx, status, map[string]any{"success": false, "error": msg, "details": details})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses:
// validation and conflict render 400, a missing primary resource 404, a
// missing referenced foreign entity 400, anything else 500 with detail.
func writeServiceError(ctx *xhttp.RequestCtx, err error, failMsg string) {
	var ve *services.ValidationError
	var nfe *services.NotFoundError
	var ce *services.ConflictError

	switch {
	case errors.As(err, &ve):
		writeError(ctx, xhttp.StatusBadRequest, ve.Error())
	case errors.As(err, &nfe):
		if nfe.Foreign() {
			writeError(ctx, xhttp.StatusBadRequest, nfe.Error())
		} else {
			writeError(ctx, xhttp.StatusNotFound, nfe.Error())
		}
	case errors.As(err, &ce):
		writeError(ctx, xhttp.StatusBadRequest, ce.Error())
	default:
		logger.Error(failMsg, "error", err)
		writeErrorDetails(ctx, xhttp.StatusInternalServerError, failMsg, err.Error())
	}
}

func param(ctx *xhttp.RequestCtx, name string) string {
	if v, ok := ctx.UserValue(name).(string); ok {
		return v
	}
	return ""
}

func parseTime(s string) (time.Time, error) {
	// Accept RFC3339, the datetime-local form value, or YYYY-MM-DD
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
