// Package handler wires request extraction, authorization, schema
// validation and exactly one persistence call into each route, replying
// with either the operation result or the first failure encountered.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apierrors "patchwork/internal/errors"
	"patchwork/internal/logging"
)

// requireParam extracts a path parameter, failing with MissingField when
// it is absent. Absence is the only failure mode reported here; shape
// errors are the validator's job.
func requireParam(c echo.Context, name string) (string, error) {
	v := c.Param(name)
	if v == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest,
			apierrors.New("Missing "+name, apierrors.CodeMissingField))
	}
	return v, nil
}

// logEntry emits the endpoint-reached log line.
func logEntry(log *zap.Logger, c echo.Context) {
	log.Info("endpoint reached", logging.Fields(c, true, logging.Actor(c), c.Request().Method+" "+c.Path())...)
}

// logOK emits the terminal success log line.
func logOK(log *zap.Logger, c echo.Context) {
	log.Info("request served", logging.Fields(c, true, logging.Actor(c), "OK 200")...)
}

// replyError logs the terminal failure and short-circuits the pipeline
// with a single error reply.
func replyError(log *zap.Logger, c echo.Context, status int, message, code string) error {
	log.Info("request failed", logging.Fields(c, false, logging.Actor(c), message)...)
	return echo.NewHTTPError(status, apierrors.New(message, code))
}

// badRequestBody is the reply for bodies that do not bind.
func badRequestBody(log *zap.Logger, c echo.Context) error {
	return replyError(log, c, http.StatusBadRequest, "invalid request body", apierrors.CodeMissingField)
}

// validationError is the reply for payloads that fail their schema.
func validationError(log *zap.Logger, c echo.Context, err error) error {
	return replyError(log, c, http.StatusBadRequest,
		"Schema Validation Error: "+err.Error(), apierrors.CodeValidationError)
}

// internalError is the reply for store faults; details stay in the log.
func internalError(log *zap.Logger, c echo.Context, err error) error {
	log.Error("store failure", logging.Fields(c, false, logging.Actor(c), err.Error())...)
	return echo.NewHTTPError(http.StatusInternalServerError,
		apierrors.New("internal server error", apierrors.CodeInternal))
}
