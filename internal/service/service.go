// FILE: internal/service/service.go
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"archery/internal/core"
	"archery/internal/handicap"
	"archery/internal/headtohead"
	"archery/internal/round"
	"archery/internal/sightmark"
	"archery/internal/storage"
)

// Options are the archer defaults not carried on every request
type Options struct {
	EndSize int
	Golds   string // empty picks per round
}

// Service coordinates the handicap engine, head-to-head model and storage
type Service struct {
	store    *storage.Store
	engine   *handicap.Engine
	validate *validator.Validate
	opts     Options
	logger   *slog.Logger
}

// New creates a new service instance backed by store
func New(store *storage.Store, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.EndSize <= 0 {
		opts.EndSize = 6
	}
	return &Service{
		store:    store,
		engine:   handicap.New(logger),
		validate: validator.New(),
		opts:     opts,
		logger:   logger,
	}
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// Rounds lists the stored rounds
func (s *Service) Rounds() ([]round.Round, error) {
	rounds, err := s.store.ListRounds()
	if err != nil {
		return nil, s.wrap(err, "list rounds")
	}
	return rounds, nil
}

// check validates a request struct and formats the failures for display
func (s *Service) check(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &core.RequestError{Code: core.ErrInvalidRequest, Message: "invalid request", Details: err.Error(), Err: err}
	}

	var details strings.Builder
	for _, e := range verrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			details.WriteString(fmt.Sprintf("%s is required", field))
		case "oneof":
			details.WriteString(fmt.Sprintf("%s must be one of [%s]", field, e.Param()))
		case "uuid":
			details.WriteString(fmt.Sprintf("%s must be a shoot id", field))
		case "min":
			if e.Kind() == reflect.String || e.Kind() == reflect.Slice {
				details.WriteString(fmt.Sprintf("%s must have at least %s entries", field, e.Param()))
			} else {
				details.WriteString(fmt.Sprintf("%s must be at least %s", field, e.Param()))
			}
		case "max":
			if e.Kind() == reflect.String || e.Kind() == reflect.Slice {
				details.WriteString(fmt.Sprintf("%s must have at most %s entries", field, e.Param()))
			} else {
				details.WriteString(fmt.Sprintf("%s must be at most %s", field, e.Param()))
			}
		case "gtefield":
			details.WriteString(fmt.Sprintf("%s must not be below %s", field, strings.ToLower(e.Param())))
		default:
			details.WriteString(fmt.Sprintf("%s failed %s validation", field, e.Tag()))
		}
	}

	s.logger.Debug("Request rejected", slog.String("details", details.String()))
	return &core.RequestError{
		Code:    core.ErrInvalidRequest,
		Message: "validation failed",
		Details: details.String(),
		Err:     err,
	}
}

// wrap maps package errors onto request error codes
func (s *Service) wrap(err error, action string) error {
	var reqErr *core.RequestError
	if errors.As(err, &reqErr) {
		return err
	}

	var code string
	switch {
	case errors.Is(err, storage.ErrNotFound) && strings.HasPrefix(action, "round"):
		code = core.ErrRoundNotFound
	case errors.Is(err, storage.ErrNotFound):
		code = core.ErrShootNotFound
	case errors.Is(err, round.ErrInvalidGeometry):
		code = core.ErrInvalidGeometry
	case errors.Is(err, handicap.ErrInvalidInput), errors.Is(err, sightmark.ErrNotEnoughMarks):
		code = core.ErrInsufficientData
	case errors.Is(err, headtohead.ErrStructure):
		code = core.ErrMatchInconsistent
	default:
		s.logger.Error("Request failed",
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
		code = core.ErrStorage
	}

	return &core.RequestError{Code: code, Message: action + " failed", Details: err.Error(), Err: err}
}

func invalid(format string, args ...any) error {
	return &core.RequestError{
		Code:    core.ErrInvalidRequest,
		Message: "invalid request",
		Details: fmt.Sprintf(format, args...),
	}
}
