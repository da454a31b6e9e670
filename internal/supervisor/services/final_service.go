// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// NamedService is a suture.Service that names itself in logs.
type NamedService interface {
	suture.Service
	fmt.Stringer
}

// FinalService runs a service that cannot be started twice, such as a
// watermill router. A failure is logged and reported to the supervisor
// as suture.ErrDoNotRestart.
type FinalService struct {
	inner  NamedService
	logger zerolog.Logger
}

// NewFinalService wraps inner.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewFinalService(inner NamedService, logger zerolog.Logger) *FinalService {
	return &FinalService{
		inner:  inner,
		logger: logger.With().Str("service", inner.String()).Logger(),
	}
}

// Serve implements suture.Service.
func (f *FinalService) Serve(ctx context.Context) error {
	err := f.inner.Serve(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil && !errors.Is(err, suture.ErrDoNotRestart) {
		f.logger.Error().Err(err).Msg("service stopped and will not be restarted")
	}
	return suture.ErrDoNotRestart
}

// String returns the wrapped service name.
func (f *FinalService) String() string {
	return f.inner.String()
}
