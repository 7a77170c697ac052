package usecase

import (
	"context"
	"time"

	"medical-record/internal/domain/entity"
	"medical-record/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// actorOf returns the user id recorded in audit entries.
func actorOf(caller *entity.Caller) *uuid.UUID {
	if caller == nil {
		return nil
	}
	id := caller.UserID
	return &id
}

func parseDate(s string) (time.Time, error) {
	t, err := entity.ParseDate(s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// invalidateReports runs after commit. A cache failure only leaves stale
// entries until their TTL expires, so it is logged and not returned.
func invalidateReports(ctx context.Context, cache service.ReportCache, log *logrus.Logger) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateAll(ctx); err != nil {
		log.Warnf("Failed to invalidate report cache: %+v", err)
	}
}
