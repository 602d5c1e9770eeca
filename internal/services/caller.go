package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/mindwell-backend/internal/platform/apierr"
	"github.com/yungbote/mindwell-backend/internal/platform/ctxutil"
)

var errNoCaller = apierr.Unauthorized("unauthorized", errors.New("authentication required"))

// callerID returns the authenticated user's id from ctx.
func callerID(ctx context.Context) (uuid.UUID, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, errNoCaller
	}
	return rd.UserID, nil
}

type clock func() time.Time

func (c clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}
