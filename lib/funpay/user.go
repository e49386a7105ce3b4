package funpay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/codes"
)

type UserLotsOptions struct {
	// IncludeCurrency also returns in-game currency (chips) categories.
	IncludeCurrency bool
	// BaseUrl defaults to the funpay host.
	BaseUrl string
	// Timeout defaults to DefaultTimeout.
	Timeout time.Duration
}

// GetUserLots walks a user's public profile page and groups the lot
// cards under their owning categories. The page is public, no session
// is needed.
func GetUserLots(ctx context.Context, userId int, opts UserLotsOptions) (UserLots, error) {
	ctx, span := tracer.Start(ctx, "GetUserLots")
	defer span.End()

	if opts.BaseUrl == "" {
		opts.BaseUrl = BaseUrl
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	client, err := newHttpClient(opts.BaseUrl, opts.Timeout)
	if err != nil {
		return UserLots{}, err
	}

	res, err := client.R().
		SetContext(ctx).
		Get(fmt.Sprintf("%s/%d/", usersPath, userId))
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch profile page")
		return UserLots{}, fmt.Errorf("fetch profile page: %w", err)
	}
	// profiles render for anonymous visitors too, so the session
	// marker doesn't apply here
	if c := Classify(res.StatusCode(), nil); c != ClassOk {
		err := c.Err(res.StatusCode())
		span.SetStatus(codes.Error, err.Error())
		return UserLots{}, err
	}

	doc, err := parseDoc(res.Body())
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse html")
		return UserLots{}, err
	}

	lots, err := extractUserLots(doc, opts.IncludeCurrency)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return UserLots{}, err
	}

	slog.DebugContext(
		ctx, "scraped user lots",
		"user_id", userId,
		"categories", len(lots.Categories),
		"lots", len(lots.Lots),
	)
	return lots, nil
}
