package funpay

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/codes"
)

type OrdersOptions struct {
	// Exclude skips orders by their raw id string before anything else
	// is looked at.
	Exclude            []string
	IncludeOutstanding bool
	IncludeCompleted   bool
	IncludeRefunded    bool
}

// GetOrders scrapes the trade page and returns the orders matching the
// requested statuses. Order status only exists as a styling class on
// the page, so this is the sole way to observe it.
func (a *Account) GetOrders(ctx context.Context, opts OrdersOptions) ([]Order, error) {
	ctx, span := tracer.Start(ctx, "account:GetOrders")
	defer span.End()

	res, err := a.http.R().
		SetContext(ctx).
		SetHeader("Cookie", a.authCookie()).
		Get(ordersPath)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch orders page")
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	doc, err := parseDoc(res.Body())
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}

	if c := Classify(res.StatusCode(), doc); c != ClassOk {
		if c == ClassInvalidSession {
			a.markStale()
		}
		err := c.Err(res.StatusCode())
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	exclude := make(map[string]struct{}, len(opts.Exclude))
	for _, id := range opts.Exclude {
		exclude[id] = struct{}{}
	}

	orders, err := extractOrders(doc, orderFilter{
		exclude:            exclude,
		includeOutstanding: opts.IncludeOutstanding,
		includeCompleted:   opts.IncludeCompleted,
		includeRefunded:    opts.IncludeRefunded,
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return orders, nil
}
