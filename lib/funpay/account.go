package funpay

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("funpay")

// Account bundles the long-lived golden_key with the session state
// derived from the authenticated homepage: the rotating csrf token,
// the PHPSESSID cookie and the cached profile fields.
//
// The derived state is guarded by a mutex: readers get a consistent
// snapshot and two racing refreshes can't interleave half-updated
// fields. A refresh is never implicit; once any call classifies as
// an invalid session the account is marked stale and every write
// fails with ErrInvalidSession until the caller refreshes it.
type Account struct {
	goldenKey string
	http      *resty.Client

	mu           sync.RWMutex
	id           int
	username     string
	csrfToken    string
	sessionId    string
	balance      float64
	currency     string
	activeOrders int
	derivedAt    time.Time
	stale        bool
}

type AccountOptions struct {
	// GoldenKey is the long-lived token cookie identifying the account.
	GoldenKey string
	// BaseUrl defaults to the funpay host.
	BaseUrl string
	// Timeout defaults to DefaultTimeout.
	Timeout time.Duration
}

// Snapshot is a consistent copy of the account's derived state.
type Snapshot struct {
	Id           int
	Username     string
	CsrfToken    string
	SessionId    string
	Balance      float64
	Currency     string
	ActiveOrders int
	DerivedAt    time.Time
	Stale        bool
}

// GetAccount derives a session from the golden_key by fetching the
// authenticated homepage.
func GetAccount(ctx context.Context, opts AccountOptions) (*Account, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = BaseUrl
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	client, err := newHttpClient(opts.BaseUrl, opts.Timeout)
	if err != nil {
		return nil, err
	}

	account := &Account{
		goldenKey: opts.GoldenKey,
		http:      client,
	}
	if err := account.Refresh(ctx); err != nil {
		return nil, err
	}
	return account, nil
}

// Refresh re-derives the csrf token, session cookie and profile fields
// from the homepage. It is the only way derived state ever changes.
func (a *Account) Refresh(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "account:Refresh")
	defer span.End()

	res, err := a.http.R().
		SetContext(ctx).
		SetHeader("Cookie", "golden_key="+a.goldenKey).
		Get("/")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch homepage")
		return fmt.Errorf("fetch homepage: %w", err)
	}
	doc, err := parseDoc(res.Body())
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse html")
		return err
	}

	if c := Classify(res.StatusCode(), doc); c != ClassOk {
		if c == ClassInvalidSession {
			a.markStale()
		}
		err := c.Err(res.StatusCode())
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	info, err := extractAccountInfo(doc)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	sessionId := ""
	for _, cookie := range res.Cookies() {
		if cookie.Name == "PHPSESSID" {
			sessionId = cookie.Value
			break
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.id = info.userId
	a.username = info.username
	a.csrfToken = info.csrfToken
	a.sessionId = sessionId
	a.balance = info.balance
	a.currency = info.currency
	a.activeOrders = info.activeOrders
	a.derivedAt = time.Now()
	a.stale = false
	return nil
}

func (a *Account) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return Snapshot{
		Id:           a.id,
		Username:     a.username,
		CsrfToken:    a.csrfToken,
		SessionId:    a.sessionId,
		Balance:      a.balance,
		Currency:     a.currency,
		ActiveOrders: a.activeOrders,
		DerivedAt:    a.derivedAt,
		Stale:        a.stale,
	}
}

func (a *Account) Stale() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stale
}

func (a *Account) markStale() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stale = true
}

// requireFresh gates write operations: a stale session must be
// re-derived by the caller before it is reused.
func (a *Account) requireFresh() error {
	if a.Stale() {
		return ErrInvalidSession
	}
	return nil
}

// authCookie builds the Cookie header for authenticated calls:
// golden_key alone when no session cookie was issued yet, otherwise
// both.
func (a *Account) authCookie() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.sessionId == "" {
		return "golden_key=" + a.goldenKey
	}
	return "golden_key=" + a.goldenKey + "; PHPSESSID=" + a.sessionId
}
