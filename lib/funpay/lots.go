package funpay

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/codes"
)

// GetLotInfo fetches the offer editor form for a lot and flattens it
// into a field map replaying the lot's current editable state. Write
// operations use this as their same-request-fresh baseline.
func (a *Account) GetLotInfo(ctx context.Context, lotId, gameId int) (FieldMap, error) {
	ctx, span := tracer.Start(ctx, "account:GetLotInfo")
	defer span.End()

	// cache-busting tag, funpay's own frontend sends one too
	tag, err := random.String(10)
	if err != nil {
		return nil, err
	}

	res, err := a.http.R().
		SetContext(ctx).
		SetHeader("Cookie", a.authCookie()).
		SetHeader("X-Requested-With", "XMLHttpRequest").
		SetQueryParams(map[string]string{
			"tag":   tag,
			"offer": strconv.Itoa(lotId),
			"node":  strconv.Itoa(gameId),
		}).
		Get(offerEditPath)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch offer editor")
		return nil, fmt.Errorf("fetch offer editor: %w", err)
	}
	// the editor comes back as a fragment without the page chrome, so
	// only the status is classifiable here
	if c := Classify(res.StatusCode(), nil); c != ClassOk {
		err := c.Err(res.StatusCode())
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	doc, err := parseDoc(res.Body())
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}
	fields, err := extractFormValues(doc)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return fields, nil
}

// GetLotFields describes the allowed domain of every field in a
// category's offer editor: select fields map to their '#'-joined
// option values instead of the currently selected one.
func (a *Account) GetLotFields(ctx context.Context, nodeId int) (FieldMap, error) {
	ctx, span := tracer.Start(ctx, "account:GetLotFields")
	defer span.End()

	res, err := a.http.R().
		SetContext(ctx).
		SetHeader("Cookie", a.authCookie()).
		SetHeader("X-Requested-With", "XMLHttpRequest").
		SetQueryParam("node", strconv.Itoa(nodeId)).
		Get(offerEditPath)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch offer editor")
		return nil, fmt.Errorf("fetch offer editor: %w", err)
	}
	if c := Classify(res.StatusCode(), nil); c != ClassOk {
		err := c.Err(res.StatusCode())
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	doc, err := parseDoc(res.Body())
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}
	fields, err := extractFormDomains(doc)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return fields, nil
}

// GetCategoryGameId resolves the game a category belongs to. Once
// resolved the value is stable for that category id; callers typically
// store it back into the Category.
func (a *Account) GetCategoryGameId(ctx context.Context, category Category) (int, error) {
	ctx, span := tracer.Start(ctx, "account:GetCategoryGameId")
	defer span.End()

	path := fmt.Sprintf("/lots/%d/trade", category.Id)
	if category.Type == CategoryCurrency {
		path = fmt.Sprintf("/chips/%d/trade", category.Id)
	}

	res, err := a.http.R().
		SetContext(ctx).
		SetHeader("Cookie", "golden_key="+a.goldenKey).
		Get(path)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch trade page")
		return 0, fmt.Errorf("fetch trade page: %w", err)
	}
	doc, err := parseDoc(res.Body())
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse html")
		return 0, err
	}

	if c := Classify(res.StatusCode(), doc); c != ClassOk {
		if c == ClassInvalidSession {
			a.markStale()
		}
		err := c.Err(res.StatusCode())
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	gameId, err := extractGameId(doc, category.Type)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	return gameId, nil
}

// ChangeLotState enables or disables a lot. The current editor form is
// re-read immediately before building the payload so every hidden
// field replays fresh.
func (a *Account) ChangeLotState(ctx context.Context, lotId, gameId int, active bool) (string, error) {
	ctx, span := tracer.Start(ctx, "account:ChangeLotState")
	defer span.End()

	if err := a.requireFresh(); err != nil {
		return "", err
	}
	baseline, err := a.GetLotInfo(ctx, lotId, gameId)
	if err != nil {
		return "", err
	}
	return a.saveLot(ctx, buildLotStatePayload(baseline, active))
}

func (a *Account) ChangeLotPrice(ctx context.Context, lotId, gameId int, price float64) (string, error) {
	ctx, span := tracer.Start(ctx, "account:ChangeLotPrice")
	defer span.End()

	if err := a.requireFresh(); err != nil {
		return "", err
	}
	baseline, err := a.GetLotInfo(ctx, lotId, gameId)
	if err != nil {
		return "", err
	}
	return a.saveLot(ctx, buildLotPricePayload(baseline, price))
}

// CreateLot submits a caller-built field map as a new lot. There is no
// baseline replay; the caller owns the whole payload and it is
// validated against the declared lot id before any network call.
func (a *Account) CreateLot(ctx context.Context, lotId int, fields FieldMap) (string, error) {
	ctx, span := tracer.Start(ctx, "account:CreateLot")
	defer span.End()

	if err := a.requireFresh(); err != nil {
		return "", err
	}
	if err := validateCreateFields(lotId, fields); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return a.saveLot(ctx, fields)
}

func (a *Account) saveLot(ctx context.Context, fields FieldMap) (string, error) {
	res, err := a.http.R().
		SetContext(ctx).
		SetHeader("Cookie", a.authCookie()).
		SetHeader("X-Requested-With", "XMLHttpRequest").
		SetFormData(fields).
		Post(saveLotPath)
	if err != nil {
		return "", fmt.Errorf("save lot: %w", err)
	}
	if c := Classify(res.StatusCode(), nil); c != ClassOk {
		return "", c.Err(res.StatusCode())
	}
	return res.String(), nil
}

// MessageResult is the partially-typed runner response envelope. The
// remote shape varies, so the known fields are optional and Raw keeps
// the whole payload as an escape hatch.
type MessageResult struct {
	Response json.RawMessage `json:"response"`
	Objects  json.RawMessage `json:"objects"`
	Error    json.RawMessage `json:"error"`
	Raw      []byte          `json:"-"`
}

// SendMessage posts a chat message through the runner endpoint.
func (a *Account) SendMessage(ctx context.Context, chatId int, message string) (MessageResult, error) {
	ctx, span := tracer.Start(ctx, "account:SendMessage")
	defer span.End()

	if err := a.requireFresh(); err != nil {
		return MessageResult{}, err
	}

	body, err := buildMessageEnvelope(chatId, message, a.Snapshot().CsrfToken)
	if err != nil {
		return MessageResult{}, err
	}

	res, err := a.http.R().
		SetContext(ctx).
		SetHeader("Cookie", a.authCookie()).
		SetHeader("X-Requested-With", "XMLHttpRequest").
		SetBody(body).
		Post(runnerPath)
	if err != nil {
		span.SetStatus(codes.Error, "failed to post message")
		return MessageResult{}, fmt.Errorf("send message: %w", err)
	}
	if c := Classify(res.StatusCode(), nil); c != ClassOk {
		err := c.Err(res.StatusCode())
		span.SetStatus(codes.Error, err.Error())
		return MessageResult{}, err
	}

	result := MessageResult{Raw: res.Body()}
	if err := json.Unmarshal(res.Body(), &result); err != nil {
		span.SetStatus(codes.Error, "failed to decode runner response")
		return MessageResult{}, fmt.Errorf("decode runner response: %w", err)
	}
	return result, nil
}

// RequestLotsRaise bumps a category's lots to the top of its listing.
// It returns the raw response text together with the parsed wait time
// in seconds until the next raise is allowed.
func (a *Account) RequestLotsRaise(ctx context.Context, category Category) (string, int, error) {
	ctx, span := tracer.Start(ctx, "account:RequestLotsRaise")
	defer span.End()

	if err := a.requireFresh(); err != nil {
		return "", 0, err
	}

	body, err := buildRaiseEnvelope(category.GameId, category.Id)
	if err != nil {
		return "", 0, err
	}

	// the raise endpoint answers in the locale the cookie asks for;
	// the wait-time rules are written against the ru phrasing
	res, err := a.http.R().
		SetContext(ctx).
		SetHeader("Cookie", "locale=ru; golden_key="+a.goldenKey).
		SetHeader("X-Requested-With", "XMLHttpRequest").
		SetBody(body).
		Post(raisePath)
	if err != nil {
		span.SetStatus(codes.Error, "failed to post raise request")
		return "", 0, fmt.Errorf("raise lots: %w", err)
	}
	if c := Classify(res.StatusCode(), nil); c != ClassOk {
		err := c.Err(res.StatusCode())
		span.SetStatus(codes.Error, err.Error())
		return "", 0, err
	}

	text := res.String()
	return text, WaitTimeFromRaiseResponse(text), nil
}
