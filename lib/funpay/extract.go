package funpay

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"

	"funpay-client/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// One extraction function per entity/field group so a funpay markup
// change localizes to a single function and a single test.

type accountInfo struct {
	userId       int
	username     string
	csrfToken    string
	balance      float64
	currency     string
	activeOrders int
}

func extractAccountInfo(doc *goquery.Document) (accountInfo, error) {
	var info accountInfo

	nameNode := doc.Find(authMarkerSelector).First()
	if nameNode.Length() == 0 {
		return info, ExtractionError{Field: "username"}
	}
	info.username = htmlutil.CleanText(nameNode.Text())

	appDataJson, ok := doc.Find("body").Attr("data-app-data")
	if !ok {
		return info, ExtractionError{Field: "data-app-data"}
	}
	var appData struct {
		UserId    int    `json:"userId"`
		CsrfToken string `json:"csrf-token"`
	}
	if err := json.Unmarshal([]byte(appDataJson), &appData); err != nil {
		return info, ExtractionError{Field: "data-app-data"}
	}
	if appData.UserId == 0 {
		return info, ExtractionError{Field: "userId"}
	}
	if appData.CsrfToken == "" {
		return info, ExtractionError{Field: "csrf-token"}
	}
	info.userId = appData.UserId
	info.csrfToken = appData.CsrfToken

	// both badges are optional: a fresh account simply doesn't have them
	tradeBadge := doc.Find("span.badge.badge-trade").First()
	if tradeBadge.Length() > 0 {
		activeOrders, err := strconv.Atoi(htmlutil.CleanText(tradeBadge.Text()))
		if err != nil {
			return info, ExtractionError{Field: "active orders"}
		}
		info.activeOrders = activeOrders
	}

	balanceBadge := doc.Find("span.badge.badge-balance").First()
	if balanceBadge.Length() > 0 {
		parts := strings.SplitN(htmlutil.CleanText(balanceBadge.Text()), " ", 2)
		balance, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return info, ExtractionError{Field: "balance"}
		}
		info.balance = balance
		if len(parts) > 1 {
			info.currency = parts[1]
		}
	}

	return info, nil
}

type orderFilter struct {
	exclude            map[string]struct{}
	includeOutstanding bool
	includeCompleted   bool
	includeRefunded    bool
}

func extractOrders(doc *goquery.Document, filter orderFilter) ([]Order, error) {
	orders := []Order{}
	var extractErr error

	doc.Find("a.tc-item").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		class := row.AttrOr("class", "")

		var status OrderStatus
		switch {
		case strings.Contains(class, "warning"):
			if !filter.includeRefunded {
				return true
			}
			status = OrderRefunded
		case strings.Contains(class, "info"):
			if !filter.includeOutstanding {
				return true
			}
			status = OrderOutstanding
		default:
			if !filter.includeCompleted {
				return true
			}
			status = OrderCompleted
		}

		id := htmlutil.CleanText(row.Find("div.tc-order").First().Text())
		if id == "" {
			extractErr = ExtractionError{Field: "order id"}
			return false
		}
		if _, excluded := filter.exclude[id]; excluded {
			return true
		}

		title := htmlutil.CleanText(row.Find("div.order-desc div").First().Text())

		priceText := htmlutil.CleanText(row.Find("div.tc-price").First().Text())
		priceFields := strings.Fields(priceText)
		if len(priceFields) == 0 {
			extractErr = ExtractionError{Field: "order price"}
			return false
		}
		price, err := strconv.ParseFloat(priceFields[0], 64)
		if err != nil {
			extractErr = ExtractionError{Field: "order price"}
			return false
		}

		customer := row.Find("div.media-user-name span").First()
		customerHref, ok := customer.Attr("data-href")
		if !ok {
			extractErr = ExtractionError{Field: "customer id"}
			return false
		}
		customerId, err := strconv.Atoi(trailingPathSegment(customerHref))
		if err != nil {
			extractErr = ExtractionError{Field: "customer id"}
			return false
		}

		orders = append(orders, Order{
			Id:               id,
			Title:            title,
			Price:            price,
			CustomerId:       customerId,
			CustomerUsername: htmlutil.CleanText(customer.Text()),
			Status:           status,
		})
		return true
	})
	if extractErr != nil {
		return nil, extractErr
	}

	return orders, nil
}

// sentinel returned for select fields with no selected option, so the
// caller can tell "no choice made" apart from an empty value
const unknownFieldValue = "UNKNOWN"

// extractFormValues flattens the offer editor form into a field map
// replaying the lot's current editable state, hidden inputs included.
func extractFormValues(doc *goquery.Document) (FieldMap, error) {
	form := doc.Find("form.form-offer-editor").First()
	if form.Length() == 0 {
		return nil, ExtractionError{Field: "offer editor form"}
	}

	fields := FieldMap{}
	form.Find("input").Each(func(_ int, input *goquery.Selection) {
		name, ok := input.Attr("name")
		if !ok {
			return
		}
		fields[name] = input.AttrOr("value", "")
	})
	form.Find("textarea").Each(func(_ int, area *goquery.Selection) {
		name, ok := area.Attr("name")
		if !ok {
			return
		}
		fields[name] = area.Text()
	})
	form.Find("select").Each(func(_ int, sel *goquery.Selection) {
		name, ok := sel.Attr("name")
		if !ok {
			return
		}
		value, ok := sel.Find("option[selected]").First().Attr("value")
		if !ok {
			value = unknownFieldValue
		}
		fields[name] = value
	})

	return fields, nil
}

// extractFormDomains is the enumeration counterpart of
// extractFormValues: instead of the current value, each select field
// maps to every concrete option value it allows, '#'-delimited.
// Options without a value attribute are placeholders and are skipped.
func extractFormDomains(doc *goquery.Document) (FieldMap, error) {
	form := doc.Find("form.form-offer-editor").First()
	if form.Length() == 0 {
		return nil, ExtractionError{Field: "offer editor form"}
	}

	fields := FieldMap{}
	form.Find("input").Each(func(_ int, input *goquery.Selection) {
		name, ok := input.Attr("name")
		if !ok {
			return
		}
		fields[name] = input.AttrOr("value", "")
	})
	form.Find("textarea").Each(func(_ int, area *goquery.Selection) {
		name, ok := area.Attr("name")
		if !ok {
			return
		}
		fields[name] = area.Text()
	})
	form.Find("select").Each(func(_ int, sel *goquery.Selection) {
		name, ok := sel.Attr("name")
		if !ok {
			return
		}
		var domain strings.Builder
		sel.Find("option").Each(func(_ int, option *goquery.Selection) {
			value, ok := option.Attr("value")
			if !ok {
				return
			}
			domain.WriteString(value)
			domain.WriteString("#")
		})
		fields[name] = domain.String()
	})

	return fields, nil
}

func extractGameId(doc *goquery.Document, categoryType CategoryType) (int, error) {
	var raw string
	var ok bool
	if categoryType == CategoryCurrency {
		raw, ok = doc.Find("input[name=game]").First().Attr("value")
	} else {
		raw, ok = doc.Find("div.col-sm-6 button").First().Attr("data-game")
	}
	if !ok {
		return 0, ExtractionError{Field: "game id"}
	}
	gameId, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ExtractionError{Field: "game id"}
	}
	return gameId, nil
}

func extractUserLots(doc *goquery.Document, includeCurrency bool) (UserLots, error) {
	result := UserLots{
		Categories: []Category{},
		Lots:       []Lot{},
	}
	var extractErr error

	doc.Find("div.offer").EachWithBreak(func(_ int, offer *goquery.Selection) bool {
		link := offer.Find("div.offer-list-title-container div.offer-list-title a").First()
		href, ok := link.Attr("href")
		if !ok {
			extractErr = ExtractionError{Field: "category link"}
			return false
		}

		categoryType := CategoryLot
		if strings.Contains(href, "chips") {
			categoryType = CategoryCurrency
		}
		if categoryType == CategoryCurrency && !includeCurrency {
			return true
		}

		categoryId, err := strconv.Atoi(trailingPathSegment(href))
		if err != nil {
			extractErr = ExtractionError{Field: "category id"}
			return false
		}

		result.Categories = append(result.Categories, Category{
			Id:          categoryId,
			Title:       htmlutil.CleanText(link.Text()),
			EditLotsUrl: href + "trade",
			AllLotsUrl:  href,
			Type:        categoryType,
		})

		offer.Find("div.offer-tc-container a").EachWithBreak(func(_ int, card *goquery.Selection) bool {
			lot, err := extractLotCard(card, categoryId)
			if err != nil {
				extractErr = err
				return false
			}
			result.Lots = append(result.Lots, lot)
			return true
		})
		return extractErr == nil
	})
	if extractErr != nil {
		return UserLots{}, extractErr
	}

	return result, nil
}

func extractLotCard(card *goquery.Selection, categoryId int) (Lot, error) {
	href, ok := card.Attr("href")
	if !ok {
		return Lot{}, ExtractionError{Field: "lot link"}
	}
	lotUrl, err := url.Parse(href)
	if err != nil {
		return Lot{}, ExtractionError{Field: "lot link"}
	}
	lotId, err := strconv.Atoi(lotUrl.Query().Get("id"))
	if err != nil {
		return Lot{}, ExtractionError{Field: "lot id"}
	}

	titleNode := card.Find("div.tc-desc-text").First()
	if titleNode.Length() == 0 {
		return Lot{}, ExtractionError{Field: "lot title"}
	}

	rawPrice, err := strconv.ParseFloat(
		card.Find("div.tc-price").First().AttrOr("data-s", "0"), 64)
	if err != nil {
		return Lot{}, ExtractionError{Field: "lot price"}
	}

	return Lot{
		Id:         lotId,
		Title:      htmlutil.CleanText(titleNode.Text()),
		Price:      int(math.Round(rawPrice)),
		CategoryId: categoryId,
		Server:     htmlutil.CleanText(card.Find("div.tc-server").First().Text()),
	}, nil
}

func trailingPathSegment(link string) string {
	trimmed := strings.TrimRight(link, "/")
	idx := strings.LastIndex(trimmed, "/")
	return trimmed[idx+1:]
}
