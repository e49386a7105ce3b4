package funpay

import (
	"bytes"
	"testing"

	_ "embed"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//go:embed profile_page_test.html
var profilePageTest []byte

//go:embed orders_page_test.html
var ordersPageTest []byte

//go:embed offer_edit_test.html
var offerEditPageTest []byte

//go:embed user_lots_test.html
var userLotsPageTest []byte

func docFromBytes(t testing.TB, page []byte) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(page))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestExtractAccountInfo(t *testing.T) {
	doc := docFromBytes(t, profilePageTest)

	info, err := extractAccountInfo(doc)
	require.NoError(t, err)
	require.Equal(t, 1830294, info.userId)
	require.Equal(t, "SellerOne", info.username)
	require.Equal(t, "k9mJx2PqWv7dRtYb", info.csrfToken)
	require.Equal(t, 3, info.activeOrders)
	require.Equal(t, 1500.5, info.balance)
	require.Equal(t, "RUB", info.currency)
}

func TestExtractAccountInfoMissingName(t *testing.T) {
	// a page rendered for an anonymous visitor has no profile node and
	// must never produce a zeroed account
	doc := docFromBytes(t, userLotsPageTest)

	_, err := extractAccountInfo(doc)
	var extractionErr ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	require.Equal(t, "username", extractionErr.Field)
}

func TestExtractAccountInfoMissingAppData(t *testing.T) {
	doc := docFromString(t, `<body><div class="user-link-name">SellerOne</div></body>`)

	_, err := extractAccountInfo(doc)
	var extractionErr ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	require.Equal(t, "data-app-data", extractionErr.Field)
}

func TestExtractAccountInfoOptionalBadges(t *testing.T) {
	doc := docFromString(t, `<body data-app-data='{"userId":77,"csrf-token":"tok"}'>
		<div class="user-link-name">Newcomer</div>
	</body>`)

	info, err := extractAccountInfo(doc)
	require.NoError(t, err)
	require.Equal(t, 0, info.activeOrders)
	require.Equal(t, 0.0, info.balance)
	require.Equal(t, "", info.currency)
}

func TestExtractOrdersFilters(t *testing.T) {
	doc := docFromBytes(t, ordersPageTest)

	refundedOnly, err := extractOrders(doc, orderFilter{includeRefunded: true})
	require.NoError(t, err)
	require.Len(t, refundedOnly, 1)
	require.Equal(t, "#ABCD1234", refundedOnly[0].Id)
	require.Equal(t, OrderRefunded, refundedOnly[0].Status)

	all, err := extractOrders(doc, orderFilter{
		includeOutstanding: true,
		includeCompleted:   true,
		includeRefunded:    true,
	})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, OrderOutstanding, all[1].Status)
	require.Equal(t, OrderCompleted, all[2].Status)
	require.Equal(t, 999.99, all[0].Price)
	require.Equal(t, 630690, all[0].CustomerId)
	require.Equal(t, "buyer_one", all[0].CustomerUsername)
	require.Equal(t, "Gold, 1000 units", all[0].Title)
}

func TestExtractOrdersExclusion(t *testing.T) {
	doc := docFromBytes(t, ordersPageTest)

	orders, err := extractOrders(doc, orderFilter{
		exclude:         map[string]struct{}{"#ABCD1234": {}},
		includeRefunded: true,
	})
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestExtractFormValues(t *testing.T) {
	doc := docFromBytes(t, offerEditPageTest)

	fields, err := extractFormValues(doc)
	require.NoError(t, err)

	expected := FieldMap{
		"csrf_token":          "k9mJx2PqWv7dRtYb",
		"form_created_at":     "1717171717",
		"node_id":             "5",
		"offer_id":            "111222",
		"price":               "10",
		"active":              "on",
		"amount":              "1000",
		"server_id":           "4002",
		"side_id":             "UNKNOWN",
		"fields[summary][ru]": "Gold, fast delivery",
	}
	if diff := cmp.Diff(expected, fields); diff != "" {
		t.Fatal(diff)
	}
}

func TestExtractFormValuesMissingForm(t *testing.T) {
	doc := docFromString(t, `<body><div class="content"></div></body>`)

	_, err := extractFormValues(doc)
	var extractionErr ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	require.Equal(t, "offer editor form", extractionErr.Field)
}

func TestExtractFormDomains(t *testing.T) {
	doc := docFromBytes(t, offerEditPageTest)

	fields, err := extractFormDomains(doc)
	require.NoError(t, err)

	// placeholder options without a value attribute stay out of the
	// domain string
	require.Equal(t, "4001#4002#4003#", fields["server_id"])
	require.Equal(t, "1#2#", fields["side_id"])
	require.Equal(t, "5", fields["node_id"])
}

func TestExtractGameId(t *testing.T) {
	lotPage := docFromString(t, `<body>
		<div class="user-link-name">SellerOne</div>
		<div class="col-sm-6"><button data-game="41">Показать</button></div>
	</body>`)
	gameId, err := extractGameId(lotPage, CategoryLot)
	require.NoError(t, err)
	require.Equal(t, 41, gameId)

	currencyPage := docFromString(t, `<body>
		<div class="user-link-name">SellerOne</div>
		<form><input name="game" value="19"></form>
	</body>`)
	gameId, err = extractGameId(currencyPage, CategoryCurrency)
	require.NoError(t, err)
	require.Equal(t, 19, gameId)

	_, err = extractGameId(docFromString(t, `<body></body>`), CategoryLot)
	var extractionErr ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	require.Equal(t, "game id", extractionErr.Field)
}

func TestExtractUserLots(t *testing.T) {
	doc := docFromBytes(t, userLotsPageTest)

	lots, err := extractUserLots(doc, true)
	require.NoError(t, err)

	expected := UserLots{
		Categories: []Category{
			{
				Id:          210,
				Title:       "World of Warcraft Gold",
				EditLotsUrl: "https://funpay.com/lots/210/trade",
				AllLotsUrl:  "https://funpay.com/lots/210/",
				Type:        CategoryLot,
			},
			{
				Id:          81,
				Title:       "Albion Silver",
				EditLotsUrl: "https://funpay.com/chips/81/trade",
				AllLotsUrl:  "https://funpay.com/chips/81/",
				Type:        CategoryCurrency,
			},
		},
		Lots: []Lot{
			{Id: 111222, Title: "Gold, fast delivery", Price: 1500, CategoryId: 210, Server: "Russia"},
			{Id: 333444, Title: "Gold, any server", Price: 750, CategoryId: 210, Server: "Europe"},
			{Id: 555666, Title: "Silver", Price: 121, CategoryId: 81},
		},
	}
	if diff := cmp.Diff(expected, lots); diff != "" {
		t.Fatal(diff)
	}
}

func TestExtractUserLotsSkipsCurrency(t *testing.T) {
	doc := docFromBytes(t, userLotsPageTest)

	lots, err := extractUserLots(doc, false)
	require.NoError(t, err)
	require.Len(t, lots.Categories, 1)
	require.Equal(t, CategoryLot, lots.Categories[0].Type)
	require.Len(t, lots.Lots, 2)
}

func TestExtractUserLotsEmptyProfile(t *testing.T) {
	doc := docFromString(t, `<body><div class="content"></div></body>`)

	lots, err := extractUserLots(doc, true)
	require.NoError(t, err)
	require.Empty(t, lots.Categories)
	require.Empty(t, lots.Lots)
}
