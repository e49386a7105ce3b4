package funpay

// BaseUrl is the funpay host everything else hangs off of.
const BaseUrl = "https://funpay.com"

// Fixed endpoint paths, relative to the client's base url.
const (
	ordersPath    = "/orders/trade"
	offerEditPath = "/lots/offerEdit"
	saveLotPath   = "/lots/offerSave"
	usersPath     = "/users"
	raisePath     = "/lots/raise"
	runnerPath    = "/runner/"
)
