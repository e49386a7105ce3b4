package funpay

// CategoryType tells apart ordinary lot categories from in-game
// currency ("chips") categories, which live under different paths.
type CategoryType int

const (
	CategoryLot CategoryType = iota
	CategoryCurrency
)

// Category is a grouping of lots on a seller's profile page.
type Category struct {
	Id int
	// GameId stays zero until resolved through GetCategoryGameId.
	GameId      int
	Title       string
	EditLotsUrl string
	AllLotsUrl  string
	Type        CategoryType
}

// Lot is a single sellable listing owned by a category.
type Lot struct {
	Id    int
	Title string
	// Price is rounded to the nearest whole unit from the decimal
	// data-s attribute on the listing card.
	Price      int
	CategoryId int
	// Server is empty when the category has no server dimension.
	Server string
}

// OrderStatus is inferred from the styling class of an order row at
// scrape time, funpay doesn't expose it any other way.
type OrderStatus int

const (
	OrderOutstanding OrderStatus = iota
	OrderCompleted
	OrderRefunded
)

func (s OrderStatus) String() string {
	switch s {
	case OrderOutstanding:
		return "outstanding"
	case OrderCompleted:
		return "completed"
	case OrderRefunded:
		return "refunded"
	}
	return "unknown"
}

type Order struct {
	Id               string
	Title            string
	Price            float64
	CustomerId       int
	CustomerUsername string
	Status           OrderStatus
}

// UserLots is the combined read-model of one public profile page:
// every category that appears on it plus the lots grouped under them.
type UserLots struct {
	Categories []Category
	Lots       []Lot
}
