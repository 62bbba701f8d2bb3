package model

// ServiceKind classifies a service attached to a bundle.
type ServiceKind string

// Service kinds.
const (
	ServiceInstallation ServiceKind = "installation"
	ServiceDataTransfer ServiceKind = "data-transfer"
	ServiceProtection   ServiceKind = "protection"
	ServiceRecycling    ServiceKind = "recycling"
	ServiceSupport      ServiceKind = "support"
	ServiceMembership   ServiceKind = "membership"
)

// FulfillmentKind is a way a shopper can receive a bundle.
type FulfillmentKind string

// Fulfillment kinds.
const (
	FulfillmentPickup       FulfillmentKind = "pickup"
	FulfillmentDelivery     FulfillmentKind = "delivery"
	FulfillmentInstallation FulfillmentKind = "installation"
)

// Product is a single piece of hardware or software in a bundle or search result.
type Product struct {
	ID          string  `json:"id,omitempty" yaml:"id,omitempty"`
	SKU         string  `json:"sku" yaml:"sku"`
	Name        string  `json:"name" yaml:"name"`
	Category    string  `json:"category" yaml:"category"`
	Brand       string  `json:"brand,omitempty" yaml:"brand,omitempty"`
	Image       string  `json:"image,omitempty" yaml:"image,omitempty"`
	Price       float64 `json:"price" yaml:"price"`
	Rating      float64 `json:"rating,omitempty" yaml:"rating,omitempty"`
	ReviewCount int     `json:"reviewCount,omitempty" yaml:"review_count,omitempty"`
	InStock     bool    `json:"inStock" yaml:"in_stock"`
}

// Identifier returns the product ID, or its SKU when no ID was assigned.
func (p Product) Identifier() string {
	if p.ID != "" {
		return p.ID
	}
	return p.SKU
}

// Service is a non-hardware line item: installation, protection, membership and so on.
type Service struct {
	ID          string      `json:"id" yaml:"id"`
	Kind        ServiceKind `json:"type" yaml:"type"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Price       float64     `json:"price" yaml:"price"`
	Monthly     bool        `json:"isMonthly,omitempty" yaml:"monthly,omitempty"`
	Annual      bool        `json:"isAnnual,omitempty" yaml:"annual,omitempty"`
}

// FulfillmentOption describes pickup, delivery or installation for a bundle.
type FulfillmentOption struct {
	Kind      FulfillmentKind `json:"type" yaml:"type"`
	Timing    string          `json:"timing,omitempty" yaml:"timing,omitempty"`
	Location  string          `json:"location,omitempty" yaml:"location,omitempty"`
	Price     float64         `json:"price,omitempty" yaml:"price,omitempty"`
	Available bool            `json:"available" yaml:"available"`
}

// Price is a one-time amount with an optional recurring monthly amount.
type Price struct {
	OneTime float64 `json:"oneTime" yaml:"one_time"`
	Monthly float64 `json:"monthly" yaml:"monthly"`
}

// Bundle is a pre-authored solution: products, services and fulfillment at a total price.
// Bundles are catalog data and are never modified after load.
type Bundle struct {
	MemberPrice       *Price              `json:"memberPrice,omitempty" yaml:"member_price,omitempty"`
	ID                string              `json:"id" yaml:"id"`
	Name              string              `json:"name" yaml:"name"`
	Description       string              `json:"description" yaml:"description"`
	WhyThisPick       string              `json:"whyThisPick" yaml:"why_this_pick"`
	Products          []Product           `json:"products" yaml:"products"`
	Services          []Service           `json:"services" yaml:"services"`
	Fulfillment       []FulfillmentOption `json:"fulfillment" yaml:"fulfillment"`
	TotalPrice        Price               `json:"totalPrice" yaml:"total_price"`
	MembershipSavings float64             `json:"membershipSavings,omitempty" yaml:"membership_savings,omitempty"`
	Savings           float64             `json:"savingsAmount,omitempty" yaml:"savings,omitempty"`
}

// StatedSavings returns the bundle savings used for ranking.
// Bundles that only advertise membership savings rank by that amount.
func (b Bundle) StatedSavings() float64 {
	if b.Savings > 0 {
		return b.Savings
	}
	return b.MembershipSavings
}

// HardwareTotal sums the prices of the bundle's products.
func (b Bundle) HardwareTotal() float64 {
	var total float64
	for _, p := range b.Products {
		total += p.Price
	}
	return total
}

// FulfillmentFor returns the first option of the given kind.
func (b Bundle) FulfillmentFor(kind FulfillmentKind) (FulfillmentOption, bool) {
	for _, f := range b.Fulfillment {
		if f.Kind == kind {
			return f, true
		}
	}
	return FulfillmentOption{}, false
}
