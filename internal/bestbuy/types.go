package bestbuy

import (
	"bytes"
	"encoding/json"

	"github.com/Veraticus/tech-concierge/internal/model"
)

const (
	placeholderImage = "/placeholder-product.jpg"
	defaultCategory  = "Electronics"
)

// flexID accepts identifiers the API sends as either numbers or strings.
type flexID string

func (id *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = flexID(n.String())
	return nil
}

type apiProduct struct {
	SKU                   flexID  `json:"sku"`
	Name                  string  `json:"name"`
	Image                 string  `json:"image"`
	Manufacturer          string  `json:"manufacturer"`
	SalePrice             float64 `json:"salePrice"`
	CustomerReviewAverage float64 `json:"customerReviewAverage"`
	CustomerReviewCount   int     `json:"customerReviewCount"`
	InStoreAvailability   bool    `json:"inStoreAvailability"`
	OnlineAvailability    bool    `json:"onlineAvailability"`
	CategoryPath          []struct {
		Name string `json:"name"`
	} `json:"categoryPath"`
}

func (p apiProduct) toModel() model.Product {
	image := p.Image
	if image == "" {
		image = placeholderImage
	}
	category := defaultCategory
	if len(p.CategoryPath) > 0 && p.CategoryPath[0].Name != "" {
		category = p.CategoryPath[0].Name
	}

	return model.Product{
		ID:          string(p.SKU),
		SKU:         string(p.SKU),
		Name:        p.Name,
		Price:       p.SalePrice,
		Image:       image,
		Category:    category,
		Brand:       p.Manufacturer,
		Rating:      p.CustomerReviewAverage,
		ReviewCount: p.CustomerReviewCount,
		InStock:     p.InStoreAvailability || p.OnlineAvailability,
	}
}

type apiStore struct {
	StoreID    flexID  `json:"storeId"`
	Name       string  `json:"name"`
	LongName   string  `json:"longName"`
	Address    string  `json:"address"`
	City       string  `json:"city"`
	Region     string  `json:"region"`
	PostalCode string  `json:"postalCode"`
	Phone      string  `json:"phone"`
	Distance   float64 `json:"distance"`
}

func (s apiStore) toModel() model.Store {
	name := s.Name
	if name == "" {
		name = s.LongName
	}
	return model.Store{
		ID:         string(s.StoreID),
		Name:       name,
		Address:    s.Address,
		City:       s.City,
		Region:     s.Region,
		PostalCode: s.PostalCode,
		Phone:      s.Phone,
		Distance:   s.Distance,
	}
}
