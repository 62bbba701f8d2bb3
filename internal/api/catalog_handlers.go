package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Veraticus/tech-concierge/internal/bestbuy"
	"github.com/Veraticus/tech-concierge/internal/common"
	"github.com/Veraticus/tech-concierge/internal/model"
	"github.com/Veraticus/tech-concierge/internal/service"
)

// searchPageSize matches the page size of the storefront's search results.
const searchPageSize = 20

type searchResponse struct {
	Query    string          `json:"query"`
	Products []model.Product `json:"products"`
}

type storesResponse struct {
	Stores []model.Store `json:"stores"`
}

func (s *Server) listBundles(c echo.Context) error {
	return ok(c, s.agent.Catalog().Bundles())
}

func (s *Server) getBundle(c echo.Context) error {
	bundle, found := s.agent.Catalog().Bundle(c.Param("id"))
	if !found {
		return fail(c, http.StatusNotFound, "BUNDLE_NOT_FOUND", "Bundle not found", nil)
	}
	return ok(c, bundle)
}

func (s *Server) searchProducts(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return fail(c, http.StatusBadRequest, "MISSING_QUERY", "Query parameter is required", nil)
	}

	opts := service.SearchOptions{
		Category: c.QueryParam("category"),
		Page:     1,
		PageSize: searchPageSize,
		InStock:  true,
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		maxPrice, err := strconv.ParseFloat(v, 64)
		if err != nil || maxPrice < 0 {
			return fail(c, http.StatusBadRequest, "INVALID_PRICE", "maxPrice must be a positive number", v)
		}
		opts.MaxPrice = maxPrice
	}
	if v := c.QueryParam("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 || page > service.MaxSearchPage {
			return fail(c, http.StatusBadRequest, "INVALID_PAGE",
				fmt.Sprintf("page must be between 1 and %d", service.MaxSearchPage), v)
		}
		opts.Page = page
	}

	products, err := s.searcher.SearchProducts(c.Request().Context(), query, opts)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid search", err.Error())
		}
		s.logger.Error("product search failed", "query", query, "error", err)
		return fail(c, http.StatusInternalServerError, "SEARCH_FAILED", "Failed to search products", nil)
	}
	if products == nil {
		products = []model.Product{}
	}

	return ok(c, searchResponse{Products: products, Query: query})
}

func (s *Server) findStores(c echo.Context) error {
	q := service.StoreQuery{RadiusMi: bestbuy.DefaultRadiusMi}
	if v := c.QueryParam("radius"); v != "" {
		radius, err := strconv.Atoi(v)
		if err != nil || radius <= 0 {
			return fail(c, http.StatusBadRequest, "INVALID_RADIUS", "radius must be a positive integer", v)
		}
		q.RadiusMi = radius
	}

	lat, lng := c.QueryParam("lat"), c.QueryParam("lng")
	location := strings.TrimSpace(c.QueryParam("location"))
	switch {
	case lat != "" && lng != "":
		latitude, latErr := strconv.ParseFloat(lat, 64)
		longitude, lngErr := strconv.ParseFloat(lng, 64)
		if latErr != nil || lngErr != nil {
			return fail(c, http.StatusBadRequest, "INVALID_COORDINATES", "lat and lng must be numbers", nil)
		}
		q.Latitude, q.Longitude, q.HasCoords = latitude, longitude, true
	case location != "":
		q.Region = location
	default:
		return fail(c, http.StatusBadRequest, "MISSING_LOCATION", "Either location or lat/lng is required", nil)
	}

	stores, err := s.searcher.FindStores(c.Request().Context(), q)
	if err != nil {
		s.logger.Error("store search failed", "error", err)
		return fail(c, http.StatusInternalServerError, "STORE_SEARCH_FAILED", "Failed to find stores", nil)
	}
	if stores == nil {
		stores = []model.Store{}
	}

	return ok(c, storesResponse{Stores: stores})
}
