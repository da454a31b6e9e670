// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package api

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/cache"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/metrics"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/recommend"
)

// MaxCartItems bounds the ids accepted by /api/fbt and /api/catalog.
const MaxCartItems = 100

// cartRequest is the validated form of ?products= and ?ids=.
type cartRequest struct {
	Products []string `validate:"max=100,dive,productid,max=255"`
}

// debugRequest is the validated form of ?id=.
type debugRequest struct {
	ID string `validate:"productid,max=255"`
}

// fbtItem is one merged recommendation. Empty label and priority encode as
// null.
type fbtItem struct {
	ID       string  `json:"id"`
	Label    *string `json:"label"`
	Priority *string `json:"priority"`
}

type fbtResponse struct {
	Recommendations []fbtItem `json:"recommendations"`
	CartProducts    []string  `json:"cart_products,omitempty"`
	Message         string    `json:"message,omitempty"`
}

type debugItem struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Priority   string `json:"priority"`
	Backfilled bool   `json:"backfilled,omitempty"`
}

type debugResponse struct {
	ProductID string `json:"product_id"`
	MatchType string `json:"match_type"`
	// MatchedRule is the source id for explicit matches, the keyword list
	// for category matches and null otherwise.
	MatchedRule     interface{} `json:"matched_rule"`
	Recommendations []debugItem `json:"recommendations"`
}

type catalogItem struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type catalogResponse struct {
	Items map[string]catalogItem `json:"items"`
}

// FBT handles GET /api/fbt?products=a,b
// Returns the merged recommendations for the cart.
func (h *Handler) FBT(w http.ResponseWriter, r *http.Request) {
	products := recommend.ParseCart(r.URL.Query().Get("products"))
	if len(products) == 0 {
		respondJSON(w, http.StatusOK, &fbtResponse{
			Recommendations: []fbtItem{},
			Message:         h.engine.Config().EmptyCartMessage,
		})
		return
	}
	if apiErr := validateRequest(&cartRequest{Products: products}); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	snap := h.rules.Current(r.Context())
	key := cache.GenerateKey("fbt", struct {
		Version uint64
		Cart    []string
	}{snap.Version, products})
	if body, ok := h.cachedResponse(key); ok {
		writeJSONBytes(w, http.StatusOK, body)
		return
	}

	result := h.engine.Aggregate(snap, products)
	for matchType, n := range result.Matches {
		for i := 0; i < n; i++ {
			metrics.RecordLookup(string(matchType))
		}
	}
	metrics.RecordCart(len(products), len(result.Recommendations))

	resp := &fbtResponse{
		Recommendations: make([]fbtItem, 0, len(result.Recommendations)),
		CartProducts:    result.CartProducts,
	}
	for _, item := range result.Recommendations {
		resp.Recommendations = append(resp.Recommendations, fbtItem{
			ID:       item.ID,
			Label:    nullable(item.Label),
			Priority: nullable(string(item.Priority)),
		})
	}

	body, err := json.Marshal(resp)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to encode recommendations", err)
		return
	}
	h.storeResponse(key, body)
	writeJSONBytes(w, http.StatusOK, body)
}

// DebugProduct handles GET /api/debug/product?id=slug
// Shows how a single product resolves.
func (h *Handler) DebugProduct(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		respondLegacyError(w, http.StatusBadRequest, ErrMissingProductID.Error())
		return
	}
	if apiErr := validateRequest(&debugRequest{ID: id}); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	snap := h.rules.Current(r.Context())
	res := h.engine.ResolveDebug(snap, id)
	metrics.RecordLookup(string(res.MatchType))

	resp := &debugResponse{
		ProductID:       id,
		MatchType:       string(res.MatchType),
		Recommendations: make([]debugItem, 0, len(res.Recommendations)),
	}
	switch res.MatchType {
	case recommend.MatchExplicit:
		resp.MatchedRule = res.MatchedSource
	case recommend.MatchCategory:
		resp.MatchedRule = res.MatchedKeywords
	}
	for _, rec := range res.Recommendations {
		resp.Recommendations = append(resp.Recommendations, debugItem{
			ID:         rec.ID,
			Label:      rec.Label,
			Priority:   string(rec.Priority),
			Backfilled: rec.Backfilled,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

// Catalog handles GET /api/catalog?ids=a,b
// Returns a storefront name and URL for each slug.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	ids := recommend.ParseCart(r.URL.Query().Get("ids"))
	resp := &catalogResponse{Items: make(map[string]catalogItem, len(ids))}
	if len(ids) == 0 {
		respondJSON(w, http.StatusOK, resp)
		return
	}
	if apiErr := validateRequest(&cartRequest{Products: ids}); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	for _, slug := range ids {
		resp.Items[slug] = catalogItem{
			Name: slug,
			URL:  storefrontURL(h.storefront.BaseURL, h.storefront.ProductPathPattern, slug),
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
