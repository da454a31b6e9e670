// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package recommend

import (
	"strings"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/cache"
)

// TypeRule assigns Type to any text containing one of Keywords.
type TypeRule struct {
	Type     ProductType
	Keywords []string
}

// Classifier maps product text to a ProductType using an ordered rule list.
// The first rule with a matching keyword wins.
type Classifier struct {
	name      string
	rules     []TypeRule
	index     *cache.KeywordIndex
	normalize func(string) string
}

// runtimeTypeRules keep hyphens, so "face-shield" and "cheek-pad" match the
// raw lowercased slug.
var runtimeTypeRules = []TypeRule{
	{TypeHelmetAccessory, []string{"visor", "face-shield", "faceshield", "shield", "pinlock", "cheekpad", "cheek-pad", "cheek pad"}},
	{TypeHelmet, []string{"helmet"}},
	{TypeJacket, []string{"jacket", "coat", "parka"}},
	{TypePants, []string{"pant", "trouser", "bibs"}},
	{TypeGloves, []string{"glove", "gauntlet"}},
	{TypeBoots, []string{"boot", "shoe"}},
}

// authoringTypeRules run on text whose hyphens became spaces.
var authoringTypeRules = []TypeRule{
	{TypeHelmetAccessory, []string{"visor", "face shield", "faceshield", "shield", "pinlock", "cheek pad", "cheek-pad", "cheekpad", "cheekpads"}},
	{TypeHelmet, []string{"helmet"}},
	{TypeJacket, []string{"jacket", "coat", "parka"}},
	{TypePants, []string{"pant", "trouser", "bibs"}},
	{TypeGloves, []string{"glove", "gauntlet"}},
	{TypeBoots, []string{"boot", "shoe"}},
	{TypeBackpack, []string{"backpack", "bag", "pack", "luggage"}},
	{TypeCommunication, []string{"communication", "intercom", "bluetooth", "headset", "sena", "cardo", "schuberth-sc2"}},
	{TypeTire, []string{"tire", "tyre", "wheel"}},
	{TypeAirFilter, []string{"air filter", "air-filter", "filter"}},
	{TypeOil, []string{"oil", "lubricant", "lube", "fork oil", "transmission oil"}},
	{TypeBrake, []string{"brake", "brake pad", "rotor"}},
	{TypeChain, []string{"chain", "sprocket", "degreaser", "chain lube", "chain wax"}},
	{TypeProtection, []string{"protector", "armor", "armour", "chest", "back protector"}},
}

// NewClassifier builds a classifier over an ordered rule list. Keywords are
// lowercased; normalize is applied to every classified text.
func NewClassifier(name string, typeRules []TypeRule, normalize func(string) string) *Classifier {
	groups := make([][]string, len(typeRules))
	owned := make([]TypeRule, len(typeRules))
	for i, r := range typeRules {
		kws := make([]string, len(r.Keywords))
		for j, kw := range r.Keywords {
			kws[j] = strings.ToLower(kw)
		}
		groups[i] = kws
		owned[i] = TypeRule{Type: r.Type, Keywords: kws}
	}
	if normalize == nil {
		normalize = NormalizeRuntime
	}
	return &Classifier{
		name:      name,
		rules:     owned,
		index:     cache.NewKeywordIndex(groups),
		normalize: normalize,
	}
}

// RuntimeClassifier is the six-type table used while serving.
func RuntimeClassifier() *Classifier {
	return NewClassifier("runtime", runtimeTypeRules, NormalizeRuntime)
}

// AuthoringClassifier is the wider table used when checking and repairing
// the rule table offline.
func AuthoringClassifier() *Classifier {
	return NewClassifier("authoring", authoringTypeRules, NormalizeAuthoring)
}

// NormalizeRuntime lowercases and trims.
func NormalizeRuntime(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeAuthoring lowercases, trims and turns hyphens into spaces.
func NormalizeAuthoring(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", " ")
}

// Name identifies the rule table.
func (c *Classifier) Name() string {
	return c.name
}

// Rules returns the ordered rule list.
func (c *Classifier) Rules() []TypeRule {
	return c.rules
}

// Classify returns the type of a product id.
func (c *Classifier) Classify(productID string) ProductType {
	group, ok := c.index.FirstGroup(c.normalize(productID))
	if !ok {
		return TypeUnknown
	}
	return c.rules[group].Type
}

