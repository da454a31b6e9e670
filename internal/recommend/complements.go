// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package recommend

// desiredNextTypes is the ordered backfill preference while serving.
var desiredNextTypes = map[ProductType][]ProductType{
	TypePants:  {TypeJacket, TypeGloves, TypeBoots, TypeHelmet},
	TypeJacket: {TypePants, TypeGloves, TypeBoots, TypeHelmet},
	TypeHelmet: {TypeHelmetAccessory, TypeGloves, TypeJacket, TypeBoots},
	TypeGloves: {TypeJacket, TypePants, TypeHelmet, TypeBoots},
	TypeBoots:  {TypeJacket, TypePants, TypeGloves, TypeHelmet},
}

// complementaryTypes is the authoring compatibility table: which
// recommendation types make sense for a source type.
var complementaryTypes = map[ProductType][]ProductType{
	TypePants:           {TypeJacket, TypeGloves, TypeBoots, TypeProtection, TypeBackpack},
	TypeJacket:          {TypePants, TypeGloves, TypeBoots, TypeProtection, TypeHelmet},
	TypeGloves:          {TypeJacket, TypePants, TypeBoots, TypeHelmet},
	TypeBoots:           {TypePants, TypeJacket, TypeGloves, TypeHelmet},
	TypeHelmet:          {TypeHelmetAccessory, TypeCommunication, TypeBackpack, TypeJacket, TypeGloves},
	TypeHelmetAccessory: {TypeHelmet, TypeCommunication, TypeBackpack},
	TypeCommunication:   {TypeHelmet, TypeBackpack},
	TypeTire:            {TypeBrake, TypeChain, TypeOil},
	TypeAirFilter:       {TypeOil, TypeChain, TypeBrake},
	TypeOil:             {TypeAirFilter, TypeChain, TypeBrake},
	TypeChain:           {TypeOil, TypeBrake, TypeAirFilter},
	TypeBrake:           {TypeTire, TypeChain, TypeOil},
	TypeBackpack:        {TypeHelmet, TypeJacket, TypeGloves},
	TypeProtection:      {TypeJacket, TypePants, TypeGloves, TypeBoots},
}

var coreTypes = map[ProductType]bool{
	TypePants: true, TypeJacket: true, TypeGloves: true, TypeBoots: true, TypeHelmet: true,
}

// apparelSources are the source types subject to the brand-consistency filter.
var apparelSources = map[ProductType]bool{TypeJacket: true, TypePants: true}

// apparelTargets are the recommendation types the filter applies to.
var apparelTargets = map[ProductType]bool{TypeJacket: true, TypePants: true, TypeGloves: true}

// DesiredNextTypes returns the ordered backfill types for a source type.
func DesiredNextTypes(source ProductType) []ProductType {
	return desiredNextTypes[source]
}

// ComplementaryTypes returns the allowed recommendation types for source.
// Nil means the source type has no table entry.
func ComplementaryTypes(source ProductType) []ProductType {
	return complementaryTypes[source]
}

// IsComplementary reports whether rec is listed for source.
func IsComplementary(source, rec ProductType) bool {
	for _, t := range complementaryTypes[source] {
		if t == rec {
			return true
		}
	}
	return false
}

// IsCoreType reports whether t is one of the five riding-gear types.
func IsCoreType(t ProductType) bool {
	return coreTypes[t]
}

// apparelBrandConflict reports whether rec must be dropped for source: an
// apparel source, an apparel or glove rec, and two different non-empty brands.
func apparelBrandConflict(sourceType ProductType, sourceBrand string, recType ProductType, recID string) bool {
	if !apparelSources[sourceType] || !apparelTargets[recType] || sourceBrand == "" {
		return false
	}
	recBrand := BrandToken(recID)
	return recBrand != "" && recBrand != sourceBrand
}
