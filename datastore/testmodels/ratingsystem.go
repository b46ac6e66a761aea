/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package testmodels holds domain types shared by the store tests.
package testmodels

import "github.com/go-openapi/strfmt"

// Rating is one named level of a rating system.
type Rating struct {
	Label string `json:"label"`
	Min   int32  `json:"min"`
	Max   int32  `json:"max"`
}

func (Rating) JSONEligible() {}

// Owner is stored as a JSON object.
type Owner struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

func (*Owner) JSONEligible() {}

type RatingSystem struct {

	// Unique identifier for the rating system, assigned on insert.
	ID *int64 `entity:"id"`

	// Timestamp when the rating system was created.
	// Format: date-time
	CreatedAt *strfmt.DateTime `entity:"createdAt"`

	// A description of the rating system.
	Description *string `entity:"description"`

	// Name of the rating system.
	Name string `entity:"name"`

	// site Url
	SiteURL string `entity:"siteUrl"`

	// Default rating for new players.
	DefaultRating int32 `entity:"defaultRating"`

	// Decay factor applied to inactive players.
	Decay float64 `entity:"decay"`

	Active bool `entity:"active"`

	Tags []string `entity:"tags"`

	SeasonIDs []int64 `entity:"seasonIds"`

	Levels []Rating `entity:"levels,listobjjson"`

	Settings map[string]string `entity:"settings,mapjson"`

	Owner *Owner `entity:"owner,objjson"`

	// Timestamp when the rating system was last updated.
	// Format: date-time
	UpdatedAt *strfmt.DateTime `entity:"updatedAt"`

	// Revision is maintained by the store and never written by clients.
	Revision int64 `entity:"revision,get:noinsert"`
}
