// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package image serves the photographs of panels and inscriptions.

Image files live on an IIIF image server; the catalogue stores the file path,
the pixel dimensions and an optional fractional region locating an inscription
inside the photograph. This package derives the IIIF URLs from those values and
refreshes the dimensions from the server's info.json.
*/
package image

import (
	"time"

	"github.com/taibuivan/sophia/internal/reference"
)

// # Core Entities

// Owner tells whether an image depicts a panel or a single inscription.
type Owner int

const (
	OwnerPanel       Owner = 1
	OwnerInscription Owner = 2
)

// String returns the lowercase owner name used in JSON.
func (owner Owner) String() string {
	switch owner {
	case OwnerPanel:
		return "panel"
	case OwnerInscription:
		return "inscription"
	default:
		return "unknown"
	}
}

// MarshalText renders the owner by name.
func (owner Owner) MarshalText() ([]byte, error) {
	return []byte(owner.String()), nil
}

// Image is a photograph served by the IIIF image server.
type Image struct {
	ID            int             `json:"id"`
	UUID          string          `json:"uuid"`
	Title         *string         `json:"title"`
	IIIFFile      *string         `json:"iiif_file"`
	Width         *int            `json:"width"`
	Height        *int            `json:"height"`
	Owner         Owner           `json:"panel_or_inscription"`
	PanelID       *int            `json:"panel_id"`
	InscriptionID *int            `json:"inscription_id"`
	TypeOfImage   *reference.Term `json:"type_of_image,omitempty"`

	// Region is the fractional (x, y, w, h) box inside the image, each in [0, 1].
	Region []float64 `json:"region"`

	// Derived IIIF endpoints, empty when the file is unknown
	IIIFURL      string `json:"iiif_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	RegionURL    string `json:"region_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MaxDimension bounds manually supplied image sides.
const MaxDimension = 100_000

// Dimensions are the pixel width and height of an image.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Valid reports whether both sides are positive.
func (dimensions Dimensions) Valid() bool {
	return dimensions.Width > 0 && dimensions.Height > 0
}

// # Filtering

// Filter narrows the image list. Zero values are ignored.
type Filter struct {
	PanelID       int
	InscriptionID int
	TypeOfImageID int
}

// # Field Identifiers

const (
	FieldPanel       = "panel"
	FieldInscription = "inscription"
	FieldTypeOfImage = "type_of_image"
	FieldWidth       = "width"
	FieldHeight      = "height"
)
