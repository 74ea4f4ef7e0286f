// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package panel exposes the surfaces of the building that carry inscriptions.

A panel (surface) is a wall or pillar section with an optional PostGIS
geometry and a 3D viewpoint. Every panel is returned with aggregate counts of
what it hosts, computed per request.
*/
package panel

import (
	"encoding/json"
	"time"

	"github.com/taibuivan/sophia/internal/reference"
)

// # Core Entities

// TypeCount is the number of published inscriptions of one type on a panel.
type TypeCount struct {
	ID      int     `json:"id"`
	Text    *string `json:"text"`
	TextUkr *string `json:"text_ukr"`
	Count   int     `json:"count"`
}

// Counts aggregates what a panel hosts.
type Counts struct {
	InscriptionCount int         `json:"inscription_count"`
	ImageCount       int         `json:"image_count"`
	InscriptionTypes []TypeCount `json:"inscription_types"`
}

// Documentation is an editorial note shared by one or more panels.
// Observation holds stored rich text.
type Documentation struct {
	ID          int     `json:"id"`
	ShortTitle  *string `json:"short_title"`
	Observation *string `json:"observation"`
}

// RTIObject is a reflectance transformation imaging capture of a panel.
type RTIObject struct {
	ID    int     `json:"id"`
	Title *string `json:"title"`
	URL   *string `json:"url"`
}

// Mesh3D is a 3D model of a panel.
type Mesh3D struct {
	ID                int     `json:"id"`
	URL               *string `json:"url"`
	NumberOfTriangles *int    `json:"number_of_triangles"`
}

// Media lists the documentation and captures of a panel. It is only
// loaded for the panel detail.
type Media struct {
	Documentation []Documentation `json:"documentation,omitempty"`
	RTI           []RTIObject     `json:"rti,omitempty"`
	Mesh          []Mesh3D        `json:"mesh,omitempty"`
}

// Panel is a physical surface hosting zero or more inscriptions.
type Panel struct {
	ID               int              `json:"id"`
	Title            *string          `json:"title"`
	Room             *string          `json:"room"`
	Medium           *reference.Term  `json:"medium,omitempty"`
	Material         *reference.Term  `json:"material,omitempty"`
	SpatialPosition  []float64        `json:"spatial_position"`
	SpatialDirection []float64        `json:"spatial_direction"`
	DataAvailable    bool             `json:"data_available"`
	Geometry         json.RawMessage  `json:"geometry,omitempty"`
	Tags             []reference.Term `json:"tags"`

	Counts
	Media

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Room groups the panels standing in the same room.
type Room struct {
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	PanelCount int    `json:"panel_count"`
}

// # Filtering

// Filter narrows the panel list.
type Filter struct {
	// Room is matched exactly against the stored room name.
	Room string

	// TitlePrefix keeps panels whose title starts with the value.
	TitlePrefix string

	// DataAvailable keeps panels with or without a 3D model when set.
	DataAvailable *bool
}

// # Field Identifiers

const (
	FieldRoom          = "room"
	FieldTitle         = "title_str"
	FieldDataAvailable = "data_available"
)
