package schema

// PanelTable represents the 'survey.panel' table
type PanelTable struct {
	Table            string
	ID               string
	Title            string
	Room             string
	Geometry         string
	MediumID         string
	MaterialID       string
	SpatialPosition  string
	SpatialDirection string
	DataAvailable    string
	CreatedAt        string
	UpdatedAt        string
}

// Panel is the schema definition for survey.panel
var Panel = PanelTable{
	Table:            "survey.panel",
	ID:               "id",
	Title:            "title",
	Room:             "room",
	Geometry:         "geometry",
	MediumID:         "medium_id",
	MaterialID:       "material_id",
	SpatialPosition:  "spatial_position",
	SpatialDirection: "spatial_direction",
	DataAvailable:    "data_available",
	CreatedAt:        "created_at",
	UpdatedAt:        "updated_at",
}
