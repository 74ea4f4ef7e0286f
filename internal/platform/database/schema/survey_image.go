package schema

// ImageTable represents the 'survey.image' table
type ImageTable struct {
	Table              string
	ID                 string
	UUID               string
	Title              string
	IIIFFile           string
	Width              string
	Height             string
	PanelOrInscription string
	PanelID            string
	InscriptionID      string
	TypeOfImageID      string
	Region             string
	CreatedAt          string
	UpdatedAt          string
}

// Image is the schema definition for survey.image
var Image = ImageTable{
	Table:              "survey.image",
	ID:                 "id",
	UUID:               "uuid",
	Title:              "title",
	IIIFFile:           "iiif_file",
	Width:              "width",
	Height:             "height",
	PanelOrInscription: "panel_or_inscription",
	PanelID:            "panel_id",
	InscriptionID:      "inscription_id",
	TypeOfImageID:      "type_of_image_id",
	Region:             "region",
	CreatedAt:          "created_at",
	UpdatedAt:          "updated_at",
}
