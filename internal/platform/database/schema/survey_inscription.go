package schema

// InscriptionTable represents the 'survey.inscription' table
type InscriptionTable struct {
	Table                 string
	ID                    string
	PanelID               string
	Title                 string
	PositionOnSurface     string
	TypeOfInscriptionID   string
	LanguageID            string
	WritingSystemID       string
	InscriberID           string
	Elevation             string
	Height                string
	Width                 string
	MinYear               string
	MaxYear               string
	Transcription         string
	InterpretativeEdition string
	Romanisation          string
	TranslationEng        string
	TranslationUkr        string
	CommentsEng           string
	CommentsUkr           string
	Published             string
	CreatedAt             string
	UpdatedAt             string
}

// Inscription is the schema definition for survey.inscription
var Inscription = InscriptionTable{
	Table:                 "survey.inscription",
	ID:                    "id",
	PanelID:               "panel_id",
	Title:                 "title",
	PositionOnSurface:     "position_on_surface",
	TypeOfInscriptionID:   "type_of_inscription_id",
	LanguageID:            "language_id",
	WritingSystemID:       "writing_system_id",
	InscriberID:           "inscriber_id",
	Elevation:             "elevation",
	Height:                "height",
	Width:                 "width",
	MinYear:               "min_year",
	MaxYear:               "max_year",
	Transcription:         "transcription",
	InterpretativeEdition: "interpretative_edition",
	Romanisation:          "romanisation",
	TranslationEng:        "translation_eng",
	TranslationUkr:        "translation_ukr",
	CommentsEng:           "comments_eng",
	CommentsUkr:           "comments_ukr",
	Published:             "published",
	CreatedAt:             "created_at",
	UpdatedAt:             "updated_at",
}

// RichTextColumns lists the editor-authored columns, in display order.
func (t InscriptionTable) RichTextColumns() []string {
	return []string{
		t.Transcription, t.InterpretativeEdition, t.Romanisation,
		t.TranslationEng, t.TranslationUkr, t.CommentsEng, t.CommentsUkr,
	}
}
