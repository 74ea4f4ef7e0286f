package schema

// DocumentationTable represents the 'survey.documentation' table
type DocumentationTable struct {
	Table       string
	ID          string
	ShortTitle  string
	Observation string
}

// Documentation is the schema definition for survey.documentation
var Documentation = DocumentationTable{
	Table:       "survey.documentation",
	ID:          "id",
	ShortTitle:  "short_title",
	Observation: "observation",
}

// PanelDocumentation links panels to their documentation notes.
var PanelDocumentation = JunctionTable{"survey.panel_documentation", "panel_id", "documentation_id"}

// ObjectRTITable represents the 'survey.object_rti' table
type ObjectRTITable struct {
	Table   string
	ID      string
	Title   string
	URL     string
	PanelID string
}

// ObjectRTI is the schema definition for survey.object_rti
var ObjectRTI = ObjectRTITable{
	Table:   "survey.object_rti",
	ID:      "id",
	Title:   "title",
	URL:     "url",
	PanelID: "panel_id",
}

// ObjectMeshTable represents the 'survey.object_mesh_3d' table
type ObjectMeshTable struct {
	Table             string
	ID                string
	URL               string
	PanelID           string
	NumberOfTriangles string
}

// ObjectMesh is the schema definition for survey.object_mesh_3d
var ObjectMesh = ObjectMeshTable{
	Table:             "survey.object_mesh_3d",
	ID:                "id",
	URL:               "url",
	PanelID:           "panel_id",
	NumberOfTriangles: "number_of_triangles",
}

// InscriptionTextTable represents the per-language text tables
// 'survey.translation' and 'survey.description'.
type InscriptionTextTable struct {
	Table         string
	ID            string
	InscriptionID string
	LanguageID    string
	Text          string
}

func inscriptionText(table string) InscriptionTextTable {
	return InscriptionTextTable{Table: table, ID: "id", InscriptionID: "inscription_id", LanguageID: "language_id", Text: "text"}
}

// Per-language texts attached to an inscription.
var (
	Translation = inscriptionText("survey.translation")
	Description = inscriptionText("survey.description")
)
