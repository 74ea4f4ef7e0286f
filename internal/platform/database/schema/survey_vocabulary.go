package schema

// VocabularyTable represents one of the controlled-vocabulary tables.
// All of them share the (id, text, text_ukr) layout.
type VocabularyTable struct {
	Table   string
	ID      string
	Text    string
	TextUkr string
}

func vocabulary(table string) VocabularyTable {
	return VocabularyTable{Table: table, ID: "id", Text: "text", TextUkr: "text_ukr"}
}

// Vocabulary tables of the survey schema.
var (
	Language              = vocabulary("survey.language")
	WritingSystem         = vocabulary("survey.writing_system")
	Genre                 = vocabulary("survey.genre")
	Tag                   = vocabulary("survey.tag")
	InscriptionType       = vocabulary("survey.inscription_type")
	ImageType             = vocabulary("survey.image_type")
	Medium                = vocabulary("survey.medium")
	Material              = vocabulary("survey.material")
	Condition             = vocabulary("survey.condition")
	Alignment             = vocabulary("survey.alignment")
	DatingCriterion       = vocabulary("survey.dating_criterion")
	ExtraAlphabeticalSign = vocabulary("survey.extra_alphabetical_sign")
)

func (t VocabularyTable) Columns() []string { return []string{t.ID, t.Text, t.TextUkr} }
