package schema

// JunctionTable represents a many-to-many link between an owner row and a target row.
type JunctionTable struct {
	Table    string
	OwnerID  string
	TargetID string
}

// Junction tables hanging off survey.inscription and survey.panel.
var (
	InscriptionGenre                 = JunctionTable{"survey.inscription_genre", "inscription_id", "genre_id"}
	InscriptionTag                   = JunctionTable{"survey.inscription_tag", "inscription_id", "tag_id"}
	InscriptionMentionedPerson       = JunctionTable{"survey.inscription_mentioned_person", "inscription_id", "historical_person_id"}
	InscriptionCondition             = JunctionTable{"survey.inscription_condition", "inscription_id", "condition_id"}
	InscriptionAlignment             = JunctionTable{"survey.inscription_alignment", "inscription_id", "alignment_id"}
	InscriptionDatingCriterion       = JunctionTable{"survey.inscription_dating_criterion", "inscription_id", "dating_criterion_id"}
	InscriptionExtraAlphabeticalSign = JunctionTable{"survey.inscription_extra_alphabetical_sign", "inscription_id", "extra_alphabetical_sign_id"}
	InscriptionBibliography          = JunctionTable{"survey.inscription_bibliography", "inscription_id", "bibliography_item_id"}
	InscriptionAuthor                = JunctionTable{"survey.inscription_author", "inscription_id", "author_id"}
	PanelTag                         = JunctionTable{"survey.panel_tag", "panel_id", "tag_id"}
)
