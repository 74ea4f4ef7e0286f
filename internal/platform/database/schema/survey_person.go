package schema

// HistoricalPersonTable represents the 'survey.historical_person' table
type HistoricalPersonTable struct {
	Table       string
	ID          string
	Name        string
	NameUkr     string
	Information string
}

// HistoricalPerson is the schema definition for survey.historical_person
var HistoricalPerson = HistoricalPersonTable{
	Table:       "survey.historical_person",
	ID:          "id",
	Name:        "name",
	NameUkr:     "name_ukr",
	Information: "information",
}

// AuthorTable represents the 'survey.author' table
type AuthorTable struct {
	Table        string
	ID           string
	Firstname    string
	Lastname     string
	FirstnameUkr string
	LastnameUkr  string
}

// Author is the schema definition for survey.author
var Author = AuthorTable{
	Table:        "survey.author",
	ID:           "id",
	Firstname:    "firstname",
	Lastname:     "lastname",
	FirstnameUkr: "firstname_ukr",
	LastnameUkr:  "lastname_ukr",
}

// BibliographyItemTable represents the 'survey.bibliography_item' table
type BibliographyItemTable struct {
	Table     string
	ID        string
	Title     string
	Reference string
}

// BibliographyItem is the schema definition for survey.bibliography_item
var BibliographyItem = BibliographyItemTable{
	Table:     "survey.bibliography_item",
	ID:        "id",
	Title:     "title",
	Reference: "reference",
}
