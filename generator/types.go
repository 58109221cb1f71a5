package generator

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrMissingOverview means generation was requested without a business overview.
	ErrMissingOverview = errors.New("business overview is required")
	// ErrInvalidOption means a select field holds a value outside its option list.
	ErrInvalidOption = errors.New("invalid option")
)

// Document length selector values.
const (
	LengthShort = "Short"
	LengthLong  = "Long"
)

// Option lists for the select fields. The first entry is the default.
var (
	Languages      = []string{"UK English", "US English"}
	WritingPersons = []string{"1st Person", "3rd Person"}
	WritingStyles  = []string{"Formal", "Informal"}
	Lengths        = []string{LengthShort, LengthLong}
	Templates      = []string{"Standard", "IDC", "NEF", "Custom"}
	BusinessTypes  = []string{"Start-up", "Expansion", "Acquisition"}
	BEELevels      = []string{"Level 1", "Level 2", "Level 3", "Level 4"}
)

// FieldSet is every user input that drives prompt construction.
type FieldSet struct {
	Type          DocumentType `json:"document_type" yaml:"document_type"`
	Language      string       `json:"language" yaml:"language"`
	WritingPerson string       `json:"writing_person" yaml:"writing_person"`
	WritingStyle  string       `json:"writing_style" yaml:"writing_style"`
	Length        string       `json:"length" yaml:"length"`
	Template      string       `json:"template" yaml:"template"`
	BusinessType  string       `json:"business_type" yaml:"business_type"`
	BEELevel      string       `json:"bee_level" yaml:"bee_level"`
	Directors     string       `json:"directors" yaml:"directors"`
	Staffing      string       `json:"staffing" yaml:"staffing"`
	FundingAmount string       `json:"funding_amount" yaml:"funding_amount"`
	GrantAmount   string       `json:"grant_amount" yaml:"grant_amount"`
	FinanceTerm   string       `json:"finance_term" yaml:"finance_term"`
	Overview      string       `json:"business_overview" yaml:"business_overview"`
}

// Normalize fills empty selects with their default and rejects values that
// are not in the option list.
func (f FieldSet) Normalize() (FieldSet, error) {
	selects := []struct {
		name    string
		value   *string
		options []string
	}{
		{"language", &f.Language, Languages},
		{"writing_person", &f.WritingPerson, WritingPersons},
		{"writing_style", &f.WritingStyle, WritingStyles},
		{"length", &f.Length, Lengths},
		{"template", &f.Template, Templates},
		{"business_type", &f.BusinessType, BusinessTypes},
		{"bee_level", &f.BEELevel, BEELevels},
	}
	for _, s := range selects {
		*s.value = strings.TrimSpace(*s.value)
		if *s.value == "" {
			*s.value = s.options[0]
			continue
		}
		if !slices.Contains(s.options, *s.value) {
			return FieldSet{}, fmt.Errorf("%s %q: %w", s.name, *s.value, ErrInvalidOption)
		}
	}
	if !f.Type.valid() {
		return FieldSet{}, fmt.Errorf("document type %d: %w", int(f.Type), ErrUnknownDocumentType)
	}
	return f, nil
}

// Options is the catalogue served to form clients.
type Options struct {
	DocumentTypes  []string `json:"document_types"`
	Languages      []string `json:"languages"`
	WritingPersons []string `json:"writing_persons"`
	WritingStyles  []string `json:"writing_styles"`
	Lengths        []string `json:"lengths"`
	Templates      []string `json:"templates"`
	BusinessTypes  []string `json:"business_types"`
	BEELevels      []string `json:"bee_levels"`
}

// FormOptions returns every select's option list.
func FormOptions() Options {
	types := make([]string, 0, numDocumentTypes)
	for _, t := range DocumentTypes() {
		types = append(types, t.String())
	}
	return Options{
		DocumentTypes:  types,
		Languages:      Languages,
		WritingPersons: WritingPersons,
		WritingStyles:  WritingStyles,
		Lengths:        Lengths,
		Templates:      Templates,
		BusinessTypes:  BusinessTypes,
		BEELevels:      BEELevels,
	}
}
