package models

import (
	"errors"
	"fmt"
	"strings"
)

// ForbiddenNameChars lists every character rejected in a project name.
// The order matters: offending characters are reported in this order.
const ForbiddenNameChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^`{|}~ "

// ValidationKind identifies which form check rejected the details
type ValidationKind int

const (
	MissingFields ValidationKind = iota + 1
	ForbiddenCharacters
	SourcePathMissing
	DestinationExists
)

// String returns a short identifier used in logs
func (k ValidationKind) String() string {
	switch k {
	case MissingFields:
		return "missing_fields"
	case ForbiddenCharacters:
		return "forbidden_characters"
	case SourcePathMissing:
		return "source_path_missing"
	case DestinationExists:
		return "destination_exists"
	default:
		return "unknown"
	}
}

// ValidationError is returned when the submitted details cannot be used.
// Title and Detail are the user-facing texts shown in the warning dialog.
type ValidationError struct {
	Kind   ValidationKind
	Title  string
	Detail string
}

// NewValidationError creates a new validation error
func NewValidationError(kind ValidationKind, title, detail string) *ValidationError {
	return &ValidationError{
		Kind:   kind,
		Title:  title,
		Detail: detail,
	}
}

// Error returns the error message
func (ve *ValidationError) Error() string {
	if ve.Detail == "" {
		return ve.Title
	}
	return fmt.Sprintf("%s %s", ve.Title, ve.Detail)
}

// IsValidationError reports whether err carries a *ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ThemeSelection holds the color choices written into the generated app
type ThemeSelection struct {
	PrimaryPalette string `yaml:"primary_palette" json:"primary_palette"`
	PrimaryHue     string `yaml:"primary_hue" json:"primary_hue"`
	AccentPalette  string `yaml:"accent_palette" json:"accent_palette"`
	AccentHue      string `yaml:"accent_hue" json:"accent_hue"`
	ThemeStyle     string `yaml:"theme_style" json:"theme_style"`
}

// DefaultTheme returns the selection shown on a fresh form
func DefaultTheme() ThemeSelection {
	return ThemeSelection{
		PrimaryPalette: "Blue",
		PrimaryHue:     "500",
		AccentPalette:  "Amber",
		AccentHue:      "500",
		ThemeStyle:     "Light",
	}
}

// Validate checks every value against the known vocabulary
func (ts ThemeSelection) Validate() error {
	checks := []struct {
		field string
		value string
		ok    bool
	}{
		{"primary palette", ts.PrimaryPalette, IsPalette(ts.PrimaryPalette)},
		{"primary hue", ts.PrimaryHue, IsHue(ts.PrimaryHue)},
		{"accent palette", ts.AccentPalette, IsPalette(ts.AccentPalette)},
		{"accent hue", ts.AccentHue, IsHue(ts.AccentHue)},
		{"theme style", ts.ThemeStyle, IsThemeStyle(ts.ThemeStyle)},
	}

	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("unknown %s %q", c.field, c.value)
		}
	}
	return nil
}

// Extras selects the optional auxiliary files copied into the project
type Extras struct {
	Gitignore bool `yaml:"gitignore" json:"gitignore"`
	Readme    bool `yaml:"readme" json:"readme"`
	License   bool `yaml:"license" json:"license"`
}

// ProjectDetails is everything the form collects for one creation request
type ProjectDetails struct {
	ApplicationTitle   string
	ProjectName        string
	ApplicationVersion string
	ProjectPath        string
	AuthorName         string

	Theme    ThemeSelection
	Extras   Extras
	Template string
}

// Normalized returns a copy with all free-text fields trimmed
func (pd ProjectDetails) Normalized() ProjectDetails {
	pd.ApplicationTitle = strings.TrimSpace(pd.ApplicationTitle)
	pd.ProjectName = strings.TrimSpace(pd.ProjectName)
	pd.ApplicationVersion = strings.TrimSpace(pd.ApplicationVersion)
	pd.ProjectPath = strings.TrimSpace(pd.ProjectPath)
	pd.AuthorName = strings.TrimSpace(pd.AuthorName)
	pd.Template = strings.TrimSpace(pd.Template)
	return pd
}

// LowerName is the lower-cased project name used for file names
func (pd ProjectDetails) LowerName() string {
	return strings.ToLower(pd.ProjectName)
}

// CheckRequired rejects details where any required field is empty.
// Callers are expected to pass normalized details.
func (pd ProjectDetails) CheckRequired() error {
	required := []string{
		pd.ApplicationTitle,
		pd.ProjectName,
		pd.ApplicationVersion,
		pd.ProjectPath,
		pd.AuthorName,
	}
	for _, v := range required {
		if v == "" {
			return NewValidationError(MissingFields, "Please Fill Up All the Fields!", "")
		}
	}
	return nil
}

// CheckName rejects a project name containing forbidden characters.
// The message echoes each offending character once.
func (pd ProjectDetails) CheckName() error {
	chars := ForbiddenCharsIn(pd.ProjectName)
	if chars == "" {
		return nil
	}
	return NewValidationError(
		ForbiddenCharacters,
		fmt.Sprintf("Please Don't Use '%s' in Project Name", chars),
		"",
	)
}

// ForbiddenCharsIn returns the forbidden characters present in name,
// in ForbiddenNameChars order
func ForbiddenCharsIn(name string) string {
	var b strings.Builder
	for _, r := range ForbiddenNameChars {
		if strings.ContainsRune(name, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SourcePathMissingError builds the warning for a parent folder that does not exist
func SourcePathMissingError(path string) *ValidationError {
	return NewValidationError(SourcePathMissing, "Folder Path not Exists!", path)
}

// DestinationExistsError builds the warning for an already existing project folder
func DestinationExistsError(lowerName, parent string) *ValidationError {
	return NewValidationError(
		DestinationExists,
		fmt.Sprintf("Folder Named %s is Already Exists! in '%s'", lowerName, parent),
		"",
	)
}

// SuccessMessage is the text shown once a project has been written
func SuccessMessage(projectName string) string {
	return fmt.Sprintf("Project '%s' Has Been Created Successfully!", projectName)
}
