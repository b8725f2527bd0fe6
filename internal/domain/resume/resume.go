// Package resume models a document in the JSON Resume format
// (https://jsonresume.org/schema). Every field is optional: absent and null
// values both decode to zero values.
package resume

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

type Location struct {
	Address     string `json:"address"`
	PostalCode  string `json:"postalCode"`
	City        string `json:"city"`
	CountryCode string `json:"countryCode"`
	Region      string `json:"region"`
}

type Profile struct {
	Network  string `json:"network"`
	Username string `json:"username"`
	URL      string `json:"url"`
}

type Basics struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Image    string    `json:"image"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	URL      string    `json:"url"`
	Summary  string    `json:"summary"`
	Location Location  `json:"location"`
	Profiles []Profile `json:"profiles"`
}

// Work is one employment entry. An empty EndDate means the position is current.
type Work struct {
	Name       string   `json:"name"`
	Position   string   `json:"position"`
	URL        string   `json:"url"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
}

type Education struct {
	Institution string   `json:"institution"`
	URL         string   `json:"url"`
	Area        string   `json:"area"`
	StudyType   string   `json:"studyType"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Score       string   `json:"score"`
	Courses     []string `json:"courses"`
}

type Skill struct {
	Name     string   `json:"name"`
	Level    string   `json:"level"`
	Keywords []string `json:"keywords"`
}

type Certificate struct {
	Name   string `json:"name"`
	Date   string `json:"date"`
	Issuer string `json:"issuer"`
	URL    string `json:"url"`
}

type Language struct {
	Language string `json:"language"`
	Fluency  string `json:"fluency"`
}

type Project struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Highlights  []string `json:"highlights"`
	Keywords    []string `json:"keywords"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	URL         string   `json:"url"`
	Roles       []string `json:"roles"`
	Entity      string   `json:"entity"`
	Type        string   `json:"type"`
}

type Interest struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

type Award struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Awarder string `json:"awarder"`
	Summary string `json:"summary"`
}

type Meta struct {
	Canonical    string `json:"canonical"`
	Version      string `json:"version"`
	LastModified string `json:"lastModified"`
}

type Document struct {
	Basics       Basics        `json:"basics"`
	Work         []Work        `json:"work"`
	Education    []Education   `json:"education"`
	Skills       []Skill       `json:"skills"`
	Certificates []Certificate `json:"certificates"`
	Languages    []Language    `json:"languages"`
	Projects     []Project     `json:"projects"`
	Interests    []Interest    `json:"interests"`
	Awards       []Award       `json:"awards"`
	Meta         Meta          `json:"meta"`

	// Raw holds the bytes the document was parsed from.
	Raw []byte `json:"-"`
}

var (
	ErrNotAnObject = errors.New("resume document must be a JSON object")
	ErrCorrupt     = errors.New("resume document is not valid JSON")
)

// Parse checks that raw is a JSON object, keeps it for verbatim replay and
// decodes it best-effort. A value whose type does not match its field (a
// numeric score, an object where a string is expected) leaves that field at
// its zero value instead of failing the document.
func Parse(raw []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		if len(trimmed) > 0 && !json.Valid(trimmed) {
			return nil, ErrCorrupt
		}
		return nil, ErrNotAnObject
	}
	if !json.Valid(trimmed) {
		return nil, ErrCorrupt
	}

	doc := &Document{}
	if err := json.Unmarshal(trimmed, doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("decode resume: %w", err)
		}
	}
	doc.Raw = append([]byte(nil), raw...)
	return doc, nil
}

type Repository interface {
	Load(ctx context.Context) (*Document, error)
}
