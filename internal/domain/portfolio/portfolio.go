// Package portfolio holds the display-oriented projection of a resume served
// to the portfolio front-end. A Portfolio has no identity of its own and is
// recomputed from the resume on every request.
package portfolio

import (
	"fmt"
	"strings"

	"github.com/khoahotran/portfolio/internal/domain/resume"
)

// DefaultSkillCategory is used for skill groups that have no name.
const DefaultSkillCategory = "Other"

// contactCountry is appended to every contact location regardless of the
// resume's countryCode.
const contactCountry = "India"

type ContactInfo struct {
	Name      string   `json:"name"`
	Title     string   `json:"title"`
	Location  string   `json:"location"`
	Phone     string   `json:"phone"`
	Address   string   `json:"address"`
	Languages []string `json:"languages"`
}

type Experience struct {
	Company          string   `json:"company"`
	Position         string   `json:"position"`
	Duration         string   `json:"duration"`
	Location         string   `json:"location"`
	Responsibilities []string `json:"responsibilities"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Duration    string `json:"duration"`
}

type Certification struct {
	Name string `json:"name"`
}

type Skill struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type Portfolio struct {
	ContactInfo    ContactInfo     `json:"contact_info"`
	Summary        string          `json:"summary"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Certifications []Certification `json:"certifications"`
	Skills         []Skill         `json:"skills"`
}

// Transform maps a resume document onto a Portfolio. It never fails: missing
// sections become empty slices and missing scalars become "". A nil document
// yields an empty Portfolio.
func Transform(doc *resume.Document) *Portfolio {
	if doc == nil {
		doc = &resume.Document{}
	}

	return &Portfolio{
		ContactInfo:    toContactInfo(doc),
		Summary:        doc.Basics.Summary,
		Experience:     toExperience(doc.Work),
		Education:      toEducation(doc.Education),
		Certifications: toCertifications(doc.Certificates),
		Skills:         flattenSkills(doc.Skills),
	}
}

func toContactInfo(doc *resume.Document) ContactInfo {
	loc := doc.Basics.Location

	languages := make([]string, 0, len(doc.Languages))
	for _, l := range doc.Languages {
		languages = append(languages, l.Language)
	}

	return ContactInfo{
		Name:      doc.Basics.Name,
		Title:     doc.Basics.Label,
		Location:  fmt.Sprintf("%s, %s, %s", loc.City, loc.Region, contactCountry),
		Phone:     doc.Basics.Phone,
		Address:   loc.Address,
		Languages: languages,
	}
}

func toExperience(work []resume.Work) []Experience {
	out := make([]Experience, 0, len(work))
	for _, w := range work {
		tenure := LookupTenure(w.Name, w.Position)

		responsibilities := w.Highlights
		if responsibilities == nil {
			responsibilities = []string{}
		}

		out = append(out, Experience{
			Company:          w.Name,
			Position:         w.Position,
			Duration:         tenure.Duration,
			Location:         tenure.Location,
			Responsibilities: responsibilities,
		})
	}
	return out
}

func toEducation(education []resume.Education) []Education {
	out := make([]Education, 0, len(education))
	for _, e := range education {
		out = append(out, Education{
			Institution: e.Institution,
			Degree:      fmt.Sprintf("%s, %s", e.StudyType, e.Area),
			Duration:    fmt.Sprintf("%s - %s", yearOf(e.StartDate), yearOf(e.EndDate)),
		})
	}
	return out
}

// yearOf returns the text before the first '-' of an ISO date such as
// "2006-06-01", or the whole value when it has no '-'.
func yearOf(date string) string {
	year, _, _ := strings.Cut(date, "-")
	return year
}

func toCertifications(certs []resume.Certificate) []Certification {
	out := make([]Certification, 0, len(certs))
	for _, c := range certs {
		out = append(out, Certification{Name: c.Name})
	}
	return out
}

func flattenSkills(groups []resume.Skill) []Skill {
	n := 0
	for _, g := range groups {
		n += len(g.Keywords)
	}

	out := make([]Skill, 0, n)
	for _, g := range groups {
		category := g.Name
		if category == "" {
			category = DefaultSkillCategory
		}
		for _, keyword := range g.Keywords {
			out = append(out, Skill{Name: keyword, Category: category})
		}
	}
	return out
}
