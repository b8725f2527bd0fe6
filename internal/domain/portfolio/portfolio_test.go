package portfolio

import (
	"encoding/json"
	"testing"

	"github.com/khoahotran/portfolio/internal/domain/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, raw string) *resume.Document {
	t.Helper()
	doc, err := resume.Parse([]byte(raw))
	require.NoError(t, err)
	return doc
}

func TestTransform_EmptyDocument(t *testing.T) {
	for _, doc := range []*resume.Document{nil, {}, parse(t, `{"basics":null,"work":null,"skills":[null]}`)} {
		p := Transform(doc)
		require.NotNil(t, p)

		assert.NotNil(t, p.Experience)
		assert.NotNil(t, p.Education)
		assert.NotNil(t, p.Certifications)
		assert.NotNil(t, p.Skills)
		assert.NotNil(t, p.ContactInfo.Languages)
		assert.Empty(t, p.Skills)
		assert.Empty(t, p.Summary)
		assert.Equal(t, ", , India", p.ContactInfo.Location)
	}
}

func TestTransform_EmptyDocumentEncodesEmptyArrays(t *testing.T) {
	out, err := json.Marshal(Transform(&resume.Document{}))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"contact_info": {"name":"","title":"","location":", , India","phone":"","address":"","languages":[]},
		"summary": "",
		"experience": [],
		"education": [],
		"certifications": [],
		"skills": []
	}`, string(out))
}

func TestTransform_SkillsFlattenInOrder(t *testing.T) {
	doc := parse(t, `{"skills":[
		{"name":"Languages","keywords":["Go","Java"]},
		{"name":"Cloud","keywords":["AWS"]}
	]}`)

	p := Transform(doc)

	assert.Equal(t, []Skill{
		{Name: "Go", Category: "Languages"},
		{Name: "Java", Category: "Languages"},
		{Name: "AWS", Category: "Cloud"},
	}, p.Skills)
}

func TestTransform_UnnamedSkillGroupIsOther(t *testing.T) {
	doc := parse(t, `{"skills":[{"keywords":["Kafka"]},{"name":"Tools"},{"name":null,"keywords":["Redis"]}]}`)

	p := Transform(doc)

	assert.Equal(t, []Skill{
		{Name: "Kafka", Category: DefaultSkillCategory},
		{Name: "Redis", Category: DefaultSkillCategory},
	}, p.Skills)
}

func TestTransform_ExperienceUsesTenureTable(t *testing.T) {
	doc := parse(t, `{"work":[
		{"name":"Appfire","position":"Principal Engineer","startDate":"2001-01-01","endDate":"2002-01-01","highlights":["Led teams"]},
		{"name":"Acme","position":"Engineer","startDate":"2020-01-01"},
		{"name":"Nokia","position":"R&D Engineer II"}
	]}`)

	p := Transform(doc)
	require.Len(t, p.Experience, 3)

	assert.Equal(t, Experience{
		Company:          "Appfire",
		Position:         "Principal Engineer",
		Duration:         "September 2019 - Present (5 years 11 months)",
		Location:         "Hyderabad Area, India",
		Responsibilities: []string{"Led teams"},
	}, p.Experience[0])

	assert.Equal(t, "Acme", p.Experience[1].Company)
	assert.Empty(t, p.Experience[1].Duration)
	assert.Empty(t, p.Experience[1].Location)
	assert.Equal(t, []string{}, p.Experience[1].Responsibilities)

	assert.Equal(t, "February 2009 - February 2011 (2 years 1 month)", p.Experience[2].Duration)
	assert.Empty(t, p.Experience[2].Location)
}

func TestTransform_Education(t *testing.T) {
	doc := parse(t, `{"education":[
		{"institution":"NIT","studyType":"Bachelor","area":"Computer Science","startDate":"2006-06-01","endDate":"2010-05-30"},
		{"institution":"Online","startDate":"2015"}
	]}`)

	p := Transform(doc)

	assert.Equal(t, []Education{
		{Institution: "NIT", Degree: "Bachelor, Computer Science", Duration: "2006 - 2010"},
		{Institution: "Online", Degree: ", ", Duration: "2015 - "},
	}, p.Education)
}

func TestTransform_ContactInfoAndCertifications(t *testing.T) {
	doc := parse(t, `{
		"basics":{
			"name":"Purna","label":"Principal Engineer","phone":"+91 123","summary":"Builds things",
			"location":{"city":"Hyderabad","region":"Telangana","countryCode":"US","address":"Road 1"}
		},
		"languages":[{"language":"English","fluency":"Fluent"},{"language":"Telugu"}],
		"certificates":[{"name":"CKA","issuer":"CNCF","date":"2021-01-01"},{"issuer":"AWS"}]
	}`)

	p := Transform(doc)

	assert.Equal(t, ContactInfo{
		Name:      "Purna",
		Title:     "Principal Engineer",
		Location:  "Hyderabad, Telangana, India",
		Phone:     "+91 123",
		Address:   "Road 1",
		Languages: []string{"English", "Telugu"},
	}, p.ContactInfo)
	assert.Equal(t, "Builds things", p.Summary)
	assert.Equal(t, []Certification{{Name: "CKA"}, {Name: ""}}, p.Certifications)
}

func TestTransform_IsDeterministic(t *testing.T) {
	doc := parse(t, `{"work":[{"name":"OpenText","highlights":["a","b"]}],"skills":[{"name":"X","keywords":["y"]}]}`)

	assert.Equal(t, Transform(doc), Transform(doc))
}
