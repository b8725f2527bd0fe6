package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupTenure(t *testing.T) {
	tests := []struct {
		name     string
		employer string
		position string
		want     Tenure
	}{
		{
			name:     "employer wildcard ignores position",
			employer: "Appfire",
			position: "Principal Engineer",
			want:     Tenure{"September 2019 - Present (5 years 11 months)", "Hyderabad Area, India"},
		},
		{
			name:     "employer wildcard with empty position",
			employer: "Sasken Communication Technologies Ltd",
			want:     Tenure{"October 2006 - February 2009 (2 years 5 months)", "Bengaluru Area, India"},
		},
		{
			name:     "position disambiguates",
			employer: "Pramati Technologies Private Limited",
			position: "Principal Engineer",
			want:     Tenure{"March 2015 - January 2017 (1 year 11 months)", "Hyderabad"},
		},
		{
			name:     "position disambiguates second entry",
			employer: "Pramati Technologies Private Limited",
			position: "Software Development Engineer III",
			want:     Tenure{"March 2013 - March 2015 (2 years 1 month)", "Hyderabad Area, India"},
		},
		{
			name:     "spacing in position is significant",
			employer: "Nokia",
			position: "R & D Engineer III",
			want:     Tenure{"March 2011 - February 2013 (2 years)", ""},
		},
		{
			name:     "unlisted position at positional employer",
			employer: "Nokia",
			position: "R&D Engineer III",
		},
		{
			name:     "unknown employer",
			employer: "Initech",
			position: "Engineer",
		},
		{
			name:     "match is case sensitive",
			employer: "appfire",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupTenure(tt.employer, tt.position))
		})
	}
}
