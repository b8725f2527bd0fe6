package portfolio

// Tenure is the display duration and location of one position.
type Tenure struct {
	Duration string
	Location string
}

type tenureKey struct {
	employer string
	position string
}

// anyPosition marks an entry that applies to every position at an employer.
const anyPosition = ""

// tenures is hand-authored display data. It is not derived from the resume's
// dates; employers or positions that are not listed get an empty Tenure.
var tenures = map[tenureKey]Tenure{
	{"Appfire", anyPosition}: {
		Duration: "September 2019 - Present (5 years 11 months)",
		Location: "Hyderabad Area, India",
	},
	{"OpenText", anyPosition}: {
		Duration: "January 2017 - August 2019 (2 years 8 months)",
		Location: "Hyderabad Area, India",
	},
	{"Pramati Technologies Private Limited", "Principal Engineer"}: {
		Duration: "March 2015 - January 2017 (1 year 11 months)",
		Location: "Hyderabad",
	},
	{"Pramati Technologies Private Limited", "Software Development Engineer III"}: {
		Duration: "March 2013 - March 2015 (2 years 1 month)",
		Location: "Hyderabad Area, India",
	},
	{"Nokia", "R & D Engineer III"}: {
		Duration: "March 2011 - February 2013 (2 years)",
		Location: "",
	},
	{"Nokia", "R&D Engineer II"}: {
		Duration: "February 2009 - February 2011 (2 years 1 month)",
		Location: "",
	},
	{"Sasken Communication Technologies Ltd", anyPosition}: {
		Duration: "October 2006 - February 2009 (2 years 5 months)",
		Location: "Bengaluru Area, India",
	},
}

// LookupTenure matches exactly on employer and position first, then on the
// employer alone.
func LookupTenure(employer, position string) Tenure {
	if t, ok := tenures[tenureKey{employer, position}]; ok {
		return t
	}
	if t, ok := tenures[tenureKey{employer, anyPosition}]; ok {
		return t
	}
	return Tenure{}
}
