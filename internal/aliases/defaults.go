package aliases

// Unknown is the canonical name for an empty distributor credit.
const Unknown = "Unknown"

var defaultDistributors = map[string]string{
	"Walt Disney Studios Motion Pictures": "Walt Disney",
	"Walt Disney Pictures":                "Walt Disney",
	"Disney":                              "Walt Disney",
	"Buena Vista":                         "Walt Disney",
	"20th Century Studios":                "Walt Disney",
	"Searchlight Pictures":                "Walt Disney",

	"Warner Bros. Pictures": "Warner Bros.",
	"Warner Bros":           "Warner Bros.",
	"Warner Brothers":       "Warner Bros.",

	"Universal Pictures":              "Universal",
	"Universal Pictures Distribution": "Universal",
	"Focus Features":                  "Universal",

	"Sony Pictures Releasing":           "Sony Pictures",
	"Sony Pictures Entertainment (SPE)": "Sony Pictures",
	"Sony":                              "Sony Pictures",
	"TriStar Pictures":                  "Sony Pictures",
	"Columbia Pictures":                 "Sony Pictures",

	"Paramount Pictures": "Paramount Pictures",
	"Paramount":          "Paramount Pictures",

	"Lionsgate":        "Lionsgate",
	"Lions Gate Films": "Lionsgate",

	"A24 Films":        "A24",
	"A24 Distribution": "A24",
}
