// Package geo resolves ISO 3166-1 alpha-2 country codes to display names for
// the analytics summary. The table is fixed; codes outside it (and events
// with no code at all) resolve to "Unknown".
package geo

import "strings"

// Unknown is the display name used when no code or name is present.
const Unknown = "Unknown"

var countryNames = map[string]string{
	"US": "United States",
	"CA": "Canada",
	"MX": "Mexico",
	"GB": "United Kingdom",
	"IE": "Ireland",
	"FR": "France",
	"DE": "Germany",
	"ES": "Spain",
	"PT": "Portugal",
	"IT": "Italy",
	"NL": "Netherlands",
	"BE": "Belgium",
	"CH": "Switzerland",
	"AT": "Austria",
	"SE": "Sweden",
	"NO": "Norway",
	"DK": "Denmark",
	"FI": "Finland",
	"PL": "Poland",
	"CZ": "Czechia",
	"GR": "Greece",
	"TR": "Turkey",
	"RU": "Russia",
	"UA": "Ukraine",
	"IL": "Israel",
	"AE": "United Arab Emirates",
	"SA": "Saudi Arabia",
	"IN": "India",
	"CN": "China",
	"HK": "Hong Kong",
	"TW": "Taiwan",
	"JP": "Japan",
	"KR": "South Korea",
	"SG": "Singapore",
	"TH": "Thailand",
	"VN": "Vietnam",
	"PH": "Philippines",
	"ID": "Indonesia",
	"MY": "Malaysia",
	"AU": "Australia",
	"NZ": "New Zealand",
	"BR": "Brazil",
	"AR": "Argentina",
	"CL": "Chile",
	"CO": "Colombia",
	"PE": "Peru",
	"ZA": "South Africa",
	"NG": "Nigeria",
	"EG": "Egypt",
	"KE": "Kenya",
}

// CountryName resolves a country code to a display name. A non-empty name
// argument wins (the client already resolved one); otherwise the code is
// looked up case-insensitively; otherwise Unknown.
func CountryName(code, name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Unknown
	}
	if display, ok := countryNames[code]; ok {
		return display
	}
	return Unknown
}
