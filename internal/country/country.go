// Package country provides the static country name to ISO-3166 alpha-2
// code table used to scope GeoNames lookups, plus display-name
// normalization for the directory's navigation pages.
package country

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Code returns the ISO alpha-2 code for a country display name. The lookup
// is exact and case-sensitive; a miss is a normal outcome (the country is
// simply unsupported), never an error.
func Code(name string) (string, bool) {
	code, ok := codes[name]
	return code, ok
}

// Supported reports whether the display name has a code in the table.
func Supported(name string) bool {
	_, ok := codes[name]
	return ok
}

// Canonical resolves well-known aliases ("USA", "UK", ...) to the display
// name used as the table key. Unaliased names are returned trimmed but
// otherwise untouched.
func Canonical(name string) string {
	trimmed := strings.TrimSpace(name)
	if canonical, ok := aliases[strings.ToUpper(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// NormalizeDisplayName returns a consistent label for aggregates: the
// alias table wins, otherwise each word is title-cased. The result is
// cosmetic only and must not be fed back through Canonical — aliases map
// to already-final display names and re-resolving risks a
// double-transformation.
func NormalizeDisplayName(name string) string {
	trimmed := strings.TrimSpace(name)
	if canonical, ok := aliases[strings.ToUpper(trimmed)]; ok {
		return canonical
	}
	return titleCaser.String(strings.ToLower(trimmed))
}

// Equivalent reports whether two display names refer to the same country,
// ignoring case and resolving aliases on both sides. "usa", "USA" and
// "United States" are all equivalent.
func Equivalent(a, b string) bool {
	return strings.EqualFold(Canonical(a), Canonical(b))
}

var titleCaser = cases.Title(language.English)

// aliases maps upper-cased common alternative names to the display name
// keyed in the codes table. Matching is case-insensitive on the alias
// side so "usa" and "USA" both resolve.
var aliases = map[string]string{
	"USA":                          "United States",
	"US":                           "United States",
	"UNITED STATES OF AMERICA":     "United States",
	"AMERICA":                      "United States",
	"UK":                           "United Kingdom",
	"GREAT BRITAIN":                "United Kingdom",
	"ENGLAND":                      "United Kingdom",
	"UAE":                          "United Arab Emirates",
	"DRC":                          "Democratic Republic of the Congo",
	"DR CONGO":                     "Democratic Republic of the Congo",
	"CZECH REPUBLIC":               "Czechia",
	"HOLLAND":                      "Netherlands",
	"THE NETHERLANDS":              "Netherlands",
	"SOUTH KOREA":                  "South Korea",
	"REPUBLIC OF KOREA":            "South Korea",
	"KOREA":                        "South Korea",
	"RUSSIAN FEDERATION":           "Russia",
	"IVORY COAST":                  "Cote d'Ivoire",
	"CABO VERDE":                   "Cape Verde",
	"BURMA":                        "Myanmar",
	"SWAZILAND":                    "Eswatini",
	"THE BAHAMAS":                  "Bahamas",
	"THE GAMBIA":                   "Gambia",
	"MACEDONIA":                    "North Macedonia",
	"TURKIYE":                      "Turkey",
	"VATICAN":                      "Vatican City",
	"ST LUCIA":                     "Saint Lucia",
	"ST KITTS AND NEVIS":           "Saint Kitts and Nevis",
	"ST VINCENT AND THE GRENADINES": "Saint Vincent and the Grenadines",
}

// codes is the supported-country table. Keys are the canonical display
// names used throughout the directory; values are ISO-3166 alpha-2 codes
// accepted by the GeoNames country filter.
var codes = map[string]string{
	"Afghanistan":                      "AF",
	"Albania":                          "AL",
	"Algeria":                          "DZ",
	"Andorra":                          "AD",
	"Angola":                           "AO",
	"Antigua and Barbuda":              "AG",
	"Argentina":                        "AR",
	"Armenia":                          "AM",
	"Australia":                        "AU",
	"Austria":                          "AT",
	"Azerbaijan":                       "AZ",
	"Bahamas":                          "BS",
	"Bahrain":                          "BH",
	"Bangladesh":                       "BD",
	"Barbados":                         "BB",
	"Belarus":                          "BY",
	"Belgium":                          "BE",
	"Belize":                           "BZ",
	"Benin":                            "BJ",
	"Bhutan":                           "BT",
	"Bolivia":                          "BO",
	"Bosnia and Herzegovina":           "BA",
	"Botswana":                         "BW",
	"Brazil":                           "BR",
	"Brunei":                           "BN",
	"Bulgaria":                         "BG",
	"Burkina Faso":                     "BF",
	"Burundi":                          "BI",
	"Cambodia":                         "KH",
	"Cameroon":                         "CM",
	"Canada":                           "CA",
	"Cape Verde":                       "CV",
	"Central African Republic":         "CF",
	"Chad":                             "TD",
	"Chile":                            "CL",
	"China":                            "CN",
	"Colombia":                         "CO",
	"Comoros":                          "KM",
	"Costa Rica":                       "CR",
	"Cote d'Ivoire":                    "CI",
	"Croatia":                          "HR",
	"Cuba":                             "CU",
	"Cyprus":                           "CY",
	"Czechia":                          "CZ",
	"Democratic Republic of the Congo": "CD",
	"Denmark":                          "DK",
	"Djibouti":                         "DJ",
	"Dominica":                         "DM",
	"Dominican Republic":               "DO",
	"Ecuador":                          "EC",
	"Egypt":                            "EG",
	"El Salvador":                      "SV",
	"Equatorial Guinea":                "GQ",
	"Eritrea":                          "ER",
	"Estonia":                          "EE",
	"Eswatini":                         "SZ",
	"Ethiopia":                         "ET",
	"Fiji":                             "FJ",
	"Finland":                          "FI",
	"France":                           "FR",
	"Gabon":                            "GA",
	"Gambia":                           "GM",
	"Georgia":                          "GE",
	"Germany":                          "DE",
	"Ghana":                            "GH",
	"Greece":                           "GR",
	"Grenada":                          "GD",
	"Guatemala":                        "GT",
	"Guinea":                           "GN",
	"Guinea-Bissau":                    "GW",
	"Guyana":                           "GY",
	"Haiti":                            "HT",
	"Honduras":                         "HN",
	"Hungary":                          "HU",
	"Iceland":                          "IS",
	"India":                            "IN",
	"Indonesia":                        "ID",
	"Iran":                             "IR",
	"Iraq":                             "IQ",
	"Ireland":                          "IE",
	"Israel":                           "IL",
	"Italy":                            "IT",
	"Jamaica":                          "JM",
	"Japan":                            "JP",
	"Jordan":                           "JO",
	"Kazakhstan":                       "KZ",
	"Kenya":                            "KE",
	"Kiribati":                         "KI",
	"Kuwait":                           "KW",
	"Kyrgyzstan":                       "KG",
	"Laos":                             "LA",
	"Latvia":                           "LV",
	"Lebanon":                          "LB",
	"Lesotho":                          "LS",
	"Liberia":                          "LR",
	"Libya":                            "LY",
	"Liechtenstein":                    "LI",
	"Lithuania":                        "LT",
	"Luxembourg":                       "LU",
	"Madagascar":                       "MG",
	"Malawi":                           "MW",
	"Malaysia":                         "MY",
	"Maldives":                         "MV",
	"Mali":                             "ML",
	"Malta":                            "MT",
	"Marshall Islands":                 "MH",
	"Mauritania":                       "MR",
	"Mauritius":                        "MU",
	"Mexico":                           "MX",
	"Micronesia":                       "FM",
	"Moldova":                          "MD",
	"Monaco":                           "MC",
	"Mongolia":                         "MN",
	"Montenegro":                       "ME",
	"Morocco":                          "MA",
	"Mozambique":                       "MZ",
	"Myanmar":                          "MM",
	"Namibia":                          "NA",
	"Nauru":                            "NR",
	"Nepal":                            "NP",
	"Netherlands":                      "NL",
	"New Zealand":                      "NZ",
	"Nicaragua":                        "NI",
	"Niger":                            "NE",
	"Nigeria":                          "NG",
	"North Korea":                      "KP",
	"North Macedonia":                  "MK",
	"Norway":                           "NO",
	"Oman":                             "OM",
	"Pakistan":                         "PK",
	"Palau":                            "PW",
	"Panama":                           "PA",
	"Papua New Guinea":                 "PG",
	"Paraguay":                         "PY",
	"Peru":                             "PE",
	"Philippines":                      "PH",
	"Poland":                           "PL",
	"Portugal":                         "PT",
	"Qatar":                            "QA",
	"Republic of the Congo":            "CG",
	"Romania":                          "RO",
	"Russia":                           "RU",
	"Rwanda":                           "RW",
	"Saint Kitts and Nevis":            "KN",
	"Saint Lucia":                      "LC",
	"Saint Vincent and the Grenadines": "VC",
	"Samoa":                            "WS",
	"San Marino":                       "SM",
	"Sao Tome and Principe":            "ST",
	"Saudi Arabia":                     "SA",
	"Senegal":                          "SN",
	"Serbia":                           "RS",
	"Seychelles":                       "SC",
	"Sierra Leone":                     "SL",
	"Singapore":                        "SG",
	"Slovakia":                         "SK",
	"Slovenia":                         "SI",
	"Solomon Islands":                  "SB",
	"Somalia":                          "SO",
	"South Africa":                     "ZA",
	"South Korea":                      "KR",
	"South Sudan":                      "SS",
	"Spain":                            "ES",
	"Sri Lanka":                        "LK",
	"Sudan":                            "SD",
	"Suriname":                         "SR",
	"Sweden":                           "SE",
	"Switzerland":                      "CH",
	"Syria":                            "SY",
	"Taiwan":                           "TW",
	"Tajikistan":                       "TJ",
	"Tanzania":                         "TZ",
	"Thailand":                         "TH",
	"Timor-Leste":                      "TL",
	"Togo":                             "TG",
	"Tonga":                            "TO",
	"Trinidad and Tobago":              "TT",
	"Tunisia":                          "TN",
	"Turkey":                           "TR",
	"Turkmenistan":                     "TM",
	"Tuvalu":                           "TV",
	"Uganda":                           "UG",
	"Ukraine":                          "UA",
	"United Arab Emirates":             "AE",
	"United Kingdom":                   "GB",
	"United States":                    "US",
	"Uruguay":                          "UY",
	"Uzbekistan":                       "UZ",
	"Vanuatu":                          "VU",
	"Vatican City":                     "VA",
	"Venezuela":                        "VE",
	"Vietnam":                          "VN",
	"Yemen":                            "YE",
	"Zambia":                           "ZM",
	"Zimbabwe":                         "ZW",
}
