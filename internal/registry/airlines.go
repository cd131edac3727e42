package registry

// IATA carrier codes. Same maintenance policy as the airport table.
var airlineNames = map[string]string{
	"AA": "American Airlines",
	"AC": "Air Canada",
	"AF": "Air France",
	"AI": "Air India",
	"AM": "Aeromexico",
	"AR": "Aerolineas Argentinas",
	"AS": "Alaska Airlines",
	"AV": "Avianca",
	"AY": "Finnair",
	"AZ": "ITA Airways",
	"B6": "JetBlue Airways",
	"BA": "British Airways",
	"BR": "EVA Air",
	"CA": "Air China",
	"CI": "China Airlines",
	"CM": "Copa Airlines",
	"CX": "Cathay Pacific",
	"DE": "Condor",
	"DL": "Delta Air Lines",
	"EK": "Emirates",
	"ET": "Ethiopian Airlines",
	"EY": "Etihad Airways",
	"F9": "Frontier Airlines",
	"FI": "Icelandair",
	"FR": "Ryanair",
	"GA": "Garuda Indonesia",
	"HA": "Hawaiian Airlines",
	"IB": "Iberia",
	"JL": "Japan Airlines",
	"KE": "Korean Air",
	"KL": "KLM Royal Dutch Airlines",
	"LA": "LATAM Airlines",
	"LH": "Lufthansa",
	"LO": "LOT Polish Airlines",
	"LX": "Swiss International Air Lines",
	"MH": "Malaysia Airlines",
	"MU": "China Eastern Airlines",
	"NH": "All Nippon Airways",
	"NK": "Spirit Airlines",
	"NZ": "Air New Zealand",
	"OS": "Austrian Airlines",
	"OZ": "Asiana Airlines",
	"PR": "Philippine Airlines",
	"QF": "Qantas",
	"QR": "Qatar Airways",
	"SA": "South African Airways",
	"SK": "SAS Scandinavian Airlines",
	"SN": "Brussels Airlines",
	"SQ": "Singapore Airlines",
	"SU": "Aeroflot",
	"SV": "Saudia",
	"TG": "Thai Airways",
	"TK": "Turkish Airlines",
	"TP": "TAP Air Portugal",
	"UA": "United Airlines",
	"UX": "Air Europa",
	"VA": "Virgin Australia",
	"VN": "Vietnam Airlines",
	"VS": "Virgin Atlantic",
	"WN": "Southwest Airlines",
	"WS": "WestJet",
}
