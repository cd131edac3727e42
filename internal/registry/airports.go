package registry

// IATA airport codes the encoder will accept and the decoder will
// resolve. The upstream adds airports without notice; unknown codes on
// decode drop the leg, and the table can be extended at startup from a
// config file rather than edited here.
var airportNames = map[string]string{
	// North America
	"ATL": "Hartsfield-Jackson Atlanta International",
	"AUS": "Austin-Bergstrom International",
	"BNA": "Nashville International",
	"BOS": "Boston Logan International",
	"BWI": "Baltimore/Washington International",
	"CLT": "Charlotte Douglas International",
	"DAL": "Dallas Love Field",
	"DCA": "Ronald Reagan Washington National",
	"DEN": "Denver International",
	"DFW": "Dallas/Fort Worth International",
	"DTW": "Detroit Metropolitan Wayne County",
	"EWR": "Newark Liberty International",
	"FLL": "Fort Lauderdale-Hollywood International",
	"HNL": "Daniel K. Inouye International",
	"HOU": "William P. Hobby",
	"IAD": "Washington Dulles International",
	"IAH": "George Bush Intercontinental",
	"JFK": "John F. Kennedy International",
	"LAS": "Harry Reid International",
	"LAX": "Los Angeles International",
	"LGA": "LaGuardia",
	"MCO": "Orlando International",
	"MDW": "Chicago Midway International",
	"MIA": "Miami International",
	"MSP": "Minneapolis-Saint Paul International",
	"MSY": "Louis Armstrong New Orleans International",
	"OAK": "Oakland International",
	"ORD": "Chicago O'Hare International",
	"PDX": "Portland International",
	"PHL": "Philadelphia International",
	"PHX": "Phoenix Sky Harbor International",
	"PIT": "Pittsburgh International",
	"RDU": "Raleigh-Durham International",
	"SAN": "San Diego International",
	"SAT": "San Antonio International",
	"SEA": "Seattle-Tacoma International",
	"SFO": "San Francisco International",
	"SJC": "Norman Y. Mineta San Jose International",
	"SLC": "Salt Lake City International",
	"SMF": "Sacramento International",
	"STL": "St. Louis Lambert International",
	"TPA": "Tampa International",
	"YUL": "Montreal-Trudeau International",
	"YVR": "Vancouver International",
	"YYZ": "Toronto Pearson International",

	// Latin America
	"BOG": "El Dorado International",
	"CUN": "Cancun International",
	"EZE": "Ministro Pistarini International",
	"GIG": "Rio de Janeiro-Galeao International",
	"GRU": "Sao Paulo-Guarulhos International",
	"LIM": "Jorge Chavez International",
	"MEX": "Mexico City International",
	"PTY": "Tocumen International",
	"SCL": "Arturo Merino Benitez International",
	"SJU": "Luis Munoz Marin International",

	// Europe
	"AMS": "Amsterdam Schiphol",
	"ARN": "Stockholm Arlanda",
	"ATH": "Athens International",
	"BCN": "Barcelona-El Prat",
	"BRU": "Brussels",
	"CDG": "Paris Charles de Gaulle",
	"CPH": "Copenhagen",
	"DUB": "Dublin",
	"FCO": "Rome Fiumicino",
	"FRA": "Frankfurt",
	"GVA": "Geneva",
	"HEL": "Helsinki-Vantaa",
	"IST": "Istanbul",
	"LGW": "London Gatwick",
	"LHR": "London Heathrow",
	"LIS": "Lisbon Humberto Delgado",
	"MAD": "Adolfo Suarez Madrid-Barajas",
	"MUC": "Munich",
	"MXP": "Milan Malpensa",
	"OSL": "Oslo Gardermoen",
	"PRG": "Vaclav Havel Prague",
	"VIE": "Vienna International",
	"WAW": "Warsaw Chopin",
	"ZRH": "Zurich",

	// Middle East / Africa
	"AUH": "Abu Dhabi International",
	"CAI": "Cairo International",
	"CPT": "Cape Town International",
	"DOH": "Hamad International",
	"DXB": "Dubai International",
	"JNB": "O. R. Tambo International",
	"TLV": "Ben Gurion",

	// Asia-Pacific
	"AKL": "Auckland",
	"BKK": "Suvarnabhumi",
	"BLR": "Kempegowda International",
	"BOM": "Chhatrapati Shivaji Maharaj International",
	"CGK": "Soekarno-Hatta International",
	"DEL": "Indira Gandhi International",
	"DPS": "Ngurah Rai International",
	"HKG": "Hong Kong International",
	"HND": "Tokyo Haneda",
	"ICN": "Incheon International",
	"KIX": "Kansai International",
	"KUL": "Kuala Lumpur International",
	"MEL": "Melbourne",
	"MNL": "Ninoy Aquino International",
	"NRT": "Tokyo Narita",
	"PEK": "Beijing Capital International",
	"PVG": "Shanghai Pudong International",
	"SIN": "Singapore Changi",
	"SYD": "Sydney Kingsford Smith",
	"TPE": "Taiwan Taoyuan International",
}
