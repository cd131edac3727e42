package protocol

// The upstream has no schema; every field is identified by its position
// inside nested arrays. Each magic index lives here exactly once, and
// the decoder only touches tuples through the named accessors below.

// Response envelope. The body starts with an anti-hijacking prefix, then
// a JSON array whose first row carries the actual payload as a
// JSON-encoded string.
const (
	antiHijackPrefix = ")]}'"

	outerPayloadRow = 0
	outerPayloadCol = 2
)

// Inner payload, itinerary search. Two fixed slots hold flight groups
// ("best" and remaining); each group's first element is the list of
// itinerary tuples.
const (
	innerDateGrid     = 1
	innerBestFlights  = 2
	innerOtherFlights = 3

	groupItineraries = 0
)

// Itinerary tuple.
const (
	itinSlice      = 0
	itinPriceBlock = 1
)

// Slice tuple within an itinerary.
const (
	sliceLegs     = 2
	sliceDuration = 9
)

// Price block: block[0] is a 2+-length array with the amount at its
// second slot. The amount may arrive as a number or a numeric string.
const (
	priceBlockFirst  = 0
	priceBlockAmount = 1
)

// Leg tuple.
const (
	legDepAirport = 3
	legArrAirport = 6
	legDepTime    = 8
	legArrTime    = 10
	legDuration   = 11
	legDepDate    = 20
	legArrDate    = 21
	legCarrier    = 22

	legTupleLen = 23

	carrierAirline = 0
	carrierNumber  = 1
)

// Calendar grid entry: one or two date strings plus a nested price
// block in the third slot.
const (
	dateEntryOutbound   = 0
	dateEntryReturn     = 1
	dateEntryPriceBlock = 2
)

// Request side. The wrapper array and each per-segment array have fixed
// widths with protocol constants in the trailing slots.
const (
	reqHeader    = 0
	reqCore      = 1
	reqDateSpan  = 2
	reqTripDays  = 3
	reqFlightLen = 2
	reqDatesLen  = 4

	coreTripType   = 2
	coreUnknownArr = 4
	coreSeat       = 5
	corePassengers = 6
	corePriceCap   = 7
	coreSegments   = 13
	coreTrailer    = 17
	coreLen        = 18

	coreTrailerConst = 1

	segDeparture    = 0
	segArrival      = 1
	segTimes        = 2
	segStops        = 3
	segAirlines     = 4
	segDate         = 6
	segMaxDuration  = 7
	segSelected     = 8
	segLayoverList  = 9
	segLayoverMax   = 13
	segTrailer      = 15
	segLen          = 16

	segTrailerConst = 3
)
