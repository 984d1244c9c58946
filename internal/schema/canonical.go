package schema

import "sort"

// Canonical key orders per record type. A canonicalized record only ever
// contains keys from the order that matched it, in this exact sequence.
var (
	foodOrder = []string{
		"_id", "cityId", "cityName", "flagship", "foodPlace", "lat", "lon", "address", "locationLink",
		"category", "vegOrNonVeg", "valueForMoney", "service", "taste", "hygiene",
		"menuSpecial", "menuLink", "openDay", "openTime", "phone", "website", "description",
		"images", "videos", "premium",
	}

	placeOrder = []string{
		"_id", "cityId", "cityName", "places", "category", "lat", "lon", "address", "locationLink",
		"openDay", "openTime", "establishYear", "fee", "description", "essential", "story",
		"images", "videos", "premium",
	}

	souvenirOrder = []string{
		"_id", "cityId", "cityName", "flagShip", "shops", "lat", "lon", "address", "locationLink",
		"famousFor", "priceRange", "openDay", "openTime", "phone", "website", "images", "premium",
	}

	shopOrder = []string{
		"_id", "cityId", "cityName", "flagship", "shops", "lat", "lon", "address", "locationLink",
		"famousFor", "priceRange", "openDay", "openTime", "phone", "website", "images", "premium",
	}

	transportOrder = []string{
		"_id", "cityId", "cityName", "from", "to", "autoPrice", "cabPrice", "bikePrice", "premium",
	}

	accommodationOrder = []string{
		"_id", "cityId", "cityName", "flagship", "hotels", "category", "lat", "lon", "address", "locationLink",
		"roomTypes", "facilities", "images", "premium",
	}

	activityOrder = []string{
		"_id", "cityId", "cityName", "topActivities", "bestPlaces", "fee", "description", "essentials",
		"images", "videos", "premium",
	}

	cityInfoOrder = []string{
		"_id", "cityId", "cityName", "stateOrUT", "alternateNames", "bestTimeToVisit", "climateInfo",
		"cityHistory", "languagesSpoken", "coverImage", "premium",
	}

	connectivityOrder = []string{
		"_id", "cityId", "cityName", "nearestAirportStationBusStand", "distance", "majorFlightsTrainsBuses",
		"lat", "lon", "locationLink", "premium",
	}

	hiddenGemOrder = []string{
		"_id", "cityId", "cityName", "hiddenGem", "category", "lat", "lon", "address", "locationLink",
		"description", "story", "essential", "establishYear", "fee", "openDay", "openTime",
		"images", "videos", "premium",
	}

	itineraryOrder = []string{
		"_id", "cityId", "cityName", "day1", "day2", "day3", "premium",
	}

	miscOrder = []string{
		"_id", "cityId", "cityName", "emergencyContacts", "hospital", "hospitalLat", "hospitalLon", "hospitalLocationLink",
		"PoliceLat", "PoliceLon", "PoliceLocationLink", "parking", "parkingLat", "parkingLon", "parkingLocationLink",
		"publicWashrooms", "publicWashroomsLat", "publicWashroomsLon", "publicWashroomsLocationLink",
		"localMap", "premium",
	}

	nearbySpotOrder = []string{
		"_id", "cityId", "cityName", "places", "category", "lat", "lon", "address", "locationLink", "distance",
		"description", "essential", "story", "establishYear", "fee", "openDay", "openTime",
		"images", "videos", "premium",
	}
)

type sniffRule struct {
	name  string
	match func(meta map[string]any) bool
	order []string
}

func has(meta map[string]any, keys ...string) bool {
	for _, k := range keys {
		if _, ok := meta[k]; !ok {
			return false
		}
	}
	return true
}

func hasAny(meta map[string]any, keys ...string) bool {
	for _, k := range keys {
		if _, ok := meta[k]; ok {
			return true
		}
	}
	return false
}

// sniffRules is the record-type disambiguation chain. Order matters: the most
// specific signatures come first and a record matching several rules resolves
// to the first hit. In particular the souvenir variant (flagShip) must be
// tried before the generic shop schema, misc markers before the from/to pair,
// and nearby-spot (places plus a distance key) before plain place.
var sniffRules = []sniffRule{
	{"food", func(m map[string]any) bool { return has(m, "foodPlace") }, foodOrder},
	{"souvenir", func(m map[string]any) bool { return has(m, "shops", "famousFor", "flagShip") }, souvenirOrder},
	{"shop", func(m map[string]any) bool { return has(m, "shops", "famousFor") }, shopOrder},
	{"accommodation", func(m map[string]any) bool { return has(m, "hotels") }, accommodationOrder},
	{"activity", func(m map[string]any) bool { return has(m, "topActivities") }, activityOrder},
	{"connectivity", func(m map[string]any) bool { return has(m, "nearestAirportStationBusStand") }, connectivityOrder},
	{"hiddengem", func(m map[string]any) bool { return has(m, "hiddenGem") }, hiddenGemOrder},
	{"itinerary", func(m map[string]any) bool { return hasAny(m, "day1", "day2", "day3") }, itineraryOrder},
	{"misc", func(m map[string]any) bool {
		return hasAny(m, "topic", "emergencyContacts", "localMap") || has(m, "question", "answer")
	}, miscOrder},
	{"transport", func(m map[string]any) bool { return has(m, "from", "to") }, transportOrder},
	{"cityinfo", func(m map[string]any) bool { return hasAny(m, "cityHistory", "bestTimeToVisit") }, cityInfoOrder},
	{"nearbyspot", func(m map[string]any) bool {
		return has(m, "places") && hasAny(m, "distance", "travelTime")
	}, nearbySpotOrder},
	{"place", func(m map[string]any) bool { return has(m, "places") }, placeOrder},
}

// Canonicalize re-emits a metadata record of unknown shape with its matched
// schema's key order. Keys absent from the schema are dropped, keys with nil
// values are omitted. Records matching no known signature pass through with
// their keys sorted lexicographically, so the result is deterministic for any
// input. Pure function, no I/O.
func Canonicalize(meta map[string]any) Record {
	for _, rule := range sniffRules {
		if rule.match(meta) {
			return project(meta, rule.order)
		}
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return project(meta, keys)
}

func project(meta map[string]any, order []string) Record {
	out := make(Record, 0, len(order))
	for _, k := range order {
		v, ok := meta[k]
		if !ok || v == nil {
			continue
		}
		out = append(out, Field{Key: k, Value: v})
	}
	return out
}
