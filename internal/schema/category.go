package schema

import (
	"fmt"
	"strings"
)

// Category is one of the fixed topic labels a travel query can be routed to.
type Category string

const (
	CategoryPlace         Category = "place"
	CategoryFood          Category = "food"
	CategoryShop          Category = "shop"
	CategoryTransport     Category = "transport"
	CategoryAccommodation Category = "accommodation"
	CategoryActivity      Category = "activity"
	CategoryHiddenGem     Category = "hiddengem"
	CategoryItinerary     Category = "itinerary"
	CategoryNearbySpot    Category = "nearbyspot"
	CategoryCityInfo      Category = "cityinfo"
	CategoryConnectivity  Category = "connectivity"
	CategoryMisc          Category = "misc"
)

// DefaultCategory is the catch-all label used whenever classification cannot
// produce a better answer.
const DefaultCategory = CategoryMisc

// AllCategories lists every category in enumeration order. Classification
// parsing and bundle construction both iterate this slice, so the order is
// part of the contract.
var AllCategories = []Category{
	CategoryPlace,
	CategoryFood,
	CategoryShop,
	CategoryTransport,
	CategoryAccommodation,
	CategoryActivity,
	CategoryHiddenGem,
	CategoryItinerary,
	CategoryNearbySpot,
	CategoryCityInfo,
	CategoryConnectivity,
	CategoryMisc,
}

// CategoryConfig carries everything a generic retriever needs to serve one
// category: the vector-store namespace token, the canonical output order, the
// metadata field holding the record's display name, the optional rating field
// used by secondary filters, and a short role line for the classifier prompt.
type CategoryConfig struct {
	Category       Category
	NamespaceToken string
	NameField      string
	RatingField    string
	Role           string
	Order          []string
}

// NamespaceFor maps (city, category) to the vector-store namespace holding
// that city's records, e.g. ("varanasi", food) -> "Food-Varanasi".
func (c CategoryConfig) NamespaceFor(city string) string {
	return fmt.Sprintf("%s-%s", c.NamespaceToken, titleCity(city))
}

func titleCity(city string) string {
	city = strings.ToLower(strings.TrimSpace(city))
	if city == "" {
		return city
	}
	return strings.ToUpper(city[:1]) + city[1:]
}

var categoryConfigs = map[Category]CategoryConfig{
	CategoryPlace: {
		Category:       CategoryPlace,
		NamespaceToken: "Place",
		NameField:      "places",
		Role:           "tourist attractions like ghats, temples, monuments, sightseeing",
		Order:          placeOrder,
	},
	CategoryFood: {
		Category:       CategoryFood,
		NamespaceToken: "Food",
		NameField:      "foodPlace",
		RatingField:    "taste",
		Role:           "cafes, restaurants, dishes, street food",
		Order:          foodOrder,
	},
	CategoryShop: {
		Category:       CategoryShop,
		NamespaceToken: "Shop",
		NameField:      "shops",
		Role:           "local markets, shops, souvenirs, things to buy",
		Order:          shopOrder,
	},
	CategoryTransport: {
		Category:       CategoryTransport,
		NamespaceToken: "Transport",
		NameField:      "from",
		Role:           "taxis, buses, autos, trains, fares, getting around",
		Order:          transportOrder,
	},
	CategoryAccommodation: {
		Category:       CategoryAccommodation,
		NamespaceToken: "Accommodation",
		NameField:      "hotels",
		Role:           "hotels, guest houses, hostels, places to stay",
		Order:          accommodationOrder,
	},
	CategoryActivity: {
		Category:       CategoryActivity,
		NamespaceToken: "Activity",
		NameField:      "topActivities",
		Role:           "things to do like boat rides, aarti, yoga, adventure sports",
		Order:          activityOrder,
	},
	CategoryHiddenGem: {
		Category:       CategoryHiddenGem,
		NamespaceToken: "HiddenGem",
		NameField:      "hiddenGem",
		Role:           "lesser known spots that locals recommend",
		Order:          hiddenGemOrder,
	},
	CategoryItinerary: {
		Category:       CategoryItinerary,
		NamespaceToken: "Itinerary",
		NameField:      "cityName",
		Role:           "day-wise trip plans and schedules",
		Order:          itineraryOrder,
	},
	CategoryNearbySpot: {
		Category:       CategoryNearbySpot,
		NamespaceToken: "NearbySpot",
		NameField:      "places",
		Role:           "day-trip destinations near the city",
		Order:          nearbySpotOrder,
	},
	CategoryCityInfo: {
		Category:       CategoryCityInfo,
		NamespaceToken: "CityInfo",
		NameField:      "cityName",
		Role:           "history, climate, best time to visit, general city facts",
		Order:          cityInfoOrder,
	},
	CategoryConnectivity: {
		Category:       CategoryConnectivity,
		NamespaceToken: "Connectivity",
		NameField:      "nearestAirportStationBusStand",
		Role:           "how to reach the city, nearest airport, station, bus stand",
		Order:          connectivityOrder,
	},
	CategoryMisc: {
		Category:       CategoryMisc,
		NamespaceToken: "Misc",
		NameField:      "cityName",
		Role:           "anything else: emergencies, hospitals, parking, washrooms, local maps",
		Order:          miscOrder,
	},
}

// Config returns the retriever configuration for cat. All categories in
// AllCategories have a config; asking for anything else panics, which only a
// programming error can trigger.
func Config(cat Category) CategoryConfig {
	cfg, ok := categoryConfigs[cat]
	if !ok {
		panic(fmt.Sprintf("schema: no config for category %q", cat))
	}
	return cfg
}

// ParseCategory maps free text onto a category label, case-insensitively.
func ParseCategory(s string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, cat := range AllCategories {
		if normalized == string(cat) {
			return cat, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}
