package models

import "strings"

// Canonical room type codes. All booking records store one of these.
const (
	RoomStandard = "Standard"
	RoomDeluxe   = "Deluxe"
	RoomPremium  = "Premium"
)

// RoomType describes a bookable room category, not a physical room.
type RoomType struct {
	Code          string `json:"code"`
	DisplayName   string `json:"displayName"`
	LocalizedName string `json:"localizedName"`
	TotalRooms    int    `json:"totalRooms"`
	MinGuests     int    `json:"minGuests"`
	MaxGuests     int    `json:"maxGuests"`
	PricePerNight int64  `json:"pricePerNight"` // Lek per night
	IsActive      bool   `json:"isActive"`
}

// roomAliases maps lowercased synonyms (site labels, Albanian variants,
// marketing names) to a canonical code. Exact lookup runs first; the
// ordered containment scan below catches longer free-text mentions.
var roomAliases = map[string]string{
	"standard":               RoomStandard,
	"standard room":          RoomStandard,
	"standard mountain room": RoomStandard,
	"standarde":              RoomStandard,
	"dhome standarde":        RoomStandard,
	"dhomë standarde":        RoomStandard,
	"deluxe":                 RoomDeluxe,
	"delux":                  RoomDeluxe,
	"deluxe room":            RoomDeluxe,
	"deluxe mountain view":   RoomDeluxe,
	"dhome deluxe":           RoomDeluxe,
	"dhomë deluxe":           RoomDeluxe,
	"premium":                RoomPremium,
	"premium suite":          RoomPremium,
	"suite":                  RoomPremium,
	"apartament premium":     RoomPremium,
}

// containment scan order: longer/more specific keywords first so that
// "premium suite" does not resolve through a shorter alias of another type.
var roomKeywords = []string{
	"standarde", "standard",
	"deluxe", "delux", "dhome deluxe", "dhomë deluxe",
	"premium", "suite",
}

// NormalizeRoomCode collapses a user-supplied room label to a canonical
// code. Returns false when nothing recognizable was found.
func NormalizeRoomCode(s string) (string, bool) {
	needle := strings.ToLower(strings.Join(strings.Fields(s), " "))
	if needle == "" {
		return "", false
	}
	if code, ok := roomAliases[needle]; ok {
		return code, true
	}
	for _, kw := range roomKeywords {
		if strings.Contains(needle, kw) {
			return roomAliases[kw], true
		}
	}
	return "", false
}

// MatchRoomMention finds the earliest room keyword in free text and
// returns its canonical code with the byte position of the mention.
func MatchRoomMention(text string) (string, int, bool) {
	lower := strings.ToLower(text)
	bestPos := -1
	bestCode := ""
	for _, kw := range roomKeywords {
		if pos := strings.Index(lower, kw); pos >= 0 && (bestPos < 0 || pos < bestPos) {
			bestPos = pos
			bestCode = roomAliases[kw]
		}
	}
	if bestPos < 0 {
		return "", 0, false
	}
	return bestCode, bestPos, true
}

// SeedRoomTypes is the catalog installed on first run. Prices are Lek.
func SeedRoomTypes() []RoomType {
	return []RoomType{
		{Code: RoomStandard, DisplayName: "Standard Mountain Room", LocalizedName: "Dhomë Standarde", TotalRooms: 5, MinGuests: 1, MaxGuests: 2, PricePerNight: 5000, IsActive: true},
		{Code: RoomDeluxe, DisplayName: "Deluxe Mountain View", LocalizedName: "Dhomë Deluxe", TotalRooms: 3, MinGuests: 1, MaxGuests: 3, PricePerNight: 8000, IsActive: true},
		{Code: RoomPremium, DisplayName: "Premium Suite", LocalizedName: "Apartament Premium", TotalRooms: 2, MinGuests: 1, MaxGuests: 4, PricePerNight: 12000, IsActive: true},
	}
}
