package keywords

// City is a canonical location label with the aliases that resolve to it
type City struct {
	Label   string
	Aliases []string
}

// Gazetteer is checked in order; the first city with an alias found in the
// message wins
var Gazetteer = []City{
	{Label: "Hà Nội", Aliases: []string{"hà nội", "ha noi", "hanoi", "hn"}},
	{Label: "TP.HCM", Aliases: []string{"hồ chí minh", "tp.hcm", "hcm", "sài gòn", "sg"}},
	{Label: "Đà Nẵng", Aliases: []string{"đà nẵng", "da nang", "dn"}},
	{Label: "Hải Phòng", Aliases: []string{"hải phòng", "hp"}},
	{Label: "Cần Thơ", Aliases: []string{"cần thơ", "can tho"}},
}

// DetectLocation returns the canonical label of the first city mentioned
func DetectLocation(raw string) (string, bool) {
	msg := Normalize(raw)
	for _, city := range Gazetteer {
		if containsAny(msg, city.Aliases) {
			return city.Label, true
		}
	}
	return "", false
}
