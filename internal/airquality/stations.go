package airquality

import (
	"regexp"
	"sort"
	"strings"
)

// Station is one monitoring site of the sensor network.
type Station struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	City  string  `json:"city"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

type stationSite struct {
	label    string
	lat, lng float64
}

var stationSites = []struct {
	city  string
	sites []stationSite
}{
	{"Lahore", []stationSite{
		{"Safari Park-LHR", 31.382314774885888, 74.21817281534902},
		{"Kahna Nau Hospital-LHR", 31.370968642952125, 74.36509796071374},
		{"PKLI-LHR", 31.455944217196357, 74.4637726464879},
		{"FMDRC-LHR", 31.535903137206997, 74.43518804649057},
		{"UET-LHR", 31.579825674297712, 74.35500334094795},
		{"LWMC-LHR", 31.463797290721757, 74.22594175216207},
		{"Punjab University-LHR", 31.47965946421483, 74.26608653889994},
		{"Govt. Teaching Hospital Shahdara-LHR", 31.638126385663895, 74.28518245233634},
	}},
	{"Sheikhupura", []stationSite{
		{"DHQ Sheikhupura", 31.711907268506444, 73.97887262744989},
	}},
	{"Mobile AQMS", []stationSite{
		{"Raja Jang Kasur - Mobile 1", 31.22242652245513, 74.25888348097924},
		{"Lathepur LHR - Mobile 2", 31.717597503919553, 74.38945645216268},
		{"Wagha Border LHR - Mobile 3", 31.60217088224592, 74.54493878284885},
		{"Egerton Road - Mobile 4", 31.560766512188792, 74.33078657301355},
		{"BHU Jandiala Kalsan LHR - Mobile 5", 31.84868154529122, 74.51479796751337},
	}},
	{"Faisalabad", []stationSite{
		{"DC Office Faisalabad", 31.425448762788633, 73.08115579440872},
		{"GCU Faisalabad", 31.416246064561182, 73.07000252883559},
		{"NTU Faisalabad", 31.462112827887097, 73.14854729999999},
	}},
	{"Gujranwala", []stationSite{
		{"GCW Gujranwala", 32.25587012731105, 74.15945324463222},
		{"DC Office Gujranwala", 32.17468001795155, 74.19513105997787},
	}},
	{"Multan", []stationSite{
		{"BZU Multan", 30.262345863388603, 71.51253806752977},
		{"M. Nawaz Sharif University of Engineering & Technology Multan", 30.029109580383068, 71.54151150235819},
	}},
	{"Bahawalpur", []stationSite{
		{"IUB (Baghdad Campus) Bahawalpur", 29.376832580609566, 71.76267240237333},
		{"IUB (Khawaja Fareed Campus) Bahawalpur", 29.397708118736162, 71.69163577353685},
	}},
	{"Sargodha", []stationSite{
		{"DC Office Sargodha", 32.07161053848134, 72.67279475998042},
		{"BISE Sargodha", 32.0355877857731, 72.70063274138406},
	}},
	{"Sialkot", []stationSite{
		{"DC Office Sialkot", 32.50525590601202, 74.53303397614911},
	}},
	{"Kasur", []stationSite{
		{"DC Office Kasur", 31.11611, 74.46725},
	}},
	{"Narowal", []stationSite{
		{"DC Office Narowal", 32.09704, 74.89411},
	}},
	{"Hafizabad", []stationSite{
		{"DC Office Hafizabad", 32.07171, 73.71436},
	}},
	{"Gujrat", []stationSite{
		{"DC Office Gujrat", 32.58559, 74.07833},
	}},
	{"Chakwal", []stationSite{
		{"DC Office Chakwal", 32.92564, 72.80549},
	}},
	{"Khanewal", []stationSite{
		{"DC Office Khanewal", 30.30231, 71.92921},
	}},
	{"Muzaffargarh", []stationSite{
		{"DC Office Muzaffargarh", 30.07608, 71.19038},
	}},
	{"Rahim Yar Khan", []stationSite{
		{"DC Office Rahim Yar Khan", 28.42323, 70.31827},
	}},
	{"DG Khan", []stationSite{
		{"DC Office DG Khan", 30.051792633623844, 70.62966164154528},
	}},
	{"Rawalpindi", []stationSite{
		{"DC Office Rawalpindi", 33.58462459856753, 73.06891569999999},
		{"ARID University Rawalpindi", 33.65061773446243, 73.08067117116441},
		{"Drug Testing Laboratory Rawalpindi", 33.54226391435295, 73.01392021534237},
	}},
}

var mobileID = regexp.MustCompile(`(?i)mobile\s*\d+`)

// stationID derives the backend identifier of a site. Mobile units are
// addressed as "Mobile N"; fixed sites by their label.
func stationID(city, label string) string {
	if city == "Mobile AQMS" {
		if m := mobileID.FindString(label); m != "" {
			digits := strings.TrimSpace(m[len("mobile"):])
			return "Mobile " + digits
		}
	}
	return label
}

// Catalog indexes the known stations by backend identifier.
type Catalog struct {
	byID map[string]Station
	list []Station
}

// DefaultCatalog returns the built-in station list.
func DefaultCatalog() *Catalog {
	c := &Catalog{byID: map[string]Station{}}
	for _, group := range stationSites {
		for _, s := range group.sites {
			st := Station{
				ID:    stationID(group.city, s.label),
				Label: s.label,
				City:  group.city,
				Lat:   s.lat,
				Lng:   s.lng,
			}
			c.byID[st.ID] = st
			c.list = append(c.list, st)
		}
	}
	sort.SliceStable(c.list, func(i, j int) bool { return c.list[i].City < c.list[j].City })
	return c
}

// Stations returns every station, grouped by city.
func (c *Catalog) Stations() []Station {
	return append([]Station(nil), c.list...)
}

// Lookup finds a station by identifier.
func (c *Catalog) Lookup(id string) (Station, bool) {
	st, ok := c.byID[id]
	return st, ok
}

// Label returns the display label for id, falling back to id itself.
func (c *Catalog) Label(id string) string {
	if c == nil {
		return id
	}
	if st, ok := c.byID[id]; ok {
		return st.Label
	}
	return id
}
