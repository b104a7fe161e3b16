package types

import "strings"

// FisheryOffice is a reporting office that forms are returned to.
type FisheryOffice struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email"`
}

// FisheryOfficeByName returns the office whose name matches, ignoring
// surrounding whitespace, or nil if there is no match.
func FisheryOfficeByName(name string) *FisheryOffice {
	want := strings.TrimSpace(name)
	for _, office := range FisheryOffices() {
		if office.Name == want {
			o := office
			return &o
		}
	}
	return nil
}

// FisheryOffices returns the offices a form can be reported to.
func FisheryOffices() []FisheryOffice {
	return []FisheryOffice{
		{Name: "Aberdeen", Address: "Room A30, 375 Victoria Road, ABERDEEN AB11 9DB", Phone: "0300 244 9166", Email: "fo.aberdeen@gov.scot"},
		{Name: "Anstruther", Address: "28 Cunzie Street, ANSTRUTHER KY10 3DF", Phone: "0300 244 9100", Email: "fo.anstruther@gov.scot"},
		{Name: "Ayr", Address: "Russell House, King Street, AYR KA8 0BE", Phone: "0300 244 8220", Email: "fo.ayr@gov.scot"},
		{Name: "Buckie", Address: "Suites 3 -5, Douglas Centre, March Road, BUCKIE AB56 4BT", Phone: "0300 244 9266", Email: "fo.buckie@gov.scot"},
		{Name: "Campbeltown", Address: "40 Hall Street, CAMPBELTOWN PA28 6BU", Phone: "0300 244 8690", Email: "fo.campbeltown@gov.scot"},
		{Name: "Eyemouth", Address: "Gunsgreen, Fish Market Buildings, EYEMOUTH TD14 5SD", Email: "fo.eyemouth@gov.scot"},
		{Name: "Fraserburgh", Address: "121 Shore Street, FRASERBURGH AB43 9BR", Phone: "0300 244 9424", Email: "fo.fraserburgh@gov.scot"},
		{Name: "Kinlochbervie", Address: "Bervie Pier, Kinlochbervie, LAIRG IV27 4RR", Phone: "0300 244 7920", Email: "fo.kinlochbervie.gov.scot"},
		{Name: "Kirkwall", Address: "Terminal Buildings, Kirkwall Passenger Terminal, East Pier, KIRKWALL KW15 1HU", Phone: "0300 244 6699", Email: "fo.kirkwall@gov.scot"},
		{Name: "Lerwick", Address: "Alexandra Buildings, Lerwick, SHETLAND ZE1 0LL", Phone: "0300 244 2101", Email: "fo.lerwick@gov.scot"},
		{Name: "Lochinver", Address: "Culag Pier, Lochinver, LAIRG IV27 4LE", Phone: "0300 244 7910", Email: "fo.lochinver@gov.scot"},
		{Name: "Mallaig", Address: "Marine Office, Harbour Offices, MALLAIG PH41 4QB", Phone: "01687 462155", Email: "fo.mallaig@gov.scot"},
		{Name: "Oban", Address: "Marine Office, Cameron House, Albany Street, OBAN PA34 4AE", Phone: "0300 244 9400", Email: "fo.oban@gov.scot"},
		{Name: "Peterhead", Address: "Caley Buildings, 28-32 Harbour Street, PETERHEAD AB42 1DN", Phone: "0300 244 9200", Email: "fo.peterhead@gov.scot"},
		{Name: "Portree", Address: "Marine Office, Estates Office, Scorrybreac, PORTREE, Isle of Skye, IV51 9DH", Phone: "0300 244 8778", Email: "fo.portree@gov.scot"},
		{Name: "Scrabster", Address: "Scrabster Fishery Office, St Ola House, SCRABSTER KW14 7UJ", Phone: "0300 244 4058", Email: "fo.scrabster@gov.scot"},
		{Name: "Stornoway", Address: "Marine Office, Quay Street, STORNOWAY, Isle of Lewis, HS1 2XX", Phone: "0300 244 8702", Email: "fo.stornoway@gov.scot"},
		{Name: "Ullapool", Address: "West Shore Street, ULLAPOOL IV26 2UR", Phone: "0300 244 0286", Email: "fo.ullapool@gov.scot"},
	}
}
