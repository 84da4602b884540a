package models

import "testing"

func TestListing_Place(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		listing Listing
		want    string
	}{
		{"all parts", Listing{Location: "奈良市", Station: "近鉄奈良", Station2: "JR奈良"}, "奈良市 / 近鉄奈良 / JR奈良"},
		{"location only", Listing{Location: "生駒市"}, "生駒市"},
		{"stations only", Listing{Station: "学園前", Station2: "富雄"}, "学園前 / 富雄"},
		{"nothing", Listing{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.listing.Place(); got != tt.want {
				t.Errorf("Place() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestListing_HasLink(t *testing.T) {
	t.Parallel()
	if (Listing{Link: "  "}).HasLink() {
		t.Error("Blank link should not count as a link")
	}
	if !(Listing{Link: "https://maps.app.goo.gl/x"}).HasLink() {
		t.Error("Expected link to be detected")
	}
}

func TestDataset_Len(t *testing.T) {
	t.Parallel()
	var nilDataset *Dataset
	if nilDataset.Len() != 0 {
		t.Error("nil dataset should have length 0")
	}
	d := &Dataset{Listings: []Listing{{Name: "a"}, {Name: "a"}}}
	if d.Len() != 2 {
		t.Errorf("Len() = %d, want 2", d.Len())
	}
}

func TestDrawResult_Empty(t *testing.T) {
	t.Parallel()
	if !(DrawResult{}).Empty() {
		t.Error("zero DrawResult should be empty")
	}
	if (DrawResult{Listings: []Listing{{Name: "x"}}}).Empty() {
		t.Error("DrawResult with a listing should not be empty")
	}
}
