package model

import (
	"encoding/json"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name    string
		current int
		limit   int
		total   int64
		want    Pagination
	}{
		{"first of many", 1, 10, 25, Pagination{Current: 1, Pages: 3, Total: 25, HasNext: true, HasPrev: false}},
		{"middle", 2, 10, 25, Pagination{Current: 2, Pages: 3, Total: 25, HasNext: true, HasPrev: true}},
		{"last", 3, 10, 25, Pagination{Current: 3, Pages: 3, Total: 25, HasNext: false, HasPrev: true}},
		{"exact multiple", 2, 5, 10, Pagination{Current: 2, Pages: 2, Total: 10, HasNext: false, HasPrev: true}},
		{"empty", 1, 10, 0, Pagination{Current: 1, Pages: 0, Total: 0, HasNext: false, HasPrev: false}},
		{"beyond end", 5, 10, 12, Pagination{Current: 5, Pages: 2, Total: 12, HasNext: false, HasPrev: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPagination(tt.current, tt.limit, tt.total)
			if got != tt.want {
				t.Errorf("NewPagination() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestListQuery_Skip(t *testing.T) {
	if got := (ListQuery{Page: 3, Limit: 9}).Skip(); got != 18 {
		t.Errorf("Skip() = %d, want 18", got)
	}
	if got := (ListQuery{Page: 0, Limit: 9}).Skip(); got != 0 {
		t.Errorf("Skip() = %d, want 0", got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2025-09-25", "2025-09-25", false},
		{"2025-09-25T00:00:00Z", "2025-09-25", false},
		{"2025-09-25T23:30:00+02:00", "2025-09-25", false},
		{"25/09/2025", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got.Day() != tt.want {
				t.Errorf("ParseDate(%q).Day() = %s, want %s", tt.in, got.Day(), tt.want)
			}
		})
	}
}

func TestDate_JSON(t *testing.T) {
	var b struct {
		Date Date `json:"date"`
	}
	if err := json.Unmarshal([]byte(`{"date":"2025-09-25"}`), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"date":"2025-09-25T00:00:00Z"}` {
		t.Errorf("marshal = %s", out)
	}

	if err := json.Unmarshal([]byte(`{"date":"tomorrow"}`), &b); err == nil {
		t.Errorf("expected error for unparseable date")
	}
}

func TestDate_BSON(t *testing.T) {
	type doc struct {
		Date Date `bson:"date"`
	}
	in := doc{Date: MustParseDate("2025-09-26")}

	raw, err := bson.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := bson.Raw(raw).Lookup("date").Type; got != bson.TypeDateTime {
		t.Errorf("stored type = %v, want datetime", got)
	}

	var out doc
	if err := bson.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.Date.Equal(in.Date.Time) {
		t.Errorf("round trip = %v, want %v", out.Date, in.Date)
	}
}

func TestBookingUpdate_Flags(t *testing.T) {
	var nilUpdate *BookingUpdate
	if !nilUpdate.IsEmpty() {
		t.Errorf("nil update should be empty")
	}
	if !(&BookingUpdate{}).IsEmpty() {
		t.Errorf("zero update should be empty")
	}

	status := StatusConfirmed
	statusOnly := &BookingUpdate{Status: &status}
	if statusOnly.IsEmpty() {
		t.Errorf("status update should not be empty")
	}
	if statusOnly.TouchesPricing() {
		t.Errorf("status update should not touch pricing")
	}

	addOns := []string{AddOnPolishing}
	if !(&BookingUpdate{AddOns: &addOns}).TouchesPricing() {
		t.Errorf("add-on update should touch pricing")
	}
}

func TestMaxCarYear(t *testing.T) {
	orig := Now
	defer func() { Now = orig }()
	Now = func() time.Time { return time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC) }

	if got := MaxCarYear(); got != 2031 {
		t.Errorf("MaxCarYear() = %d, want 2031", got)
	}
}

func TestCatalogMembership(t *testing.T) {
	if !IsServiceType(ServiceDeluxeWash) || IsServiceType("deluxe wash") {
		t.Errorf("IsServiceType is exact and case-sensitive")
	}
	if !IsTimeSlot("17:00") || IsTimeSlot("18:00") {
		t.Errorf("IsTimeSlot covers 08:00 through 17:00")
	}
	if !IsCarType(CarConvertible) || !IsStatus(StatusCancelled) || !IsAddOn(AddOnTireShine) {
		t.Errorf("catalog membership failed")
	}
}

func TestSortOptions(t *testing.T) {
	for _, o := range SortOptions {
		if !IsSortableField(o.SortBy) {
			t.Errorf("%s sorts by %q, which is not sortable", o.Key, o.SortBy)
		}
		got, ok := FindSortOption(o.Key)
		if !ok || got != o {
			t.Errorf("FindSortOption(%q) = %+v, %v", o.Key, got, ok)
		}
	}
	if _, ok := FindSortOption("cheapest"); ok {
		t.Error("unknown key should not match")
	}
	if keys := SortOptionKeys(); len(keys) != len(SortOptions) || keys[0] != "newest" {
		t.Errorf("SortOptionKeys() = %v", keys)
	}
}
