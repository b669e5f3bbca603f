package repository

import (
	"reflect"
	"testing"
	"time"

	"carwash/pkg/model"
	"carwash/pkg/pricing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ptr[T any](v T) *T { return &v }

func TestBuildListFilter(t *testing.T) {
	from := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter model.BookingFilter
		want   bson.M
	}{
		{
			name:   "no constraints",
			filter: model.BookingFilter{},
			want:   bson.M{},
		},
		{
			name:   "exact matches",
			filter: model.BookingFilter{ServiceType: "Deluxe Wash", CarType: "suv", Status: "Pending"},
			want: bson.M{
				"serviceType":     "Deluxe Wash",
				"carDetails.type": "suv",
				"status":          "Pending",
			},
		},
		{
			name:   "lower bound only",
			filter: model.BookingFilter{DateFrom: &from},
			want:   bson.M{"date": bson.M{"$gte": from}},
		},
		{
			name:   "upper bound only",
			filter: model.BookingFilter{DateTo: &to},
			want:   bson.M{"date": bson.M{"$lte": to}},
		},
		{
			name:   "both bounds share one range",
			filter: model.BookingFilter{Status: "Completed", DateFrom: &from, DateTo: &to},
			want: bson.M{
				"status": "Completed",
				"date":   bson.M{"$gte": from, "$lte": to},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildListFilter(tt.filter)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildListFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildSearchFilter(t *testing.T) {
	got := BuildSearchFilter("  camry  ")
	or, ok := got["$or"].(bson.A)
	if !ok || len(or) != 3 {
		t.Fatalf("expected $or with 3 clauses, got %v", got)
	}

	wantRegex := primitive.Regex{Pattern: "camry", Options: "i"}
	fields := []string{"customerName", "carDetails.make", "carDetails.model"}
	for i, field := range fields {
		clause := or[i].(bson.M)
		if !reflect.DeepEqual(clause[field], wantRegex) {
			t.Errorf("clause %d = %v, want %s matching %v", i, clause, field, wantRegex)
		}
	}
}

func TestBuildSearchFilter_EscapesRegex(t *testing.T) {
	got := BuildSearchFilter("a.b*(c")
	clause := got["$or"].(bson.A)[0].(bson.M)
	re := clause["customerName"].(primitive.Regex)
	if re.Pattern != `a\.b\*\(c` {
		t.Errorf("pattern = %q, want literal escape", re.Pattern)
	}
}

func TestBuildSort(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      bson.D
	}{
		{"defaults to createdAt desc", "", "", bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
		{"price asc", "price", "asc", bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}}},
		{"date desc", "date", "desc", bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}},
		{"unknown order is desc", "price", "upward", bson.D{{Key: "price", Value: -1}, {Key: "_id", Value: -1}}},
		{"unknown field falls back", "$where", "asc", bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildSort(tt.sortBy, tt.sortOrder)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildSort(%q, %q) = %v, want %v", tt.sortBy, tt.sortOrder, got, tt.want)
			}
		})
	}
}

func TestBuildUpdate(t *testing.T) {
	now := time.Date(2025, 9, 20, 12, 0, 0, 0, time.UTC)

	t.Run("status only", func(t *testing.T) {
		got := BuildUpdate(&model.BookingUpdate{Status: ptr("Confirmed")}, nil, now)
		want := bson.M{"$set": bson.M{"status": "Confirmed", "updatedAt": now}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("BuildUpdate() = %v, want %v", got, want)
		}
	})

	t.Run("nested car details are patched individually", func(t *testing.T) {
		patch := &model.BookingUpdate{CarDetails: &model.CarDetailsUpdate{Model: ptr("Corolla"), Year: ptr(2021)}}
		got := BuildUpdate(patch, nil, now)
		want := bson.M{"$set": bson.M{
			"carDetails.model": "Corolla",
			"carDetails.year":  2021,
			"updatedAt":        now,
		}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("BuildUpdate() = %v, want %v", got, want)
		}
	})

	t.Run("pricing inputs with recomputed quote", func(t *testing.T) {
		addOns := []string{"Polishing"}
		patch := &model.BookingUpdate{ServiceType: ptr("Basic Wash"), AddOns: &addOns}
		got := BuildUpdate(patch, &pricing.Quote{Price: 55, Duration: 60}, now)
		want := bson.M{"$set": bson.M{
			"serviceType": "Basic Wash",
			"addOns":      []string{"Polishing"},
			"price":       float64(55),
			"duration":    60,
			"updatedAt":   now,
		}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("BuildUpdate() = %v, want %v", got, want)
		}
	})

	t.Run("cleared add-ons are stored as empty list", func(t *testing.T) {
		var none []string
		got := BuildUpdate(&model.BookingUpdate{AddOns: &none}, nil, now)
		set := got["$set"].(bson.M)
		if v, ok := set["addOns"].([]string); !ok || v == nil || len(v) != 0 {
			t.Errorf("addOns = %#v, want empty non-nil slice", set["addOns"])
		}
	})
}
