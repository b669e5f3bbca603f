package mongo

import (
	"testing"

	"carwash/internal/bookings/repository"
	"carwash/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCollections_BookingSchemaUsesCatalog(t *testing.T) {
	def, ok := Collections[repository.CollectionName]
	require.True(t, ok)

	schema := def.Validator["$jsonSchema"].(bson.M)
	props := schema["properties"].(bson.M)

	assert.Equal(t, model.ServiceTypes, props["serviceType"].(bson.M)["enum"])
	assert.Equal(t, model.Statuses, props["status"].(bson.M)["enum"])
	assert.Equal(t, model.TimeSlots, props["timeSlot"].(bson.M)["enum"])
	assert.Equal(t, model.AddOns, props["addOns"].(bson.M)["items"].(bson.M)["enum"])

	car := props["carDetails"].(bson.M)["properties"].(bson.M)
	assert.Equal(t, model.CarTypes, car["type"].(bson.M)["enum"])
}

func TestBookingsIndexes(t *testing.T) {
	var fields []string
	for _, idx := range BookingsIndexes {
		keys := idx.Keys.(bson.D)
		fields = append(fields, keys[0].Key)
	}
	assert.Contains(t, fields, "customerName")
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "createdAt")
	assert.Contains(t, fields, "date")
	assert.Equal(t, "text", BookingsIndexes[0].Keys.(bson.D)[0].Value)
}
