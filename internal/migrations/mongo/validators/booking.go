package validators

import (
	"carwash/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

// BookingValidator mirrors the request validation rules so documents written
// outside the API are held to the same shape.
var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"customerName",
			"carDetails",
			"serviceType",
			"date",
			"timeSlot",
			"duration",
			"price",
			"status",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"customerName": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": model.MaxCustomerNameLen,
			},

			"carDetails": bson.M{
				"bsonType": "object",
				"required": []string{"make", "model", "year", "type"},
				"properties": bson.M{
					"make":  bson.M{"bsonType": "string", "minLength": 1},
					"model": bson.M{"bsonType": "string", "minLength": 1},
					"year": bson.M{
						"bsonType": []string{"int", "long"},
						"minimum":  model.MinCarYear,
					},
					"type": bson.M{
						"bsonType": "string",
						"enum":     model.CarTypes,
					},
				},
			},

			"serviceType": bson.M{
				"bsonType": "string",
				"enum":     model.ServiceTypes,
			},

			"date": bson.M{
				"bsonType": "date",
			},

			"timeSlot": bson.M{
				"bsonType": "string",
				"enum":     model.TimeSlots,
			},

			"duration": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"price": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum":     model.Statuses,
			},

			"rating": bson.M{
				"bsonType": []string{"int", "long", "null"},
				"minimum":  model.MinRating,
				"maximum":  model.MaxRating,
			},

			"addOns": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "string",
					"enum":     model.AddOns,
				},
			},

			"createdAt": bson.M{
				"bsonType": "date",
			},

			"updatedAt": bson.M{
				"bsonType": "date",
			},
		},
	},
}
