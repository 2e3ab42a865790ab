package utils

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExtractID normalizes the reference shapes found in legacy documents to a
// single ObjectID. Accepted shapes: ObjectID, hex string, a subdocument
// holding the id under "_id" or "$oid", and the bson.D form of the same.
// Every foreign-key comparison must go through this one function.
func ExtractID(v interface{}) (primitive.ObjectID, bool) {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id, !id.IsZero()
	case *primitive.ObjectID:
		if id == nil {
			return primitive.NilObjectID, false
		}
		return *id, !id.IsZero()
	case string:
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return primitive.NilObjectID, false
		}
		return oid, true
	case bson.M:
		return extractFromMap(map[string]interface{}(id))
	case map[string]interface{}:
		return extractFromMap(id)
	case bson.D:
		return extractFromMap(id.Map())
	}
	return primitive.NilObjectID, false
}

func extractFromMap(m map[string]interface{}) (primitive.ObjectID, bool) {
	if inner, ok := m["_id"]; ok {
		return ExtractID(inner)
	}
	if inner, ok := m["$oid"]; ok {
		return ExtractID(inner)
	}
	return primitive.NilObjectID, false
}

// IDKey renders a reference as a map key, empty when unresolvable.
func IDKey(v interface{}) string {
	oid, ok := ExtractID(v)
	if !ok {
		return ""
	}
	return oid.Hex()
}
