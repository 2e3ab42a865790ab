package utils

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestExtractID(t *testing.T) {
	oid := primitive.NewObjectID()

	tests := []struct {
		name   string
		input  interface{}
		wantID primitive.ObjectID
		wantOK bool
	}{
		{name: "object id", input: oid, wantID: oid, wantOK: true},
		{name: "pointer", input: &oid, wantID: oid, wantOK: true},
		{name: "nil pointer", input: (*primitive.ObjectID)(nil), wantOK: false},
		{name: "zero object id", input: primitive.NilObjectID, wantOK: false},
		{name: "hex string", input: oid.Hex(), wantID: oid, wantOK: true},
		{name: "bad hex string", input: "not-a-hex-id", wantOK: false},
		{name: "id subdocument", input: bson.M{"_id": oid}, wantID: oid, wantOK: true},
		{name: "extended json oid", input: bson.M{"$oid": oid.Hex()}, wantID: oid, wantOK: true},
		{name: "plain map", input: map[string]interface{}{"_id": oid.Hex()}, wantID: oid, wantOK: true},
		{name: "bson d form", input: bson.D{{Key: "$oid", Value: oid.Hex()}}, wantID: oid, wantOK: true},
		{name: "nested subdocument", input: bson.M{"_id": bson.M{"$oid": oid.Hex()}}, wantID: oid, wantOK: true},
		{name: "map without id keys", input: bson.M{"ref": oid}, wantOK: false},
		{name: "nil", input: nil, wantOK: false},
		{name: "unsupported type", input: 42, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractID(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ExtractID() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.wantID {
				t.Errorf("ExtractID() = %s, want %s", got.Hex(), tt.wantID.Hex())
			}
		})
	}
}

func TestIDKey(t *testing.T) {
	oid := primitive.NewObjectID()

	if got := IDKey(bson.M{"$oid": oid.Hex()}); got != oid.Hex() {
		t.Errorf("IDKey() = %q, want %q", got, oid.Hex())
	}
	if got := IDKey("garbage"); got != "" {
		t.Errorf("IDKey() = %q, want empty string", got)
	}
}
