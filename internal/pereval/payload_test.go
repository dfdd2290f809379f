package pereval

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestMissingKeys(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"all present", `{"title":"Pkhiya","user":{},"coords":{},"level":{}}`, nil},
		{"all absent", `{}`, []string{"title", "user", "coords", "level"}},
		{"some absent", `{"title":"Pkhiya","coords":{}}`, []string{"user", "level"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req SubmitRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			got := req.MissingKeys()
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInvalidFields(t *testing.T) {
	valid := `{
		"title":"Pkhiya",
		"user":{"email":"a@b.com","fam":"Ivanov","name":"Ivan","phone":"+7 555 55 55"},
		"coords":{"latitude":45.3842,"longitude":7.1525,"height":1200},
		"level":{"summer":"1A"}
	}`
	var req SubmitRequest
	if err := json.Unmarshal([]byte(valid), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if invalid := req.InvalidFields(); invalid != nil {
		t.Fatalf("expected no invalid fields, got %v", invalid)
	}

	broken := `{
		"title":"   ",
		"user":{"email":"not-an-email","fam":"","name":"Ivan"},
		"coords":{"latitude":45.3842},
		"level":{}
	}`
	req = SubmitRequest{}
	if err := json.Unmarshal([]byte(broken), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []string{"title", "user.email", "user.fam", "user.phone", "coords.longitude", "coords.height"}
	if got := req.InvalidFields(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestUpdateRequestImagePresence(t *testing.T) {
	var req UpdateRequest
	if err := json.Unmarshal([]byte(`{"title":"X"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Images != nil {
		t.Fatalf("absent images key must decode to nil slice")
	}

	req = UpdateRequest{}
	if err := json.Unmarshal([]byte(`{"images":[]}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Images == nil {
		t.Fatalf("present empty images must decode to non-nil slice")
	}
}
