package phoneinput

import (
	"encoding/json"
	"testing"
)

func TestChangeEventJSONNulls(t *testing.T) {
	data, err := json.Marshal(ChangeEvent{Input: "+999"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := `{"input":"+999","dialCode":null,"countryCode":null,"isValid":false,"e164":null}`
	if string(data) != want {
		t.Fatalf("Marshal = %s, want %s", data, want)
	}

	var decoded ChangeEvent
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != (ChangeEvent{Input: "+999"}) {
		t.Fatalf("unexpected decoded event %+v", decoded)
	}
}

func TestChangeEventJSONValid(t *testing.T) {
	event := ChangeEvent{Input: "+14083469089", DialCode: "+1", CountryCode: "US", IsValid: true, E164: "+14083469089"}

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := `{"input":"+14083469089","dialCode":"+1","countryCode":"US","isValid":true,"e164":"+14083469089"}`
	if string(data) != want {
		t.Fatalf("Marshal = %s, want %s", data, want)
	}
}

func TestChangeEventValid(t *testing.T) {
	tests := []struct {
		name  string
		event ChangeEvent
		want  bool
	}{
		{name: "no_country", event: ChangeEvent{Input: "+999"}, want: true},
		{name: "invalid_with_country", event: ChangeEvent{Input: "+1123", DialCode: "+1", CountryCode: "US"}, want: true},
		{name: "valid_complete", event: ChangeEvent{DialCode: "+1", CountryCode: "US", IsValid: true, E164: "+1"}, want: true},
		{name: "valid_without_e164", event: ChangeEvent{DialCode: "+1", CountryCode: "US", IsValid: true}, want: false},
		{name: "valid_without_dial_code", event: ChangeEvent{CountryCode: "US", IsValid: true, E164: "+1"}, want: false},
		{name: "e164_without_validity", event: ChangeEvent{DialCode: "+1", CountryCode: "US", E164: "+1"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.Valid(); got != tt.want {
				t.Fatalf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
