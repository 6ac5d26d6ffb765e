package phoneinput

import "encoding/json"

// ChangeEvent is emitted on every keystroke and every country pick.
// Empty DialCode, CountryCode and E164 mean "not available" and encode as
// JSON null.
type ChangeEvent struct {
	Input       string
	DialCode    string
	CountryCode string
	IsValid     bool
	E164        string
}

// Valid reports whether the event is internally consistent: a valid event
// carries a dial code, a country code and an E.164 number, and an event
// without a dial code is never valid.
func (e ChangeEvent) Valid() bool {
	complete := e.DialCode != "" && e.CountryCode != "" && e.E164 != ""
	return e.IsValid == complete
}

type changeEventJSON struct {
	Input       string  `json:"input"`
	DialCode    *string `json:"dialCode"`
	CountryCode *string `json:"countryCode"`
	IsValid     bool    `json:"isValid"`
	E164        *string `json:"e164"`
}

// MarshalJSON encodes the event with null for missing fields.
func (e ChangeEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(changeEventJSON{
		Input:       e.Input,
		DialCode:    nullable(e.DialCode),
		CountryCode: nullable(e.CountryCode),
		IsValid:     e.IsValid,
		E164:        nullable(e.E164),
	})
}

// UnmarshalJSON decodes the wire form produced by MarshalJSON.
func (e *ChangeEvent) UnmarshalJSON(data []byte) error {
	var wire changeEventJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*e = ChangeEvent{
		Input:       wire.Input,
		DialCode:    deref(wire.DialCode),
		CountryCode: deref(wire.CountryCode),
		IsValid:     wire.IsValid,
		E164:        deref(wire.E164),
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
