package phoneinput

import (
	"errors"
	"testing"
)

func newTestController(t *testing.T, opts ...Option) *Controller {
	t.Helper()

	controller, err := NewController(opts...)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return controller
}

func TestControllerInitialState(t *testing.T) {
	controller := newTestController(t)

	if controller.Display() != "+1" || controller.Number() != "+1" {
		t.Fatalf("unexpected initial display %q / number %q", controller.Display(), controller.Number())
	}
	selected, ok := controller.Selected()
	if !ok || selected.CountryCode != "US" {
		t.Fatalf("expected US selected, got %+v, %v", selected, ok)
	}
	if controller.Picked() {
		t.Fatal("initial country must not count as picked")
	}
	if controller.Last() != (ChangeEvent{}) {
		t.Fatalf("expected no event before input, got %+v", controller.Last())
	}
}

func TestControllerScenarios(t *testing.T) {
	// checkValidity is off for fictional ranges whose validity depends on
	// the numbering-plan metadata.
	tests := []struct {
		name          string
		initial       string
		input         string
		display       string
		dialCode      string
		countryCode   string
		checkValidity bool
		valid         bool
		e164          string
	}{
		{
			name:        "local_digits_default_country",
			input:       "5551234567",
			display:     "+1 555-123-4567",
			dialCode:    "+1",
			countryCode: "US",
		},
		{
			name:          "international_with_trunk_prefix",
			input:         "+44 020 7946 0958",
			display:       "+44 020 7946 0958",
			dialCode:      "+44",
			countryCode:   "GB",
			checkValidity: true,
			valid:         true,
			e164:          "+442079460958",
		},
		{
			name:          "short_local_number",
			input:         "123",
			display:       "+1 123",
			dialCode:      "+1",
			countryCode:   "US",
			checkValidity: true,
		},
		{
			name:        "initial_country_gb",
			initial:     "GB",
			input:       "7700900123",
			display:     "+44 7700 900123",
			dialCode:    "+44",
			countryCode: "GB",
		},
		{
			name:          "hyphenated_local",
			input:         "408-346-9089",
			display:       "+1 408-346-9089",
			dialCode:      "+1",
			countryCode:   "US",
			checkValidity: true,
			valid:         true,
			e164:          "+14083469089",
		},
		{
			name:          "digit_only_local",
			input:         "4083469089",
			display:       "+1 408-346-9089",
			dialCode:      "+1",
			countryCode:   "US",
			checkValidity: true,
			valid:         true,
			e164:          "+14083469089",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.initial != "" {
				opts = append(opts, WithInitialCountry(tt.initial))
			}
			controller := newTestController(t, opts...)

			event := controller.TextChanged(tt.input)

			if controller.Display() != tt.display {
				t.Fatalf("display = %q, want %q", controller.Display(), tt.display)
			}
			if event.DialCode != tt.dialCode || event.CountryCode != tt.countryCode {
				t.Fatalf("event country = %s %s, want %s %s", event.DialCode, event.CountryCode, tt.dialCode, tt.countryCode)
			}
			if tt.checkValidity && (event.IsValid != tt.valid || event.E164 != tt.e164) {
				t.Fatalf("event validity = %v %q, want %v %q", event.IsValid, event.E164, tt.valid, tt.e164)
			}
			if !event.Valid() {
				t.Fatalf("inconsistent event %+v", event)
			}
			if controller.Last() != event {
				t.Fatalf("Last() = %+v, want %+v", controller.Last(), event)
			}
		})
	}
}

func TestControllerPickWithoutDigits(t *testing.T) {
	controller := newTestController(t)

	event, err := controller.PickCountry("eg")
	if err != nil {
		t.Fatalf("PickCountry: %v", err)
	}

	if controller.Display() != "+20" {
		t.Fatalf("display = %q, want +20", controller.Display())
	}
	if event.DialCode != "+20" || event.CountryCode != "EG" || event.IsValid || event.E164 != "" {
		t.Fatalf("unexpected event %+v", event)
	}
	if !controller.Picked() {
		t.Fatal("expected picked selection")
	}
}

func TestControllerPickUnknownCountry(t *testing.T) {
	controller := newTestController(t)

	if _, err := controller.PickCountry("ZZ"); !errors.Is(err, ErrUnknownCountry) {
		t.Fatalf("expected ErrUnknownCountry, got %v", err)
	}
}

func TestControllerCountrySwitchMatchesFreshEntry(t *testing.T) {
	switched := newTestController(t)
	switched.TextChanged("+1 408 346 9089")
	if _, err := switched.PickCountry("GB"); err != nil {
		t.Fatalf("PickCountry: %v", err)
	}

	fresh := newTestController(t, WithInitialCountry("GB"))
	fresh.TextChanged("+444083469089")

	if switched.Display() != fresh.Display() {
		t.Fatalf("display after switch = %q, fresh = %q", switched.Display(), fresh.Display())
	}
	if switched.Number() != "+444083469089" || switched.Number() != fresh.Number() {
		t.Fatalf("number after switch = %q, fresh = %q", switched.Number(), fresh.Number())
	}
}

func TestControllerKeystrokesKeepEventsConsistent(t *testing.T) {
	var events []ChangeEvent
	var numbers []string

	controller := newTestController(t, WithListeners(ListenerFuncs{
		Change:      func(event ChangeEvent) { events = append(events, event) },
		PhoneNumber: func(number string) { numbers = append(numbers, number) },
	}))

	input := "+44 020 7946 0958"
	for i := 1; i <= len(input); i++ {
		controller.TextChanged(input[:i])
	}

	if len(events) != len(input) || len(numbers) != len(input) {
		t.Fatalf("expected one event per keystroke, got %d events / %d numbers", len(events), len(numbers))
	}
	for i, event := range events {
		if !event.Valid() {
			t.Fatalf("keystroke %d produced inconsistent event %+v", i, event)
		}
		if event.Input != numbers[i] {
			t.Fatalf("keystroke %d: event input %q, number %q", i, event.Input, numbers[i])
		}
	}

	last := events[len(events)-1]
	if !last.IsValid || last.CountryCode != "GB" || last.E164 != "+442079460958" {
		t.Fatalf("unexpected final event %+v", last)
	}
	if controller.Display() != "+44 020 7946 0958" {
		t.Fatalf("final display %q", controller.Display())
	}
	if digitsOnly(controller.Display()) != digitsOnly(input) {
		t.Fatalf("display %q lost typed digits", controller.Display())
	}
}

func TestControllerUnknownDialCode(t *testing.T) {
	controller := newTestController(t)

	event := controller.TextChanged("+999 123")
	if event != (ChangeEvent{Input: "+999123"}) {
		t.Fatalf("unexpected event %+v", event)
	}
	if controller.Display() != "+999123" {
		t.Fatalf("display = %q", controller.Display())
	}
	if _, ok := controller.Selected(); ok {
		t.Fatal("expected no selected country")
	}

	event = controller.TextChanged("+4")
	if event.CountryCode != "" || controller.Display() != "+4" {
		t.Fatalf("partial dial code: event %+v, display %q", event, controller.Display())
	}

	event = controller.TextChanged("+49")
	if event.CountryCode != "DE" || controller.Display() != "+49" {
		t.Fatalf("completed dial code: event %+v, display %q", event, controller.Display())
	}
}

func TestControllerSharedDialCodeKeepsPick(t *testing.T) {
	controller := newTestController(t)

	if _, err := controller.PickCountry("CA"); err != nil {
		t.Fatalf("PickCountry: %v", err)
	}

	event := controller.TextChanged("+1 604 555")
	if event.CountryCode != "CA" {
		t.Fatalf("expected CA to survive typing, got %+v", event)
	}
	if !controller.Picked() {
		t.Fatal("expected pick to remain")
	}

	event = controller.TextChanged("+7 495")
	if event.CountryCode != "RU" || controller.Picked() {
		t.Fatalf("expected inferred RU, got %+v picked=%v", event, controller.Picked())
	}
}

func TestControllerSharedDialCodeFollowsDirectoryOrder(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		input   string
		want    string
	}{
		{name: "nanp", initial: "CA", input: "+1 212 555 1234", want: "US"},
		{name: "uk", initial: "JE", input: "+44 20 7946 0958", want: "GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := newTestController(t, WithInitialCountry(tt.initial))

			event := controller.TextChanged(tt.input)
			if event.CountryCode != tt.want {
				t.Fatalf("country = %q, want %q", event.CountryCode, tt.want)
			}
			if controller.Picked() {
				t.Fatal("inferred country must not be marked picked")
			}
		})
	}
}

func TestControllerPickOutsideDirectory(t *testing.T) {
	controller := newTestController(t)
	before := controller.TextChanged("+1 408")

	event := controller.CountryPicked(CountryRecord{CountryCode: "QT", DialCode: "+999", Name: "Testland"})
	if event != before {
		t.Fatalf("expected last event %+v, got %+v", before, event)
	}
	if selected, _ := controller.Selected(); selected.CountryCode != "US" || controller.Picked() {
		t.Fatalf("selection changed to %+v picked=%v", selected, controller.Picked())
	}

	mismatched := controller.CountryPicked(CountryRecord{CountryCode: "GB", DialCode: "+999"})
	if mismatched != before || controller.Picked() {
		t.Fatalf("record with a foreign dial code applied: %+v", mismatched)
	}

	event = controller.CountryPicked(CountryRecord{CountryCode: "gb", DialCode: "+44"})
	if event.CountryCode != "GB" || !controller.Picked() {
		t.Fatalf("directory record not applied: %+v", event)
	}
}

func TestControllerLocalFallback(t *testing.T) {
	tests := []struct {
		name     string
		fallback LocalFallback
		want     string
		display  string
	}{
		{name: "selected", fallback: LocalFallbackSelected, want: "GB", display: "+44 7700 900123"},
		{name: "initial", fallback: LocalFallbackInitial, want: "US", display: "+1 770-090-0123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := newTestController(t, WithLocalFallback(tt.fallback))
			if _, err := controller.PickCountry("GB"); err != nil {
				t.Fatalf("PickCountry: %v", err)
			}

			event := controller.TextChanged("07700900123")
			if event.CountryCode != tt.want {
				t.Fatalf("country = %q, want %q", event.CountryCode, tt.want)
			}
			if controller.Display() != tt.display {
				t.Fatalf("display = %q, want %q", controller.Display(), tt.display)
			}
		})
	}
}

func TestControllerRegionRefinement(t *testing.T) {
	plain := newTestController(t)
	if event := plain.TextChanged("+1 604 688 1234"); event.CountryCode != "US" {
		t.Fatalf("expected directory order without refinement, got %s", event.CountryCode)
	}

	refined := newTestController(t, WithRegionRefinement(true))
	if event := refined.TextChanged("+1 604 688 1234"); event.CountryCode != "CA" {
		t.Fatalf("expected CA with refinement, got %s", event.CountryCode)
	}
	if event := refined.TextChanged("+1 408 346 9089"); event.CountryCode != "US" {
		t.Fatalf("expected refinement back to US, got %s", event.CountryCode)
	}

	picked := newTestController(t, WithRegionRefinement(true))
	if _, err := picked.PickCountry("US"); err != nil {
		t.Fatalf("PickCountry: %v", err)
	}
	if event := picked.TextChanged("+1 604 688 1234"); event.CountryCode != "US" {
		t.Fatalf("refinement must not override a pick, got %s", event.CountryCode)
	}
}

func TestControllerDismiss(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		keys []string
		want int
	}{
		{
			name: "transition",
			keys: []string{"408346908", "4083469089", "4083469089"},
			want: 1,
		},
		{
			name: "every_valid",
			opts: []Option{WithDismissPolicy(DismissOnEveryValid)},
			keys: []string{"408346908", "4083469089", "4083469089"},
			want: 2,
		},
		{
			name: "disabled",
			opts: []Option{WithDismissKeyboard(false)},
			keys: []string{"4083469089"},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dismissed := 0
			opts := append([]Option{WithDismisser(DismissFunc(func() { dismissed++ }))}, tt.opts...)
			controller := newTestController(t, opts...)

			for _, key := range tt.keys {
				controller.TextChanged(key)
			}
			if dismissed != tt.want {
				t.Fatalf("dismissed %d times, want %d", dismissed, tt.want)
			}
		})
	}
}

func TestControllerValueProcessedAtMount(t *testing.T) {
	var events []ChangeEvent
	controller := newTestController(t,
		WithValue("+44 020 7946 0958"),
		WithListeners(ListenerFuncs{Change: func(event ChangeEvent) { events = append(events, event) }}),
	)

	if len(events) != 1 {
		t.Fatalf("expected one mount event, got %d", len(events))
	}
	if controller.Last().CountryCode != "GB" || !controller.Last().IsValid {
		t.Fatalf("unexpected mount event %+v", controller.Last())
	}
}

func TestControllerSyntheticDirectory(t *testing.T) {
	controller := newTestController(t,
		WithDirectory(syntheticDirectory(t)),
		WithInitialCountry("AA"),
		WithNumberingPlan(&stubPlan{}),
	)

	controller.TextChanged("+1234")
	if selected, _ := controller.Selected(); selected.CountryCode != "BB" {
		t.Fatalf("expected longest prefix BB, got %s", selected.CountryCode)
	}
	if controller.Number() != "+1234" {
		t.Fatalf("number = %q", controller.Number())
	}

	controller.TextChanged("+134")
	if selected, _ := controller.Selected(); selected.CountryCode != "AA" {
		t.Fatalf("expected AA, got %s", selected.CountryCode)
	}
}
