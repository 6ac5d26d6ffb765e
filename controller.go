package phoneinput

import (
	"fmt"
	"log/slog"
	"strings"
)

// Controller holds the state of one phone-number field and turns keystrokes
// and country picks into display text and change events.
//
// A Controller is not safe for concurrent use.
type Controller struct {
	directory    *Directory
	plan         NumberingPlan
	emitter      *Emitter
	newFormatter func() DisplayFormatter
	formatter    DisplayFormatter
	logger       *slog.Logger

	initial  CountryRecord
	fallback LocalFallback
	refine   bool

	selected    CountryRecord
	hasSelected bool
	picked      bool
	display     string
	number      string
	last        ChangeEvent
}

// NewController builds a Controller from options. When a value is configured
// it is processed as the first text change.
func NewController(opts ...Option) (*Controller, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return cfg.BuildController()
}

func newController(cfg *Config) *Controller {
	c := &Controller{
		directory:    cfg.Directory,
		plan:         cfg.NumberingPlan,
		emitter:      NewEmitter(cfg.NumberingPlan, cfg.emitterOptions()...),
		newFormatter: cfg.NewFormatter,
		logger:       cfg.Logger,
		initial:      cfg.initial,
		fallback:     cfg.LocalFallback,
		refine:       cfg.RegionRefinement,
	}

	c.selected = cfg.initial
	c.hasSelected = true
	c.display = cfg.initial.DialCode
	c.number = cfg.initial.DialCode
	c.formatter = c.freshFormatter(cfg.initial)

	if cfg.Value != "" {
		c.TextChanged(cfg.Value)
	}
	return c
}

// TextChanged processes the full current content of the text field.
func (c *Controller) TextChanged(text string) ChangeEvent {
	n := Normalize(text)

	dc, ok := c.directory.FindDialCode(n)
	if ok && c.picked && c.selected.DialCode == dc.DialCode {
		dc = c.selected
	}

	if !ok && !strings.HasPrefix(n, "+") {
		dc, ok = c.localCountry()
		if ok && len(n) >= 2 {
			n = dc.DialCode + strings.TrimLeft(n, "0")
		}
	}

	if ok && c.refine && !c.picked {
		dc = c.refineCountry(n, dc)
	}

	c.selectCountry(dc, ok)
	c.display = c.render(n)
	c.number = canonicalNumber(n, dc, ok)

	var country *CountryRecord
	if ok {
		selected := c.selected
		country = &selected
	}
	c.last = c.emitter.Emit(c.number, country)
	return c.last
}

// CountryPicked applies an explicit country selection and re-runs the
// pipeline with the digits already typed. The record must belong to the
// controller's directory; any other record is ignored and the last event
// is returned unchanged.
func (c *Controller) CountryPicked(record CountryRecord) ChangeEvent {
	known, ok := c.directory.ByCountryCode(record.CountryCode)
	if !ok || known.DialCode != record.DialCode {
		c.logger.Warn("country pick ignored: record not in directory",
			slog.String("country", record.CountryCode),
			slog.String("dial_code", record.DialCode),
		)
		return c.last
	}
	record = known

	rest := c.number
	if c.hasSelected {
		rest = strings.ReplaceAll(rest, c.selected.DialCode, "")
	}

	c.logger.Debug("country picked",
		slog.String("from", c.selected.CountryCode),
		slog.String("to", record.CountryCode),
	)

	c.selected = record
	c.hasSelected = true
	c.picked = true
	c.formatter = c.freshFormatter(record)

	return c.TextChanged(record.DialCode + rest)
}

// PickCountry looks up code in the directory and applies it as an explicit pick.
func (c *Controller) PickCountry(code string) (ChangeEvent, error) {
	record, ok := c.directory.ByCountryCode(code)
	if !ok {
		return ChangeEvent{}, fmt.Errorf("%w: %q", ErrUnknownCountry, code)
	}
	return c.CountryPicked(record), nil
}

// Display returns the text the field should show.
func (c *Controller) Display() string {
	return c.display
}

// Number returns the canonical working number, before validation.
func (c *Controller) Number() string {
	return c.number
}

// Selected returns the selected country; false when none is selected.
func (c *Controller) Selected() (CountryRecord, bool) {
	return c.selected, c.hasSelected
}

// Picked reports whether the selection came from an explicit pick.
func (c *Controller) Picked() bool {
	return c.picked
}

// Directory returns the country directory used for inference and picks.
func (c *Controller) Directory() *Directory {
	return c.directory
}

// Last returns the most recent event; the zero value before any input.
func (c *Controller) Last() ChangeEvent {
	return c.last
}

func (c *Controller) localCountry() (CountryRecord, bool) {
	if c.fallback == LocalFallbackSelected && c.hasSelected {
		return c.selected, true
	}
	return c.initial, c.initial.CountryCode != ""
}

func (c *Controller) refineCountry(n string, dc CountryRecord) CountryRecord {
	number, err := c.plan.Parse(canonicalNumber(n, dc, true), dc.CountryCode)
	if err != nil {
		return dc
	}

	region := c.plan.RegionForNumber(number)
	if region == "" || region == dc.CountryCode {
		return dc
	}

	refined, ok := c.directory.ByCountryCode(region)
	if !ok || refined.DialCode != dc.DialCode {
		return dc
	}
	return refined
}

func (c *Controller) selectCountry(dc CountryRecord, ok bool) {
	if !ok {
		if c.hasSelected {
			c.logger.Debug("country cleared", slog.String("from", c.selected.CountryCode))
		}
		c.selected = CountryRecord{}
		c.hasSelected = false
		c.picked = false
		return
	}

	if c.hasSelected && c.selected.CountryCode == dc.CountryCode {
		c.formatter.Reset(c.selected)
		return
	}

	c.logger.Debug("country inferred",
		slog.String("from", c.selected.CountryCode),
		slog.String("to", dc.CountryCode),
	)
	c.selected = dc
	c.hasSelected = true
	c.picked = false
	c.formatter = c.freshFormatter(dc)
}

func (c *Controller) freshFormatter(country CountryRecord) DisplayFormatter {
	var formatter DisplayFormatter
	if c.newFormatter != nil {
		formatter = c.newFormatter()
	}
	if formatter == nil {
		formatter = NewAsYouTypeFormatter()
	}
	formatter.Reset(country)
	c.logger.Debug("formatter reset", slog.String("country", country.CountryCode))
	return formatter
}

func (c *Controller) render(n string) string {
	if !c.hasSelected {
		return n
	}

	dial := c.selected.DialCode
	out := c.formatter.Feed(digitsOnly(strings.Replace(n, dial, "", 1)))
	if !strings.HasPrefix(out, dial) {
		out = dial + " " + out
	}
	return strings.TrimRight(out, " ")
}

func canonicalNumber(n string, dc CountryRecord, ok bool) string {
	if !ok {
		return n
	}
	return dc.DialCode + strings.ReplaceAll(n, dc.DialCode, "")
}
