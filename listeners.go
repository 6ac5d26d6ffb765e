package phoneinput

// ChangeListener receives the results of every keystroke and country pick.
type ChangeListener interface {
	OnChange(event ChangeEvent)
	OnChangePhoneNumber(number string)
}

// ListenerFuncs adapts plain functions to ChangeListener. Nil fields are skipped.
type ListenerFuncs struct {
	Change      func(event ChangeEvent)
	PhoneNumber func(number string)
}

var _ ChangeListener = ListenerFuncs{}

func (l ListenerFuncs) OnChange(event ChangeEvent) {
	if l.Change != nil {
		l.Change(event)
	}
}

func (l ListenerFuncs) OnChangePhoneNumber(number string) {
	if l.PhoneNumber != nil {
		l.PhoneNumber(number)
	}
}

// Dismisser hides the on-screen keyboard, or whatever the host uses as the
// "input complete" side effect.
type Dismisser interface {
	Dismiss()
}

// DismissFunc adapts a function to Dismisser.
type DismissFunc func()

func (f DismissFunc) Dismiss() {
	if f != nil {
		f()
	}
}

// filterListeners returns the non-nil listeners in registration order.
func filterListeners(listeners []ChangeListener) []ChangeListener {
	if len(listeners) == 0 {
		return nil
	}

	filtered := make([]ChangeListener, 0, len(listeners))
	for _, listener := range listeners {
		if listener == nil {
			continue
		}
		filtered = append(filtered, listener)
	}

	if len(filtered) == 0 {
		return nil
	}
	return filtered
}
