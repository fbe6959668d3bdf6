package menu

// ScreenID identifies one of the static menu screens.
type ScreenID int

const (
	// ScreenStart is the launch announcement shown on /start.
	ScreenStart ScreenID = iota
	// ScreenLearnMore describes the product capabilities.
	ScreenLearnMore
	// ScreenWaitlist explains how to join the waitlist.
	ScreenWaitlist
)

// String returns the screen name used in logs and the journal.
func (s ScreenID) String() string {
	switch s {
	case ScreenStart:
		return "start"
	case ScreenLearnMore:
		return "learn_more"
	case ScreenWaitlist:
		return "waitlist"
	}
	return "unknown"
}

// Action is a navigation button press. Its wire id travels as callback data.
type Action int

const (
	// ActionLearnMore opens the LearnMore screen.
	ActionLearnMore Action = iota + 1
	// ActionWaitlist opens the Waitlist screen.
	ActionWaitlist
	// ActionBack returns to the Start screen.
	ActionBack
)

// legacyBackID is the callback data emitted by keyboards sent before the
// back action was renamed. Messages carrying it may still be on screen.
const legacyBackID = "back_to_start"

// Actions lists every action in registration order.
func Actions() []Action {
	return []Action{ActionLearnMore, ActionWaitlist, ActionBack}
}

// ID returns the callback data for the action.
func (a Action) ID() string {
	switch a {
	case ActionLearnMore:
		return "learn_more"
	case ActionWaitlist:
		return "waitlist"
	case ActionBack:
		return "back"
	}
	return ""
}

// Aliases returns additional callback ids accepted for the action.
func (a Action) Aliases() []string {
	if a == ActionBack {
		return []string{legacyBackID}
	}
	return nil
}

// Target returns the screen the action navigates to.
func (a Action) Target() (ScreenID, bool) {
	switch a {
	case ActionLearnMore:
		return ScreenLearnMore, true
	case ActionWaitlist:
		return ScreenWaitlist, true
	case ActionBack:
		return ScreenStart, true
	}
	return 0, false
}

// String implements fmt.Stringer.
func (a Action) String() string {
	if id := a.ID(); id != "" {
		return id
	}
	return "unknown"
}

// ParseAction maps callback data to an action. Only exact wire ids and
// aliases match; anything else reports false.
func ParseAction(payload string) (Action, bool) {
	for _, a := range Actions() {
		if payload == a.ID() {
			return a, true
		}
		for _, alias := range a.Aliases() {
			if payload == alias {
				return a, true
			}
		}
	}
	return 0, false
}
