package types

// Action names the account operation that completed the OAuth flow.
type Action string

const (
	ActionSignIn    Action = "signin"
	ActionSignUp    Action = "signup"
	ActionForceAuth Action = "force_auth"
	ActionEmail     Action = "email"
)

// String returns the string form of the action.
func (a Action) String() string { return string(a) }

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	switch a {
	case ActionSignIn, ActionSignUp, ActionForceAuth, ActionEmail:
		return true
	}
	return false
}

// BehaviorType tells the embedding application what to do after a broker step.
type BehaviorType string

const (
	BehaviorNull     BehaviorType = "null"
	BehaviorNavigate BehaviorType = "navigate"
	BehaviorHalt     BehaviorType = "halt"
)

// Behavior is returned by broker lifecycle hooks.
type Behavior struct {
	Type BehaviorType `json:"type"`
	URL  string       `json:"url,omitempty"`
}

// NullBehavior leaves the caller where it is.
func NullBehavior() Behavior { return Behavior{Type: BehaviorNull} }

// HaltBehavior stops any further transition.
func HaltBehavior() Behavior { return Behavior{Type: BehaviorHalt} }

// NavigateBehavior sends the user agent to url.
func NavigateBehavior(url string) Behavior { return Behavior{Type: BehaviorNavigate, URL: url} }

// Halt reports whether b stops further transitions.
func (b Behavior) Halt() bool { return b.Type == BehaviorHalt }
