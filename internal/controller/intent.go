// internal/controller/intent.go
//
// Intents are the button texts a form emits.  Anything else is ignored.
package controller

// Intent names one user action on a form.
type Intent string

const (
	Save  Intent = "Save"
	Clear Intent = "Clear"
	Close Intent = "Close"
)

// ParseIntent maps button text to an Intent.  ok is false for unknown text.
func ParseIntent(s string) (Intent, bool) {
	switch Intent(s) {
	case Save, Clear, Close:
		return Intent(s), true
	}
	return "", false
}

// Outcome reports what Handle did.
type Outcome int

const (
	Ignored Outcome = iota
	Saved
	Rejected
	Cleared
	Closed
)

func (o Outcome) String() string {
	switch o {
	case Saved:
		return "saved"
	case Rejected:
		return "rejected"
	case Cleared:
		return "cleared"
	case Closed:
		return "closed"
	default:
		return "ignored"
	}
}
