package types

// Family is the top-level payment category. It determines which
// currencies and which catalog subset are reachable.
type Family string

const (
	FamilyFiat   Family = "fiat"
	FamilyCrypto Family = "crypto"
)

// Families lists the selectable payment families in display order.
func Families() []Family {
	return []Family{FamilyFiat, FamilyCrypto}
}

// IsValid reports whether f is a known payment family.
func (f Family) IsValid() bool {
	return f == FamilyFiat || f == FamilyCrypto
}

// IsCrypto reports whether totals for this family are shown with
// send-amount precision instead of fiat display precision.
func (f Family) IsCrypto() bool {
	return f == FamilyCrypto
}

func (f Family) String() string {
	return string(f)
}

// Step identifies where a session currently is in the flow.
type Step string

const (
	StepVerifyEmail    Step = "verifyEmail"
	StepChooseFamily   Step = "chooseFamily"
	StepChooseCurrency Step = "chooseCurrency"
	StepChooseMethod   Step = "chooseMethod"
	StepConfirm        Step = "confirm"
	StepCompleted      Step = "completed"
)

func (s Step) String() string {
	return string(s)
}

// Terminal reports whether the flow has finished at this step.
func (s Step) Terminal() bool {
	return s == StepCompleted
}

// Event names the user-initiated actions the flow reacts to. Used for
// logging and metrics labels.
type Event string

const (
	EventSubmitCode     Event = "submit_code"
	EventSelectFamily   Event = "select_family"
	EventSelectCurrency Event = "select_currency"
	EventSelectMethod   Event = "select_method"
	EventBack           Event = "back"
	EventPay            Event = "pay"
)

func (e Event) String() string {
	return string(e)
}
