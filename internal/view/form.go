package view

import (
	"net/url"
	"time"
)

// FormState is the lifecycle of a form submission.
type FormState int

const (
	Idle FormState = iota
	Submitting
	Submitted
	Rejected
)

// Form carries the submitted values back to the template so a rejected
// form keeps what the user typed.
type Form struct {
	State  FormState
	Values url.Values
	Error  string
}

// NewForm returns an idle form.
func NewForm() Form {
	return Form{State: Idle, Values: url.Values{}}
}

// Submit moves the form to Submitting with the posted values.
func (f *Form) Submit(values url.Values) {
	f.State = Submitting
	f.Values = values
	f.Error = ""
}

// Reject moves the form to Rejected with msg.
func (f *Form) Reject(msg string) {
	f.State = Rejected
	f.Error = msg
}

// Succeed moves the form to Submitted.
func (f *Form) Succeed() {
	f.State = Submitted
	f.Error = ""
}

// Get returns a submitted value.
func (f Form) Get(name string) string {
	if f.Values == nil {
		return ""
	}
	return f.Values.Get(name)
}

// DefaultBannerTimeout is how long a success banner stays up.
const DefaultBannerTimeout = 5 * time.Second

// Banner is a transient success message.
type Banner struct {
	Message string
	Timeout time.Duration
}

// NewBanner returns a banner for msg, or nil if msg is empty.
func NewBanner(msg string, timeout time.Duration) *Banner {
	if msg == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = DefaultBannerTimeout
	}
	return &Banner{Message: msg, Timeout: timeout}
}

// TimeoutMillis is the dismissal delay handed to the page script.
func (b *Banner) TimeoutMillis() int64 {
	return b.Timeout.Milliseconds()
}
