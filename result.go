package sensor

// Sentinel is the fixed placeholder published in place of real data when a poll fails.
// It signals a recovered failure to consumers without raising, matching the value a
// renderer falls back to when it cannot extract anything from a response body.
const Sentinel = "N/A"

// Result is the tagged variant cached by a fetcher: either the raw body of a successful
// response or a failure marker left behind by a transport-level error. Exactly one Result
// exists per fetcher at any time and it is overwritten in place on every gated attempt.
// The variant replaces ad hoc sentinel checks with an explicit failed flag.
type Result struct {
	body   string
	failed bool
}

// Success constructs a Result holding the raw body of a successful response.
// The body is stored as received, with no trimming, parsing or status inspection.
func Success(body string) Result {
	return Result{body: body}
}

// Failure constructs a Result marking a recovered transport failure.
// Its published state is the fixed Sentinel value rather than any response data.
func Failure() Result {
	return Result{failed: true}
}

// Failed reports whether the result marks a recovered transport failure.
func (r Result) Failed() bool {
	return r.failed
}

// Body returns the raw response body of a successful result.
// For a failed result it returns the empty string; use State for the published form.
func (r Result) Body() string {
	return r.body
}

// State returns the value a sensor publishes for this result before any rendering:
// the raw body for a success, the Sentinel marker verbatim for a failure.
func (r Result) State() string {
	if r.failed {
		return Sentinel
	}
	return r.body
}
