package api

// callOptions are per-request UX controls. They affect only the shared
// loading indicator and the shared error notification, never the request
// itself.
type callOptions struct {
	suppressLoader bool
	suppressNotify bool
}

// CallOption configures a single request.
type CallOption func(*callOptions)

// SuppressLoader opts the request out of the global loading indicator.
// Used when the invoking view renders its own local busy state, so the
// user does not see two spinners for one action.
func SuppressLoader() CallOption {
	return func(o *callOptions) { o.suppressLoader = true }
}

// SuppressNotify opts the request out of the shared error notification.
// Used for background probes that are allowed to fail silently; the caller
// still receives the error.
func SuppressNotify() CallOption {
	return func(o *callOptions) { o.suppressNotify = true }
}

func buildCallOptions(opts []CallOption) callOptions {
	var options callOptions
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
