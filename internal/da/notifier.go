package da

// Notifier receives user-facing outcome notifications. Orchestrators pair
// every notification with a machine-readable result so the two cannot
// diverge in meaning; rendering is the adapter's concern (the CLI installs
// a stderr adapter, tests install a spy).
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// NopNotifier discards all notifications. It is the default when no
// adapter is installed.
type NopNotifier struct{}

func NewNopNotifier() *NopNotifier { return &NopNotifier{} }

func (*NopNotifier) Success(string) {}
func (*NopNotifier) Failure(string) {}
