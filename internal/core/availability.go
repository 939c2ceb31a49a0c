package core

// Availability is the backend state last observed by the status poller.
type Availability int

const (
	AvailabilityUnknown Availability = iota
	AvailabilityOnline
	AvailabilityOffline
)

func (a Availability) String() string {
	switch a {
	case AvailabilityOnline:
		return "online"
	case AvailabilityOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// BadgeText is the label shown on the status badge.
func (a Availability) BadgeText() string {
	switch a {
	case AvailabilityOnline:
		return "API Status: Online"
	case AvailabilityOffline:
		return "API Status: Offline"
	default:
		return "API Status: Checking"
	}
}
