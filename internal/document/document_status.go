package document

const (
	StatusGenerated = "generated"
	StatusSent      = "sent"
	StatusViewed    = "viewed"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusExpired   = "expired"
)

// transitions is the whole lifecycle. Anything absent is rejected.
var transitions = map[string][]string{
	StatusGenerated: {StatusSent, StatusExpired},
	StatusSent:      {StatusViewed, StatusExpired},
	StatusViewed:    {StatusAccepted, StatusRejected, StatusExpired},
}

func ValidStatus(s string) bool {
	switch s {
	case StatusGenerated, StatusSent, StatusViewed, StatusAccepted, StatusRejected, StatusExpired:
		return true
	}
	return false
}

func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsTerminal(s string) bool {
	return len(transitions[s]) == 0
}

// timestampColumn is the column stamped when a document enters status.
func timestampColumn(status string) string {
	switch status {
	case StatusSent:
		return "sent_at"
	case StatusViewed:
		return "viewed_at"
	case StatusAccepted, StatusRejected:
		return "decided_at"
	case StatusExpired:
		return "expired_at"
	}
	return ""
}
