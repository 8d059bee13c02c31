package display

// Badge is a status chip.
type Badge struct {
	Label string
	Tone  Tone
}

var statusBadges = map[string]Badge{
	"PENDING_CONFIRMATION": {"Pending confirmation", ToneWarning},
	"SUBMITTED":            {"Submitted", ToneNeutral},
	"IN_PROGRESS":          {"In progress", ToneNeutral},
	"COMPLETED":            {"Completed", ToneSuccess},
	"CANCELLED":            {"Cancelled", ToneDanger},
	"REJECTED":             {"Rejected", ToneDanger},
}

// StatusBadge maps an order status to its badge. Unknown statuses show as-is.
func StatusBadge(status string) Badge {
	if b, ok := statusBadges[status]; ok {
		return b
	}
	return Badge{Label: status, Tone: ToneNeutral}
}
