package utils

import (
	"log"
	"strings"
)

// LogEvent writes one line per domain event: subsystem (booking, chat,
// docs, notify), the verb, and request correlation. Messages carry ids
// and short summaries, never guest payload.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("event=%s.%s request_id=%s %s", module, action, req, message)
}
