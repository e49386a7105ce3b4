package funpay

import (
	"strconv"
	"strings"
)

// fallback when the rate-limit phrasing isn't recognized
const defaultWaitSeconds = 10

// WaitTimeFromRaiseResponse turns the free-text rate-limit message the
// raise endpoint answers with into a wait duration in seconds. The
// phrasing is funpay's (Russian), not the client locale's, and the
// rules must run in this exact order: the singular forms contain the
// plural stems as substrings.
func WaitTimeFromRaiseResponse(response string) int {
	switch {
	case strings.Contains(response, "секунду."):
		return 1
	case strings.Contains(response, "сек"):
		if n, ok := waitNumber(response); ok {
			return n
		}
	case strings.Contains(response, "минуту."):
		return 60
	case strings.Contains(response, "мин"):
		// funpay displays the in-progress minute inclusively, hence
		// the minus one
		if n, ok := waitNumber(response); ok {
			return (n - 1) * 60
		}
	case strings.Contains(response, "час"):
		return 3600
	}
	return defaultWaitSeconds
}

// waitNumber reads the numeric token following "Подождите".
func waitNumber(response string) (int, bool) {
	parts := strings.Fields(response)
	if len(parts) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
