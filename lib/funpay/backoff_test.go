package funpay

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWaitTimeFromRaiseResponse(t *testing.T) {
	testCases := []struct {
		response string
		expected int
	}{
		{"Подождите 5 сек.", 5},
		{"подождите одну секунду.", 1},
		{"подождите 3 минуты.", 120},
		{"подождите одну минуту.", 60},
		{"подождите 2 часа", 3600},
		{"unexpected text", 10},
		{"", 10},
	}

	for _, test := range testCases {
		require.Equal(
			t, test.expected, WaitTimeFromRaiseResponse(test.response),
			"response: %q", test.response,
		)
	}
}
