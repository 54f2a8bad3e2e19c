package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeToken creates a base64 encoded cursor from a transaction date and a row id.
// Rows are ordered by (date DESC, id DESC); the token points at the last row of a page.
func EncodeToken(txnDate time.Time, id int64) string {
	tokenStr := fmt.Sprintf("%s|%d", txnDate.Format(timeFormat), id)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the token back into transaction date and row id.
func DecodeToken(token string) (time.Time, int64, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (split)")
	}

	txnDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (id parse): %w", err)
	}

	return txnDate, id, nil
}

// After reports whether the row (date, id) sorts after the cursor in (date DESC, id DESC) order.
func After(date time.Time, id int64, cursorDate time.Time, cursorID int64) bool {
	if date.Equal(cursorDate) {
		return id < cursorID
	}
	return date.Before(cursorDate)
}
