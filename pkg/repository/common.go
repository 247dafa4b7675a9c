package repository

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// errCritical marks errors that must not be retried
var errCritical = errors.New("critical database error")

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

func (e *criticalError) Unwrap() error { return e.err }

// Is makes criticalError match errCritical, used as a repeater stop error
func (e *criticalError) Is(target error) bool { return target == errCritical }

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

// classify keeps lock errors retryable and marks everything else as critical
func classify(err error) error {
	if err == nil || isLockError(err) {
		return err
	}
	return &criticalError{err: err}
}

// newRetrier makes a backoff repeater for write operations contending on sqlite locks
func newRetrier() *repeater.Repeater {
	return repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
}

// jsonList is a JSON array of strings for SQL operations
type jsonList []string

// Value implements driver.Valuer for database storage
func (l jsonList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (l *jsonList) Scan(value any) error {
	if value == nil {
		*l = jsonList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into jsonList", value)
	}

	if len(data) == 0 {
		*l = jsonList{}
		return nil
	}
	return json.Unmarshal(data, (*[]string)(l))
}
