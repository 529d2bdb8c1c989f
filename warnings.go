package folio

import (
	"fmt"
	"strings"
)

// WarningCode classifies a non-fatal issue raised during reading.
type WarningCode string

const (
	// WarnGarbled means a window decoded under no supported encoding
	// and was returned as hexadecimal digits. Callers should surface a
	// "content may be garbled" affordance for these reads.
	WarnGarbled WarningCode = "garbled-content"

	// WarnEncodingOverride means a window decoded poorly under the
	// expected encoding and a different one was silently used.
	WarnEncodingOverride WarningCode = "encoding-override"
)

// Warning describes a non-fatal issue encountered while reading.
// Warnings never stop a read; they explain why its output may look
// degraded.
type Warning struct {
	Code    WarningCode
	Message string
}

// String returns the warning as "code: message".
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// FormatWarnings renders a warning slice as a single semicolon-joined
// string, suitable for logging.
//
// Example:
//
//	log.Println("Warnings:", folio.FormatWarnings(warnings))
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
