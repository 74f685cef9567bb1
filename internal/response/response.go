package response

import (
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

// The API speaks the flat wire shapes of the public contract: payloads are
// returned bare (arrays, records, null) and every error body is
// {"error": message}. There is no envelope.

// Error writes the uniform error body with the status derived from the
// error's Kind.
func Error(c *gin.Context, err error) {
	c.JSON(StatusOf(err), gin.H{"error": err.Error()})
}

// ValidationError flattens translated field errors into the uniform error
// body with a 400 status.
func ValidationError(c *gin.Context, fields map[string]string) {
	err := Tag(KindValidation, errFromFields(fields))
	c.JSON(StatusOf(err), gin.H{"error": err.Error()})
}

type fieldsError string

func (e fieldsError) Error() string { return string(e) }

func errFromFields(fields map[string]string) error {
	parts := make([]string, 0, len(fields))
	for name, msg := range fields {
		parts = append(parts, name+": "+msg)
	}
	sort.Strings(parts)
	return fieldsError("validation failed: " + strings.Join(parts, "; "))
}
