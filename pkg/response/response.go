package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/internship-forms-api/pkg/errors"
)

// Envelope is the uniform response shape returned by every endpoint:
// a success flag plus either a data payload or a human-readable message.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Token   string      `json:"token,omitempty"`
}

// JSON sends an arbitrary envelope with the given status.
func JSON(c *gin.Context, status int, env Envelope) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, env)
}

// Data sends a 200 success envelope carrying a payload.
func Data(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, Envelope{Success: true, Data: data})
}

// Message sends a success envelope carrying only a message.
func Message(c *gin.Context, status int, message string) {
	JSON(c, status, Envelope{Success: true, Message: message})
}

// Submission reports a form-submission outcome. The status is always 200:
// the flag reflects whether the payload was complete, not whether the
// write succeeded.
func Submission(c *gin.Context, accepted bool) {
	JSON(c, http.StatusOK, Envelope{Success: accepted})
}

// Error converts err into a failure envelope with a message.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	JSON(c, appErr.Status, Envelope{Success: false, Message: appErr.Message})
}

// ErrorData converts err into a failure envelope carrying the error text
// as the data payload. The read facade reports storage failures this way.
func ErrorData(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	payload := appErr.Message
	if appErr.Err != nil {
		payload = appErr.Err.Error()
	}
	JSON(c, appErr.Status, Envelope{Success: false, Data: payload})
}
