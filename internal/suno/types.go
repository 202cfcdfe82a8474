package suno

import "encoding/json"

// Task statuses reported by the record-info endpoint. PENDING, TEXT_SUCCESS
// and FIRST_SUCCESS are in-flight; SUCCESS and the four failure statuses are
// terminal.
const (
	StatusPending      = "PENDING"
	StatusTextSuccess  = "TEXT_SUCCESS"
	StatusFirstSuccess = "FIRST_SUCCESS"
	StatusSuccess      = "SUCCESS"

	StatusCreateTaskFailed    = "CREATE_TASK_FAILED"
	StatusGenerateAudioFailed = "GENERATE_AUDIO_FAILED"
	StatusCallbackException   = "CALLBACK_EXCEPTION"
	StatusSensitiveWordError  = "SENSITIVE_WORD_ERROR"
)

// IsFailureStatus reports whether the status is a terminal failure.
func IsFailureStatus(status string) bool {
	switch status {
	case StatusCreateTaskFailed, StatusGenerateAudioFailed, StatusCallbackException, StatusSensitiveWordError:
		return true
	}
	return false
}

// envelope is the wrapper every Suno API response uses. Code is the service
// status, independent of the HTTP status code.
type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type submitData struct {
	TaskID string `json:"taskId"`
}

// RecordInfo is the poll response for a submitted task. Response stays raw so
// a malformed or partial payload degrades to zero tracks during extraction
// instead of failing the poll.
type RecordInfo struct {
	TaskID       string          `json:"taskId"`
	Status       string          `json:"status"`
	ErrorMessage string          `json:"errorMessage"`
	Response     json.RawMessage `json:"response"`
}

// TrackData is one entry of data.response.sunoData.
type TrackData struct {
	ID        string  `json:"id"`
	AudioURL  string  `json:"audioUrl"`
	ImageURL  string  `json:"imageUrl"`
	Title     string  `json:"title"`
	Duration  float64 `json:"duration"`
	Tags      string  `json:"tags"`
	Prompt    string  `json:"prompt"`
	ModelName string  `json:"modelName"`
}
