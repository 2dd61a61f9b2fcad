// Package nextcloud is a client for the WebDAV and OCS sharing APIs of a Nextcloud server.
//
// Every operation returns a Result instead of an error. Failures carry a four-digit code:
// the first two digits name the operation family (01 folders, 02 uploads, 03 listing,
// 04 sharing) and the last two the kind of failure (00 transport, 01 status, 02 body).
package nextcloud

import "strings"

// Folder creation codes.
const (
	CodeFolderTransport = "0100"
	CodeFolderStatus    = "0101"
	CodeFolderResponse  = "0102"
)

// Upload codes.
const (
	CodeUploadTransport = "0200"
	CodeUploadStatus    = "0201"
	CodeUploadResponse  = "0202"
)

// Listing (PROPFIND) codes.
const (
	CodeListTransport = "0300"
	CodeListNoFileID  = "0301"
	CodeListXML       = "0302"
)

// Sharing codes.
const (
	CodeShareTransport       = "0400"
	CodeShareStatus          = "0401"
	CodeShareBody            = "0402"
	CodeShareMalformedStatus = "0403"
	CodeShareNoStatus        = "0404"
)

// Messages for failures that have no server-provided text.
const (
	msgXMLErrors      = "XML has errors"
	msgNoFileID       = "The FileID could not be retrieved"
	msgUnexpectedBody = "unexpected response body"
)

// ErrorDetail is the machine-readable part of a failed Result.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorDetail) Error() string {
	return "[" + e.Code + "] " + e.Message
}

// Transport reports whether the failure happened before the server answered.
func (e *ErrorDetail) Transport() bool {
	return e != nil && IsTransportCode(e.Code)
}

// Result is the outcome of a single client operation.
// Success is true exactly when Error is nil.
type Result struct {
	Success bool         `json:"success"`
	Data    string       `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// Succeeded returns a successful Result carrying data (may be empty).
func Succeeded(data string) Result {
	return Result{Success: true, Data: data}
}

// Failed returns a failed Result with the given code and message.
func Failed(code, message string) Result {
	return Result{Error: &ErrorDetail{Code: code, Message: message}}
}

// IsTransportCode reports whether code belongs to the transport-failure kind.
func IsTransportCode(code string) bool {
	return len(code) == 4 && strings.HasSuffix(code, "00")
}
