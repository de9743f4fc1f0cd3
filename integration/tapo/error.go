package tapo

import "fmt"

var errorCodes = map[int]string{
	-1010:  "Invalid Public Key Length",
	-1501:  "Invalid Request or Credentials",
	1002:   "Incorrect Request",
	-1003:  "JSON formatting error",
	-20601: "Incorrect email or password",
	-20675: "Cloud token expired or invalid",
	9999:   "Device token expired or invalid",
}

// Error is an error code reported by the device or the cloud.
type Error struct {
	Code int
	Msg  string
}

func (e *Error) Error() string {
	if known, ok := errorCodes[e.Code]; ok {
		return known
	}

	return fmt.Sprintf("Unexpected Error Code: %d (%s)", e.Code, e.Msg)
}

// CheckError turns a non zero error code into an *Error.
func CheckError(code int, msg string) error {
	if code == 0 {
		return nil
	}

	return &Error{Code: code, Msg: msg}
}
