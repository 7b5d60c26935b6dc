package invoice

import "fmt"

// UpstreamError is a failure raised by an external collaborator such as the
// AI service or the spreadsheet library. Source names the collaborator.
type UpstreamError struct {
	Source string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
