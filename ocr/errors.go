package ocr

// RecognitionError wraps a failure of the OCR engine itself, as opposed to
// configuration or build-tag problems.
type RecognitionError struct {
	Err error
}

func (e *RecognitionError) Error() string {
	return "recognition failed: " + e.Err.Error()
}

func (e *RecognitionError) Unwrap() error {
	return e.Err
}
