package cert

import "fmt"

// InvalidCertificateError reports a truncated or malformed field
// encountered while decoding a certificate blob.
type InvalidCertificateError struct {
	Field string
}

func (e *InvalidCertificateError) Error() string {
	return fmt.Sprintf("invalid certificate: truncated %s", e.Field)
}

// UnsupportedKeyTypeError reports a certificate whose algorithm
// identifier is not one of the recognized key families.
type UnsupportedKeyTypeError struct {
	Algorithm string
}

func (e *UnsupportedKeyTypeError) Error() string {
	return fmt.Sprintf("unsupported key type: %s", e.Algorithm)
}
