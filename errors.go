package phoneinput

import "errors"

// ErrEmptyDirectory indicates a directory was built without any country records.
var ErrEmptyDirectory = errors.New("phoneinput: empty country directory")

// ErrInvalidCountryCode marks records whose ISO 3166-1 alpha-2 code is malformed or unknown.
var ErrInvalidCountryCode = errors.New("phoneinput: invalid country code")

// ErrInvalidDialCode marks records whose dial code is not "+" followed by digits.
var ErrInvalidDialCode = errors.New("phoneinput: invalid dial code")

// ErrDuplicateCountry indicates the same ISO code appears twice in a directory.
var ErrDuplicateCountry = errors.New("phoneinput: duplicate country")

// ErrUnknownCountry is returned when an ISO code is not present in the directory.
var ErrUnknownCountry = errors.New("phoneinput: unknown country")

// ErrUnsupportedFormat is returned for directory files or exports in an unknown encoding.
var ErrUnsupportedFormat = errors.New("phoneinput: unsupported format")
