package domain

import (
	"regexp"
	"strings"
	"time"
)

const (
	MsgMissingParts       = `Please provide a location and country code in the format: "location, country code, date (optional)"`
	MsgInvalidCountryCode = "Country code must be 2 letters (e.g., US, UK, FR)"
	MsgInvalidDate        = "Date must be in YYYY-MM-DD format"
)

var countryCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)

// ParseImageRequest reads "location, country code, date (optional)".
func ParseImageRequest(text string) (ImageRequest, error) {
	parts := strings.Split(text, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) < 2 {
		return ImageRequest{}, NewFormatError(MsgMissingParts)
	}

	countryCode := strings.ToUpper(parts[1])
	if !countryCodePattern.MatchString(countryCode) {
		return ImageRequest{}, NewFormatError(MsgInvalidCountryCode)
	}

	req := ImageRequest{
		Location:    parts[0],
		CountryCode: countryCode,
	}

	if len(parts) > 2 {
		date, err := time.Parse(time.DateOnly, parts[2])
		if err != nil {
			return ImageRequest{}, NewFormatError(MsgInvalidDate)
		}
		req.Date = &date
	}

	return req, nil
}
