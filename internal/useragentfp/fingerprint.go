// Package useragentfp derives a deterministic device fingerprint from the
// client's User-Agent header. The fingerprint is a display string compared
// verbatim by the login risk evaluator, so its format must stay stable.
package useragentfp

import (
	"strings"

	"github.com/mileusna/useragent"
)

// Fingerprint parses rawUA and formats it as
// "{osName} {osVersion} - {browserName} {browserVersion}". Missing fields
// render as empty segments; parsing never fails.
func Fingerprint(rawUA string) string {
	ua := useragent.Parse(rawUA)
	osPart := strings.TrimSpace(ua.OS + " " + ua.OSVersion)
	browserPart := strings.TrimSpace(ua.Name + " " + ua.Version)
	return osPart + " - " + browserPart
}
