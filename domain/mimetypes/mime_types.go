// Package mimetypes names the content types a profile corpus may contain.
package mimetypes

import "mime"

type MIME string

const (
	Unknown         MIME = "unknown"
	ApplicationJSON MIME = "application/json"
	TextPlain       MIME = "text/plain"
	TextHTML        MIME = "text/html"
	TextXML         MIME = "text/xml"
	ApplicationGzip MIME = "application/gzip"
	ApplicationZip  MIME = "application/zip"
)

var known = []MIME{ApplicationJSON, TextPlain, TextHTML, TextXML, ApplicationGzip, ApplicationZip}

// Matches compares a sniffed content type (parameters allowed) with an expected one.
func Matches(detected string, expected MIME) bool {
	mt, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return false
	}
	return mt == string(expected)
}

// Classify reduces a sniffed content type to one of the known kinds.
func Classify(detected string) MIME {
	for _, m := range known {
		if Matches(detected, m) {
			return m
		}
	}
	return Unknown
}
