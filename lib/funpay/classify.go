package funpay

import (
	"net/http"

	"github.com/PuerkitoBio/goquery"
)

type Classification int

const (
	ClassOk Classification = iota
	ClassNotFound
	ClassInvalidSession
	ClassFailure
)

// profile name node, present on every page rendered for an
// authenticated session. Its absence on a 200 response is the only
// reliable signal funpay gives that the token was rejected.
const authMarkerSelector = "div.user-link-name"

// Classify decides what a response means. `doc` may be nil for
// endpoints that return fragments without the authenticated-page
// chrome (AJAX form loads, save responses), in which case only the
// status is considered.
func Classify(status int, doc *goquery.Document) Classification {
	if status == http.StatusNotFound {
		return ClassNotFound
	}
	if status < 200 || status > 299 {
		return ClassFailure
	}
	if doc != nil && doc.Find(authMarkerSelector).Length() == 0 {
		return ClassInvalidSession
	}
	return ClassOk
}

// Err converts a classification into the error kind callers branch on.
func (c Classification) Err(status int) error {
	switch c {
	case ClassOk:
		return nil
	case ClassNotFound:
		return ErrNotFound
	case ClassInvalidSession:
		return ErrInvalidSession
	}
	return StatusError{Status: status}
}
