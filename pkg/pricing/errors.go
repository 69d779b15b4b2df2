package pricing

import (
	"errors"
	"fmt"
)

// ErrFieldMissing marks an entry that cannot form a record because a
// required field is absent. Parsers skip such entries; the sentinel never
// reaches callers.
var ErrFieldMissing = errors.New("required field missing")

// FeedParseError reports one unparsable feed document. It carries enough
// context to identify the source without aborting the remaining documents.
type FeedParseError struct {
	Service    Service
	Region     string // region filter the document was fetched under; empty means all
	Scheme     Scheme
	Generation Generation
	Err        error
}

func (e *FeedParseError) Error() string {
	region := e.Region
	if region == "" {
		region = "all-regions"
	}
	return fmt.Sprintf("parse %s/%s/%s feed (%s): %v", e.Service, e.Scheme, e.Generation, region, e.Err)
}

func (e *FeedParseError) Unwrap() error { return e.Err }
