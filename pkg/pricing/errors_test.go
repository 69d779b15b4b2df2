package pricing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedParseError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := &FeedParseError{
		Service:    ServiceDatabase,
		Region:     "eu-west-1",
		Scheme:     SchemeReserved,
		Generation: GenerationPrevious,
		Err:        cause,
	}

	assert.Contains(t, err.Error(), "database")
	assert.Contains(t, err.Error(), "eu-west-1")
	assert.Contains(t, err.Error(), "reserved")
	assert.Contains(t, err.Error(), "previous")
	require.ErrorIs(t, err, cause)
}

func TestFeedParseErrorWithoutRegion(t *testing.T) {
	err := &FeedParseError{
		Service:    ServiceCache,
		Scheme:     SchemeOnDemand,
		Generation: GenerationCurrent,
		Err:        errors.New("boom"),
	}
	assert.Contains(t, err.Error(), "all-regions")
}
