package poeforum

import (
	"context"
	"errors"
	"poebuilds/lib/telemetry"
	"strings"
	"testing"

	_ "embed"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/listing.html
var listingHtml string

//go:embed testdata/listing_malformed.html
var malformedListingHtml string

var listingRefs = []ThreadRef{
	{Id: "2257414", Title: "[3.8] Duelist Build List"},
	{Id: "2600113", Title: "Cyclone Slayer - tanky league starter"},
	{Id: "2598001", Title: "Lacerate Gladiator & friends"},
}

func TestParseListing(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/poeforum")
	defer cleanup()

	ctx := context.Background()

	refs, err := ParseListing(ctx, strings.NewReader(listingHtml), false)
	require.NoError(t, err)
	if diff := cmp.Diff(listingRefs, refs); diff != "" {
		t.Fatalf("refs mismatch (-want +got):\n%s", diff)
	}

	refs, err = ParseListing(ctx, strings.NewReader(listingHtml), true)
	require.NoError(t, err)
	if diff := cmp.Diff(listingRefs[1:], refs); diff != "" {
		t.Fatalf("skip first mismatch (-want +got):\n%s", diff)
	}
}

func TestParseListingEmpty(t *testing.T) {
	refs, err := ParseListing(context.Background(), strings.NewReader("<html><body></body></html>"), true)
	require.NoError(t, err)
	require.Empty(t, refs)
}

func TestParseListingMalformed(t *testing.T) {
	_, err := ParseListing(context.Background(), strings.NewReader(malformedListingHtml), false)
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Equal(t, "listing", parseErr.Page)
}

func TestThreadRefLine(t *testing.T) {
	ref := ThreadRef{Id: "2600113", Title: "Cyclone Slayer - tanky league starter"}
	require.Equal(t, "2600113 - Cyclone Slayer - tanky league starter", ref.Line())

	parsed, err := ParseThreadRefLine(ref.Line() + "\n")
	require.NoError(t, err)
	require.Equal(t, ref, parsed)

	_, err = ParseThreadRefLine("no separator here")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)

	_, err = ParseThreadRefLine(" - title without id")
	require.ErrorAs(t, err, &parseErr)
}

func TestPaths(t *testing.T) {
	require.Equal(t, "view-forum/40/page/3", ListingPath("40", 3))
	require.Equal(t, "view-thread/2600113", ThreadPath("2600113"))
}
