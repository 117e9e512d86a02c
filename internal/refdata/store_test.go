package refdata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parcel-router/internal/refdata"
	"parcel-router/internal/testutil"
)

func TestCountryNumericCode(t *testing.T) {
	store := testutil.NewRouteStore(t)

	t.Run("resolves known countries", func(t *testing.T) {
		num, err := store.CountryNumericCode("JP")
		require.NoError(t, err)
		assert.Equal(t, "392", num)

		num, err = store.CountryNumericCode("AT")
		require.NoError(t, err)
		assert.Equal(t, "040", num)
	})

	t.Run("matches case-insensitively", func(t *testing.T) {
		num, err := store.CountryNumericCode("de")
		require.NoError(t, err)
		assert.Equal(t, "276", num)
	})

	t.Run("fails for unknown codes", func(t *testing.T) {
		_, err := store.CountryNumericCode("URW")
		require.Error(t, err)

		var countryErr *refdata.CountryError
		require.ErrorAs(t, err, &countryErr)
		assert.Equal(t, "URW", countryErr.Country)
	})

	t.Run("fails for empty input", func(t *testing.T) {
		_, err := store.CountryNumericCode("")
		var countryErr *refdata.CountryError
		require.ErrorAs(t, err, &countryErr)
	})
}

func TestGetService(t *testing.T) {
	store := testutil.NewRouteStore(t)

	t.Run("returns the full service row", func(t *testing.T) {
		service, err := store.GetService("180")
		require.NoError(t, err)
		assert.Equal(t, "180", service.Code)
		assert.Equal(t, "AM1-NO", service.Name)
		assert.Equal(t, "022,160", service.BarcodeID)
	})

	t.Run("fails for unknown codes", func(t *testing.T) {
		_, err := store.GetService("999")
		var serviceErr *refdata.ServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "999", serviceErr.Code)
	})
}

func TestServiceText(t *testing.T) {
	store := testutil.NewRouteStore(t)

	t.Run("returns the dedicated text when present", func(t *testing.T) {
		text, err := store.ServiceText("185")
		require.NoError(t, err)
		assert.Equal(t, "DPD 10:00 Unfrei / ex works", text)
	})

	t.Run("falls back to the service name", func(t *testing.T) {
		text, err := store.ServiceText("101")
		require.NoError(t, err)
		assert.Equal(t, "D", text)
	})

	t.Run("fails for unknown codes", func(t *testing.T) {
		_, err := store.ServiceText("999")
		var serviceErr *refdata.ServiceError
		require.ErrorAs(t, err, &serviceErr)
	})
}

func TestTranslateLocation(t *testing.T) {
	store := testutil.NewRouteStore(t)

	t.Run("resolves a known city", func(t *testing.T) {
		code, err := store.TranslateLocation("Dublin", "IE")
		require.NoError(t, err)
		assert.Equal(t, "1", code)
	})

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		code, err := store.TranslateLocation("  dublin ", "ie")
		require.NoError(t, err)
		assert.Equal(t, "1", code)
	})

	t.Run("fails for unknown cities", func(t *testing.T) {
		_, err := store.TranslateLocation("Cahir", "IE")
		var translationErr *refdata.TranslationError
		require.ErrorAs(t, err, &translationErr)
		assert.Equal(t, "Cahir", translationErr.City)
	})
}

func TestRoutesFor(t *testing.T) {
	store := testutil.NewRouteStore(t)

	t.Run("returns all overlapping ranges in insertion order", func(t *testing.T) {
		routes, err := store.RoutesFor("DE", "42477")
		require.NoError(t, err)
		require.Len(t, routes, 2)
		assert.Equal(t, 1, routes[0].ID)
		assert.Equal(t, 2, routes[1].ID)
	})

	t.Run("range end is exclusive", func(t *testing.T) {
		routes, err := store.RoutesFor("DE", "42500")
		require.NoError(t, err)
		require.Len(t, routes, 2)
		assert.Equal(t, 1, routes[0].ID)
		assert.Equal(t, 3, routes[1].ID)
	})

	t.Run("matches alphanumeric postcodes lexicographically", func(t *testing.T) {
		routes, err := store.RoutesFor("GB", "B66 1BY")
		require.NoError(t, err)
		require.Len(t, routes, 1)
		assert.Equal(t, 7, routes[0].ID)
	})

	t.Run("returns nothing outside all ranges", func(t *testing.T) {
		routes, err := store.RoutesFor("DE", "99999")
		require.NoError(t, err)
		assert.Empty(t, routes)
	})
}

func TestDepotsFor(t *testing.T) {
	store := testutil.NewRouteStore(t)

	t.Run("returns depots in insertion order", func(t *testing.T) {
		depots, err := store.DepotsFor(5)
		require.NoError(t, err)
		assert.Equal(t, []string{"0470", "0474"}, depots)
	})

	t.Run("returns nothing for an unmapped route", func(t *testing.T) {
		depots, err := store.DepotsFor(999)
		require.NoError(t, err)
		assert.Empty(t, depots)
	})
}

func TestGetDepot(t *testing.T) {
	store := testutil.NewRouteStore(t)

	t.Run("returns the full depot row", func(t *testing.T) {
		depot, err := store.GetDepot("0015")
		require.NoError(t, err)
		assert.Equal(t, "Betriebsgesellschaft DPD GmbH", depot.Name1)
		assert.Equal(t, "Otto-Hahn-Strasse 5", depot.Address1)
		assert.Equal(t, "59423", depot.PostCode)
		assert.Equal(t, "Unna", depot.City)
		assert.Equal(t, "DE", depot.Country)
	})

	t.Run("fails for an unknown depot", func(t *testing.T) {
		_, err := store.GetDepot("9999")
		assert.Error(t, err)
	})
}

func TestVersion(t *testing.T) {
	t.Run("returns the dataset stamp", func(t *testing.T) {
		store := testutil.NewRouteStore(t)
		version, err := store.Version()
		require.NoError(t, err)
		assert.Equal(t, testutil.DatasetVersion, version)
	})

	t.Run("returns empty for an unstamped dataset", func(t *testing.T) {
		store, err := refdata.Init(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })

		version, err := store.Version()
		require.NoError(t, err)
		assert.Equal(t, "", version)
	})
}
