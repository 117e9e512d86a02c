package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parcel-router/internal/routing"
	"parcel-router/internal/testutil"
)

func newTestRouter(t *testing.T) *routing.Router {
	t.Helper()
	router, err := routing.NewRouter(testutil.NewRouteStore(t), "DE", "101")
	require.NoError(t, err)
	return router
}

func TestRoute(t *testing.T) {
	router := newTestRouter(t)

	t.Run("resolves a domestic destination", func(t *testing.T) {
		info, err := router.Route(routing.Destination{Country: "DE", PostCode: "42477"})
		require.NoError(t, err)

		assert.Equal(t, "DE", info.Country)
		assert.Equal(t, "276", info.CountryNum)
		assert.Equal(t, "0142", info.DDepot)
		assert.Equal(t, "65", info.DSort)
		assert.Equal(t, "42", info.OSort)
		assert.Equal(t, "D", info.ServiceText)
		assert.Equal(t, "", info.ServiceInfo)
		assert.Equal(t, "37", info.BarcodeID)
		assert.Equal(t, testutil.DatasetVersion, info.RoutingTableVersion)
	})

	t.Run("resolves a foreign destination", func(t *testing.T) {
		info, err := router.Route(routing.Destination{Country: "FR", PostCode: "66400"})
		require.NoError(t, err)

		assert.Equal(t, "FR", info.Country)
		assert.Equal(t, "250", info.CountryNum)
		assert.Equal(t, "0470", info.DDepot)
		assert.Equal(t, "U50", info.DSort)
		assert.Equal(t, "16", info.OSort)
	})

	t.Run("accepts a lowercase country", func(t *testing.T) {
		upper, err := router.Route(routing.Destination{Country: "DE", PostCode: "42477"})
		require.NoError(t, err)
		lower, err := router.Route(routing.Destination{Country: "de", PostCode: "42477"})
		require.NoError(t, err)
		assert.Equal(t, upper, lower)
	})

	t.Run("reroutes Liechtenstein via Switzerland", func(t *testing.T) {
		info, err := router.Route(routing.Destination{Country: "LI", PostCode: "8440"})
		require.NoError(t, err)

		assert.Equal(t, "CH", info.Country)
		assert.Equal(t, "756", info.CountryNum)
		assert.Equal(t, "0617", info.DDepot)
		assert.Equal(t, "", info.DSort)
		assert.Equal(t, "78", info.OSort)
	})

	t.Run("matches alphanumeric postcodes", func(t *testing.T) {
		compact, err := router.Route(routing.Destination{Country: "GB", PostCode: "GU148HN"})
		require.NoError(t, err)
		assert.Equal(t, "1550", compact.DDepot)
		assert.Equal(t, "52", compact.OSort)

		spaced, err := router.Route(routing.Destination{Country: "GB", PostCode: "GU 14 8HN"})
		require.NoError(t, err)
		assert.Equal(t, compact, spaced)
	})

	t.Run("prefers the narrowest matching range", func(t *testing.T) {
		// 42477 falls into both the country-wide row and the 42000-42500 row.
		info, err := router.Route(routing.Destination{Country: "DE", PostCode: "42477"})
		require.NoError(t, err)
		assert.Equal(t, "0142", info.DDepot)
		assert.Equal(t, "65", info.DSort)
	})

	t.Run("picks the first depot of a multi-depot route", func(t *testing.T) {
		info, err := router.Route(routing.Destination{Country: "FR", PostCode: "66400"})
		require.NoError(t, err)
		assert.Equal(t, "0470", info.DDepot)
	})

	t.Run("resolves without a route match", func(t *testing.T) {
		info, err := router.Route(routing.Destination{Country: "DE", PostCode: "99999"})
		require.NoError(t, err)

		assert.Equal(t, "", info.DDepot)
		assert.Equal(t, "", info.DSort)
		assert.Equal(t, "", info.OSort)
		assert.Equal(t, "DE", info.Country)
		assert.Equal(t, "276", info.CountryNum)
		assert.Equal(t, "D", info.ServiceText)
	})

	t.Run("defaults the country", func(t *testing.T) {
		info, err := router.Route(routing.Destination{PostCode: "42477"})
		require.NoError(t, err)
		assert.Equal(t, "DE", info.Country)
		assert.Equal(t, "0142", info.DDepot)
	})

	t.Run("defaulted country strips its embedded prefix", func(t *testing.T) {
		info, err := router.Route(routing.Destination{PostCode: "DE42477"})
		require.NoError(t, err)
		assert.Equal(t, "DE", info.Country)
		assert.Equal(t, "42477", info.PostCode)
		assert.Equal(t, "0142", info.DDepot)
		assert.Equal(t, "65", info.DSort)
	})

	t.Run("fails for an unknown country", func(t *testing.T) {
		_, err := router.Route(routing.Destination{Country: "URG", PostCode: "42477"})
		var countryErr *routing.CountryError
		require.ErrorAs(t, err, &countryErr)
	})

	t.Run("fails without a postcode", func(t *testing.T) {
		_, err := router.Route(routing.Destination{Country: "DE"})
		var translationErr *routing.TranslationError
		require.ErrorAs(t, err, &translationErr)
	})
}

func TestRouteServices(t *testing.T) {
	router := newTestRouter(t)

	t.Run("non-default service carries its text as serviceinfo", func(t *testing.T) {
		info, err := router.Route(routing.Destination{Country: "DE", PostCode: "42477", ServiceCode: "185"})
		require.NoError(t, err)

		assert.Equal(t, "DPD 10:00 Unfrei / ex works", info.ServiceText)
		assert.Equal(t, "DPD 10:00 Unfrei / ex works", info.ServiceInfo)
		assert.Equal(t, "37", info.BarcodeID)
	})

	t.Run("service without a text row uses its name", func(t *testing.T) {
		info, err := router.Route(routing.Destination{Country: "DE", PostCode: "42477", ServiceCode: "180"})
		require.NoError(t, err)

		assert.Equal(t, "AM1-NO", info.ServiceText)
		assert.Equal(t, "AM1-NO", info.ServiceInfo)
		assert.Equal(t, "022,160", info.BarcodeID)
	})

	t.Run("fails for an unknown service", func(t *testing.T) {
		_, err := router.Route(routing.Destination{Country: "DE", PostCode: "42477", ServiceCode: "999"})
		var serviceErr *routing.ServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "999", serviceErr.Code)
	})
}

func TestRouteCityTranslation(t *testing.T) {
	router := newTestRouter(t)

	t.Run("routes Ireland by city", func(t *testing.T) {
		info, err := router.Route(routing.Destination{Country: "IE", City: "Dublin"})
		require.NoError(t, err)

		assert.Equal(t, "IE", info.Country)
		assert.Equal(t, "372", info.CountryNum)
		assert.Equal(t, "0520", info.DDepot)
		assert.Equal(t, "52", info.OSort)
	})

	t.Run("fails for an untranslatable city", func(t *testing.T) {
		_, err := router.Route(routing.Destination{Country: "IE", City: "Cahir"})
		var translationErr *routing.TranslationError
		require.ErrorAs(t, err, &translationErr)
		assert.Equal(t, "Cahir", translationErr.City)
	})

	t.Run("fails without a city", func(t *testing.T) {
		_, err := router.Route(routing.Destination{Country: "IE", PostCode: "D12"})
		var translationErr *routing.TranslationError
		require.ErrorAs(t, err, &translationErr)
	})
}

func TestRoutingData(t *testing.T) {
	router := newTestRouter(t)

	info, err := router.Route(routing.Destination{Country: "FR", PostCode: "66400"})
	require.NoError(t, err)

	data := info.RoutingData()
	assert.Equal(t, routing.RoutingData{
		DDepot:      "0470",
		ServiceInfo: "",
		Country:     "FR",
		DSort:       "U50",
		OSort:       "16",
		ServiceText: "D",
	}, data)
}
