//go:build integration

package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-melnyk/weather-lookup-api/internal/models"
)

func TestWeatherLookup_Flow(t *testing.T) {
	httpClient := &http.Client{Timeout: 5 * time.Second}

	t.Run("known city returns verbatim weather record", func(t *testing.T) {
		resp, err := httpClient.Get(testServerURL + "/api/weather?cityName=Toronto&countryName=CA")
		require.NoError(t, err)
		defer func() {
			require.NoError(t, resp.Body.Close())
		}()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var data models.WeatherData
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))

		assert.Equal(t, "Clouds", data.Main)
		assert.Equal(t, "overcast clouds", data.Description)
		assert.Equal(t, "04d", data.Icon)
		assert.Equal(t, 12, data.Temp)
	})

	t.Run("unknown city returns 404", func(t *testing.T) {
		resp, err := httpClient.Get(testServerURL + "/api/weather?cityName=Nowhere&countryName=XX")
		require.NoError(t, err)
		defer func() {
			require.NoError(t, resp.Body.Close())
		}()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("missing params returns 400", func(t *testing.T) {
		resp, err := httpClient.Get(testServerURL + "/api/weather?cityName=Toronto")
		require.NoError(t, err)
		defer func() {
			require.NoError(t, resp.Body.Close())
		}()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
