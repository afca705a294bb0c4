package view

import (
	"context"
	"testing"

	"BrentDash/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mountChangePoint(t *testing.T, api *fakeAPI) *ChangePointChart {
	t.Helper()
	lc := NewLifecycle(context.Background(), nil)
	t.Cleanup(lc.Unmount)
	c := NewChangePointChart(lc, api, "cp", 0)
	c.Mount()
	lc.Wait()
	return c
}

func TestChangePointChartDrop(t *testing.T) {
	api := &fakeAPI{
		prices: samplePrices(),
		changePoints: models.ChangePointResult{
			Kind:  models.ChangePointSingle,
			Items: []models.ChangePoint{{TauDate: "2014-11-27", MuBefore: fp(100), MuAfter: fp(60)}},
		},
	}
	c := mountChangePoint(t, api)

	v := c.View()
	require.Equal(t, StatusReady, v.Status)
	require.True(t, v.Found)
	assert.Equal(t, "Bayesian Change Point Detected: 2014-11-27", v.Badge)
	assert.Equal(t, "$100.00", v.MeanBefore)
	assert.Equal(t, "$60.00", v.MeanAfter)
	assert.Equal(t, "-40.0%", v.PriceChange)
	assert.Equal(t, "price-down", v.ChangeClass)

	require.NotNil(t, v.Chart)
	assert.Equal(t, StatusReady, v.Chart.Status)
	assert.Equal(t, "2014-11-27", v.Chart.Props.ChangePoint)
	require.Len(t, v.Chart.Markers, 1)
	assert.Equal(t, "Change Point", v.Chart.Markers[0].Label)
}

func TestChangePointChartUsesFirstListItem(t *testing.T) {
	api := &fakeAPI{
		changePoints: models.ChangePointResult{
			Kind: models.ChangePointList,
			Items: []models.ChangePoint{
				{TauDate: "2008-07-11", MuBefore: fp(50), MuAfter: fp(55)},
				{TauDate: "2020-03-09", MuBefore: fp(60), MuAfter: fp(30)},
			},
		},
	}
	v := mountChangePoint(t, api).View()

	assert.Equal(t, "2008-07-11", v.TauDate)
	assert.Equal(t, "+10.0%", v.PriceChange)
	assert.Equal(t, "price-up", v.ChangeClass)
}

func TestChangePointChartEmptyResult(t *testing.T) {
	api := &fakeAPI{prices: samplePrices()}
	v := mountChangePoint(t, api).View()

	assert.Equal(t, StatusReady, v.Status)
	assert.False(t, v.Found)
	assert.Empty(t, v.Badge)
	require.NotNil(t, v.Chart)
	assert.Empty(t, v.Chart.Markers)
}

func TestChangePointChartFailure(t *testing.T) {
	api := &fakeAPI{cpErr: errUpstream}
	v := mountChangePoint(t, api).View()

	assert.Equal(t, StatusError, v.Status)
	assert.Equal(t, "Failed to load change point data", v.Error)
	assert.Nil(t, v.Chart)
	assert.Zero(t, api.count("prices"))
}

func TestFormatPercentChange(t *testing.T) {
	tests := []struct {
		name      string
		before    *float64
		after     *float64
		wantText  string
		wantClass string
	}{
		{"drop", fp(100), fp(60), "-40.0%", "price-down"},
		{"rise", fp(80), fp(90), "+12.5%", "price-up"},
		{"flat", fp(80), fp(80), "+0.0%", "price-up"},
		{"tiny drop rounds to zero", fp(100000), fp(99999.99), "+0.0%", "price-up"},
		{"missing before", nil, fp(80), "N/A", "price-up"},
		{"missing after", fp(80), nil, "N/A", "price-up"},
		{"zero before", fp(0), fp(80), "N/A", "price-up"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, class := FormatPercentChange(models.ChangePoint{MuBefore: tt.before, MuAfter: tt.after})
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantClass, class)
		})
	}
}

func TestFormatMean(t *testing.T) {
	assert.Equal(t, "N/A", FormatMean(nil))
	assert.Equal(t, "$0.00", FormatMean(fp(0)))
	assert.Equal(t, "$111.35", FormatMean(fp(111.3472)))
}
