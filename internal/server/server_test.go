package server

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/careplanhq/careplan/internal/config"
	"github.com/careplanhq/careplan/internal/domain"
	"github.com/careplanhq/careplan/internal/output"
	"github.com/careplanhq/careplan/internal/session"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	runner, err := session.FromConfig(&config.Config{})
	require.NoError(t, err)
	return New(runner, 0)
}

func post(s *Server, path, body string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(fasthttp.MethodPost)
	req.SetRequestURI(path)
	req.SetBodyString(body)
	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	s.route(ctx)
	return ctx
}

const personBody = `{
	"name": "Ruth",
	"answers": {
		"memory_changes": "severe",
		"cognitive_dx_confirm": "dx_yes",
		"behaviors": ["wandering"],
		"hours_per_day": "24h"
	},
	"advisory": {"tier": "assisted_living", "confidence": 0.72}
}`

func TestHandleCarePlan(t *testing.T) {
	s := testServer(t)

	ctx := post(s, "/v1/care-plan", personBody)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var plan domain.CarePlan
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &plan))
	assert.Equal(t, domain.TierAssistedLiving, plan.FinalTier)
	assert.Equal(t, domain.SourceAdvisory, plan.Adjudication.Source)
	assert.Equal(t, "Ruth", plan.PersonName)
}

func TestHandleCarePlanBadRequests(t *testing.T) {
	s := testServer(t)

	t.Run("malformed json", func(t *testing.T) {
		ctx := post(s, "/v1/care-plan", "{not json")
		assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	})

	t.Run("missing answers", func(t *testing.T) {
		ctx := post(s, "/v1/care-plan", `{"name": "Ruth"}`)
		assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

		var e errorResponse
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &e))
		assert.Equal(t, fasthttp.StatusBadRequest, e.Status)
		assert.Contains(t, e.Message, "answers")
	})
}

func TestHandleCostPlan(t *testing.T) {
	s := testServer(t)
	body := `{
		"primary": ` + personBody + `,
		"household": {"scenario": "facility", "keep_home": true}
	}`

	ctx := post(s, "/v1/cost-plan", body)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var report output.Report
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &report))
	require.NotNil(t, report.Primary)
	require.NotNil(t, report.PrimaryCost)
	assert.Equal(t, domain.ScenarioFacility, report.PrimaryCost.Scenario)
	assert.False(t, report.PrimaryCost.TotalMonthly.IsZero())
	assert.Nil(t, report.Household)
}

func TestHandleHousehold(t *testing.T) {
	s := testServer(t)
	body := `{
		"primary": ` + personBody + `,
		"partner": {"name": "Al", "answers": {"memory_changes": "none"}},
		"household": {"scenario": "facility", "keep_home": true, "ownership": "owner"}
	}`

	ctx := post(s, "/v1/household", body)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var report output.Report
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &report))
	require.NotNil(t, report.Partner)
	assert.Equal(t, domain.TierNoCareNeeded, report.Partner.FinalTier)
	require.NotNil(t, report.Household)
	assert.True(t, report.Household.Split.Primary.Equal(report.Household.Split.Partner))
}

func TestHandleHouseholdValidation(t *testing.T) {
	s := testServer(t)

	ctx := post(s, "/v1/household", `{
		"primary": `+personBody+`,
		"household": {"scenario": "in_home"}
	}`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode(),
		"in_home without hours_per_day fails validation")
}

func TestRouting(t *testing.T) {
	s := testServer(t)

	t.Run("unknown path", func(t *testing.T) {
		ctx := post(s, "/v2/care-plan", personBody)
		assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
	})

	t.Run("wrong method", func(t *testing.T) {
		var req fasthttp.Request
		req.Header.SetMethod(fasthttp.MethodGet)
		req.SetRequestURI("/v1/care-plan")
		ctx := &fasthttp.RequestCtx{}
		ctx.Init(&req, nil, nil)
		s.route(ctx)
		assert.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())
	})
}
