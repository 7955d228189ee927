// Package server exposes the assessment pipeline as a JSON API over
// fasthttp. Request and response bodies reuse the intake and report types,
// so a request is exactly an intake document posted instead of loaded from
// file.
package server

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/careplanhq/careplan/internal/config"
	"github.com/careplanhq/careplan/internal/output"
	"github.com/careplanhq/careplan/internal/session"
)

// Server serves the care plan API.
type Server struct {
	runner *session.Runner
	parser *config.IntakeParser
	port   int
}

// New builds a server around an assembled runner.
func New(runner *session.Runner, port int) *Server {
	return &Server{
		runner: runner,
		parser: config.NewIntakeParser(),
		port:   port,
	}
}

// ListenAndServe blocks serving the API.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.port)
	zap.L().Info("server: listening", zap.String("addr", addr))
	return fasthttp.ListenAndServe(addr, s.route)
}

func (s *Server) route(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		return
	}

	switch string(ctx.Path()) {
	case "/v1/care-plan":
		s.handleCarePlan(ctx)
	case "/v1/cost-plan":
		s.handleCostPlan(ctx)
	case "/v1/household":
		s.handleHousehold(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

// handleCarePlan assesses one person, without any cost estimation.
func (s *Server) handleCarePlan(ctx *fasthttp.RequestCtx) {
	var req config.IntakePerson
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.parser.ValidatePerson("primary", &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	plan := s.runner.Engine.ComputeCarePlan(ctx, uuid.Nil,
		req.Name, req.PersonAnswers(), session.AdvisorFor(&req))
	writeJSON(ctx, fasthttp.StatusOK, plan)
}

// handleCostPlan assesses the primary person and prices the requested
// scenario for them.
func (s *Server) handleCostPlan(ctx *fasthttp.RequestCtx) {
	intake, ok := s.decodeIntake(ctx)
	if !ok {
		return
	}

	plan := s.runner.Engine.ComputeCarePlan(ctx, uuid.Nil,
		intake.Primary.Name, intake.Primary.PersonAnswers(), session.AdvisorFor(&intake.Primary))
	cost, err := s.runner.CostPlan(plan, &intake.Household)
	if err != nil {
		writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, output.Report{Primary: plan, PrimaryCost: cost})
}

// handleHousehold runs the full pipeline: both persons, both cost plans,
// and the household aggregate.
func (s *Server) handleHousehold(ctx *fasthttp.RequestCtx) {
	intake, ok := s.decodeIntake(ctx)
	if !ok {
		return
	}

	report, err := s.runner.Run(ctx, intake)
	if err != nil {
		writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, report)
}

func (s *Server) decodeIntake(ctx *fasthttp.RequestCtx) (*config.Intake, bool) {
	var intake config.Intake
	if err := json.Unmarshal(ctx.PostBody(), &intake); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return nil, false
	}
	if err := s.parser.Validate(&intake); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return nil, false
	}
	return &intake, true
}

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, errorResponse{Status: status, Message: message})
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	data, err := json.Marshal(v)
	if err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetBody(data)
}
