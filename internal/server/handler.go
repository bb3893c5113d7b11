package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rgehrsitz/evtax/internal/breakeven"
	"github.com/rgehrsitz/evtax/internal/compare"
	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/rgehrsitz/evtax/internal/solver"
	"github.com/rgehrsitz/evtax/internal/stats"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// UserHeader carries the caller's identity for usage statistics
const UserHeader = "X-User-ID"

// Handler exposes the solver over HTTP.
type Handler struct {
	solver   *solver.Solver
	compare  *compare.CompareEngine
	breakEv  *breakeven.Solver
	recorder stats.Recorder
	admins   map[string]bool
	log      *logrus.Entry
	version  string
}

// NewHandler creates a new Handler. A nil recorder disables statistics;
// admins are the user IDs allowed to read them.
func NewHandler(s *solver.Solver, recorder stats.Recorder, admins []string, log *logrus.Entry, version string) *Handler {
	if recorder == nil {
		recorder = stats.NopRecorder{}
	}
	if log == nil {
		log = logrus.WithField("module", "server")
	}
	allowed := make(map[string]bool, len(admins))
	for _, id := range admins {
		allowed[id] = true
	}
	return &Handler{
		solver:   s,
		compare:  compare.NewCompareEngine(s),
		breakEv:  breakeven.NewDefaultSolver(s),
		recorder: recorder,
		admins:   allowed,
		log:      log,
		version:  version,
	}
}

type solveBody struct {
	Regime              string          `json:"regime"`
	Mode                string          `json:"mode"`
	Amount              decimal.Decimal `json:"amount"`
	ExpenseRatioPercent decimal.Decimal `json:"expense_ratio_percent"`
	WageFloor           string          `json:"wage_floor"`
}

func (b solveBody) toRequest() (domain.SolveRequest, error) {
	regime, err := domain.ParseRegime(b.Regime)
	if err != nil {
		return domain.SolveRequest{}, err
	}
	mode, err := domain.ParseInputMode(b.Mode)
	if err != nil {
		return domain.SolveRequest{}, err
	}
	floor, err := domain.ParseWageFloorChoice(b.WageFloor)
	if err != nil {
		return domain.SolveRequest{}, err
	}
	return domain.SolveRequest{
		Regime:              regime,
		Mode:                mode,
		Amount:              b.Amount,
		ExpenseRatioPercent: b.ExpenseRatioPercent,
		WageFloor:           floor,
	}, nil
}

type compareBody struct {
	Mode                 string          `json:"mode"`
	Amount               decimal.Decimal `json:"amount"`
	ExpenseRatioPercent  decimal.Decimal `json:"expense_ratio_percent"`
	FlatRateRatioPercent decimal.Decimal `json:"flat_rate_ratio_percent"`
	WageFloor            string          `json:"wage_floor"`
}

type breakEvenBody struct {
	A                    string          `json:"a"`
	B                    string          `json:"b"`
	MinRevenue           decimal.Decimal `json:"min_revenue"`
	MaxRevenue           decimal.Decimal `json:"max_revenue"`
	ExpenseRatioPercent  decimal.Decimal `json:"expense_ratio_percent"`
	FlatRateRatioPercent decimal.Decimal `json:"flat_rate_ratio_percent"`
	WageFloor            string          `json:"wage_floor"`
}

// Health handles GET /health.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "ok",
		"version":     h.version,
		"fiscal_year": h.solver.Table.FiscalYear,
	})
}

// Parameters handles GET /v1/parameters.
func (h *Handler) Parameters(c *fiber.Ctx) error {
	return Success(c, "parameters", h.solver.Table)
}

// Solve handles POST /v1/solve.
func (h *Handler) Solve(c *fiber.Ctx) error {
	var body solveBody
	if err := c.BodyParser(&body); err != nil {
		return BadRequest(c, "invalid request body")
	}
	req, err := body.toRequest()
	if err != nil {
		return BadRequest(c, err.Error())
	}

	res, err := h.solver.Solve(c.UserContext(), req.WithDefaults(h.solver.Table))
	if err != nil {
		return h.solveError(c, err)
	}

	h.record(c, stats.CalcEvent(h.userID(c), "", req))
	return Success(c, "calculation completed", res)
}

// Compare handles POST /v1/compare.
func (h *Handler) Compare(c *fiber.Ctx) error {
	var body compareBody
	if err := c.BodyParser(&body); err != nil {
		return BadRequest(c, "invalid request body")
	}
	mode, err := domain.ParseInputMode(body.Mode)
	if err != nil {
		return BadRequest(c, err.Error())
	}
	floor, err := domain.ParseWageFloorChoice(body.WageFloor)
	if err != nil {
		return BadRequest(c, err.Error())
	}

	set, err := h.compare.Compare(c.UserContext(), compare.Request{
		Mode:                 mode,
		Amount:               body.Amount,
		ExpenseRatioPercent:  body.ExpenseRatioPercent,
		FlatRateRatioPercent: body.FlatRateRatioPercent,
		WageFloor:            floor,
	})
	if err != nil {
		return h.solveError(c, err)
	}
	return Success(c, "comparison completed", set)
}

// BreakEven handles POST /v1/break-even.
func (h *Handler) BreakEven(c *fiber.Ctx) error {
	var body breakEvenBody
	if err := c.BodyParser(&body); err != nil {
		return BadRequest(c, "invalid request body")
	}
	a, err := domain.ParseRegime(body.A)
	if err != nil {
		return BadRequest(c, err.Error())
	}
	b, err := domain.ParseRegime(body.B)
	if err != nil {
		return BadRequest(c, err.Error())
	}
	floor, err := domain.ParseWageFloorChoice(body.WageFloor)
	if err != nil {
		return BadRequest(c, err.Error())
	}

	req := breakeven.Request{
		A:                    a,
		B:                    b,
		MinRevenue:           body.MinRevenue,
		MaxRevenue:           body.MaxRevenue,
		ExpenseRatioPercent:  body.ExpenseRatioPercent,
		FlatRateRatioPercent: body.FlatRateRatioPercent,
		WageFloor:            floor,
	}
	if err := req.Validate(); err != nil {
		return BadRequest(c, err.Error())
	}

	result, err := h.breakEv.Find(c.UserContext(), req)
	if err != nil {
		return h.solveError(c, err)
	}
	return Success(c, "break-even analysis completed", result)
}

// Stats handles GET /v1/stats. Only admin users may read it.
func (h *Handler) Stats(c *fiber.Ctx) error {
	if id := c.Get(UserHeader); id == "" || !h.admins[id] {
		return Forbidden(c, "statistics are available to administrators only")
	}
	sum, err := h.recorder.Summary(c.UserContext())
	if err != nil {
		h.log.WithError(err).Error("stats summary failed")
		return ServerError(c, "statistics unavailable")
	}
	return Success(c, "statistics", sum)
}

func (h *Handler) solveError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, solver.ErrInvalidInput):
		return BadRequest(c, err.Error())
	case errors.Is(err, solver.ErrUnsupportedMode):
		return Unprocessable(c, err.Error())
	default:
		h.log.WithError(err).Error("solve failed")
		return ServerError(c, "calculation failed")
	}
}

func (h *Handler) userID(c *fiber.Ctx) string {
	if id := c.Get(UserHeader); id != "" {
		return id
	}
	return c.IP()
}

func (h *Handler) record(c *fiber.Ctx, e *stats.Event) {
	if err := h.recorder.Record(c.UserContext(), e); err != nil {
		h.log.WithError(err).Warn("failed to record usage event")
	}
}
