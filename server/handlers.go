package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/miraclehq/miracle"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleListInstruments(w http.ResponseWriter, r *http.Request) {
	instruments := make([]miracle.Instrument, 0, s.catalog.Len())
	for inst := range s.catalog.All() {
		instruments = append(instruments, inst)
	}
	s.writeJSON(w, http.StatusOK, instruments)
}

func (s *Server) handleGetInstrument(w http.ResponseWriter, r *http.Request) {
	inst := s.catalog.Get(chi.URLParam(r, "symbol"))
	if inst == nil {
		s.writeError(w, http.StatusNotFound, "unknown symbol")
		return
	}
	s.writeJSON(w, http.StatusOK, inst)
}

func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	ledger := s.snapshot()
	v := miracle.NewValuation(s.catalog, ledger)

	positions := []map[string]any{}
	for p := range ledger.Positions() {
		entry := map[string]any{
			"symbol":   p.Symbol,
			"quantity": p.Quantity,
			"avgCost":  p.AvgCost,
		}
		if inst := s.catalog.Get(p.Symbol); inst != nil {
			entry["price"] = inst.Price
			entry["value"] = inst.Price.Mul(p.Quantity)
		}
		positions = append(positions, entry)
	}

	pies := []miracle.Pie{}
	for p := range ledger.Pies() {
		pies = append(pies, p)
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"cash":               ledger.Cash(),
		"positions":          positions,
		"pies":               pies,
		"investedValue":      v.InvestedValue(),
		"netWorth":           v.NetWorth(),
		"totalReturn":        v.TotalReturn(),
		"totalReturnPercent": float64(v.TotalReturnPercent()),
	})
}

func (s *Server) handleGetPerformance(w http.ResponseWriter, r *http.Request) {
	v := miracle.NewValuation(s.catalog, s.snapshot())
	s.writeJSON(w, http.StatusOK, v.PerformanceSeries())
}

func (s *Server) handleGetAllocation(w http.ResponseWriter, r *http.Request) {
	v := miracle.NewValuation(s.catalog, s.snapshot())
	s.writeJSON(w, http.StatusOK, v.SectorAllocation(0))
}

type tradeRequest struct {
	Side     string  `json:"side"`
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
}

func (s *Server) handleCreateTrade(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	side, err := miracle.ParseSide(req.Side)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var tx miracle.Transaction
	err = s.swap(func(l *miracle.Ledger) (*miracle.Ledger, error) {
		next, t, err := l.ApplyTrade(s.catalog, side, req.Symbol, miracle.Q(req.Quantity))
		tx = t
		return next, err
	})
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}

	s.log.Info().
		Str("side", string(tx.Side)).
		Str("symbol", tx.Symbol).
		Str("quantity", tx.Quantity.String()).
		Str("price", tx.Price.String()).
		Msg("Trade executed")
	s.writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.snapshot().History())
}

func (s *Server) handleListPies(w http.ResponseWriter, r *http.Request) {
	pies := []miracle.Pie{}
	for p := range s.snapshot().Pies() {
		pies = append(pies, p)
	}
	s.writeJSON(w, http.StatusOK, pies)
}

type pieRequest struct {
	Name   string `json:"name"`
	Slices []struct {
		Symbol string  `json:"symbol"`
		Weight float64 `json:"weight"`
	} `json:"slices"`
	Deposit float64 `json:"deposit"`
}

func (s *Server) handleCreatePie(w http.ResponseWriter, r *http.Request) {
	var req pieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	pie := miracle.Pie{
		ID:    uuid.NewString(),
		Name:  req.Name,
		Value: miracle.M(req.Deposit, s.catalog.Currency()),
	}
	if pie.Name == "" {
		pie.Name = "My Pie"
	}
	for _, sl := range req.Slices {
		pie.Slices = append(pie.Slices, miracle.Slice{
			Symbol: sl.Symbol,
			Weight: miracle.Percent(sl.Weight),
		})
	}

	err := s.swap(func(l *miracle.Ledger) (*miracle.Ledger, error) {
		return l.ApplyPieCreate(s.catalog, pie)
	})
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, pie)
}

func (s *Server) handleDeletePie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.swap(func(l *miracle.Ledger) (*miracle.Ledger, error) {
		return l.ApplyPieDelete(id)
	})
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

type cashRequest struct {
	Amount float64 `json:"amount"`
}

func (s *Server) handleCreateDeposit(w http.ResponseWriter, r *http.Request) {
	s.handleCashMovement(w, r, (*miracle.Ledger).ApplyDeposit)
}

func (s *Server) handleCreateWithdrawal(w http.ResponseWriter, r *http.Request) {
	s.handleCashMovement(w, r, (*miracle.Ledger).ApplyWithdraw)
}

func (s *Server) handleCashMovement(w http.ResponseWriter, r *http.Request,
	apply func(*miracle.Ledger, miracle.Money) (*miracle.Ledger, error)) {

	var req cashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	amount := miracle.M(req.Amount, s.catalog.Currency())
	err := s.swap(func(l *miracle.Ledger) (*miracle.Ledger, error) {
		return apply(l, amount)
	})
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]any{"cash": s.snapshot().Cash()})
}

func (s *Server) handleInstrumentInsight(w http.ResponseWriter, r *http.Request) {
	inst := s.catalog.Get(chi.URLParam(r, "symbol"))
	if inst == nil {
		s.writeError(w, http.StatusNotFound, "unknown symbol")
		return
	}
	text := s.insight.InstrumentInsight(r.Context(), inst)
	s.writeJSON(w, http.StatusOK, map[string]any{"insight": text})
}

func (s *Server) handlePortfolioInsight(w http.ResponseWriter, r *http.Request) {
	v := miracle.NewValuation(s.catalog, s.snapshot())
	text := s.insight.PortfolioInsight(r.Context(), v)
	s.writeJSON(w, http.StatusOK, map[string]any{"insight": text})
}

// writeLedgerError maps a rejected transition to the API status code:
// unknown resources are 404, every other validation failure is 422.
func (s *Server) writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, miracle.ErrUnknownSymbol), errors.Is(err, miracle.ErrPieNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, miracle.ErrInvalidQuantity),
		errors.Is(err, miracle.ErrInvalidAmount),
		errors.Is(err, miracle.ErrInsufficientFunds),
		errors.Is(err, miracle.ErrInsufficientHoldings),
		errors.Is(err, miracle.ErrInvalidWeightSum),
		errors.Is(err, miracle.ErrNoSelection),
		errors.Is(err, miracle.ErrTooManySelections):
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.log.Error().Err(err).Msg("Unexpected ledger error")
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]any{"error": message})
}
