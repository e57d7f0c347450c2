package http

import (
	"net/http"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// fail writes err as a JSON error. Storage failures are logged and their
// detail is not exposed.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, op, collection string) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		s.records.LogError(r.Context(), "Finance operation failed", err, log.ComponentHTTP, op,
			log.NewFields().WithRecord(collection, r.PathValue("id")))
		InternalServerError("storage unavailable").Write(w)
		return
	}
	log.FromContext(r.Context()).WarnContext(r.Context(), "Rejected request",
		log.FieldOperation, op, log.FieldError, err.Error())
	BadRequestError(err.Error()).Write(w)
}

func parseBody(w http.ResponseWriter, r *http.Request) (*RequestBodyParser, bool) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError(err.Error()).Write(w)
		return nil, false
	}
	return p, true
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	f, err := ParseFilter(r.URL.Query())
	if err != nil {
		s.fail(w, r, err, log.OpList, storage.KeyTransactions)
		return
	}
	NewJSONResponse().JSON(nonNil(s.finance.FilterTransactions(f))).Write(w)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	p, ok := parseBody(w, r)
	if !ok {
		return
	}
	draft, err := ParseTransactionDraft(p)
	if err != nil {
		s.fail(w, r, err, log.OpValidate, storage.KeyTransactions)
		return
	}

	t, err := s.finance.AddTransaction(r.Context(), draft)
	if err != nil {
		s.fail(w, r, err, log.OpCreate, storage.KeyTransactions)
		return
	}
	s.records.LogMutation(r.Context(), log.OpCreate, storage.KeyTransactions, t.ID,
		log.NewFields().WithMoney(t.Category, t.Amount))
	Created(t).Write(w)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if err := s.finance.DeleteTransaction(r.Context(), id); err != nil {
		s.fail(w, r, err, log.OpDelete, storage.KeyTransactions)
		return
	}
	s.records.LogMutation(r.Context(), log.OpDelete, storage.KeyTransactions, id, nil)
	NoContent().Write(w)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats := s.finance.Categories()
	if v := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type"))); v != "" {
		t := core.TransactionType(v)
		if !t.IsValid() {
			s.fail(w, r, core.ErrInvalidType, log.OpList, storage.KeyCategories)
			return
		}
		cats = core.CategoriesOfType(cats, t)
	}
	NewJSONResponse().JSON(nonNil(cats)).Write(w)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	p, ok := parseBody(w, r)
	if !ok {
		return
	}
	draft, err := ParseCategoryDraft(p)
	if err != nil {
		s.fail(w, r, err, log.OpValidate, storage.KeyCategories)
		return
	}

	c, err := s.finance.AddCategory(r.Context(), draft)
	if err != nil {
		s.fail(w, r, err, log.OpCreate, storage.KeyCategories)
		return
	}
	s.records.LogMutation(r.Context(), log.OpCreate, storage.KeyCategories, c.ID, nil)
	Created(c).Write(w)
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().JSON(nonNil(s.finance.Budgets())).Write(w)
}

func (s *Server) handleUpsertBudget(w http.ResponseWriter, r *http.Request) {
	p, ok := parseBody(w, r)
	if !ok {
		return
	}
	draft, err := ParseBudgetDraft(p)
	if err != nil {
		s.fail(w, r, err, log.OpValidate, storage.KeyBudgets)
		return
	}

	b, err := s.finance.UpsertBudget(r.Context(), draft)
	if err != nil {
		s.fail(w, r, err, log.OpUpsert, storage.KeyBudgets)
		return
	}
	s.records.LogMutation(r.Context(), log.OpUpsert, storage.KeyBudgets, b.ID,
		log.NewFields().WithMoney(b.Category, b.Limit))
	NewJSONResponse().JSON(b).Write(w)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if err := s.finance.DeleteBudget(r.Context(), id); err != nil {
		s.fail(w, r, err, log.OpDelete, storage.KeyBudgets)
		return
	}
	s.records.LogMutation(r.Context(), log.OpDelete, storage.KeyBudgets, id, nil)
	NoContent().Write(w)
}

func (s *Server) handleBudgetStatuses(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().JSON(nonNil(s.finance.BudgetStatuses())).Write(w)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().JSON(s.finance.Stats()).Write(w)
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().JSON(nonNil(s.finance.CategoryBreakdown())).Write(w)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	months, err := ParseMonths(r.URL.Query())
	if err != nil {
		s.fail(w, r, err, log.OpList, storage.KeyTransactions)
		return
	}
	NewJSONResponse().JSON(s.finance.MonthlyTrend(months)).Write(w)
}

// nonNil keeps empty collections encoded as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
