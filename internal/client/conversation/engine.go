package conversation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/moneytalk/internal/client/api"
	"github.com/dmitrijs2005/moneytalk/internal/client/models"
	"github.com/dmitrijs2005/moneytalk/internal/common"
	"github.com/dmitrijs2005/moneytalk/internal/logging"
)

var (
	// ErrNoPending is returned when confirm/cancel/edit is attempted with no
	// pending operation.
	ErrNoPending = errors.New("no pending operation")
	// ErrResolveInFlight is returned when a confirm or cancel is already
	// running; the second attempt is rejected instead of queued.
	ErrResolveInFlight = errors.New("a confirm or cancel is already in progress")
	// ErrWrongDraftKind is returned when an edit targets a field the pending
	// draft does not have.
	ErrWrongDraftKind = errors.New("pending operation has no such field")
)

// Pending is the confirmation context: the editable working copy of the draft
// proposed by the bot message MessageID. The message itself keeps its original
// draft untouched; edits apply only here.
type Pending struct {
	MessageID   string
	RequestType models.RequestType
	Draft       models.Draft
}

// Engine drives the conversation: it owns the transcript store, decodes
// inbound messages, tracks at most one pending confirmation and reconciles
// confirm/cancel decisions with the backend.
//
// The engine is meant to be driven from a single goroutine (the UI loop); it
// performs no internal locking. The epoch counter detects transcript reloads
// that complete while a network call is in flight, so a stale response never
// mutates a transcript it does not belong to.
type Engine struct {
	api   api.Client
	store *Store
	dec   *Decoder
	log   logging.Logger

	pending   *Pending
	epoch     uint64
	resolving bool

	historyLimit   int
	resultPageSize int
}

func NewEngine(client api.Client, log logging.Logger, historyLimit, resultPageSize int) *Engine {
	return &Engine{
		api:            client,
		store:          NewStore(),
		dec:            NewDecoder(client.Expense),
		log:            log,
		historyLimit:   historyLimit,
		resultPageSize: resultPageSize,
	}
}

// Messages returns the transcript in chronological order.
func (e *Engine) Messages() []models.Message {
	return e.store.Messages()
}

// Get returns the transcript message with the given id.
func (e *Engine) Get(id string) (models.Message, bool) {
	return e.store.Get(id)
}

// Last returns the newest transcript message.
func (e *Engine) Last() (models.Message, bool) {
	return e.store.Last()
}

// Len reports the number of loaded messages.
func (e *Engine) Len() int {
	return e.store.Len()
}

// Pending returns a copy of the current confirmation context, or nil.
func (e *Engine) Pending() *Pending {
	if e.pending == nil {
		return nil
	}
	p := *e.pending
	return &p
}

// LoadHistory replaces the transcript with the most recent history page and
// clears any pending context. If the newest message is an unresolved
// confirmation, it becomes pending again so the user can still act on it.
// Messages that fail to decode are dropped with a warning rather than failing
// the whole load.
func (e *Engine) LoadHistory(ctx context.Context) error {
	e.epoch++
	epoch := e.epoch

	raws, err := e.api.Messages(ctx, e.historyLimit, "")
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	// Newest first on the wire; decode in chronological order.
	msgs := make([]models.Message, 0, len(raws))
	for i := len(raws) - 1; i >= 0; i-- {
		m, err := e.dec.Decode(ctx, raws[i])
		if err != nil {
			e.log.Warn(ctx, "dropping undecodable message", "id", raws[i].ID.String(), "error", err)
			continue
		}
		msgs = append(msgs, m)
	}

	if e.epoch != epoch {
		e.log.Debug(ctx, "discarding stale history load")
		return nil
	}

	e.store.Reset(msgs)
	e.pending = nil
	if last, ok := e.store.Last(); ok {
		if body, ok := last.Body.(models.ConfirmationBody); ok {
			e.pending = &Pending{MessageID: last.ID, RequestType: body.RequestType, Draft: body.Draft}
		}
	}
	return nil
}

// LoadOlder prepends one more page of history before the oldest loaded
// message. Confirmation messages in older pages are skipped: they can no
// longer be acted on. Returns the number of messages added.
func (e *Engine) LoadOlder(ctx context.Context) (int, error) {
	cursor, ok := e.store.OldestID()
	if !ok {
		return 0, e.LoadHistory(ctx)
	}
	epoch := e.epoch

	raws, err := e.api.Messages(ctx, e.historyLimit, cursor)
	if err != nil {
		return 0, fmt.Errorf("loading older history: %w", err)
	}

	batch := make([]models.Message, 0, len(raws))
	for i := len(raws) - 1; i >= 0; i-- {
		if m, ok := e.dec.DecodePlain(raws[i]); ok {
			batch = append(batch, m)
		}
	}

	if e.epoch != epoch {
		e.log.Debug(ctx, "discarding stale older-history load")
		return 0, nil
	}
	e.store.Prepend(batch)
	return len(batch), nil
}

// SendText posts a user text message. The message appears in the transcript
// immediately under a placeholder id; on success the placeholder is swapped
// for the persisted copy and the assistant's reply is appended. On failure
// the placeholder is removed again.
func (e *Engine) SendText(ctx context.Context, text string) error {
	epoch := e.epoch
	placeholder := models.Message{
		ID:        uuid.NewString(),
		Sender:    models.SenderUser,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Body:      models.TextBody{Text: text},
	}
	e.store.Append(placeholder)

	exchange, err := e.api.PostText(ctx, "user", text)
	if err != nil {
		if e.epoch == epoch {
			e.store.RemoveByID(placeholder.ID)
		}
		return fmt.Errorf("sending message: %w", err)
	}
	if e.epoch != epoch {
		return nil
	}

	if exchange.UserMessage != nil {
		persisted := placeholder
		persisted.ID = exchange.UserMessage.ID.String()
		persisted.Timestamp = orNow(exchange.UserMessage.Timestamp)
		e.store.ReplaceByID(placeholder.ID, persisted)
	}
	return e.applyAssistant(ctx, exchange.AssistantMessage)
}

// SendImage uploads a local image file as a user message, with the same
// optimistic-echo behavior as SendText.
func (e *Engine) SendImage(ctx context.Context, path string) error {
	epoch := e.epoch
	placeholder := models.Message{
		ID:        uuid.NewString(),
		Sender:    models.SenderUser,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Body:      models.ImageBody{URL: path},
	}
	e.store.Append(placeholder)

	exchange, err := e.api.PostImage(ctx, path)
	if err != nil {
		if e.epoch == epoch {
			e.store.RemoveByID(placeholder.ID)
		}
		return fmt.Errorf("sending image: %w", err)
	}
	if e.epoch != epoch {
		return nil
	}

	if exchange.UserMessage != nil {
		if m, err := e.dec.Decode(ctx, *exchange.UserMessage); err == nil {
			e.store.ReplaceByID(placeholder.ID, m)
		}
	}
	return e.applyAssistant(ctx, exchange.AssistantMessage)
}

// applyAssistant appends the assistant's reply and updates the pending
// context. A new confirmation becomes pending only when none is pending
// already; a plain text reply supersedes whatever was pending, since the bot
// has moved the conversation on.
func (e *Engine) applyAssistant(ctx context.Context, raw *api.RawMessage) error {
	if raw == nil {
		return nil
	}
	m, err := e.dec.Decode(ctx, *raw)
	if err != nil {
		return fmt.Errorf("decoding reply: %w", err)
	}
	e.store.Append(m)

	switch body := m.Body.(type) {
	case models.ConfirmationBody:
		if e.pending == nil {
			e.pending = &Pending{MessageID: m.ID, RequestType: body.RequestType, Draft: body.Draft}
		} else {
			e.log.Warn(ctx, "ignoring confirmation while another is pending", "id", m.ID)
		}
	case models.TextBody:
		if e.pending != nil {
			e.log.Debug(ctx, "pending operation superseded by new reply", "id", e.pending.MessageID)
			e.pending = nil
		}
	}
	return nil
}

// Confirm executes the pending operation against the backend and replaces the
// confirmation message with the outcome. Exactly one confirm or cancel may be
// in flight at a time.
func (e *Engine) Confirm(ctx context.Context) error {
	if e.resolving {
		return ErrResolveInFlight
	}
	if e.pending == nil {
		return ErrNoPending
	}
	e.resolving = true
	defer func() { e.resolving = false }()

	switch draft := e.pending.Draft.(type) {
	case models.InsertDraft:
		return e.confirmInsert(ctx, draft)
	case models.UpdateDraft:
		return e.confirmUpdate(ctx, draft)
	case models.DeleteDraft:
		return e.confirmDelete(ctx, draft)
	case models.QueryDraft:
		return e.confirmQuery(ctx, draft)
	default:
		return fmt.Errorf("unsupported pending draft %T", draft)
	}
}

// confirmInsert validates locally before touching the backend: at least one
// item must be included and every included amount must parse. A validation
// failure leaves the pending context open for correction.
func (e *Engine) confirmInsert(ctx context.Context, draft models.InsertDraft) error {
	items := make([]api.NewExpense, 0, len(draft.Items))
	for _, it := range draft.Items {
		if !it.Included {
			continue
		}
		amount, err := strconv.ParseInt(it.Amount, 10, 64)
		if err != nil {
			return fmt.Errorf("amount %q is not a number: %w", it.Amount, common.ErrorValidation)
		}
		items = append(items, api.NewExpense{
			Description: it.Description,
			Amount:      amount,
			ExpenseDate: it.ExpenseDate,
		})
	}
	if len(items) == 0 {
		return fmt.Errorf("no items selected: %w", common.ErrorValidation)
	}

	added, err := e.api.AddExpenses(ctx, items)
	if err != nil {
		return fmt.Errorf("adding expenses: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Added %d expense(s):", len(added))
	for _, x := range added {
		fmt.Fprintf(&b, "\n- #%d %s: %s (%s)", x.ID, x.Description, FormatAmount(x.Amount), FormatDate(x.ExpenseDate))
	}
	return e.finishWithSummary(ctx, b.String())
}

// confirmUpdate computes the effective value of each field (edited if set,
// else original), validates, and sends only the fields that differ from the
// original. No difference at all is a successful terminal state, not an
// error.
func (e *Engine) confirmUpdate(ctx context.Context, draft models.UpdateDraft) error {
	desc := draft.Original.Description
	if draft.UpdatedDescription != nil {
		desc = *draft.UpdatedDescription
	}
	date := draft.Original.ExpenseDate
	if draft.UpdatedDate != nil {
		date = *draft.UpdatedDate
	}
	amount := draft.Original.Amount
	if draft.UpdatedAmount != nil {
		v, err := strconv.ParseInt(*draft.UpdatedAmount, 10, 64)
		if err != nil {
			return fmt.Errorf("amount %q is not a number: %w", *draft.UpdatedAmount, common.ErrorValidation)
		}
		amount = v
	}
	if desc == "" {
		return fmt.Errorf("description must not be empty: %w", common.ErrorValidation)
	}
	if date == "" {
		return fmt.Errorf("date must not be empty: %w", common.ErrorValidation)
	}

	var patch api.ExpensePatch
	if desc != draft.Original.Description {
		patch.Description = &desc
	}
	if amount != draft.Original.Amount {
		patch.Amount = &amount
	}
	if date != draft.Original.ExpenseDate {
		patch.ExpenseDate = &date
	}
	if patch.IsEmpty() {
		return e.finishLocally(ctx, "No changes to apply.")
	}

	updated, err := e.api.UpdateExpense(ctx, draft.TargetID, patch)
	if err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}
	summary := fmt.Sprintf("Updated expense #%d: %s, %s (%s).",
		updated.ID, updated.Description, FormatAmount(updated.Amount), FormatDate(updated.ExpenseDate))
	return e.finishWithSummary(ctx, summary)
}

func (e *Engine) confirmDelete(ctx context.Context, draft models.DeleteDraft) error {
	ids := make([]int64, 0, len(draft.Items))
	for _, it := range draft.Items {
		if it.Included {
			ids = append(ids, it.ID)
		}
	}

	if len(ids) == 0 {
		return fmt.Errorf("no items selected: %w", common.ErrorValidation)
	}

	// The count can legitimately be below the number of ids (or zero) when
	// some records no longer exist; that is still success.
	count, err := e.api.DeleteExpenses(ctx, ids)
	if err != nil {
		return fmt.Errorf("deleting expenses: %w", err)
	}
	return e.finishWithSummary(ctx, fmt.Sprintf("Deleted %d expense(s).", count))
}

// confirmQuery runs the proposed search and swaps the confirmation for the
// first result page in place. The result lives only in the local transcript;
// nothing is persisted for it server-side.
func (e *Engine) confirmQuery(ctx context.Context, draft models.QueryDraft) error {
	filter := queryFilter(draft)
	epoch := e.epoch
	msgID := e.pending.MessageID

	page, err := e.api.Expenses(ctx, filter, 1, e.resultPageSize)
	if err != nil {
		return fmt.Errorf("querying expenses: %w", err)
	}
	if err := e.api.DeleteMessage(ctx, msgID); err != nil {
		return fmt.Errorf("removing confirmation message: %w", err)
	}
	if e.epoch != epoch {
		return nil
	}

	e.store.ReplaceByID(msgID, models.Message{
		ID:        msgID,
		Sender:    models.SenderBot,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Body: models.QueryResultBody{
			Text:         fmt.Sprintf("Found %d expense(s).", page.TotalRecords),
			Items:        page.Expenses,
			Page:         page.Page,
			TotalPages:   page.TotalPages,
			TotalRecords: page.TotalRecords,
			Filter:       filter,
		},
	})
	e.pending = nil
	return nil
}

// finishWithSummary persists the outcome text as an assistant message,
// removes the confirmation message remotely and locally, appends the outcome
// and clears the pending context. A failing step aborts the remainder: the
// pending context stays open, so a confirmation the backend still holds is
// never presented locally as resolved. Already-persisted writes are not
// rolled back.
func (e *Engine) finishWithSummary(ctx context.Context, summary string) error {
	epoch := e.epoch
	msgID := e.pending.MessageID

	exchange, err := e.api.PostText(ctx, "assistant", summary)
	if err != nil {
		return fmt.Errorf("saving outcome message: %w", err)
	}
	if err := e.api.DeleteMessage(ctx, msgID); err != nil {
		return fmt.Errorf("removing confirmation message: %w", err)
	}
	if e.epoch != epoch {
		return nil
	}

	e.store.RemoveByID(msgID)
	outcome := models.Message{
		ID:        uuid.NewString(),
		Sender:    models.SenderBot,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Body:      models.TextBody{Text: summary},
	}
	if exchange.AssistantMessage != nil {
		if m, err := e.dec.Decode(ctx, *exchange.AssistantMessage); err == nil {
			outcome = m
		}
	}
	e.store.Append(outcome)
	e.pending = nil
	return nil
}

// finishLocally removes the confirmation message remotely and locally and
// appends a transcript-only notice, without persisting an assistant message.
// Used when there is no outcome worth recording server-side. Same failure
// rule as finishWithSummary: a failed delete keeps the pending context open.
func (e *Engine) finishLocally(ctx context.Context, notice string) error {
	epoch := e.epoch
	msgID := e.pending.MessageID

	if err := e.api.DeleteMessage(ctx, msgID); err != nil {
		return fmt.Errorf("removing confirmation message: %w", err)
	}
	if e.epoch != epoch {
		return nil
	}

	e.store.RemoveByID(msgID)
	e.store.Append(models.Message{
		ID:        uuid.NewString(),
		Sender:    models.SenderBot,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Body:      models.TextBody{Text: notice},
	})
	e.pending = nil
	return nil
}

// Cancel discards the pending operation. The confirmation message is removed
// from the transcript optimistically; if the backend delete fails, the
// message is restored at its original position and an inline notice is
// appended. Either way the pending context ends.
func (e *Engine) Cancel(ctx context.Context) error {
	if e.resolving {
		return ErrResolveInFlight
	}
	if e.pending == nil {
		return ErrNoPending
	}
	e.resolving = true
	defer func() { e.resolving = false }()

	epoch := e.epoch
	msgID := e.pending.MessageID
	removed, index, ok := e.store.RemoveByID(msgID)
	e.pending = nil

	if err := e.api.DeleteMessage(ctx, msgID); err != nil {
		if e.epoch == epoch && ok {
			e.store.Insert(index, removed)
			e.store.Append(models.Message{
				ID:        uuid.NewString(),
				Sender:    models.SenderBot,
				Timestamp: time.Now().UTC().Format(time.RFC3339),
				Body:      models.TextBody{Text: "Could not cancel the request. Please try again."},
			})
		}
		return fmt.Errorf("cancelling operation: %w", err)
	}
	return nil
}

// FetchResultPage replaces the payload of the query-result message msgID with
// the requested page of the same search. The page must exist; the request is
// rejected locally before anything is sent.
func (e *Engine) FetchResultPage(ctx context.Context, msgID string, pageNum int) error {
	m, ok := e.store.Get(msgID)
	if !ok {
		return fmt.Errorf("message %s: %w", msgID, common.ErrorNotFound)
	}
	body, ok := m.Body.(models.QueryResultBody)
	if !ok {
		return fmt.Errorf("message %s is not a search result: %w", msgID, common.ErrorValidation)
	}
	if pageNum < 1 || pageNum > body.TotalPages {
		return fmt.Errorf("page %d out of range 1..%d: %w", pageNum, body.TotalPages, common.ErrorValidation)
	}

	epoch := e.epoch
	page, err := e.api.Expenses(ctx, body.Filter, pageNum, e.resultPageSize)
	if err != nil {
		return fmt.Errorf("fetching result page: %w", err)
	}
	if e.epoch != epoch {
		return nil
	}

	body.Items = page.Expenses
	body.Page = page.Page
	body.TotalPages = page.TotalPages
	body.TotalRecords = page.TotalRecords
	m.Body = body
	e.store.ReplaceByID(msgID, m)
	return nil
}

// Editing the pending draft. Each method replaces the working copy with an
// edited value; the confirmation message in the transcript is untouched.

func (e *Engine) editInsert(f func(models.InsertDraft) models.InsertDraft) error {
	if e.pending == nil {
		return ErrNoPending
	}
	d, ok := e.pending.Draft.(models.InsertDraft)
	if !ok {
		return ErrWrongDraftKind
	}
	e.pending.Draft = f(d)
	return nil
}

func (e *Engine) EditInsertDescription(i int, v string) error {
	return e.editInsert(func(d models.InsertDraft) models.InsertDraft { return SetInsertDescription(d, i, v) })
}

func (e *Engine) EditInsertAmount(i int, v string) error {
	return e.editInsert(func(d models.InsertDraft) models.InsertDraft { return SetInsertAmount(d, i, v) })
}

func (e *Engine) EditInsertDate(i int, v string) error {
	return e.editInsert(func(d models.InsertDraft) models.InsertDraft { return SetInsertDate(d, i, v) })
}

func (e *Engine) EditInsertIncluded(i int, included bool) error {
	return e.editInsert(func(d models.InsertDraft) models.InsertDraft { return SetInsertIncluded(d, i, included) })
}

func (e *Engine) editUpdate(f func(models.UpdateDraft) models.UpdateDraft) error {
	if e.pending == nil {
		return ErrNoPending
	}
	d, ok := e.pending.Draft.(models.UpdateDraft)
	if !ok {
		return ErrWrongDraftKind
	}
	e.pending.Draft = f(d)
	return nil
}

func (e *Engine) EditUpdateDescription(v string) error {
	return e.editUpdate(func(d models.UpdateDraft) models.UpdateDraft { return SetUpdateDescription(d, v) })
}

func (e *Engine) EditUpdateAmount(v string) error {
	return e.editUpdate(func(d models.UpdateDraft) models.UpdateDraft { return SetUpdateAmount(d, v) })
}

func (e *Engine) EditUpdateDate(v string) error {
	return e.editUpdate(func(d models.UpdateDraft) models.UpdateDraft { return SetUpdateDate(d, v) })
}

func (e *Engine) EditDeleteIncluded(i int, included bool) error {
	if e.pending == nil {
		return ErrNoPending
	}
	d, ok := e.pending.Draft.(models.DeleteDraft)
	if !ok {
		return ErrWrongDraftKind
	}
	e.pending.Draft = SetDeleteIncluded(d, i, included)
	return nil
}

func (e *Engine) editQuery(f func(models.QueryDraft) models.QueryDraft) error {
	if e.pending == nil {
		return ErrNoPending
	}
	d, ok := e.pending.Draft.(models.QueryDraft)
	if !ok {
		return ErrWrongDraftKind
	}
	e.pending.Draft = f(d)
	return nil
}

func (e *Engine) EditQueryStartDate(v string) error {
	return e.editQuery(func(d models.QueryDraft) models.QueryDraft { return SetQueryStartDate(d, v) })
}

func (e *Engine) EditQueryEndDate(v string) error {
	return e.editQuery(func(d models.QueryDraft) models.QueryDraft { return SetQueryEndDate(d, v) })
}

func (e *Engine) EditQueryMinAmount(v string) error {
	return e.editQuery(func(d models.QueryDraft) models.QueryDraft { return SetQueryMinAmount(d, v) })
}

func (e *Engine) EditQueryMaxAmount(v string) error {
	return e.editQuery(func(d models.QueryDraft) models.QueryDraft { return SetQueryMaxAmount(d, v) })
}

func (e *Engine) EditQueryKeywords(raw string) error {
	return e.editQuery(func(d models.QueryDraft) models.QueryDraft { return SetQueryKeywords(d, raw) })
}

// queryFilter translates a query draft to listing parameters. The listing
// endpoint matches a single keyword, so only the first one is used.
func queryFilter(d models.QueryDraft) models.ExpenseFilter {
	f := models.DefaultFilter()
	f.StartDate = d.StartDate
	f.EndDate = d.EndDate
	f.MinAmount = d.MinAmount
	f.MaxAmount = d.MaxAmount
	if len(d.Keywords) > 0 {
		f.Keyword = d.Keywords[0]
	}
	return f
}
