package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/moneytalk/internal/client/api"
	"github.com/dmitrijs2005/moneytalk/internal/client/models"
)

// Wire content-type tags. The confirmation tag keeps the backend's spelling.
const (
	contentTypeMessage      = "message"
	contentTypeImageURL     = "image_url"
	contentTypeConfirmation = "comfirmation_request"
)

// rawContent is the message content envelope. User messages carry the text
// at Message (or an image URL at Data); assistant messages nest a display
// text and an operation payload under Data.
type rawContent struct {
	Type        string             `json:"type"`
	RequestType models.RequestType `json:"request_type"`
	Message     string             `json:"message"`
	Data        json.RawMessage    `json:"data"`
}

type rawAssistantData struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// OriginalFetcher retrieves the pre-edit snapshot of the expense an update
// confirmation targets. The snapshot is not embedded in the stored message,
// so decoding an update confirmation requires this extra backend call.
type OriginalFetcher func(ctx context.Context, id int64) (*models.Expense, error)

// Decoder turns raw backend message envelopes into Messages.
type Decoder struct {
	fetchOriginal OriginalFetcher
}

func NewDecoder(fetchOriginal OriginalFetcher) *Decoder {
	return &Decoder{fetchOriginal: fetchOriginal}
}

// Decode converts one raw envelope into a Message. For update confirmations
// it synchronously fetches the original expense; if that fetch fails, the
// whole decode fails, because the confirmation cannot be shown without a
// baseline to diff against.
func (d *Decoder) Decode(ctx context.Context, raw api.RawMessage) (models.Message, error) {
	var content rawContent
	if err := json.Unmarshal(raw.Content, &content); err != nil {
		return models.Message{}, fmt.Errorf("decoding message %s content: %w", raw.ID, err)
	}

	m := models.Message{
		ID:        raw.ID.String(),
		Timestamp: orNow(raw.Timestamp),
	}

	if raw.Role != "assistant" {
		m.Sender = models.SenderUser
		if content.Type == contentTypeImageURL {
			var url string
			_ = json.Unmarshal(content.Data, &url)
			m.Body = models.ImageBody{URL: url}
		} else {
			m.Body = models.TextBody{Text: content.Message}
		}
		return m, nil
	}

	m.Sender = models.SenderBot
	switch content.Type {
	case contentTypeMessage:
		var data rawAssistantData
		if err := json.Unmarshal(content.Data, &data); err != nil {
			return models.Message{}, fmt.Errorf("decoding message %s text: %w", raw.ID, err)
		}
		m.Body = models.TextBody{Text: data.Message}
		return m, nil

	case contentTypeConfirmation:
		var data rawAssistantData
		if err := json.Unmarshal(content.Data, &data); err != nil {
			return models.Message{}, fmt.Errorf("decoding message %s confirmation: %w", raw.ID, err)
		}
		draft, err := d.decodeDraft(ctx, content.RequestType, data.Data)
		if err != nil {
			return models.Message{}, fmt.Errorf("decoding message %s draft: %w", raw.ID, err)
		}
		m.Body = models.ConfirmationBody{
			Text:        data.Message,
			RequestType: content.RequestType,
			Draft:       draft,
		}
		return m, nil

	default:
		m.Body = models.TextBody{Text: fmt.Sprintf("[unsupported message type: %s]", content.Type)}
		return m, nil
	}
}

// DecodePlain converts an envelope without resolving confirmations; used for
// older-history pages, where unresolved confirmations are no longer
// actionable. Returns false for envelopes that have no plain rendering.
func (d *Decoder) DecodePlain(raw api.RawMessage) (models.Message, bool) {
	var content rawContent
	if err := json.Unmarshal(raw.Content, &content); err != nil {
		return models.Message{}, false
	}

	m := models.Message{
		ID:        raw.ID.String(),
		Timestamp: orNow(raw.Timestamp),
	}

	if raw.Role != "assistant" {
		m.Sender = models.SenderUser
		if content.Type == contentTypeImageURL {
			var url string
			_ = json.Unmarshal(content.Data, &url)
			m.Body = models.ImageBody{URL: url}
		} else {
			m.Body = models.TextBody{Text: content.Message}
		}
		return m, true
	}

	if content.Type != contentTypeMessage {
		return models.Message{}, false
	}
	var data rawAssistantData
	if err := json.Unmarshal(content.Data, &data); err != nil {
		return models.Message{}, false
	}
	m.Sender = models.SenderBot
	m.Body = models.TextBody{Text: data.Message}
	return m, true
}

func (d *Decoder) decodeDraft(ctx context.Context, rt models.RequestType, payload json.RawMessage) (models.Draft, error) {
	switch rt {
	case models.RequestInsertExpenses:
		return decodeInsertDraft(payload), nil
	case models.RequestUpdateExpenses:
		return d.decodeUpdateDraft(ctx, payload)
	case models.RequestDeleteExpenses:
		return decodeDeleteDraft(payload), nil
	case models.RequestQueryExpenses:
		return decodeQueryDraft(payload), nil
	default:
		return nil, fmt.Errorf("unknown request type %q", rt)
	}
}

// decodeInsertDraft normalizes a missing item list to empty and marks every
// candidate included by default.
func decodeInsertDraft(payload json.RawMessage) models.InsertDraft {
	var wire struct {
		Expenses []struct {
			Description string      `json:"description"`
			Amount      json.Number `json:"amount"`
			ExpenseDate string      `json:"expense_date"`
		} `json:"expenses"`
	}
	_ = json.Unmarshal(payload, &wire)

	items := make([]models.InsertItem, 0, len(wire.Expenses))
	for _, e := range wire.Expenses {
		items = append(items, models.InsertItem{
			Description: e.Description,
			Amount:      e.Amount.String(),
			ExpenseDate: dateOnly(e.ExpenseDate),
			Included:    true,
		})
	}
	return models.InsertDraft{Items: items}
}

func (d *Decoder) decodeUpdateDraft(ctx context.Context, payload json.RawMessage) (models.UpdateDraft, error) {
	var wire struct {
		ID                 int64        `json:"id"`
		UpdatedDescription *string      `json:"updated_description"`
		UpdatedAmount      *json.Number `json:"updated_amount"`
		UpdatedDate        *string      `json:"updated_date"`
	}
	if err := json.Unmarshal(payload, &wire); err != nil {
		return models.UpdateDraft{}, err
	}

	original, err := d.fetchOriginal(ctx, wire.ID)
	if err != nil {
		return models.UpdateDraft{}, fmt.Errorf("fetching original expense %d: %w", wire.ID, err)
	}

	draft := models.UpdateDraft{
		TargetID:           wire.ID,
		UpdatedDescription: wire.UpdatedDescription,
		UpdatedDate:        wire.UpdatedDate,
		Original: models.ExpenseSnapshot{
			Description: original.Description,
			Amount:      original.Amount,
			ExpenseDate: dateOnly(original.ExpenseDate),
		},
	}
	if wire.UpdatedAmount != nil {
		s := wire.UpdatedAmount.String()
		draft.UpdatedAmount = &s
	}
	return draft, nil
}

// decodeDeleteDraft normalizes a missing or malformed list to empty and
// marks every candidate included by default.
func decodeDeleteDraft(payload json.RawMessage) models.DeleteDraft {
	var wire []struct {
		ID          int64       `json:"id"`
		Description string      `json:"description"`
		Amount      json.Number `json:"amount"`
		ExpenseDate string      `json:"expense_date"`
	}
	_ = json.Unmarshal(payload, &wire)

	items := make([]models.DeleteItem, 0, len(wire))
	for _, e := range wire {
		amount, _ := e.Amount.Int64()
		items = append(items, models.DeleteItem{
			ID:          e.ID,
			Description: e.Description,
			Amount:      amount,
			ExpenseDate: dateOnly(e.ExpenseDate),
			Included:    true,
		})
	}
	return models.DeleteDraft{Items: items}
}

func decodeQueryDraft(payload json.RawMessage) models.QueryDraft {
	var wire struct {
		StartDate *string      `json:"start_date"`
		EndDate   *string      `json:"end_date"`
		MinAmount *json.Number `json:"min_amount"`
		MaxAmount *json.Number `json:"max_amount"`
		KeyWords  []string     `json:"key_words"`
	}
	_ = json.Unmarshal(payload, &wire)

	draft := models.QueryDraft{Keywords: wire.KeyWords}
	if draft.Keywords == nil {
		draft.Keywords = []string{}
	}
	if wire.StartDate != nil {
		draft.StartDate = *wire.StartDate
	}
	if wire.EndDate != nil {
		draft.EndDate = *wire.EndDate
	}
	if wire.MinAmount != nil {
		draft.MinAmount = wire.MinAmount.String()
	}
	if wire.MaxAmount != nil {
		draft.MaxAmount = wire.MaxAmount.String()
	}
	return draft
}

// dateOnly strips the time part of an ISO timestamp, keeping "YYYY-MM-DD".
func dateOnly(s string) string {
	if i := strings.IndexByte(s, 'T'); i > 0 {
		return s[:i]
	}
	return s
}

func orNow(ts string) string {
	if ts != "" {
		return ts
	}
	return time.Now().UTC().Format(time.RFC3339)
}
