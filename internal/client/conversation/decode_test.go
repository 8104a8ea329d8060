package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/moneytalk/internal/client/api"
	"github.com/dmitrijs2005/moneytalk/internal/client/models"
)

func raw(id, role, content string) api.RawMessage {
	return api.RawMessage{
		ID:        json.Number(id),
		Role:      role,
		Content:   json.RawMessage(content),
		Timestamp: "2025-03-01T10:00:00",
	}
}

func noFetch(ctx context.Context, id int64) (*models.Expense, error) {
	return nil, errors.New("unexpected fetch")
}

func TestDecode_UserText(t *testing.T) {
	d := NewDecoder(noFetch)

	m, err := d.Decode(context.Background(), raw("1", "user", `{"message":"hello"}`))
	require.NoError(t, err)
	require.Equal(t, models.SenderUser, m.Sender)
	require.Equal(t, models.TextBody{Text: "hello"}, m.Body)
}

func TestDecode_UserImage(t *testing.T) {
	d := NewDecoder(noFetch)

	m, err := d.Decode(context.Background(), raw("1", "user", `{"type":"image_url","data":"https://x/y.jpg"}`))
	require.NoError(t, err)
	require.Equal(t, models.ImageBody{URL: "https://x/y.jpg"}, m.Body)
}

func TestDecode_AssistantText(t *testing.T) {
	d := NewDecoder(noFetch)

	m, err := d.Decode(context.Background(), raw("2", "assistant", `{"type":"message","data":{"message":"hi there"}}`))
	require.NoError(t, err)
	require.Equal(t, models.SenderBot, m.Sender)
	require.Equal(t, models.TextBody{Text: "hi there"}, m.Body)
}

func TestDecode_InsertConfirmation(t *testing.T) {
	d := NewDecoder(noFetch)

	content := `{
		"type": "comfirmation_request",
		"request_type": "insert_expenses",
		"data": {
			"message": "Add these?",
			"data": {"expenses": [
				{"description": "coffee", "amount": -60000, "expense_date": "2025-03-01T00:00:00"},
				{"description": "salary", "amount": 1000000, "expense_date": "2025-03-02"}
			]}
		}
	}`
	m, err := d.Decode(context.Background(), raw("3", "assistant", content))
	require.NoError(t, err)

	body, ok := m.Body.(models.ConfirmationBody)
	require.True(t, ok)
	require.Equal(t, "Add these?", body.Text)
	require.Equal(t, models.RequestInsertExpenses, body.RequestType)

	draft, ok := body.Draft.(models.InsertDraft)
	require.True(t, ok)
	require.Len(t, draft.Items, 2)
	require.Equal(t, models.InsertItem{Description: "coffee", Amount: "-60000", ExpenseDate: "2025-03-01", Included: true}, draft.Items[0])
	require.True(t, draft.Items[1].Included)
}

func TestDecode_InsertConfirmation_MissingListBecomesEmpty(t *testing.T) {
	d := NewDecoder(noFetch)

	content := `{"type":"comfirmation_request","request_type":"insert_expenses","data":{"message":"?","data":{}}}`
	m, err := d.Decode(context.Background(), raw("3", "assistant", content))
	require.NoError(t, err)

	draft := m.Body.(models.ConfirmationBody).Draft.(models.InsertDraft)
	require.Empty(t, draft.Items)
}

func TestDecode_DeleteConfirmation_MalformedListBecomesEmpty(t *testing.T) {
	d := NewDecoder(noFetch)

	content := `{"type":"comfirmation_request","request_type":"delete_expenses","data":{"message":"?","data":"oops"}}`
	m, err := d.Decode(context.Background(), raw("3", "assistant", content))
	require.NoError(t, err)

	draft := m.Body.(models.ConfirmationBody).Draft.(models.DeleteDraft)
	require.Empty(t, draft.Items)
}

func TestDecode_UpdateConfirmation_FetchesOriginal(t *testing.T) {
	fetched := int64(0)
	d := NewDecoder(func(ctx context.Context, id int64) (*models.Expense, error) {
		fetched = id
		return &models.Expense{ID: id, Description: "coffee", Amount: -50000, ExpenseDate: "2025-03-01T00:00:00"}, nil
	})

	content := `{
		"type": "comfirmation_request",
		"request_type": "update_expenses",
		"data": {
			"message": "Change it?",
			"data": {"id": 7, "updated_description": null, "updated_amount": -60000, "updated_date": null}
		}
	}`
	m, err := d.Decode(context.Background(), raw("4", "assistant", content))
	require.NoError(t, err)
	require.Equal(t, int64(7), fetched)

	draft := m.Body.(models.ConfirmationBody).Draft.(models.UpdateDraft)
	require.Equal(t, int64(7), draft.TargetID)
	require.Nil(t, draft.UpdatedDescription)
	require.Nil(t, draft.UpdatedDate)
	require.NotNil(t, draft.UpdatedAmount)
	require.Equal(t, "-60000", *draft.UpdatedAmount)
	require.Equal(t, models.ExpenseSnapshot{Description: "coffee", Amount: -50000, ExpenseDate: "2025-03-01"}, draft.Original)
}

func TestDecode_UpdateConfirmation_FetchFailureFailsDecode(t *testing.T) {
	d := NewDecoder(func(ctx context.Context, id int64) (*models.Expense, error) {
		return nil, errors.New("boom")
	})

	content := `{"type":"comfirmation_request","request_type":"update_expenses","data":{"message":"?","data":{"id":7}}}`
	_, err := d.Decode(context.Background(), raw("4", "assistant", content))
	require.Error(t, err)
}

func TestDecode_QueryConfirmation(t *testing.T) {
	d := NewDecoder(noFetch)

	content := `{
		"type": "comfirmation_request",
		"request_type": "query_expenses",
		"data": {
			"message": "Search?",
			"data": {"start_date": "2025-03-01", "end_date": null, "min_amount": 10000, "max_amount": null, "key_words": ["ăn", "uống"]}
		}
	}`
	m, err := d.Decode(context.Background(), raw("5", "assistant", content))
	require.NoError(t, err)

	draft := m.Body.(models.ConfirmationBody).Draft.(models.QueryDraft)
	require.Equal(t, "2025-03-01", draft.StartDate)
	require.Empty(t, draft.EndDate)
	require.Equal(t, "10000", draft.MinAmount)
	require.Empty(t, draft.MaxAmount)
	require.Equal(t, []string{"ăn", "uống"}, draft.Keywords)
}

func TestDecode_UnknownAssistantTypeBecomesPlaceholder(t *testing.T) {
	d := NewDecoder(noFetch)

	m, err := d.Decode(context.Background(), raw("6", "assistant", `{"type":"video","data":{"message":"x"}}`))
	require.NoError(t, err)
	body, ok := m.Body.(models.TextBody)
	require.True(t, ok)
	require.Contains(t, body.Text, "video")
}

func TestDecodePlain_SkipsConfirmations(t *testing.T) {
	d := NewDecoder(noFetch)

	_, ok := d.DecodePlain(raw("7", "assistant", `{"type":"comfirmation_request","request_type":"insert_expenses","data":{"message":"?","data":{}}}`))
	require.False(t, ok)

	m, ok := d.DecodePlain(raw("8", "assistant", `{"type":"message","data":{"message":"old reply"}}`))
	require.True(t, ok)
	require.Equal(t, models.TextBody{Text: "old reply"}, m.Body)

	m, ok = d.DecodePlain(raw("9", "user", `{"message":"old question"}`))
	require.True(t, ok)
	require.Equal(t, models.TextBody{Text: "old question"}, m.Body)
}
