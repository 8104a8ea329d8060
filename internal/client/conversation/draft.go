package conversation

import (
	"regexp"
	"strings"

	"github.com/dmitrijs2005/moneytalk/internal/client/models"
)

// Draft editors. All functions are pure: they return a new draft value that
// differs only in the edited field, so consumers relying on value identity
// for change detection stay correct. None of them call the backend or apply
// semantic validation; that happens at confirm time.

var integerAmount = regexp.MustCompile(`^-?\d+$`)

// acceptableAmountInput reports whether s may sit in an amount field while
// the user is still typing. Empty and a bare minus are valid intermediate
// states; anything else must be a signed integer.
func acceptableAmountInput(s string) bool {
	return s == "" || s == "-" || integerAmount.MatchString(s)
}

func cloneInsertItems(items []models.InsertItem) []models.InsertItem {
	return append([]models.InsertItem(nil), items...)
}

// SetInsertDescription replaces the description of item i.
func SetInsertDescription(d models.InsertDraft, i int, v string) models.InsertDraft {
	if i < 0 || i >= len(d.Items) {
		return d
	}
	items := cloneInsertItems(d.Items)
	items[i].Description = v
	return models.InsertDraft{Items: items}
}

// SetInsertAmount replaces the amount text of item i. Input that is not an
// acceptable intermediate value is dropped and the previous value retained.
func SetInsertAmount(d models.InsertDraft, i int, v string) models.InsertDraft {
	if i < 0 || i >= len(d.Items) || !acceptableAmountInput(v) {
		return d
	}
	items := cloneInsertItems(d.Items)
	items[i].Amount = v
	return models.InsertDraft{Items: items}
}

// SetInsertDate replaces the expense date of item i.
func SetInsertDate(d models.InsertDraft, i int, v string) models.InsertDraft {
	if i < 0 || i >= len(d.Items) {
		return d
	}
	items := cloneInsertItems(d.Items)
	items[i].ExpenseDate = v
	return models.InsertDraft{Items: items}
}

// SetInsertIncluded toggles whether item i is part of the submission.
func SetInsertIncluded(d models.InsertDraft, i int, included bool) models.InsertDraft {
	if i < 0 || i >= len(d.Items) {
		return d
	}
	items := cloneInsertItems(d.Items)
	items[i].Included = included
	return models.InsertDraft{Items: items}
}

// SetUpdateDescription marks the description as edited.
func SetUpdateDescription(d models.UpdateDraft, v string) models.UpdateDraft {
	d.UpdatedDescription = &v
	return d
}

// SetUpdateAmount marks the amount as edited, subject to the tolerant
// numeric rule.
func SetUpdateAmount(d models.UpdateDraft, v string) models.UpdateDraft {
	if !acceptableAmountInput(v) {
		return d
	}
	d.UpdatedAmount = &v
	return d
}

// SetUpdateDate marks the date as edited.
func SetUpdateDate(d models.UpdateDraft, v string) models.UpdateDraft {
	d.UpdatedDate = &v
	return d
}

// SetDeleteIncluded toggles whether item i is part of the deletion.
func SetDeleteIncluded(d models.DeleteDraft, i int, included bool) models.DeleteDraft {
	if i < 0 || i >= len(d.Items) {
		return d
	}
	items := append([]models.DeleteItem(nil), d.Items...)
	items[i].Included = included
	return models.DeleteDraft{Items: items}
}

func SetQueryStartDate(d models.QueryDraft, v string) models.QueryDraft {
	d.StartDate = v
	return d
}

func SetQueryEndDate(d models.QueryDraft, v string) models.QueryDraft {
	d.EndDate = v
	return d
}

func SetQueryMinAmount(d models.QueryDraft, v string) models.QueryDraft {
	d.MinAmount = v
	return d
}

func SetQueryMaxAmount(d models.QueryDraft, v string) models.QueryDraft {
	d.MaxAmount = v
	return d
}

// SetQueryKeywords parses a comma-separated keyword list, trimming
// whitespace and dropping empty tokens.
func SetQueryKeywords(d models.QueryDraft, raw string) models.QueryDraft {
	d.Keywords = ParseKeywords(raw)
	return d
}

// ParseKeywords splits raw on commas, trims each token and discards empties.
func ParseKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
