package grpc

import (
	"strconv"

	"github.com/ranjan-27/SmartLog/internal/adapter/notify"
	"github.com/ranjan-27/SmartLog/internal/domain"
	"github.com/ranjan-27/SmartLog/internal/usecase/entry"
)

func stateToMap(st entry.State) map[string]interface{} {
	errs := make(map[string]interface{}, len(st.Errors))
	for field, msg := range st.Errors {
		errs[string(field)] = msg
	}

	suggestions := make([]interface{}, 0, len(st.Suggestions))
	for _, s := range st.Suggestions {
		suggestions = append(suggestions, s)
	}

	m := map[string]interface{}{
		"visible":          st.Visible,
		"mode":             string(st.Mode),
		"edit_mode":        st.EditMode,
		"draft":            draftToMap(st.Draft),
		"errors":           errs,
		"submitting":       st.Submitting,
		"suggestions":      suggestions,
		"show_suggestions": st.ShowSuggestions,
		"currency_symbol":  st.CurrencySymbol,
		"title":            st.Title,
		"submit_label":     st.SubmitLabel,
	}
	if st.EditingID != 0 {
		m["editing_id"] = strconv.FormatInt(int64(st.EditingID), 10)
	}
	return m
}

func draftToMap(d domain.Draft) map[string]interface{} {
	return map[string]interface{}{
		"amount":   d.Amount,
		"category": d.Category,
		"type":     string(d.Type),
		"date":     d.Date,
		"note":     d.Note,
	}
}

func transactionToMap(tx *domain.Transaction) map[string]interface{} {
	// Struct numbers are float64 and cannot hold every int64 ID
	return map[string]interface{}{
		"id":       strconv.FormatInt(int64(tx.ID), 10),
		"amount":   tx.Amount.String(),
		"category": tx.Category,
		"type":     string(tx.Type),
		"date":     domain.FormatDisplayDate(tx.Date),
		"note":     tx.Note,
	}
}

func notificationsToList(ns []notify.Notification) []interface{} {
	out := make([]interface{}, 0, len(ns))
	for _, n := range ns {
		out = append(out, map[string]interface{}{
			"level":   string(n.Level),
			"message": n.Message,
		})
	}
	return out
}
