// SPDX-License-Identifier: MPL-2.0

package processor

import (
	"maps"
	"slices"
	"strings"
)

// SummarySuffix ends every environment key that holds a SummaryResult.
const SummarySuffix = "_summary_result"

type (
	// SummaryResult is a human-readable report a processor leaves in the environment.
	SummaryResult struct {
		SummaryText  string            `json:"summary_text"`
		ReportFields []string          `json:"report_fields"`
		Data         map[string]string `json:"data"`
	}

	// SummaryRow is a single report field and its value.
	SummaryRow struct {
		Field string
		Value string
	}
)

// Rows returns the report fields in declared order paired with their values.
func (s SummaryResult) Rows() []SummaryRow {
	rows := make([]SummaryRow, 0, len(s.ReportFields))
	for _, f := range s.ReportFields {
		rows = append(rows, SummaryRow{Field: f, Value: s.Data[f]})
	}
	return rows
}

// SetSummary stores s under key, replacing any previous summary.
func (e Env) SetSummary(key string, s SummaryResult) {
	e.Delete(key)
	e.Set(key, s)
}

// Summaries returns every SummaryResult in the environment keyed by its
// environment key, plus the keys in sorted order.
func (e Env) Summaries() (map[string]SummaryResult, []string) {
	out := make(map[string]SummaryResult)
	for k, v := range e {
		if !strings.HasSuffix(k, SummarySuffix) {
			continue
		}
		if s, ok := v.(SummaryResult); ok {
			out[k] = s
		}
	}
	return out, slices.Sorted(maps.Keys(out))
}
