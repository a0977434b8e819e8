package domain

import "time"

// SourceFile records which workbook fed an extraction.
type SourceFile struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// SourceData is everything extracted for one period before derivation.
type SourceData struct {
	Period       Period
	SnapshotDate time.Time
	Statements   FinancialStatements
	Products     ProductStatements
	Sales        []SalesLine
	Backlog      []BacklogLine
	Notes        []byte
	Files        []SourceFile
	// SkippedRecords counts line items dropped under the skip policy.
	SkippedRecords int
}

func (s *SourceData) FileNames() []string {
	names := make([]string, 0, len(s.Files))
	for _, f := range s.Files {
		names = append(names, f.Name)
	}
	return names
}
