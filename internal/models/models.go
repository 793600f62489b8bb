// Package models defines the data structures exchanged between the
// extraction boundary, the analysis engines and the report layer.
//
// Everything arriving from the perception service is decoded into an
// explicit record here. Optional or loosely typed fields in the service
// responses (amounts that may be strings or numbers, evidence that may be
// a string or a list) get dedicated types with custom JSON decoding so
// the rest of the code never touches raw maps.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FlexAmount holds a monetary value exactly as it arrived from the
// extraction boundary. The service returns amounts inconsistently as JSON
// strings ("£1,234.56") or bare numbers (-987.5); we keep the raw token
// and leave normalization to the amount parser.
type FlexAmount struct {
	Raw string
}

// UnmarshalJSON accepts a JSON string, number, or null.
func (a *FlexAmount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Raw = s
		return nil
	}
	token := strings.TrimSpace(string(data))
	if token == "null" {
		a.Raw = ""
		return nil
	}
	a.Raw = token
	return nil
}

// MarshalJSON serializes the raw token as a string.
func (a FlexAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Raw)
}

// IsEmpty reports whether no value was supplied at all.
func (a FlexAmount) IsEmpty() bool {
	return strings.TrimSpace(a.Raw) == ""
}

func (a FlexAmount) String() string {
	return a.Raw
}

// StringList tolerates service responses that return a single string, a
// list of strings, or a list of arbitrary values where a string list was
// asked for.
type StringList []string

// UnmarshalJSON accepts a string, a list, or null.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*l = nil
		} else {
			*l = StringList{s}
		}
		return nil
	}
	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	out := make(StringList, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	*l = out
	return nil
}

// Transaction is a single statement line as reported by the extraction
// boundary. Dates and descriptions are opaque; the amount is negative for
// debits and positive for credits. Transactions are immutable once
// extracted and kept in statement order.
type Transaction struct {
	Date           string     `json:"date"`
	Description    string     `json:"description"`
	Amount         FlexAmount `json:"amount"`
	RunningBalance FlexAmount `json:"running_balance,omitempty"`
}

// BalanceMarker is an opening or closing balance with its statement date.
type BalanceMarker struct {
	Amount FlexAmount `json:"amount"`
	Date   string     `json:"date"`
}

// FinancialData is the raw financial extraction payload: balances, the
// ordered transaction list and the service's self-reported confidence for
// the whole extraction.
type FinancialData struct {
	OpeningBalance BalanceMarker `json:"opening_balance"`
	ClosingBalance BalanceMarker `json:"closing_balance"`
	Transactions   []Transaction `json:"transactions"`
	Confidence     float64       `json:"confidence"`
}

// DocumentClassification is the perception service's answer to "is this a
// business bank statement".
type DocumentClassification struct {
	IsBankStatement bool       `json:"is_bank_statement"`
	Confidence      float64    `json:"confidence"`
	DocumentType    string     `json:"document_type"`
	Evidence        StringList `json:"evidence"`
	BankName        string     `json:"bank_name"`
}

// BusinessDetails carries the business metadata extracted from the
// statement header. Fields the service could not find hold its literal
// "not found" marker.
type BusinessDetails struct {
	BusinessName        string     `json:"business_name"`
	BusinessAddress     string     `json:"business_address"`
	BankName            string     `json:"bank_name"`
	AccountNumber       string     `json:"account_number"`
	StatementPeriod     string     `json:"statement_period"`
	BusinessIdentifiers StringList `json:"business_identifiers,omitempty"`
}

// VisualTamperingResult is the perceptual tampering signal.
type VisualTamperingResult struct {
	TamperingDetected bool       `json:"tampering_detected"`
	Confidence        float64    `json:"confidence"`
	Evidence          StringList `json:"evidence"`
	SuspiciousAreas   StringList `json:"suspicious_areas,omitempty"`
}

// StructureFacts are the container-level facts the structural
// introspector gathers from the PDF before asking for a forensic read.
type StructureFacts struct {
	PageCount             int               `json:"page_count"`
	Version               string            `json:"version,omitempty"`
	Encrypted             bool              `json:"is_encrypted"`
	HasJavaScript         bool              `json:"has_javascript"`
	HasEmbeddedFiles      bool              `json:"has_embedded_files"`
	AcroFormPresent       bool              `json:"acroform_present"`
	ObjectCount           int               `json:"object_count"`
	FontCount             int               `json:"total_fonts"`
	XObjectCount          int               `json:"total_xobjects"`
	AnnotationCount       int               `json:"total_annotations"`
	CreationDate          string            `json:"creation_date,omitempty"`
	ModDate               string            `json:"mod_date,omitempty"`
	ModifiedAfterCreation bool              `json:"modified_after_creation"`
	Info                  map[string]string `json:"info,omitempty"`
}

// StructureAnalysis is the structural-anomaly signal. A failed
// introspection is downgraded to a single synthetic finding with
// confidence 0.3 rather than failing the document analysis.
type StructureAnalysis struct {
	IssuesDetected bool       `json:"issues_detected"`
	Confidence     float64    `json:"confidence"`
	Findings       StringList `json:"findings"`
	Reasoning      string     `json:"reasoning,omitempty"`
	LLMAnalysis    bool       `json:"llm_analysis,omitempty"`
}

// DocumentMetadata is the PDF info dictionary as rendered for the report.
type DocumentMetadata struct {
	Pages        int    `json:"pages"`
	Title        string `json:"title,omitempty"`
	Author       string `json:"author,omitempty"`
	Creator      string `json:"creator,omitempty"`
	Producer     string `json:"producer,omitempty"`
	CreationDate string `json:"creation_date,omitempty"`
	ModDate      string `json:"mod_date,omitempty"`
	Found        bool   `json:"metadata_found"`
}

// PageImage is one rendered statement page, PNG-encoded, in page order.
type PageImage struct {
	Index int
	PNG   []byte
}

// DocumentAnalysis summarizes the classification step plus container
// metadata for the report.
type DocumentAnalysis struct {
	IsBankStatement bool             `json:"is_bank_statement"`
	DocumentType    string           `json:"document_type"`
	Confidence      float64          `json:"confidence"`
	Evidence        StringList       `json:"evidence,omitempty"`
	Metadata        DocumentMetadata `json:"metadata"`
}

// FraudDetection groups the perceptual signals with the fused verdict.
type FraudDetection struct {
	VisualTampering   VisualTamperingResult `json:"visual_tampering"`
	StructureAnalysis StructureAnalysis     `json:"structure_analysis"`
	OverallRisk       RiskVerdict           `json:"overall_risk"`
}

// StatementAnalysis is the terminal output for one document. FraudDetection
// and FinancialAnalysis are nil when the document was classified as
// something other than a bank statement.
type StatementAnalysis struct {
	DocumentAnalysis  DocumentAnalysis   `json:"document_analysis"`
	BusinessDetails   BusinessDetails    `json:"business_details"`
	FinancialAnalysis *FinancialAnalysis `json:"financial_analysis,omitempty"`
	FraudDetection    *FraudDetection    `json:"fraud_detection,omitempty"`
}
