package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSummary_Counts(t *testing.T) {
	summary := RunSummary{
		Outcomes: []PointOutcome{
			{PointNumber: "1", Success: true},
			{PointNumber: "2", Success: false, Error: "no text file in point folder"},
			{PointNumber: "3", Success: true},
		},
	}

	assert.Equal(t, 2, summary.Succeeded())
	assert.Equal(t, 1, summary.Failed())
}

func TestResultsReport_Record(t *testing.T) {
	report := NewResultsReport()

	report.Record(PointOutcome{PointNumber: "1001", ItemID: 7, Success: true})
	report.Record(PointOutcome{PointNumber: "1002", ItemID: 8, Success: false, Error: "backup failed"})

	require.Len(t, report.Successful, 1)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, ResultEntry{ID: 7, Number: "1001"}, report.Successful[0])
	assert.Equal(t, ResultEntry{ID: 8, Number: "1002"}, report.Failed[0])
}

func TestResultsReport_EmptyMarshalsAsArrays(t *testing.T) {
	data, err := json.Marshal(NewResultsReport())

	require.NoError(t, err)
	assert.JSONEq(t, `{"successful":[],"failed":[]}`, string(data))
}

func TestProfile_Normalize(t *testing.T) {
	p := Profile{BaseURL: "https://sp.example.gov/"}
	p.Normalize()
	assert.Equal(t, "https://sp.example.gov", p.BaseURL)
}

func TestProfile_Validate(t *testing.T) {
	valid := Profile{
		BaseURL:  "https://sp.example.gov",
		SiteName: "surveys",
		Library:  "Point History",
		Username: "jdoe",
	}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.Library = ""
	assert.ErrorIs(t, missing.Validate(), ErrInvalidInput)
}

func TestCredentials_Account(t *testing.T) {
	withDomain := Credentials{Username: "jdoe", Domain: "COUNTY"}
	assert.Equal(t, `COUNTY\jdoe`, withDomain.Account())

	noDomain := Credentials{Username: "jdoe"}
	assert.Equal(t, "jdoe", noDomain.Account())
}
