package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vendorYAML = `entityType: vendor
companyName: Northwind Systems
contactName: Dana Reyes
email: dana@northwind.example
phone: "+1 555 0100"
taxId: 12-3456789
address: 1 Harbor Way
city: Portland
country: USA
industry: Technology
website: https://northwind.example
annualRevenue: "5000000"
employeeCount: "120"
businessType: Corporation
serviceType: Cloud Services
complianceCertifications: [SOC 2, ISO 27001]
hasEncryption: "Yes"
hasAccessControl: "Yes"
hasLogging: "Yes"
hasNetworkSecurity: "Yes"
`

const existingYAML = `- id: sub-17
  application:
    entityType: client
    companyName: Other Co
    email: DANA@northwind.example
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestAssessApplicationFile(t *testing.T) {
	t.Run("clean vendor from YAML", func(t *testing.T) {
		resp, err := assessApplicationFile(writeFile(t, "vendor.yaml", vendorYAML), "")
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Assessment.Score)
		assert.Equal(t, "low", resp.Assessment.Level)
		assert.Equal(t, "approved", resp.Assessment.Status)
		assert.Empty(t, resp.Assessment.Factors)
		assert.Empty(t, resp.Duplicates)
	})

	t.Run("JSON input", func(t *testing.T) {
		resp, err := assessApplicationFile(writeFile(t, "client.json", `{"entityType":"client","companyName":"Globex"}`), "")
		require.NoError(t, err)
		assert.Positive(t, resp.Assessment.Score)
		assert.NotEmpty(t, resp.Assessment.Factors)
	})

	t.Run("duplicates against existing file", func(t *testing.T) {
		resp, err := assessApplicationFile(
			writeFile(t, "vendor.yml", vendorYAML),
			writeFile(t, "existing.yaml", existingYAML),
		)
		require.NoError(t, err)
		require.Len(t, resp.Duplicates, 1)
		assert.Equal(t, "email", resp.Duplicates[0].Type)
		assert.Equal(t, "sub-17", resp.Duplicates[0].ExistingID)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := assessApplicationFile(writeFile(t, "vendor.toml", "x = 1"), "")
		assert.ErrorContains(t, err, "unsupported file type")
	})

	t.Run("unknown control answer", func(t *testing.T) {
		_, err := assessApplicationFile(writeFile(t, "bad.yaml", "hasLogging: Maybe\n"), "")
		assert.ErrorContains(t, err, "invalid argument")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := assessApplicationFile(filepath.Join(t.TempDir(), "absent.yaml"), "")
		assert.ErrorContains(t, err, "failed to read")
	})
}

func TestWriteAssessment(t *testing.T) {
	resp, err := assessApplicationFile(
		writeFile(t, "client.json", `{"entityType":"client","companyName":"Globex","email":"ap@globex.example"}`),
		writeFile(t, "existing.json", `[{"id":"sub-1","application":{"entityType":"vendor","email":"ap@globex.example"}}]`),
	)
	require.NoError(t, err)

	var human bytes.Buffer
	require.NoError(t, writeAssessment(&human, resp, "human"))
	assert.Contains(t, human.String(), "Risk score:")
	assert.Contains(t, human.String(), "Risk factors (")
	assert.Contains(t, human.String(), "Possible duplicates (1):")
	assert.Contains(t, human.String(), "sub-1")

	var js bytes.Buffer
	require.NoError(t, writeAssessment(&js, resp, "json"))
	assert.Contains(t, js.String(), `"riskAssessment"`)

	assert.Error(t, writeAssessment(&bytes.Buffer{}, resp, "xml"))
}
