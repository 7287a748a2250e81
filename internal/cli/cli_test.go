package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Underwriter/internal/applicant"
	"github.com/MikeSquared-Agency/Underwriter/internal/orchestrator"
)

func init() {
	color.NoColor = true
}

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"UNDERWRITER_LLM_API_KEY", "HF_API_TOKEN", "ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "UNDERWRITER_LLM_PROVIDER"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd("test")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "uwctl version test\n", out)
}

func TestAnalyzeSampleJSON(t *testing.T) {
	clearProviderEnv(t)
	out, err := execute(t, "", "analyze", "--sample", "medium", "-o", "json")
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "rule_based", got["mode"])
	assessment := got["assessment"].(map[string]interface{})
	assert.Equal(t, float64(55), assessment["risk_score"])
	assert.Equal(t, "Medium", assessment["risk_category"])
	assert.Len(t, got["agent_outputs"], 4)
}

func TestAnalyzeFileText(t *testing.T) {
	clearProviderEnv(t)
	sample, _ := applicant.SampleByKey("low")
	data, err := yaml.Marshal(sample.Application)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "application.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	out, err := execute(t, "", "analyze", "-f", path, "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "UNDERWRITING ANALYSIS REPORT")
	assert.Contains(t, out, "Sarah Johnson")
	assert.Contains(t, out, "Rule-Based")
}

func TestAnalyzeStdinFromSamples(t *testing.T) {
	clearProviderEnv(t)
	yamlApp, err := execute(t, "", "samples", "high")
	require.NoError(t, err)

	out, err := execute(t, yamlApp, "analyze", "-f", "-", "-o", "yaml")
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assessment := got["assessment"].(map[string]interface{})
	assert.Equal(t, 100, assessment["risk_score"])
	assert.Equal(t, "High", assessment["risk_category"])
}

func TestAnalyzeHumanOutput(t *testing.T) {
	clearProviderEnv(t)
	out, err := execute(t, "", "analyze", "--sample", "low")
	require.NoError(t, err)
	assert.Contains(t, out, "Underwriting Analysis: Sarah Johnson")
	assert.Contains(t, out, "Risk Score: 15/100 (Low Risk)")
	assert.Contains(t, out, "UNDERWRITING RECOMMENDATION")
	assert.NotContains(t, out, "fallback")
}

func TestAnalyzeOutFile(t *testing.T) {
	clearProviderEnv(t)
	path := filepath.Join(t.TempDir(), "report.json")
	out, err := execute(t, "", "analyze", "--sample", "low", "-o", "json", "--out", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"risk_score": 15`)
}

func TestAnalyzeErrors(t *testing.T) {
	clearProviderEnv(t)

	_, err := execute(t, "", "analyze")
	assert.ErrorContains(t, err, "--file or --sample")

	_, err = execute(t, "", "analyze", "--sample", "extreme")
	assert.ErrorContains(t, err, "unknown sample")

	_, err = execute(t, "", "analyze", "--sample", "low", "--mode", "psychic")
	assert.Error(t, err)

	_, err = execute(t, "", "analyze", "--sample", "low", "-o", "pdf")
	assert.Error(t, err)

	_, err = execute(t, "", "analyze", "--sample", "low", "--mode", "ai")
	assert.ErrorIs(t, err, orchestrator.ErrAIUnavailable)

	_, err = execute(t, "", "analyze", "--sample", "low", "--compare")
	assert.ErrorIs(t, err, orchestrator.ErrAIUnavailable)
}

func TestAnalyzeInvalidApplication(t *testing.T) {
	clearProviderEnv(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"applicant":{"name":"","age":12}}`), 0o600))

	_, err := execute(t, "", "analyze", "-f", path)
	assert.ErrorIs(t, err, applicant.ErrInvalid)
}

func TestDecodeApplicationRejectsUnknownFields(t *testing.T) {
	_, err := decodeApplication(strings.NewReader(`{"applicant":{"name":"A"},"pets":3}`), ".json")
	assert.Error(t, err)

	_, err = decodeApplication(strings.NewReader("applicant:\n  name: A\npets: 3\n"), ".yaml")
	assert.Error(t, err)
}

func TestDecodeApplicationJSON(t *testing.T) {
	sample, _ := applicant.SampleByKey("medium")
	data, err := json.Marshal(sample.Application)
	require.NoError(t, err)

	got, err := decodeApplication(bytes.NewReader(data), ".JSON")
	require.NoError(t, err)
	assert.Equal(t, sample.Application, got)
}

func TestSamplesList(t *testing.T) {
	out, err := execute(t, "", "samples")
	require.NoError(t, err)
	assert.Contains(t, out, "Sample Applications")
	for _, name := range []string{"Sarah Johnson", "Mike Davis", "Robert Wilson"} {
		assert.Contains(t, out, name)
	}
}

func TestSamplesJSON(t *testing.T) {
	out, err := execute(t, "", "samples", "medium", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"date": "2023-03-14"`)

	_, err = execute(t, "", "samples", "nope")
	assert.Error(t, err)
}
