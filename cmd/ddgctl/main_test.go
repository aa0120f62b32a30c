package main

import (
	"bytes"
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCatalogListBuiltin(t *testing.T) {
	out, err := execute(t, "catalog", "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[0], "PARAMETER")
	assert.Regexp(t, `^\*\s+Noise_Sigma\s+0\s+1000\s+50\s+200\s+Noise_Sigma$`, lines[1])
	assert.Regexp(t, `^LS2-1\s+k_param\s+0\.1\s+1\s+0\.1\s+0\.7\s+k_param$`, lines[3])
	assert.Contains(t, out, "PS3-1_KE")
}

func TestCatalogValidate(t *testing.T) {
	out, err := execute(t, "catalog", "validate")
	require.NoError(t, err)
	assert.Equal(t, "catalog ok: 2 phenomena, 7 fields\n", out)

	_, err = execute(t, "catalog", "validate", "--source", "ldap")
	assert.ErrorContains(t, err, "unknown catalog source")
}

func TestExportThenReadBack(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"catalog.yaml", "catalog.xlsx"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			out, err := execute(t, "catalog", "export", "--out", path)
			require.NoError(t, err)
			assert.Contains(t, out, "wrote "+path)

			source := strings.TrimPrefix(filepath.Ext(name), ".")
			out, err = execute(t, "catalog", "list", "--source", source, "--file", path)
			require.NoError(t, err)
			assert.Contains(t, out, "Mass_Const")
		})
	}

	_, err := execute(t, "catalog", "export", "--out", filepath.Join(dir, "catalog.csv"))
	assert.ErrorContains(t, err, "unsupported output file")

	_, err = execute(t, "catalog", "export")
	assert.Error(t, err)
}

func TestMigrateImportAndList(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "ddg.db")
	yamlPath := filepath.Join(dir, "catalog.yaml")
	db := []string{"--driver", "sqlite", "--database-url", dsn}

	out, err := execute(t, append([]string{"migrate", "--seed"}, db...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "schema version 1.0.0 applied")
	assert.Contains(t, out, "seeded built-in catalog")

	out, err = execute(t, append([]string{"migrate", "--seed"}, db...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "seed skipped")

	_, err = execute(t, "catalog", "export", "--out", yamlPath)
	require.NoError(t, err)

	out, err = execute(t, append([]string{"catalog", "import", "--from", yamlPath}, db...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 phenomena")

	out, err = execute(t, append([]string{"catalog", "list", "--source", "database"}, db...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "L_param")
}

func TestLink(t *testing.T) {
	out, err := execute(t, "link",
		"--endpoint", "https://forms.example.com/formResponse",
		"--pe-id", "LS2-1",
		"--email", "teacher@school.edu",
		"--set", "L_param=12049",
		"--set", "Noise_Sigma=5000",
	)
	require.NoError(t, err)

	first := strings.SplitN(out, "\n", 2)[0]
	u, err := url.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, "12000", u.Query().Get("L_param"))
	assert.Equal(t, "1000", u.Query().Get("Noise_Sigma"))
	assert.Equal(t, "0", u.Query().Get("Mass_Const"))
	assert.Contains(t, out, "teacher@school.edu")
}

func TestLinkErrors(t *testing.T) {
	t.Setenv("FORM_ENDPOINT_URL", "")

	_, err := execute(t, "link", "--pe-id", "LS2-1", "--email", "a@b.org")
	assert.ErrorContains(t, err, "FORM_ENDPOINT_URL is required")

	_, err = execute(t, "link", "--endpoint", "https://x.example.com/f", "--pe-id", "LS2-1", "--email", "a@b.org", "--set", "L_param")
	assert.ErrorContains(t, err, "want name=value")

	_, err = execute(t, "link", "--endpoint", "https://x.example.com/f", "--pe-id", "PS3-1_KE", "--email", "a@b.org", "--set", "L_param=5000")
	assert.ErrorContains(t, err, "not a control of PS3-1_KE")

	_, err = execute(t, "link", "--endpoint", "https://x.example.com/f", "--pe-id", "LS2-1")
	assert.ErrorContains(t, err, "please enter an email address")
}

func TestParseSets(t *testing.T) {
	values, err := parseSets([]string{"k_param=0.4", " t_range = 30 "})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"k_param": 0.4, "t_range": 30}, values)

	_, err = parseSets([]string{"=3"})
	assert.Error(t, err)
	_, err = parseSets([]string{"k_param=abc"})
	assert.Error(t, err)
}
