package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServe_RejectsInvalidPort(t *testing.T) {
	t.Cleanup(func() {
		flagPort = cfg.Port
		serveCmd.Flags().Lookup("port").Changed = false
	})

	_, err := execute(t, "serve", "--port", "http")
	assert.ErrorContains(t, err, "PORT must be numeric")
}

func TestServe_RejectsMissingIndex(t *testing.T) {
	_, err := execute(t, "serve", "--meta", "/nonexistent/docs.yaml")
	assert.ErrorContains(t, err, "META_INDEX")
}
