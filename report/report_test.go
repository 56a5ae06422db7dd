package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greatxrider/interactive-form-project/catalog"
	"github.com/greatxrider/interactive-form-project/form"
	"github.com/greatxrider/interactive-form-project/http/validation"
	"github.com/greatxrider/interactive-form-project/report"
)

func TestSubmission(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	c, err := form.NewController(validation.NewRegistry(), cat.Options())
	require.NoError(t, err)

	require.NoError(t, c.Restore(form.Snapshot{
		Fields:     map[validation.FieldID]string{validation.Name: "alice"},
		Activities: []string{"node"},
		Payment:    form.PayPal,
	}))
	sub := c.Submit()
	out := report.Submission(c.View(), sub)

	assert.Contains(t, out, "blocked")
	assert.Contains(t, out, "name")
	assert.Contains(t, out, "The first character of your name must be uppercase.")
	assert.Contains(t, out, "Email address cannot be empty.")
	assert.Contains(t, out, "[x] Node.js Workshop $100")
	assert.Contains(t, out, "[-] Front-end Library Workshop $100")
	assert.Contains(t, out, "Total: $100")
	assert.Contains(t, out, "paypal")
	assert.NotContains(t, out, "cc-num")
}

func TestCatalog(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	out := report.Catalog(cat)

	assert.Contains(t, out, "Job roles")
	assert.Contains(t, out, "cornflowerblue, darkslategrey, gold")
	assert.Contains(t, out, "Main Conference $200")
	assert.Contains(t, out, "Wednesday 1pm-4pm")
}
