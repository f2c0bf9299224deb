package csvsource

import (
	"strings"
	"testing"

	"github.com/echolon-ai/echolon/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_Basic(t *testing.T) {
	data := `Date,Revenue,Orders
2024-01-01,"$100,000.00",120
2024-02-01,"$110,000.00",130
`
	table, err := Read(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Revenue", "Orders"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "$100,000.00", table.Rows[0]["Revenue"])
	assert.Equal(t, "130", table.Rows[1]["Orders"])
}

func TestRead_RaggedRowsPadded(t *testing.T) {
	data := "a,b,c\n1,2\n3,4,5,6\n"

	table, err := Read(strings.NewReader(data))
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "", table.Rows[0]["c"], "short row padded")
	assert.Equal(t, "5", table.Rows[1]["c"], "long row truncated to header width")
}

func TestRead_SkipsBlankLines(t *testing.T) {
	data := "a,b\n1,2\n,\n3,4\n"

	table, err := Read(strings.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}

func TestRead_EmptyInput(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrEmptyInput)

	_, err = Read(strings.NewReader("a,b,c\n"))
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}
