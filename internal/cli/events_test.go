package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"tienda/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintEvent(t *testing.T) {
	body, err := json.Marshal(services.StockAdjustedEvent{ProductID: 1, Name: "Oak dining table", Delta: -1, Stock: 1, Reason: "sale"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printEvent(&buf, services.EventStockAdjusted, body))
	assert.Contains(t, buf.String(), "Oak dining table -1 -> 1 (sale)")

	buf.Reset()
	body, err = json.Marshal(services.SaleRecordedEvent{SaleID: "s-1", Units: 3, Total: 165})
	require.NoError(t, err)
	require.NoError(t, printEvent(&buf, services.EventSaleRecorded, body))
	assert.Contains(t, buf.String(), "3 units, 165.00 €")

	buf.Reset()
	require.NoError(t, printEvent(&buf, "something.else", []byte(`{"x":1}`)))
	assert.Contains(t, buf.String(), `{"x":1}`)

	assert.Error(t, printEvent(&buf, services.EventProductDeleted, []byte("not json")))
}

func TestTruncateAndPad(t *testing.T) {
	assert.Equal(t, "Máquina…", truncate("Máquina de coser", 8))
	assert.Equal(t, "short", truncate("short", 8))
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "  ab", padLeft("ab", 4))
	assert.Equal(t, "abcdef", padLeft("abcdef", 4))
}
