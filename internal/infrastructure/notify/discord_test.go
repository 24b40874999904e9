package notify

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
	"oilbook/internal/domain"
	"oilbook/internal/domain/documents/invoice"
	"oilbook/internal/domain/oiltype"
)

func TestBuildEmbed_InvoiceCreated(t *testing.T) {
	inv := invoice.New(id.New(), nil)
	inv.Number = "INV-2026-00042"
	inv.AddLine(oiltype.Diesel, "", types.NewLitersFromFloat64(100), types.MustMoney("29.94"))

	payload, err := json.Marshal(inv)
	require.NoError(t, err)

	embed, err := buildEmbed(domain.EventInvoiceCreated, payload)
	require.NoError(t, err)

	assert.Equal(t, "🧾 บิลขายใหม่", embed.Title)
	assert.Contains(t, embed.Description, "INV-2026-00042")
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "เงินสด", embed.Fields[0].Value)
}

func TestBuildEmbed_UnknownEventFails(t *testing.T) {
	_, err := buildEmbed("price.updated", []byte(`{}`))
	assert.Error(t, err)
}
