package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/alejandrodnm/whalefetch/internal/domain"
)

// rawDataTrade es el shape del objeto trade que devuelve la Data API.
// Price/Size/Timestamp llegan a veces como string y a veces como número,
// de ahí json.Number.
type rawDataTrade struct {
	ID          string      `json:"id"`
	ProxyWallet string      `json:"proxyWallet"`
	ConditionID string      `json:"conditionId"`
	Asset       string      `json:"asset"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Outcome     string      `json:"outcome"`
	Side        string      `json:"side"`
	Price       json.Number `json:"price"`
	Size        json.Number `json:"size"`
	Timestamp   json.Number `json:"timestamp"`
}

// FetchTradePage obtiene una página del historial de trades de una wallet
// usando la Data API pública. Implementa ports.TradeSource.
func (c *Client) FetchTradePage(ctx context.Context, wallet string, limit, offset int) ([]domain.Trade, error) {
	url := fmt.Sprintf("%s/trades?maker=%s&limit=%d&offset=%d",
		c.dataBase, wallet, limit, offset)

	var resp []rawDataTrade
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("data-api.FetchTradePage: %w", err)
	}

	trades := make([]domain.Trade, 0, len(resp))
	for _, rt := range resp {
		price, _ := rt.Price.Float64()
		size, _ := rt.Size.Float64()

		maker := rt.ProxyWallet
		if maker == "" {
			maker = wallet
		}

		trades = append(trades, domain.Trade{
			ID:          rt.ID,
			Wallet:      maker,
			ConditionID: rt.ConditionID,
			Asset:       rt.Asset,
			Title:       rt.Title,
			Slug:        rt.Slug,
			Outcome:     rt.Outcome,
			Side:        rt.Side,
			Price:       price,
			Size:        size,
			Timestamp:   parseTradeTimestamp(rt.Timestamp),
		})
	}

	return trades, nil
}

// parseTradeTimestamp acepta unix (segundos o milisegundos), float o ISO.
func parseTradeTimestamp(n json.Number) time.Time {
	s := n.String()
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		if sec > 1e12 {
			return time.Unix(sec/1000, (sec%1000)*int64(time.Millisecond))
		}
		return time.Unix(sec, 0)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		sec := int64(f)
		nsec := int64((f - float64(sec)) * 1e9)
		return time.Unix(sec, nsec)
	}
	for _, layout := range []string{
		time.RFC3339Nano, time.RFC3339,
		"2006-01-02T15:04:05.000Z", "2006-01-02T15:04:05Z",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
