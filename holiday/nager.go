package holiday

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

const (
	// BaseURL is the nager.date public holidays endpoint.
	BaseURL = "https://date.nager.at/api/v3/PublicHolidays"
)

// NagerConfig represents the configuration for the nager.date client.
type NagerConfig struct {
	// BaseURL is the public holidays endpoint.
	BaseURL string
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// NagerClient represents the nager.date public holidays api client.
type NagerClient struct {
	cfg   *NagerConfig
	httpc http.Client
}

// Ensure the nager client implements the CountrySource interface.
var _ CountrySource = (*NagerClient)(nil)

// NewNagerClient instantiates a new nager.date client.
func NewNagerClient(cfg *NagerConfig) (*NagerClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("nager base url cannot be an empty string")
	}

	return &NagerClient{
		cfg:   cfg,
		httpc: http.Client{Timeout: time.Second * 5},
	}, nil
}

// parseRawHolidays parses raw holiday records from the provided json data.
// Records without a valid iso date are dropped. Absent optional fields default
// to unrestricted, treating the record as global.
func (c *NagerClient) parseRawHolidays(data []gjson.Result) []RawHoliday {
	records := make([]RawHoliday, 0, len(data))

	for idx := range data {
		var record RawHoliday

		record.Date = data[idx].Get("date").String()
		record.Name = data[idx].Get("name").String()
		record.LocalName = data[idx].Get("localName").String()

		global := data[idx].Get("global")
		record.Global = !global.Exists() || global.Bool()

		counties := data[idx].Get("counties").Array()
		for k := range counties {
			record.Counties = append(record.Counties, counties[k].String())
		}

		if !validDate(record.Date) {
			c.cfg.Logger.Warn().Msgf("dropping malformed holiday record: %s", spew.Sdump(data[idx].Value()))
			continue
		}

		records = append(records, record)
	}

	return records
}

// FetchCountryHolidays fetches the raw public holiday records for the
// provided country and year.
func (c *NagerClient) FetchCountryHolidays(ctx context.Context, country string, year int) ([]RawHoliday, error) {
	url := fmt.Sprintf("%s/%d/%s", c.cfg.BaseURL, year, country)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating holidays request for %s: %w", country, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching holidays for %s: %w", country, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching holidays for %s: unexpected status %d", country, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	data := gjson.ParseBytes(body).Array()

	return c.parseRawHolidays(data), nil
}
