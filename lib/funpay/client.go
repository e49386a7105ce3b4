package funpay

import (
	"bytes"
	"net/url"
	"time"

	"funpay-client/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// DefaultTimeout is the per-call timeout applied when the caller
// doesn't configure one.
const DefaultTimeout = time.Second * 10

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// newHttpClient builds the resty client every operation goes through.
// funpay expects exact Cookie header shapes that differ per endpoint,
// so cookies are assembled per request and no jar is attached.
func newHttpClient(baseUrl string, timeout time.Duration) (*resty.Client, error) {
	parsed, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", browserUserAgent)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsed.Hostname()))
	client.SetTimeout(timeout)

	telemetry.InstrumentResty(client, "funpay/http")

	return client, nil
}

func parseDoc(body []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewBuffer(body))
}
